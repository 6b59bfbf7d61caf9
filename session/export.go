package session

import (
	"fmt"
	"log"

	"github.com/milk9111/cboxeditor/framedata"
	"github.com/milk9111/cboxeditor/overlay"
)

// Merged returns a copy of the document with every committed edit applied.
// Staged edits are left out.
func (s *Session) Merged() (*framedata.Document, error) {
	if s.doc == nil {
		return nil, ErrNoDocument
	}
	out, err := s.doc.Clone()
	if err != nil {
		return nil, fmt.Errorf("session: merge: %w", err)
	}

	for _, id := range s.overlay.IDs() {
		e, _ := s.overlay.Entry(id)
		c, ok := e.Committed()
		if !ok {
			continue
		}
		anim, ok := out.Animation(id.FrameKey)
		if !ok {
			log.Printf("session: merge %s: no animation %s", id, id.FrameKey)
			continue
		}
		applyCommitted(anim, s.doc, s.overlay, id, c.Kind == overlay.Deleted)
	}
	return out, nil
}

func applyCommitted(anim *framedata.FrameDefinition, base *framedata.Document, o *overlay.Overlay, id overlay.ID, deleted bool) {
	if id.Kind == framedata.KindPush {
		def, ok := o.CommittedPushbox(base, id)
		if deleted || !ok {
			anim.PushboxDef.Delete(id.Frame)
			return
		}
		anim.EnsurePushboxes().Set(id.Frame, def)
		return
	}

	def, ok := o.CommittedBoxes(base, id)
	if deleted || !ok {
		anim.Boxes(id.Kind).Delete(id.Frame)
		return
	}
	anim.EnsureBoxes(id.Kind).Set(id.Frame, def)
}

// Export encodes the merged document with two-space indentation. The edits
// stay in place afterwards.
func (s *Session) Export() ([]byte, error) {
	doc, err := s.Merged()
	if err != nil {
		return nil, err
	}
	data, err := doc.Encode()
	if err != nil {
		return nil, fmt.Errorf("session: export %s: %w", s.name, err)
	}
	return data, nil
}
