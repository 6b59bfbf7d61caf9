package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/milk9111/cboxeditor/framedata"
	"github.com/milk9111/cboxeditor/overlay"
)

var ErrClipMismatch = errors.New("clip does not fit this category")

// Clip is copied box geometry. Exactly one of Boxes and Pushbox is set.
type Clip struct {
	Boxes   []framedata.BoxConfig   `json:"boxes,omitempty"`
	Pushbox *framedata.PushboxConfig `json:"pushbox,omitempty"`
}

type PasteMode int

const (
	PasteAppend PasteMode = iota
	PasteReplace
)

func (c Clip) Empty() bool {
	return len(c.Boxes) == 0 && c.Pushbox == nil
}

func (c Clip) Encode() ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("session: encode clip: %w", err)
	}
	return data, nil
}

func DecodeClip(data []byte) (Clip, error) {
	var c Clip
	if err := json.Unmarshal(data, &c); err != nil {
		return Clip{}, fmt.Errorf("session: decode clip: %w", err)
	}
	return c, nil
}

// Copy takes one box of id's effective definition, or the pushbox when id
// names the pushbox category.
func (s *Session) Copy(id overlay.ID, index int) (Clip, bool) {
	if id.Kind == framedata.KindPush {
		def, ok := s.Pushbox(id)
		if !ok {
			return Clip{}, false
		}
		box := *def.Box
		return Clip{Pushbox: &box}, true
	}
	def, ok := s.Boxes(id)
	if !ok || index < 0 || index >= len(def.Boxes) {
		return Clip{}, false
	}
	return Clip{Boxes: []framedata.BoxConfig{def.Boxes[index]}}, true
}

// Paste stages and commits clip at id. Boxes are appended after the current
// ones or replace them; a pushbox always replaces.
func (s *Session) Paste(id overlay.ID, clip Clip, mode PasteMode) error {
	if id.Kind == framedata.KindPush {
		if clip.Pushbox == nil {
			return fmt.Errorf("session: paste %s: %w", id, ErrClipMismatch)
		}
		s.Stage(id, overlay.PushboxPatch(*clip.Pushbox))
		s.Commit(id)
		return nil
	}

	if len(clip.Boxes) == 0 {
		return fmt.Errorf("session: paste %s: %w", id, ErrClipMismatch)
	}
	var boxes []framedata.BoxConfig
	if mode == PasteAppend {
		if def, ok := s.Boxes(id); ok {
			boxes = append(boxes, def.Boxes...)
		}
	}
	for _, box := range clip.Boxes {
		boxes = append(boxes, s.atLeastMin(box))
	}
	s.Stage(id, overlay.BoxesPatch(boxes))
	s.Commit(id)
	return nil
}
