package overlay

import (
	"sort"

	"github.com/milk9111/cboxeditor/framedata"
)

// Overlay is an immutable snapshot of pending edits layered over a document.
// Every mutating method returns a new snapshot and leaves the receiver as it
// was.
type Overlay struct {
	entries map[ID]*Entry
}

var Empty = &Overlay{}

func (o *Overlay) Len() int {
	if o == nil {
		return 0
	}
	return len(o.entries)
}

// IDs returns every id with an entry, ordered by frame key then category then
// frame.
func (o *Overlay) IDs() []ID {
	if o == nil {
		return nil
	}
	ids := make([]ID, 0, len(o.entries))
	for id := range o.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if ids[i].FrameKey != ids[j].FrameKey {
			return ids[i].FrameKey < ids[j].FrameKey
		}
		if ids[i].Kind != ids[j].Kind {
			return ids[i].Kind < ids[j].Kind
		}
		return ids[i].Frame < ids[j].Frame
	})
	return ids
}

func (o *Overlay) Entry(id ID) (*Entry, bool) {
	if o == nil {
		return nil, false
	}
	e, ok := o.entries[id]
	return e, ok
}

// HasStaged reports whether any entry holds an uncommitted change.
func (o *Overlay) HasStaged() bool {
	if o == nil {
		return false
	}
	for _, e := range o.entries {
		if e.staged != nil {
			return true
		}
	}
	return false
}

// HasCommitted reports whether any entry holds a committed change.
func (o *Overlay) HasCommitted() bool {
	if o == nil {
		return false
	}
	for _, e := range o.entries {
		if e.committed != nil {
			return true
		}
	}
	return false
}

func (o *Overlay) with(id ID, e *Entry) *Overlay {
	next := &Overlay{entries: make(map[ID]*Entry, o.Len()+1)}
	if o != nil {
		for k, v := range o.entries {
			next.entries[k] = v
		}
	}
	next.entries[id] = e
	return next
}

// Stage merges patch into the staged layer of id.
func (o *Overlay) Stage(id ID, patch Patch) *Overlay {
	return o.stage(id, Change{Kind: Patched, Patch: patch}, OpStage)
}

// StageDelete stages an explicit deletion of id.
func (o *Overlay) StageDelete(id ID) *Overlay {
	return o.stage(id, Change{Kind: Deleted}, OpDelete)
}

func (o *Overlay) stage(id ID, c Change, kind OpKind) *Overlay {
	e, _ := o.Entry(id)
	next := e.record(Op{Kind: kind, Change: c})
	if prev, ok := e.Staged(); ok {
		c = prev.Then(c)
	}
	next.staged = &c
	return o.with(id, next)
}

// Commit folds the staged layer of id into its committed layer. Ids with
// nothing staged are left alone.
func (o *Overlay) Commit(id ID) *Overlay {
	e, ok := o.Entry(id)
	if !ok || e.staged == nil {
		return o
	}
	s := *e.staged
	next := e.record(Op{Kind: OpCommit, Change: s})
	c := s
	if prev, ok := e.Committed(); ok {
		c = prev.Then(s)
	}
	next.committed = &c
	next.staged = nil
	return o.with(id, next)
}

// CommitAll commits every staged entry.
func (o *Overlay) CommitAll() *Overlay {
	out := o
	for _, id := range o.IDs() {
		out = out.Commit(id)
	}
	return out
}

// Discard drops the staged layer of id.
func (o *Overlay) Discard(id ID) *Overlay {
	e, ok := o.Entry(id)
	if !ok || e.staged == nil {
		return o
	}
	next := e.record(Op{Kind: OpDiscard, Change: *e.staged})
	next.staged = nil
	return o.with(id, next)
}

// GetBoxes returns the hurtbox or hitbox definition of id as base, committed
// and staged changes combine to show it. The bool is false when the result
// has no boxes, whether deleted or never set.
func (o *Overlay) GetBoxes(doc *framedata.Document, id ID) (framedata.BoxDefinition, bool) {
	e, _ := o.Entry(id)
	c, ok := e.Effective()
	return applyBoxes(doc, id, c, ok)
}

// CommittedBoxes is GetBoxes without the staged layer.
func (o *Overlay) CommittedBoxes(doc *framedata.Document, id ID) (framedata.BoxDefinition, bool) {
	e, _ := o.Entry(id)
	c, ok := e.Committed()
	return applyBoxes(doc, id, c, ok)
}

func (o *Overlay) GetPushbox(doc *framedata.Document, id ID) (framedata.PushboxDefinition, bool) {
	e, _ := o.Entry(id)
	c, ok := e.Effective()
	return applyPushbox(doc, id, c, ok)
}

func (o *Overlay) CommittedPushbox(doc *framedata.Document, id ID) (framedata.PushboxDefinition, bool) {
	e, _ := o.Entry(id)
	c, ok := e.Committed()
	return applyPushbox(doc, id, c, ok)
}

// BoxLookup adapts the merged view of one animation category for
// framedata.Resolve.
func (o *Overlay) BoxLookup(doc *framedata.Document, frameKey string, kind framedata.Kind) func(int) (framedata.BoxDefinition, bool) {
	return func(frame int) (framedata.BoxDefinition, bool) {
		return o.GetBoxes(doc, NewID(frameKey, kind, frame))
	}
}

func (o *Overlay) PushboxLookup(doc *framedata.Document, frameKey string) func(int) (framedata.PushboxDefinition, bool) {
	return func(frame int) (framedata.PushboxDefinition, bool) {
		return o.GetPushbox(doc, NewID(frameKey, framedata.KindPush, frame))
	}
}

func baseBoxes(doc *framedata.Document, id ID) (framedata.BoxDefinition, bool) {
	def, ok := doc.Animation(id.FrameKey)
	if !ok {
		return framedata.BoxDefinition{}, false
	}
	bd, ok := def.Boxes(id.Kind).Get(id.Frame)
	return bd, ok && bd.Defined()
}

func basePushbox(doc *framedata.Document, id ID) (framedata.PushboxDefinition, bool) {
	def, ok := doc.Animation(id.FrameKey)
	if !ok {
		return framedata.PushboxDefinition{}, false
	}
	pd, ok := def.PushboxDef.Get(id.Frame)
	return pd, ok && pd.Defined()
}

func applyBoxes(doc *framedata.Document, id ID, c Change, changed bool) (framedata.BoxDefinition, bool) {
	base, ok := baseBoxes(doc, id)
	if !changed {
		return base, ok
	}
	return c.ApplyBoxes(base)
}

func applyPushbox(doc *framedata.Document, id ID, c Change, changed bool) (framedata.PushboxDefinition, bool) {
	base, ok := basePushbox(doc, id)
	if !changed {
		return base, ok
	}
	return c.ApplyPushbox(base)
}
