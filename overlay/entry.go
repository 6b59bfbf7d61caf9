package overlay

import "github.com/milk9111/cboxeditor/framedata"

// ChangeKind tells how a change relates to the underlying definition.
type ChangeKind int

const (
	// Patched lays the patch over the underlying definition.
	Patched ChangeKind = iota + 1
	// Replaced lays the patch over an empty definition. It is what staging
	// onto a deleted entry produces.
	Replaced
	// Deleted hides the underlying definition.
	Deleted
)

func (k ChangeKind) String() string {
	switch k {
	case Patched:
		return "patched"
	case Replaced:
		return "replaced"
	case Deleted:
		return "deleted"
	default:
		return "absent"
	}
}

type Change struct {
	Kind  ChangeKind
	Patch Patch
}

// Then composes c followed by next.
func (c Change) Then(next Change) Change {
	switch next.Kind {
	case Deleted:
		return Change{Kind: Deleted}
	case Replaced:
		return next
	}
	switch c.Kind {
	case Deleted:
		return Change{Kind: Replaced, Patch: Patch{}.Merge(next.Patch)}
	case Patched, Replaced:
		return Change{Kind: c.Kind, Patch: c.Patch.Merge(next.Patch)}
	default:
		return next
	}
}

// ApplyBoxes returns the definition seen through c. The bool is false when the
// result carries no boxes field.
func (c Change) ApplyBoxes(base framedata.BoxDefinition) (framedata.BoxDefinition, bool) {
	switch c.Kind {
	case Deleted:
		return framedata.BoxDefinition{}, false
	case Replaced:
		base = framedata.BoxDefinition{}
	}
	out := c.Patch.ApplyBoxes(base)
	return out, out.Defined()
}

func (c Change) ApplyPushbox(base framedata.PushboxDefinition) (framedata.PushboxDefinition, bool) {
	switch c.Kind {
	case Deleted:
		return framedata.PushboxDefinition{}, false
	case Replaced:
		base = framedata.PushboxDefinition{}
	}
	out := c.Patch.ApplyPushbox(base)
	return out, out.Defined()
}

type OpKind int

const (
	OpStage OpKind = iota
	OpDelete
	OpCommit
	OpDiscard
)

// Op is one recorded operation on an entry.
type Op struct {
	Kind   OpKind
	Change Change
}

// Entry holds the committed and staged layers for one id. Entries are never
// modified once published in an Overlay.
type Entry struct {
	committed *Change
	staged    *Change
	history   []Op
}

func (e *Entry) Committed() (Change, bool) {
	if e == nil || e.committed == nil {
		return Change{}, false
	}
	return *e.committed, true
}

func (e *Entry) Staged() (Change, bool) {
	if e == nil || e.staged == nil {
		return Change{}, false
	}
	return *e.staged, true
}

// Effective is the committed layer followed by the staged layer.
func (e *Entry) Effective() (Change, bool) {
	c, cok := e.Committed()
	s, sok := e.Staged()
	switch {
	case cok && sok:
		return c.Then(s), true
	case sok:
		return s, true
	default:
		return c, cok
	}
}

// History lists every operation applied to the entry, oldest first.
func (e *Entry) History() []Op {
	if e == nil {
		return nil
	}
	out := make([]Op, len(e.history))
	copy(out, e.history)
	return out
}

func (e *Entry) record(op Op) *Entry {
	next := &Entry{}
	if e != nil {
		*next = *e
	}
	next.history = append(next.history[:len(next.history):len(next.history)], op)
	return next
}
