package framedata

type Resolution int

const (
	ResolvedNone Resolution = iota
	ResolvedExact
	ResolvedPersistent
)

func (r Resolution) String() string {
	switch r {
	case ResolvedExact:
		return "exact"
	case ResolvedPersistent:
		return "persistent"
	default:
		return "none"
	}
}

// Persister is a per-frame definition that may carry forward to later frames.
type Persister interface {
	Defined() bool
	PersistThrough() (int, bool)
}

// Resolved is the effective definition at a frame and the frame it was
// authored on. Source is NotFound when nothing applies.
type Resolved[T Persister] struct {
	Def        T
	Source     int
	Resolution Resolution
}

func (r Resolved[T]) Found() bool {
	return r.Resolution != ResolvedNone
}

func (r Resolved[T]) Persistent() bool {
	return r.Resolution == ResolvedPersistent
}

// Resolve finds the definition in effect at frame. An exact definition wins.
// Otherwise the closest earlier definition applies only while frame is below
// its persistThroughFrame; the walk never looks past that definition.
func Resolve[T Persister](frame int, lookup func(int) (T, bool)) Resolved[T] {
	if def, ok := lookup(frame); ok && def.Defined() {
		return Resolved[T]{Def: def, Source: frame, Resolution: ResolvedExact}
	}
	for i := frame - 1; i >= 0; i-- {
		def, ok := lookup(i)
		if !ok || !def.Defined() {
			continue
		}
		if through, ok := def.PersistThrough(); ok && through > frame {
			return Resolved[T]{Def: def, Source: i, Resolution: ResolvedPersistent}
		}
		break
	}
	var zero T
	return Resolved[T]{Def: zero, Source: NotFound, Resolution: ResolvedNone}
}

// ResolveBoxes resolves the hurtbox or hitbox set of an animation at frame.
func ResolveBoxes(def *FrameDefinition, kind Kind, frame int) Resolved[BoxDefinition] {
	return Resolve(frame, def.Boxes(kind).Get)
}

func ResolvePushbox(def *FrameDefinition, frame int) Resolved[PushboxDefinition] {
	var m *FrameMap[PushboxDefinition]
	if def != nil {
		m = def.PushboxDef
	}
	return Resolve(frame, m.Get)
}
