package framedata

// Kind is a box category.
type Kind int

const (
	KindHurt Kind = iota
	KindHit
	KindPush
)

var Kinds = []Kind{KindHurt, KindHit, KindPush}

func (k Kind) String() string {
	switch k {
	case KindHurt:
		return "Hurt"
	case KindHit:
		return "Hit"
	case KindPush:
		return "Push"
	default:
		return "Unknown"
	}
}

// DefField is the document field holding the per-frame map for k.
func (k Kind) DefField() string {
	switch k {
	case KindHurt:
		return "hurtboxDef"
	case KindHit:
		return "hitboxDef"
	case KindPush:
		return "pushboxDef"
	default:
		return ""
	}
}

// HasRadius reports whether boxes of this kind are circles or capsules.
func (k Kind) HasRadius() bool {
	return k == KindHurt || k == KindHit
}
