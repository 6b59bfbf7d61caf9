package framedata

import (
	"encoding/json"
	"fmt"
)

// BoxDefinition is the hurtbox or hitbox set authored on one frame. A nil
// Boxes slice means the frame carries no definition; an empty one is an
// explicit "no boxes here" that still stops persistence.
type BoxDefinition struct {
	Boxes               []BoxConfig
	PersistThroughFrame *int
	Tag                 json.RawMessage
	Hit                 *Hit
	Extra               map[string]json.RawMessage
}

type boxDefinitionJSON struct {
	Boxes               *[]BoxConfig    `json:"boxes,omitempty"`
	PersistThroughFrame *int            `json:"persistThroughFrame,omitempty"`
	Tag                 json.RawMessage `json:"tag,omitempty"`
	Hit                 *Hit            `json:"hit,omitempty"`
}

func (d *BoxDefinition) UnmarshalJSON(data []byte) error {
	var v boxDefinitionJSON
	extra, err := decodeWithExtras(data, &v)
	if err != nil {
		return fmt.Errorf("framedata: box definition: %w", err)
	}
	*d = BoxDefinition{
		PersistThroughFrame: v.PersistThroughFrame,
		Tag:                 v.Tag,
		Hit:                 v.Hit,
		Extra:               extra,
	}
	if v.Boxes != nil {
		d.Boxes = *v.Boxes
		if d.Boxes == nil {
			d.Boxes = []BoxConfig{}
		}
	}
	return nil
}

func (d BoxDefinition) MarshalJSON() ([]byte, error) {
	v := boxDefinitionJSON{
		PersistThroughFrame: d.PersistThroughFrame,
		Tag:                 d.Tag,
		Hit:                 d.Hit,
	}
	if d.Boxes != nil {
		boxes := d.Boxes
		v.Boxes = &boxes
	}
	return encodeWithExtras(v, d.Extra)
}

func (d BoxDefinition) Defined() bool {
	return d.Boxes != nil
}

func (d BoxDefinition) PersistThrough() (int, bool) {
	if d.PersistThroughFrame == nil {
		return 0, false
	}
	return *d.PersistThroughFrame, true
}

// Clone returns a copy that shares no slices or pointers with d.
func (d BoxDefinition) Clone() BoxDefinition {
	out := d
	if d.Boxes != nil {
		out.Boxes = make([]BoxConfig, len(d.Boxes))
		for i, b := range d.Boxes {
			b.Extra = cloneExtras(b.Extra)
			out.Boxes[i] = b
		}
	}
	if d.PersistThroughFrame != nil {
		p := *d.PersistThroughFrame
		out.PersistThroughFrame = &p
	}
	if d.Tag != nil {
		out.Tag = append(json.RawMessage(nil), d.Tag...)
	}
	if d.Hit != nil {
		out.Hit = (*Hit)(nil).Merge(d.Hit)
	}
	out.Extra = cloneExtras(d.Extra)
	return out
}

type PushboxDefinition struct {
	Box                 *PushboxConfig             `json:"box,omitempty"`
	PersistThroughFrame *int                       `json:"persistThroughFrame,omitempty"`
	Extra               map[string]json.RawMessage `json:"-"`
}

func (d *PushboxDefinition) UnmarshalJSON(data []byte) error {
	type plain PushboxDefinition
	var v plain
	extra, err := decodeWithExtras(data, &v)
	if err != nil {
		return fmt.Errorf("framedata: pushbox definition: %w", err)
	}
	*d = PushboxDefinition(v)
	d.Extra = extra
	return nil
}

func (d PushboxDefinition) MarshalJSON() ([]byte, error) {
	type plain PushboxDefinition
	return encodeWithExtras(plain(d), d.Extra)
}

func (d PushboxDefinition) Defined() bool {
	return d.Box != nil
}

func (d PushboxDefinition) PersistThrough() (int, bool) {
	if d.PersistThroughFrame == nil {
		return 0, false
	}
	return *d.PersistThroughFrame, true
}

func (d PushboxDefinition) Clone() PushboxDefinition {
	out := d
	if d.Box != nil {
		b := *d.Box
		b.Extra = cloneExtras(d.Box.Extra)
		out.Box = &b
	}
	if d.PersistThroughFrame != nil {
		p := *d.PersistThroughFrame
		out.PersistThroughFrame = &p
	}
	out.Extra = cloneExtras(d.Extra)
	return out
}

// FrameDefinition is everything authored for one named animation.
type FrameDefinition struct {
	AnimDef    AnimationDefinition          `json:"animDef"`
	HurtboxDef *FrameMap[BoxDefinition]     `json:"hurtboxDef,omitempty"`
	HitboxDef  *FrameMap[BoxDefinition]     `json:"hitboxDef,omitempty"`
	PushboxDef *FrameMap[PushboxDefinition] `json:"pushboxDef,omitempty"`
	Extra      map[string]json.RawMessage   `json:"-"`
}

func (d *FrameDefinition) UnmarshalJSON(data []byte) error {
	type plain FrameDefinition
	var v plain
	extra, err := decodeWithExtras(data, &v)
	if err != nil {
		return fmt.Errorf("framedata: frame definition: %w", err)
	}
	*d = FrameDefinition(v)
	d.Extra = extra
	return nil
}

func (d FrameDefinition) MarshalJSON() ([]byte, error) {
	type plain FrameDefinition
	return encodeWithExtras(plain(d), d.Extra)
}

// Boxes returns the hurtbox or hitbox map for kind, or nil.
func (d *FrameDefinition) Boxes(kind Kind) *FrameMap[BoxDefinition] {
	if d == nil {
		return nil
	}
	switch kind {
	case KindHurt:
		return d.HurtboxDef
	case KindHit:
		return d.HitboxDef
	default:
		return nil
	}
}

// EnsureBoxes is Boxes, creating the map when it is missing. It returns nil
// for the pushbox kind.
func (d *FrameDefinition) EnsureBoxes(kind Kind) *FrameMap[BoxDefinition] {
	switch kind {
	case KindHurt:
		if d.HurtboxDef == nil {
			d.HurtboxDef = NewFrameMap[BoxDefinition]()
		}
		return d.HurtboxDef
	case KindHit:
		if d.HitboxDef == nil {
			d.HitboxDef = NewFrameMap[BoxDefinition]()
		}
		return d.HitboxDef
	default:
		return nil
	}
}

func (d *FrameDefinition) EnsurePushboxes() *FrameMap[PushboxDefinition] {
	if d.PushboxDef == nil {
		d.PushboxDef = NewFrameMap[PushboxDefinition]()
	}
	return d.PushboxDef
}

// DefaultHit decodes the animation-wide hit payload stored beside the
// per-frame hitbox definitions.
func (d *FrameDefinition) DefaultHit() (*Hit, error) {
	if d == nil || d.HitboxDef == nil {
		return nil, nil
	}
	raw, ok := d.HitboxDef.Extra["hit"]
	if !ok || isNull(raw) {
		return nil, nil
	}
	var h Hit
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil, fmt.Errorf("framedata: default hit: %w", err)
	}
	return &h, nil
}
