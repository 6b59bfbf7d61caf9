package overlay

import (
	"encoding/json"
	"maps"

	"github.com/milk9111/cboxeditor/framedata"
)

// BoxFields overrides individual coordinates of one box. Nil fields keep the
// underlying value.
type BoxFields struct {
	X, Y           *float64
	X1, Y1, X2, Y2 *float64
	R              *float64
}

// FieldsOf returns fields that set every coordinate meaningful for b's shape.
func FieldsOf(b framedata.BoxConfig) BoxFields {
	if b.Shape == framedata.ShapeCapsule {
		return BoxFields{X1: ptr(b.X1), Y1: ptr(b.Y1), X2: ptr(b.X2), Y2: ptr(b.Y2), R: ptr(b.R)}
	}
	return BoxFields{X: ptr(b.X), Y: ptr(b.Y), R: ptr(b.R)}
}

func (f BoxFields) Merge(next BoxFields) BoxFields {
	return BoxFields{
		X:  pick(f.X, next.X),
		Y:  pick(f.Y, next.Y),
		X1: pick(f.X1, next.X1),
		Y1: pick(f.Y1, next.Y1),
		X2: pick(f.X2, next.X2),
		Y2: pick(f.Y2, next.Y2),
		R:  pick(f.R, next.R),
	}
}

func (f BoxFields) Apply(b framedata.BoxConfig) framedata.BoxConfig {
	set(&b.X, f.X)
	set(&b.Y, f.Y)
	set(&b.X1, f.X1)
	set(&b.Y1, f.Y1)
	set(&b.X2, f.X2)
	set(&b.Y2, f.Y2)
	set(&b.R, f.R)
	return b
}

type PushboxFields struct {
	X, Y          *float64
	Width, Height *float64
}

func PushboxFieldsOf(p framedata.PushboxConfig) PushboxFields {
	return PushboxFields{X: ptr(p.X), Y: ptr(p.Y), Width: ptr(p.Width), Height: ptr(p.Height)}
}

func (f PushboxFields) Merge(next PushboxFields) PushboxFields {
	return PushboxFields{
		X:      pick(f.X, next.X),
		Y:      pick(f.Y, next.Y),
		Width:  pick(f.Width, next.Width),
		Height: pick(f.Height, next.Height),
	}
}

func (f PushboxFields) Apply(p framedata.PushboxConfig) framedata.PushboxConfig {
	set(&p.X, f.X)
	set(&p.Y, f.Y)
	set(&p.Width, f.Width)
	set(&p.Height, f.Height)
	return p
}

// Patch is a partial definition. Boxes, when non-nil, replaces the whole box
// list; BoxEdits then adjust single boxes by index. Box applies to pushbox
// definitions only.
type Patch struct {
	Boxes               []framedata.BoxConfig
	BoxEdits            map[int]BoxFields
	Box                 *PushboxFields
	PersistThroughFrame *int
	Tag                 json.RawMessage
	Hit                 *framedata.Hit
}

func BoxesPatch(boxes []framedata.BoxConfig) Patch {
	if boxes == nil {
		boxes = []framedata.BoxConfig{}
	}
	return Patch{Boxes: cloneBoxes(boxes)}
}

func BoxEditPatch(index int, fields BoxFields) Patch {
	return Patch{BoxEdits: map[int]BoxFields{index: fields}}
}

func PushboxPatch(p framedata.PushboxConfig) Patch {
	f := PushboxFieldsOf(p)
	return Patch{Box: &f}
}

// Merge lays next over p. Fields set in next win; nested values combine.
func (p Patch) Merge(next Patch) Patch {
	out := Patch{
		Boxes:               p.Boxes,
		BoxEdits:            maps.Clone(p.BoxEdits),
		Box:                 p.Box,
		PersistThroughFrame: p.PersistThroughFrame,
		Tag:                 p.Tag,
		Hit:                 p.Hit,
	}
	if next.Boxes != nil {
		out.Boxes = cloneBoxes(next.Boxes)
		out.BoxEdits = nil
	}
	for i, f := range next.BoxEdits {
		if out.BoxEdits == nil {
			out.BoxEdits = make(map[int]BoxFields)
		}
		out.BoxEdits[i] = out.BoxEdits[i].Merge(f)
	}
	if next.Box != nil {
		var f PushboxFields
		if out.Box != nil {
			f = *out.Box
		}
		f = f.Merge(*next.Box)
		out.Box = &f
	}
	if next.PersistThroughFrame != nil {
		out.PersistThroughFrame = next.PersistThroughFrame
	}
	if next.Tag != nil {
		out.Tag = next.Tag
	}
	if next.Hit != nil {
		out.Hit = out.Hit.Merge(next.Hit)
	}
	return out
}

func (p Patch) ApplyBoxes(base framedata.BoxDefinition) framedata.BoxDefinition {
	out := base.Clone()
	if p.Boxes != nil {
		out.Boxes = cloneBoxes(p.Boxes)
	}
	for i, f := range p.BoxEdits {
		if i >= 0 && i < len(out.Boxes) {
			out.Boxes[i] = f.Apply(out.Boxes[i])
		}
	}
	if p.PersistThroughFrame != nil {
		v := *p.PersistThroughFrame
		out.PersistThroughFrame = &v
	}
	if p.Tag != nil {
		out.Tag = append(json.RawMessage(nil), p.Tag...)
	}
	if p.Hit != nil {
		out.Hit = out.Hit.Merge(p.Hit)
	}
	return out
}

func (p Patch) ApplyPushbox(base framedata.PushboxDefinition) framedata.PushboxDefinition {
	out := base.Clone()
	if p.Box != nil {
		var b framedata.PushboxConfig
		if out.Box != nil {
			b = *out.Box
		}
		b = p.Box.Apply(b)
		out.Box = &b
	}
	if p.PersistThroughFrame != nil {
		v := *p.PersistThroughFrame
		out.PersistThroughFrame = &v
	}
	return out
}

func cloneBoxes(boxes []framedata.BoxConfig) []framedata.BoxConfig {
	if boxes == nil {
		return nil
	}
	out := make([]framedata.BoxConfig, len(boxes))
	copy(out, boxes)
	return out
}

func ptr(v float64) *float64 {
	return &v
}

func pick(prev, next *float64) *float64 {
	if next != nil {
		return next
	}
	return prev
}

func set(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
