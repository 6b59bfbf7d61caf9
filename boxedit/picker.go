package boxedit

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/cboxeditor/framedata"
)

const (
	bodyCategory uint = 1 << iota
	handleCategory
)

type Part int

const (
	PartBody Part = iota
	PartHandle
	PartEdge
)

// Target is what the pointer landed on. Index is the box index within its
// definition and is zero for pushboxes.
type Target struct {
	Kind   framedata.Kind
	Index  int
	Part   Part
	Handle Handle
	Edge   Edge
}

// Picker hit-tests the pointer against the boxes drawn on the canvas. Shapes
// live in screen space as static chipmunk shapes.
type Picker struct {
	space        *cp.Space
	handleRadius float64
}

func NewPicker(handleRadius float64) *Picker {
	return &Picker{space: cp.NewSpace(), handleRadius: handleRadius}
}

// Reset drops every shape so the picker can be rebuilt for the next frame.
func (p *Picker) Reset() {
	p.space = cp.NewSpace()
}

func (p *Picker) Space() *cp.Space {
	return p.space
}

func (p *Picker) add(shape *cp.Shape, category uint, target Target) {
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, category, cp.ALL_CATEGORIES))
	shape.UserData = target
	p.space.AddShape(shape)
}

// AddBox registers a hurtbox or hitbox drawn at frame.
func (p *Picker) AddBox(kind framedata.Kind, index int, frame Frame) {
	body := p.space.StaticBody
	target := Target{Kind: kind, Index: index, Part: PartBody}

	if frame.Shape != FrameCapsule {
		p.add(cp.NewCircle(body, frame.Radius, frame.Center), bodyCategory, target)
		return
	}

	a, b := frame.Endpoints()
	p.add(cp.NewSegment(body, a, b, frame.Radius), bodyCategory, target)
	p.add(cp.NewCircle(body, p.handleRadius, a), handleCategory,
		Target{Kind: kind, Index: index, Part: PartHandle, Handle: Handle1})
	p.add(cp.NewCircle(body, p.handleRadius, b), handleCategory,
		Target{Kind: kind, Index: index, Part: PartHandle, Handle: Handle2})
}

// AddPushbox registers the pushbox rectangle and its four edges.
func (p *Picker) AddPushbox(frame Frame) {
	body := p.space.StaticBody
	tl := frame.TopLeft()
	br := tl.Add(cp.Vector{X: frame.Width, Y: frame.Height})

	bb := cp.BB{L: tl.X, B: tl.Y, R: br.X, T: br.Y}
	p.add(cp.NewBox2(body, bb, 0), bodyCategory, Target{Kind: framedata.KindPush, Part: PartBody})

	edges := []struct {
		edge Edge
		a, b cp.Vector
	}{
		{EdgeTop, tl, cp.Vector{X: br.X, Y: tl.Y}},
		{EdgeBottom, cp.Vector{X: tl.X, Y: br.Y}, br},
		{EdgeLeft, tl, cp.Vector{X: tl.X, Y: br.Y}},
		{EdgeRight, cp.Vector{X: br.X, Y: tl.Y}, br},
	}
	for _, e := range edges {
		p.add(cp.NewSegment(body, e.a, e.b, p.handleRadius), handleCategory,
			Target{Kind: framedata.KindPush, Part: PartEdge, Edge: e.edge})
	}
}

// Pick returns the target under point. Handles and edges win over bodies.
func (p *Picker) Pick(point cp.Vector) (Target, bool) {
	for _, mask := range []uint{handleCategory, bodyCategory} {
		filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, mask)
		info := p.space.PointQueryNearest(point, 0, filter)
		if info == nil || info.Shape == nil {
			continue
		}
		if target, ok := info.Shape.UserData.(Target); ok {
			return target, true
		}
	}
	return Target{}, false
}
