package boxedit

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/cboxeditor/common"
	"github.com/milk9111/cboxeditor/framedata"
)

type Handle int

const (
	HandleNone Handle = iota
	Handle1
	Handle2
)

func (h Handle) String() string {
	switch h {
	case Handle1:
		return "handle1"
	case Handle2:
		return "handle2"
	default:
		return "none"
	}
}

// HboxDrag tracks a hurtbox or hitbox drag from mouse down to mouse up.
// A nil drag is inactive and every update on it is a no-op.
type HboxDrag struct {
	Origin   cp.Vector
	Original framedata.BoxConfig
	Handle   Handle
}

func BeginHboxDrag(box framedata.BoxConfig, pointer cp.Vector, handle Handle) *HboxDrag {
	if box.Shape != framedata.ShapeCapsule {
		handle = HandleNone
	}
	return &HboxDrag{Origin: pointer, Original: box, Handle: handle}
}

// Move returns the box for a pointer at screen position pointer. Geometry is
// rebuilt from the box at drag start; the radius always comes from current so
// wheel and key resizes made mid-drag survive.
func (d *HboxDrag) Move(current framedata.BoxConfig, pointer cp.Vector, scale float64) framedata.BoxConfig {
	if d == nil || scale == 0 {
		return current
	}
	delta := pointer.Sub(d.Origin).Mult(1 / scale)
	out := d.Original
	out.R = current.R
	out.Extra = current.Extra

	if out.Shape != framedata.ShapeCapsule {
		out.X = shift(d.Original.X, delta.X)
		out.Y = shift(d.Original.Y, delta.Y)
		return out
	}

	if d.Handle != Handle2 {
		out.X1 = shift(d.Original.X1, delta.X)
		out.Y1 = shift(d.Original.Y1, delta.Y)
	}
	if d.Handle != Handle1 {
		out.X2 = shift(d.Original.X2, delta.X)
		out.Y2 = shift(d.Original.Y2, delta.Y)
	}
	return out
}

// shift moves v by delta and snaps it to a half unit. An axis the pointer
// has not moved along keeps its authored value.
func shift(v, delta float64) float64 {
	if delta == 0 {
		return v
	}
	return common.RoundHalf(v + delta)
}

type Mode int

const (
	ModeSize Mode = iota
	ModePosition
)

func (m Mode) String() string {
	if m == ModePosition {
		return "position"
	}
	return "size"
}

type Edge int

const (
	EdgeTop Edge = iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

// Horizontal reports whether the edge moves along the x axis.
func (e Edge) Horizontal() bool {
	return e == EdgeLeft || e == EdgeRight
}

// PushboxDrag tracks a pushbox drag. AxisX and AxisY select which axes the
// pointer delta applies to.
type PushboxDrag struct {
	Origin   cp.Vector
	Original framedata.PushboxConfig
	Mode     Mode
	AxisX    bool
	AxisY    bool
}

// BeginPushboxMove starts dragging the whole box.
func BeginPushboxMove(box framedata.PushboxConfig, pointer cp.Vector) *PushboxDrag {
	return &PushboxDrag{Origin: pointer, Original: box, Mode: ModePosition, AxisX: true, AxisY: true}
}

// BeginPushboxResize starts dragging one edge. Both edges of an axis grow the
// box the same way; a drag that passes zero flips the box instead.
func BeginPushboxResize(box framedata.PushboxConfig, pointer cp.Vector, edge Edge) *PushboxDrag {
	return &PushboxDrag{
		Origin:   pointer,
		Original: box,
		Mode:     ModeSize,
		AxisX:    edge.Horizontal(),
		AxisY:    !edge.Horizontal(),
	}
}

func (d *PushboxDrag) Move(current framedata.PushboxConfig, pointer cp.Vector, scale float64) framedata.PushboxConfig {
	if d == nil || scale == 0 {
		return current
	}
	delta := pointer.Sub(d.Origin).Mult(1 / scale)
	out := d.Original
	out.Extra = current.Extra

	if d.AxisX {
		out.X, out.Width = d.apply(d.Original.X, d.Original.Width, delta.X)
	}
	if d.AxisY {
		out.Y, out.Height = d.apply(d.Original.Y, d.Original.Height, delta.Y)
	}
	return out
}

func (d *PushboxDrag) apply(pos, size, delta float64) (float64, float64) {
	if delta == 0 {
		return pos, size
	}
	if d.Mode == ModePosition {
		return common.RoundHalf(pos + delta), size
	}
	if delta < -size {
		return common.RoundHalf(pos + delta + size), -common.RoundHalf(delta + size)
	}
	return pos, common.RoundHalf(size + delta)
}

// Wheel shrinks the radius by deltaY, never below min.
func Wheel(current framedata.BoxConfig, deltaY, min float64) framedata.BoxConfig {
	current.R = math.Max(min, common.RoundHalf(current.R-deltaY))
	return current
}

type Action int

const (
	ActionNone Action = iota
	ActionDelete
	ActionGrow
	ActionShrink
)

// Keys binds key names to drag actions.
type Keys struct {
	Delete string
	Grow   string
	Shrink string
}

var DefaultKeys = Keys{Delete: "q", Grow: "w", Shrink: "s"}

func (k Keys) Action(key string) Action {
	switch key {
	case "":
		return ActionNone
	case k.Delete:
		return ActionDelete
	case k.Grow:
		return ActionGrow
	case k.Shrink:
		return ActionShrink
	}
	return ActionNone
}

// Nudge applies a grow or shrink action to the radius, never leaving it
// below min. Other actions leave the box as is.
func Nudge(current framedata.BoxConfig, action Action, step, min float64) framedata.BoxConfig {
	switch action {
	case ActionGrow:
		current.R = math.Max(min, current.R+step)
	case ActionShrink:
		current.R = math.Max(min, current.R-step)
	}
	return current
}
