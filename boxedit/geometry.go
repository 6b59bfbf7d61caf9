package boxedit

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/cboxeditor/common"
	"github.com/milk9111/cboxeditor/framedata"
)

type FrameShape int

const (
	FrameCircle FrameShape = iota
	FrameCapsule
	FrameRect
)

// Frame is where a box lands on screen. Width is the straight part of a
// capsule; the rounded caps add Radius on each end.
type Frame struct {
	Shape    FrameShape
	Center   cp.Vector
	Width    float64
	Height   float64
	Rotation float64
	Radius   float64
}

// OuterWidth is the full width including capsule caps.
func (f Frame) OuterWidth() float64 {
	if f.Shape == FrameCapsule {
		return f.Width + 2*f.Radius
	}
	return f.Width
}

// TopLeft is the corner of the unrotated frame.
func (f Frame) TopLeft() cp.Vector {
	return cp.Vector{X: f.Center.X - f.OuterWidth()/2, Y: f.Center.Y - f.Height/2}
}

// Endpoints returns the capsule segment ends in screen space. For other
// shapes both ends are the center.
func (f Frame) Endpoints() (cp.Vector, cp.Vector) {
	if f.Shape != FrameCapsule {
		return f.Center, f.Center
	}
	half := cp.ForAngle(f.Rotation).Mult(f.Width / 2)
	return f.Center.Sub(half), f.Center.Add(half)
}

func CircleFrame(box framedata.BoxConfig, origin cp.Vector, scale float64) Frame {
	return Frame{
		Shape:  FrameCircle,
		Center: box.Center().Add(origin).Mult(scale),
		Width:  2 * box.R * scale,
		Height: 2 * box.R * scale,
		Radius: box.R * scale,
	}
}

func CapsuleFrame(box framedata.BoxConfig, origin cp.Vector, scale float64) Frame {
	p1, p2 := box.P1(), box.P2()
	return Frame{
		Shape:    FrameCapsule,
		Center:   p1.Lerp(p2, 0.5).Add(origin).Mult(scale),
		Width:    p2.Sub(p1).Length() * scale,
		Height:   2 * box.R * scale,
		Rotation: p2.Sub(p1).ToAngle(),
		Radius:   box.R * scale,
	}
}

func PushboxFrame(box framedata.PushboxConfig, origin cp.Vector, scale float64) Frame {
	w, h := box.Width*scale, box.Height*scale
	topLeft := cp.Vector{X: origin.X + box.X, Y: origin.Y + box.Y}.Mult(scale)
	return Frame{
		Shape:  FrameRect,
		Center: topLeft.Add(cp.Vector{X: w / 2, Y: h / 2}),
		Width:  w,
		Height: h,
	}
}

// BoxFrame picks the frame function for the box's shape.
func BoxFrame(box framedata.BoxConfig, origin cp.Vector, scale float64) Frame {
	if box.Shape == framedata.ShapeCapsule {
		return CapsuleFrame(box, origin, scale)
	}
	return CircleFrame(box, origin, scale)
}

// ToLocal converts a screen position into box units relative to the anchor
// origin of a canvas drawn at canvasOffset and scale.
func ToLocal(screen, canvasOffset cp.Vector, scale float64, origin cp.Vector) cp.Vector {
	if scale == 0 {
		return cp.Vector{}
	}
	return common.RoundHalfVec(screen.Sub(canvasOffset).Mult(1 / scale).Sub(origin))
}

// ToScreen is the inverse of ToLocal without rounding.
func ToScreen(local, canvasOffset cp.Vector, scale float64, origin cp.Vector) cp.Vector {
	return local.Add(origin).Mult(scale).Add(canvasOffset)
}
