package boxedit

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/cboxeditor/framedata"
)

// NewHbox places a box of the given shape at p. A new capsule starts with
// both endpoints on p.
func NewHbox(shape framedata.BoxShape, p cp.Vector, r float64) framedata.BoxConfig {
	if shape == framedata.ShapeCapsule {
		return framedata.NewCapsule(p.X, p.Y, p.X, p.Y, r)
	}
	return framedata.NewCircle(p.X, p.Y, r)
}

func NewPushbox(p cp.Vector) framedata.PushboxConfig {
	return framedata.PushboxConfig{X: p.X, Y: p.Y}
}

// BeginCreateHbox starts the drag that follows placing a new box. Capsules
// stretch from the second endpoint, circles follow the pointer.
func BeginCreateHbox(box framedata.BoxConfig, pointer cp.Vector) *HboxDrag {
	return BeginHboxDrag(box, pointer, Handle2)
}

// BeginCreatePushbox sizes a new pushbox on both axes.
func BeginCreatePushbox(box framedata.PushboxConfig, pointer cp.Vector) *PushboxDrag {
	return &PushboxDrag{Origin: pointer, Original: box, Mode: ModeSize, AxisX: true, AxisY: true}
}
