package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/cboxeditor/boxedit"
)

const (
	circleSegments = 32
	strokeWidth    = 1.5
	fillAlpha      = 0.35
	crosshairSize  = 6
)

// DrawBoxes draws every shape registered with picker onto screen. The picker
// already holds the boxes in screen space.
func DrawBoxes(screen *ebiten.Image, picker *boxedit.Picker, style Style, state State) {
	if screen == nil || picker == nil {
		return
	}
	cp.DrawSpace(picker.Space(), &boxDrawer{screen: screen, style: style, state: state})
}

// DrawOrigin marks the anchor point at pos.
func DrawOrigin(screen *ebiten.Image, pos cp.Vector, clr color.Color) {
	x, y := float32(pos.X), float32(pos.Y)
	vector.StrokeLine(screen, x-crosshairSize, y, x+crosshairSize, y, 1, clr, false)
	vector.StrokeLine(screen, x, y-crosshairSize, x, y+crosshairSize, 1, clr, false)
}

type boxDrawer struct {
	screen *ebiten.Image
	style  Style
	state  State
}

func (d *boxDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	vector.FillCircle(d.screen, float32(pos.X), float32(pos.Y), float32(radius), faded(fill), true)
	d.drawPolygon(circlePoints(pos, radius, circleSegments), fill)
}

func (d *boxDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *boxDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		d.drawLine(a, b, fill)
		return
	}
	d.drawPolygon(capsulePoints(a, b, radius, circleSegments), fill)
	d.drawLine(a, b, fill)
}

func (d *boxDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	verts = verts[:count]
	bb := boundsOf(verts)
	vector.FillRect(d.screen, float32(bb.L), float32(bb.B), float32(bb.R-bb.L), float32(bb.T-bb.B), faded(fill), false)
	d.drawPolygon(verts, fill)
}

func (d *boxDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	DrawOrigin(d.screen, pos, toNRGBA(fill))
}

func (d *boxDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *boxDrawer) OutlineColor() cp.FColor {
	return toFColor(d.style.Selected)
}

func (d *boxDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	t, ok := shape.UserData.(boxedit.Target)
	if !ok {
		return toFColor(d.style.Selected)
	}
	return toFColor(d.style.TargetColor(t, d.state))
}

func (d *boxDrawer) ConstraintColor() cp.FColor {
	return toFColor(d.style.Selected)
}

func (d *boxDrawer) CollisionPointColor() cp.FColor {
	return toFColor(d.style.Selected)
}

func (d *boxDrawer) Data() interface{} {
	return nil
}

func (d *boxDrawer) drawLine(a, b cp.Vector, clr cp.FColor) {
	vector.StrokeLine(d.screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), strokeWidth, toNRGBA(clr), true)
}

func (d *boxDrawer) drawPolygon(verts []cp.Vector, clr cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], clr)
	}
}

func faded(c cp.FColor) color.NRGBA {
	c.A *= fillAlpha
	return toNRGBA(c)
}

func circlePoints(center cp.Vector, radius float64, segments int) []cp.Vector {
	points := make([]cp.Vector, 0, segments)
	for i := 0; i < segments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(segments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	return points
}

// capsulePoints outlines the stadium around segment ab: half a circle around
// each end joined by straight sides.
func capsulePoints(a, b cp.Vector, radius float64, segments int) []cp.Vector {
	dir := b.Sub(a)
	angle := math.Atan2(dir.Y, dir.X)
	half := segments / 2
	points := make([]cp.Vector, 0, 2*(half+1))
	for i := 0; i <= half; i++ {
		t := angle - math.Pi/2 + math.Pi*float64(i)/float64(half)
		points = append(points, cp.Vector{X: b.X + math.Cos(t)*radius, Y: b.Y + math.Sin(t)*radius})
	}
	for i := 0; i <= half; i++ {
		t := angle + math.Pi/2 + math.Pi*float64(i)/float64(half)
		points = append(points, cp.Vector{X: a.X + math.Cos(t)*radius, Y: a.Y + math.Sin(t)*radius})
	}
	return points
}

func boundsOf(verts []cp.Vector) cp.BB {
	bb := cp.BB{L: math.Inf(1), B: math.Inf(1), R: math.Inf(-1), T: math.Inf(-1)}
	for _, v := range verts {
		bb.L = math.Min(bb.L, v.X)
		bb.B = math.Min(bb.B, v.Y)
		bb.R = math.Max(bb.R, v.X)
		bb.T = math.Max(bb.T, v.Y)
	}
	return bb
}
