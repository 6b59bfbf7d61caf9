package main

import (
	"image"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/cboxeditor/boxedit"
	"github.com/milk9111/cboxeditor/config"
	"github.com/milk9111/cboxeditor/framedata"
	"github.com/milk9111/cboxeditor/overlay"
	"github.com/milk9111/cboxeditor/session"
)

const handleRadius = 4

// Canvas is the editable view of one frame. It knows nothing about ebiten
// input; the editor feeds it pointer positions in screen space.
type Canvas struct {
	sess   *session.Session
	picker *boxedit.Picker
	keys   boxedit.Keys
	opts   config.EditorSpec

	frameKey string
	frame    int
	zoom     float64
	shape    framedata.BoxShape
	kind     framedata.Kind

	bounds image.Rectangle
	drag   *boxDrag
}

// boxDrag is the in-progress edit of one box. Exactly one of hbox and push
// is set.
type boxDrag struct {
	id    overlay.ID
	index int
	hbox  *boxedit.HboxDrag
	push  *boxedit.PushboxDrag
}

func NewCanvas(sess *session.Session, opts config.EditorSpec, keys boxedit.Keys) *Canvas {
	return &Canvas{
		sess:   sess,
		picker: boxedit.NewPicker(handleRadius),
		keys:   keys,
		opts:   opts,
		zoom:   opts.InitialZoom,
	}
}

func (c *Canvas) SetBounds(r image.Rectangle) {
	c.bounds = r
}

// SetFrame shows frame of frameKey. A drag in progress is committed first.
func (c *Canvas) SetFrame(frameKey string, frame int) {
	c.PointerUp()
	n := c.sess.UniqueFrames(frameKey)
	if n <= 0 {
		frame = 0
	} else {
		frame = int(cp.Clamp(float64(frame), 0, float64(n-1)))
	}
	c.frameKey, c.frame = frameKey, frame
}

func (c *Canvas) Frame() (string, int) {
	return c.frameKey, c.frame
}

func (c *Canvas) Zoom() float64 {
	if c.zoom <= 0 {
		return c.opts.InitialZoom
	}
	return c.zoom
}

func (c *Canvas) SetZoom(z float64) {
	c.zoom = cp.Clamp(z, c.opts.MinZoom, c.opts.MaxZoom)
}

func (c *Canvas) SetShape(shape framedata.BoxShape) {
	c.shape = shape
}

func (c *Canvas) SetKind(kind framedata.Kind) {
	c.kind = kind
}

func (c *Canvas) Dragging() bool {
	return c.drag != nil
}

func (c *Canvas) Picker() *boxedit.Picker {
	return c.picker
}

func (c *Canvas) id(kind framedata.Kind) overlay.ID {
	return overlay.NewID(c.frameKey, kind, c.frame)
}

// Offset is the screen position of the sprite's top-left corner. The anchor
// origin always sits at the center of the canvas.
func (c *Canvas) Offset() cp.Vector {
	center := cp.Vector{
		X: float64(c.bounds.Min.X+c.bounds.Max.X) / 2,
		Y: float64(c.bounds.Min.Y+c.bounds.Max.Y) / 2,
	}
	return center.Sub(c.origin().Mult(c.Zoom()))
}

// Anchor is the screen position of the anchor origin.
func (c *Canvas) Anchor() cp.Vector {
	return boxedit.ToScreen(cp.Vector{}, c.Offset(), c.Zoom(), c.origin())
}

func (c *Canvas) origin() cp.Vector {
	return c.sess.Origin(c.frameKey, c.frame)
}

// Persistent reports which categories are only inherited on this frame.
func (c *Canvas) Persistent() map[framedata.Kind]bool {
	return persistentKinds(c.sess, c.frameKey, c.frame)
}

func persistentKinds(sess *session.Session, frameKey string, frame int) map[framedata.Kind]bool {
	state := make(map[framedata.Kind]bool, len(framedata.Kinds))
	for _, kind := range framedata.Kinds {
		if kind.HasRadius() {
			state[kind] = sess.ResolveBoxes(frameKey, frame, kind).Persistent()
		} else {
			state[kind] = sess.ResolvePushbox(frameKey, frame).Persistent()
		}
	}
	return state
}

// Rebuild registers the effective boxes of the frame with the picker.
func (c *Canvas) Rebuild() {
	buildPicker(c.picker, c.sess, c.frameKey, c.frame, c.Offset(), c.Zoom())
}

func buildPicker(p *boxedit.Picker, sess *session.Session, frameKey string, frame int, offset cp.Vector, scale float64) {
	p.Reset()
	if frameKey == "" {
		return
	}
	origin := sess.Origin(frameKey, frame)
	if pd := sess.ResolvePushbox(frameKey, frame); pd.Found() && pd.Def.Box != nil {
		p.AddPushbox(place(boxedit.PushboxFrame(*pd.Def.Box, origin, scale), offset))
	}
	for _, kind := range []framedata.Kind{framedata.KindHurt, framedata.KindHit} {
		r := sess.ResolveBoxes(frameKey, frame, kind)
		if !r.Found() {
			continue
		}
		for i, box := range r.Def.Boxes {
			p.AddBox(kind, i, place(boxedit.BoxFrame(box, origin, scale), offset))
		}
	}
}

func place(f boxedit.Frame, offset cp.Vector) boxedit.Frame {
	f.Center = f.Center.Add(offset)
	return f
}

// PointerDown starts a drag. Boxes defined on this frame are moved or
// reshaped; anywhere else a new box of the current kind is created.
func (c *Canvas) PointerDown(p cp.Vector) {
	if c.frameKey == "" || !c.sess.Loaded() {
		return
	}
	c.Rebuild()
	if t, ok := c.picker.Pick(p); ok && !c.Persistent()[t.Kind] {
		c.beginEdit(t, p)
		return
	}
	c.create(p)
}

func (c *Canvas) beginEdit(t boxedit.Target, p cp.Vector) {
	id := c.id(t.Kind)
	if t.Kind == framedata.KindPush {
		pd, ok := c.sess.Pushbox(id)
		if !ok || pd.Box == nil {
			return
		}
		d := &boxDrag{id: id}
		if t.Part == boxedit.PartEdge {
			d.push = boxedit.BeginPushboxResize(*pd.Box, p, t.Edge)
		} else {
			d.push = boxedit.BeginPushboxMove(*pd.Box, p)
		}
		c.drag = d
		return
	}

	def, ok := c.sess.Boxes(id)
	if !ok || t.Index >= len(def.Boxes) {
		return
	}
	handle := boxedit.HandleNone
	if t.Part == boxedit.PartHandle {
		handle = t.Handle
	}
	c.drag = &boxDrag{id: id, index: t.Index, hbox: boxedit.BeginHboxDrag(def.Boxes[t.Index], p, handle)}
}

func (c *Canvas) create(p cp.Vector) {
	local := boxedit.ToLocal(p, c.Offset(), c.Zoom(), c.origin())
	id := c.id(c.kind)
	if c.kind == framedata.KindPush {
		box := boxedit.NewPushbox(local)
		c.sess.SetPushbox(id, box)
		c.drag = &boxDrag{id: id, push: boxedit.BeginCreatePushbox(box, p)}
		return
	}
	box := boxedit.NewHbox(c.shape, local, c.opts.NewBoxRadius)
	index := c.sess.AddBox(id, box)
	c.drag = &boxDrag{id: id, index: index, hbox: boxedit.BeginCreateHbox(box, p)}
}

// PointerMove stages the geometry under the current pointer.
func (c *Canvas) PointerMove(p cp.Vector) {
	d := c.drag
	if d == nil {
		return
	}
	if d.push != nil {
		pd, ok := c.sess.Pushbox(d.id)
		if !ok || pd.Box == nil {
			return
		}
		if next := d.push.Move(*pd.Box, p, c.Zoom()); !next.Equal(*pd.Box) {
			c.sess.SetPushbox(d.id, next)
		}
		return
	}
	cur, ok := c.dragged()
	if !ok {
		return
	}
	if next := d.hbox.Move(cur, p, c.Zoom()); !next.Equal(cur) {
		c.sess.SetBox(d.id, d.index, next)
	}
}

// PointerUp commits the drag.
func (c *Canvas) PointerUp() {
	if c.drag == nil {
		return
	}
	c.sess.Commit(c.drag.id)
	c.drag = nil
}

// Key applies a bound key to the drag in progress. It reports whether the
// key did anything.
func (c *Canvas) Key(key string) bool {
	d := c.drag
	if d == nil {
		return false
	}
	switch action := c.keys.Action(key); action {
	case boxedit.ActionDelete:
		c.sess.DeleteBox(d.id, d.index)
		c.drag = nil
		return true
	case boxedit.ActionGrow, boxedit.ActionShrink:
		cur, ok := c.dragged()
		if !ok {
			return false
		}
		c.sess.SetBox(d.id, d.index, boxedit.Nudge(cur, action, c.opts.RadiusStep, c.opts.MinRadius))
		return true
	}
	return false
}

func (c *Canvas) dragged() (framedata.BoxConfig, bool) {
	d := c.drag
	if d == nil || d.hbox == nil {
		return framedata.BoxConfig{}, false
	}
	def, ok := c.sess.Boxes(d.id)
	if !ok || d.index >= len(def.Boxes) {
		return framedata.BoxConfig{}, false
	}
	return def.Boxes[d.index], true
}

// Wheel resizes the hurtbox or hitbox under p, or zooms when there is none.
// dy is positive when scrolling up.
func (c *Canvas) Wheel(p cp.Vector, dy float64) {
	if c.drag != nil || dy == 0 {
		return
	}
	c.Rebuild()
	if t, ok := c.picker.Pick(p); ok && t.Kind.HasRadius() && !c.Persistent()[t.Kind] {
		id := c.id(t.Kind)
		def, ok := c.sess.Boxes(id)
		if ok && t.Index < len(def.Boxes) {
			c.sess.SetBox(id, t.Index, boxedit.Wheel(def.Boxes[t.Index], -dy*c.opts.WheelRadiusScale, c.opts.MinRadius))
			c.sess.Commit(id)
			return
		}
	}
	c.SetZoom(c.Zoom() + dy*c.opts.ZoomStep)
}

// Copy returns the box under p.
func (c *Canvas) Copy(p cp.Vector) (session.Clip, bool) {
	c.Rebuild()
	t, ok := c.picker.Pick(p)
	if !ok {
		return session.Clip{}, false
	}
	return c.sess.Copy(c.id(t.Kind), t.Index)
}

// Paste puts clip on the frame. Pushboxes always go to the pushbox; boxes go
// to the category under p, or the current kind.
func (c *Canvas) Paste(p cp.Vector, clip session.Clip, mode session.PasteMode) error {
	kind := c.kind
	if clip.Pushbox != nil {
		kind = framedata.KindPush
	} else {
		c.Rebuild()
		if t, ok := c.picker.Pick(p); ok && t.Kind != framedata.KindPush {
			kind = t.Kind
		}
	}
	return c.sess.Paste(c.id(kind), clip, mode)
}

// Hover returns the box under p as of the last Rebuild.
func (c *Canvas) Hover(p cp.Vector) *boxedit.Target {
	t, ok := c.picker.Pick(p)
	if !ok {
		return nil
	}
	return &t
}
