package main

import (
	"errors"
	"image"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/cboxeditor/config"
	"github.com/milk9111/cboxeditor/framedata"
	"github.com/milk9111/cboxeditor/overlay"
	"github.com/milk9111/cboxeditor/session"
)

// With no sprite sheet the anchor sits at the canvas center (200,200) and
// the default zoom is 5, so the hurtbox is drawn at (200,150) radius 40 and
// the frame 2 pushbox spans (300,200)-(350,250).
const testDefinition = `{"frameDef": {
  "idle": {
    "animDef": {"frames": 3, "assetKey": "ryu", "prefix": "idle", "frameRate": 10},
    "hurtboxDef": {"0": {"boxes": [{"x": 0, "y": -10, "r": 8}], "persistThroughFrame": 2}},
    "pushboxDef": {"2": {"box": {"x": 20, "y": 0, "width": 10, "height": 10}}}
  }
}}`

func v(x, y float64) cp.Vector {
	return cp.Vector{X: x, Y: y}
}

func newCanvas(t *testing.T) (*Canvas, *session.Session) {
	t.Helper()
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	sess := session.New(cfg)
	if err := sess.LoadDefinition("ryu.json", []byte(testDefinition)); err != nil {
		t.Fatalf("LoadDefinition: %v", err)
	}
	c := NewCanvas(sess, cfg.Editor, boxKeys(cfg))
	c.SetBounds(image.Rect(0, 0, 400, 400))
	c.SetFrame("idle", 0)
	return c, sess
}

func boxes(t *testing.T, sess *session.Session, kind framedata.Kind, frame int) []framedata.BoxConfig {
	t.Helper()
	def, ok := sess.Boxes(overlay.NewID("idle", kind, frame))
	if !ok {
		t.Fatalf("no %v definition on frame %d", kind, frame)
	}
	return def.Boxes
}

func TestCanvasCreateCircle(t *testing.T) {
	c, sess := newCanvas(t)
	c.SetKind(framedata.KindHurt)
	c.SetShape(framedata.ShapeCircle)

	c.PointerDown(v(300, 300))
	if !c.Dragging() {
		t.Fatalf("expected a create drag")
	}
	c.PointerMove(v(310, 300))
	c.PointerUp()

	got := boxes(t, sess, framedata.KindHurt, 0)
	if len(got) != 2 {
		t.Fatalf("expected the new box to be appended, got %v", got)
	}
	if want := framedata.NewCircle(22, 20, 10); !got[1].Equal(want) {
		t.Fatalf("expected %v, got %v", want, got[1])
	}
	if !sess.Dirty() {
		t.Fatalf("pointer up should commit")
	}
}

func TestCanvasMoveExisting(t *testing.T) {
	c, sess := newCanvas(t)
	c.PointerDown(v(200, 150))
	c.PointerMove(v(205, 160))
	if sess.Dirty() {
		t.Fatalf("edits should stay staged while dragging")
	}
	c.PointerUp()

	got := boxes(t, sess, framedata.KindHurt, 0)
	if want := framedata.NewCircle(1, -8, 8); len(got) != 1 || !got[0].Equal(want) {
		t.Fatalf("expected [%v], got %v", want, got)
	}
}

func TestCanvasKeys(t *testing.T) {
	t.Run("grow", func(t *testing.T) {
		c, sess := newCanvas(t)
		c.PointerDown(v(200, 150))
		if !c.Key("w") {
			t.Fatalf("grow should apply while dragging")
		}
		if c.Key("x") {
			t.Fatalf("unbound key should do nothing")
		}
		c.PointerUp()
		if got := boxes(t, sess, framedata.KindHurt, 0)[0].R; got != 8.5 {
			t.Fatalf("expected radius 8.5, got %v", got)
		}
	})

	t.Run("delete_last_box", func(t *testing.T) {
		c, sess := newCanvas(t)
		c.PointerDown(v(200, 150))
		if !c.Key("q") {
			t.Fatalf("delete should apply while dragging")
		}
		if c.Dragging() {
			t.Fatalf("delete should end the drag")
		}
		if _, ok := sess.Boxes(overlay.NewID("idle", framedata.KindHurt, 0)); ok {
			t.Fatalf("deleting the only box should delete the definition")
		}
	})

	t.Run("idle", func(t *testing.T) {
		c, _ := newCanvas(t)
		if c.Key("q") {
			t.Fatalf("keys should do nothing without a drag")
		}
	})
}

func TestCanvasWheel(t *testing.T) {
	c, sess := newCanvas(t)
	c.Wheel(v(200, 150), 1)
	if got := boxes(t, sess, framedata.KindHurt, 0)[0].R; got != 9 {
		t.Fatalf("expected radius 9, got %v", got)
	}
	if !sess.Dirty() {
		t.Fatalf("wheel resize should commit")
	}

	c.Wheel(v(50, 350), 1)
	if got := c.Zoom(); got != 5.5 {
		t.Fatalf("expected zoom 5.5, got %v", got)
	}
	c.Wheel(v(50, 350), -100)
	if got := c.Zoom(); got != 1 {
		t.Fatalf("zoom should clamp at 1, got %v", got)
	}
}

func TestCanvasPersistentCreatesNew(t *testing.T) {
	c, sess := newCanvas(t)
	c.SetFrame("idle", 1)
	if !c.Persistent()[framedata.KindHurt] {
		t.Fatalf("frame 1 hurtboxes should be inherited")
	}
	c.PointerDown(v(200, 150))
	c.PointerUp()

	got := boxes(t, sess, framedata.KindHurt, 1)
	if want := framedata.NewCircle(0, -10, 10); len(got) != 1 || !got[0].Equal(want) {
		t.Fatalf("expected a new definition [%v], got %v", want, got)
	}
	if want := framedata.NewCircle(0, -10, 8); !boxes(t, sess, framedata.KindHurt, 0)[0].Equal(want) {
		t.Fatalf("frame 0 should be untouched")
	}
}

func TestCanvasPushbox(t *testing.T) {
	t.Run("resize_edge", func(t *testing.T) {
		c, sess := newCanvas(t)
		c.SetFrame("idle", 2)
		c.PointerDown(v(350, 225))
		c.PointerMove(v(360, 225))
		c.PointerUp()

		pd, ok := sess.Pushbox(overlay.NewID("idle", framedata.KindPush, 2))
		if !ok || pd.Box == nil {
			t.Fatalf("expected a pushbox")
		}
		want := framedata.PushboxConfig{X: 20, Y: 0, Width: 12, Height: 10}
		if !pd.Box.Equal(want) {
			t.Fatalf("expected %v, got %v", want, *pd.Box)
		}
	})

	t.Run("create", func(t *testing.T) {
		c, sess := newCanvas(t)
		c.SetKind(framedata.KindPush)
		c.PointerDown(v(300, 300))
		c.PointerMove(v(310, 320))
		c.PointerUp()

		pd, ok := sess.Pushbox(overlay.NewID("idle", framedata.KindPush, 0))
		if !ok || pd.Box == nil {
			t.Fatalf("expected a pushbox")
		}
		want := framedata.PushboxConfig{X: 20, Y: 20, Width: 2, Height: 4}
		if !pd.Box.Equal(want) {
			t.Fatalf("expected %v, got %v", want, *pd.Box)
		}
	})
}

func TestCanvasCopyPaste(t *testing.T) {
	c, sess := newCanvas(t)
	clip, ok := c.Copy(v(200, 150))
	if !ok || len(clip.Boxes) != 1 {
		t.Fatalf("expected to copy one box, got %+v", clip)
	}
	if _, ok := c.Copy(v(50, 350)); ok {
		t.Fatalf("copy over empty space should fail")
	}

	c.SetKind(framedata.KindHit)
	if err := c.Paste(v(50, 350), clip, session.PasteAppend); err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if got := boxes(t, sess, framedata.KindHit, 0); len(got) != 1 || !got[0].Equal(clip.Boxes[0]) {
		t.Fatalf("expected pasted hitbox, got %v", got)
	}

	c.SetKind(framedata.KindPush)
	if err := c.Paste(v(50, 350), clip, session.PasteAppend); !errors.Is(err, session.ErrClipMismatch) {
		t.Fatalf("expected ErrClipMismatch, got %v", err)
	}
}

func TestSetFrameClamps(t *testing.T) {
	c, _ := newCanvas(t)
	c.SetFrame("idle", 7)
	if _, frame := c.Frame(); frame != 2 {
		t.Fatalf("expected frame 2, got %d", frame)
	}
	c.SetFrame("idle", -1)
	if _, frame := c.Frame(); frame != 0 {
		t.Fatalf("expected frame 0, got %d", frame)
	}
}
