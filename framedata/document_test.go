package framedata

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

const sampleDocument = `{
  "name": "ryu",
  "version": 3,
  "tempPushbox": {"x": -10, "y": -40, "width": 20, "height": 40},
  "frameDef": {
    "idle": {
      "animDef": {"frames": 4, "assetKey": "ryu", "prefix": "idle", "frameRate": 12, "repeat": -1},
      "hurtboxDef": {
        "0": {"boxes": [{"x": 0, "y": -20, "r": 12}, {"x1": 0, "y1": -40, "x2": 0, "y2": -60, "r": 8, "id": "head"}], "persistThroughFrame": 4, "tag": 2}
      },
      "pushboxDef": {
        "0": {"box": {"x": -10, "y": -40, "width": 20, "height": 40}}
      }
    },
    "jab": {
      "animDef": {"frames": [0, {"index": 2, "endIndex": 4, "loop": 1, "sfx": "whoosh"}], "assetKey": "ryu", "prefix": "jab", "frameRate": 20, "note": "fast"},
      "hitboxDef": {
        "hit": {"damage": 30, "type": [], "hitstop": [0, 0], "velocity": {"ground": {"angle": 10, "magnitude": 2.5}}},
        "2": {"boxes": [{"x": 20.5, "y": -30, "r": 6}], "hit": {"damage": 40}, "tag": "jab-active"},
        "3": {"boxes": []}
      }
    }
  }
}`

func semanticEqual(t *testing.T, a, b []byte) bool {
	t.Helper()
	var va, vb any
	if err := json.Unmarshal(a, &va); err != nil {
		t.Fatalf("unmarshal a: %v", err)
	}
	if err := json.Unmarshal(b, &vb); err != nil {
		t.Fatalf("unmarshal b: %v", err)
	}
	return reflect.DeepEqual(va, vb)
}

func TestDocumentRoundTrip(t *testing.T) {
	doc, err := Parse([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, err := doc.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !semanticEqual(t, []byte(sampleDocument), out) {
		t.Fatalf("round trip changed the document:\n%s", out)
	}
}

func TestDocumentDecodesShapes(t *testing.T) {
	doc, err := Parse([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	idle, ok := doc.Animation("idle")
	if !ok {
		t.Fatalf("idle animation missing")
	}
	bd, ok := idle.HurtboxDef.Get(0)
	if !ok || len(bd.Boxes) != 2 {
		t.Fatalf("expected two hurtboxes on frame 0")
	}
	if bd.Boxes[0].Shape != ShapeCircle || bd.Boxes[1].Shape != ShapeCapsule {
		t.Fatalf("unexpected shapes %v %v", bd.Boxes[0].Shape, bd.Boxes[1].Shape)
	}
	if string(bd.Boxes[1].Extra["id"]) != `"head"` {
		t.Fatalf("capsule extra field lost: %v", bd.Boxes[1].Extra)
	}

	jab, _ := doc.Animation("jab")
	if !jab.AnimDef.Frames.IsRuns() || !jab.AnimDef.Frames.Runs[0].Bare {
		t.Fatalf("expected bare first run")
	}
	if got := UniqueFrameCount(jab.AnimDef); got != 4 {
		t.Fatalf("expected 4 frames, got %d", got)
	}
	empty, ok := jab.HitboxDef.Get(3)
	if !ok || !empty.Defined() || len(empty.Boxes) != 0 {
		t.Fatalf("explicit empty boxes should stay defined")
	}
	hit, err := jab.DefaultHit()
	if err != nil || hit == nil || *hit.Damage != 30 {
		t.Fatalf("default hit not decoded: %v %v", hit, err)
	}
	if jab.HitboxDef.Len() != 2 {
		t.Fatalf("default hit must not count as a frame, got %d", jab.HitboxDef.Len())
	}
}

func TestParseDropsNullFrames(t *testing.T) {
	doc, err := Parse([]byte(`{"frameDef": {"a": {"animDef": {"frames": 2}, "hurtboxDef": {"0": null, "1": {"boxes": []}}}, "b": null}}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := doc.Animation("b"); ok {
		t.Fatalf("null animation should be dropped")
	}
	a, _ := doc.Animation("a")
	if _, ok := a.HurtboxDef.Get(0); ok {
		t.Fatalf("null frame entry should be dropped")
	}
	if a.HurtboxDef.Len() != 1 {
		t.Fatalf("expected one frame entry, got %d", a.HurtboxDef.Len())
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	if _, err := Parse([]byte(`{"frameDef": [`)); err == nil {
		t.Fatalf("expected error for truncated document")
	}
}

func TestValidate(t *testing.T) {
	doc, err := Parse([]byte(`{"frameDef": {"a": {"animDef": {"frames": 4},
		"hurtboxDef": {"2": {"boxes": [{"x": 0, "y": 0, "r": 3}], "persistThroughFrame": 2}},
		"pushboxDef": {"1": {"box": {"x": 0, "y": 0, "width": 1, "height": 1}, "persistThroughFrame": 0}}}}}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	verr := doc.Validate(5)
	if !errors.Is(verr, ErrInvalidDefinition) {
		t.Fatalf("expected ErrInvalidDefinition, got %v", verr)
	}
	joined, ok := verr.(interface{ Unwrap() []error })
	if !ok || len(joined.Unwrap()) != 3 {
		t.Fatalf("expected 3 problems, got %v", verr)
	}

	clean, _ := Parse([]byte(sampleDocument))
	if err := clean.Validate(5); err != nil {
		t.Fatalf("sample should validate: %v", err)
	}
}

func TestClone(t *testing.T) {
	doc, _ := Parse([]byte(sampleDocument))
	cp, err := doc.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	idle, _ := cp.Animation("idle")
	bd, _ := idle.HurtboxDef.Get(0)
	bd.Boxes[0].R = 99

	orig, _ := doc.Animation("idle")
	ob, _ := orig.HurtboxDef.Get(0)
	if ob.Boxes[0].R != 12 {
		t.Fatalf("clone shares box storage with the original")
	}
}
