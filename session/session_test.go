package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/cboxeditor/atlas"
	"github.com/milk9111/cboxeditor/framedata"
	"github.com/milk9111/cboxeditor/overlay"
)

const testDefinition = `{
  "name": "ryu",
  "frameDef": {
    "idle": {
      "animDef": {"frames": 2, "assetKey": "ryu", "prefix": "idle", "frameRate": 10},
      "hurtboxDef": {"0": {"boxes": [{"x": 0, "y": -10, "r": 8}], "persistThroughFrame": 2}},
      "pushboxDef": {"0": {"box": {"x": -5, "y": -20, "width": 10, "height": 20}, "persistThroughFrame": 2}}
    },
    "jab": {
      "animDef": {"frames": [{"index": 1, "endIndex": 2}], "assetKey": "ryu", "prefix": "idle", "frameRate": 20},
      "hitboxDef": {"1": {"boxes": [{"x1": 0, "y1": 0, "x2": 10, "y2": 0, "r": 6}, {"x": 20, "y": 0, "r": 5}]}}
    }
  }
}`

const testTexture = `{"textures": [{
  "image": "ryu.png",
  "size": {"w": 8, "h": 4},
  "frames": [
    {"filename": "idle/01.png", "sourceSize": {"w": 10, "h": 20}, "spriteSourceSize": {"x": 2, "y": 3, "w": 4, "h": 4},
     "frame": {"x": 0, "y": 0, "w": 4, "h": 4}, "anchor": {"x": 0.5, "y": 1}},
    {"filename": "idle/02.png", "sourceSize": {"w": 4, "h": 4}, "spriteSourceSize": {"x": 0, "y": 0, "w": 4, "h": 4},
     "frame": {"x": 4, "y": 0, "w": 4, "h": 4}, "anchor": {"x": 0.25, "y": 0.25}}
  ]
}]}`

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	img.Set(1, 1, color.White)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func newSession(t *testing.T) *Session {
	t.Helper()
	s := New(nil)
	if err := s.LoadDefinition("ryu.json", []byte(testDefinition)); err != nil {
		t.Fatalf("LoadDefinition: %v", err)
	}
	images := fstest.MapFS{"ryu.png": &fstest.MapFile{Data: pngBytes(t)}}
	if err := s.LoadSpriteSheet("ryu", []byte(testTexture), images); err != nil {
		t.Fatalf("LoadSpriteSheet: %v", err)
	}
	return s
}

func exported(t *testing.T, s *Session) *framedata.Document {
	t.Helper()
	data, err := s.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	doc, err := framedata.Parse(data)
	if err != nil {
		t.Fatalf("Parse export: %v", err)
	}
	return doc
}

func TestSpriteConfig(t *testing.T) {
	s := newSession(t)

	cases := []struct {
		name     string
		key      string
		frame    int
		filename string
		origin   cp.Vector
		ok       bool
	}{
		{"counted_first", "idle", 0, "idle/01.png", cp.Vector{X: 3, Y: 17}, true},
		{"counted_second", "idle", 1, "idle/02.png", cp.Vector{X: 1, Y: 1}, true},
		{"counted_missing", "idle", 2, "", cp.Vector{}, false},
		{"runs", "jab", 1, "idle/02.png", cp.Vector{X: 1, Y: 1}, true},
		{"runs_outside", "jab", 2, "", cp.Vector{}, false},
		{"unknown_animation", "kick", 0, "", cp.Vector{}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sprite, ok := s.SpriteConfig(c.key, c.frame)
			if ok != c.ok {
				t.Fatalf("expected ok=%v, got %v", c.ok, ok)
			}
			if ok && sprite.Filename != c.filename {
				t.Fatalf("expected %s, got %s", c.filename, sprite.Filename)
			}
			if got := s.Origin(c.key, c.frame); got != c.origin {
				t.Fatalf("expected origin %v, got %v", c.origin, got)
			}
		})
	}
}

func TestSpriteConfigWithoutSheet(t *testing.T) {
	s := New(nil)
	if err := s.LoadDefinition("ryu.json", []byte(testDefinition)); err != nil {
		t.Fatalf("LoadDefinition: %v", err)
	}
	if _, ok := s.SpriteConfig("idle", 0); ok {
		t.Fatalf("no sheet is loaded yet")
	}

	images := fstest.MapFS{"ryu.png": &fstest.MapFile{Data: pngBytes(t)}}
	if err := s.LoadSpriteSheet("ryu", []byte(testTexture), images); err != nil {
		t.Fatalf("LoadSpriteSheet: %v", err)
	}
	if _, ok := s.SpriteConfig("idle", 0); !ok {
		t.Fatalf("loading a sheet should drop cached misses")
	}
}

func TestLoadSpriteSheetMissingImage(t *testing.T) {
	s := newSession(t)
	err := s.LoadSpriteSheet("ken", []byte(`{"image": "ken.png", "frames": []}`), fstest.MapFS{})
	if !errors.Is(err, atlas.ErrMissingImage) {
		t.Fatalf("expected missing image error, got %v", err)
	}
	if _, ok := s.Sheet("ken"); ok {
		t.Fatalf("failed sheet should not be registered")
	}
	if _, ok := s.Sheet("ryu"); !ok {
		t.Fatalf("existing sheet should survive a failed load")
	}
}

func TestLoadDefinitionInvalid(t *testing.T) {
	s := New(nil)
	if err := s.LoadDefinition("bad.json", []byte(`{"frameDef": [`)); err == nil {
		t.Fatalf("expected parse error")
	}
	if s.Loaded() {
		t.Fatalf("failed load should leave the session empty")
	}
	if _, err := s.Export(); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}
	if r := s.ResolveBoxes("idle", 0, framedata.KindHurt); r.Found() {
		t.Fatalf("nothing should resolve without a document")
	}
}

func TestResolve(t *testing.T) {
	s := newSession(t)

	cases := []struct {
		name  string
		frame int
		want  framedata.Resolution
	}{
		{"exact", 0, framedata.ResolvedExact},
		{"persistent", 1, framedata.ResolvedPersistent},
		{"past_persist", 2, framedata.ResolvedNone},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := s.ResolveBoxes("idle", c.frame, framedata.KindHurt).Resolution; got != c.want {
				t.Fatalf("hurtbox: expected %v, got %v", c.want, got)
			}
			if got := s.ResolvePushbox("idle", c.frame).Resolution; got != c.want {
				t.Fatalf("pushbox: expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestExportWithoutEdits(t *testing.T) {
	s := newSession(t)
	data, err := s.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	var want, got any
	if err := json.Unmarshal([]byte(testDefinition), &want); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("export changed the document:\n%s", data)
	}
	if !bytes.Contains(data, []byte("\n  \"frameDef\"")) {
		t.Fatalf("expected two-space indentation:\n%s", data)
	}
}

func TestExportCommittedOnly(t *testing.T) {
	s := newSession(t)
	id := overlay.NewID("idle", framedata.KindHurt, 1)

	idx := s.AddBox(id, framedata.NewCircle(5, 5, 10))
	if idx != 0 {
		t.Fatalf("expected first box index, got %d", idx)
	}
	if r := s.ResolveBoxes("idle", 1, framedata.KindHurt); r.Resolution != framedata.ResolvedExact {
		t.Fatalf("staged box should resolve, got %v", r.Resolution)
	}
	if s.Dirty() {
		t.Fatalf("staged edits are not dirty")
	}
	if _, ok := exported(t, s).FrameDef["idle"].HurtboxDef.Get(1); ok {
		t.Fatalf("staged edits must not be exported")
	}

	s.SetBox(id, 0, framedata.NewCircle(6, 5.5, 10))
	s.Commit(id)
	if !s.Dirty() {
		t.Fatalf("committed edits are dirty")
	}
	bd, ok := exported(t, s).FrameDef["idle"].HurtboxDef.Get(1)
	if !ok || len(bd.Boxes) != 1 || !bd.Boxes[0].Equal(framedata.NewCircle(6, 5.5, 10)) {
		t.Fatalf("unexpected exported box %+v", bd)
	}
	if !s.Dirty() {
		t.Fatalf("export should not clear edits")
	}
}

func TestExportDeletes(t *testing.T) {
	s := newSession(t)
	push := overlay.NewID("idle", framedata.KindPush, 0)
	hurt := overlay.NewID("idle", framedata.KindHurt, 0)

	s.DeleteBox(push, 0)
	s.DeleteBox(hurt, 0)

	doc := exported(t, s)
	if _, ok := doc.FrameDef["idle"].PushboxDef.Get(0); ok {
		t.Fatalf("deleted pushbox was exported")
	}
	if _, ok := doc.FrameDef["idle"].HurtboxDef.Get(0); ok {
		t.Fatalf("removing the last box should delete the definition")
	}
	if r := s.ResolveBoxes("idle", 1, framedata.KindHurt); r.Found() {
		t.Fatalf("deleted definition should not persist")
	}
}

func TestExportDropsEmptyChanges(t *testing.T) {
	s := newSession(t)
	hurt := overlay.NewID("idle", framedata.KindHurt, 1)
	push := overlay.NewID("jab", framedata.KindPush, 1)

	s.SetBox(hurt, 0, framedata.NewCircle(1, 1, 8))
	s.Commit(hurt)
	through := 3
	s.Stage(push, overlay.Patch{PersistThroughFrame: &through})
	s.Commit(push)

	doc := exported(t, s)
	if _, ok := doc.FrameDef["idle"].HurtboxDef.Get(1); ok {
		t.Fatalf("an edit without boxes must not be exported")
	}
	if _, ok := doc.FrameDef["jab"].PushboxDef.Get(1); ok {
		t.Fatalf("a pushbox change without a box must not be exported")
	}
	if _, ok := doc.FrameDef["idle"].HurtboxDef.Get(0); !ok {
		t.Fatalf("untouched definitions must survive")
	}
}

func TestEditsKeepMinimumRadius(t *testing.T) {
	cases := []struct {
		name string
		edit func(t *testing.T, s *Session, id overlay.ID) int
	}{
		{"add", func(t *testing.T, s *Session, id overlay.ID) int {
			return s.AddBox(id, framedata.NewCircle(0, 0, 3))
		}},
		{"set", func(t *testing.T, s *Session, id overlay.ID) int {
			s.SetBox(id, 1, framedata.NewCircle(4, 0, 3))
			return 1
		}},
		{"paste", func(t *testing.T, s *Session, id overlay.ID) int {
			clip := Clip{Boxes: []framedata.BoxConfig{framedata.NewCapsule(0, 0, 4, 0, 2)}}
			if err := s.Paste(id, clip, PasteAppend); err != nil {
				t.Fatalf("Paste: %v", err)
			}
			return 2
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newSession(t)
			id := overlay.NewID("jab", framedata.KindHit, 1)
			idx := c.edit(t, s, id)
			s.Commit(id)
			def, ok := s.Boxes(id)
			if !ok || idx >= len(def.Boxes) {
				t.Fatalf("missing box %d in %+v", idx, def)
			}
			if r := def.Boxes[idx].R; r != 5 {
				t.Fatalf("expected radius raised to 5, got %v", r)
			}
		})
	}
}

func TestDeleteBoxKeepsOthers(t *testing.T) {
	s := newSession(t)
	id := overlay.NewID("jab", framedata.KindHit, 1)

	s.DeleteBox(id, 0)
	def, ok := s.Boxes(id)
	if !ok || len(def.Boxes) != 1 || def.Boxes[0].Shape != framedata.ShapeCircle {
		t.Fatalf("expected the circle to remain, got %+v", def)
	}
	s.DeleteBox(id, 5)
	if def, _ := s.Boxes(id); len(def.Boxes) != 1 {
		t.Fatalf("out of range delete should be ignored")
	}
}

func TestLoadDefinitionClearsEdits(t *testing.T) {
	s := newSession(t)
	id := overlay.NewID("idle", framedata.KindPush, 0)
	s.SetPushbox(id, framedata.PushboxConfig{Width: 30, Height: 30})
	s.Commit(id)

	if err := s.LoadDefinition("ryu.json", []byte(testDefinition)); err != nil {
		t.Fatalf("LoadDefinition: %v", err)
	}
	if s.Overlay() != overlay.Empty || s.Dirty() {
		t.Fatalf("reload should drop edits")
	}
}

func TestCopyPaste(t *testing.T) {
	s := newSession(t)
	src := overlay.NewID("jab", framedata.KindHit, 1)
	dst := overlay.NewID("idle", framedata.KindHurt, 0)

	clip, ok := s.Copy(src, 1)
	if !ok || len(clip.Boxes) != 1 {
		t.Fatalf("expected one copied box, got %+v", clip)
	}
	data, err := clip.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	clip, err = DecodeClip(data)
	if err != nil {
		t.Fatalf("DecodeClip: %v", err)
	}

	if err := s.Paste(dst, clip, PasteAppend); err != nil {
		t.Fatalf("Paste append: %v", err)
	}
	def, _ := s.Boxes(dst)
	if len(def.Boxes) != 2 || !def.Boxes[1].Equal(framedata.NewCircle(20, 0, 5)) {
		t.Fatalf("unexpected boxes after append %v", def.Boxes)
	}

	if err := s.Paste(dst, clip, PasteReplace); err != nil {
		t.Fatalf("Paste replace: %v", err)
	}
	def, _ = s.Boxes(dst)
	if len(def.Boxes) != 1 || !def.Boxes[0].Equal(framedata.NewCircle(20, 0, 5)) {
		t.Fatalf("unexpected boxes after replace %v", def.Boxes)
	}
	if !s.Dirty() {
		t.Fatalf("paste should commit")
	}

	push := overlay.NewID("idle", framedata.KindPush, 0)
	if err := s.Paste(push, clip, PasteReplace); !errors.Is(err, ErrClipMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}
	pclip, ok := s.Copy(push, 0)
	if !ok || pclip.Pushbox == nil {
		t.Fatalf("expected pushbox clip")
	}
	other := overlay.NewID("jab", framedata.KindPush, 0)
	if err := s.Paste(other, pclip, PasteAppend); err != nil {
		t.Fatalf("Paste pushbox: %v", err)
	}
	if pd, ok := s.Pushbox(other); !ok || !pd.Box.Equal(*pclip.Pushbox) {
		t.Fatalf("unexpected pasted pushbox %+v", pd)
	}
}
