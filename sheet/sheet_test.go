package sheet

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/milk9111/cboxeditor/session"
)

const testDefinition = `{"frameDef": {
  "idle": {
    "animDef": {"frames": 2, "assetKey": "ryu", "prefix": "idle", "frameRate": 10},
    "hurtboxDef": {"0": {"boxes": [{"x": 0, "y": -10, "r": 8}], "persistThroughFrame": 2}},
    "hitboxDef": {"1": {"boxes": [{"x1": 0, "y1": 0, "x2": 6, "y2": 0, "r": 3}]}},
    "pushboxDef": {"0": {"box": {"x": -2, "y": -4, "width": 4, "height": 4}}}
  },
  "walk": {
    "animDef": {"frames": 10, "assetKey": "ken", "prefix": "walk", "frameRate": 10}
  }
}}`

const testTexture = `{"image": "ryu.png", "frames": [
  {"filename": "idle/01.png", "sourceSize": {"w": 4, "h": 4}, "spriteSourceSize": {"x": 0, "y": 0, "w": 4, "h": 4},
   "frame": {"x": 0, "y": 0, "w": 4, "h": 4}, "anchor": {"x": 0.5, "y": 1}},
  {"filename": "idle/02.png", "sourceSize": {"w": 4, "h": 4}, "spriteSourceSize": {"x": 0, "y": 0, "w": 4, "h": 4},
   "frame": {"x": 4, "y": 0, "w": 4, "h": 4}, "anchor": {"x": 0.5, "y": 1}}
]}`

func newSession(t *testing.T) *session.Session {
	t.Helper()
	s := session.New(nil)
	if err := s.LoadDefinition("ryu.json", []byte(testDefinition)); err != nil {
		t.Fatalf("LoadDefinition: %v", err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	images := fstest.MapFS{"ryu.png": &fstest.MapFile{Data: buf.Bytes()}}
	if err := s.LoadSpriteSheet("ryu", []byte(testTexture), images); err != nil {
		t.Fatalf("LoadSpriteSheet: %v", err)
	}
	return s
}

func TestPlan(t *testing.T) {
	s := newSession(t)

	cases := []struct {
		name   string
		key    string
		opts   Options
		cols   int
		rows   int
		width  int
		height int
	}{
		{"sprites", "idle", Options{Scale: 2, Columns: 8, Padding: 8, FontSize: 10}, 2, 1, 48, 39},
		{"no_sheet", "walk", Options{Scale: 1, Columns: 4, Padding: 0, FontSize: 10}, 4, 3, 256, 237},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			layout, err := Plan(s, c.key, c.opts)
			if err != nil {
				t.Fatalf("Plan: %v", err)
			}
			if layout.Columns != c.cols || layout.Rows != c.rows {
				t.Fatalf("expected %dx%d grid, got %dx%d", c.cols, c.rows, layout.Columns, layout.Rows)
			}
			w, h := layout.Size()
			if w != c.width || h != c.height {
				t.Fatalf("expected %dx%d image, got %dx%d", c.width, c.height, w, h)
			}
		})
	}

	if _, err := Plan(s, "kick", DefaultOptions); !errors.Is(err, ErrUnknownAnimation) {
		t.Fatalf("expected ErrUnknownAnimation, got %v", err)
	}
}

func TestLayoutCell(t *testing.T) {
	l := Layout{Columns: 3, CellW: 10, CellH: 20}
	x, y := l.Cell(4)
	if x != 10 || y != 20 {
		t.Fatalf("unexpected cell origin %d,%d", x, y)
	}
}

func TestRenderDrawsBoxes(t *testing.T) {
	s := newSession(t)
	opts := DefaultOptions
	opts.Scale = 4

	img, err := Render(s, "idle", opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	layout, _ := Plan(s, "idle", opts)
	w, h := layout.Size()
	if img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}

	// The frame 0 pushbox spans the sprite: origin (2,4) plus (-2,-4), four
	// units wide, scaled by 4 and shifted by the padding.
	bg := color.NRGBAModel.Convert(opts.Background)
	at := color.NRGBAModel.Convert(img.At(16, 16))
	if at == bg {
		t.Fatalf("expected the pushbox to be drawn")
	}
}

func TestWritePNG(t *testing.T) {
	s := newSession(t)
	var buf bytes.Buffer
	if err := Write(&buf, s, "idle", DefaultOptions); err != nil {
		t.Fatalf("Write: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	layout, _ := Plan(s, "idle", DefaultOptions)
	w, h := layout.Size()
	if img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
}

func TestOptionsFromConfig(t *testing.T) {
	if got := OptionsFromConfig(nil); got != DefaultOptions {
		t.Fatalf("nil config should keep defaults")
	}
}
