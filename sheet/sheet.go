package sheet

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/cboxeditor/boxedit"
	"github.com/milk9111/cboxeditor/config"
	"github.com/milk9111/cboxeditor/framedata"
	"github.com/milk9111/cboxeditor/session"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var ErrUnknownAnimation = errors.New("unknown animation")

const (
	defaultCell     = 64
	defaultColumns  = 8
	defaultPadding  = 8
	defaultFontSize = 11
	fillAlpha       = 0.35
)

// Options controls the contact sheet layout.
type Options struct {
	Scale      float64
	Columns    int
	Padding    int
	FontSize   float64
	Hurt       color.Color
	Hit        color.Color
	Push       color.Color
	Persistent color.Color
	Origin     color.Color
	Background color.Color
}

var DefaultOptions = Options{
	Scale:      2,
	Columns:    defaultColumns,
	Padding:    defaultPadding,
	FontSize:   defaultFontSize,
	Hurt:       color.NRGBA{R: 0x3c, G: 0x78, B: 0xff, A: 0xcc},
	Hit:        color.NRGBA{R: 0xff, G: 0x3c, B: 0x3c, A: 0xcc},
	Push:       color.NRGBA{R: 0xff, G: 0xd7, A: 0xcc},
	Persistent: color.NRGBA{R: 0xa0, G: 0xa0, B: 0xa0, A: 0x88},
	Origin:     color.NRGBA{G: 0xff, A: 0xff},
	Background: color.NRGBA{R: 0x28, G: 0x28, B: 0x28, A: 0xff},
}

// OptionsFromConfig takes the colors from cfg and the layout from
// DefaultOptions.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions
	if cfg == nil {
		return opts
	}
	c := cfg.Colors
	opts.Hurt = config.ColorOr(c.Hurt, opts.Hurt)
	opts.Hit = config.ColorOr(c.Hit, opts.Hit)
	opts.Push = config.ColorOr(c.Push, opts.Push)
	opts.Persistent = config.ColorOr(c.Persistent, opts.Persistent)
	opts.Origin = config.ColorOr(c.Origin, opts.Origin)
	opts.Background = config.ColorOr(c.Background, opts.Background)
	return opts
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = DefaultOptions.Scale
	}
	if o.Columns <= 0 {
		o.Columns = DefaultOptions.Columns
	}
	if o.Padding < 0 {
		o.Padding = 0
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultOptions.FontSize
	}
	return o
}

func (o Options) kindColor(kind framedata.Kind, persistent bool) color.Color {
	if persistent {
		return o.Persistent
	}
	switch kind {
	case framedata.KindHurt:
		return o.Hurt
	case framedata.KindHit:
		return o.Hit
	default:
		return o.Push
	}
}

// Layout is the cell grid of a contact sheet.
type Layout struct {
	Frames  int
	Columns int
	Rows    int
	CellW   int
	CellH   int
	SpriteW float64
	SpriteH float64
	LabelH  int
}

func (l Layout) Size() (int, int) {
	return l.Columns * l.CellW, l.Rows * l.CellH
}

// Cell returns the top-left pixel of frame's cell.
func (l Layout) Cell(frame int) (int, int) {
	return (frame % l.Columns) * l.CellW, (frame / l.Columns) * l.CellH
}

// Plan sizes the grid so every sprite of the animation fits in a cell.
func Plan(s *session.Session, frameKey string, opts Options) (Layout, error) {
	opts = opts.withDefaults()
	if _, ok := s.Definition(frameKey); !ok {
		return Layout{}, fmt.Errorf("sheet: plan %s: %w", frameKey, ErrUnknownAnimation)
	}
	n := s.UniqueFrames(frameKey)
	if n <= 0 {
		return Layout{}, fmt.Errorf("sheet: plan %s: animation has no frames", frameKey)
	}

	var maxW, maxH float64
	for i := 0; i < n; i++ {
		sprite, ok := s.SpriteConfig(frameKey, i)
		if !ok {
			continue
		}
		maxW = math.Max(maxW, sprite.Config.Frame.W)
		maxH = math.Max(maxH, sprite.Config.Frame.H)
	}
	if maxW == 0 || maxH == 0 {
		maxW, maxH = defaultCell, defaultCell
	}

	cols := min(n, opts.Columns)
	labelH := int(math.Ceil(opts.FontSize * 1.5))
	spriteW, spriteH := maxW*opts.Scale, maxH*opts.Scale
	return Layout{
		Frames:  n,
		Columns: cols,
		Rows:    (n + cols - 1) / cols,
		CellW:   int(math.Ceil(spriteW)) + 2*opts.Padding,
		CellH:   int(math.Ceil(spriteH)) + 2*opts.Padding + labelH,
		SpriteW: spriteW,
		SpriteH: spriteH,
		LabelH:  labelH,
	}, nil
}

// Render draws every logical frame of the animation with the boxes in
// effect on it, edits included.
func Render(s *session.Session, frameKey string, opts Options) (image.Image, error) {
	dc, err := draw(s, frameKey, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// Write renders the contact sheet as PNG to w.
func Write(w io.Writer, s *session.Session, frameKey string, opts Options) error {
	dc, err := draw(s, frameKey, opts)
	if err != nil {
		return err
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("sheet: encode %s: %w", frameKey, err)
	}
	return nil
}

func draw(s *session.Session, frameKey string, opts Options) (*gg.Context, error) {
	opts = opts.withDefaults()
	layout, err := Plan(s, frameKey, opts)
	if err != nil {
		return nil, err
	}

	face, err := labelFace(opts.FontSize)
	if err != nil {
		return nil, err
	}

	w, h := layout.Size()
	dc := gg.NewContext(w, h)
	dc.SetColor(opts.Background)
	dc.Clear()
	dc.SetFontFace(face)

	for i := 0; i < layout.Frames; i++ {
		x, y := layout.Cell(i)
		drawCell(dc, s, frameKey, i, float64(x), float64(y), layout, opts)
	}
	return dc, nil
}

func labelFace(size float64) (font.Face, error) {
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("sheet: parse font: %w", err)
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func drawCell(dc *gg.Context, s *session.Session, frameKey string, frame int, x, y float64, layout Layout, opts Options) {
	pad := float64(opts.Padding)
	left, top := x+pad, y+pad

	dc.Push()
	dc.DrawRectangle(x, y, float64(layout.CellW), float64(layout.CellH))
	dc.Clip()

	label := fmt.Sprintf("%d", frame)
	sprite, ok := s.SpriteConfig(frameKey, frame)
	if ok {
		label = fmt.Sprintf("%d %s", frame, sprite.Filename)
		if img := sprite.Sheet.SubImage(sprite.Config); img != nil {
			dc.Push()
			dc.Translate(left, top)
			dc.Scale(opts.Scale, opts.Scale)
			b := img.Bounds()
			dc.DrawImage(img, -b.Min.X, -b.Min.Y)
			dc.Pop()
		}
	}

	origin := s.Origin(frameKey, frame)
	offset := cp.Vector{X: left, Y: top}

	if pd := s.ResolvePushbox(frameKey, frame); pd.Found() {
		f := boxedit.PushboxFrame(*pd.Def.Box, origin, opts.Scale)
		drawFrame(dc, f, offset, opts.kindColor(framedata.KindPush, pd.Persistent()))
	}
	for _, kind := range []framedata.Kind{framedata.KindHurt, framedata.KindHit} {
		r := s.ResolveBoxes(frameKey, frame, kind)
		if !r.Found() {
			continue
		}
		clr := opts.kindColor(kind, r.Persistent())
		for _, box := range r.Def.Boxes {
			drawFrame(dc, boxedit.BoxFrame(box, origin, opts.Scale), offset, clr)
		}
	}

	o := origin.Mult(opts.Scale).Add(offset)
	dc.SetColor(opts.Origin)
	dc.SetLineWidth(1)
	dc.DrawLine(o.X-4, o.Y, o.X+4, o.Y)
	dc.DrawLine(o.X, o.Y-4, o.X, o.Y+4)
	dc.Stroke()

	dc.SetColor(color.White)
	dc.DrawStringAnchored(label, left, y+float64(layout.CellH)-pad, 0, 0)
	dc.Pop()
}

func drawFrame(dc *gg.Context, f boxedit.Frame, offset cp.Vector, clr color.Color) {
	c := f.Center.Add(offset)
	dc.Push()
	dc.RotateAbout(f.Rotation, c.X, c.Y)
	switch f.Shape {
	case boxedit.FrameCircle:
		dc.DrawCircle(c.X, c.Y, f.Radius)
	case boxedit.FrameCapsule:
		w := f.OuterWidth()
		dc.DrawRoundedRectangle(c.X-w/2, c.Y-f.Height/2, w, f.Height, f.Radius)
	default:
		dc.DrawRectangle(c.X-f.Width/2, c.Y-f.Height/2, f.Width, f.Height)
	}
	dc.SetColor(faded(clr))
	dc.FillPreserve()
	dc.SetColor(clr)
	dc.SetLineWidth(1.5)
	dc.Stroke()
	dc.Pop()
}

func faded(c color.Color) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A) * fillAlpha)
	return n
}
