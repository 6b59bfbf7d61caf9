package render

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/cboxeditor/boxedit"
	"github.com/milk9111/cboxeditor/config"
	"github.com/milk9111/cboxeditor/framedata"
)

// Style holds the colors boxes are drawn with.
type Style struct {
	Hurt       color.Color
	Hit        color.Color
	Push       color.Color
	Persistent color.Color
	Selected   color.Color
	Origin     color.Color
	Background color.Color
}

var DefaultStyle = Style{
	Hurt:       color.NRGBA{R: 0x3c, G: 0x78, B: 0xff, A: 0xcc},
	Hit:        color.NRGBA{R: 0xff, G: 0x3c, B: 0x3c, A: 0xcc},
	Push:       color.NRGBA{R: 0xff, G: 0xd7, A: 0xcc},
	Persistent: color.NRGBA{R: 0xa0, G: 0xa0, B: 0xa0, A: 0x88},
	Selected:   color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	Origin:     color.NRGBA{G: 0xff, A: 0xff},
	Background: color.NRGBA{R: 0x28, G: 0x28, B: 0x28, A: 0xff},
}

func StyleFromConfig(cfg *config.Config) Style {
	if cfg == nil {
		return DefaultStyle
	}
	c := cfg.Colors
	return Style{
		Hurt:       config.ColorOr(c.Hurt, DefaultStyle.Hurt),
		Hit:        config.ColorOr(c.Hit, DefaultStyle.Hit),
		Push:       config.ColorOr(c.Push, DefaultStyle.Push),
		Persistent: config.ColorOr(c.Persistent, DefaultStyle.Persistent),
		Selected:   config.ColorOr(c.Selected, DefaultStyle.Selected),
		Origin:     config.ColorOr(c.Origin, DefaultStyle.Origin),
		Background: config.ColorOr(c.Background, DefaultStyle.Background),
	}
}

func (s Style) Kind(kind framedata.Kind) color.Color {
	switch kind {
	case framedata.KindHurt:
		return s.Hurt
	case framedata.KindHit:
		return s.Hit
	default:
		return s.Push
	}
}

// State says how each drawn box should look.
type State struct {
	// Persistent marks categories shown from an earlier frame.
	Persistent map[framedata.Kind]bool
	Selected   *boxedit.Target
}

func (s State) selected(t boxedit.Target) bool {
	if s.Selected == nil {
		return false
	}
	return s.Selected.Kind == t.Kind && s.Selected.Index == t.Index
}

// TargetColor picks the color for a picked shape.
func (s Style) TargetColor(t boxedit.Target, state State) color.Color {
	switch {
	case t.Part != boxedit.PartBody:
		return s.Selected
	case state.selected(t):
		return s.Selected
	case state.Persistent[t.Kind]:
		return s.Persistent
	default:
		return s.Kind(t.Kind)
	}
}

func toFColor(c color.Color) cp.FColor {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return cp.FColor{
		R: float32(n.R) / 255,
		G: float32(n.G) / 255,
		B: float32(n.B) / 255,
		A: float32(n.A) / 255,
	}
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
