package main

import (
	"image"
	"math"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/cboxeditor/watch"
)

// keyName maps letter keys to the lower-case names used in key bindings.
// Other keys map to "".
func keyName(k ebiten.Key) string {
	name := k.String()
	if len(name) != 1 {
		return ""
	}
	return strings.ToLower(name)
}

func cursor() cp.Vector {
	x, y := ebiten.CursorPosition()
	return cp.Vector{X: float64(x), Y: float64(y)}
}

func inRect(p cp.Vector, r image.Rectangle) bool {
	return image.Pt(int(math.Floor(p.X)), int(math.Floor(p.Y))).In(r)
}

// drawSpriteAt draws img scaled with its top-left corner at offset.
func drawSpriteAt(dst, img *ebiten.Image, offset cp.Vector, scale float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offset.X, offset.Y)
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(img, op)
}

// fitScale is the largest scale, capped at max, that fits a w x h sprite
// inside a box of size.
func fitScale(w, h, size, max float64) float64 {
	if w <= 0 || h <= 0 {
		return max
	}
	s := math.Min(size/w, size/h)
	if max > 0 {
		s = math.Min(s, max)
	}
	return s
}

// reloadTargets works out what a changed file means for the open session:
// the definition itself, or one or more sprite sheets whose atlas or image
// it is.
func reloadTargets(path, defPath string, sheetPaths []string) (definition bool, sheets []string) {
	if defPath != "" && watch.SamePath(path, defPath) {
		return true, nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, sheet := range sheetPaths {
		switch {
		case watch.SamePath(path, sheet):
			sheets = append(sheets, sheet)
		case (ext == ".png" || ext == ".webp") && watch.SamePath(filepath.Dir(path), filepath.Dir(sheet)):
			sheets = append(sheets, sheet)
		}
	}
	return false, sheets
}
