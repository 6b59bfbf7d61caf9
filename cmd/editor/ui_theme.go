package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	panelColor    = color.RGBA{40, 40, 40, 255}
	toolbarColor  = color.RGBA{56, 56, 64, 255}
	buttonText    = color.RGBA{230, 230, 230, 255}
	buttonPressed = color.RGBA{255, 215, 0, 255}
)

// solidNineSlice returns a solid color *image.NineSlice for widget backgrounds.
func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func newEditorTheme(fontFace *text.Face) *widget.Theme {
	return &widget.Theme{
		ListTheme: &widget.ListParams{
			EntryFace: fontFace,
			EntryColor: &widget.ListEntryColor{
				Unselected:          buttonText,
				Selected:            color.Black,
				DisabledUnselected:  color.Gray{Y: 128},
				DisabledSelected:    color.Gray{Y: 64},
				SelectingBackground: color.RGBA{90, 90, 110, 255},
				SelectedBackground:  buttonPressed,
			},
			ScrollContainerImage: &widget.ScrollContainerImage{
				Idle: solidNineSlice(color.RGBA{30, 30, 30, 255}),
				Mask: solidNineSlice(color.RGBA{30, 30, 30, 255}),
			},
		},
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(panelColor),
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:    solidNineSlice(color.RGBA{80, 80, 90, 255}),
				Hover:   solidNineSlice(color.RGBA{100, 100, 115, 255}),
				Pressed: solidNineSlice(color.RGBA{60, 60, 70, 255}),
			},
			TextFace: fontFace,
			TextColor: &widget.ButtonTextColor{
				Idle: buttonText,
			},
		},
	}
}
