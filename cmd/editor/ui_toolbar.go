package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/cboxeditor/framedata"
)

var (
	shapeNames = []string{"Circle", "Capsule"}
	kindNames  = []string{"Hurtbox", "Hitbox", "Pushbox"}
)

func buildToolBar(
	theme *widget.Theme,
	fontFace *text.Face,
	onShapeSelected func(shape framedata.BoxShape),
	onKindSelected func(kind framedata.Kind),
	onExport func(),
	initialShape framedata.BoxShape,
	initialKind framedata.Kind,
) *widget.Container {
	toolbar := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(560, 48),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(toolbarColor)),
	)

	shapes := buildRadioRow(toolbar, theme, fontFace, shapeNames, func(idx int) {
		if onShapeSelected != nil {
			onShapeSelected(framedata.BoxShape(idx))
		}
	})
	shapes.SetActive(int(initialShape))

	kinds := buildRadioRow(toolbar, theme, fontFace, kindNames, func(idx int) {
		if onKindSelected != nil {
			onKindSelected(framedata.Kind(idx))
		}
	})
	kinds.SetActive(int(initialKind))

	exportBtn := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Export", fontFace, &widget.ButtonTextColor{Idle: buttonText}),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(64, 40),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if onExport != nil {
				onExport()
			}
		}),
	)
	toolbar.AddChild(exportBtn)

	return toolbar
}

// buildRadioRow adds one toggle button per name to parent and groups them.
// onSelected receives the index of the newly active button.
func buildRadioRow(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, names []string, onSelected func(idx int)) *RadioRow {
	buttonTextColor := &widget.ButtonTextColor{
		Idle:     buttonText,
		Hover:    buttonText,
		Pressed:  buttonPressed,
		Disabled: color.Gray{Y: 128},
	}

	var buttons []*widget.Button
	for _, name := range names {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(name, fontFace, buttonTextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(64, 40),
			),
		)
		buttons = append(buttons, btn)
		parent.AddChild(btn)
	}

	elements := make([]widget.RadioGroupElement, 0, len(buttons))
	for _, b := range buttons {
		elements = append(elements, b)
	}

	group := widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			for idx, b := range buttons {
				if args.Active == b {
					onSelected(idx)
					return
				}
			}
		}),
	)
	return &RadioRow{group: group, buttons: buttons}
}
