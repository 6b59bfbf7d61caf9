package main

import (
	"github.com/ebitenui/ebitenui/widget"
)

const (
	leftPanelWidth = 220
	animListHeight = 400
	previewHeight  = 220
)

// buildLeftPanelUI lays out the animation list. The editor draws the
// playback preview below it.
func buildLeftPanelUI(onAnimationSelected func(frameKey string)) (*widget.Container, *AnimationList) {
	leftPanel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(leftPanelWidth, animListHeight),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)

	anims := &AnimationList{}
	anims.list = widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if key, ok := e.(string); ok {
				return key
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			key, ok := args.Entry.(string)
			if !ok || onAnimationSelected == nil {
				return
			}
			onAnimationSelected(key)
		}),
	)
	leftPanel.AddChild(anims.list)

	return leftPanel, anims
}
