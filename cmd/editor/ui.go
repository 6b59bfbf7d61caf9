package main

import (
	"bytes"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/cboxeditor/framedata"
	"golang.org/x/image/font/gofont/goregular"
)

func BuildEditorUI(
	onAnimationSelected func(frameKey string),
	onShapeSelected func(shape framedata.BoxShape),
	onKindSelected func(kind framedata.Kind),
	onExport func(),
	initialShape framedata.BoxShape,
	initialKind framedata.Kind,
) (*ebitenui.UI, *AnimationList) {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}

	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newEditorTheme(&fontFace)

	leftPanel, anims := buildLeftPanelUI(onAnimationSelected)
	toolbarContainer := buildToolBar(
		ui.PrimaryTheme,
		&fontFace,
		onShapeSelected,
		onKindSelected,
		onExport,
		initialShape,
		initialKind,
	)

	// Root container: anchor layout
	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	leftPanel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	// Toolbar: top center
	toolbarContainer.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	root.AddChild(leftPanel)
	root.AddChild(toolbarContainer)

	ui.Container = root
	return ui, anims
}
