package main

import (
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/cboxeditor/boxedit"
	"github.com/milk9111/cboxeditor/config"
	"github.com/milk9111/cboxeditor/framedata"
	"github.com/milk9111/cboxeditor/render"
	"github.com/milk9111/cboxeditor/session"
	"github.com/milk9111/cboxeditor/watch"
)

const (
	toolbarHeight = 48
	stripHeight   = 112
	thumbPadding  = 6
)

var errNoOutput = errors.New("no output path")

// Editor is the ebiten.Game hosting the frame data editor.
type Editor struct {
	cfg     *config.Config
	sess    *session.Session
	canvas  *Canvas
	style   render.Style
	images  *render.Images
	thumbs  *boxedit.Picker
	clip    *Clipboard
	watcher *watch.Watcher

	ui    *ebitenui.UI
	anims *AnimationList

	defPath    string
	sheetPaths []string
	outPath    string

	width, height int
	started       time.Time
	stripScroll   int
	title         string
}

type EditorOptions struct {
	DefPath    string
	SheetPaths []string
	OutPath    string
	Watcher    *watch.Watcher
	Prefs      *config.Prefs
}

func NewEditor(cfg *config.Config, sess *session.Session, opts EditorOptions) *Editor {
	e := &Editor{
		cfg:        cfg,
		sess:       sess,
		canvas:     NewCanvas(sess, cfg.Editor, boxKeys(cfg)),
		style:      render.StyleFromConfig(cfg),
		images:     render.NewImages(),
		thumbs:     boxedit.NewPicker(0),
		clip:       NewClipboard(),
		watcher:    opts.Watcher,
		defPath:    opts.DefPath,
		sheetPaths: opts.SheetPaths,
		outPath:    opts.OutPath,
		width:      cfg.Window.Width,
		height:     cfg.Window.Height,
		started:    time.Now(),
	}

	shape, kind := framedata.ShapeCircle, framedata.KindHurt
	if p := opts.Prefs; p != nil {
		shape, kind = framedata.BoxShape(p.Shape), framedata.Kind(p.Kind)
		if p.Zoom > 0 {
			e.canvas.SetZoom(p.Zoom)
		}
	}
	e.canvas.SetShape(shape)
	e.canvas.SetKind(kind)

	e.ui, e.anims = BuildEditorUI(
		e.SelectAnimation,
		e.canvas.SetShape,
		e.canvas.SetKind,
		func() {
			if err := e.Export(); err != nil {
				log.Printf("editor: %v", err)
			}
		},
		shape,
		kind,
	)
	e.refreshAnimations()
	return e
}

// boxKeys takes the drag bindings from cfg, keeping the default for any
// left empty.
func boxKeys(cfg *config.Config) boxedit.Keys {
	keys := boxedit.DefaultKeys
	if cfg.Keys.Delete != "" {
		keys.Delete = cfg.Keys.Delete
	}
	if cfg.Keys.Grow != "" {
		keys.Grow = cfg.Keys.Grow
	}
	if cfg.Keys.Shrink != "" {
		keys.Shrink = cfg.Keys.Shrink
	}
	return keys
}

// SelectAnimation shows the first frame of frameKey and restarts the
// preview clock.
func (e *Editor) SelectAnimation(frameKey string) {
	e.canvas.SetFrame(frameKey, 0)
	e.stripScroll = 0
	e.started = time.Now()
}

func (e *Editor) refreshAnimations() {
	keys := e.sess.Keys()
	e.anims.SetKeys(keys)
	current, frame := e.canvas.Frame()
	if _, ok := e.sess.Definition(current); ok {
		// Selecting fires SelectAnimation, which rewinds to frame 0.
		e.anims.Select(current)
		e.canvas.SetFrame(current, frame)
		return
	}
	if len(keys) > 0 {
		e.anims.Select(keys[0])
		e.SelectAnimation(keys[0])
		return
	}
	e.canvas.SetFrame("", 0)
}

// Prefs captures what should be restored next session.
func (e *Editor) Prefs() *config.Prefs {
	return &config.Prefs{
		LastDefinition: e.defPath,
		Sheets:         e.sheetPaths,
		Zoom:           e.canvas.Zoom(),
		Shape:          int(e.canvas.shape),
		Kind:           int(e.canvas.kind),
	}
}

// Export writes the document with every committed edit applied.
func (e *Editor) Export() error {
	e.canvas.PointerUp()
	data, err := e.sess.Export()
	if err != nil {
		return fmt.Errorf("editor: export: %w", err)
	}
	path := e.outPath
	if path == "" {
		path = e.defPath
	}
	if path == "" {
		return fmt.Errorf("editor: export: %w", errNoOutput)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("editor: export %s: %w", path, err)
	}
	log.Printf("editor: exported %s", path)
	return nil
}

func (e *Editor) loadDefinition() error {
	data, err := os.ReadFile(e.defPath)
	if err != nil {
		return fmt.Errorf("editor: read %s: %w", e.defPath, err)
	}
	if err := e.sess.LoadDefinition(filepath.Base(e.defPath), data); err != nil {
		return err
	}
	e.refreshAnimations()
	return nil
}

func (e *Editor) canvasRect() image.Rectangle {
	return image.Rect(leftPanelWidth, toolbarHeight, e.width, e.height-stripHeight)
}

func (e *Editor) stripRect() image.Rectangle {
	return image.Rect(leftPanelWidth, e.height-stripHeight, e.width, e.height)
}

func (e *Editor) previewRect() image.Rectangle {
	return image.Rect(0, animListHeight, leftPanelWidth, animListHeight+previewHeight)
}

func (e *Editor) Update() error {
	e.drainWatcher()
	if e.ui != nil {
		e.ui.Update()
	}
	e.canvas.SetBounds(e.canvasRect())

	p := cursor()
	e.handleKeys(p)
	e.handleMouse(p)
	e.updateTitle()
	return nil
}

func (e *Editor) handleKeys(p cp.Vector) {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := e.Export(); err != nil {
			log.Printf("editor: %v", err)
		}
		return
	}

	key, frame := e.canvas.Frame()
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		e.canvas.SetFrame(key, frame-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		e.canvas.SetFrame(key, frame+1)
	}

	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		name := keyName(k)
		if name == "" || e.canvas.Key(name) {
			continue
		}
		switch name {
		case e.cfg.Keys.Copy:
			e.copyAt(p)
		case e.cfg.Keys.Paste:
			mode := session.PasteAppend
			if ebiten.IsKeyPressed(ebiten.KeyShift) {
				mode = session.PasteReplace
			}
			e.pasteAt(p, mode)
		}
	}
}

func (e *Editor) copyAt(p cp.Vector) {
	if !inRect(p, e.canvasRect()) {
		return
	}
	clip, ok := e.canvas.Copy(p)
	if !ok {
		return
	}
	if err := e.clip.Write(clip); err != nil {
		log.Printf("editor: copy: %v", err)
	}
}

func (e *Editor) pasteAt(p cp.Vector, mode session.PasteMode) {
	if e.canvas.Dragging() {
		return
	}
	clip, err := e.clip.Read()
	if err != nil {
		log.Printf("editor: paste: %v", err)
		return
	}
	if err := e.canvas.Paste(p, clip, mode); err != nil {
		log.Printf("editor: paste: %v", err)
	}
}

func (e *Editor) handleMouse(p cp.Vector) {
	inCanvas := inRect(p, e.canvasRect())
	inStrip := inRect(p, e.stripRect())

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		switch {
		case inCanvas:
			e.canvas.PointerDown(p)
		case inStrip:
			e.selectStripFrame(p)
		}
	}
	if e.canvas.Dragging() && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		e.canvas.PointerMove(p)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		e.canvas.PointerUp()
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		switch {
		case inCanvas:
			e.canvas.Wheel(p, wy)
		case inStrip:
			e.scrollStrip(-int(wy))
		}
	}
}

func (e *Editor) stripCells() int {
	return max(1, e.stripRect().Dx()/stripHeight)
}

func (e *Editor) scrollStrip(delta int) {
	key, _ := e.canvas.Frame()
	last := max(0, e.sess.UniqueFrames(key)-e.stripCells())
	e.stripScroll = min(max(0, e.stripScroll+delta), last)
}

func (e *Editor) selectStripFrame(p cp.Vector) {
	key, _ := e.canvas.Frame()
	i := e.stripScroll + (int(p.X)-e.stripRect().Min.X)/stripHeight
	if i < e.sess.UniqueFrames(key) {
		e.canvas.SetFrame(key, i)
	}
}

func (e *Editor) drainWatcher() {
	if e.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-e.watcher.Events:
			if !ok {
				e.watcher = nil
				return
			}
			e.reload(path)
		case err, ok := <-e.watcher.Errors:
			if !ok {
				e.watcher = nil
				return
			}
			log.Printf("editor: watch: %v", err)
		default:
			return
		}
	}
}

func (e *Editor) reload(path string) {
	definition, sheets := reloadTargets(path, e.defPath, e.sheetPaths)
	if definition {
		if e.sess.Dirty() || e.sess.Overlay().HasStaged() {
			log.Printf("editor: %s changed on disk, keeping unexported edits", path)
			return
		}
		if err := e.loadDefinition(); err != nil {
			log.Printf("editor: reload: %v", err)
		}
		return
	}
	for _, sheet := range sheets {
		if err := e.sess.LoadSpriteSheetFile(sheet); err != nil {
			log.Printf("editor: reload: %v", err)
			continue
		}
		e.images.Clear()
	}
}

func (e *Editor) updateTitle() {
	title := "cbox editor"
	if name := e.sess.Name(); name != "" {
		title += " - " + name
	}
	if e.sess.Dirty() {
		title += " *"
	}
	if title != e.title {
		ebiten.SetWindowTitle(title)
		e.title = title
	}
}

func (e *Editor) Draw(screen *ebiten.Image) {
	screen.Fill(e.style.Background)
	e.drawCanvas(screen)
	e.drawStrip(screen)
	if e.ui != nil {
		e.ui.Draw(screen)
	}
	e.drawPreview(screen)
	e.drawStatus(screen)
}

func (e *Editor) drawCanvas(screen *ebiten.Image) {
	dst := screen.SubImage(e.canvasRect()).(*ebiten.Image)
	key, frame := e.canvas.Frame()
	if sprite, ok := e.sess.SpriteConfig(key, frame); ok {
		if img := e.images.Sprite(sprite); img != nil {
			drawSpriteAt(dst, img, e.canvas.Offset(), e.canvas.Zoom())
		}
	}

	e.canvas.Rebuild()
	state := render.State{Persistent: e.canvas.Persistent()}
	if !e.canvas.Dragging() {
		state.Selected = e.canvas.Hover(cursor())
	}
	render.DrawBoxes(dst, e.canvas.Picker(), e.style, state)
	render.DrawOrigin(dst, e.canvas.Anchor(), e.style.Origin)
}

// drawFrameThumb draws frame fitted into r with its effective boxes.
func (e *Editor) drawFrameThumb(screen *ebiten.Image, r image.Rectangle, key string, frame int) {
	dst := screen.SubImage(r).(*ebiten.Image)
	size := float64(min(r.Dx(), r.Dy()) - 2*thumbPadding)
	center := cp.Vector{X: float64(r.Min.X+r.Max.X) / 2, Y: float64(r.Min.Y+r.Max.Y) / 2}

	scale := e.cfg.Editor.ThumbnailZoom
	sprite, ok := e.sess.SpriteConfig(key, frame)
	if ok {
		scale = fitScale(sprite.Config.Frame.W, sprite.Config.Frame.H, size, e.cfg.Editor.ThumbnailZoom)
	}
	origin := e.sess.Origin(key, frame)
	var offset cp.Vector
	if ok {
		offset = center.Sub(cp.Vector{X: sprite.Config.Frame.W, Y: sprite.Config.Frame.H}.Mult(scale / 2))
		if img := e.images.Sprite(sprite); img != nil {
			drawSpriteAt(dst, img, offset, scale)
		}
	} else {
		offset = center.Sub(origin.Mult(scale))
	}

	buildPicker(e.thumbs, e.sess, key, frame, offset, scale)
	render.DrawBoxes(dst, e.thumbs, e.style, render.State{Persistent: persistentKinds(e.sess, key, frame)})
}

func (e *Editor) drawStrip(screen *ebiten.Image) {
	r := e.stripRect()
	vector.FillRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), panelColor, false)

	key, selected := e.canvas.Frame()
	n := e.sess.UniqueFrames(key)
	for i := e.stripScroll; i < n && i < e.stripScroll+e.stripCells(); i++ {
		x := r.Min.X + (i-e.stripScroll)*stripHeight
		cell := image.Rect(x, r.Min.Y, x+stripHeight, r.Max.Y)
		e.drawFrameThumb(screen, cell, key, i)
		if i == selected {
			vector.StrokeRect(screen, float32(cell.Min.X)+1, float32(cell.Min.Y)+1, float32(cell.Dx())-2, float32(cell.Dy())-2, 2, e.style.Selected, false)
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", i), cell.Min.X+4, cell.Min.Y+2)
	}
}

func (e *Editor) drawPreview(screen *ebiten.Image) {
	if !e.cfg.Editor.Playback {
		return
	}
	key, _ := e.canvas.Frame()
	def, ok := e.sess.Definition(key)
	if !ok {
		return
	}
	r := e.previewRect()
	vector.FillRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), toolbarColor, false)
	frame := framedata.FrameAt(time.Since(e.started), def.AnimDef.FrameRate, e.sess.UniqueFrames(key))
	e.drawFrameThumb(screen, r, key, frame)
}

func (e *Editor) drawStatus(screen *ebiten.Image) {
	key, frame := e.canvas.Frame()
	r := e.canvasRect()
	if key == "" {
		ebitenutil.DebugPrintAt(screen, "no frame definition loaded", r.Min.X+8, r.Min.Y+4)
		return
	}
	status := fmt.Sprintf("%s  frame %d/%d  zoom %.1f", key, frame+1, e.sess.UniqueFrames(key), e.canvas.Zoom())
	if e.sess.Dirty() {
		status += "  (edited)"
	}
	ebitenutil.DebugPrintAt(screen, status, r.Min.X+8, r.Min.Y+4)
	help := fmt.Sprintf("drag: edit  %s/%s/%s: delete/grow/shrink while dragging  %s: copy  %s, shift+%s: paste  ctrl+s: export",
		e.cfg.Keys.Delete, e.cfg.Keys.Grow, e.cfg.Keys.Shrink, e.cfg.Keys.Copy, e.cfg.Keys.Paste, e.cfg.Keys.Paste)
	ebitenutil.DebugPrintAt(screen, help, r.Min.X+8, r.Max.Y-18)
}

func (e *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.width, e.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
