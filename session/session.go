package session

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/cboxeditor/atlas"
	"github.com/milk9111/cboxeditor/config"
	"github.com/milk9111/cboxeditor/framedata"
	"github.com/milk9111/cboxeditor/overlay"
)

var ErrNoDocument = errors.New("no frame definition loaded")

const defaultMinRadius = 5

// Session holds the loaded frame definition, its sprite sheets and the edits
// made on top of them.
type Session struct {
	minRadius float64

	name    string
	doc     *framedata.Document
	sheets  map[string]*atlas.Sheet
	overlay *overlay.Overlay
	sprites map[spriteKey]*Sprite
}

type spriteKey struct {
	prefix   string
	assetKey string
	frameKey string
	frame    int
}

// Sprite is the atlas frame shown for one logical frame of an animation.
type Sprite struct {
	Sheet    *atlas.Sheet
	Config   *atlas.FrameConfig
	Filename string
	Index    int
}

func New(cfg *config.Config) *Session {
	minRadius := float64(defaultMinRadius)
	if cfg != nil && cfg.Editor.MinRadius > 0 {
		minRadius = cfg.Editor.MinRadius
	}
	return &Session{
		minRadius: minRadius,
		sheets:    make(map[string]*atlas.Sheet),
		overlay:   overlay.Empty,
		sprites:   make(map[spriteKey]*Sprite),
	}
}

// LoadDefinition replaces the document. Pending edits are dropped. Validation
// problems are logged and do not stop the load.
func (s *Session) LoadDefinition(name string, data []byte) error {
	doc, err := framedata.Parse(data)
	if err != nil {
		return fmt.Errorf("session: load definition %s: %w", name, err)
	}
	if err := doc.Validate(s.minRadius); err != nil {
		log.Printf("session: validate %s: %v", name, err)
	}
	s.name = name
	s.doc = doc
	s.overlay = overlay.Empty
	clear(s.sprites)
	return nil
}

// LoadSpriteSheet adds or replaces the sheet for key. A failed load leaves
// the sheets already loaded untouched.
func (s *Session) LoadSpriteSheet(key string, textureJSON []byte, images fs.FS) error {
	sheet, err := atlas.Load(key, textureJSON, images)
	if err != nil {
		return fmt.Errorf("session: load sprite sheet %s: %w", key, err)
	}
	s.AddSheet(sheet)
	return nil
}

func (s *Session) LoadSpriteSheetFile(filename string) error {
	sheet, err := atlas.LoadFile(filename)
	if err != nil {
		return fmt.Errorf("session: load sprite sheet %s: %w", filename, err)
	}
	s.AddSheet(sheet)
	return nil
}

func (s *Session) AddSheet(sheet *atlas.Sheet) {
	s.sheets[sheet.Key] = sheet
	clear(s.sprites)
}

func (s *Session) Sheet(key string) (*atlas.Sheet, bool) {
	sheet, ok := s.sheets[key]
	return sheet, ok
}

func (s *Session) Name() string {
	return s.name
}

func (s *Session) Document() *framedata.Document {
	return s.doc
}

func (s *Session) Loaded() bool {
	return s.doc != nil
}

func (s *Session) Keys() []string {
	return s.doc.Keys()
}

func (s *Session) Definition(frameKey string) (*framedata.FrameDefinition, bool) {
	return s.doc.Animation(frameKey)
}

// UniqueFrames is the number of logical frames of the animation, or zero
// when it does not exist.
func (s *Session) UniqueFrames(frameKey string) int {
	def, ok := s.doc.Animation(frameKey)
	if !ok {
		return 0
	}
	return framedata.UniqueFrameCount(def.AnimDef)
}

// ResolveBoxes returns the hurtboxes or hitboxes in effect at frame, edits
// included.
func (s *Session) ResolveBoxes(frameKey string, frame int, kind framedata.Kind) framedata.Resolved[framedata.BoxDefinition] {
	if s.doc == nil {
		return framedata.Resolved[framedata.BoxDefinition]{}
	}
	return framedata.Resolve(frame, s.overlay.BoxLookup(s.doc, frameKey, kind))
}

func (s *Session) ResolvePushbox(frameKey string, frame int) framedata.Resolved[framedata.PushboxDefinition] {
	if s.doc == nil {
		return framedata.Resolved[framedata.PushboxDefinition]{}
	}
	return framedata.Resolve(frame, s.overlay.PushboxLookup(s.doc, frameKey))
}

// SpriteConfig finds the atlas frame for a logical frame. Results, misses
// included, are cached until the document or a sheet changes.
func (s *Session) SpriteConfig(frameKey string, frame int) (*Sprite, bool) {
	def, ok := s.doc.Animation(frameKey)
	if !ok {
		return nil, false
	}
	anim := def.AnimDef
	key := spriteKey{prefix: anim.Prefix, assetKey: anim.AssetKey, frameKey: frameKey, frame: frame}
	if sprite, ok := s.sprites[key]; ok {
		return sprite, sprite != nil
	}

	sprite := s.findSprite(anim, frameKey, frame)
	s.sprites[key] = sprite
	return sprite, sprite != nil
}

func (s *Session) findSprite(anim framedata.AnimationDefinition, frameKey string, frame int) *Sprite {
	idx := framedata.SpriteIndex(anim, frame)
	if idx == framedata.NotFound {
		log.Printf("session: sprite %s.%d: frame outside animation", frameKey, frame)
		return nil
	}
	filename := atlas.SpriteFilename(anim.Prefix, idx)
	sheet, ok := s.sheets[anim.AssetKey]
	if !ok {
		log.Printf("session: sprite %s.%d: no sprite sheet %s", frameKey, frame, anim.AssetKey)
		return nil
	}
	fc, ok := sheet.Frame(filename)
	if !ok {
		log.Printf("session: sprite %s.%d: no frame %s in sheet %s", frameKey, frame, filename, anim.AssetKey)
		return nil
	}
	return &Sprite{Sheet: sheet, Config: fc, Filename: filename, Index: idx}
}

// Origin is the anchor point boxes are measured from, in sprite pixels. It
// is zero when the sprite is unknown.
func (s *Session) Origin(frameKey string, frame int) cp.Vector {
	sprite, ok := s.SpriteConfig(frameKey, frame)
	if !ok {
		return cp.Vector{}
	}
	return sprite.Config.Origin()
}

func (s *Session) Overlay() *overlay.Overlay {
	return s.overlay
}

func (s *Session) Stage(id overlay.ID, patch overlay.Patch) {
	s.overlay = s.overlay.Stage(id, patch)
}

func (s *Session) StageDelete(id overlay.ID) {
	s.overlay = s.overlay.StageDelete(id)
}

func (s *Session) Commit(id overlay.ID) {
	s.overlay = s.overlay.Commit(id)
}

func (s *Session) CommitAll() {
	s.overlay = s.overlay.CommitAll()
}

func (s *Session) Discard(id overlay.ID) {
	s.overlay = s.overlay.Discard(id)
}

// Boxes returns the effective definition at exactly id's frame.
func (s *Session) Boxes(id overlay.ID) (framedata.BoxDefinition, bool) {
	return s.overlay.GetBoxes(s.doc, id)
}

func (s *Session) Pushbox(id overlay.ID) (framedata.PushboxDefinition, bool) {
	return s.overlay.GetPushbox(s.doc, id)
}

// Dirty reports whether committed edits exist.
func (s *Session) Dirty() bool {
	return s.overlay.HasCommitted()
}
