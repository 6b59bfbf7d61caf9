package atlas

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/cboxeditor/common"
	_ "golang.org/x/image/webp"
)

// ErrMissingImage is returned when an atlas names an image that cannot be
// found next to it.
var ErrMissingImage = errors.New("atlas image not found")

type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FrameConfig describes one packed sprite.
type FrameConfig struct {
	Filename         string `json:"filename"`
	Rotated          bool   `json:"rotated"`
	Trimmed          bool   `json:"trimmed"`
	SourceSize       Size   `json:"sourceSize"`
	SpriteSourceSize Rect   `json:"spriteSourceSize"`
	Frame            Rect   `json:"frame"`
	Anchor           Point  `json:"anchor"`
}

// Origin is the anchor point in trimmed-sprite pixels. Box coordinates are
// relative to it.
func (f FrameConfig) Origin() cp.Vector {
	return common.FloorVec(cp.Vector{
		X: f.Anchor.X*f.SourceSize.W - f.SpriteSourceSize.X,
		Y: f.Anchor.Y*f.SourceSize.H - f.SpriteSourceSize.Y,
	})
}

// Bounds is the sprite's rectangle inside the sheet image.
func (f FrameConfig) Bounds() image.Rectangle {
	x, y := int(f.Frame.X), int(f.Frame.Y)
	return image.Rect(x, y, x+int(f.Frame.W), y+int(f.Frame.H))
}

// Texture is one packed sheet.
type Texture struct {
	Image  string        `json:"image"`
	Format string        `json:"format"`
	Size   Size          `json:"size"`
	Scale  float64       `json:"scale"`
	Frames []FrameConfig `json:"frames"`
}

// ParseTexture accepts a multi-pack document ({"textures": [...]}, first
// texture used), a single texture object, or the hash layout that keys frames
// by filename and keeps the image name under "meta".
func ParseTexture(data []byte) (*Texture, error) {
	var probe struct {
		Textures []json.RawMessage `json:"textures"`
		Frames   json.RawMessage   `json:"frames"`
		Meta     *struct {
			Image  string  `json:"image"`
			Format string  `json:"format"`
			Size   Size    `json:"size"`
			Scale  float64 `json:"scale"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("atlas: parse: %w", err)
	}
	if len(probe.Textures) > 0 {
		return ParseTexture(probe.Textures[0])
	}

	frames := bytes.TrimSpace(probe.Frames)
	if len(frames) > 0 && frames[0] == '{' {
		var byName map[string]FrameConfig
		if err := json.Unmarshal(frames, &byName); err != nil {
			return nil, fmt.Errorf("atlas: parse frames: %w", err)
		}
		tex := &Texture{Frames: make([]FrameConfig, 0, len(byName))}
		if probe.Meta != nil {
			tex.Image = probe.Meta.Image
			tex.Format = probe.Meta.Format
			tex.Size = probe.Meta.Size
			tex.Scale = probe.Meta.Scale
		}
		for name, fc := range byName {
			if fc.Filename == "" {
				fc.Filename = name
			}
			tex.Frames = append(tex.Frames, fc)
		}
		sort.Slice(tex.Frames, func(i, j int) bool { return tex.Frames[i].Filename < tex.Frames[j].Filename })
		return tex, nil
	}

	var tex Texture
	if err := json.Unmarshal(data, &tex); err != nil {
		return nil, fmt.Errorf("atlas: parse texture: %w", err)
	}
	if tex.Image == "" && probe.Meta != nil {
		tex.Image = probe.Meta.Image
	}
	return &tex, nil
}

// Sheet is a texture with its decoded image and a filename index.
type Sheet struct {
	Key     string
	Texture *Texture
	Image   image.Image
	byName  map[string]*FrameConfig
}

func NewSheet(key string, tex *Texture, img image.Image) *Sheet {
	s := &Sheet{Key: key, Texture: tex, Image: img, byName: make(map[string]*FrameConfig, len(tex.Frames))}
	for i := range tex.Frames {
		fc := &tex.Frames[i]
		s.byName[fc.Filename] = fc
	}
	return s
}

func (s *Sheet) Frame(filename string) (*FrameConfig, bool) {
	if s == nil {
		return nil, false
	}
	fc, ok := s.byName[filename]
	return fc, ok
}

// SubImage returns the pixels of fc, or nil when the sheet image cannot be
// sliced.
func (s *Sheet) SubImage(fc *FrameConfig) image.Image {
	if s == nil || s.Image == nil || fc == nil {
		return nil
	}
	sub, ok := s.Image.(interface {
		SubImage(r image.Rectangle) image.Image
	})
	if !ok {
		return nil
	}
	return sub.SubImage(fc.Bounds())
}

// Load parses textureJSON and decodes the image it names from images.
func Load(key string, textureJSON []byte, images fs.FS) (*Sheet, error) {
	tex, err := ParseTexture(textureJSON)
	if err != nil {
		return nil, err
	}
	if tex.Image == "" {
		return nil, fmt.Errorf("atlas: load %s: texture names no image", key)
	}
	f, err := images.Open(path.Clean(filepath.ToSlash(tex.Image)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("atlas: load %s: %w: %s", key, ErrMissingImage, tex.Image)
		}
		return nil, fmt.Errorf("atlas: load %s: open %s: %w", key, tex.Image, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("atlas: load %s: decode %s: %w", key, tex.Image, err)
	}
	return NewSheet(key, tex, img), nil
}

// LoadFile loads an atlas json file. The sheet key is the file name without
// its extension and the image is looked up next to the file.
func LoadFile(filename string) (*Sheet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("atlas: read %s: %w", filename, err)
	}
	return Load(KeyFor(filename), data, os.DirFS(filepath.Dir(filename)))
}

func KeyFor(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SpriteFilename is the atlas filename of a physical frame: prefix/NN.png.
func SpriteFilename(prefix string, spriteIndex int) string {
	return fmt.Sprintf("%s/%02d.png", prefix, spriteIndex)
}
