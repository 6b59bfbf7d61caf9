package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/cboxeditor/session"
)

// Images caches ebiten images for sprites, keyed by sheet and filename.
type Images struct {
	images map[string]*ebiten.Image
}

func NewImages() *Images {
	return &Images{images: map[string]*ebiten.Image{}}
}

func spriteKey(sprite *session.Sprite) string {
	return sprite.Sheet.Key + ":" + sprite.Filename
}

// Sprite returns the image for sprite, cutting it from its sheet on first
// use. It returns nil when the sheet image cannot be sliced.
func (c *Images) Sprite(sprite *session.Sprite) *ebiten.Image {
	if sprite == nil || sprite.Sheet == nil {
		return nil
	}
	key := spriteKey(sprite)
	if img, ok := c.images[key]; ok {
		return img
	}
	sub := sprite.Sheet.SubImage(sprite.Config)
	if sub == nil {
		return nil
	}
	img := ebiten.NewImageFromImage(sub)
	c.images[key] = img
	return img
}

// Clear drops every cached image. Call it when a sheet is reloaded.
func (c *Images) Clear() {
	for k, img := range c.images {
		img.Deallocate()
		delete(c.images, k)
	}
}
