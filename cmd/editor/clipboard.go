package main

import (
	"errors"
	"log"

	"github.com/milk9111/cboxeditor/session"
	"golang.design/x/clipboard"
)

var errEmptyClipboard = errors.New("clipboard is empty")

// Clipboard moves box clips through the system clipboard as JSON text. When
// the system clipboard cannot be initialized it keeps clips in memory.
type Clipboard struct {
	system bool
	last   []byte
}

func NewClipboard() *Clipboard {
	if err := clipboard.Init(); err != nil {
		log.Printf("editor: clipboard unavailable, using in-process buffer: %v", err)
		return &Clipboard{}
	}
	return &Clipboard{system: true}
}

func (c *Clipboard) Write(clip session.Clip) error {
	data, err := clip.Encode()
	if err != nil {
		return err
	}
	c.last = data
	if c.system {
		clipboard.Write(clipboard.FmtText, data)
	}
	return nil
}

// Read decodes the clipboard. Text that is not a clip is an error.
func (c *Clipboard) Read() (session.Clip, error) {
	data := c.last
	if c.system {
		if text := clipboard.Read(clipboard.FmtText); len(text) > 0 {
			data = text
		}
	}
	if len(data) == 0 {
		return session.Clip{}, errEmptyClipboard
	}
	return session.DecodeClip(data)
}
