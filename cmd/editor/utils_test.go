package main

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/milk9111/cboxeditor/framedata"
	"github.com/milk9111/cboxeditor/session"
)

func TestReloadTargets(t *testing.T) {
	dir := t.TempDir()
	def := filepath.Join(dir, "ryu.json")
	sheet := filepath.Join(dir, "sheets", "ryu-tex.json")
	other := filepath.Join(dir, "other", "ken-tex.json")

	cases := []struct {
		name       string
		path       string
		definition bool
		sheets     []string
	}{
		{"definition", def, true, nil},
		{"atlas", sheet, false, []string{sheet}},
		{"sheet_image", filepath.Join(dir, "sheets", "ryu.png"), false, []string{sheet}},
		{"webp_image", filepath.Join(dir, "other", "ken.webp"), false, []string{other}},
		{"unrelated_json", filepath.Join(dir, "sheets", "notes.json"), false, nil},
		{"unrelated_image", filepath.Join(dir, "ryu.png"), false, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			definition, sheets := reloadTargets(c.path, def, []string{sheet, other})
			if definition != c.definition {
				t.Fatalf("expected definition=%v, got %v", c.definition, definition)
			}
			if len(sheets) != len(c.sheets) {
				t.Fatalf("expected %v, got %v", c.sheets, sheets)
			}
			for i := range sheets {
				if sheets[i] != c.sheets[i] {
					t.Fatalf("expected %v, got %v", c.sheets, sheets)
				}
			}
		})
	}
}

func TestFitScale(t *testing.T) {
	cases := []struct {
		name       string
		w, h, size float64
		max        float64
		want       float64
	}{
		{"shrinks", 200, 100, 100, 1, 0.5},
		{"capped", 10, 20, 100, 1, 1},
		{"uncapped", 10, 20, 100, 0, 5},
		{"empty", 0, 0, 100, 2, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := fitScale(c.w, c.h, c.size, c.max); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestClipboardFallback(t *testing.T) {
	c := &Clipboard{}
	if _, err := c.Read(); !errors.Is(err, errEmptyClipboard) {
		t.Fatalf("expected errEmptyClipboard, got %v", err)
	}

	clip := session.Clip{Boxes: []framedata.BoxConfig{framedata.NewCapsule(0, 0, 10, 0, 6)}}
	if err := c.Write(clip); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := c.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got.Boxes) != 1 || !got.Boxes[0].Equal(clip.Boxes[0]) {
		t.Fatalf("expected %v, got %v", clip.Boxes, got.Boxes)
	}

	c.last = []byte("not a clip")
	if _, err := c.Read(); err == nil {
		t.Fatalf("expected an error for foreign clipboard text")
	}
}
