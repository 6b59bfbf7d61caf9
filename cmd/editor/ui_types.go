package main

import (
	"github.com/ebitenui/ebitenui/widget"
)

// RadioRow is a row of toggle buttons of which exactly one is active.
type RadioRow struct {
	group   *widget.RadioGroup
	buttons []*widget.Button
}

func (r *RadioRow) SetActive(idx int) {
	if r == nil || r.group == nil || idx < 0 || idx >= len(r.buttons) {
		return
	}
	r.group.SetActive(r.buttons[idx])
}

// AnimationList is the left panel list of frame keys.
type AnimationList struct {
	list    *widget.List
	entries []any
}

func (a *AnimationList) SetKeys(keys []string) {
	if a == nil || a.list == nil {
		return
	}
	entries := make([]any, len(keys))
	for i, k := range keys {
		entries[i] = k
	}
	a.entries = entries
	a.list.SetEntries(entries)
}

func (a *AnimationList) Select(key string) {
	if a == nil || a.list == nil {
		return
	}
	for _, e := range a.entries {
		if e == key {
			a.list.SetSelectedEntry(e)
			return
		}
	}
}
