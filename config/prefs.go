package config

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/quasilyte/gdata"
)

const prefsItem = "prefs"

// Prefs is what the editor remembers between sessions.
type Prefs struct {
	LastDefinition string   `json:"lastDefinition"`
	Sheets         []string `json:"sheets"`
	Zoom           float64  `json:"zoom"`
	Shape          int      `json:"shape"`
	Kind           int      `json:"kind"`
}

// ItemStore is the subset of gdata.Manager used for preferences.
type ItemStore interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

type PrefStore struct {
	store ItemStore
}

func NewPrefStore(store ItemStore) *PrefStore {
	return &PrefStore{store: store}
}

// OpenPrefStore opens the per-user data directory for appName. A store that
// cannot be opened is logged and behaves as empty.
func OpenPrefStore(appName string) *PrefStore {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("config: open prefs %s: %v", appName, err)
		return &PrefStore{}
	}
	return &PrefStore{store: m}
}

// Load returns the saved prefs, or nil when none have been saved.
func (p *PrefStore) Load() (*Prefs, error) {
	if p == nil || p.store == nil {
		return nil, nil
	}
	data, err := p.store.LoadItem(prefsItem)
	if err != nil {
		return nil, fmt.Errorf("config: load prefs: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	var prefs Prefs
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("config: parse prefs: %w", err)
	}
	return &prefs, nil
}

func (p *PrefStore) Save(prefs *Prefs) error {
	if p == nil || p.store == nil || prefs == nil {
		return nil
	}
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("config: encode prefs: %w", err)
	}
	if err := p.store.SaveItem(prefsItem, data); err != nil {
		return fmt.Errorf("config: save prefs: %w", err)
	}
	return nil
}
