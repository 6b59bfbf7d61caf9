package framedata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

var ErrInvalidDefinition = errors.New("invalid definition")

// Document is a loaded frame definition file.
type Document struct {
	Name        string                      `json:"name,omitempty"`
	TempPushbox *PushboxConfig              `json:"tempPushbox,omitempty"`
	FrameDef    map[string]*FrameDefinition `json:"frameDef"`
	Extra       map[string]json.RawMessage  `json:"-"`
}

func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("framedata: parse: %w", err)
	}
	if doc.FrameDef == nil {
		doc.FrameDef = make(map[string]*FrameDefinition)
	}
	for key, def := range doc.FrameDef {
		if def == nil {
			delete(doc.FrameDef, key)
		}
	}
	return &doc, nil
}

func (d *Document) UnmarshalJSON(data []byte) error {
	type plain Document
	var v plain
	extra, err := decodeWithExtras(data, &v)
	if err != nil {
		return err
	}
	*d = Document(v)
	d.Extra = extra
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	type plain Document
	return encodeWithExtras(plain(d), d.Extra)
}

// Encode serializes the document with two-space indentation.
func (d *Document) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("framedata: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Clone deep-copies the document through its own encoding.
func (d *Document) Clone() (*Document, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("framedata: clone: %w", err)
	}
	return Parse(data)
}

// Keys returns the animation names in sorted order.
func (d *Document) Keys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, 0, len(d.FrameDef))
	for k := range d.FrameDef {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (d *Document) Animation(key string) (*FrameDefinition, bool) {
	if d == nil {
		return nil, false
	}
	def, ok := d.FrameDef[key]
	return def, ok && def != nil
}

// Validate reports every persistThroughFrame that does not lie past its own
// frame and every radius under minRadius. Loading continues regardless.
func (d *Document) Validate(minRadius float64) error {
	if d == nil {
		return nil
	}
	var errs []error
	for _, key := range d.Keys() {
		def := d.FrameDef[key]
		for _, kind := range []Kind{KindHurt, KindHit} {
			m := def.Boxes(kind)
			for _, frame := range m.Indices() {
				bd := m.Frames[frame]
				if through, ok := bd.PersistThrough(); ok && through <= frame {
					errs = append(errs, fmt.Errorf("%w: %s.%s.%d persistThroughFrame %d", ErrInvalidDefinition, key, kind.DefField(), frame, through))
				}
				for i, box := range bd.Boxes {
					if box.R < minRadius {
						errs = append(errs, fmt.Errorf("%w: %s.%s.%d box %d radius %g below %g", ErrInvalidDefinition, key, kind.DefField(), frame, i, box.R, minRadius))
					}
				}
			}
		}
		for _, frame := range def.PushboxDef.Indices() {
			pd := def.PushboxDef.Frames[frame]
			if through, ok := pd.PersistThrough(); ok && through <= frame {
				errs = append(errs, fmt.Errorf("%w: %s.%s.%d persistThroughFrame %d", ErrInvalidDefinition, key, KindPush.DefField(), frame, through))
			}
		}
	}
	return errors.Join(errs...)
}
