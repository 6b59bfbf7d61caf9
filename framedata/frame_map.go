package framedata

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// FrameMap is a sparse per-frame map keyed by frame index. Object keys that are
// not frame indices are kept in Extra.
type FrameMap[T any] struct {
	Frames map[int]T
	Extra  map[string]json.RawMessage
}

func NewFrameMap[T any]() *FrameMap[T] {
	return &FrameMap[T]{Frames: make(map[int]T)}
}

func (m *FrameMap[T]) Get(frame int) (T, bool) {
	if m == nil {
		var zero T
		return zero, false
	}
	v, ok := m.Frames[frame]
	return v, ok
}

func (m *FrameMap[T]) Set(frame int, v T) {
	if m.Frames == nil {
		m.Frames = make(map[int]T)
	}
	m.Frames[frame] = v
}

func (m *FrameMap[T]) Delete(frame int) {
	if m == nil {
		return
	}
	delete(m.Frames, frame)
}

func (m *FrameMap[T]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Frames)
}

// Indices returns the defined frame indices in ascending order.
func (m *FrameMap[T]) Indices() []int {
	if m == nil {
		return nil
	}
	out := make([]int, 0, len(m.Frames))
	for k := range m.Frames {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

func (m *FrameMap[T]) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("framedata: frame map: %w", err)
	}
	m.Frames = make(map[int]T, len(raw))
	m.Extra = nil
	for key, value := range raw {
		frame, err := strconv.Atoi(key)
		if err != nil {
			if m.Extra == nil {
				m.Extra = make(map[string]json.RawMessage)
			}
			m.Extra[key] = value
			continue
		}
		if isNull(value) {
			continue
		}
		var v T
		if err := json.Unmarshal(value, &v); err != nil {
			return fmt.Errorf("framedata: frame %d: %w", frame, err)
		}
		m.Frames[frame] = v
	}
	return nil
}

func (m FrameMap[T]) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(m.Frames)+len(m.Extra))
	for k, raw := range m.Extra {
		out[k] = raw
	}
	for frame, v := range m.Frames {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("framedata: frame %d: %w", frame, err)
		}
		out[strconv.Itoa(frame)] = data
	}
	return json.Marshal(out)
}
