package framedata

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type AnimationDefinition struct {
	Frames    Frames                     `json:"frames"`
	AssetKey  string                     `json:"assetKey"`
	Prefix    string                     `json:"prefix"`
	FrameRate float64                    `json:"frameRate"`
	Repeat    *int                       `json:"repeat,omitempty"`
	Extra     map[string]json.RawMessage `json:"-"`
}

func (a *AnimationDefinition) UnmarshalJSON(data []byte) error {
	type plain AnimationDefinition
	var v plain
	extra, err := decodeWithExtras(data, &v)
	if err != nil {
		return fmt.Errorf("framedata: animation: %w", err)
	}
	*a = AnimationDefinition(v)
	a.Extra = extra
	return nil
}

func (a AnimationDefinition) MarshalJSON() ([]byte, error) {
	type plain AnimationDefinition
	return encodeWithExtras(plain(a), a.Extra)
}

// Frames is either a plain frame count or an ordered list of runs over
// physical atlas frames. Runs is non-nil exactly when the list form is used.
type Frames struct {
	Count int
	Runs  []FrameRun
}

func FrameCount(n int) Frames {
	return Frames{Count: n}
}

func FrameRuns(runs ...FrameRun) Frames {
	if runs == nil {
		runs = []FrameRun{}
	}
	return Frames{Runs: runs}
}

func (f Frames) IsRuns() bool {
	return f.Runs != nil
}

func (f *Frames) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var runs []FrameRun
		if err := json.Unmarshal(trimmed, &runs); err != nil {
			return fmt.Errorf("framedata: frames: %w", err)
		}
		*f = FrameRuns(runs...)
		return nil
	}
	var n float64
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("framedata: frames: %w", err)
	}
	*f = FrameCount(int(n))
	return nil
}

func (f Frames) MarshalJSON() ([]byte, error) {
	if f.Runs != nil {
		return json.Marshal(f.Runs)
	}
	return json.Marshal(f.Count)
}

// FrameRun covers physical frames Index through EndIndex inclusive. A run
// decoded from a bare number keeps that form when encoded.
type FrameRun struct {
	Index    int                        `json:"index"`
	EndIndex *int                       `json:"endIndex,omitempty"`
	Loop     *int                       `json:"loop,omitempty"`
	Prefix   string                     `json:"prefix,omitempty"`
	Sfx      string                     `json:"sfx,omitempty"`
	Bare     bool                       `json:"-"`
	Extra    map[string]json.RawMessage `json:"-"`
}

func SingleFrame(index int) FrameRun {
	return FrameRun{Index: index, Bare: true}
}

func Run(index, endIndex int) FrameRun {
	return FrameRun{Index: index, EndIndex: &endIndex}
}

// End returns the last physical frame of the run.
func (r FrameRun) End() int {
	if r.EndIndex == nil {
		return r.Index
	}
	return *r.EndIndex
}

// Span is the number of logical frames the run contributes.
func (r FrameRun) Span() int {
	return r.End() - r.Index + 1
}

func (r *FrameRun) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] != '{' {
		var n float64
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return fmt.Errorf("framedata: frame run: %w", err)
		}
		*r = SingleFrame(int(n))
		return nil
	}
	type plain FrameRun
	var v plain
	extra, err := decodeWithExtras(trimmed, &v)
	if err != nil {
		return fmt.Errorf("framedata: frame run: %w", err)
	}
	*r = FrameRun(v)
	r.Extra = extra
	return nil
}

func (r FrameRun) MarshalJSON() ([]byte, error) {
	if r.Bare {
		return json.Marshal(r.Index)
	}
	type plain FrameRun
	return encodeWithExtras(plain(r), r.Extra)
}
