package overlay

import (
	"fmt"

	"github.com/milk9111/cboxeditor/framedata"
)

// ID addresses one per-frame definition of one animation.
type ID struct {
	FrameKey string
	Kind     framedata.Kind
	Frame    int
}

func NewID(frameKey string, kind framedata.Kind, frame int) ID {
	return ID{FrameKey: frameKey, Kind: kind, Frame: frame}
}

// String renders the id as "<frameKey>.<defField>.<frame>".
func (id ID) String() string {
	return fmt.Sprintf("%s.%s.%d", id.FrameKey, id.Kind.DefField(), id.Frame)
}
