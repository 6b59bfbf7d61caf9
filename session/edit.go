package session

import (
	"math"

	"github.com/milk9111/cboxeditor/framedata"
	"github.com/milk9111/cboxeditor/overlay"
)

// AddBox stages box at the end of id's box list and returns its index.
func (s *Session) AddBox(id overlay.ID, box framedata.BoxConfig) int {
	var boxes []framedata.BoxConfig
	if def, ok := s.Boxes(id); ok {
		boxes = append(boxes, def.Boxes...)
	}
	boxes = append(boxes, s.atLeastMin(box))
	s.Stage(id, overlay.BoxesPatch(boxes))
	return len(boxes) - 1
}

// SetBox stages new geometry for the box at index. A radius under the
// minimum is raised to it.
func (s *Session) SetBox(id overlay.ID, index int, box framedata.BoxConfig) {
	s.Stage(id, overlay.BoxEditPatch(index, overlay.FieldsOf(s.atLeastMin(box))))
}

func (s *Session) atLeastMin(box framedata.BoxConfig) framedata.BoxConfig {
	box.R = math.Max(s.minRadius, box.R)
	return box
}

func (s *Session) SetPushbox(id overlay.ID, box framedata.PushboxConfig) {
	s.Stage(id, overlay.PushboxPatch(box))
}

// DeleteBox removes one box and commits at once. Removing the last box
// deletes the whole definition at id. For pushboxes index is ignored.
func (s *Session) DeleteBox(id overlay.ID, index int) {
	if id.Kind == framedata.KindPush {
		s.StageDelete(id)
		s.Commit(id)
		return
	}

	def, ok := s.Boxes(id)
	if !ok || index < 0 || index >= len(def.Boxes) {
		return
	}
	remaining := make([]framedata.BoxConfig, 0, len(def.Boxes)-1)
	remaining = append(remaining, def.Boxes[:index]...)
	remaining = append(remaining, def.Boxes[index+1:]...)

	if len(remaining) == 0 {
		s.StageDelete(id)
	} else {
		s.Stage(id, overlay.BoxesPatch(remaining))
	}
	s.Commit(id)
}
