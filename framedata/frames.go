package framedata

import (
	"math"
	"time"
)

// NotFound is returned by SpriteIndex when a logical frame lies outside the
// animation.
const NotFound = -1

// SpriteIndex maps a zero-based logical frame to its physical atlas frame.
// Counted animations use 1-based atlas frames.
func SpriteIndex(anim AnimationDefinition, frame int) int {
	if frame < 0 {
		return NotFound
	}
	if !anim.Frames.IsRuns() {
		return frame + 1
	}
	offset := 0
	for _, run := range anim.Frames.Runs {
		f := frame - offset
		if f <= run.End()-run.Index {
			return run.Index + f
		}
		offset += run.Span()
	}
	return NotFound
}

// UniqueFrameCount is the number of logical frames in anim.
func UniqueFrameCount(anim AnimationDefinition) int {
	if !anim.Frames.IsRuns() {
		return anim.Frames.Count
	}
	total := 0
	for _, run := range anim.Frames.Runs {
		total += run.Span()
	}
	return total
}

// FrameAt returns the logical frame shown after elapsed time of looping
// playback at frameRate frames per second.
func FrameAt(elapsed time.Duration, frameRate float64, count int) int {
	if frameRate <= 0 || count <= 0 || elapsed <= 0 {
		return 0
	}
	n := int(math.Floor(elapsed.Seconds() * frameRate))
	return n % count
}
