package framedata

import (
	"testing"
	"time"
)

func TestSpriteIndexCount(t *testing.T) {
	anim := AnimationDefinition{Frames: FrameCount(4)}
	for i := 0; i < 4; i++ {
		if got := SpriteIndex(anim, i); got != i+1 {
			t.Fatalf("SpriteIndex(%d) = %d, want %d", i, got, i+1)
		}
	}
	if got := UniqueFrameCount(anim); got != 4 {
		t.Fatalf("expected 4 unique frames, got %d", got)
	}
}

func TestSpriteIndexRuns(t *testing.T) {
	anim := AnimationDefinition{Frames: FrameRuns(Run(0, 2), SingleFrame(5))}

	cases := []struct {
		name  string
		frame int
		want  int
	}{
		{"first_run_start", 0, 0},
		{"first_run_middle", 1, 1},
		{"first_run_end", 2, 2},
		{"bare_entry", 3, 5},
		{"past_end", 4, NotFound},
		{"negative", -1, NotFound},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := SpriteIndex(anim, c.frame); got != c.want {
				t.Fatalf("SpriteIndex(%d) = %d, want %d", c.frame, got, c.want)
			}
		})
	}

	if got := UniqueFrameCount(anim); got != 4 {
		t.Fatalf("expected 4 unique frames, got %d", got)
	}
}

func TestSpriteIndexEmptyRuns(t *testing.T) {
	anim := AnimationDefinition{Frames: FrameRuns()}
	if got := SpriteIndex(anim, 0); got != NotFound {
		t.Fatalf("expected NotFound, got %d", got)
	}
	if got := UniqueFrameCount(anim); got != 0 {
		t.Fatalf("expected 0 unique frames, got %d", got)
	}
}

func TestFrameAt(t *testing.T) {
	cases := []struct {
		name    string
		elapsed time.Duration
		rate    float64
		count   int
		want    int
	}{
		{"start", 0, 10, 4, 0},
		{"second_frame", 150 * time.Millisecond, 10, 4, 1},
		{"wraps", 500 * time.Millisecond, 10, 4, 1},
		{"zero_rate", time.Second, 0, 4, 0},
		{"no_frames", time.Second, 10, 0, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := FrameAt(c.elapsed, c.rate, c.count); got != c.want {
				t.Fatalf("FrameAt = %d, want %d", got, c.want)
			}
		})
	}
}
