package framedata

import (
	"encoding/json"
	"fmt"

	"github.com/jakecoffman/cp"
)

type BoxShape int

const (
	ShapeCircle BoxShape = iota
	ShapeCapsule
)

func (s BoxShape) String() string {
	switch s {
	case ShapeCircle:
		return "Circle"
	case ShapeCapsule:
		return "Capsule"
	default:
		return "Unknown"
	}
}

// BoxConfig is a hurtbox or hitbox in anchor-relative units. Shape selects
// which coordinates are meaningful: X/Y for circles, X1/Y1/X2/Y2 for capsules.
type BoxConfig struct {
	Shape          BoxShape
	X, Y           float64
	X1, Y1, X2, Y2 float64
	R              float64
	Extra          map[string]json.RawMessage
}

func NewCircle(x, y, r float64) BoxConfig {
	return BoxConfig{Shape: ShapeCircle, X: x, Y: y, R: r}
}

func NewCapsule(x1, y1, x2, y2, r float64) BoxConfig {
	return BoxConfig{Shape: ShapeCapsule, X1: x1, Y1: y1, X2: x2, Y2: y2, R: r}
}

func (b BoxConfig) Center() cp.Vector {
	return cp.Vector{X: b.X, Y: b.Y}
}

func (b BoxConfig) P1() cp.Vector {
	return cp.Vector{X: b.X1, Y: b.Y1}
}

func (b BoxConfig) P2() cp.Vector {
	return cp.Vector{X: b.X2, Y: b.Y2}
}

// Equal compares geometry only.
func (b BoxConfig) Equal(o BoxConfig) bool {
	if b.Shape != o.Shape || b.R != o.R {
		return false
	}
	if b.Shape == ShapeCapsule {
		return b.X1 == o.X1 && b.Y1 == o.Y1 && b.X2 == o.X2 && b.Y2 == o.Y2
	}
	return b.X == o.X && b.Y == o.Y
}

func (b BoxConfig) String() string {
	if b.Shape == ShapeCapsule {
		return fmt.Sprintf("capsule{x1:%g y1:%g x2:%g y2:%g r:%g}", b.X1, b.Y1, b.X2, b.Y2, b.R)
	}
	return fmt.Sprintf("circle{x:%g y:%g r:%g}", b.X, b.Y, b.R)
}

type circleJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	R float64 `json:"r"`
}

type capsuleJSON struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
	R  float64 `json:"r"`
}

// UnmarshalJSON picks the shape from the document: an object carrying x1 is a
// capsule, anything else is a circle.
func (b *BoxConfig) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("framedata: box: %w", err)
	}
	if _, ok := probe["x1"]; ok {
		var c capsuleJSON
		extra, err := decodeWithExtras(data, &c)
		if err != nil {
			return fmt.Errorf("framedata: capsule box: %w", err)
		}
		*b = NewCapsule(c.X1, c.Y1, c.X2, c.Y2, c.R)
		b.Extra = extra
		return nil
	}
	var c circleJSON
	extra, err := decodeWithExtras(data, &c)
	if err != nil {
		return fmt.Errorf("framedata: circle box: %w", err)
	}
	*b = NewCircle(c.X, c.Y, c.R)
	b.Extra = extra
	return nil
}

func (b BoxConfig) MarshalJSON() ([]byte, error) {
	if b.Shape == ShapeCapsule {
		return encodeWithExtras(capsuleJSON{X1: b.X1, Y1: b.Y1, X2: b.X2, Y2: b.Y2, R: b.R}, b.Extra)
	}
	return encodeWithExtras(circleJSON{X: b.X, Y: b.Y, R: b.R}, b.Extra)
}

// PushboxConfig is an axis-aligned rectangle, top-left plus extents.
type PushboxConfig struct {
	X      float64                    `json:"x"`
	Y      float64                    `json:"y"`
	Width  float64                    `json:"width"`
	Height float64                    `json:"height"`
	Extra  map[string]json.RawMessage `json:"-"`
}

func (p *PushboxConfig) UnmarshalJSON(data []byte) error {
	type plain PushboxConfig
	var v plain
	extra, err := decodeWithExtras(data, &v)
	if err != nil {
		return fmt.Errorf("framedata: pushbox: %w", err)
	}
	*p = PushboxConfig(v)
	p.Extra = extra
	return nil
}

func (p PushboxConfig) MarshalJSON() ([]byte, error) {
	type plain PushboxConfig
	return encodeWithExtras(plain(p), p.Extra)
}

// Equal compares geometry only.
func (p PushboxConfig) Equal(o PushboxConfig) bool {
	return p.X == o.X && p.Y == o.Y && p.Width == o.Width && p.Height == o.Height
}

func (p PushboxConfig) String() string {
	return fmt.Sprintf("pushbox{x:%g y:%g w:%g h:%g}", p.X, p.Y, p.Width, p.Height)
}
