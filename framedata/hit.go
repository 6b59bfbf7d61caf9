package framedata

import (
	"encoding/json"
	"fmt"
)

// Hit is the partial hit payload authored on a hitbox definition. It is carried
// through edits and exports untouched by the geometry code.
type Hit struct {
	Damage    *float64                   `json:"damage,omitempty"`
	Angle     *float64                   `json:"angle,omitempty"`
	Knockback *float64                   `json:"knockback,omitempty"`
	Type      *[]string                  `json:"type,omitempty"`
	Hitstop   *[]float64                 `json:"hitstop,omitempty"`
	Hitstun   *float64                   `json:"hitstun,omitempty"`
	Velocity  *HitVelocity               `json:"velocity,omitempty"`
	Pushback  *HitPushback               `json:"pushback,omitempty"`
	Sfx       *string                    `json:"sfx,omitempty"`
	Extra     map[string]json.RawMessage `json:"-"`
}

type HitVelocity struct {
	Ground *HitVector `json:"ground,omitempty"`
	Air    *HitVector `json:"air,omitempty"`
}

type HitVector struct {
	Angle     float64 `json:"angle"`
	Magnitude float64 `json:"magnitude"`
}

type HitPushback struct {
	Base  *float64 `json:"base,omitempty"`
	Decay *float64 `json:"decay,omitempty"`
}

func (h *Hit) UnmarshalJSON(data []byte) error {
	type plain Hit
	var v plain
	extra, err := decodeWithExtras(data, &v)
	if err != nil {
		return fmt.Errorf("framedata: hit: %w", err)
	}
	*h = Hit(v)
	h.Extra = extra
	return nil
}

func (h Hit) MarshalJSON() ([]byte, error) {
	type plain Hit
	return encodeWithExtras(plain(h), h.Extra)
}

// Merge returns h with every field set in next laid over it. Nested velocity
// and pushback objects combine rather than replace.
func (h *Hit) Merge(next *Hit) *Hit {
	if h == nil && next == nil {
		return nil
	}
	out := &Hit{}
	if h != nil {
		*out = *h
		out.Extra = cloneExtras(h.Extra)
	}
	if next == nil {
		return out
	}
	if next.Damage != nil {
		out.Damage = next.Damage
	}
	if next.Angle != nil {
		out.Angle = next.Angle
	}
	if next.Knockback != nil {
		out.Knockback = next.Knockback
	}
	if next.Type != nil {
		out.Type = next.Type
	}
	if next.Hitstop != nil {
		out.Hitstop = next.Hitstop
	}
	if next.Hitstun != nil {
		out.Hitstun = next.Hitstun
	}
	if next.Sfx != nil {
		out.Sfx = next.Sfx
	}
	if next.Velocity != nil {
		v := HitVelocity{}
		if out.Velocity != nil {
			v = *out.Velocity
		}
		if next.Velocity.Ground != nil {
			v.Ground = next.Velocity.Ground
		}
		if next.Velocity.Air != nil {
			v.Air = next.Velocity.Air
		}
		out.Velocity = &v
	}
	if next.Pushback != nil {
		p := HitPushback{}
		if out.Pushback != nil {
			p = *out.Pushback
		}
		if next.Pushback.Base != nil {
			p.Base = next.Pushback.Base
		}
		if next.Pushback.Decay != nil {
			p.Decay = next.Pushback.Decay
		}
		out.Pushback = &p
	}
	for k, raw := range next.Extra {
		if out.Extra == nil {
			out.Extra = make(map[string]json.RawMessage)
		}
		out.Extra[k] = raw
	}
	return out
}
