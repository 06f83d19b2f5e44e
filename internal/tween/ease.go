package tween

import (
	"math"
	"strings"
)

// EaseFunc maps linear progress in [0,1] to eased progress.
type EaseFunc func(p float64) float64

var eases = map[string]EaseFunc{
	"linear":         func(p float64) float64 { return p },
	"quad.easein":    func(p float64) float64 { return p * p },
	"quad.easeout":   func(p float64) float64 { return p * (2 - p) },
	"quad.easeinout": quadInOut,
	"cubic.easein":   func(p float64) float64 { return p * p * p },
	"cubic.easeout": func(p float64) float64 {
		q := p - 1
		return q*q*q + 1
	},
	"sine.easeinout": func(p float64) float64 { return -0.5 * (math.Cos(math.Pi*p) - 1) },
	"back.easeout": func(p float64) float64 {
		const s = 1.70158
		q := p - 1
		return q*q*((s+1)*q+s) + 1
	},
}

func quadInOut(p float64) float64 {
	if p < 0.5 {
		return 2 * p * p
	}
	return -1 + (4-2*p)*p
}

// Ease looks up an easing curve by name, case-insensitively. Names follow
// the "Family.easeOut" convention; "Power1" is an alias of "Quad". Unknown
// and empty names fall back to linear.
func Ease(name string) EaseFunc {
	key := strings.ToLower(strings.ReplaceAll(name, "Power1", "Quad"))
	if key == "" {
		key = "linear"
	}
	if fn, ok := eases[key]; ok {
		return fn
	}
	return eases["linear"]
}

// KnownEase reports whether name resolves to a curve other than the linear
// fallback.
func KnownEase(name string) bool {
	if name == "" {
		return true
	}
	_, ok := eases[strings.ToLower(strings.ReplaceAll(name, "Power1", "Quad"))]
	return ok
}
