package snap

import "sort"

// Type classifies a snap candidate.
type Type string

// Snap point types.
const (
	TypeGrid         Type = "grid"
	TypeEndpoint     Type = "endpoint"
	TypeMidpoint     Type = "midpoint"
	TypeCenter       Type = "center"
	TypeEdge         Type = "edge"
	TypeIntersection Type = "intersection"
)

// Mode selects how the effective snap radius is derived.
type Mode string

// Radius modes.
const (
	// ModeFixed uses the configured radius as-is.
	ModeFixed Mode = "fixed"
	// ModeAdaptive divides the radius by the view scale so the screen-space
	// feel stays constant while zooming, clamped to a sane range.
	ModeAdaptive Mode = "adaptive"
)

// TypeSet is the set of snap types currently enabled.
type TypeSet map[Type]bool

// NewTypeSet builds a set from the given types.
func NewTypeSet(types ...Type) TypeSet {
	s := make(TypeSet, len(types))
	for _, t := range types {
		s[t] = true
	}
	return s
}

// Sorted returns the enabled types as a sorted slice, the form the set
// serializes to.
func (s TypeSet) Sorted() []Type {
	out := make([]Type, 0, len(s))
	for t, on := range s {
		if on {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FromSlice restores a TypeSet from its serialized array form.
func FromSlice(types []Type) TypeSet {
	return NewTypeSet(types...)
}

// Clone returns an independent copy of the set.
func (s TypeSet) Clone() TypeSet {
	out := make(TypeSet, len(s))
	for t, on := range s {
		out[t] = on
	}
	return out
}

// Config is the snap configuration surface. The detector consumes it
// read-only; it is mutated only by tool-mode transitions or explicit
// user settings.
type Config struct {
	Enabled     bool
	Radius      float64
	Mode        Mode
	GridSpacing float64
	ActiveTypes TypeSet
}

// DefaultConfig returns the snap defaults used by the shape tools.
func DefaultConfig() Config {
	return Config{
		Enabled:     true,
		Radius:      8,
		Mode:        ModeFixed,
		GridSpacing: 10,
		ActiveTypes: NewTypeSet(TypeGrid, TypeEndpoint, TypeMidpoint, TypeCenter),
	}
}

// EffectiveRadius resolves the radius for the given view scale.
func (c Config) EffectiveRadius(viewScale float64) float64 {
	if c.Mode != ModeAdaptive || viewScale <= 0 {
		return c.Radius
	}
	r := c.Radius / viewScale
	const minRadius, maxRadius = 0.5, 200.0
	if r < minRadius {
		return minRadius
	}
	if r > maxRadius {
		return maxRadius
	}
	return r
}

// ForTool returns the active-type set appropriate for a tool mode.
// Line and measure tools additionally enable intersection snapping; the
// shape-drawing tools use endpoint/midpoint/center/grid only.
func ForTool(tool string) TypeSet {
	switch tool {
	case "line-draw", "measure":
		return NewTypeSet(TypeGrid, TypeEndpoint, TypeMidpoint, TypeCenter, TypeIntersection)
	default:
		return NewTypeSet(TypeGrid, TypeEndpoint, TypeMidpoint, TypeCenter)
	}
}
