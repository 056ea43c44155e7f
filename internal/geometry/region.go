package geometry

import (
	"strconv"
	"strings"
)

// Region is a boolean combination of surface half-spaces.
type Region interface {
	// Contains reports whether the point lies inside the region.
	Contains(x, y, z float64) bool
	// Surfaces returns every surface the region refers to.
	Surfaces() []*Surface

	expr(parent int) string
}

// Expression renders r in the engine's region syntax: "-1" and "+1" for
// half-spaces, a space for intersection, "|" for union and "~" for
// complement. Surface IDs must already be assigned.
func Expression(r Region) string {
	if r == nil {
		return ""
	}
	return r.expr(precNone)
}

const (
	precNone = iota
	precUnion
	precIntersection
)

// Halfspace is one side of a surface.
type Halfspace struct {
	Surface  *Surface
	Positive bool
}

// Below returns the negative half-space of s.
func Below(s *Surface) Halfspace { return Halfspace{Surface: s} }

// Above returns the positive half-space of s.
func Above(s *Surface) Halfspace { return Halfspace{Surface: s, Positive: true} }

func (h Halfspace) Contains(x, y, z float64) bool {
	v := h.Surface.Evaluate(x, y, z)
	if h.Positive {
		return v > 0
	}
	return v < 0
}

func (h Halfspace) Surfaces() []*Surface { return []*Surface{h.Surface} }

func (h Halfspace) expr(int) string {
	id := strconv.Itoa(h.Surface.ID)
	if h.Positive {
		return id
	}
	return "-" + id
}

// Intersection holds where every member region holds.
type Intersection []Region

// And intersects regions, flattening nested intersections.
func And(rs ...Region) Intersection {
	var out Intersection
	for _, r := range rs {
		if in, ok := r.(Intersection); ok {
			out = append(out, in...)
			continue
		}
		out = append(out, r)
	}
	return out
}

func (in Intersection) Contains(x, y, z float64) bool {
	for _, r := range in {
		if !r.Contains(x, y, z) {
			return false
		}
	}
	return true
}

func (in Intersection) Surfaces() []*Surface { return collect(in) }

func (in Intersection) expr(parent int) string {
	parts := make([]string, len(in))
	for i, r := range in {
		parts[i] = r.expr(precIntersection)
	}
	s := strings.Join(parts, " ")
	if parent > precIntersection {
		return "(" + s + ")"
	}
	return s
}

// Union holds where any member region holds.
type Union []Region

// Or unites regions, flattening nested unions.
func Or(rs ...Region) Union {
	var out Union
	for _, r := range rs {
		if u, ok := r.(Union); ok {
			out = append(out, u...)
			continue
		}
		out = append(out, r)
	}
	return out
}

func (u Union) Contains(x, y, z float64) bool {
	for _, r := range u {
		if r.Contains(x, y, z) {
			return true
		}
	}
	return false
}

func (u Union) Surfaces() []*Surface { return collect(u) }

func (u Union) expr(parent int) string {
	parts := make([]string, len(u))
	for i, r := range u {
		parts[i] = r.expr(precUnion)
	}
	s := strings.Join(parts, " | ")
	if parent > precUnion {
		return "(" + s + ")"
	}
	return s
}

// Complement holds where its node does not.
type Complement struct {
	Node Region
}

// Not complements a region.
func Not(r Region) Complement { return Complement{Node: r} }

func (c Complement) Contains(x, y, z float64) bool { return !c.Node.Contains(x, y, z) }

func (c Complement) Surfaces() []*Surface { return c.Node.Surfaces() }

func (c Complement) expr(int) string {
	return "~(" + c.Node.expr(precNone) + ")"
}

func collect[R ~[]Region](rs R) []*Surface {
	var out []*Surface
	seen := map[*Surface]bool{}
	for _, r := range rs {
		for _, s := range r.Surfaces() {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}
