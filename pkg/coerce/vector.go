package coerce

import (
	"fmt"
	"strconv"
	"strings"
)

// Vector is an immutable list of 2 to 4 components, ordered X, Y, Z, W.
type Vector struct {
	n int
	c [4]float64
}

// NewVector builds a Vector from 2 to 4 components.
func NewVector(components ...float64) (Vector, error) {
	if len(components) < 2 || len(components) > 4 {
		return Vector{}, newError(ArityMismatch, "", "vector needs 2 to 4 components, got %d", len(components))
	}
	var v Vector
	v.n = copy(v.c[:], components)
	return v, nil
}

// Len is the number of components.
func (v Vector) Len() int { return v.n }

// At returns component i; it panics when i is out of range like a slice.
func (v Vector) At(i int) float64 { return v.c[:v.n][i] }

func (v Vector) X() float64 { return v.c[0] }
func (v Vector) Y() float64 { return v.c[1] }
func (v Vector) Z() float64 { return v.c[2] }
func (v Vector) W() float64 { return v.c[3] }

// Components returns a copy of the components.
func (v Vector) Components() []float64 {
	out := make([]float64, v.n)
	copy(out, v.c[:v.n])
	return out
}

// String formats the vector the way it is printed in help output: [x y z].
func (v Vector) String() string {
	parts := make([]string, v.n)
	for i := range parts {
		parts[i] = strconv.FormatFloat(v.c[i], 'g', -1, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// ParseVector parses a comma-separated list of 2 to 4 numbers, optionally
// wrapped in square brackets: "1,2,3" or "[0.5, 0.5]".
func ParseVector(token string) (Vector, error) {
	t := strings.TrimSpace(token)
	if strings.HasPrefix(t, "[") && strings.HasSuffix(t, "]") {
		t = t[1 : len(t)-1]
	}
	fields := splitFields(t)
	if len(fields) == 0 {
		return Vector{}, newError(MalformedSyntax, token, "empty vector")
	}
	if len(fields) < 2 || len(fields) > 4 {
		return Vector{}, newError(ArityMismatch, token, "vector needs 2 to 4 components, got %d", len(fields))
	}
	var v Vector
	for i, f := range fields {
		x, err := parseFloat(f)
		if err != nil {
			ce := err.(*Error)
			ce.Detail = fmt.Sprintf("component %d: %s", i+1, ce.Detail)
			return Vector{}, ce
		}
		v.c[i] = x
	}
	v.n = len(fields)
	return v, nil
}
