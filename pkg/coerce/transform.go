package coerce

import (
	"math"
	"strings"

	"golang.org/x/image/math/f64"
)

// Transform is a 2D affine transform. A point (x, y) maps to
//
//	x' = M11*x + M21*y + TX
//	y' = M12*x + M22*y + TY
//
// which is the argument order of matrix(m11,m12,m21,m22,tx,ty).
type Transform struct {
	M11, M12, M21, M22, TX, TY float64
}

// Identity returns the transform that leaves every point in place.
func Identity() Transform {
	return Transform{M11: 1, M22: 1}
}

// Translation moves points by (tx, ty).
func Translation(tx, ty float64) Transform {
	return Transform{M11: 1, M22: 1, TX: tx, TY: ty}
}

// Scaling scales about the origin.
func Scaling(sx, sy float64) Transform {
	return Transform{M11: sx, M22: sy}
}

// Rotation rotates about the origin by degrees; positive angles turn +X
// toward +Y.
func Rotation(degrees float64) Transform {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Transform{M11: cos, M12: sin, M21: -sin, M22: cos}
}

// Multiply returns t × o: the result applies o first, then t.
func (t Transform) Multiply(o Transform) Transform {
	return Transform{
		M11: t.M11*o.M11 + t.M21*o.M12,
		M12: t.M12*o.M11 + t.M22*o.M12,
		M21: t.M11*o.M21 + t.M21*o.M22,
		M22: t.M12*o.M21 + t.M22*o.M22,
		TX:  t.M11*o.TX + t.M21*o.TY + t.TX,
		TY:  t.M12*o.TX + t.M22*o.TY + t.TY,
	}
}

// Apply maps the point (x, y).
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.M11*x + t.M21*y + t.TX, t.M12*x + t.M22*y + t.TY
}

// Determinant of the linear part.
func (t Transform) Determinant() float64 {
	return t.M11*t.M22 - t.M21*t.M12
}

// Invert returns the inverse transform; ok is false for singular transforms.
func (t Transform) Invert() (inv Transform, ok bool) {
	det := t.Determinant()
	if math.Abs(det) < 1e-12 {
		return Transform{}, false
	}
	inv = Transform{
		M11: t.M22 / det,
		M12: -t.M12 / det,
		M21: -t.M21 / det,
		M22: t.M11 / det,
	}
	inv.TX = -(inv.M11*t.TX + inv.M21*t.TY)
	inv.TY = -(inv.M12*t.TX + inv.M22*t.TY)
	return inv, true
}

// Aff3 converts to the row-major matrix used by golang.org/x/image/draw.
func (t Transform) Aff3() f64.Aff3 {
	return f64.Aff3{
		t.M11, t.M21, t.TX,
		t.M12, t.M22, t.TY,
	}
}

// transformFunc builds a transform from parsed arguments. arity lists the
// accepted argument counts.
type transformFunc struct {
	arity []int
	build func(a []float64) Transform
}

var transformFuncs = map[string]transformFunc{
	"matrix": {[]int{6}, func(a []float64) Transform {
		return Transform{M11: a[0], M12: a[1], M21: a[2], M22: a[3], TX: a[4], TY: a[5]}
	}},
	"rotate": {[]int{1, 3}, func(a []float64) Transform {
		if len(a) == 1 {
			return Rotation(a[0])
		}
		return Translation(a[1], a[2]).Multiply(Rotation(a[0])).Multiply(Translation(-a[1], -a[2]))
	}},
	"scale": {[]int{1, 2}, func(a []float64) Transform {
		if len(a) == 1 {
			return Scaling(a[0], a[0])
		}
		return Scaling(a[0], a[1])
	}},
	"translate": {[]int{2}, func(a []float64) Transform {
		return Translation(a[0], a[1])
	}},
}

func arityText(arity []int) string {
	parts := make([]string, len(arity))
	for i, n := range arity {
		parts[i] = string(rune('0' + n))
	}
	return strings.Join(parts, " or ")
}

// ParseTransform parses one or more transform calls such as
// "rotate(45, 10, 10) scale(2)". Calls compose so that the last one written
// is applied to a point first: "scale(2),translate(3,4)" maps (0,0) to (6,8).
func ParseTransform(token string) (Transform, error) {
	rest := strings.TrimSpace(token)
	if rest == "" {
		return Transform{}, newError(MalformedSyntax, token, "empty transform")
	}
	acc := Identity()
	for {
		rest = strings.TrimLeft(rest, " \t\r\n,")
		if rest == "" {
			return acc, nil
		}
		closing := strings.IndexByte(rest, ')')
		if closing < 0 {
			return Transform{}, newError(MalformedSyntax, rest, "missing ')'")
		}
		call := rest[:closing+1]
		rest = rest[closing+1:]

		name, inner, ok := splitCall(call)
		if !ok || !isIdent(name) {
			return Transform{}, newError(MalformedSyntax, call, "expected name(arguments)")
		}
		fn, known := transformFuncs[name]
		if !known {
			return Transform{}, newError(UnknownFunction, call, "unknown transform function %s()", name)
		}
		fields := splitArgs(inner)
		if !containsInt(fn.arity, len(fields)) {
			return Transform{}, newError(ArityMismatch, call, "%s() takes %s arguments, got %d", name, arityText(fn.arity), len(fields))
		}
		args := make([]float64, len(fields))
		for i, f := range fields {
			v, err := parseFloat(f)
			if err != nil {
				return Transform{}, err
			}
			args[i] = v
		}
		acc = acc.Multiply(fn.build(args))
		if !acc.finite() {
			return Transform{}, newError(OutOfRange, token, "transform overflows float64")
		}
	}
}

func (t Transform) finite() bool {
	for _, v := range [...]float64{t.M11, t.M12, t.M21, t.M22, t.TX, t.TY} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

func containsInt(list []int, n int) bool {
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}
