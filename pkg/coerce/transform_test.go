package coerce

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertPoint(t *testing.T, tr Transform, x, y, wantX, wantY float64) {
	t.Helper()
	gx, gy := tr.Apply(x, y)
	assert.InDelta(t, wantX, gx, 1e-9, "x of (%g,%g)", x, y)
	assert.InDelta(t, wantY, gy, 1e-9, "y of (%g,%g)", x, y)
}

func mustTransform(t *testing.T, token string) Transform {
	t.Helper()
	tr, err := ParseTransform(token)
	require.NoError(t, err, "ParseTransform(%q)", token)
	return tr
}

func TestParseTransformSingle(t *testing.T) {
	assertPoint(t, mustTransform(t, "translate(10,20)"), 1, 2, 11, 22)
	assertPoint(t, mustTransform(t, "scale(2)"), 3, 4, 6, 8)
	assertPoint(t, mustTransform(t, "scale(2, 3)"), 3, 4, 6, 12)
	assertPoint(t, mustTransform(t, "rotate(90)"), 1, 0, 0, 1)
	assertPoint(t, mustTransform(t, "matrix(1,0,0,1,5,6)"), 0, 0, 5, 6)
	assertPoint(t, mustTransform(t, "matrix(2 0 0 3 0 0)"), 1, 1, 2, 3)
}

func TestParseTransformComposition(t *testing.T) {
	// The last call written applies first.
	assertPoint(t, mustTransform(t, "scale(2),translate(3,4)"), 0, 0, 6, 8)
	assertPoint(t, mustTransform(t, "translate(3,4) scale(2)"), 0, 0, 3, 4)
	assertPoint(t, mustTransform(t, "translate(3,4) scale(2)"), 1, 1, 5, 6)
}

func TestParseTransformRotateAboutPoint(t *testing.T) {
	tr := mustTransform(t, "rotate(90, 10, 10)")
	assertPoint(t, tr, 10, 10, 10, 10)
	assertPoint(t, tr, 11, 10, 10, 11)

	explicit := mustTransform(t, "translate(10,10) rotate(90) translate(-10,-10)")
	assert.InDelta(t, explicit.M11, tr.M11, 1e-12)
	assert.InDelta(t, explicit.TX, tr.TX, 1e-12)
	assert.InDelta(t, explicit.TY, tr.TY, 1e-12)
}

func TestParseTransformErrors(t *testing.T) {
	tests := []struct {
		token string
		kind  ErrorKind
	}{
		{"", MalformedSyntax},
		{"skew(1,2)", UnknownFunction},
		{"rotate(1,2)", ArityMismatch},
		{"matrix(1,2,3)", ArityMismatch},
		{"scale()", ArityMismatch},
		{"translate(1,2", MalformedSyntax},
		{"translate 1 2", MalformedSyntax},
		{"scale(x)", MalformedSyntax},
		{"scale(Inf)", OutOfRange},
		{"scale(2) garbage", MalformedSyntax},
		{"translate(5)", ArityMismatch},
		{"scale(1e200) scale(1e200)", OutOfRange},
		{"matrix(1e308,0,0,1,0,0) translate(1e308,0)", OutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			_, err := ParseTransform(tt.token)
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err), "error: %v", err)
		})
	}
}

func TestParseTransformArityMessage(t *testing.T) {
	_, err := ParseTransform("rotate(1,2)")
	require.ErrorIs(t, err, ErrArityMismatch)
	assert.Contains(t, err.Error(), "rotate()")
	assert.Contains(t, err.Error(), "1 or 3")
}

func TestTransformInvert(t *testing.T) {
	tr := mustTransform(t, "translate(5,-2) rotate(30) scale(2,3)")
	inv, ok := tr.Invert()
	require.True(t, ok)
	x, y := tr.Apply(7, 11)
	assertPoint(t, inv, x, y, 7, 11)
	assertPoint(t, tr.Multiply(inv), 4, -9, 4, -9)

	_, ok = Scaling(0, 1).Invert()
	assert.False(t, ok)
}

func TestTransformAff3(t *testing.T) {
	tr := Transform{M11: 1, M12: 2, M21: 3, M22: 4, TX: 5, TY: 6}
	a := tr.Aff3()
	// Aff3 rows compute x' and y' respectively.
	x := a[0]*7 + a[1]*8 + a[2]
	y := a[3]*7 + a[4]*8 + a[5]
	gx, gy := tr.Apply(7, 8)
	assert.Equal(t, gx, x)
	assert.Equal(t, gy, y)
}

func TestRotationDirection(t *testing.T) {
	x, y := Rotation(45).Apply(1, 0)
	assert.InDelta(t, math.Sqrt2/2, x, 1e-12)
	assert.InDelta(t, math.Sqrt2/2, y, 1e-12)
	assert.Equal(t, Identity(), Identity().Multiply(Identity()))
}
