package coerce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVector(t *testing.T) {
	tests := []struct {
		token string
		want  []float64
	}{
		{"1,2,3", []float64{1, 2, 3}},
		{"1.5, -2", []float64{1.5, -2}},
		{"[0.5, 0.5]", []float64{0.5, 0.5}},
		{" 1,2,3,4 ", []float64{1, 2, 3, 4}},
		{"1e2,0", []float64{100, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			v, err := ParseVector(tt.token)
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), v.Len())
			assert.Equal(t, tt.want, v.Components())
		})
	}
}

func TestParseVectorErrors(t *testing.T) {
	tests := []struct {
		token string
		kind  ErrorKind
	}{
		{"", MalformedSyntax},
		{"[]", MalformedSyntax},
		{"1", ArityMismatch},
		{"1,2,3,4,5", ArityMismatch},
		{"1,,2", MalformedSyntax},
		{"1,abc", MalformedSyntax},
		{"1,Inf", OutOfRange},
		{"1,1e400", OutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			_, err := ParseVector(tt.token)
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err), "error: %v", err)
		})
	}
}

func TestParseVectorNamesBadComponent(t *testing.T) {
	_, err := ParseVector("1,2,oops")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "component 3")
	assert.Contains(t, err.Error(), "oops")
}

func TestVectorAccessors(t *testing.T) {
	v, err := NewVector(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v.X())
	assert.Equal(t, 2.0, v.Y())
	assert.Equal(t, 3.0, v.At(2))
	assert.Equal(t, "[1 2 3]", v.String())
	assert.Panics(t, func() { v.At(3) })

	c := v.Components()
	c[0] = 99
	assert.Equal(t, 1.0, v.X(), "Components must return a copy")

	_, err = NewVector(1)
	assert.ErrorIs(t, err, ErrArityMismatch)
}
