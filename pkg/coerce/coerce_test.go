package coerce

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceDispatch(t *testing.T) {
	c := NewCoercer()
	tests := []struct {
		token string
		kind  Kind
		want  any
	}{
		{"red", KindColor, Color{R: 1, A: 1}},
		{"1,2", KindVector, Vector{n: 2, c: [4]float64{1, 2}}},
		{"4x3", KindSize, Rect{Width: 4, Height: 3}},
		{"translate(1,2)", KindTransform, Translation(1, 2)},
		{"2.5", KindNumber, 2.5},
		{"50%", KindNumber, 0.5},
		{"150%", KindNumber, 1.5},
		{"hello", KindString, "hello"},
		{"raw", KindData, []byte("raw")},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.token, func(t *testing.T) {
			got, err := c.Coerce(tt.token, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"msg.txt":  {Data: []byte("hello from a file")},
		"font.ttf": {Data: []byte{0, 1, 0, 0}},
	}
	c := NewCoercer(WithFileReader(fsys))

	s, err := c.Coerce("@msg.txt", KindString)
	require.NoError(t, err)
	assert.Equal(t, "hello from a file", s)

	b, err := c.Coerce("@font.ttf", KindData)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 0, 0}, b)

	_, err = c.Coerce("@missing.ttf", KindData)
	require.ErrorIs(t, err, ErrIOFailure)
	assert.Contains(t, err.Error(), "@missing.ttf")

	_, err = c.Coerce("@", KindString)
	assert.ErrorIs(t, err, ErrMalformedSyntax)
}

func TestCoercePropagatesKinds(t *testing.T) {
	c := NewCoercer()
	_, err := c.Coerce("notacolor", KindColor)
	assert.ErrorIs(t, err, ErrUnknownName)
	_, err = c.Coerce("skew(1)", KindTransform)
	assert.ErrorIs(t, err, ErrUnknownFunction)
	_, err = c.Coerce("ten", KindNumber)
	assert.ErrorIs(t, err, ErrMalformedSyntax)
	_, err = c.Coerce("x", Kind(99))
	assert.Error(t, err)
}

func TestCoerceCustomNames(t *testing.T) {
	table := &NameTable{colors: map[string]Color{"ink": {A: 1}}}
	c := NewCoercer(WithNameTable(table))
	got, err := c.Coerce("Ink", KindColor)
	require.NoError(t, err)
	assert.Equal(t, Color{A: 1}, got)
	assert.Same(t, table, c.Colors().Names())
}

func TestParseKind(t *testing.T) {
	for k := KindColor; k <= KindNumber; k++ {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("matrix")
	assert.Error(t, err)
	assert.Equal(t, "Kind(0)", Kind(0).String())
}

func TestNameTable(t *testing.T) {
	table := NewNameTable()
	red, ok := table.Lookup("red")
	require.True(t, ok)
	assert.Equal(t, Color{R: 1, A: 1}, red)

	_, ok = table.Lookup("RED")
	assert.False(t, ok, "Lookup expects lowercase names")

	names := table.Names()
	assert.Len(t, names, table.Len())
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "transparent")
	assert.Contains(t, names, "cornflowerblue")
}

func TestErrorFormatting(t *testing.T) {
	err := newError(OutOfRange, "rgb(300,0,0)", "component must be within %d..%d", 0, 255)
	assert.Equal(t, `out of range: "rgb(300,0,0)": component must be within 0..255`, err.Error())
	assert.Equal(t, ErrorKind(0), KindOf(assert.AnError))
	assert.Equal(t, "ErrorKind(42)", ErrorKind(42).String())
}
