package filter

import (
	"errors"
	"fmt"
	"image"

	"github.com/Fepozopo/cif/pkg/coerce"
)

var (
	// ErrBadArgument is wrapped by every argument validation failure.
	ErrBadArgument = errors.New("bad argument")
	// ErrUnknownFilter is returned for names missing from Filters.
	ErrUnknownFilter = errors.New("unknown filter")
	// ErrNoInput is returned when a non-generator filter gets no image.
	ErrNoInput = errors.New("no input image")
)

// Args holds coerced filter arguments keyed by parameter name. Values have
// the Go type produced by coerce for the parameter's kind (image.Image for
// Image parameters).
type Args map[string]any

// argReader pulls typed values out of Args, keeping the first failure so a
// filter can read all of its parameters and check once.
type argReader struct {
	filter string
	args   Args
	err    error
}

func (r *argReader) fail(name, format string, a ...any) {
	if r.err == nil {
		r.err = fmt.Errorf("%s: %s: %s: %w", r.filter, name, fmt.Sprintf(format, a...), ErrBadArgument)
	}
}

func get[T any](r *argReader, name string) (T, bool) {
	var zero T
	v, ok := r.args[name]
	if !ok || v == nil {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		r.fail(name, "want %T, got %T", zero, v)
		return zero, false
	}
	return t, true
}

func need[T any](r *argReader, name string) T {
	v, ok := get[T](r, name)
	if !ok && r.err == nil {
		r.fail(name, "missing")
	}
	return v
}

func (r *argReader) number(name string) float64 { return need[float64](r, name) }

func (r *argReader) color(name string) coerce.Color { return need[coerce.Color](r, name) }

func (r *argReader) vector(name string) coerce.Vector { return need[coerce.Vector](r, name) }

func (r *argReader) rect(name string) coerce.Rect { return need[coerce.Rect](r, name) }

func (r *argReader) transform(name string) coerce.Transform {
	return need[coerce.Transform](r, name)
}

func (r *argReader) text(name string) string { return need[string](r, name) }

func (r *argReader) image(name string) image.Image { return need[image.Image](r, name) }

// optionalData returns nil when the parameter is unset.
func (r *argReader) optionalData(name string) []byte {
	b, _ := get[[]byte](r, name)
	return b
}

func (r *argReader) optionalVector(name string) (coerce.Vector, bool) {
	return get[coerce.Vector](r, name)
}

// check records a range failure when ok is false.
func (r *argReader) check(ok bool, name, format string, a ...any) {
	if !ok {
		r.fail(name, format, a...)
	}
}

// withDefaults returns a copy of args where every unset parameter of spec
// that has a textual default is filled by coercing that default.
func withDefaults(spec Spec, args Args, c *coerce.Coercer) (Args, error) {
	out := make(Args, len(spec.Params))
	for k, v := range args {
		p, ok := spec.Param(k)
		if !ok {
			return nil, fmt.Errorf("%s: unknown parameter %q (valid: %v): %w", spec.Name, k, spec.ParamNames(), ErrBadArgument)
		}
		out[p.Name] = v
	}
	for _, p := range spec.Params {
		if _, ok := out[p.Name]; ok || p.Default == "" {
			continue
		}
		kind, ok := p.Type.CoerceKind()
		if !ok {
			continue
		}
		v, err := c.Coerce(p.Default, kind)
		if err != nil {
			return nil, fmt.Errorf("%s: default of %s: %w", spec.Name, p.Name, err)
		}
		out[p.Name] = v
	}
	return out, nil
}
