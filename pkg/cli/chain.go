package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/Fepozopo/cif/pkg/coerce"
	"github.com/Fepozopo/cif/pkg/filter"
)

// step is one filter of the chain with its raw parameter tokens.
type step struct {
	spec filter.Spec
	raw  map[string]string // canonical param name -> token
}

// parseChain groups "FILTER -param value ... FILTER ..." into steps. The
// token after a -param is always its value, so values may start with '-'.
// "-param=value" is accepted too.
func parseChain(args []string) ([]step, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no filter given; try -list")
	}
	var steps []step
	for i := 0; i < len(args); {
		name := args[i]
		if strings.HasPrefix(name, "-") {
			return nil, fmt.Errorf("expected a filter name, got %q", name)
		}
		spec, ok := filter.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q; try -list", filter.ErrUnknownFilter, name)
		}
		st := step{spec: spec, raw: map[string]string{}}
		i++
		for i < len(args) && strings.HasPrefix(args[i], "-") {
			key := strings.TrimLeft(args[i], "-")
			value, inline := "", false
			if k, v, ok := strings.Cut(key, "="); ok {
				key, value, inline = k, v, true
			}
			p, ok := spec.Param(key)
			if !ok {
				return nil, fmt.Errorf("filter %s has no parameter %q (valid: %s)", spec.Name, key, paramList(spec))
			}
			if !inline {
				if i+1 >= len(args) {
					return nil, fmt.Errorf("filter %s: parameter %q needs a value", spec.Name, p.Name)
				}
				value = args[i+1]
				i++
			}
			if _, dup := st.raw[p.Name]; dup {
				return nil, fmt.Errorf("filter %s: parameter %q given twice", spec.Name, p.Name)
			}
			st.raw[p.Name] = value
			i++
		}
		steps = append(steps, st)
	}
	return steps, nil
}

func paramList(s filter.Spec) string {
	if len(s.Params) == 0 {
		return "none"
	}
	return "-" + strings.Join(s.ParamNames(), ", -")
}

// coerce converts every raw token to the parameter's declared type. Image
// parameters are loaded with loadImage. Unset parameters are left to the
// filter's defaults.
func (st step) coerce(c *coerce.Coercer, stdin io.Reader) (filter.Args, error) {
	args := make(filter.Args, len(st.raw))
	for _, p := range st.spec.Params {
		token, ok := st.raw[p.Name]
		if !ok {
			continue
		}
		if p.Type == filter.Image {
			img, err := loadImage(token, stdin, c)
			if err != nil {
				return nil, fmt.Errorf("filter %q param %q token %q: %w", st.spec.Name, p.Name, token, err)
			}
			args[p.Name] = img
			continue
		}
		kind, _ := p.Type.CoerceKind()
		v, err := c.Coerce(token, kind)
		if err != nil {
			return nil, fmt.Errorf("filter %q param %q token %q: %w", st.spec.Name, p.Name, token, err)
		}
		args[p.Name] = v
	}
	return args, nil
}
