package coerce

import (
	"fmt"
	"os"
	"strings"
)

// Kind is the type a token is coerced into.
type Kind int

const (
	KindColor Kind = iota + 1
	KindVector
	KindSize
	KindTransform
	KindData
	KindString
	KindNumber
)

var kindLabels = [...]string{
	KindColor:     "color",
	KindVector:    "vector",
	KindSize:      "size",
	KindTransform: "transform",
	KindData:      "data",
	KindString:    "string",
	KindNumber:    "number",
}

func (k Kind) String() string {
	if k > 0 && int(k) < len(kindLabels) {
		return kindLabels[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for k := KindColor; k <= KindNumber; k++ {
		if kindLabels[k] == n {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown kind %q", name)
}

// FileReader loads the file named by an @path token. fstest.MapFS and
// os.DirFS-backed readers satisfy it.
type FileReader interface {
	ReadFile(name string) ([]byte, error)
}

type osFiles struct{}

func (osFiles) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

// Option configures a Coercer.
type Option func(*Coercer)

// WithFileReader replaces the filesystem used for @path tokens.
func WithFileReader(r FileReader) Option {
	return func(c *Coercer) { c.files = r }
}

// WithNameTable resolves color names through t instead of the default table.
func WithNameTable(t *NameTable) Option {
	return func(c *Coercer) { c.colors = NewColorParser(t) }
}

// Coercer converts string tokens into typed values. It holds no mutable
// state and may be shared between goroutines.
type Coercer struct {
	colors *ColorParser
	files  FileReader
}

func NewCoercer(opts ...Option) *Coercer {
	c := &Coercer{files: osFiles{}}
	for _, opt := range opts {
		opt(c)
	}
	if c.colors == nil {
		c.colors = defaultColorParser()
	}
	return c
}

// Colors returns the color parser used for KindColor.
func (c *Coercer) Colors() *ColorParser { return c.colors }

// Coerce converts token to the Go value for kind:
//
//	KindColor     Color
//	KindVector    Vector
//	KindSize      Rect
//	KindTransform Transform
//	KindData      []byte
//	KindString    string
//	KindNumber    float64
//
// For KindData and KindString a token starting with '@' names a file whose
// contents become the value.
func (c *Coercer) Coerce(token string, kind Kind) (any, error) {
	switch kind {
	case KindColor:
		return c.colors.Parse(token)
	case KindVector:
		return ParseVector(token)
	case KindSize:
		return ParseSize(token)
	case KindTransform:
		return ParseTransform(token)
	case KindNumber:
		return parseNumber(strings.TrimSpace(token))
	case KindData:
		if path, ok := strings.CutPrefix(token, "@"); ok {
			return c.readFile(token, path)
		}
		return []byte(token), nil
	case KindString:
		if path, ok := strings.CutPrefix(token, "@"); ok {
			b, err := c.readFile(token, path)
			if err != nil {
				return nil, err
			}
			return string(b), nil
		}
		return token, nil
	}
	return nil, fmt.Errorf("coerce %q: unsupported kind %s", token, kind)
}

func (c *Coercer) readFile(token, path string) ([]byte, error) {
	if path == "" {
		return nil, newError(MalformedSyntax, token, "missing file name after '@'")
	}
	b, err := c.files.ReadFile(path)
	if err != nil {
		return nil, &Error{Kind: IOFailure, Token: token, Detail: "cannot read file", Err: err}
	}
	return b, nil
}
