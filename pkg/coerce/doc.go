// Package coerce turns textual tokens into graphics primitives: colors,
// vectors, rectangles and affine transforms.
//
// Every parser is a pure function of its input and reports failures as
// *Error values classified by ErrorKind, so callers can use errors.Is with
// the Err* sentinels:
//
//	c, err := coerce.ParseColor("hsl(120, 100%, 25%)")
//	if errors.Is(err, coerce.ErrOutOfRange) {
//		...
//	}
//
// Coercer bundles the parsers behind a single Coerce(token, kind) entry
// point used by the filter command line.
package coerce
