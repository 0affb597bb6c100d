package coerce

import (
	"math"
	"strconv"
	"strings"
)

// splitFields splits s on commas and trims each field. An empty s yields no
// fields.
func splitFields(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// splitArgs splits function arguments on commas and/or whitespace, the way
// SVG transform lists are written: "1, 2", "1 2" and "1,2" are equivalent.
func splitArgs(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

// splitCall splits "name(args)" into its lowercase name and the raw text
// between the parentheses. ok is false when token is not a single call.
func splitCall(token string) (name, inner string, ok bool) {
	open := strings.IndexByte(token, '(')
	if open <= 0 || !strings.HasSuffix(token, ")") {
		return "", "", false
	}
	inner = token[open+1 : len(token)-1]
	if strings.ContainsAny(inner, "()") {
		return "", "", false
	}
	return strings.ToLower(strings.TrimSpace(token[:open])), inner, true
}

// parseFloat parses a finite float. field is the text reported on failure.
func parseFloat(field string) (float64, error) {
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return 0, &Error{Kind: OutOfRange, Token: field, Detail: "number overflows float64"}
		}
		return 0, &Error{Kind: MalformedSyntax, Token: field, Detail: "not a number"}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, newError(OutOfRange, field, "number must be finite")
	}
	return v, nil
}

// parseInt parses a base-10 integer.
func parseInt(field string) (int, error) {
	v, err := strconv.Atoi(field)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return 0, newError(OutOfRange, field, "integer overflows int")
		}
		return 0, newError(MalformedSyntax, field, "not an integer")
	}
	return v, nil
}

// parsePercent parses "50%" or a bare "50" and returns the value divided by
// 100. Both forms are read on the 0..100 scale.
func parsePercent(field string) (float64, error) {
	v, err := parseFloat(strings.TrimSuffix(field, "%"))
	if err != nil {
		return 0, retoken(err, field)
	}
	if v < 0 || v > 100 {
		return 0, newError(OutOfRange, field, "percentage must be within 0..100%%")
	}
	return v / 100, nil
}

// parseFraction parses a value on the 0..1 scale, either directly ("0.75")
// or as a percentage ("75%").
func parseFraction(field string) (float64, error) {
	if strings.HasSuffix(field, "%") {
		return parsePercent(field)
	}
	v, err := parseFloat(field)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 1 {
		return 0, newError(OutOfRange, field, "value must be within 0..1")
	}
	return v, nil
}

// parseNumber parses a scalar: a plain float, or a percentage divided by 100
// without range restriction ("150%" is 1.5).
func parseNumber(field string) (float64, error) {
	if strings.HasSuffix(field, "%") {
		v, err := parseFloat(strings.TrimSuffix(field, "%"))
		if err != nil {
			return 0, retoken(err, field)
		}
		return v / 100, nil
	}
	return parseFloat(field)
}

// wrapDegrees folds any finite hue into [0, 360).
func wrapDegrees(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// retoken replaces the reported token of a package error, keeping its kind.
func retoken(err error, token string) error {
	if ce, ok := err.(*Error); ok {
		cp := *ce
		cp.Token = token
		return &cp
	}
	return err
}
