package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Fepozopo/cif/pkg/coerce"
	"github.com/Fepozopo/cif/pkg/filter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// listFilters prints filters grouped by category. An empty category lists
// all of them.
func listFilters(w io.Writer, category string) error {
	cats := filter.Categories()
	if category != "" {
		found := false
		for _, c := range cats {
			if strings.EqualFold(c, category) {
				cats, found = []string{c}, true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown category %q (have %s)", category, strings.Join(filter.Categories(), ", "))
		}
	}
	title := cases.Title(language.English)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, c := range cats {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s:\n", title.String(c))
		for _, s := range filter.InCategory(c) {
			fmt.Fprintf(tw, "  %s\t%s\n", s.Name, s.Description)
		}
	}
	return tw.Flush()
}

// listColors prints every color name with its hex value.
func listColors(w io.Writer, names *coerce.NameTable) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, n := range names.Names() {
		c, _ := names.Lookup(n)
		v := c.NRGBA()
		fmt.Fprintf(tw, "%s\t#%02x%02x%02x%02x\n", n, v.R, v.G, v.B, v.A)
	}
	return tw.Flush()
}

// describeFilter prints usage and parameter details for one filter.
func describeFilter(w io.Writer, s filter.Spec) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s)\n  %s\n\nusage: cif %s\n", s.Name, s.Category, s.Description, s.Usage())
	if s.Generator {
		sb.WriteString("\nGenerates an image; no input is needed.\n")
	}
	if len(s.Params) == 0 {
		sb.WriteString("\nNo parameters.\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}
	sb.WriteString("\nparameters:\n")
	for _, p := range s.Params {
		req := "optional"
		if p.Required {
			req = "required"
		}
		fmt.Fprintf(&sb, "  -%s (%s, %s)", p.Name, p.Type, req)
		if p.Description != "" {
			sb.WriteString(": " + p.Description)
		}
		if p.Default != "" {
			sb.WriteString(" [default: " + p.Default + "]")
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
