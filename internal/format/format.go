// Package format renders tracked quantities as text, with per-category
// formatting templates and an optional provenance trail.
package format

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/unitflow/unitflow/internal/quantity"
)

// Notation selects fixed-point or scientific rendering.
type Notation string

const (
	NotationFixed      Notation = "fixed"
	NotationScientific Notation = "scientific"
)

// Template controls how magnitudes in one semantic category are rendered.
type Template struct {
	Precision int
	Notation  Notation
	Grouping  bool // thousands separators, fixed notation only
}

// DefaultTemplate is used when no template is registered for a category.
var DefaultTemplate = Template{Precision: 2, Notation: NotationFixed}

// Formatter renders quantities using registered per-category templates.
// Register all templates before formatting; Formatter is then read-only.
type Formatter struct {
	templates map[string]Template
	printer   *message.Printer
}

// NewFormatter creates a Formatter with no registered templates.
func NewFormatter() *Formatter {
	return &Formatter{
		templates: make(map[string]Template),
		printer:   message.NewPrinter(language.English),
	}
}

// RegisterTemplate sets the template for a semantic category (e.g.
// "pressure", "length").
func (f *Formatter) RegisterTemplate(category string, tpl Template) error {
	if tpl.Precision < 0 {
		return eris.Errorf("format: template for %q has negative precision", category)
	}
	switch tpl.Notation {
	case NotationFixed, NotationScientific:
	default:
		return eris.Errorf("format: template for %q has unknown notation %q", category, tpl.Notation)
	}
	f.templates[category] = tpl
	return nil
}

// Template returns the template registered for a category, or the default.
func (f *Formatter) Template(category string) Template {
	if tpl, ok := f.templates[category]; ok {
		return tpl
	}
	return DefaultTemplate
}

// Format renders "<magnitude> <unit>" under the category's template. An
// empty category uses the default.
func (f *Formatter) Format(q *quantity.Quantity, category string) string {
	tpl := f.Template(category)
	return f.magnitude(q, tpl) + " " + q.UnitSymbol()
}

func (f *Formatter) magnitude(q *quantity.Quantity, tpl Template) string {
	one := func(v float64) string {
		if tpl.Notation == NotationScientific {
			return fmt.Sprintf("%.*e", tpl.Precision, v)
		}
		if tpl.Grouping {
			return f.printer.Sprintf(fmt.Sprintf("%%.%df", tpl.Precision), v)
		}
		return fmt.Sprintf("%.*f", tpl.Precision, v)
	}

	if !q.IsVector() {
		return one(q.Magnitude())
	}
	vec := q.Vector()
	parts := make([]string, len(vec))
	for i, v := range vec {
		parts[i] = one(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FormatWithProvenance renders the quantity followed by one indented line
// per provenance entry: timestamp, operation, source, and from/to units for
// conversions.
func (f *Formatter) FormatWithProvenance(q *quantity.Quantity) string {
	var sb strings.Builder
	sb.WriteString(f.Format(q, ""))
	sb.WriteString("\nProvenance:\n")
	for i, e := range q.Provenance() {
		fmt.Fprintf(&sb, "  %d. [%s] %s", i+1, e.Timestamp.Format("2006-01-02T15:04:05Z07:00"), e.Operation)
		if e.Source != "" {
			fmt.Fprintf(&sb, " (source: %s)", e.Source)
		}
		if e.FromUnit != "" || e.ToUnit != "" {
			fmt.Fprintf(&sb, " %s -> %s", e.FromUnit, e.ToUnit)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
