package lineage

import (
	"fmt"
	"html"
	"strings"
)

// HTML renders a self-contained report with a Quantities table and a
// Computation Steps table. No scripts, no external resources.
func (g *Graph) HTML() string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	sb.WriteString("<meta charset=\"utf-8\">\n<title>Calculation Lineage</title>\n")
	sb.WriteString("<style>\n")
	sb.WriteString("body { font-family: sans-serif; margin: 2em; }\n")
	sb.WriteString("table { border-collapse: collapse; margin-bottom: 2em; }\n")
	sb.WriteString("th, td { border: 1px solid #999; padding: 0.4em 0.8em; text-align: left; }\n")
	sb.WriteString("th { background: #eee; }\n")
	sb.WriteString("</style>\n</head>\n<body>\n")
	sb.WriteString("<h1>Calculation Lineage</h1>\n")

	sb.WriteString("<h2>Quantities</h2>\n<table>\n")
	sb.WriteString("<tr><th>Role</th><th>Name</th><th>Value</th><th>Unit</th></tr>\n")
	for _, n := range g.Nodes {
		fmt.Fprintf(&sb, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(string(n.Role)),
			html.EscapeString(n.Name),
			html.EscapeString(n.Value),
			html.EscapeString(n.Unit),
		)
	}
	sb.WriteString("</table>\n")

	sb.WriteString("<h2>Computation Steps</h2>\n<table>\n")
	sb.WriteString("<tr><th>#</th><th>Description</th></tr>\n")
	for i, step := range g.steps {
		fmt.Fprintf(&sb, "<tr><td>%d</td><td>%s</td></tr>\n", i+1, html.EscapeString(step))
	}
	sb.WriteString("</table>\n</body>\n</html>\n")
	return sb.String()
}
