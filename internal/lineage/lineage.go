// Package lineage derives a directed graph view from a completed audit log
// for visualization and traceability. The graph is built once and read-only.
package lineage

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/unitflow/unitflow/internal/audit"
)

// Role distinguishes input nodes from output nodes.
type Role string

const (
	RoleInput  Role = "input"
	RoleOutput Role = "output"
)

// Node is one named quantity in the graph.
type Node struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
	Role  Role   `json:"role"`
}

// Edge connects an input to an output, labeled with a step description.
type Edge struct {
	Source    string `json:"source"`
	Target    string `json:"target"`
	Operation string `json:"operation"`
}

// Graph is the derived lineage view.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
	steps []string
}

// FromAuditLog builds the graph: one node per input and output, and for each
// recorded step one edge from every input to every output labeled with that
// step. The flat step list does not say which inputs feed which outputs, so
// the graph over-connects when a calculation has several steps or outputs;
// that approximation is part of the format, not something to correct here.
func FromAuditLog(l *audit.Log) *Graph {
	g := &Graph{steps: l.Steps()}

	for _, name := range l.InputNames() {
		q := l.Input(name)
		g.Nodes = append(g.Nodes, Node{
			Name:  name,
			Value: q.MagnitudeString(),
			Unit:  q.UnitSymbol(),
			Role:  RoleInput,
		})
	}
	for _, name := range l.OutputNames() {
		q := l.Output(name)
		g.Nodes = append(g.Nodes, Node{
			Name:  name,
			Value: q.MagnitudeString(),
			Unit:  q.UnitSymbol(),
			Role:  RoleOutput,
		})
	}

	for _, step := range g.steps {
		for _, in := range l.InputNames() {
			for _, out := range l.OutputNames() {
				g.Edges = append(g.Edges, Edge{Source: in, Target: out, Operation: step})
			}
		}
	}
	return g
}

// Dict returns the graph as a plain map, matching the JSON layout.
func (g *Graph) Dict() map[string]any {
	nodes := make([]map[string]any, len(g.Nodes))
	for i, n := range g.Nodes {
		nodes[i] = map[string]any{
			"name":  n.Name,
			"value": n.Value,
			"unit":  n.Unit,
			"role":  string(n.Role),
		}
	}
	edges := make([]map[string]any, len(g.Edges))
	for i, e := range g.Edges {
		edges[i] = map[string]any{
			"source":    e.Source,
			"target":    e.Target,
			"operation": e.Operation,
		}
	}
	return map[string]any{"nodes": nodes, "edges": edges}
}

// JSON serializes the graph.
func (g *Graph) JSON() ([]byte, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, eris.Wrap(err, "lineage: marshal graph")
	}
	return data, nil
}

// DOT renders the graph as Graphviz DOT text. Inputs are ellipses, outputs
// boxes, flowing left to right.
func (g *Graph) DOT() string {
	var sb strings.Builder
	sb.WriteString("digraph lineage {\n")
	sb.WriteString("  rankdir=LR;\n")

	for _, n := range g.Nodes {
		shape := "ellipse"
		if n.Role == RoleOutput {
			shape = "box"
		}
		fmt.Fprintf(&sb, "  %s [label=%s, shape=%s];\n",
			dotQuote(n.Name),
			dotQuote(fmt.Sprintf("%s\n%s %s", n.Name, n.Value, n.Unit)),
			shape,
		)
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&sb, "  %s -> %s [label=%s];\n",
			dotQuote(e.Source), dotQuote(e.Target), dotQuote(e.Operation))
	}
	sb.WriteString("}\n")
	return sb.String()
}

// dotQuote escapes a string for use as a quoted DOT ID or label.
func dotQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}
