package workflow

import (
	"fmt"
	"strings"

	gographviz "github.com/awalterschulze/gographviz"
)

// ExportDOT renders the graph as a Graphviz digraph for visual inspection
// by downstream tooling. Nodes and edges are emitted in ascending id /
// definition order so the output is stable.
func ExportDOT(g *Graph) (string, error) {
	gv := gographviz.NewGraph()
	if err := gv.SetName("workflow"); err != nil {
		return "", fmt.Errorf("dot export: %w", err)
	}
	if err := gv.SetDir(true); err != nil {
		return "", fmt.Errorf("dot export: %w", err)
	}

	for _, id := range g.ToolIDs() {
		t := g.Tools[id]
		label := fmt.Sprintf("%s\\n%s", id, t.Kind)
		if t.Annotation != "" {
			label = fmt.Sprintf("%s\\n%s", id, t.Annotation)
		}
		attrs := map[string]string{
			"label": dotQuote(label),
			"shape": "box",
		}
		if err := gv.AddNode("workflow", dotQuote(id), attrs); err != nil {
			return "", fmt.Errorf("dot export node %s: %w", id, err)
		}
	}

	for _, c := range g.Connections {
		var attrs map[string]string
		if c.FromAnchor != "" && c.FromAnchor != "Output" {
			attrs = map[string]string{"label": dotQuote(c.FromAnchor)}
		}
		if err := gv.AddEdge(dotQuote(c.From), dotQuote(c.To), true, attrs); err != nil {
			return "", fmt.Errorf("dot export edge %s→%s: %w", c.From, c.To, err)
		}
	}

	return gv.String(), nil
}

// dotQuote wraps a value in DOT-safe double quotes.
func dotQuote(s string) string {
	escaped := strings.ReplaceAll(s, `"`, `\"`)
	return `"` + escaped + `"`
}
