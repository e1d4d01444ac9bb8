package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ravi-parthasarathy/flowgen/pkg/workflow"
)

func graphCmd() *cobra.Command {
	var (
		format     string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "graph <workflow.yxmd>",
		Short: "Print a human-readable summary of a workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			opts, err := loadOptions(configPath)
			if err != nil {
				return err
			}
			g, warnings, err := parseDocument(args[0], opts)
			if err != nil {
				return err
			}
			printDiagnostics(warnings)

			switch strings.ToLower(format) {
			case "dot":
				dot, err := workflow.ExportDOT(g)
				if err != nil {
					return err
				}
				fmt.Print(dot)
			case "text", "":
				fmt.Print(renderText(g))
			default:
				return fmt.Errorf("unknown format %q: use text or dot", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text or dot")
	cmd.Flags().StringVar(&configPath, "config", "", "converter options YAML file")
	return cmd
}

// renderText produces the human-readable workflow summary: the tool table
// in plan order (falling back to id order when the graph has a cycle),
// the connection list, and kind counts.
func renderText(g *workflow.Graph) string {
	var sb strings.Builder

	order, err := workflow.Resolve(g)
	if err != nil {
		order = g.ToolIDs()
	}

	fmt.Fprintf(&sb, "Workflow: %d tools, %d connections\n", len(g.Tools), len(g.Connections))

	maxIDLen := 4
	for id := range g.Tools {
		if len(id) > maxIDLen {
			maxIDLen = len(id)
		}
	}

	fmt.Fprintf(&sb, "\nTools:\n")
	for _, id := range order {
		t := g.Tools[id]
		note := t.Annotation
		if t.Kind == workflow.KindUnsupported {
			note = t.RawType
		}
		fmt.Fprintf(&sb, "  %-*s  %-20s  %s\n", maxIDLen, id, string(t.Kind), note)
	}

	fmt.Fprintf(&sb, "\nConnections:\n")
	for _, c := range g.Connections {
		if c.FromAnchor != "" && c.FromAnchor != "Output" {
			fmt.Fprintf(&sb, "  %-*s  →  %s  [%s]\n", maxIDLen, c.From, c.To, c.FromAnchor)
		} else {
			fmt.Fprintf(&sb, "  %-*s  →  %s\n", maxIDLen, c.From, c.To)
		}
	}

	counts := make(map[workflow.ToolKind]int)
	for _, t := range g.Tools {
		counts[t.Kind]++
	}
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)

	fmt.Fprintf(&sb, "\nKinds:\n")
	for _, k := range kinds {
		fmt.Fprintf(&sb, "  %-20s  %d\n", k, counts[workflow.ToolKind(k)])
	}

	return sb.String()
}
