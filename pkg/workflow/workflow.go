// Package workflow parses declarative ETL workflow documents into an
// in-memory graph of typed tools and directed connections, and resolves
// that graph into a deterministic execution order.
package workflow

// ToolKind identifies the processing category of a tool node.
type ToolKind string

const (
	KindInput        ToolKind = "input"
	KindOutput       ToolKind = "output"
	KindTextInput    ToolKind = "text_input"
	KindBrowse       ToolKind = "browse"
	KindSelect       ToolKind = "select"
	KindFilter       ToolKind = "filter"
	KindFormula      ToolKind = "formula"
	KindMultiFormula ToolKind = "multi_field_formula"
	KindJoin         ToolKind = "join"
	KindUnion        ToolKind = "union"
	KindAppend       ToolKind = "append_fields"
	KindSummarize    ToolKind = "summarize"
	KindSort         ToolKind = "sort"
	KindUnique       ToolKind = "unique"
	KindSample       ToolKind = "sample"
	KindRecordID     ToolKind = "record_id"
	KindTranspose    ToolKind = "transpose"
	KindCrossTab     ToolKind = "cross_tab"
	KindTextToCols   ToolKind = "text_to_columns"
	KindUnsupported  ToolKind = "unsupported"
)

var kindNames = map[string]ToolKind{
	"input":               KindInput,
	"output":              KindOutput,
	"text_input":          KindTextInput,
	"browse":              KindBrowse,
	"select":              KindSelect,
	"filter":              KindFilter,
	"formula":             KindFormula,
	"multi_field_formula": KindMultiFormula,
	"join":                KindJoin,
	"union":               KindUnion,
	"append_fields":       KindAppend,
	"summarize":           KindSummarize,
	"sort":                KindSort,
	"unique":              KindUnique,
	"sample":              KindSample,
	"record_id":           KindRecordID,
	"transpose":           KindTranspose,
	"cross_tab":           KindCrossTab,
	"text_to_columns":     KindTextToCols,
}

// KindFromString maps a kind name (as used in config files) to a ToolKind.
func KindFromString(s string) (ToolKind, bool) {
	k, ok := kindNames[s]
	return k, ok
}

// Tool is a single processing node in the workflow graph.
type Tool struct {
	ID         string
	Kind       ToolKind
	RawType    string // original plugin/type string, kept for unsupported tools
	Config     Value  // raw configuration subtree, uninterpreted
	X, Y       float64
	Annotation string
}

// Connection carries one named output anchor of a tool into one named
// input anchor of another.
type Connection struct {
	From       string
	FromAnchor string // e.g. "Output", "True", "False"
	To         string
	ToAnchor   string // e.g. "Input", "Left", "Right"
}

// Graph is the parsed representation of a workflow document.
type Graph struct {
	Version     string
	Tools       map[string]*Tool
	Connections []*Connection
}

// Outgoing returns all connections leaving toolID, in definition order.
func (g *Graph) Outgoing(toolID string) []*Connection {
	var out []*Connection
	for _, c := range g.Connections {
		if c.From == toolID {
			out = append(out, c)
		}
	}
	return out
}

// Incoming returns all connections arriving at toolID, in definition order.
func (g *Graph) Incoming(toolID string) []*Connection {
	var in []*Connection
	for _, c := range g.Connections {
		if c.To == toolID {
			in = append(in, c)
		}
	}
	return in
}

// ToolIDs returns all tool ids in ascending id order.
func (g *Graph) ToolIDs() []string {
	ids := make([]string, 0, len(g.Tools))
	for id := range g.Tools {
		ids = append(ids, id)
	}
	SortIDs(ids)
	return ids
}
