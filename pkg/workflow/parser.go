package workflow

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// ParseError indicates the document was too malformed to extract any
// tools or connections.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse workflow: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parse workflow: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// xmlElem is a generic element tree. The workflow document format uses no
// namespaces we can rely on, so the parser locates nodes structurally by
// local name instead of unmarshalling into a fixed schema.
type xmlElem struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []xmlElem  `xml:",any"`
	Text     string     `xml:",chardata"`
}

func (e *xmlElem) attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// child returns the first direct child with the given local name.
func (e *xmlElem) child(name string) *xmlElem {
	for i := range e.Children {
		if e.Children[i].XMLName.Local == name {
			return &e.Children[i]
		}
	}
	return nil
}

// descend returns the first descendant (depth-first) with the given local
// name. Nested Node subtrees are not entered: a container tool must not
// pick up the settings of the tools inside it.
func (e *xmlElem) descend(name string) *xmlElem {
	for i := range e.Children {
		c := &e.Children[i]
		if c.XMLName.Local == name {
			return c
		}
		if c.XMLName.Local == "Node" {
			continue
		}
		if found := c.descend(name); found != nil {
			return found
		}
	}
	return nil
}

// collect appends all descendants with the given local name in document
// order, including matches nested inside other matches (tool containers
// hold child Node elements).
func (e *xmlElem) collect(name string, out *[]*xmlElem) {
	for i := range e.Children {
		c := &e.Children[i]
		if c.XMLName.Local == name {
			*out = append(*out, c)
		}
		c.collect(name, out)
	}
}

// defaultPlugins maps the final segment of a tool's plugin path to its
// kind. The names are an external contract with the workflow-authoring
// tool and are treated as data; config files may extend the table.
var defaultPlugins = map[string]ToolKind{
	"textinput":         KindTextInput,
	"dbfileinput":       KindInput,
	"input":             KindInput,
	"inputdata":         KindInput,
	"dbfileoutput":      KindOutput,
	"output":            KindOutput,
	"outputdata":        KindOutput,
	"browse":            KindBrowse,
	"browsev2":          KindBrowse,
	"select":            KindSelect,
	"filter":            KindFilter,
	"formula":           KindFormula,
	"multifieldformula": KindMultiFormula,
	"join":              KindJoin,
	"union":             KindUnion,
	"appendfields":      KindAppend,
	"summarize":         KindSummarize,
	"sort":              KindSort,
	"unique":            KindUnique,
	"sample":            KindSample,
	"recordid":          KindRecordID,
	"transpose":         KindTranspose,
	"crosstab":          KindCrossTab,
	"texttocolumns":     KindTextToCols,
}

// configKindHints resolves tools whose plugin string is a bare engine DLL:
// the presence of a well-known configuration key identifies the kind. A
// lone "File" key is ambiguous between input and output and is settled by
// connectivity after all connections are known.
var configKindHints = []struct {
	key  string
	kind ToolKind
}{
	{"Filter", KindFilter},
	{"JoinInfo", KindJoin},
	{"SummarizeFields", KindSummarize},
	{"SortInfo", KindSort},
	{"FormulaFields", KindFormula},
	{"SelectFields", KindSelect},
	{"UniqueFields", KindUnique},
	{"Expression", KindFilter},
}

// Parse turns raw workflow document text into a Graph plus a list of
// non-fatal warnings. Only a document from which no tools at all can be
// extracted is a fatal error.
func Parse(doc []byte, opts *Options) (*Graph, []Diagnostic, error) {
	var root xmlElem
	if err := xml.Unmarshal(doc, &root); err != nil {
		return nil, nil, &ParseError{Reason: "malformed document", Err: err}
	}

	g := &Graph{Tools: make(map[string]*Tool)}
	if v, ok := root.attr("yxmdVer"); ok {
		g.Version = v
	}

	var warnings []Diagnostic

	var nodeElems []*xmlElem
	root.collect("Node", &nodeElems)

	var fileAmbiguous []string // tools identified only by a File config key
	for _, ne := range nodeElems {
		id, ok := ne.attr("ToolID")
		if !ok || strings.TrimSpace(id) == "" {
			warnings = append(warnings, Warnf("", "tool node missing ToolID attribute; skipped"))
			continue
		}
		id = strings.TrimSpace(id)
		if _, dup := g.Tools[id]; dup {
			warnings = append(warnings, Warnf(id, "duplicate tool id; later definition skipped"))
			continue
		}

		t := &Tool{ID: id, Config: NewMapValue()}
		t.RawType = pluginString(ne)
		if cfg := ne.descend("Configuration"); cfg != nil {
			t.Config = configValue(cfg)
		}
		if pos := ne.descend("Position"); pos != nil {
			if x, ok := pos.attr("x"); ok {
				t.X, _ = strconv.ParseFloat(x, 64)
			}
			if y, ok := pos.attr("y"); ok {
				t.Y, _ = strconv.ParseFloat(y, 64)
			}
		}
		if ann := ne.descend("Annotation"); ann != nil {
			if name := ann.descend("Name"); name != nil {
				t.Annotation = strings.TrimSpace(name.Text)
			}
		}

		kind, ambiguous := identifyKind(t, opts)
		t.Kind = kind
		if ambiguous {
			fileAmbiguous = append(fileAmbiguous, id)
		}
		g.Tools[id] = t
	}

	if len(g.Tools) == 0 {
		return nil, nil, &ParseError{Reason: "document contains no tool nodes"}
	}

	var connElems []*xmlElem
	root.collect("Connection", &connElems)
	for _, ce := range connElems {
		conn, ok := parseConnection(ce)
		if !ok {
			warnings = append(warnings, Warnf("", "connection node missing origin or destination; skipped"))
			continue
		}
		g.Connections = append(g.Connections, conn)
	}

	// Tools carrying only a File key are inputs when they feed something
	// and outputs otherwise.
	for _, id := range fileAmbiguous {
		if len(g.Outgoing(id)) > 0 {
			g.Tools[id].Kind = KindInput
		} else {
			g.Tools[id].Kind = KindOutput
		}
	}

	for _, id := range g.ToolIDs() {
		t := g.Tools[id]
		if t.Kind == KindUnsupported {
			warnings = append(warnings, Warnf(id, "unrecognized tool type %q; a pass-through stub will be generated", t.RawType))
		}
	}

	return g, warnings, nil
}

// pluginString extracts the tool's plugin identifier, preferring the GUI
// plugin path over the engine DLL entry point.
func pluginString(ne *xmlElem) string {
	if gui := ne.child("GuiSettings"); gui != nil {
		if p, ok := gui.attr("Plugin"); ok && p != "" {
			return p
		}
	}
	if eng := ne.descend("EngineSettings"); eng != nil {
		dll, _ := eng.attr("EngineDll")
		entry, _ := eng.attr("EngineDllEntryPoint")
		if entry != "" {
			return dll + "!" + entry
		}
		if macro, ok := eng.attr("Macro"); ok && macro != "" {
			return "macro:" + macro
		}
		return dll
	}
	return ""
}

// identifyKind resolves a tool's kind from its plugin string, falling back
// to configuration-key hints. The second return is true when the tool is a
// File tool whose input/output role depends on connectivity.
func identifyKind(t *Tool, opts *Options) (ToolKind, bool) {
	for _, cand := range pluginCandidates(t.RawType) {
		if opts != nil {
			if k, ok := opts.lookupAlias(cand); ok {
				return k, false
			}
		}
		if k, ok := defaultPlugins[cand]; ok {
			return k, false
		}
	}
	for _, hint := range configKindHints {
		if t.Config.Has(hint.key) {
			return hint.kind, false
		}
	}
	if t.Config.Has("File") || t.Config.Has("FileName") {
		if t.Config.Has("FileName_Out") {
			return KindOutput, false
		}
		return KindInput, true
	}
	return KindUnsupported, false
}

// pluginCandidates derives lookup keys from a plugin path such as
// "AlteryxBasePluginsGui.Filter.Filter" or
// "AlteryxBasePluginsEngine.dll!AlteryxFilter": the final dotted segment,
// with and without the vendor prefix.
func pluginCandidates(plugin string) []string {
	plugin = strings.TrimSpace(plugin)
	if plugin == "" {
		return nil
	}
	if i := strings.LastIndex(plugin, "!"); i >= 0 {
		plugin = plugin[i+1:]
	}
	plugin = strings.TrimSuffix(plugin, ".dll")
	seg := plugin
	if i := strings.LastIndex(seg, "."); i >= 0 {
		seg = seg[i+1:]
	}
	seg = strings.ToLower(seg)
	cands := []string{seg}
	if trimmed := strings.TrimPrefix(seg, "alteryx"); trimmed != seg && trimmed != "" {
		cands = append(cands, trimmed)
	}
	return cands
}

// parseConnection handles both wire forms: Origin/Destination elements
// with ToolID and Connection attributes, and the older text form where the
// element text is the tool id and the connection's name attribute is the
// output anchor.
func parseConnection(ce *xmlElem) (*Connection, bool) {
	origin := ce.child("Origin")
	dest := ce.child("Destination")
	if origin == nil || dest == nil {
		return nil, false
	}

	conn := &Connection{FromAnchor: "Output", ToAnchor: "Input"}
	if name, ok := ce.attr("name"); ok && name != "" {
		conn.FromAnchor = name
	}

	if id, ok := origin.attr("ToolID"); ok && id != "" {
		conn.From = strings.TrimSpace(id)
		if a, ok := origin.attr("Connection"); ok && a != "" {
			conn.FromAnchor = a
		}
	} else {
		conn.From = strings.TrimSpace(origin.Text)
	}

	if id, ok := dest.attr("ToolID"); ok && id != "" {
		conn.To = strings.TrimSpace(id)
		if a, ok := dest.attr("Connection"); ok && a != "" {
			conn.ToAnchor = a
		}
	} else {
		conn.To = strings.TrimSpace(dest.Text)
	}

	if conn.From == "" || conn.To == "" {
		return nil, false
	}
	return conn, true
}

// configValue converts a configuration element into the tagged Value
// variant: text-only elements become strings, elements with children or
// attributes become mappings, and repeated sibling tags promote to lists.
func configValue(e *xmlElem) Value {
	if len(e.Children) == 0 && len(e.Attrs) == 0 {
		return StringValue(strings.TrimSpace(e.Text))
	}
	m := NewMapValue()
	for _, a := range e.Attrs {
		m.put(a.Name.Local, StringValue(a.Value))
	}
	for i := range e.Children {
		c := &e.Children[i]
		m.put(c.XMLName.Local, configValue(c))
	}
	return m
}
