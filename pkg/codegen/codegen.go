// Package codegen maps each tool of a resolved workflow graph, in
// execution-plan order, to a bundle of generated Python statements, and
// assembles the bundles into a single runnable script.
package codegen

import (
	"fmt"

	"github.com/ravi-parthasarathy/flowgen/pkg/workflow"
)

// CodeUnit is the generated-statement bundle for exactly one tool.
// Created by Generate, consumed once by the assembler, never mutated
// afterwards.
type CodeUnit struct {
	ToolID     string
	Header     string
	Statements []string
	Var        string            // output variable bound by this unit
	BranchVars map[string]string // output anchor → variable, for multi-output tools
	Inputs     []string          // upstream variables consumed

	// Preamble requirements, declared by the emitters. The assembler
	// imports only what some unit actually references; paths or comments
	// that merely mention a module name must not drag an import in.
	NeedsPandas bool
	NeedsNumpy  bool
	NeedsMarker bool
}

// StmtRange is the 1-based inclusive line range a tool occupies in the
// assembled script.
type StmtRange struct {
	Start, End int
}

// Script is the result of a conversion run.
type Script struct {
	Source   string
	Warnings []workflow.Diagnostic
	ToolCode map[string]StmtRange
}

// GenerationError indicates the plan and graph disagree; it is fatal and
// no script is produced.
type GenerationError struct {
	ToolID string
	Reason string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate tool %s: %s", e.ToolID, e.Reason)
}

// emitFunc produces the CodeUnit for one tool.
type emitFunc func(*genContext, *workflow.Tool) *CodeUnit

// emitters is the read-only dispatch table, populated once at package
// init. Adding a tool kind means adding an entry here plus its emitter.
var emitters = map[workflow.ToolKind]emitFunc{
	workflow.KindInput:        emitInput,
	workflow.KindOutput:       emitOutput,
	workflow.KindTextInput:    emitTextInput,
	workflow.KindBrowse:       emitBrowse,
	workflow.KindSelect:       emitSelect,
	workflow.KindFilter:       emitFilter,
	workflow.KindFormula:      emitFormula,
	workflow.KindMultiFormula: emitMultiFormula,
	workflow.KindJoin:         emitJoin,
	workflow.KindUnion:        emitUnion,
	workflow.KindAppend:       emitAppend,
	workflow.KindSummarize:    emitSummarize,
	workflow.KindSort:         emitSort,
	workflow.KindUnique:       emitUnique,
	workflow.KindSample:       emitSample,
	workflow.KindRecordID:     emitRecordID,
	workflow.KindTranspose:    emitTranspose,
	workflow.KindCrossTab:     emitCrossTab,
	workflow.KindTextToCols:   emitTextToColumns,
	workflow.KindUnsupported:  emitStub,
}

// Generate maps every tool in plan order to a CodeUnit and assembles the
// final script. Non-fatal issues accumulate as warnings on the Script.
func Generate(g *workflow.Graph, plan workflow.Plan) (*Script, error) {
	ctx := &genContext{
		graph: g,
		units: make(map[string]*CodeUnit, len(plan)),
	}

	ordered := make([]*CodeUnit, 0, len(plan))
	for _, id := range plan {
		tool, ok := g.Tools[id]
		if !ok {
			return nil, &GenerationError{ToolID: id, Reason: "execution plan references a tool not present in the graph"}
		}
		emit := emitters[tool.Kind]
		if emit == nil {
			emit = emitStub
		}
		unit := emit(ctx, tool)
		ctx.units[id] = unit
		ordered = append(ordered, unit)
	}

	source, toolCode := assemble(ordered)
	return &Script{
		Source:   source,
		Warnings: ctx.warnings,
		ToolCode: toolCode,
	}, nil
}

// genContext threads the graph, the already-produced units and the
// warnings accumulator through every emitter.
type genContext struct {
	graph    *workflow.Graph
	units    map[string]*CodeUnit
	warnings []workflow.Diagnostic
}

func (c *genContext) warnf(toolID, format string, args ...any) {
	c.warnings = append(c.warnings, workflow.Warnf(toolID, format, args...))
}

// upstreamVar resolves the variable bound by the origin side of a
// connection, honoring branch anchors (e.g. a filter's False output).
func (c *genContext) upstreamVar(conn *workflow.Connection) (string, bool) {
	unit, ok := c.units[conn.From]
	if !ok {
		return "", false
	}
	if v, ok := unit.BranchVars[conn.FromAnchor]; ok {
		return v, true
	}
	return unit.Var, true
}

// inputVars returns the variables feeding a tool, in connection order.
func (c *genContext) inputVars(t *workflow.Tool) []string {
	var vars []string
	for _, conn := range c.graph.Incoming(t.ID) {
		if v, ok := c.upstreamVar(conn); ok {
			vars = append(vars, v)
		}
	}
	return vars
}

// firstInput returns the primary upstream variable of a tool.
func (c *genContext) firstInput(t *workflow.Tool) (string, bool) {
	vars := c.inputVars(t)
	if len(vars) == 0 {
		return "", false
	}
	return vars[0], true
}

// inputVarAt returns the variable arriving at the named input anchor.
func (c *genContext) inputVarAt(t *workflow.Tool, anchor string) (string, bool) {
	for _, conn := range c.graph.Incoming(t.ID) {
		if conn.ToAnchor == anchor {
			return c.upstreamVar(conn)
		}
	}
	return "", false
}

// hasOutputAnchor reports whether any downstream connection consumes the
// named output anchor of a tool.
func (c *genContext) hasOutputAnchor(t *workflow.Tool, anchor string) bool {
	for _, conn := range c.graph.Outgoing(t.ID) {
		if conn.FromAnchor == anchor {
			return true
		}
	}
	return false
}

// varName derives the deterministic output variable for a tool id.
func varName(id string) string {
	out := []byte("df_")
	for i := 0; i < len(id); i++ {
		c := id[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			out = append(out, c)
		} else {
			out = append(out, '_')
		}
	}
	return string(out)
}

// newUnit builds a unit shell with the standard header comment.
func newUnit(t *workflow.Tool) *CodeUnit {
	title := t.Annotation
	if title == "" {
		title = "Tool " + t.ID
	}
	return &CodeUnit{
		ToolID: t.ID,
		Header: fmt.Sprintf("%s (type: %s, id: %s)", title, t.Kind, t.ID),
		Var:    varName(t.ID),
	}
}
