package codegen

import (
	"strings"

	"github.com/ravi-parthasarathy/flowgen/pkg/expr"
)

const scriptIndent = "    "

// assemble concatenates code units in plan order inside one top-level
// routine, prefixed by the minimal import preamble for what the units
// actually use. The header carries no timestamp: identical input must
// yield byte-identical output.
func assemble(units []*CodeUnit) (string, map[string]StmtRange) {
	needsPandas, needsNumpy, needsMarker := scanUsage(units)

	var lines []string
	lines = append(lines,
		"#!/usr/bin/env python3",
		"# Code generated from a workflow document. Edits may be overwritten.",
		"")
	if needsPandas {
		lines = append(lines, "import pandas as pd")
	}
	if needsNumpy {
		lines = append(lines, "import numpy as np")
	}
	if needsPandas || needsNumpy {
		lines = append(lines, "")
	}
	if needsMarker {
		lines = append(lines,
			"",
			"def "+expr.UnsupportedMarker+"(expression):",
			scriptIndent+"raise NotImplementedError('expression requires manual translation: ' + expression)",
			"")
	}
	lines = append(lines, "", "def main():")

	toolCode := make(map[string]StmtRange, len(units))
	for i, u := range units {
		if i > 0 {
			lines = append(lines, "")
		}
		start := len(lines) + 1
		lines = append(lines, scriptIndent+"# --- "+u.Header+" ---")
		for _, stmt := range u.Statements {
			lines = append(lines, scriptIndent+stmt)
		}
		toolCode[u.ToolID] = StmtRange{Start: start, End: len(lines)}
	}
	if len(units) == 0 {
		lines = append(lines, scriptIndent+"pass")
	}

	lines = append(lines,
		"",
		"",
		"if __name__ == '__main__':",
		scriptIndent+"main()",
		"")
	return strings.Join(lines, "\n"), toolCode
}

// scanUsage folds the preamble requirements the emitters declared on
// their units. Statement text is never inspected: a file path or comment
// that happens to contain a module name must not pull in an import.
func scanUsage(units []*CodeUnit) (pandas, numpy, marker bool) {
	for _, u := range units {
		pandas = pandas || u.NeedsPandas
		numpy = numpy || u.NeedsNumpy
		marker = marker || u.NeedsMarker
	}
	return pandas, numpy, marker
}
