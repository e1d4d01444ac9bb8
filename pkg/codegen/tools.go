package codegen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ravi-parthasarathy/flowgen/pkg/expr"
	"github.com/ravi-parthasarathy/flowgen/pkg/workflow"
)

func (u *CodeUnit) stmtf(format string, args ...any) {
	u.Statements = append(u.Statements, fmt.Sprintf(format, args...))
}

// pdStmtf records a statement that references the pd namespace.
func (u *CodeUnit) pdStmtf(format string, args ...any) {
	u.NeedsPandas = true
	u.stmtf(format, args...)
}

// pyList renders a Python list literal of string values.
func pyList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = expr.PyString(s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// cfgStr returns the first non-empty scalar among the given top-level
// configuration keys.
func cfgStr(t *workflow.Tool, keys ...string) string {
	for _, k := range keys {
		if s := t.Config.Get(k).Str(); s != "" {
			return s
		}
	}
	return ""
}

// translate runs the expression translator, attaching its warnings to the
// tool and its preamble needs to the unit.
func (c *genContext) translate(u *CodeUnit, t *workflow.Tool, src, frame string) (string, bool) {
	tr, err := expr.Translate(src, frame)
	if err != nil {
		c.warnf(t.ID, "could not translate expression: %v", err)
		return "", false
	}
	for _, w := range tr.Warnings {
		c.warnf(t.ID, "%s", w)
	}
	u.NeedsPandas = u.NeedsPandas || tr.Pandas
	u.NeedsNumpy = u.NeedsNumpy || tr.Numpy
	u.NeedsMarker = u.NeedsMarker || tr.Marker
	return tr.Code, true
}

// passthrough rebinds the first upstream variable, or an empty frame when
// the tool has no upstream.
func (c *genContext) passthrough(u *CodeUnit, t *workflow.Tool) {
	if src, ok := c.firstInput(t); ok {
		u.Inputs = append(u.Inputs, src)
		u.stmtf("%s = %s", u.Var, src)
		return
	}
	u.pdStmtf("%s = pd.DataFrame()", u.Var)
}

// ─── input / output ──────────────────────────────────────────────────────────

func emitInput(c *genContext, t *workflow.Tool) *CodeUnit {
	u := newUnit(t)
	file := cfgStr(t, "File", "FileName")
	if file == "" {
		c.warnf(t.ID, "input tool has no file configured; defaulting to input.csv")
		file = "input.csv"
	}

	switch strings.ToLower(filepath.Ext(file)) {
	case ".csv":
		u.pdStmtf("%s = pd.read_csv(%s)", u.Var, expr.PyString(file))
	case ".xlsx", ".xls":
		u.pdStmtf("%s = pd.read_excel(%s)", u.Var, expr.PyString(file))
	case ".txt", ".tsv":
		sep := cfgStr(t, "Delimeter", "Delimiter")
		if sep == "" {
			sep = "\t"
		}
		u.pdStmtf("%s = pd.read_csv(%s, sep=%s)", u.Var, expr.PyString(file), expr.PyString(sep))
	default:
		u.pdStmtf("%s = pd.read_csv(%s)  # adjust read method for this format", u.Var, expr.PyString(file))
	}
	u.stmtf("print(f'loaded {len(%s)} rows from %s')", u.Var, file)
	return u
}

func emitOutput(c *genContext, t *workflow.Tool) *CodeUnit {
	u := newUnit(t)
	src, ok := c.firstInput(t)
	if !ok {
		c.warnf(t.ID, "output tool has no upstream data")
		u.pdStmtf("%s = pd.DataFrame()", u.Var)
		return u
	}
	u.Inputs = append(u.Inputs, src)
	u.Var = src // output binds nothing new

	file := cfgStr(t, "File", "FileName_Out", "FileName")
	if file == "" {
		c.warnf(t.ID, "output tool has no file configured; defaulting to output.csv")
		file = "output.csv"
	}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".xlsx", ".xls":
		u.stmtf("%s.to_excel(%s, index=False)", src, expr.PyString(file))
	default:
		u.stmtf("%s.to_csv(%s, index=False)", src, expr.PyString(file))
	}
	u.stmtf("print(f'wrote {len(%s)} rows to %s')", src, file)
	return u
}

func emitTextInput(c *genContext, t *workflow.Tool) *CodeUnit {
	u := newUnit(t)
	var cols []string
	for _, f := range t.Config.Get("Fields", "Field").List() {
		if name := f.Get("name").Str(); name != "" {
			cols = append(cols, name)
		}
	}
	if len(cols) == 0 {
		c.warnf(t.ID, "text input tool has no fields configured")
		u.pdStmtf("%s = pd.DataFrame()", u.Var)
		return u
	}

	var rows []string
	for _, r := range t.Config.Get("Data", "r").List() {
		var cells []string
		for _, cell := range r.Get("c").List() {
			cells = append(cells, expr.PyString(cell.Str()))
		}
		rows = append(rows, "["+strings.Join(cells, ", ")+"]")
	}
	u.pdStmtf("%s = pd.DataFrame([%s], columns=%s)", u.Var, strings.Join(rows, ", "), pyList(cols))
	return u
}

func emitBrowse(c *genContext, t *workflow.Tool) *CodeUnit {
	u := newUnit(t)
	c.passthrough(u, t)
	u.stmtf("print(%s.head(10))", u.Var)
	return u
}

// ─── row-level transforms ────────────────────────────────────────────────────

func emitSelect(c *genContext, t *workflow.Tool) *CodeUnit {
	u := newUnit(t)
	src, ok := c.firstInput(t)
	if !ok {
		c.warnf(t.ID, "select tool has no upstream data")
		u.pdStmtf("%s = pd.DataFrame()", u.Var)
		return u
	}
	u.Inputs = append(u.Inputs, src)

	fields := t.Config.Get("SelectFields", "SelectField").List()
	if len(fields) == 0 {
		c.warnf(t.ID, "select tool has no field configuration; passing all fields through")
		u.stmtf("%s = %s.copy()", u.Var, src)
		return u
	}

	keepUnknown := true
	var keeps, drops []string
	var renameFrom, renameTo []string
	for _, f := range fields {
		name := f.Get("field").Str()
		if name == "" {
			continue
		}
		selected := f.Get("selected").Bool(true)
		if name == "*Unknown" {
			keepUnknown = selected
			continue
		}
		if !selected {
			drops = append(drops, name)
			continue
		}
		keeps = append(keeps, name)
		if rename := f.Get("rename").Str(); rename != "" && rename != name {
			renameFrom = append(renameFrom, name)
			renameTo = append(renameTo, rename)
		}
	}

	if keepUnknown {
		u.stmtf("%s = %s.copy()", u.Var, src)
		if len(drops) > 0 {
			u.stmtf("%s = %s.drop(columns=%s, errors='ignore')", u.Var, u.Var, pyList(drops))
		}
	} else {
		u.stmtf("%s = %s[%s].copy()", u.Var, src, pyList(keeps))
	}
	if len(renameFrom) > 0 {
		pairs := make([]string, len(renameFrom))
		for i := range renameFrom {
			pairs[i] = expr.PyString(renameFrom[i]) + ": " + expr.PyString(renameTo[i])
		}
		u.stmtf("%s = %s.rename(columns={%s})", u.Var, u.Var, strings.Join(pairs, ", "))
	}
	return u
}

func emitFilter(c *genContext, t *workflow.Tool) *CodeUnit {
	u := newUnit(t)
	src, ok := c.firstInput(t)
	if !ok {
		c.warnf(t.ID, "filter tool has no upstream data")
		u.pdStmtf("%s = pd.DataFrame()", u.Var)
		return u
	}
	u.Inputs = append(u.Inputs, src)
	u.BranchVars = map[string]string{"True": u.Var}

	condSrc := cfgStr(t, "Expression", "Filter")
	if condSrc == "" {
		c.warnf(t.ID, "filter tool has no condition; passing all rows through")
		u.stmtf("%s = %s.copy()", u.Var, src)
		return u
	}
	cond, ok := c.translate(u, t, condSrc, src)
	if !ok {
		u.stmtf("%s = %s.copy()", u.Var, src)
		return u
	}

	u.stmtf("%s = %s[%s]", u.Var, src, cond)
	u.stmtf("print(f'filter: {len(%s)} of {len(%s)} rows')", u.Var, src)
	if c.hasOutputAnchor(t, "False") {
		falseVar := u.Var + "_false"
		u.BranchVars["False"] = falseVar
		u.stmtf("%s = %s[~(%s)]", falseVar, src, cond)
	}
	return u
}

func emitFormula(c *genContext, t *workflow.Tool) *CodeUnit {
	u := newUnit(t)
	src, ok := c.firstInput(t)
	if !ok {
		c.warnf(t.ID, "formula tool has no upstream data")
		u.pdStmtf("%s = pd.DataFrame()", u.Var)
		return u
	}
	u.Inputs = append(u.Inputs, src)
	u.stmtf("%s = %s.copy()", u.Var, src)

	fields := t.Config.Get("FormulaFields", "FormulaField").List()
	if len(fields) == 0 {
		c.warnf(t.ID, "formula tool has no formula fields configured")
		return u
	}
	for _, f := range fields {
		target := f.Get("field").Str()
		formula := f.Get("expression").Str()
		if target == "" || formula == "" {
			c.warnf(t.ID, "formula field missing target or expression; skipped")
			continue
		}
		code, ok := c.translate(u, t, formula, u.Var)
		if !ok {
			continue
		}
		u.stmtf("%s[%s] = %s", u.Var, expr.PyString(target), code)
	}
	return u
}

func emitMultiFormula(c *genContext, t *workflow.Tool) *CodeUnit {
	u := newUnit(t)
	src, ok := c.firstInput(t)
	if !ok {
		c.warnf(t.ID, "multi-field formula tool has no upstream data")
		u.pdStmtf("%s = pd.DataFrame()", u.Var)
		return u
	}
	u.Inputs = append(u.Inputs, src)
	u.stmtf("%s = %s.copy()", u.Var, src)

	formula := cfgStr(t, "Expression")
	var fields []string
	for _, f := range t.Config.Get("Fields", "Field").List() {
		if name := f.Get("name").Str(); name != "" {
			fields = append(fields, name)
		}
	}
	if formula == "" || len(fields) == 0 {
		c.warnf(t.ID, "multi-field formula tool missing expression or fields; passing through")
		return u
	}
	for _, field := range fields {
		perField := strings.ReplaceAll(formula, "[_CurrentField_]",
			"["+strings.ReplaceAll(field, "]", "]]")+"]")
		code, ok := c.translate(u, t, perField, u.Var)
		if !ok {
			continue
		}
		u.stmtf("%s[%s] = %s", u.Var, expr.PyString(field), code)
	}
	return u
}

// ─── multi-input tools ───────────────────────────────────────────────────────

// joinKinds is the closed set of supported join kinds; "exclude" keeps
// only rows unmatched on either side.
var joinKinds = map[string]string{
	"inner": "inner", "left": "left", "right": "right",
	"outer": "outer", "full": "outer", "fullouter": "outer",
}

func emitJoin(c *genContext, t *workflow.Tool) *CodeUnit {
	u := newUnit(t)
	left, lok := c.inputVarAt(t, "Left")
	right, rok := c.inputVarAt(t, "Right")
	if !lok || !rok {
		// Fall back to connection order for documents without named anchors.
		vars := c.inputVars(t)
		if len(vars) >= 2 {
			left, right = vars[0], vars[1]
			lok, rok = true, true
		}
	}
	if !lok || !rok {
		c.warnf(t.ID, "join tool requires two inputs; passing the available input through")
		c.passthrough(u, t)
		return u
	}
	u.Inputs = append(u.Inputs, left, right)

	var leftKeys, rightKeys []string
	for _, ji := range t.Config.Get("JoinInfo").List() {
		side := ji.Get("connection").Str()
		for _, f := range ji.Get("Field").List() {
			name := f.Get("field").Str()
			if name == "" {
				name = f.Str()
			}
			if name == "" {
				continue
			}
			switch side {
			case "Right":
				rightKeys = append(rightKeys, name)
			default:
				leftKeys = append(leftKeys, name)
			}
		}
	}
	if len(leftKeys) == 0 || len(rightKeys) == 0 {
		c.warnf(t.ID, "join tool has no key fields configured; passing left input through")
		u.stmtf("%s = %s.copy()", u.Var, left)
		return u
	}
	if len(leftKeys) != len(rightKeys) {
		// Keys join pairwise; an unpaired key would make the merge raise.
		c.warnf(t.ID, "join tool has %d left and %d right key fields; unpaired keys ignored",
			len(leftKeys), len(rightKeys))
		n := len(leftKeys)
		if len(rightKeys) < n {
			n = len(rightKeys)
		}
		leftKeys, rightKeys = leftKeys[:n], rightKeys[:n]
	}

	kindRaw := strings.ToLower(strings.ReplaceAll(cfgStr(t, "JoinType"), " ", ""))
	if kindRaw == "" {
		kindRaw = "inner" // default join kind
	}
	if kindRaw == "exclude" || kindRaw == "unmatched" {
		u.pdStmtf("%s = pd.merge(%s, %s, left_on=%s, right_on=%s, how='outer', indicator=True)",
			u.Var, left, right, pyList(leftKeys), pyList(rightKeys))
		u.stmtf("%s = %s[%s['_merge'] != 'both'].drop(columns=['_merge'])", u.Var, u.Var, u.Var)
		return u
	}
	how, ok := joinKinds[kindRaw]
	if !ok {
		c.warnf(t.ID, "unknown join kind %q; defaulting to inner", kindRaw)
		how = "inner"
	}
	u.pdStmtf("%s = pd.merge(%s, %s, left_on=%s, right_on=%s, how='%s')",
		u.Var, left, right, pyList(leftKeys), pyList(rightKeys), how)
	u.stmtf("print(f'join: {len(%s)} rows')", u.Var)
	return u
}

func emitUnion(c *genContext, t *workflow.Tool) *CodeUnit {
	u := newUnit(t)
	vars := c.inputVars(t)
	switch len(vars) {
	case 0:
		c.warnf(t.ID, "union tool has no upstream data")
		u.pdStmtf("%s = pd.DataFrame()", u.Var)
	case 1:
		u.Inputs = append(u.Inputs, vars[0])
		u.stmtf("%s = %s.copy()", u.Var, vars[0])
	default:
		u.Inputs = append(u.Inputs, vars...)
		u.pdStmtf("%s = pd.concat([%s], ignore_index=True)", u.Var, strings.Join(vars, ", "))
		u.stmtf("print(f'union: {len(%s)} rows')", u.Var)
	}
	return u
}

func emitAppend(c *genContext, t *workflow.Tool) *CodeUnit {
	u := newUnit(t)
	target, tok := c.inputVarAt(t, "Targets")
	source, sok := c.inputVarAt(t, "Sources")
	if !tok || !sok {
		vars := c.inputVars(t)
		if len(vars) >= 2 {
			target, source = vars[0], vars[1]
			tok, sok = true, true
		}
	}
	if !tok || !sok {
		c.warnf(t.ID, "append fields tool requires two inputs; passing the available input through")
		c.passthrough(u, t)
		return u
	}
	u.Inputs = append(u.Inputs, target, source)
	u.stmtf("%s = %s.merge(%s, how='cross')", u.Var, target, source)
	return u
}

// ─── aggregation and ordering ────────────────────────────────────────────────

// summarizeActions is the closed aggregation enumeration; the second
// column is the pandas aggregation name.
var summarizeActions = map[string]string{
	"sum": "sum", "count": "count", "avg": "mean", "min": "min",
	"max": "max", "countdistinct": "nunique", "first": "first",
}

// summarizeMethods renders group-less aggregation as a direct series call.
var summarizeMethods = map[string]string{
	"sum": ".sum()", "count": ".count()", "avg": ".mean()", "min": ".min()",
	"max": ".max()", "countdistinct": ".nunique()", "first": ".iloc[0]",
}

func emitSummarize(c *genContext, t *workflow.Tool) *CodeUnit {
	u := newUnit(t)
	src, ok := c.firstInput(t)
	if !ok {
		c.warnf(t.ID, "summarize tool has no upstream data")
		u.pdStmtf("%s = pd.DataFrame()", u.Var)
		return u
	}
	u.Inputs = append(u.Inputs, src)

	items := t.Config.Get("SummarizeFields", "SummarizeField").List()
	if len(items) == 0 {
		c.warnf(t.ID, "summarize tool has no fields configured; passing through")
		u.stmtf("%s = %s.copy()", u.Var, src)
		return u
	}

	var groups []string
	type agg struct{ field, action, out string }
	var aggs []agg
	for _, item := range items {
		field := item.Get("field").Str()
		action := strings.ToLower(item.Get("action").Str())
		if field == "" {
			continue
		}
		if action == "groupby" {
			groups = append(groups, field)
			continue
		}
		if _, known := summarizeActions[action]; !known {
			c.warnf(t.ID, "unknown aggregation %q for field %q; skipped", item.Get("action").Str(), field)
			continue
		}
		out := item.Get("rename").Str()
		if out == "" {
			out = capitalize(action) + "_" + field
		}
		aggs = append(aggs, agg{field: field, action: action, out: out})
	}

	switch {
	case len(groups) > 0 && len(aggs) > 0:
		pairs := make([]string, len(aggs))
		for i, a := range aggs {
			pairs[i] = fmt.Sprintf("%s: (%s, '%s')",
				expr.PyString(a.out), expr.PyString(a.field), summarizeActions[a.action])
		}
		u.stmtf("%s = %s.groupby(%s, as_index=False).agg(**{%s})",
			u.Var, src, pyList(groups), strings.Join(pairs, ", "))
	case len(groups) > 0:
		u.stmtf("%s = %s[%s].drop_duplicates()", u.Var, src, pyList(groups))
	case len(aggs) > 0:
		pairs := make([]string, len(aggs))
		for i, a := range aggs {
			pairs[i] = fmt.Sprintf("%s: %s[%s]%s",
				expr.PyString(a.out), src, expr.PyString(a.field), summarizeMethods[a.action])
		}
		u.pdStmtf("%s = pd.DataFrame([{%s}])", u.Var, strings.Join(pairs, ", "))
	default:
		c.warnf(t.ID, "summarize tool has no usable fields; passing through")
		u.stmtf("%s = %s.copy()", u.Var, src)
	}
	return u
}

// capitalize upper-cases the first byte of an ASCII action name.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func emitSort(c *genContext, t *workflow.Tool) *CodeUnit {
	u := newUnit(t)
	src, ok := c.firstInput(t)
	if !ok {
		c.warnf(t.ID, "sort tool has no upstream data")
		u.pdStmtf("%s = pd.DataFrame()", u.Var)
		return u
	}
	u.Inputs = append(u.Inputs, src)

	var by, asc []string
	for _, f := range t.Config.Get("SortInfo", "Field").List() {
		name := f.Get("field").Str()
		if name == "" {
			continue
		}
		by = append(by, name)
		if strings.EqualFold(f.Get("order").Str(), "Descending") {
			asc = append(asc, "False")
		} else {
			asc = append(asc, "True")
		}
	}
	if len(by) == 0 {
		c.warnf(t.ID, "sort tool has no sort fields configured; passing through")
		u.stmtf("%s = %s.copy()", u.Var, src)
		return u
	}
	u.stmtf("%s = %s.sort_values(by=%s, ascending=[%s])",
		u.Var, src, pyList(by), strings.Join(asc, ", "))
	return u
}

func emitUnique(c *genContext, t *workflow.Tool) *CodeUnit {
	u := newUnit(t)
	src, ok := c.firstInput(t)
	if !ok {
		c.warnf(t.ID, "unique tool has no upstream data")
		u.pdStmtf("%s = pd.DataFrame()", u.Var)
		return u
	}
	u.Inputs = append(u.Inputs, src)

	var fields []string
	for _, f := range t.Config.Get("UniqueFields", "Field").List() {
		name := f.Get("field").Str()
		if name == "" {
			name = f.Str()
		}
		if name != "" {
			fields = append(fields, name)
		}
	}
	if len(fields) > 0 {
		u.stmtf("%s = %s.drop_duplicates(subset=%s)", u.Var, src, pyList(fields))
	} else {
		u.stmtf("%s = %s.drop_duplicates()", u.Var, src)
	}
	u.stmtf("print(f'unique: {len(%s)} of {len(%s)} rows')", u.Var, src)
	return u
}

func emitSample(c *genContext, t *workflow.Tool) *CodeUnit {
	u := newUnit(t)
	src, ok := c.firstInput(t)
	if !ok {
		c.warnf(t.ID, "sample tool has no upstream data")
		u.pdStmtf("%s = pd.DataFrame()", u.Var)
		return u
	}
	u.Inputs = append(u.Inputs, src)

	n := t.Config.Get("N").Int(100)
	switch strings.ToLower(t.Config.Get("Mode").Str()) {
	case "last":
		u.stmtf("%s = %s.tail(%d)", u.Var, src, n)
	case "random":
		u.stmtf("%s = %s.sample(n=%d, random_state=42)", u.Var, src, n)
	default:
		u.stmtf("%s = %s.head(%d)", u.Var, src, n)
	}
	return u
}

func emitRecordID(c *genContext, t *workflow.Tool) *CodeUnit {
	u := newUnit(t)
	src, ok := c.firstInput(t)
	if !ok {
		c.warnf(t.ID, "record id tool has no upstream data")
		u.pdStmtf("%s = pd.DataFrame()", u.Var)
		return u
	}
	u.Inputs = append(u.Inputs, src)

	field := cfgStr(t, "FieldName")
	if field == "" {
		field = "RecordID"
	}
	start := t.Config.Get("StartValue").Int(1)
	u.stmtf("%s = %s.copy()", u.Var, src)
	u.stmtf("%s[%s] = range(%d, %d + len(%s))", u.Var, expr.PyString(field), start, start, u.Var)
	return u
}

// ─── reshaping ───────────────────────────────────────────────────────────────

func emitTranspose(c *genContext, t *workflow.Tool) *CodeUnit {
	u := newUnit(t)
	src, ok := c.firstInput(t)
	if !ok {
		c.warnf(t.ID, "transpose tool has no upstream data")
		u.pdStmtf("%s = pd.DataFrame()", u.Var)
		return u
	}
	u.Inputs = append(u.Inputs, src)
	u.stmtf("%s = %s.transpose()", u.Var, src)
	return u
}

func emitCrossTab(c *genContext, t *workflow.Tool) *CodeUnit {
	u := newUnit(t)
	src, ok := c.firstInput(t)
	if !ok {
		c.warnf(t.ID, "cross tab tool has no upstream data")
		u.pdStmtf("%s = pd.DataFrame()", u.Var)
		return u
	}
	u.Inputs = append(u.Inputs, src)

	header := t.Config.Get("HeaderField", "field").Str()
	data := t.Config.Get("DataField", "field").Str()
	if header == "" || data == "" {
		c.warnf(t.ID, "cross tab tool missing header or data field; passing through")
		u.stmtf("%s = %s.copy()", u.Var, src)
		return u
	}

	var groups []string
	for _, f := range t.Config.Get("GroupFields", "Field").List() {
		if name := f.Get("field").Str(); name != "" {
			groups = append(groups, name)
		}
	}

	agg := "sum"
	if ms := t.Config.Get("Methods", "Method").List(); len(ms) > 0 {
		method := strings.ToLower(ms[0].Get("method").Str())
		if mapped, known := summarizeActions[method]; known {
			agg = mapped
		} else if method != "" {
			c.warnf(t.ID, "unknown cross tab method %q; defaulting to sum", ms[0].Get("method").Str())
		}
	}

	if len(groups) > 0 {
		u.pdStmtf("%s = pd.pivot_table(%s, values=%s, index=%s, columns=%s, aggfunc='%s').reset_index()",
			u.Var, src, expr.PyString(data), pyList(groups), expr.PyString(header), agg)
	} else {
		u.pdStmtf("%s = pd.pivot_table(%s, values=%s, columns=%s, aggfunc='%s').reset_index()",
			u.Var, src, expr.PyString(data), expr.PyString(header), agg)
	}
	return u
}

func emitTextToColumns(c *genContext, t *workflow.Tool) *CodeUnit {
	u := newUnit(t)
	src, ok := c.firstInput(t)
	if !ok {
		c.warnf(t.ID, "text to columns tool has no upstream data")
		u.pdStmtf("%s = pd.DataFrame()", u.Var)
		return u
	}
	u.Inputs = append(u.Inputs, src)

	col := cfgStr(t, "Field")
	if col == "" {
		c.warnf(t.ID, "text to columns tool has no split field configured; passing through")
		u.stmtf("%s = %s.copy()", u.Var, src)
		return u
	}
	delim := t.Config.Get("Delimeters", "value").Str()
	if delim == "" {
		delim = cfgStr(t, "Delimeters", "Delimiter")
	}
	if delim == "" {
		delim = ","
	}

	splitVar := u.Var + "_split"
	u.stmtf("%s = %s.copy()", u.Var, src)
	u.stmtf("%s = %s[%s].str.split(%s, expand=True)", splitVar, u.Var, expr.PyString(col), expr.PyString(delim))
	u.stmtf("%s.columns = [%s + str(i + 1) for i in range(%s.shape[1])]", splitVar, expr.PyString(col+"_"), splitVar)
	u.pdStmtf("%s = pd.concat([%s, %s], axis=1)", u.Var, u.Var, splitVar)
	return u
}

// ─── stub ────────────────────────────────────────────────────────────────────

// emitStub preserves pipeline continuity for unsupported tools: the
// output variable rebinds the first upstream variable unchanged.
func emitStub(c *genContext, t *workflow.Tool) *CodeUnit {
	u := newUnit(t)
	raw := t.RawType
	if raw == "" {
		raw = string(t.Kind)
	}
	u.stmtf("# tool type %q is not supported; manual implementation required", raw)
	c.passthrough(u, t)
	return u
}
