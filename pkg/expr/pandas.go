package expr

import (
	"fmt"
	"strings"
)

// ValueKind is the coarse result type of a translated expression, used by
// code generation for coercion decisions.
type ValueKind string

const (
	KindNumeric ValueKind = "numeric"
	KindString  ValueKind = "string"
	KindBoolean ValueKind = "boolean"
	KindDate    ValueKind = "date"
	KindUnknown ValueKind = "unknown"
)

// UnsupportedMarker is the name of the generated helper that untranslatable
// calls degrade to. The assembler defines it in the script preamble when
// any translated expression references it.
const UnsupportedMarker = "_flowgen_unsupported"

// funcEntry is one row of the fixed function table: source name, arity,
// pandas expansion template ({0}, {1}, ... are argument slots) and result
// kind. String-typed helpers assume series receivers; callers comparing
// strings to numbers must convert explicitly with TONUMBER.
type funcEntry struct {
	arity    int
	template string
	kind     ValueKind
}

var funcTable = map[string]funcEntry{
	"ABS":   {1, "np.abs({0})", KindNumeric},
	"CEIL":  {1, "np.ceil({0})", KindNumeric},
	"FLOOR": {1, "np.floor({0})", KindNumeric},
	"SQRT":  {1, "np.sqrt({0})", KindNumeric},
	"LOG":   {1, "np.log({0})", KindNumeric},
	"EXP":   {1, "np.exp({0})", KindNumeric},
	"POW":   {2, "np.power({0}, {1})", KindNumeric},
	"MOD":   {2, "np.mod({0}, {1})", KindNumeric},
	"MIN":   {2, "np.minimum({0}, {1})", KindNumeric},
	"MAX":   {2, "np.maximum({0}, {1})", KindNumeric},
	// ROUND(x, mult) rounds x to the nearest multiple of mult.
	"ROUND": {2, "(np.round(({0}) / ({1})) * ({1}))", KindNumeric},

	"TONUMBER": {1, "pd.to_numeric({0}, errors='coerce')", KindNumeric},
	"TOSTRING": {1, "({0}).astype(str)", KindString},

	"UPPERCASE":   {1, "({0}).str.upper()", KindString},
	"LOWERCASE":   {1, "({0}).str.lower()", KindString},
	"TRIM":        {1, "({0}).str.strip()", KindString},
	"TRIMLEFT":    {1, "({0}).str.lstrip()", KindString},
	"TRIMRIGHT":   {1, "({0}).str.rstrip()", KindString},
	"LENGTH":      {1, "({0}).str.len()", KindNumeric},
	"CONTAINS":    {2, "({0}).str.contains({1}, regex=False)", KindBoolean},
	"STARTSWITH":  {2, "({0}).str.startswith({1})", KindBoolean},
	"ENDSWITH":    {2, "({0}).str.endswith({1})", KindBoolean},
	"SUBSTRING":   {3, "({0}).str.slice({1}, ({1}) + ({2}))", KindString},
	"REPLACE":     {3, "({0}).str.replace({1}, {2}, regex=False)", KindString},
	"REGEX_MATCH": {2, "({0}).str.match({1})", KindBoolean},

	"ISNULL":  {1, "({0}).isna()", KindBoolean},
	"ISEMPTY": {1, "(({0}).isna() | (({0}).astype(str) == ''))", KindBoolean},
	"IIF":     {3, "np.where({0}, {1}, {2})", KindUnknown},
	"NULL":    {0, "None", KindUnknown},

	"DATETIMENOW":    {0, "pd.Timestamp.now()", KindDate},
	"DATETIMETODAY":  {0, "pd.Timestamp.today().normalize()", KindDate},
	"DATETIMEPARSE":  {2, "pd.to_datetime({0}, format={1})", KindDate},
	"DATETIMEFORMAT": {2, "({0}).dt.strftime({1})", KindString},
	"DATETIMEYEAR":   {1, "({0}).dt.year", KindNumeric},
	"DATETIMEMONTH":  {1, "({0}).dt.month", KindNumeric},
	"DATETIMEDAY":    {1, "({0}).dt.day", KindNumeric},
}

// cmpOps maps mini-language comparison operators to Python.
var cmpOps = map[string]string{
	"=": "==", "<>": "!=", "<": "<", "<=": "<=", ">": ">", ">=": ">=",
}

// Translation is the compiled form of one formula: the pandas expression
// text, its derived value kind, the preamble pieces the expression
// references, and non-fatal warnings (one per untranslatable function,
// which degrades to an UnsupportedMarker call embedding the original
// source text so the surrounding statement stays valid).
type Translation struct {
	Code     string
	Kind     ValueKind
	Pandas   bool
	Numpy    bool
	Marker   bool
	Warnings []string
}

// Translate compiles one formula string into a pandas expression over the
// dataframe variable frame.
func Translate(src, frame string) (*Translation, error) {
	tree, err := Parse(src)
	if err != nil {
		return nil, err
	}
	em := &emitter{frame: frame}
	code, kind := em.emit(tree)
	return &Translation{
		Code:     code,
		Kind:     kind,
		Pandas:   em.pandas,
		Numpy:    em.numpy,
		Marker:   em.marker,
		Warnings: em.warnings,
	}, nil
}

type emitter struct {
	frame    string
	warnings []string
	pandas   bool
	numpy    bool
	marker   bool
}

func (em *emitter) emit(e Expr) (string, ValueKind) {
	switch n := e.(type) {
	case *Literal:
		switch n.Kind {
		case LitNumber:
			return n.Value, KindNumeric
		case LitString:
			return PyString(n.Value), KindString
		case LitBool:
			return n.Value, KindBoolean
		default:
			return "None", KindUnknown
		}

	case *FieldRef:
		return fmt.Sprintf("%s[%s]", em.frame, PyString(n.Name)), KindUnknown

	case *Unary:
		x, _ := em.emit(n.X)
		if n.Op == "NOT" {
			return fmt.Sprintf("~(%s)", x), KindBoolean
		}
		return fmt.Sprintf("(-%s)", x), KindNumeric

	case *Binary:
		return em.emitBinary(n)

	case *Call:
		return em.emitCall(n)
	}
	return "None", KindUnknown
}

func (em *emitter) emitBinary(n *Binary) (string, ValueKind) {
	left, lk := em.emit(n.Left)
	right, rk := em.emit(n.Right)

	if py, ok := cmpOps[n.Op]; ok {
		// Explicit parens: pandas bitwise logic binds tighter than Python
		// comparisons, so grouping is never left to target precedence.
		return fmt.Sprintf("(%s %s %s)", left, py, right), KindBoolean
	}
	switch n.Op {
	case "AND":
		return fmt.Sprintf("(%s & %s)", left, right), KindBoolean
	case "OR":
		return fmt.Sprintf("(%s | %s)", left, right), KindBoolean
	}

	kind := KindNumeric
	if n.Op == "+" && (lk == KindString || rk == KindString) {
		kind = KindString
	}
	return fmt.Sprintf("(%s %s %s)", left, n.Op, right), kind
}

func (em *emitter) emitCall(n *Call) (string, ValueKind) {
	entry, ok := funcTable[strings.ToUpper(n.Name)]
	if ok && entry.arity == len(n.Args) {
		// Templates are fixed code, so module references in them are real.
		if strings.Contains(entry.template, "pd.") {
			em.pandas = true
		}
		if strings.Contains(entry.template, "np.") {
			em.numpy = true
		}
		code := entry.template
		for i, arg := range n.Args {
			argCode, _ := em.emit(arg)
			code = strings.ReplaceAll(code, fmt.Sprintf("{%d}", i), argCode)
		}
		return code, entry.kind
	}

	original := Format(n)
	if ok {
		em.warnings = append(em.warnings, fmt.Sprintf(
			"function %s expects %d argument(s), got %d; emitted placeholder for %q",
			strings.ToUpper(n.Name), entry.arity, len(n.Args), original))
	} else {
		em.warnings = append(em.warnings, fmt.Sprintf(
			"function %s has no translation; emitted placeholder for %q", n.Name, original))
	}
	em.marker = true
	return fmt.Sprintf("%s(%s)", UnsupportedMarker, PyString(original)), KindUnknown
}

// PyString renders a Python single-quoted string literal.
func PyString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return "'" + s + "'"
}
