package expr

import "strings"

// Expr is a node in the parsed formula tree. Trees are built once per
// formula string and never mutated afterwards.
type Expr interface {
	exprNode()
}

// LitKind discriminates literal values.
type LitKind int

const (
	LitNumber LitKind = iota
	LitString
	LitBool
	LitNull
)

// Literal is a number, string, boolean or null constant. Value holds the
// literal's source form (numbers keep their exact spelling).
type Literal struct {
	Kind  LitKind
	Value string
}

// FieldRef references a dataset field by name.
type FieldRef struct {
	Name string
}

// Unary applies "-" or "NOT" to an operand.
type Unary struct {
	Op string
	X  Expr
}

// Binary applies an arithmetic, comparison or logical operator.
type Binary struct {
	Op          string
	Left, Right Expr
}

// Call invokes a named function with positional arguments.
type Call struct {
	Name string
	Args []Expr
}

func (*Literal) exprNode()  {}
func (*FieldRef) exprNode() {}
func (*Unary) exprNode()    {}
func (*Binary) exprNode()   {}
func (*Call) exprNode()     {}

// Format renders an expression back into mini-language source syntax.
// Used to carry the original text of untranslatable calls into the
// generated placeholder.
func Format(e Expr) string {
	switch n := e.(type) {
	case *Literal:
		switch n.Kind {
		case LitString:
			return `"` + strings.ReplaceAll(strings.ReplaceAll(n.Value, `\`, `\\`), `"`, `\"`) + `"`
		default:
			return n.Value
		}
	case *FieldRef:
		return "[" + strings.ReplaceAll(n.Name, "]", "]]") + "]"
	case *Unary:
		if n.Op == "NOT" {
			return "NOT " + Format(n.X)
		}
		return n.Op + Format(n.X)
	case *Binary:
		return Format(n.Left) + " " + n.Op + " " + Format(n.Right)
	case *Call:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = Format(a)
		}
		return n.Name + "(" + strings.Join(args, ", ") + ")"
	}
	return ""
}
