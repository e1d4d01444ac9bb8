package expr

import (
	"fmt"
	"strings"
)

// Parse builds the expression tree for one formula string.
//
// Grammar, lowest precedence first:
//
//	<or>   ::= <and> ( OR <and> )*
//	<and>  ::= <cmp> ( AND <cmp> )*
//	<cmp>  ::= <add> ( ("=" | "<>" | "<" | "<=" | ">" | ">=") <add> )*
//	<add>  ::= <mul> ( ("+" | "-") <mul> )*
//	<mul>  ::= <unary> ( ("*" | "/" | "%") <unary> )*
//	<unary>::= ("-" | NOT) <unary> | <primary>
//	<primary> ::= literal | [Field] | NAME "(" args ")" | "(" <or> ")"
func Parse(src string) (Expr, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, fmt.Errorf("expression %q: %w", src, err)
	}
	p := &parser{toks: toks}
	e, err := p.parseOr()
	if err != nil {
		return nil, fmt.Errorf("expression %q: %w", src, err)
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("expression %q: unexpected %q at position %d", src, p.peek().text, p.peek().pos)
	}
	return e, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// acceptOp consumes the next token if it is one of the given operators.
func (p *parser) acceptOp(ops ...string) (string, bool) {
	t := p.peek()
	if t.kind != tokOp {
		return "", false
	}
	for _, op := range ops {
		if t.text == op {
			p.pos++
			return op, true
		}
	}
	return "", false
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.acceptOp("OR"); !ok {
			return left, nil
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: "OR", Left: left, Right: right}
	}
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseCmp()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.acceptOp("AND"); !ok {
			return left, nil
		}
		right, err := p.parseCmp()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: "AND", Left: left, Right: right}
	}
}

func (p *parser) parseCmp() (Expr, error) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.acceptOp("=", "<>", "<", "<=", ">", ">=")
		if !ok {
			return left, nil
		}
		right, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseAdd() (Expr, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.acceptOp("+", "-")
		if !ok {
			return left, nil
		}
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseMul() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.acceptOp("*", "/", "%")
		if !ok {
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	if op, ok := p.acceptOp("-", "NOT"); ok {
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, X: x}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.peek()
	switch t.kind {
	case tokNumber:
		p.next()
		return &Literal{Kind: LitNumber, Value: t.text}, nil

	case tokString:
		p.next()
		return &Literal{Kind: LitString, Value: t.text}, nil

	case tokField:
		p.next()
		return &FieldRef{Name: t.text}, nil

	case tokIdent:
		p.next()
		switch strings.ToUpper(t.text) {
		case "TRUE":
			return &Literal{Kind: LitBool, Value: "True"}, nil
		case "FALSE":
			return &Literal{Kind: LitBool, Value: "False"}, nil
		case "NULL":
			if p.peek().kind != tokLParen {
				return &Literal{Kind: LitNull, Value: "Null"}, nil
			}
		}
		if p.peek().kind != tokLParen {
			return nil, fmt.Errorf("bare identifier %q at position %d (field references use [%s])", t.text, t.pos, t.text)
		}
		p.next() // consume "("
		call := &Call{Name: t.text}
		if p.peek().kind == tokRParen {
			p.next()
			return call, nil
		}
		for {
			arg, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
			if p.peek().kind == tokComma {
				p.next()
				continue
			}
			break
		}
		if p.peek().kind != tokRParen {
			return nil, fmt.Errorf("expected ')' at position %d", p.peek().pos)
		}
		p.next()
		return call, nil

	case tokLParen:
		p.next()
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tokRParen {
			return nil, fmt.Errorf("expected ')' at position %d", p.peek().pos)
		}
		p.next()
		return e, nil
	}
	return nil, fmt.Errorf("unexpected %q at position %d", t.text, t.pos)
}
