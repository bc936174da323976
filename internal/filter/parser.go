package filter

import (
	"fmt"
	"math"

	"github.com/five82/tablegrid/internal/datatype"
)

type node interface {
	eval(e *env) (any, error)
}

type literal struct{ value any }

type ident struct{ name string }

type member struct {
	object node
	name   string
}

type call struct {
	fn   node
	args []node
}

type unary struct {
	op string
	x  node
}

type binary struct {
	op   string
	l, r node
}

// Expr is a parsed filter expression.
type Expr struct {
	src  string
	root node
}

// String returns the source text of the expression.
func (x *Expr) String() string { return x.src }

// Parse parses src into an expression.
func Parse(src string) (*Expr, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	if p.peek().kind == tokEOF {
		return nil, fmt.Errorf("empty expression: %w", ErrSyntax)
	}
	root, err := p.or()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %q at %d: %w", t.text, t.pos, ErrSyntax)
	}
	return &Expr{src: src, root: root}, nil
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

func (p *parser) accept(ops ...string) (string, bool) {
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

func (p *parser) expect(op string) error {
	if _, ok := p.accept(op); !ok {
		t := p.peek()
		return fmt.Errorf("expected %q at %d: %w", op, t.pos, ErrSyntax)
	}
	return nil
}

func (p *parser) or() (node, error) {
	return p.binaryLevel(p.and, "||")
}

func (p *parser) and() (node, error) {
	return p.binaryLevel(p.cmp, "&&")
}

func (p *parser) cmp() (node, error) {
	l, err := p.sum()
	if err != nil {
		return nil, err
	}
	op, ok := p.accept("===", "!==", "==", "!=", "<=", ">=", "<", ">")
	if !ok {
		return l, nil
	}
	r, err := p.sum()
	if err != nil {
		return nil, err
	}
	return binary{op: op, l: l, r: r}, nil
}

func (p *parser) sum() (node, error) {
	return p.binaryLevel(p.term, "+", "-")
}

func (p *parser) term() (node, error) {
	return p.binaryLevel(p.unary, "*", "/", "%")
}

func (p *parser) binaryLevel(operand func() (node, error), ops ...string) (node, error) {
	l, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.accept(ops...)
		if !ok {
			return l, nil
		}
		r, err := operand()
		if err != nil {
			return nil, err
		}
		l = binary{op: op, l: l, r: r}
	}
}

func (p *parser) unary() (node, error) {
	if op, ok := p.accept("-", "+", "!"); ok {
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return unary{op: op, x: x}, nil
	}
	return p.postfix()
}

func (p *parser) postfix() (node, error) {
	x, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.peekOp("."):
			p.next()
			t := p.next()
			if t.kind != tokIdent {
				return nil, fmt.Errorf("expected name after '.' at %d: %w", t.pos, ErrSyntax)
			}
			x = member{object: x, name: t.text}
		case p.peekOp("("):
			p.next()
			args, err := p.args()
			if err != nil {
				return nil, err
			}
			x = call{fn: x, args: args}
		default:
			return x, nil
		}
	}
}

func (p *parser) peekOp(op string) bool {
	t := p.peek()
	return t.kind == tokOp && t.text == op
}

func (p *parser) args() ([]node, error) {
	var args []node
	if _, ok := p.accept(")"); ok {
		return args, nil
	}
	for {
		a, err := p.or()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if _, ok := p.accept(","); ok {
			continue
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return args, nil
	}
}

func (p *parser) primary() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return literal{value: t.num}, nil
	case tokString:
		return literal{value: t.text}, nil
	case tokIdent:
		switch t.text {
		case "true":
			return literal{value: true}, nil
		case "false":
			return literal{value: false}, nil
		case "null":
			return literal{value: nil}, nil
		case "undefined":
			return literal{value: datatype.Undefined}, nil
		case "NaN":
			return literal{value: math.NaN()}, nil
		case "Infinity":
			return literal{value: math.Inf(1)}, nil
		}
		return ident{name: t.text}, nil
	case tokOp:
		if t.text == "(" {
			x, err := p.or()
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			return x, nil
		}
	case tokEOF:
		return nil, fmt.Errorf("unexpected end of expression: %w", ErrSyntax)
	}
	return nil, fmt.Errorf("unexpected %q at %d: %w", t.text, t.pos, ErrSyntax)
}
