package filter

import (
	"fmt"
	"math"
	"strings"

	"github.com/five82/tablegrid/internal/datatype"
)

// Scope binds the names an expression can reference for one row.
type Scope interface {
	Lookup(name string) (any, bool)
	RowIndex() any
	RowValue(i int) any
}

type env struct {
	scope Scope
}

// rowRef is the value of the bare identifier "row".
type rowRef struct{}

// Eval evaluates the expression against scope.
func (x *Expr) Eval(scope Scope) (any, error) {
	return x.root.eval(&env{scope: scope})
}

// Match evaluates the expression as a row predicate. An undefined result
// counts as a match.
func (x *Expr) Match(scope Scope) (bool, error) {
	v, err := x.Eval(scope)
	if err != nil {
		return false, err
	}
	if datatype.IsUndefined(v) {
		return true, nil
	}
	return datatype.Truthy(v), nil
}

func (n literal) eval(*env) (any, error) { return n.value, nil }

func (n ident) eval(e *env) (any, error) {
	if n.name == "row" {
		return rowRef{}, nil
	}
	if v, ok := e.scope.Lookup(n.name); ok {
		return normalize(v), nil
	}
	return nil, fmt.Errorf("%s: %w", n.name, ErrUndefined)
}

func (n member) eval(e *env) (any, error) {
	obj, err := n.object.eval(e)
	if err != nil {
		return nil, err
	}
	if _, ok := obj.(rowRef); ok {
		if n.name == "index" {
			return normalize(e.scope.RowIndex()), nil
		}
		return datatype.Undefined, nil
	}
	if obj == nil || datatype.IsUndefined(obj) {
		return nil, fmt.Errorf("read %q of %s: %w", n.name, datatype.ToString(obj), ErrType)
	}
	if n.name == "length" {
		switch v := obj.(type) {
		case string:
			return float64(len([]rune(v))), nil
		case []any:
			return float64(len(v)), nil
		}
	}
	if m, ok := obj.(map[string]any); ok {
		if v, ok := m[n.name]; ok {
			return normalize(v), nil
		}
	}
	return datatype.Undefined, nil
}

func (n call) eval(e *env) (any, error) {
	args := make([]any, len(n.args))
	for i, a := range n.args {
		v, err := a.eval(e)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	switch fn := n.fn.(type) {
	case ident:
		b, ok := builtins[fn.name]
		if !ok {
			if _, bound := e.scope.Lookup(fn.name); bound {
				return nil, fmt.Errorf("%s is not a function: %w", fn.name, ErrType)
			}
			return nil, fmt.Errorf("%s: %w", fn.name, ErrUndefined)
		}
		if b.arity >= 0 && len(args) != b.arity {
			return nil, fmt.Errorf("%s takes %d arguments, got %d: %w", fn.name, b.arity, len(args), ErrType)
		}
		return b.fn(args), nil
	case member:
		obj, err := fn.object.eval(e)
		if err != nil {
			return nil, err
		}
		return callMethod(e, obj, fn.name, args)
	}
	return nil, fmt.Errorf("expression is not a function: %w", ErrType)
}

func (n unary) eval(e *env) (any, error) {
	v, err := n.x.eval(e)
	if err != nil {
		return nil, err
	}
	switch n.op {
	case "!":
		return !datatype.Truthy(v), nil
	case "-":
		return -datatype.ToNumber(v), nil
	}
	return datatype.ToNumber(v), nil
}

func (n binary) eval(e *env) (any, error) {
	l, err := n.l.eval(e)
	if err != nil {
		return nil, err
	}
	switch n.op {
	case "&&":
		if !datatype.Truthy(l) {
			return l, nil
		}
		return n.r.eval(e)
	case "||":
		if datatype.Truthy(l) {
			return l, nil
		}
		return n.r.eval(e)
	}
	r, err := n.r.eval(e)
	if err != nil {
		return nil, err
	}
	switch n.op {
	case "==":
		return looseEqual(l, r), nil
	case "!=":
		return !looseEqual(l, r), nil
	case "===":
		return strictEqual(l, r), nil
	case "!==":
		return !strictEqual(l, r), nil
	case "<", "<=", ">", ">=":
		return compare(n.op, l, r), nil
	case "+":
		if isStringy(l) || isStringy(r) {
			return datatype.ToString(l) + datatype.ToString(r), nil
		}
		return datatype.ToNumber(l) + datatype.ToNumber(r), nil
	case "-":
		return datatype.ToNumber(l) - datatype.ToNumber(r), nil
	case "*":
		return datatype.ToNumber(l) * datatype.ToNumber(r), nil
	case "/":
		return datatype.ToNumber(l) / datatype.ToNumber(r), nil
	case "%":
		return math.Mod(datatype.ToNumber(l), datatype.ToNumber(r)), nil
	}
	return nil, fmt.Errorf("operator %q: %w", n.op, ErrSyntax)
}

// normalize maps every Go numeric type onto float64 so that equality and
// comparison see one number kind.
func normalize(v any) any {
	if datatype.IsNumber(v) {
		return datatype.ToNumber(v)
	}
	return v
}

// isStringy reports operands that make "+" concatenate.
func isStringy(v any) bool {
	switch v.(type) {
	case string, map[string]any, []any:
		return true
	}
	return false
}

func isNullish(v any) bool {
	return v == nil || datatype.IsUndefined(v)
}

func looseEqual(l, r any) bool {
	l, r = normalize(l), normalize(r)
	if isNullish(l) || isNullish(r) {
		return isNullish(l) && isNullish(r)
	}
	if lb, ok := l.(bool); ok {
		return looseEqual(boolNumber(lb), r)
	}
	if rb, ok := r.(bool); ok {
		return looseEqual(l, boolNumber(rb))
	}
	ls, lIsString := l.(string)
	rs, rIsString := r.(string)
	switch {
	case lIsString && rIsString:
		return ls == rs
	case lIsString || rIsString:
		if isStringy(l) && isStringy(r) {
			return datatype.ToString(l) == datatype.ToString(r)
		}
		return datatype.ToNumber(l) == datatype.ToNumber(r)
	}
	lf, lok := l.(float64)
	rf, rok := r.(float64)
	if lok && rok {
		return lf == rf
	}
	return false
}

func strictEqual(l, r any) bool {
	l, r = normalize(l), normalize(r)
	switch lv := l.(type) {
	case float64:
		rv, ok := r.(float64)
		return ok && lv == rv
	case string:
		rv, ok := r.(string)
		return ok && lv == rv
	case bool:
		rv, ok := r.(bool)
		return ok && lv == rv
	case nil:
		return r == nil
	}
	if datatype.IsUndefined(l) {
		return datatype.IsUndefined(r)
	}
	return false
}

func boolNumber(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func compare(op string, l, r any) bool {
	ls, lok := l.(string)
	rs, rok := r.(string)
	if lok && rok {
		switch op {
		case "<":
			return ls < rs
		case "<=":
			return ls <= rs
		case ">":
			return ls > rs
		}
		return ls >= rs
	}
	lf, rf := datatype.ToNumber(l), datatype.ToNumber(r)
	if math.IsNaN(lf) || math.IsNaN(rf) {
		return false
	}
	switch op {
	case "<":
		return lf < rf
	case "<=":
		return lf <= rf
	case ">":
		return lf > rf
	}
	return lf >= rf
}

type builtin struct {
	arity int
	fn    func(args []any) any
}

var builtins = map[string]builtin{
	"contains": {2, func(a []any) any {
		return strings.Contains(datatype.ToString(a[0]), datatype.ToString(a[1]))
	}},
	"startsWith": {2, func(a []any) any {
		return strings.HasPrefix(datatype.ToString(a[0]), datatype.ToString(a[1]))
	}},
	"endsWith": {2, func(a []any) any {
		return strings.HasSuffix(datatype.ToString(a[0]), datatype.ToString(a[1]))
	}},
	"lower":      {1, func(a []any) any { return strings.ToLower(datatype.ToString(a[0])) }},
	"upper":      {1, func(a []any) any { return strings.ToUpper(datatype.ToString(a[0])) }},
	"String":     {1, func(a []any) any { return datatype.ToString(a[0]) }},
	"Number":     {1, func(a []any) any { return datatype.ToNumber(a[0]) }},
	"abs":        {1, func(a []any) any { return math.Abs(datatype.ToNumber(a[0])) }},
	"isNaN":      {1, func(a []any) any { return math.IsNaN(datatype.ToNumber(a[0])) }},
	"parseFloat": {1, func(a []any) any { return datatype.ParseFloat(a[0]) }},
	"parseInt":   {1, func(a []any) any { return datatype.ParseInt(a[0]) }},
}

func callMethod(e *env, obj any, name string, args []any) (any, error) {
	if _, ok := obj.(rowRef); ok {
		if name != "getValue" || len(args) != 1 {
			return nil, fmt.Errorf("row.%s: %w", name, ErrType)
		}
		return normalize(e.scope.RowValue(int(datatype.ToNumber(args[0])))), nil
	}
	if isNullish(obj) {
		return nil, fmt.Errorf("call %s on %s: %w", name, datatype.ToString(obj), ErrType)
	}
	s := datatype.ToString(obj)
	arg := func(i int) string {
		if i < len(args) {
			return datatype.ToString(args[i])
		}
		return "undefined"
	}
	switch name {
	case "toString":
		return s, nil
	case "toLowerCase":
		return strings.ToLower(s), nil
	case "toUpperCase":
		return strings.ToUpper(s), nil
	case "trim":
		return strings.TrimSpace(s), nil
	case "includes":
		return strings.Contains(s, arg(0)), nil
	case "startsWith":
		return strings.HasPrefix(s, arg(0)), nil
	case "endsWith":
		return strings.HasSuffix(s, arg(0)), nil
	case "indexOf":
		i := strings.Index(s, arg(0))
		if i < 0 {
			return -1.0, nil
		}
		return float64(len([]rune(s[:i]))), nil
	}
	return nil, fmt.Errorf("%s is not a function: %w", name, ErrType)
}
