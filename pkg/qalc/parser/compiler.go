package parser

import (
	"math"

	"qalc-hq/qalc/pkg/linalg"
	"qalc-hq/qalc/pkg/qalc/ast"
	"qalc-hq/qalc/pkg/qalc/errors"
	"qalc-hq/qalc/pkg/qalc/grammar"
	"qalc-hq/qalc/pkg/qalc/lexer"
	"qalc-hq/qalc/pkg/qalc/runtime"
)

// action folds one completed rule into the operand stack.
type action func(c *compiler, tok lexer.Token) error

// actions maps rule ids to their semantic actions. Rules without an entry
// leave the stack untouched.
var actions = map[string]action{
	"open program":   openList,
	"statement":      appendItem,
	"let":            assign,
	"clear":          clearEnvironment,
	"open arguments": openList,
	"argument":       appendItem,
	"call":           call,

	"add":      binary(ast.OpAdd),
	"sub":      binary(ast.OpSub),
	"mul0":     binary(ast.OpMul0),
	"mul":      binary(ast.OpMul),
	"div":      binary(ast.OpDiv),
	"tensor":   binary(ast.OpCross),
	"negation": unary(ast.OpNegate),
	"^":        unary(ast.OpDagger),
	"bra":      unary(ast.OpDagger),

	"state expression": unary(ast.OpBasis),
	"state i":          literal(func() ast.Value { return state(linalg.KetPlusI()) }),
	"state plus":       literal(func() ast.Value { return state(linalg.KetPlus()) }),
	"minus i":          literal(func() ast.Value { return state(linalg.KetMinusI()) }),
	"minus real":       literal(func() ast.Value { return state(linalg.KetMinus()) }),

	"i":  literal(func() ast.Value { return ast.ComplexValue(linalg.ImaginaryUnit, ast.Location{}) }),
	"pi": literal(func() ast.Value { return ast.ComplexValue(linalg.Real(math.Pi), ast.Location{}) }),
	"e":  literal(func() ast.Value { return ast.ComplexValue(linalg.Real(math.E), ast.Location{}) }),

	"variable": variableRef,
	"integer":  integerLiteral,
	"real":     realLiteral,
}

// compiler holds the operand stack of one compilation.
type compiler struct {
	stack []ast.Node
}

func (c *compiler) handle(id string, tok lexer.Token) error {
	fn, ok := actions[id]
	if !ok {
		return nil
	}
	return fn(c, tok)
}

func (c *compiler) push(n ast.Node) {
	c.stack = append(c.stack, n)
}

func (c *compiler) pop(tok lexer.Token) (ast.Node, error) {
	if len(c.stack) == 0 {
		return nil, errors.Syntax(tok.Location, "Internal error: empty operand stack")
	}
	n := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return n, nil
}

// popList pops the node on top of the stack, which must be a list.
func (c *compiler) popList(tok lexer.Token) (*ast.CommandList, error) {
	n, err := c.pop(tok)
	if err != nil {
		return nil, err
	}
	list, ok := n.(*ast.CommandList)
	if !ok {
		return nil, errors.Syntax(tok.Location, "Internal error: expected a list, found %s", n)
	}
	return list, nil
}

// result returns the program list left on the stack by a complete parse.
func (c *compiler) result(tok lexer.Token) (*ast.CommandList, error) {
	if len(c.stack) != 1 {
		return nil, errors.Syntax(tok.Location, "Internal error: %d operands left on the stack", len(c.stack))
	}
	return c.popList(tok)
}

func (c *compiler) parse(g *grammar.Grammar, lex *lexer.Lexer) (*ast.CommandList, error) {
	if err := g.Parse(lex, c.handle); err != nil {
		return nil, err
	}
	return c.result(lex.Current())
}

func openList(c *compiler, tok lexer.Token) error {
	c.push(ast.NewCommandList(tok.Location))
	return nil
}

func appendItem(c *compiler, tok lexer.Token) error {
	item, err := c.pop(tok)
	if err != nil {
		return err
	}
	list, err := c.popList(tok)
	if err != nil {
		return err
	}
	list.Append(item)
	c.push(list)
	return nil
}

func assign(c *compiler, tok lexer.Token) error {
	expr, err := c.pop(tok)
	if err != nil {
		return err
	}
	target, err := c.pop(tok)
	if err != nil {
		return err
	}
	ref, ok := target.(*ast.VarRef)
	if !ok {
		return errors.Syntax(tok.Location, "Internal error: cannot assign to %s", target)
	}
	c.push(&ast.Assign{Name: ref.Name, Expr: expr, Loc: tok.Location})
	return nil
}

func clearEnvironment(c *compiler, tok lexer.Token) error {
	c.push(&ast.Clear{Loc: tok.Location})
	return nil
}

// call checks the argument count against the builtin registry before
// building the node.
func call(c *compiler, tok lexer.Token) error {
	args, err := c.popList(tok)
	if err != nil {
		return err
	}
	b, ok := runtime.LookupBuiltin(tok.Text)
	if !ok {
		return errors.Syntax(tok.Location, "Undefined function %s", tok.Text)
	}
	if args.Len() != b.Arity {
		return errors.Syntax(tok.Location, "%s requires %d arguments: actual (%d)", b.Name, b.Arity, args.Len())
	}
	c.push(&ast.Call{Name: tok.Text, Args: args, Loc: tok.Location})
	return nil
}

func binary(op ast.BinaryOp) action {
	return func(c *compiler, tok lexer.Token) error {
		right, err := c.pop(tok)
		if err != nil {
			return err
		}
		left, err := c.pop(tok)
		if err != nil {
			return err
		}
		c.push(&ast.Binary{Op: op, Left: left, Right: right, Loc: tok.Location})
		return nil
	}
}

func unary(op ast.UnaryOp) action {
	return func(c *compiler, tok lexer.Token) error {
		operand, err := c.pop(tok)
		if err != nil {
			return err
		}
		c.push(&ast.Unary{Op: op, Operand: operand, Loc: tok.Location})
		return nil
	}
}

func literal(value func() ast.Value) action {
	return func(c *compiler, tok lexer.Token) error {
		c.push(&ast.Literal{Value: value().WithLocation(tok.Location), Loc: tok.Location})
		return nil
	}
}

func state(m *linalg.Matrix) ast.Value {
	return ast.MatrixValue(m, ast.Location{})
}

func variableRef(c *compiler, tok lexer.Token) error {
	c.push(&ast.VarRef{Name: tok.Text, Loc: tok.Location})
	return nil
}

func integerLiteral(c *compiler, tok lexer.Token) error {
	c.push(&ast.Literal{Value: ast.IntValue(tok.Int, tok.Location), Loc: tok.Location})
	return nil
}

func realLiteral(c *compiler, tok lexer.Token) error {
	c.push(&ast.Literal{Value: ast.ComplexValue(linalg.Real(float32(tok.Real)), tok.Location), Loc: tok.Location})
	return nil
}
