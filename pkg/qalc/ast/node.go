package ast

import (
	"strings"
)

// Context evaluates the operations a Node delegates to. It is implemented by
// the runtime package; nodes never inspect value kinds themselves.
type Context interface {
	Add(loc Location, left, right Value) (Value, error)
	Sub(loc Location, left, right Value) (Value, error)
	Mul(loc Location, left, right Value) (Value, error)
	Mul0(loc Location, left, right Value) (Value, error)
	Div(loc Location, left, right Value) (Value, error)
	Cross(loc Location, left, right Value) (Value, error)

	Negate(loc Location, v Value) (Value, error)
	Dagger(loc Location, v Value) (Value, error)
	Basis(loc Location, v Value) (Value, error)

	Assign(loc Location, name string, v Value) (Value, error)
	Retrieve(loc Location, name string) (Value, error)
	Clear(loc Location) (Value, error)
	Call(loc Location, name string, args []Value) (Value, error)
}

// Node is a compiled expression or statement.
type Node interface {
	// Location returns the source token the node was built from.
	Location() Location
	// Evaluate computes the node's value against ctx.
	Evaluate(ctx Context) (Value, error)
	// Children returns the direct sub-nodes in evaluation order.
	Children() []Node
	// String returns a compact description used by Dump.
	String() string
}

// UnaryOp identifies a unary operator.
type UnaryOp string

const (
	OpNegate UnaryOp = "negate" // -x
	OpDagger UnaryOp = "dagger" // x^
	OpBasis  UnaryOp = "basis"  // |k>
)

// BinaryOp identifies a binary operator.
type BinaryOp string

const (
	OpAdd   BinaryOp = "add"   // a + b
	OpSub   BinaryOp = "sub"   // a - b
	OpMul   BinaryOp = "mul"   // a . b, tensor product for two matrices
	OpMul0  BinaryOp = "mul0"  // a * b, matrix product for two matrices
	OpDiv   BinaryOp = "div"   // a / b
	OpCross BinaryOp = "cross" // a x b
)

// Literal is a constant value fixed at compile time.
type Literal struct {
	Value Value
	Loc   Location
}

func (n *Literal) Location() Location { return n.Loc }
func (n *Literal) Children() []Node   { return nil }
func (n *Literal) String() string     { return "Literal " + n.Value.String() }

func (n *Literal) Evaluate(Context) (Value, error) {
	return n.Value.WithLocation(n.Loc), nil
}

// VarRef reads a variable from the environment.
type VarRef struct {
	Name string
	Loc  Location
}

func (n *VarRef) Location() Location { return n.Loc }
func (n *VarRef) Children() []Node   { return nil }
func (n *VarRef) String() string     { return "VarRef " + n.Name }

func (n *VarRef) Evaluate(ctx Context) (Value, error) {
	return ctx.Retrieve(n.Loc, n.Name)
}

// Assign binds the value of Expr to Name.
type Assign struct {
	Name string
	Expr Node
	Loc  Location
}

func (n *Assign) Location() Location { return n.Loc }
func (n *Assign) Children() []Node   { return []Node{n.Expr} }
func (n *Assign) String() string     { return "Assign " + n.Name }

func (n *Assign) Evaluate(ctx Context) (Value, error) {
	v, err := n.Expr.Evaluate(ctx)
	if err != nil {
		return Value{}, err
	}
	return ctx.Assign(n.Loc, n.Name, v)
}

// Clear removes every variable from the environment.
type Clear struct {
	Loc Location
}

func (n *Clear) Location() Location { return n.Loc }
func (n *Clear) Children() []Node   { return nil }
func (n *Clear) String() string     { return "Clear" }

func (n *Clear) Evaluate(ctx Context) (Value, error) {
	return ctx.Clear(n.Loc)
}

// Unary applies a unary operator to Operand.
type Unary struct {
	Op      UnaryOp
	Operand Node
	Loc     Location
}

func (n *Unary) Location() Location { return n.Loc }
func (n *Unary) Children() []Node   { return []Node{n.Operand} }
func (n *Unary) String() string     { return "Unary " + string(n.Op) }

func (n *Unary) Evaluate(ctx Context) (Value, error) {
	v, err := n.Operand.Evaluate(ctx)
	if err != nil {
		return Value{}, err
	}
	switch n.Op {
	case OpNegate:
		return ctx.Negate(n.Loc, v)
	case OpDagger:
		return ctx.Dagger(n.Loc, v)
	case OpBasis:
		return ctx.Basis(n.Loc, v)
	}
	return Value{}, &UnknownOperatorError{Op: string(n.Op), Loc: n.Loc}
}

// Binary applies a binary operator. Left is evaluated before Right.
type Binary struct {
	Op    BinaryOp
	Left  Node
	Right Node
	Loc   Location
}

func (n *Binary) Location() Location { return n.Loc }
func (n *Binary) Children() []Node   { return []Node{n.Left, n.Right} }
func (n *Binary) String() string     { return "Binary " + string(n.Op) }

func (n *Binary) Evaluate(ctx Context) (Value, error) {
	left, err := n.Left.Evaluate(ctx)
	if err != nil {
		return Value{}, err
	}
	right, err := n.Right.Evaluate(ctx)
	if err != nil {
		return Value{}, err
	}
	switch n.Op {
	case OpAdd:
		return ctx.Add(n.Loc, left, right)
	case OpSub:
		return ctx.Sub(n.Loc, left, right)
	case OpMul:
		return ctx.Mul(n.Loc, left, right)
	case OpMul0:
		return ctx.Mul0(n.Loc, left, right)
	case OpDiv:
		return ctx.Div(n.Loc, left, right)
	case OpCross:
		return ctx.Cross(n.Loc, left, right)
	}
	return Value{}, &UnknownOperatorError{Op: string(n.Op), Loc: n.Loc}
}

// Call invokes a builtin function with the values of Args.
type Call struct {
	Name string
	Args *CommandList
	Loc  Location
}

func (n *Call) Location() Location { return n.Loc }
func (n *Call) Children() []Node   { return []Node{n.Args} }
func (n *Call) String() string     { return "Call " + n.Name }

func (n *Call) Evaluate(ctx Context) (Value, error) {
	args, err := n.Args.evaluateItems(ctx)
	if err != nil {
		return Value{}, err
	}
	return ctx.Call(n.Loc, n.Name, args)
}

// CommandList is an ordered sequence of nodes. It is both the top-level
// program and the argument list of a call; evaluating it yields a list value
// with one item per node.
type CommandList struct {
	Items []Node
	Loc   Location
}

// NewCommandList creates an empty list anchored at loc.
func NewCommandList(loc Location) *CommandList {
	return &CommandList{Loc: loc}
}

// Append adds n to the end of the list.
func (n *CommandList) Append(item Node) {
	n.Items = append(n.Items, item)
}

// Len returns the number of items.
func (n *CommandList) Len() int { return len(n.Items) }

func (n *CommandList) Location() Location { return n.Loc }
func (n *CommandList) Children() []Node   { return n.Items }
func (n *CommandList) String() string     { return "CommandList" }

func (n *CommandList) Evaluate(ctx Context) (Value, error) {
	items, err := n.evaluateItems(ctx)
	if err != nil {
		return Value{}, err
	}
	return ListValue(items, n.Loc), nil
}

// evaluateItems evaluates every item in order and stops at the first error.
func (n *CommandList) evaluateItems(ctx Context) ([]Value, error) {
	values := make([]Value, 0, len(n.Items))
	for _, item := range n.Items {
		v, err := item.Evaluate(ctx)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// UnknownOperatorError reports a node carrying an operator the evaluator
// does not know. The parser never produces one.
type UnknownOperatorError struct {
	Op  string
	Loc Location
}

// Error implements the error interface.
func (e *UnknownOperatorError) Error() string {
	return "unknown operator " + e.Op + " at " + e.Loc.String()
}

// Dump renders the tree rooted at root, one node per line, indented by depth.
func Dump(root Node) string {
	var sb strings.Builder
	Walk(root, func(n Node, depth int) bool {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(n.String())
		if loc := n.Location(); loc.IsValid() {
			sb.WriteString(" @")
			sb.WriteString(loc.String())
		}
		sb.WriteString("\n")
		return true
	})
	return sb.String()
}
