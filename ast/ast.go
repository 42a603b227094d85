// Package ast declares the read-only AST contract the interpreter core
// consumes. It mirrors the node shapes a front end (lexer/parser) is
// expected to produce; the core never constructs a Node except in tests
// and the reference parser in package "parser".
package ast

import (
	"fmt"
	"strings"
)

// Kind tags the syntactic category of a Node.
type Kind int

const (
	Declaration Kind = iota
	Sequence
	PreCondition
	PostCondition
	Assignment
	IfElse
	WhileLoop
	Variable
	Integer
	ArithOp
	LogicOp
)

func (k Kind) String() string {
	switch k {
	case Declaration:
		return "Declaration"
	case Sequence:
		return "Sequence"
	case PreCondition:
		return "PreCondition"
	case PostCondition:
		return "PostCondition"
	case Assignment:
		return "Assignment"
	case IfElse:
		return "IfElse"
	case WhileLoop:
		return "WhileLoop"
	case Variable:
		return "Variable"
	case Integer:
		return "Integer"
	case ArithOp:
		return "ArithOp"
	case LogicOp:
		return "LogicOp"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Operator tags the concrete operation carried by an ArithOp or LogicOp node.
type Operator int

const (
	Add Operator = iota
	Sub
	Mul
	Div

	Leq
	Lt
	Geq
	Gt
	Eq
	Neq
)

func (o Operator) String() string {
	switch o {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Leq:
		return "<="
	case Lt:
		return "<"
	case Geq:
		return ">="
	case Gt:
		return ">"
	case Eq:
		return "=="
	case Neq:
		return "!="
	default:
		return fmt.Sprintf("Operator(%d)", int(o))
	}
}

// IsLogic reports whether the operator belongs to a LogicOp node.
func (o Operator) IsLogic() bool {
	return o >= Leq && o <= Neq
}

// Complement returns the complementary relational operator, per the table
// ≤↔>, ≥↔<, =↔≠. Panics if o is not a logic operator.
func (o Operator) Complement() Operator {
	switch o {
	case Leq:
		return Gt
	case Gt:
		return Leq
	case Geq:
		return Lt
	case Lt:
		return Geq
	case Eq:
		return Neq
	case Neq:
		return Eq
	default:
		panic(fmt.Sprintf("ast: %s is not a logic operator", o))
	}
}

// Node is a tagged tree node. Only the fields relevant to Kind are
// meaningful; the rest are zero. Children is read-only once built.
type Node struct {
	Kind Kind

	// Literal carries a Variable's name, an Integer's value, or an
	// ArithOp/LogicOp's operator. At most one is meaningful per Kind.
	Name  string
	Int64 int64
	Op    Operator

	Children []*Node
}

// IsLeaf reports whether the node has no children (Variable, Integer).
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// MustHaveChildren returns an error unless the node has exactly n children.
func (n *Node) MustHaveChildren(want int) error {
	if len(n.Children) != want {
		return fmt.Errorf("ast: %s node has %d children, want %d", n.Kind, len(n.Children), want)
	}
	return nil
}

func (n *Node) String() string {
	switch n.Kind {
	case Variable:
		return n.Name
	case Integer:
		return fmt.Sprintf("%d", n.Int64)
	case ArithOp, LogicOp:
		if len(n.Children) == 2 {
			return fmt.Sprintf("(%s %s %s)", n.Children[0], n.Op, n.Children[1])
		}
	}
	parts := make([]string, len(n.Children))
	for i, c := range n.Children {
		parts[i] = c.String()
	}
	return fmt.Sprintf("%s[%s]", n.Kind, strings.Join(parts, ", "))
}

// Constructors. These exist so tests and the reference parser build trees
// without poking at field names directly.

func NewInteger(v int64) *Node { return &Node{Kind: Integer, Int64: v} }

func NewVariable(name string) *Node { return &Node{Kind: Variable, Name: name} }

func NewArith(op Operator, l, r *Node) *Node {
	return &Node{Kind: ArithOp, Op: op, Children: []*Node{l, r}}
}

func NewLogic(op Operator, l, r *Node) *Node {
	return &Node{Kind: LogicOp, Op: op, Children: []*Node{l, r}}
}

func NewAssignment(name string, expr *Node) *Node {
	return &Node{Kind: Assignment, Children: []*Node{NewVariable(name), expr}}
}

func NewDeclaration(names ...string) *Node {
	children := make([]*Node, len(names))
	for i, name := range names {
		children[i] = NewVariable(name)
	}
	return &Node{Kind: Declaration, Children: children}
}

func NewPreCondition(conds ...*Node) *Node {
	return &Node{Kind: PreCondition, Children: conds}
}

func NewPostCondition(cond *Node) *Node {
	return &Node{Kind: PostCondition, Children: []*Node{cond}}
}

func NewIfElse(cond, thenBody *Node, elseBody *Node) *Node {
	children := []*Node{cond, thenBody}
	if elseBody != nil {
		children = append(children, elseBody)
	}
	return &Node{Kind: IfElse, Children: children}
}

func NewWhile(cond, body *Node) *Node {
	return &Node{Kind: WhileLoop, Children: []*Node{cond, body}}
}

func NewSequence(stmts ...*Node) *Node {
	return &Node{Kind: Sequence, Children: stmts}
}

// NewProgram assembles the canonical root shape spec.md §6 describes: one
// Declaration followed by a Sequence whose leading children are
// PreCondition nodes and whose remainder are statements.
func NewProgram(decl *Node, preconds []*Node, stmts []*Node) *Node {
	body := make([]*Node, 0, len(preconds)+len(stmts))
	body = append(body, preconds...)
	body = append(body, stmts...)
	return &Node{Kind: Sequence, Children: append([]*Node{decl}, &Node{Kind: Sequence, Children: body})}
}
