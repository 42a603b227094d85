package equation

import (
	"github.com/LucaGuffanti/abstract-interpreter/ast"
	"github.com/LucaGuffanti/abstract-interpreter/interval"
	"github.com/LucaGuffanti/abstract-interpreter/location"
	"github.com/LucaGuffanti/abstract-interpreter/store"
)

// Build lowers prog into an ordered Location sequence plus the inter-
// Location wiring, per spec.md §4.4's numbered algorithm. Program root
// shape: a 2-child Sequence[Declaration, Sequence(leading PreConditions,
// then statements)], per spec.md §6.
func Build(prog *ast.Node) (*System, error) {
	if prog == nil {
		return nil, errf("nil program")
	}
	if prog.Kind != ast.Sequence {
		return nil, errf("program root must be a Sequence, got %s", prog.Kind)
	}
	if err := prog.MustHaveChildren(2); err != nil {
		return nil, errf("program root: %v", err)
	}
	declNode, bodyNode := prog.Children[0], prog.Children[1]
	if declNode.Kind != ast.Declaration {
		return nil, errf("expected Declaration as first program child, got %s", declNode.Kind)
	}
	if bodyNode.Kind != ast.Sequence {
		return nil, errf("expected Sequence as second program child, got %s", bodyNode.Kind)
	}

	b := &builder{vars: map[string]bool{}, q: NewQueues()}

	s := store.New()
	for _, v := range declNode.Children {
		if v.Kind != ast.Variable {
			return nil, errf("declaration child must be a Variable, got %s", v.Kind)
		}
		b.vars[v.Name] = true
		s = s.Set(v.Name, interval.Top())
	}

	idx := 0
	for idx < len(bodyNode.Children) && bodyNode.Children[idx].Kind == ast.PreCondition {
		pc := bodyNode.Children[idx]
		if err := pc.MustHaveChildren(1); err != nil {
			return nil, errf("precondition: %v", err)
		}
		varName, op, rhs, cerr := b.extractCond(pc.Children[0])
		if cerr != nil {
			return nil, cerr
		}
		s = EvalCond(varName, op, rhs, s, nil)
		idx++
	}

	if err := b.buildStmts(bodyNode.Children[idx:]); err != nil {
		return nil, err
	}

	return &System{Locations: b.locs, Queues: b.q, Initial: s}, nil
}

type builder struct {
	vars map[string]bool
	locs []location.Location
	q    *Queues
}

func (b *builder) buildStmts(stmts []*ast.Node) error {
	for _, st := range stmts {
		if err := b.buildStmt(st); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) buildStmt(st *ast.Node) error {
	switch st.Kind {
	case ast.Assignment:
		return b.buildAssignment(st)
	case ast.PostCondition:
		return b.buildPostcondition(st)
	case ast.IfElse:
		return b.buildIfElse(st)
	case ast.WhileLoop:
		return b.buildWhile(st)
	default:
		return errf("unsupported statement node kind %s", st.Kind)
	}
}

func (b *builder) buildAssignment(st *ast.Node) error {
	if err := st.MustHaveChildren(2); err != nil {
		return errf("assignment: %v", err)
	}
	lhs, rhs := st.Children[0], st.Children[1]
	if lhs.Kind != ast.Variable {
		return errf("assignment left-hand side must be a Variable, got %s", lhs.Kind)
	}
	if !b.vars[lhs.Name] {
		return errf("assignment to undeclared variable %q", lhs.Name)
	}
	if err := b.checkVars(rhs); err != nil {
		return err
	}
	b.locs = append(b.locs, location.Location{
		Kind:  location.Assignment,
		Label: lhs.Name,
		Var:   lhs.Name,
		Expr:  rhs,
	})
	return nil
}

func (b *builder) buildPostcondition(st *ast.Node) error {
	if err := st.MustHaveChildren(1); err != nil {
		return errf("postcondition: %v", err)
	}
	assertion := st.Children[0]
	if assertion.Kind != ast.LogicOp {
		return errf("postcondition must wrap a LogicOp, got %s", assertion.Kind)
	}
	if err := b.checkVars(assertion); err != nil {
		return err
	}
	b.locs = append(b.locs, location.Location{
		Kind:      location.Postcondition,
		Label:     assertion.String(),
		Assertion: assertion,
	})
	return nil
}

func (b *builder) buildIfElse(st *ast.Node) error {
	if len(st.Children) != 2 && len(st.Children) != 3 {
		return errf("if/else must have 2 or 3 children, got %d", len(st.Children))
	}
	cond := st.Children[0]
	if cond.Kind != ast.LogicOp {
		return errf("if/else condition must be a LogicOp, got %s", cond.Kind)
	}
	thenBody := st.Children[1]
	if thenBody.Kind != ast.Sequence {
		return errf("if/else then-body must be a Sequence, got %s", thenBody.Kind)
	}
	hasElse := len(st.Children) == 3
	var elseBody *ast.Node
	if hasElse {
		elseBody = st.Children[2]
		if elseBody.Kind != ast.Sequence {
			return errf("if/else else-body must be a Sequence, got %s", elseBody.Kind)
		}
	}
	if err := b.checkVars(cond); err != nil {
		return err
	}
	condVar, condOp, condRHS, cerr := b.extractCond(cond)
	if cerr != nil {
		return cerr
	}

	headIdx := len(b.locs)
	b.locs = append(b.locs, location.Location{
		Kind:    location.IfElseHead,
		Label:   cond.String(),
		Cond:    cond,
		HasElse: hasElse,
		CondVar: condVar,
		CondOp:  condOp,
		CondRHS: condRHS,
	})

	beforeThen := len(b.locs)
	if err := b.buildStmts(thenBody.Children); err != nil {
		return err
	}
	if len(b.locs) == beforeThen {
		b.locs[headIdx].EmptyIfBody = true
	} else {
		b.locs[beforeThen].StartsIfBody = true
		b.locs[len(b.locs)-1].EndsIfBody = true
	}

	if hasElse {
		beforeElse := len(b.locs)
		if err := b.buildStmts(elseBody.Children); err != nil {
			return err
		}
		if len(b.locs) == beforeElse {
			b.locs[headIdx].EmptyElseBody = true
		} else {
			b.locs[beforeElse].StartsElseBody = true
			b.locs[len(b.locs)-1].EndsElseBody = true
		}
	} else {
		// No textual else: spec.md §9 has EndIf seed S_afterElse from the
		// head's own complement-restricted store, which is exactly what
		// EmptyElseBody signals to Apply.
		b.locs[headIdx].EmptyElseBody = true
	}

	b.locs = append(b.locs, location.Location{
		Kind:  location.EndIf,
		Label: cond.String(),
	})
	return nil
}

func (b *builder) buildWhile(st *ast.Node) error {
	if err := st.MustHaveChildren(2); err != nil {
		return errf("while: %v", err)
	}
	cond, body := st.Children[0], st.Children[1]
	if cond.Kind != ast.LogicOp {
		return errf("while condition must be a LogicOp, got %s", cond.Kind)
	}
	if body.Kind != ast.Sequence {
		return errf("while body must be a Sequence, got %s", body.Kind)
	}
	if err := b.checkVars(cond); err != nil {
		return err
	}
	condVar, condOp, condRHS, cerr := b.extractCond(cond)
	if cerr != nil {
		return cerr
	}

	headIdx := len(b.locs)
	b.locs = append(b.locs, location.Location{
		Kind:    location.WhileHead,
		Label:   cond.String(),
		Cond:    cond,
		CondVar: condVar,
		CondOp:  condOp,
		CondRHS: condRHS,
	})

	beforeBody := len(b.locs)
	if err := b.buildStmts(body.Children); err != nil {
		return err
	}
	if len(b.locs) == beforeBody {
		b.locs[headIdx].EmptyBody = true
	} else {
		b.locs[beforeBody].StartsWhileBody = true
		b.locs[len(b.locs)-1].EndsWhileBody = true
	}

	b.locs = append(b.locs, location.Location{
		Kind:  location.EndWhile,
		Label: cond.String(),
	})
	return nil
}

// extractCond pulls (variable, operator, constant-rhs) out of a LogicOp
// node, accepting either "ident relop expr" or "expr relop ident" per the
// grammar in SPEC_FULL.md §10, mirroring the operator in the latter case.
// Both the variable-must-exist and constant-side-must-have-no-variables
// constraints of spec.md §4.3 are enforced here.
func (b *builder) extractCond(node *ast.Node) (string, ast.Operator, *ast.Node, *BuildError) {
	if node.Kind != ast.LogicOp {
		return "", 0, nil, errf("condition must be a LogicOp, got %s", node.Kind)
	}
	if err := node.MustHaveChildren(2); err != nil {
		return "", 0, nil, errf("condition: %v", err)
	}
	left, right := node.Children[0], node.Children[1]
	switch {
	case left.Kind == ast.Variable && isConstExpr(right):
		if !b.vars[left.Name] {
			return "", 0, nil, errf("condition references undeclared variable %q", left.Name)
		}
		return left.Name, node.Op, right, nil
	case right.Kind == ast.Variable && isConstExpr(left):
		if !b.vars[right.Name] {
			return "", 0, nil, errf("condition references undeclared variable %q", right.Name)
		}
		return right.Name, mirrorOp(node.Op), left, nil
	default:
		return "", 0, nil, errf("condition %s must have exactly one variable side and one constant-valued side", node)
	}
}

func isConstExpr(n *ast.Node) bool {
	switch n.Kind {
	case ast.Integer:
		return true
	case ast.ArithOp:
		return len(n.Children) == 2 && isConstExpr(n.Children[0]) && isConstExpr(n.Children[1])
	default:
		return false
	}
}

// mirrorOp flips a relational operator to the other side: "5 > x" becomes
// "x < 5". Eq and Neq are symmetric under mirroring.
func mirrorOp(op ast.Operator) ast.Operator {
	switch op {
	case ast.Leq:
		return ast.Geq
	case ast.Geq:
		return ast.Leq
	case ast.Lt:
		return ast.Gt
	case ast.Gt:
		return ast.Lt
	default:
		return op
	}
}

// checkVars verifies every Variable leaf in an expression subtree refers
// to a declared variable.
func (b *builder) checkVars(n *ast.Node) error {
	switch n.Kind {
	case ast.Variable:
		if !b.vars[n.Name] {
			return errf("reference to undeclared variable %q", n.Name)
		}
	case ast.ArithOp, ast.LogicOp:
		if err := n.MustHaveChildren(2); err != nil {
			return errf("%s: %v", n.Kind, err)
		}
		for _, c := range n.Children {
			if err := b.checkVars(c); err != nil {
				return err
			}
		}
	case ast.Integer:
		// no references
	default:
		return errf("unexpected node kind %s inside expression", n.Kind)
	}
	return nil
}
