package parser

import (
	"fmt"

	"github.com/LucaGuffanti/abstract-interpreter/ast"
)

// SyntaxError reports a parse failure with the offending line, matching
// spec.md §6's exit-code-2 "AST malformed" contract at the driver level
// (main.go maps any error this package returns to exit code 2).
type SyntaxError struct {
	Line    int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("parser: line %d: %s", e.Line, e.Message)
}

// Parse lexes and parses src per the grammar in SPEC_FULL.md §10, returning
// the canonical program root shape ast.NewProgram builds.
func Parse(src string) (*ast.Node, error) {
	lx := newLexer(src)
	toks, err := lx.tokens()
	if err != nil {
		return nil, &SyntaxError{Line: lx.line, Message: err.Error()}
	}
	p := &parser{toks: toks}
	return p.parseProgram()
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) cur() token { return p.toks[p.pos] }

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errf(format string, args ...any) error {
	return &SyntaxError{Line: p.cur().line, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) expectPunct(text string) error {
	if p.cur().kind != tokPunct || p.cur().text != text {
		return p.errf("expected %q, got %q", text, p.cur().text)
	}
	p.advance()
	return nil
}

func (p *parser) expectKeyword(text string) error {
	if p.cur().kind != tokKeyword || p.cur().text != text {
		return p.errf("expected keyword %q, got %q", text, p.cur().text)
	}
	p.advance()
	return nil
}

func (p *parser) isKeyword(text string) bool {
	return p.cur().kind == tokKeyword && p.cur().text == text
}

func (p *parser) isPunct(text string) bool {
	return p.cur().kind == tokPunct && p.cur().text == text
}

// parseProgram implements: program := decls precondBlock? stmtList
func (p *parser) parseProgram() (*ast.Node, error) {
	decl, err := p.parseDecls()
	if err != nil {
		return nil, err
	}
	preconds, err := p.parsePrecondBlock()
	if err != nil {
		return nil, err
	}
	stmts, err := p.parseStmtList()
	if err != nil {
		return nil, err
	}
	if p.cur().kind != tokEOF {
		return nil, p.errf("unexpected trailing token %q", p.cur().text)
	}
	return ast.NewProgram(decl, preconds, stmts), nil
}

// decls := "int" ident ("," ident)* ";"
func (p *parser) parseDecls() (*ast.Node, error) {
	if err := p.expectKeyword("int"); err != nil {
		return nil, err
	}
	var names []string
	for {
		if p.cur().kind != tokIdent {
			return nil, p.errf("expected identifier in declaration, got %q", p.cur().text)
		}
		names = append(names, p.advance().text)
		if p.isPunct(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return ast.NewDeclaration(names...), nil
}

// precondBlock := ("precondition" cond ";")*
func (p *parser) parsePrecondBlock() ([]*ast.Node, error) {
	var out []*ast.Node
	for p.isKeyword("precondition") {
		p.advance()
		cond, err := p.parseCond()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(";"); err != nil {
			return nil, err
		}
		out = append(out, ast.NewPreCondition(cond))
	}
	return out, nil
}

// stmtList := stmt*
func (p *parser) parseStmtList() ([]*ast.Node, error) {
	var out []*ast.Node
	for p.stmtStarts() {
		st, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func (p *parser) stmtStarts() bool {
	if p.cur().kind == tokIdent {
		return true
	}
	return p.isKeyword("postcondition") || p.isKeyword("if") || p.isKeyword("while")
}

// stmt := assign | postcond | ifelse | while
func (p *parser) parseStmt() (*ast.Node, error) {
	switch {
	case p.isKeyword("postcondition"):
		return p.parsePostcond()
	case p.isKeyword("if"):
		return p.parseIfElse()
	case p.isKeyword("while"):
		return p.parseWhile()
	case p.cur().kind == tokIdent:
		return p.parseAssign()
	default:
		return nil, p.errf("unexpected token %q at start of statement", p.cur().text)
	}
}

// assign := ident "=" expr ";"
func (p *parser) parseAssign() (*ast.Node, error) {
	name := p.advance().text
	if err := p.expectPunct("="); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return ast.NewAssignment(name, expr), nil
}

// postcond := "postcondition" cond ";"
func (p *parser) parsePostcond() (*ast.Node, error) {
	p.advance()
	cond, err := p.parseCond()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	return ast.NewPostCondition(cond), nil
}

// ifelse := "if" "(" cond ")" block ("else" block)?
func (p *parser) parseIfElse() (*ast.Node, error) {
	p.advance()
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	cond, err := p.parseCond()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	thenBody, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var elseBody *ast.Node
	if p.isKeyword("else") {
		p.advance()
		elseBody, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIfElse(cond, thenBody, elseBody), nil
}

// while := "while" "(" cond ")" block
func (p *parser) parseWhile() (*ast.Node, error) {
	p.advance()
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	cond, err := p.parseCond()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(cond, body), nil
}

// block := "{" stmtList "}"
func (p *parser) parseBlock() (*ast.Node, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	stmts, err := p.parseStmtList()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	return ast.NewSequence(stmts...), nil
}

var relops = map[string]ast.Operator{
	"<=": ast.Leq, ">=": ast.Geq, "==": ast.Eq, "!=": ast.Neq, "<": ast.Lt, ">": ast.Gt,
}

// cond := ident relop expr | expr relop ident
func (p *parser) parseCond() (*ast.Node, error) {
	left, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur().kind != tokPunct {
		return nil, p.errf("expected relational operator, got %q", p.cur().text)
	}
	op, ok := relops[p.cur().text]
	if !ok {
		return nil, p.errf("expected relational operator, got %q", p.cur().text)
	}
	p.advance()
	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.NewLogic(op, left, right), nil
}

// expr := term (("+" | "-") term)*
func (p *parser) parseExpr() (*ast.Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.isPunct("+") || p.isPunct("-") {
		op := ast.Add
		if p.isPunct("-") {
			op = ast.Sub
		}
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = ast.NewArith(op, left, right)
	}
	return left, nil
}

// term := factor (("*" | "/") factor)*
func (p *parser) parseTerm() (*ast.Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.isPunct("*") || p.isPunct("/") {
		op := ast.Mul
		if p.isPunct("/") {
			op = ast.Div
		}
		p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = ast.NewArith(op, left, right)
	}
	return left, nil
}

// factor := ident | integer | "(" expr ")"
func (p *parser) parseFactor() (*ast.Node, error) {
	switch {
	case p.cur().kind == tokIdent:
		return ast.NewVariable(p.advance().text), nil
	case p.cur().kind == tokInt:
		return ast.NewInteger(p.advance().val), nil
	case p.isPunct("("):
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, p.errf("expected identifier, integer, or '(', got %q", p.cur().text)
	}
}
