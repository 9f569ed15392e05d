// Package parser builds the syntax tree consumed by the lint rules. It is a
// Pratt parser over the full token stream; parse errors are collected rather
// than aborting so a file with one bad construct still yields issues for the
// rest.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jslang/jslin/internal/ast"
	"github.com/jslang/jslin/internal/lexer"
)

// ParseError is one syntax error with its source position.
type ParseError struct {
	Pos     ast.Position
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Operator precedence levels, lowest first.
const (
	_ int = iota
	lowest
	sequence    // ,
	assignment  // = += ...
	conditional // ?:
	coalesce    // ??
	logicalOr   // ||
	logicalAnd  // &&
	bitOr       // |
	bitXor      // ^
	bitAnd      // &
	equality    // == != === !==
	relational  // < > <= >= in instanceof
	shift       // << >> >>>
	additive    // + -
	multiplicative
	exponent // **
	unary    // prefix - + ! ~ typeof void delete
	postfix  // ++ --
	member   // . ?. [ ] ( )
)

var precedences = map[lexer.TokenType]int{
	lexer.COMMA:           sequence,
	lexer.ASSIGN:          assignment,
	lexer.PLUS_ASSIGN:     assignment,
	lexer.MINUS_ASSIGN:    assignment,
	lexer.ASTERISK_ASSIGN: assignment,
	lexer.SLASH_ASSIGN:    assignment,
	lexer.PERCENT_ASSIGN:  assignment,
	lexer.POWER_ASSIGN:    assignment,
	lexer.AND_ASSIGN:      assignment,
	lexer.OR_ASSIGN:       assignment,
	lexer.COALESCE_ASSIGN: assignment,
	lexer.LSHIFT_ASSIGN:   assignment,
	lexer.RSHIFT_ASSIGN:   assignment,
	lexer.URSHIFT_ASSIGN:  assignment,
	lexer.BITAND_ASSIGN:   assignment,
	lexer.BITOR_ASSIGN:    assignment,
	lexer.BITXOR_ASSIGN:   assignment,
	lexer.QUESTION:        conditional,
	lexer.COALESCE:        coalesce,
	lexer.LOGICAL_OR:      logicalOr,
	lexer.LOGICAL_AND:     logicalAnd,
	lexer.PIPE:            bitOr,
	lexer.CARET:           bitXor,
	lexer.AMPERSAND:       bitAnd,
	lexer.EQ:              equality,
	lexer.NOT_EQ:          equality,
	lexer.STRICT_EQ:       equality,
	lexer.STRICT_NOT_EQ:   equality,
	lexer.LT:              relational,
	lexer.GT:              relational,
	lexer.LE:              relational,
	lexer.GE:              relational,
	lexer.IN:              relational,
	lexer.INSTANCEOF:      relational,
	lexer.LSHIFT:          shift,
	lexer.RSHIFT:          shift,
	lexer.URSHIFT:         shift,
	lexer.PLUS:            additive,
	lexer.MINUS:           additive,
	lexer.ASTERISK:        multiplicative,
	lexer.SLASH:           multiplicative,
	lexer.PERCENT:         multiplicative,
	lexer.POWER:           exponent,
	lexer.INC:             postfix,
	lexer.DEC:             postfix,
	lexer.DOT:             member,
	lexer.OPTIONAL:        member,
	lexer.LBRACKET:        member,
	lexer.LPAREN:          member,
	lexer.ARROW:           assignment,
}

var assignOps = map[lexer.TokenType]bool{
	lexer.ASSIGN: true, lexer.PLUS_ASSIGN: true, lexer.MINUS_ASSIGN: true,
	lexer.ASTERISK_ASSIGN: true, lexer.SLASH_ASSIGN: true,
	lexer.PERCENT_ASSIGN: true, lexer.POWER_ASSIGN: true,
	lexer.AND_ASSIGN: true, lexer.OR_ASSIGN: true, lexer.COALESCE_ASSIGN: true,
	lexer.LSHIFT_ASSIGN: true, lexer.RSHIFT_ASSIGN: true,
	lexer.URSHIFT_ASSIGN: true, lexer.BITAND_ASSIGN: true, lexer.BITOR_ASSIGN: true, lexer.BITXOR_ASSIGN: true,
}

// Parser parses one source buffer. Tokens are scanned up front so the parser
// can look arbitrarily far ahead (needed for arrow function detection).
type Parser struct {
	src    string
	tokens []lexer.Token
	pos    int
	errors []ParseError

	comments []lexer.Comment
}

// New tokenizes src and returns a parser positioned at the first token.
func New(src string) *Parser {
	l := lexer.New(src)
	var tokens []lexer.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == lexer.EOF {
			break
		}
	}
	return &Parser{src: src, tokens: tokens, comments: l.Comments}
}

// Parse is a convenience wrapper returning a program and the first error.
func Parse(src string) (*ast.Program, error) {
	p := New(src)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return prog, errs[0]
	}
	return prog, nil
}

// ParseExpression parses src as a single expression.
func ParseExpression(src string) (ast.Expr, error) {
	p := New(src)
	expr := p.parseExpression(lowest)
	if errs := p.Errors(); len(errs) > 0 {
		return expr, errs[0]
	}
	if expr == nil {
		return nil, ParseError{Message: "empty expression"}
	}
	return expr, nil
}

// Errors returns all syntax errors found so far.
func (p *Parser) Errors() []ParseError { return p.errors }

// Comments returns the comments collected during scanning.
func (p *Parser) Comments() []lexer.Comment { return p.comments }

func (p *Parser) cur() lexer.Token  { return p.tokens[p.pos] }
func (p *Parser) peek() lexer.Token { return p.tokens[min(p.pos+1, len(p.tokens)-1)] }

func (p *Parser) at(tt lexer.TokenType) bool { return p.cur().Type == tt }

func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	if p.cur().Type != tt {
		p.errorf("expected %q, found %q", tt, p.cur().Literal)
		return p.cur()
	}
	return p.advance()
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, ParseError{
		Pos:     p.cur().Pos,
		Message: fmt.Sprintf(format, args...),
	})
}

func (p *Parser) spanFrom(start ast.Position) ast.Span {
	end := start
	if p.pos > 0 {
		end = p.tokens[p.pos-1].End
	}
	return ast.Span{Start: start, End: end}
}

// raw returns the source text between two offsets.
func (p *Parser) raw(tok lexer.Token) string {
	if tok.Pos.Offset >= 0 && tok.End.Offset <= len(p.src) {
		return p.src[tok.Pos.Offset:tok.End.Offset]
	}
	return tok.Literal
}

// ParseProgram parses the whole buffer as a script.
func (p *Parser) ParseProgram() *ast.Program {
	start := p.cur().Pos
	prog := &ast.Program{}
	for !p.at(lexer.EOF) {
		before := p.pos
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Body = append(prog.Body, stmt)
		}
		if p.pos == before {
			// could not make progress; skip the offending token
			p.errorf("unexpected token %q", p.cur().Literal)
			p.advance()
		}
	}
	prog.Span = p.spanFrom(start)
	return prog
}

// --- Statements ---

func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur().Type {
	case lexer.VAR, lexer.LET, lexer.CONST:
		return p.parseVariableDeclaration()
	case lexer.FUNCTION:
		return p.parseFunctionDeclaration()
	case lexer.CLASS:
		return p.parseClassDeclaration()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.DO:
		return p.parseDoWhileStatement()
	case lexer.FOR:
		return p.parseForStatement()
	case lexer.THROW:
		return p.parseThrowStatement()
	case lexer.BREAK:
		start := p.advance().Pos
		p.eatSemicolon()
		return &ast.BreakStatement{Span: p.spanFrom(start)}
	case lexer.CONTINUE:
		start := p.advance().Pos
		p.eatSemicolon()
		return &ast.ContinueStatement{Span: p.spanFrom(start)}
	case lexer.LBRACE:
		return p.parseBlockStatement()
	case lexer.SEMICOLON:
		start := p.advance().Pos
		return &ast.EmptyStatement{Span: p.spanFrom(start)}
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) eatSemicolon() {
	if p.at(lexer.SEMICOLON) {
		p.advance()
	}
}

func (p *Parser) parseExpressionStatement() ast.Stmt {
	start := p.cur().Pos
	expr := p.parseExpression(lowest)
	p.eatSemicolon()
	if expr == nil {
		return nil
	}
	return &ast.ExpressionStatement{Span: p.spanFrom(start), Expression: expr}
}

func (p *Parser) parseVariableDeclaration() *ast.VariableDeclaration {
	start := p.cur().Pos
	kind := strings.ToLower(string(p.advance().Type))
	decl := &ast.VariableDeclaration{Kind: kind}
	for {
		dStart := p.cur().Pos
		id := p.parseBindingTarget()
		d := &ast.VariableDeclarator{ID: id}
		if p.at(lexer.ASSIGN) {
			p.advance()
			d.Init = p.parseExpression(sequence)
		}
		d.Span = p.spanFrom(dStart)
		decl.Declarators = append(decl.Declarators, d)
		if !p.at(lexer.COMMA) {
			break
		}
		p.advance()
	}
	p.eatSemicolon()
	decl.Span = p.spanFrom(start)
	return decl
}

// parseBindingTarget parses a declaration target: a plain name or a
// destructuring pattern (kept as array/object expression nodes).
func (p *Parser) parseBindingTarget() ast.Expr {
	switch p.cur().Type {
	case lexer.LBRACKET:
		return p.parseArrayExpression()
	case lexer.LBRACE:
		return p.parseObjectExpression()
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parseFunctionDeclaration() ast.Stmt {
	start := p.expect(lexer.FUNCTION).Pos
	if p.at(lexer.ASTERISK) {
		p.advance() // generator marker, not tracked
	}
	name := p.parseIdentifierName()
	params := p.parseParams()
	body := p.parseBlockStatement().(*ast.BlockStatement)
	return &ast.FunctionDeclaration{
		Span: p.spanFrom(start), Name: name, Params: params, Body: body,
	}
}

func (p *Parser) parseClassDeclaration() ast.Stmt {
	start := p.expect(lexer.CLASS).Pos
	name := p.parseIdentifierName()
	var super ast.Expr
	if p.at(lexer.EXTENDS) {
		p.advance()
		super = p.parseExpression(postfix)
	}
	body := p.parseClassBody()
	return &ast.ClassDeclaration{
		Span: p.spanFrom(start), Name: name, SuperClass: super, Body: body,
	}
}

func (p *Parser) parseClassBody() []*ast.MethodDefinition {
	p.expect(lexer.LBRACE)
	var methods []*ast.MethodDefinition
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		if p.at(lexer.SEMICOLON) {
			p.advance()
			continue
		}
		before := p.pos
		if m := p.parseMethodDefinition(); m != nil {
			methods = append(methods, m)
		}
		if p.pos == before {
			p.errorf("unexpected token %q in class body", p.cur().Literal)
			p.advance()
		}
	}
	p.expect(lexer.RBRACE)
	return methods
}

func (p *Parser) parseMethodDefinition() *ast.MethodDefinition {
	start := p.cur().Pos
	m := &ast.MethodDefinition{Kind: "method"}

	if p.at(lexer.STATIC) && p.peek().Type != lexer.LPAREN && p.peek().Type != lexer.ASSIGN {
		p.advance()
		m.Static = true
	}
	if (p.at(lexer.GET) || p.at(lexer.SET)) &&
		p.peek().Type != lexer.LPAREN && p.peek().Type != lexer.ASSIGN {
		if p.at(lexer.GET) {
			m.Kind = "get"
		} else {
			m.Kind = "set"
		}
		p.advance()
	}
	if p.at(lexer.ASTERISK) {
		p.advance()
	}

	m.Key, m.Computed = p.parsePropertyKey()
	if id, ok := m.Key.(*ast.Identifier); ok && !m.Computed &&
		id.Name == "constructor" && m.Kind == "method" {
		m.Kind = "constructor"
	}

	if p.at(lexer.ASSIGN) || p.at(lexer.SEMICOLON) || p.at(lexer.RBRACE) {
		// class field; represent it as a method definition without a body
		if p.at(lexer.ASSIGN) {
			p.advance()
			p.parseExpression(sequence)
		}
		p.eatSemicolon()
		m.Span = p.spanFrom(start)
		return m
	}

	fStart := p.cur().Pos
	params := p.parseParams()
	body := p.parseBlockStatement().(*ast.BlockStatement)
	m.Value = &ast.FunctionExpression{
		Span: p.spanFrom(fStart), Params: params, Body: body,
	}
	m.Span = p.spanFrom(start)
	return m
}

// parsePropertyKey parses an object or class member key and reports whether
// it was written in computed form.
func (p *Parser) parsePropertyKey() (ast.Expr, bool) {
	tok := p.cur()
	switch {
	case tok.Type == lexer.LBRACKET:
		p.advance()
		key := p.parseExpression(sequence)
		p.expect(lexer.RBRACKET)
		return key, true
	case tok.Type == lexer.STRING:
		p.advance()
		return &ast.Literal{
			Span:  ast.Span{Start: tok.Pos, End: tok.End},
			Value: tok.Literal, Raw: p.raw(tok),
		}, false
	case tok.Type == lexer.NUMBER:
		p.advance()
		return p.numberLiteral(tok), false
	case tok.Type == lexer.IDENT || lexer.IsKeyword(tok.Type):
		p.advance()
		return &ast.Identifier{
			Span: ast.Span{Start: tok.Pos, End: tok.End}, Name: tok.Literal,
		}, false
	default:
		p.errorf("invalid property key %q", tok.Literal)
		p.advance()
		return nil, false
	}
}

func (p *Parser) parseReturnStatement() ast.Stmt {
	start := p.expect(lexer.RETURN).Pos
	ret := &ast.ReturnStatement{}
	if !p.at(lexer.SEMICOLON) && !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		ret.Argument = p.parseExpression(lowest)
	}
	p.eatSemicolon()
	ret.Span = p.spanFrom(start)
	return ret
}

func (p *Parser) parseThrowStatement() ast.Stmt {
	start := p.expect(lexer.THROW).Pos
	arg := p.parseExpression(lowest)
	p.eatSemicolon()
	return &ast.ThrowStatement{Span: p.spanFrom(start), Argument: arg}
}

func (p *Parser) parseIfStatement() ast.Stmt {
	start := p.expect(lexer.IF).Pos
	p.expect(lexer.LPAREN)
	test := p.parseExpression(lowest)
	p.expect(lexer.RPAREN)
	cons := p.parseStatement()
	stmt := &ast.IfStatement{Test: test, Consequent: cons}
	if p.at(lexer.ELSE) {
		p.advance()
		stmt.Alternate = p.parseStatement()
	}
	stmt.Span = p.spanFrom(start)
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Stmt {
	start := p.expect(lexer.WHILE).Pos
	p.expect(lexer.LPAREN)
	test := p.parseExpression(lowest)
	p.expect(lexer.RPAREN)
	body := p.parseStatement()
	return &ast.WhileStatement{Span: p.spanFrom(start), Test: test, Body: body}
}

func (p *Parser) parseDoWhileStatement() ast.Stmt {
	start := p.expect(lexer.DO).Pos
	body := p.parseStatement()
	p.expect(lexer.WHILE)
	p.expect(lexer.LPAREN)
	test := p.parseExpression(lowest)
	p.expect(lexer.RPAREN)
	p.eatSemicolon()
	return &ast.DoWhileStatement{Span: p.spanFrom(start), Body: body, Test: test}
}

func (p *Parser) parseForStatement() ast.Stmt {
	start := p.expect(lexer.FOR).Pos
	p.expect(lexer.LPAREN)

	var init ast.Node
	switch {
	case p.at(lexer.SEMICOLON):
		// no initializer
	case p.at(lexer.VAR) || p.at(lexer.LET) || p.at(lexer.CONST):
		kindTok := p.cur()
		declStart := kindTok.Pos
		p.advance()
		idStart := p.cur().Pos
		id := p.parseBindingTarget()
		if p.at(lexer.IN) || (p.at(lexer.IDENT) && p.cur().Literal == "of") {
			of := !p.at(lexer.IN)
			p.advance()
			right := p.parseExpression(lowest)
			p.expect(lexer.RPAREN)
			body := p.parseStatement()
			left := &ast.VariableDeclaration{
				Span: p.spanFrom(declStart),
				Kind: strings.ToLower(string(kindTok.Type)),
				Declarators: []*ast.VariableDeclarator{{
					Span: p.spanFrom(idStart), ID: id,
				}},
			}
			return &ast.ForInStatement{
				Span: p.spanFrom(start), Left: left, Right: right, Body: body, Of: of,
			}
		}
		decl := &ast.VariableDeclaration{
			Kind: strings.ToLower(string(kindTok.Type)),
		}
		d := &ast.VariableDeclarator{ID: id}
		if p.at(lexer.ASSIGN) {
			p.advance()
			d.Init = p.parseExpression(sequence)
		}
		d.Span = p.spanFrom(idStart)
		decl.Declarators = append(decl.Declarators, d)
		for p.at(lexer.COMMA) {
			p.advance()
			dStart := p.cur().Pos
			dd := &ast.VariableDeclarator{ID: p.parseBindingTarget()}
			if p.at(lexer.ASSIGN) {
				p.advance()
				dd.Init = p.parseExpression(sequence)
			}
			dd.Span = p.spanFrom(dStart)
			decl.Declarators = append(decl.Declarators, dd)
		}
		decl.Span = p.spanFrom(declStart)
		init = decl
	default:
		expr := p.parseExpression(lowest)
		// `in` binds as a relational operator during normal expression
		// parsing, so `for (x in y)` arrives as a binary node
		if bin, ok := expr.(*ast.BinaryExpression); ok && bin.Operator == "in" {
			p.expect(lexer.RPAREN)
			body := p.parseStatement()
			return &ast.ForInStatement{
				Span: p.spanFrom(start), Left: bin.Left, Right: bin.Right, Body: body,
			}
		}
		if p.at(lexer.IN) || (p.at(lexer.IDENT) && p.cur().Literal == "of") {
			of := !p.at(lexer.IN)
			p.advance()
			right := p.parseExpression(lowest)
			p.expect(lexer.RPAREN)
			body := p.parseStatement()
			return &ast.ForInStatement{
				Span: p.spanFrom(start), Left: expr, Right: right, Body: body, Of: of,
			}
		}
		init = expr
	}

	p.expect(lexer.SEMICOLON)
	stmt := &ast.ForStatement{Init: init}
	if !p.at(lexer.SEMICOLON) {
		stmt.Test = p.parseExpression(lowest)
	}
	p.expect(lexer.SEMICOLON)
	if !p.at(lexer.RPAREN) {
		stmt.Update = p.parseExpression(lowest)
	}
	p.expect(lexer.RPAREN)
	stmt.Body = p.parseStatement()
	stmt.Span = p.spanFrom(start)
	return stmt
}

func (p *Parser) parseBlockStatement() ast.Stmt {
	start := p.expect(lexer.LBRACE).Pos
	block := &ast.BlockStatement{}
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		before := p.pos
		if stmt := p.parseStatement(); stmt != nil {
			block.Body = append(block.Body, stmt)
		}
		if p.pos == before {
			p.errorf("unexpected token %q", p.cur().Literal)
			p.advance()
		}
	}
	p.expect(lexer.RBRACE)
	block.Span = p.spanFrom(start)
	return block
}

// --- Expressions ---

func (p *Parser) parseExpression(prec int) ast.Expr {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}
	for {
		curPrec, ok := precedences[p.cur().Type]
		if !ok || curPrec <= prec {
			break
		}
		// leaving the member chain for a looser operator: close any
		// pending optional chain first
		if p.cur().Type != lexer.DOT && p.cur().Type != lexer.OPTIONAL &&
			p.cur().Type != lexer.LBRACKET && p.cur().Type != lexer.LPAREN {
			left = maybeWrapChain(left)
		}
		left = p.parseInfix(left)
		if left == nil {
			return nil
		}
	}
	return maybeWrapChain(left)
}

// maybeWrapChain wraps a member/call chain containing an optional link in a
// ChainExpression, mirroring the ESTree shape for `a?.b.c`.
func maybeWrapChain(expr ast.Expr) ast.Expr {
	switch expr.(type) {
	case *ast.MemberExpression, *ast.CallExpression:
		if chainHasOptional(expr) {
			return &ast.ChainExpression{
				Span:       ast.Span{Start: expr.Pos(), End: expr.EndPos()},
				Expression: expr,
			}
		}
	}
	return expr
}

func chainHasOptional(expr ast.Expr) bool {
	for {
		switch n := expr.(type) {
		case *ast.MemberExpression:
			if n.Optional {
				return true
			}
			expr = n.Object
		case *ast.CallExpression:
			if n.Optional {
				return true
			}
			expr = n.Callee
		default:
			return false
		}
	}
}

func (p *Parser) parsePrefix() ast.Expr {
	tok := p.cur()
	switch tok.Type {
	case lexer.MINUS, lexer.PLUS, lexer.BANG, lexer.TILDE,
		lexer.TYPEOF, lexer.VOID, lexer.DELETE:
		p.advance()
		op := tok.Literal
		if lexer.IsKeyword(tok.Type) {
			op = strings.ToLower(string(tok.Type))
		}
		operand := p.parseExpression(unary)
		return &ast.UnaryExpression{
			Span: p.spanFrom(tok.Pos), Operator: op, Operand: operand,
		}
	case lexer.INC, lexer.DEC:
		p.advance()
		operand := p.parseExpression(unary)
		return &ast.UpdateExpression{
			Span: p.spanFrom(tok.Pos), Operator: tok.Literal,
			Operand: operand, Prefix: true,
		}
	case lexer.NEW:
		return p.parseNewExpression()
	case lexer.FUNCTION:
		return p.parseFunctionExpression()
	case lexer.CLASS:
		return p.parseClassExpression()
	case lexer.LPAREN:
		if p.arrowAhead() {
			return p.parseArrowFunction()
		}
		p.advance()
		expr := p.parseExpression(lowest)
		p.expect(lexer.RPAREN)
		return expr
	case lexer.LBRACKET:
		return p.parseArrayExpression()
	case lexer.LBRACE:
		return p.parseObjectExpression()
	case lexer.IDENT, lexer.GET, lexer.SET, lexer.STATIC:
		if p.peek().Type == lexer.ARROW {
			return p.parseArrowFunction()
		}
		return p.parsePrimary()
	default:
		return p.parsePrimary()
	}
}

// parsePrimary handles leaf expressions: identifiers, literals, this, super.
func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur()
	span := ast.Span{Start: tok.Pos, End: tok.End}
	switch tok.Type {
	case lexer.IDENT, lexer.GET, lexer.SET, lexer.STATIC:
		p.advance()
		return &ast.Identifier{Span: span, Name: tok.Literal}
	case lexer.THIS:
		p.advance()
		return &ast.ThisExpression{Span: span}
	case lexer.SUPER:
		p.advance()
		return &ast.Super{Span: span}
	case lexer.NUMBER:
		p.advance()
		return p.numberLiteral(tok)
	case lexer.BIGINT:
		p.advance()
		return &ast.Literal{Span: span, Raw: p.raw(tok), BigInt: tok.Literal}
	case lexer.STRING:
		p.advance()
		return &ast.Literal{Span: span, Value: tok.Literal, Raw: p.raw(tok)}
	case lexer.TRUE:
		p.advance()
		return &ast.Literal{Span: span, Value: true, Raw: "true"}
	case lexer.FALSE:
		p.advance()
		return &ast.Literal{Span: span, Value: false, Raw: "false"}
	case lexer.NULL:
		p.advance()
		return &ast.Literal{Span: span, Value: nil, Raw: "null"}
	case lexer.REGEX:
		p.advance()
		return p.regexLiteral(tok)
	case lexer.TEMPLATE:
		p.advance()
		return p.templateLiteral(tok)
	default:
		p.errorf("unexpected token %q", tok.Literal)
		return nil
	}
}

func (p *Parser) numberLiteral(tok lexer.Token) *ast.Literal {
	span := ast.Span{Start: tok.Pos, End: tok.End}
	lit := tok.Literal
	var value float64
	if len(lit) > 2 && lit[0] == '0' &&
		(lit[1] == 'x' || lit[1] == 'X' || lit[1] == 'o' || lit[1] == 'O' ||
			lit[1] == 'b' || lit[1] == 'B') {
		base := 16
		switch lit[1] {
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		n, err := strconv.ParseInt(lit[2:], base, 64)
		if err != nil {
			p.errors = append(p.errors, ParseError{Pos: tok.Pos, Message: "invalid number literal"})
		}
		value = float64(n)
	} else {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			p.errors = append(p.errors, ParseError{Pos: tok.Pos, Message: "invalid number literal"})
		}
		value = f
	}
	return &ast.Literal{Span: span, Value: value, Raw: p.raw(tok)}
}

func (p *Parser) regexLiteral(tok lexer.Token) *ast.Literal {
	span := ast.Span{Start: tok.Pos, End: tok.End}
	text := tok.Literal
	last := strings.LastIndexByte(text, '/')
	pattern, flags := "", ""
	if last > 0 {
		pattern = text[1:last]
		flags = text[last+1:]
	}
	return &ast.Literal{
		Span: span, Raw: p.raw(tok),
		Regex: &ast.RegexData{Pattern: pattern, Flags: flags},
	}
}

// templateLiteral splits the raw template text into quasis and parses each
// ${...} chunk as a standalone expression.
func (p *Parser) templateLiteral(tok lexer.Token) *ast.TemplateLiteral {
	tpl := &ast.TemplateLiteral{Span: ast.Span{Start: tok.Pos, End: tok.End}}
	raw := tok.Literal
	var quasi strings.Builder
	i := 0
	for i < len(raw) {
		if raw[i] == '\\' && i+1 < len(raw) {
			quasi.WriteByte(raw[i])
			quasi.WriteByte(raw[i+1])
			i += 2
			continue
		}
		if raw[i] == '$' && i+1 < len(raw) && raw[i+1] == '{' {
			end := matchBrace(raw, i+1)
			if end < 0 {
				break
			}
			tpl.Quasis = append(tpl.Quasis, quasi.String())
			quasi.Reset()
			sub := New(raw[i+2 : end])
			expr := sub.parseExpression(lowest)
			p.errors = append(p.errors, sub.errors...)
			if expr != nil {
				tpl.Exprs = append(tpl.Exprs, expr)
			}
			i = end + 1
			continue
		}
		quasi.WriteByte(raw[i])
		i++
	}
	tpl.Quasis = append(tpl.Quasis, quasi.String())
	return tpl
}

// matchBrace returns the index of the } matching the { at open, or -1.
func matchBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func (p *Parser) parseNewExpression() ast.Expr {
	start := p.expect(lexer.NEW).Pos
	callee := p.parsePrefix()
	// member accesses bind tighter than the new call itself
	for p.at(lexer.DOT) || p.at(lexer.LBRACKET) {
		callee = p.parseMember(callee, false)
	}
	expr := &ast.NewExpression{Callee: callee}
	if p.at(lexer.LPAREN) {
		expr.Args = p.parseArguments()
	}
	expr.Span = p.spanFrom(start)
	return expr
}

func (p *Parser) parseFunctionExpression() ast.Expr {
	start := p.expect(lexer.FUNCTION).Pos
	if p.at(lexer.ASTERISK) {
		p.advance()
	}
	var name *ast.Identifier
	if p.at(lexer.IDENT) {
		name = p.parseIdentifierName()
	}
	params := p.parseParams()
	body := p.parseBlockStatement().(*ast.BlockStatement)
	return &ast.FunctionExpression{
		Span: p.spanFrom(start), Name: name, Params: params, Body: body,
	}
}

func (p *Parser) parseClassExpression() ast.Expr {
	start := p.expect(lexer.CLASS).Pos
	var name *ast.Identifier
	if p.at(lexer.IDENT) {
		name = p.parseIdentifierName()
	}
	var super ast.Expr
	if p.at(lexer.EXTENDS) {
		p.advance()
		super = p.parseExpression(postfix)
	}
	body := p.parseClassBody()
	return &ast.ClassExpression{
		Span: p.spanFrom(start), Name: name, SuperClass: super, Body: body,
	}
}

func (p *Parser) parseIdentifierName() *ast.Identifier {
	tok := p.cur()
	if tok.Type != lexer.IDENT && !lexer.IsKeyword(tok.Type) {
		p.errorf("expected identifier, found %q", tok.Literal)
		return nil
	}
	p.advance()
	return &ast.Identifier{
		Span: ast.Span{Start: tok.Pos, End: tok.End}, Name: tok.Literal,
	}
}

// arrowAhead reports whether the parenthesized group starting at the current
// ( is an arrow function parameter list.
func (p *Parser) arrowAhead() bool {
	depth := 0
	for i := p.pos; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case lexer.LPAREN:
			depth++
		case lexer.RPAREN:
			depth--
			if depth == 0 {
				return p.tokens[min(i+1, len(p.tokens)-1)].Type == lexer.ARROW
			}
		case lexer.EOF:
			return false
		}
	}
	return false
}

func (p *Parser) parseArrowFunction() ast.Expr {
	start := p.cur().Pos
	var params []ast.Expr
	if p.at(lexer.LPAREN) {
		params = p.parseParams()
	} else {
		params = []ast.Expr{p.parsePrimary()}
	}
	p.expect(lexer.ARROW)
	arrow := &ast.ArrowFunctionExpression{Params: params}
	if p.at(lexer.LBRACE) {
		arrow.Body = p.parseBlockStatement()
	} else {
		arrow.Body = p.parseExpression(sequence)
	}
	arrow.Span = p.spanFrom(start)
	return arrow
}

func (p *Parser) parseParams() []ast.Expr {
	p.expect(lexer.LPAREN)
	var params []ast.Expr
	for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
		var param ast.Expr
		if p.at(lexer.SPREAD) {
			sStart := p.advance().Pos
			param = &ast.SpreadElement{
				Span: p.spanFrom(sStart), Argument: p.parseExpression(sequence),
			}
		} else {
			param = p.parseExpression(sequence)
		}
		if param != nil {
			params = append(params, param)
		}
		if !p.at(lexer.COMMA) {
			break
		}
		p.advance()
	}
	p.expect(lexer.RPAREN)
	return params
}

func (p *Parser) parseArrayExpression() ast.Expr {
	start := p.expect(lexer.LBRACKET).Pos
	arr := &ast.ArrayExpression{}
	for !p.at(lexer.RBRACKET) && !p.at(lexer.EOF) {
		before := p.pos
		switch {
		case p.at(lexer.COMMA):
			arr.Elements = append(arr.Elements, nil) // hole
			p.advance()
			continue
		case p.at(lexer.SPREAD):
			sStart := p.advance().Pos
			arr.Elements = append(arr.Elements, &ast.SpreadElement{
				Span: p.spanFrom(sStart), Argument: p.parseExpression(sequence),
			})
		default:
			arr.Elements = append(arr.Elements, p.parseExpression(sequence))
		}
		if p.at(lexer.COMMA) {
			p.advance()
		} else if p.pos == before {
			p.errorf("unexpected token %q in array literal", p.cur().Literal)
			p.advance()
		}
	}
	p.expect(lexer.RBRACKET)
	arr.Span = p.spanFrom(start)
	return arr
}

func (p *Parser) parseObjectExpression() ast.Expr {
	start := p.expect(lexer.LBRACE).Pos
	obj := &ast.ObjectExpression{}
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		before := p.pos
		if prop := p.parseProperty(); prop != nil {
			obj.Properties = append(obj.Properties, prop)
		}
		if p.at(lexer.COMMA) {
			p.advance()
		} else if !p.at(lexer.RBRACE) {
			if p.pos == before {
				p.errorf("unexpected token %q in object literal", p.cur().Literal)
				p.advance()
			}
		}
	}
	p.expect(lexer.RBRACE)
	obj.Span = p.spanFrom(start)
	return obj
}

func (p *Parser) parseProperty() *ast.Property {
	start := p.cur().Pos
	prop := &ast.Property{Kind: "init"}

	if p.at(lexer.SPREAD) {
		p.advance()
		prop.Spread = true
		prop.Value = p.parseExpression(sequence)
		prop.Span = p.spanFrom(start)
		return prop
	}

	if (p.at(lexer.GET) || p.at(lexer.SET)) &&
		p.peek().Type != lexer.COLON && p.peek().Type != lexer.COMMA &&
		p.peek().Type != lexer.RBRACE && p.peek().Type != lexer.LPAREN {
		if p.at(lexer.GET) {
			prop.Kind = "get"
		} else {
			prop.Kind = "set"
		}
		p.advance()
	}

	prop.Key, prop.Computed = p.parsePropertyKey()
	if prop.Key == nil {
		return nil
	}

	switch {
	case prop.Kind != "init" || p.at(lexer.LPAREN):
		// accessor or shorthand method
		fStart := p.cur().Pos
		params := p.parseParams()
		body := p.parseBlockStatement().(*ast.BlockStatement)
		prop.Value = &ast.FunctionExpression{
			Span: p.spanFrom(fStart), Params: params, Body: body,
		}
	case p.at(lexer.COLON):
		p.advance()
		prop.Value = p.parseExpression(sequence)
	default:
		// shorthand { a } or { a = 1 }
		prop.Shorthand = true
		if id, ok := prop.Key.(*ast.Identifier); ok {
			prop.Value = id
		}
		if p.at(lexer.ASSIGN) {
			p.advance()
			p.parseExpression(sequence)
		}
	}
	prop.Span = p.spanFrom(start)
	return prop
}

func (p *Parser) parseInfix(left ast.Expr) ast.Expr {
	tok := p.cur()
	switch tok.Type {
	case lexer.DOT:
		return p.parseMember(left, false)
	case lexer.OPTIONAL:
		return p.parseOptional(left)
	case lexer.LBRACKET:
		return p.parseIndex(left, false)
	case lexer.LPAREN:
		start := left.Pos()
		args := p.parseArguments()
		return &ast.CallExpression{
			Span: p.spanFrom(start), Callee: left, Args: args,
		}
	case lexer.INC, lexer.DEC:
		p.advance()
		return &ast.UpdateExpression{
			Span:     ast.Span{Start: left.Pos(), End: tok.End},
			Operator: tok.Literal, Operand: left,
		}
	case lexer.QUESTION:
		p.advance()
		cons := p.parseExpression(sequence)
		p.expect(lexer.COLON)
		alt := p.parseExpression(sequence)
		return &ast.ConditionalExpression{
			Span: p.spanFrom(left.Pos()), Test: left, Consequent: cons, Alternate: alt,
		}
	case lexer.LOGICAL_AND, lexer.LOGICAL_OR, lexer.COALESCE:
		p.advance()
		right := p.parseExpression(precedences[tok.Type])
		return &ast.LogicalExpression{
			Span: p.spanFrom(left.Pos()), Operator: tok.Literal, Left: left, Right: right,
		}
	case lexer.COMMA:
		p.advance()
		right := p.parseExpression(sequence)
		if seq, ok := left.(*ast.SequenceExpression); ok {
			seq.Exprs = append(seq.Exprs, right)
			seq.Span = p.spanFrom(seq.Pos())
			return seq
		}
		return &ast.SequenceExpression{
			Span: p.spanFrom(left.Pos()), Exprs: []ast.Expr{left, right},
		}
	case lexer.ARROW:
		// reached for `x =>` handled in parsePrefix; anything else is an error
		p.errorf("unexpected token %q", tok.Literal)
		p.advance()
		return left
	}

	if assignOps[tok.Type] {
		p.advance()
		right := p.parseExpression(sequence) // right-associative, comma excluded
		return &ast.AssignmentExpression{
			Span: p.spanFrom(left.Pos()), Operator: tok.Literal, Left: left, Right: right,
		}
	}

	p.advance()
	op := tok.Literal
	if lexer.IsKeyword(tok.Type) {
		op = strings.ToLower(string(tok.Type))
	}
	prec := precedences[tok.Type]
	if tok.Type == lexer.POWER {
		prec-- // right-associative
	}
	right := p.parseExpression(prec)
	return &ast.BinaryExpression{
		Span: p.spanFrom(left.Pos()), Operator: op, Left: left, Right: right,
	}
}

func (p *Parser) parseMember(left ast.Expr, optional bool) ast.Expr {
	p.advance() // . or ?.
	tok := p.cur()
	if tok.Type != lexer.IDENT && !lexer.IsKeyword(tok.Type) {
		p.errorf("expected property name, found %q", tok.Literal)
		return left
	}
	p.advance()
	prop := &ast.Identifier{
		Span: ast.Span{Start: tok.Pos, End: tok.End}, Name: tok.Literal,
	}
	return &ast.MemberExpression{
		Span:   ast.Span{Start: left.Pos(), End: tok.End},
		Object: left, Property: prop, Optional: optional,
	}
}

func (p *Parser) parseIndex(left ast.Expr, optional bool) ast.Expr {
	p.advance() // [
	index := p.parseExpression(lowest)
	end := p.expect(lexer.RBRACKET)
	return &ast.MemberExpression{
		Span:   ast.Span{Start: left.Pos(), End: end.End},
		Object: left, Property: index, Computed: true, Optional: optional,
	}
}

// parseOptional handles the three forms after ?. : a?.b, a?.[i], a?.(x).
func (p *Parser) parseOptional(left ast.Expr) ast.Expr {
	switch p.peek().Type {
	case lexer.LBRACKET:
		p.advance() // ?.
		return p.parseIndex(left, true)
	case lexer.LPAREN:
		p.advance() // ?.
		start := left.Pos()
		args := p.parseArguments()
		return &ast.CallExpression{
			Span: p.spanFrom(start), Callee: left, Args: args, Optional: true,
		}
	default:
		return p.parseMember(left, true)
	}
}

func (p *Parser) parseArguments() []ast.Expr {
	p.expect(lexer.LPAREN)
	var args []ast.Expr
	for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
		if p.at(lexer.SPREAD) {
			sStart := p.advance().Pos
			args = append(args, &ast.SpreadElement{
				Span: p.spanFrom(sStart), Argument: p.parseExpression(sequence),
			})
		} else if arg := p.parseExpression(sequence); arg != nil {
			args = append(args, arg)
		}
		if !p.at(lexer.COMMA) {
			break
		}
		p.advance()
	}
	p.expect(lexer.RPAREN)
	return args
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
