// Package parse implements the recursive-descent parser for .hl source: a
// single token of lookahead, plus a saved cursor to try a variable
// declaration before falling back to a statement, producing compiler/ast trees and accumulating diagnostics instead of
// aborting on the first error.
//
// Design Notes (spec.md §9) call for modeling the original's local
// throw/catch synchronization with an explicit result instead of a
// language-level exception; every parsing method here returns (node, error)
// and the two call sites that recover (ParseProgram's statement loop and
// block's statement loop) check the error and call synchronize explicitly.
package parse

import (
	"fmt"
	"strconv"

	"github.com/slowlang/hlc/compiler/ast"
	"github.com/slowlang/hlc/compiler/token"
	"github.com/slowlang/hlc/compiler/tp"
)

// Diagnostic is a single parse error, formatted per spec.md §6.4.
type Diagnostic struct {
	Line    int
	Column  int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("Parse error at line %d, column %d: %s", d.Line, d.Column, d.Message)
}

// parseError is the internal "recoverable parse failure" result: it
// unwinds, by ordinary Go error return, to the nearest statement boundary.
type parseError struct {
	tok token.Token
	msg string
}

func (e *parseError) Error() string { return e.msg }

// Parser consumes a fixed token slice. It never mutates its input.
type Parser struct {
	toks []token.Token
	cur  int

	diags    []Diagnostic
	hadError bool
}

// New returns a Parser over toks, which must end in a token.EOF.
func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

// ParseProgram parses a full program. prog is non-nil only when hadError is
// false, matching spec.md's parser contract.
func ParseProgram(toks []token.Token) (prog *ast.Program, diags []Diagnostic, hadError bool) {
	p := New(toks)
	prog = p.ParseProgram()
	return prog, p.diags, p.hadError
}

// ParseProgram runs the parser to completion on its token slice.
func (p *Parser) ParseProgram() *ast.Program {
	var stmts []ast.Stmt

	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.recordError(err)
			p.synchronize()
			continue
		}
		stmts = append(stmts, stmt)
	}

	if p.hadError {
		return nil
	}

	return &ast.Program{Stmts: stmts}
}

func (p *Parser) recordError(err error) {
	p.hadError = true
	if pe, ok := err.(*parseError); ok {
		p.diags = append(p.diags, Diagnostic{Line: pe.tok.Line, Column: pe.tok.Column, Message: pe.msg})
		return
	}
	p.diags = append(p.diags, Diagnostic{Message: err.Error()})
}

// synchronize discards tokens until the most recently consumed token is a
// semicolon, or the next token opens a new statement.
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Kind == token.Semicolon {
			return
		}

		switch p.peek().Kind {
		case token.Fx, token.If, token.While, token.For, token.Return,
			token.Try, token.Catch, token.Print, token.Input:
			return
		}

		p.advance()
	}
}

// --- declarations ---

func (p *Parser) declaration() (ast.Stmt, error) {
	if p.match(token.Fx) {
		return p.functionDecl()
	}

	start := p.cur
	if stmt, err := p.varDecl(); err == nil {
		return stmt, nil
	}
	p.cur = start

	return p.statement()
}

func (p *Parser) varDecl() (ast.Stmt, error) {
	line, col := p.peek().Line, p.peek().Column
	isConst := p.match(token.Const)

	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}

	name, err := p.consume(token.Ident, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var init ast.Expr
	if p.match(token.Assign) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}

	return &ast.VarDecl{
		StmtBase: ast.StmtBase{Base: ast.Base{Line: line, Col: col}},
		Const:    isConst,
		Type:     typ,
		Name:     name.Lexeme,
		Init:     init,
	}, nil
}

func (p *Parser) functionDecl() (ast.Stmt, error) {
	fxTok := p.previous()

	name, err := p.consume(token.Ident, "Expect function name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LParen, "Expect '(' after function name."); err != nil {
		return nil, err
	}

	var params []ast.Param
	if !p.check(token.RParen) {
		for {
			pt, err := p.parseType()
			if err != nil {
				return nil, err
			}
			pn, err := p.consume(token.Ident, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, ast.Param{Name: pn.Lexeme, Type: pt})
			if !p.match(token.Comma) {
				break
			}
		}
	}

	if _, err := p.consume(token.RParen, "Expect ')' after parameters."); err != nil {
		return nil, err
	}

	var declaredReturn *tp.Type
	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &ast.FuncDecl{
		StmtBase:       ast.StmtBase{Base: ast.Base{Line: fxTok.Line, Col: fxTok.Column}},
		Name:           name.Lexeme,
		Params:         params,
		DeclaredReturn: declaredReturn,
		Body:           body,
	}, nil
}

// block parses `{ declaration* }`, consuming both braces itself, and
// synchronizes on interior errors the same way ParseProgram does.
func (p *Parser) block() ([]ast.Stmt, error) {
	if _, err := p.consume(token.LBrace, "Expect '{' before block."); err != nil {
		return nil, err
	}

	var stmts []ast.Stmt
	for !p.check(token.RBrace) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.recordError(err)
			p.synchronize()
			continue
		}
		stmts = append(stmts, stmt)
	}

	if _, err := p.consume(token.RBrace, "Expect '}' after block."); err != nil {
		p.recordError(err)
		p.synchronize()
	}

	return stmts, nil
}

// --- statements ---

func (p *Parser) statement() (ast.Stmt, error) {
	switch {
	case p.match(token.Print):
		return p.printStatement()
	case p.match(token.Input):
		return p.inputStatement()
	case p.match(token.If):
		return p.ifStatement()
	case p.match(token.While):
		return p.whileStatement()
	case p.match(token.For):
		return p.forStatement()
	case p.match(token.Try):
		return p.tryStatement()
	case p.match(token.Return):
		return p.returnStatement()
	case p.match(token.Endloop):
		return p.endloopStatement()
	case p.match(token.Next):
		return p.nextStatement()
	}
	return p.expressionStatement()
}

func (p *Parser) expressionStatement() (ast.Stmt, error) {
	line, col := p.peek().Line, p.peek().Column
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{StmtBase: ast.StmtBase{Base: ast.Base{Line: line, Col: col}}, X: expr}, nil
}

func (p *Parser) printStatement() (ast.Stmt, error) {
	tok := p.previous()
	if _, err := p.consume(token.LParen, "Expect '(' after 'print'."); err != nil {
		return nil, err
	}
	val, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RParen, "Expect ')' after print value."); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after print statement."); err != nil {
		return nil, err
	}
	return &ast.Print{StmtBase: ast.StmtBase{Base: ast.Base{Line: tok.Line, Col: tok.Column}}, Value: val}, nil
}

func (p *Parser) inputStatement() (ast.Stmt, error) {
	tok := p.previous()
	if _, err := p.consume(token.LParen, "Expect '(' after 'input'."); err != nil {
		return nil, err
	}
	prompt, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RParen, "Expect ')' after input prompt."); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after input statement."); err != nil {
		return nil, err
	}
	return &ast.Input{StmtBase: ast.StmtBase{Base: ast.Base{Line: tok.Line, Col: tok.Column}}, Prompt: prompt}, nil
}

func (p *Parser) ifStatement() (ast.Stmt, error) {
	tok := p.previous()
	if _, err := p.consume(token.LParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}
	thenBlock, err := p.block()
	if err != nil {
		return nil, err
	}

	var elifs []ast.ElifClause
	for p.match(token.Elif) {
		if _, err := p.consume(token.LParen, "Expect '(' after 'elif'."); err != nil {
			return nil, err
		}
		elifCond, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RParen, "Expect ')' after elif condition."); err != nil {
			return nil, err
		}
		elifBody, err := p.block()
		if err != nil {
			return nil, err
		}
		elifs = append(elifs, ast.ElifClause{Cond: elifCond, Body: elifBody})
	}

	var elseBlock []ast.Stmt
	if p.match(token.Else) {
		elseBlock, err = p.block()
		if err != nil {
			return nil, err
		}
	}

	return &ast.If{
		StmtBase: ast.StmtBase{Base: ast.Base{Line: tok.Line, Col: tok.Column}},
		Cond:     cond,
		Then:     thenBlock,
		Elifs:    elifs,
		Else:     elseBlock,
	}, nil
}

func (p *Parser) whileStatement() (ast.Stmt, error) {
	tok := p.previous()
	if _, err := p.consume(token.LParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RParen, "Expect ')' after while condition."); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ast.While{StmtBase: ast.StmtBase{Base: ast.Base{Line: tok.Line, Col: tok.Column}}, Cond: cond, Body: body}, nil
}

func (p *Parser) forStatement() (ast.Stmt, error) {
	tok := p.previous()
	if _, err := p.consume(token.LParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}
	iter, err := p.consume(token.Ident, "Expect iterator variable.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Comma, "Expect ',' after iterator."); err != nil {
		return nil, err
	}
	start, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Comma, "Expect ',' after start value."); err != nil {
		return nil, err
	}
	end, err := p.expression()
	if err != nil {
		return nil, err
	}

	var step ast.Expr
	if p.match(token.Comma) {
		step, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.RParen, "Expect ')' after for condition."); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &ast.For{
		StmtBase: ast.StmtBase{Base: ast.Base{Line: tok.Line, Col: tok.Column}},
		Iterator: iter.Lexeme,
		Start:    start,
		End:      end,
		Step:     step,
		Body:     body,
	}, nil
}

func (p *Parser) tryStatement() (ast.Stmt, error) {
	tok := p.previous()
	tryBlock, err := p.block()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Catch, "Expect 'catch' after 'try' block."); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LParen, "Expect '(' after 'catch'."); err != nil {
		return nil, err
	}
	excName, err := p.consume(token.Ident, "Expect exception variable name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RParen, "Expect ')' after exception variable name."); err != nil {
		return nil, err
	}
	catchBlock, err := p.block()
	if err != nil {
		return nil, err
	}

	return &ast.TryCatch{
		StmtBase:  ast.StmtBase{Base: ast.Base{Line: tok.Line, Col: tok.Column}},
		Try:       tryBlock,
		CatchName: excName.Lexeme,
		Catch:     catchBlock,
	}, nil
}

func (p *Parser) returnStatement() (ast.Stmt, error) {
	tok := p.previous()
	var val ast.Expr
	if !p.check(token.Semicolon) {
		var err error
		val, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return &ast.Return{StmtBase: ast.StmtBase{Base: ast.Base{Line: tok.Line, Col: tok.Column}}, Value: val}, nil
}

func (p *Parser) endloopStatement() (ast.Stmt, error) {
	tok := p.previous()
	if _, err := p.consume(token.Semicolon, "Expect ';' after 'endloop'."); err != nil {
		return nil, err
	}
	return &ast.Endloop{StmtBase: ast.StmtBase{Base: ast.Base{Line: tok.Line, Col: tok.Column}}}, nil
}

func (p *Parser) nextStatement() (ast.Stmt, error) {
	tok := p.previous()
	if _, err := p.consume(token.Semicolon, "Expect ';' after 'next'."); err != nil {
		return nil, err
	}
	return &ast.Next{StmtBase: ast.StmtBase{Base: ast.Base{Line: tok.Line, Col: tok.Column}}}, nil
}

// --- expressions ---

func (p *Parser) expression() (ast.Expr, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expr, error) {
	expr, err := p.logicalOr()
	if err != nil {
		return nil, err
	}

	if p.match(token.Assign) {
		eq := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}

		switch expr.(type) {
		case *ast.Ident, *ast.ListAccess, *ast.MemberAccess:
			return &ast.AssignExpr{
				ExprBase: ast.ExprBase{Base: ast.Base{Line: eq.Line, Col: eq.Column}},
				Target:   expr,
				Value:    value,
			}, nil
		default:
			return nil, &parseError{tok: eq, msg: "Invalid assignment target."}
		}
	}

	return expr, nil
}

func (p *Parser) logicalOr() (ast.Expr, error) {
	expr, err := p.logicalAnd()
	if err != nil {
		return nil, err
	}
	for p.match(token.Or) {
		opTok := p.previous()
		right, err := p.logicalAnd()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpr{ExprBase: base(opTok), Op: ast.Or, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) logicalAnd() (ast.Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(token.And) {
		opTok := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpr{ExprBase: base(opTok), Op: ast.And, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expr, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.check(token.Eq) || p.check(token.NotEq) {
		opTok := p.advance()
		op := ast.Eq
		if opTok.Kind == token.NotEq {
			op = ast.NotEq
		}
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpr{ExprBase: base(opTok), Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) comparison() (ast.Expr, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.check(token.Gt) || p.check(token.GtEq) || p.check(token.Lt) || p.check(token.LtEq) {
		opTok := p.advance()
		var op ast.BinaryOp
		switch opTok.Kind {
		case token.Gt:
			op = ast.Gt
		case token.GtEq:
			op = ast.GtEq
		case token.Lt:
			op = ast.Lt
		case token.LtEq:
			op = ast.LtEq
		}
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpr{ExprBase: base(opTok), Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) term() (ast.Expr, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.check(token.Plus) || p.check(token.Minus) {
		opTok := p.advance()
		op := ast.Add
		if opTok.Kind == token.Minus {
			op = ast.Sub
		}
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpr{ExprBase: base(opTok), Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) factor() (ast.Expr, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.check(token.Star) || p.check(token.Slash) || p.check(token.Percent) {
		opTok := p.advance()
		var op ast.BinaryOp
		switch opTok.Kind {
		case token.Star:
			op = ast.Mul
		case token.Slash:
			op = ast.Div
		case token.Percent:
			op = ast.Mod
		}
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpr{ExprBase: base(opTok), Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expr, error) {
	if p.check(token.Not) || p.check(token.Minus) {
		opTok := p.advance()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		op := ast.Not
		if opTok.Kind == token.Minus {
			op = ast.Neg
		}
		return &ast.UnaryExpr{ExprBase: base(opTok), Op: op, Operand: operand}, nil
	}
	return p.postfix()
}

// postfix handles primary, then trailing call/index/member suffixes.
func (p *Parser) postfix() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.match(token.LParen):
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}
		case p.match(token.LBracket):
			lb := p.previous()
			index, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(token.RBracket, "Expect ']' after index."); err != nil {
				return nil, err
			}
			expr = &ast.ListAccess{ExprBase: base(lb), List: expr, Index: index}
		case p.match(token.Dot):
			member, err := p.consume(token.Ident, "Expect member name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = &ast.MemberAccess{ExprBase: base(member), Object: expr, Member: member.Lexeme}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) (ast.Expr, error) {
	lp := p.previous()
	var args []ast.Expr
	if !p.check(token.RParen) {
		for {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(token.RParen, "Expect ')' after arguments."); err != nil {
		return nil, err
	}
	return &ast.CallExpr{ExprBase: base(lp), Callee: callee, Args: args}, nil
}

func (p *Parser) primary() (ast.Expr, error) {
	switch {
	case p.match(token.BoolLit):
		tok := p.previous()
		return &ast.BoolLit{ExprBase: base(tok), Value: tok.Lexeme == "true"}, nil

	case p.match(token.IntLit):
		tok := p.previous()
		v, convErr := strconv.ParseInt(tok.Lexeme, 10, 64)
		if convErr != nil {
			return nil, &parseError{tok: tok, msg: "Invalid integer literal."}
		}
		return &ast.IntLit{ExprBase: base(tok), Value: v}, nil

	case p.match(token.FloatLit):
		tok := p.previous()
		v, convErr := strconv.ParseFloat(tok.Lexeme, 64)
		if convErr != nil {
			return nil, &parseError{tok: tok, msg: "Invalid float literal."}
		}
		return &ast.FloatLit{ExprBase: base(tok), Value: v}, nil

	case p.match(token.StringLit):
		tok := p.previous()
		return &ast.StringLit{ExprBase: base(tok), Value: tok.Lexeme[1 : len(tok.Lexeme)-1]}, nil

	case p.match(token.LBracket):
		lb := p.previous()
		var elems []ast.Expr
		if !p.check(token.RBracket) {
			for {
				e, err := p.expression()
				if err != nil {
					return nil, err
				}
				elems = append(elems, e)
				if !p.match(token.Comma) {
					break
				}
			}
		}
		if _, err := p.consume(token.RBracket, "Expect ']' after list elements."); err != nil {
			return nil, err
		}
		return &ast.ListLit{ExprBase: base(lb), Elements: elems}, nil

	case p.match(token.Input):
		inputTok := p.previous()
		callee := &ast.Ident{ExprBase: base(inputTok), Name: "input"}
		if _, err := p.consume(token.LParen, "Expect '(' after 'input'."); err != nil {
			return nil, err
		}
		return p.finishCall(callee)

	case p.match(token.Ident):
		tok := p.previous()
		return &ast.Ident{ExprBase: base(tok), Name: tok.Lexeme}, nil

	case p.match(token.LParen):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return expr, nil
	}

	return nil, &parseError{tok: p.peek(), msg: "Expect expression."}
}

func (p *Parser) parseType() (*tp.Type, error) {
	switch {
	case p.match(token.KwInt):
		return tp.NewInt(), nil
	case p.match(token.KwFloat):
		return tp.NewFloat(), nil
	case p.match(token.KwString):
		return tp.NewString(), nil
	case p.match(token.KwBool):
		return tp.NewBool(), nil
	case p.match(token.KwVoid):
		return tp.NewVoid(), nil
	case p.match(token.KwList):
		if _, err := p.consume(token.Lt, "Expect '<' after 'list'."); err != nil {
			return nil, err
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.Gt, "Expect '>' after list element type."); err != nil {
			return nil, err
		}
		return tp.NewList(elem), nil
	}
	return nil, &parseError{tok: p.peek(), msg: "Expect type."}
}

// --- token stream primitives ---

func base(tok token.Token) ast.ExprBase {
	return ast.ExprBase{Base: ast.Base{Line: tok.Line, Col: tok.Column}}
}

func (p *Parser) peek() token.Token     { return p.toks[p.cur] }
func (p *Parser) previous() token.Token { return p.toks[p.cur-1] }

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.cur++
	}
	return p.previous()
}

func (p *Parser) check(k token.Kind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == k
}

func (p *Parser) match(k token.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) isAtEnd() bool { return p.peek().Kind == token.EOF }

func (p *Parser) consume(k token.Kind, msg string) (token.Token, error) {
	if p.check(k) {
		return p.advance(), nil
	}
	at := p.peek()
	if p.cur > 0 {
		at = p.previous()
	}
	return token.Token{}, &parseError{tok: at, msg: msg}
}
