// Package parser implements the one-token-lookahead recursive-descent
// parser. Each production mirrors a rule of the grammar; eat() is the single
// failure mode, there is no recovery and no partial tree.
package parser

import (
	"fmt"
	"strconv"

	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/ast"
	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/lexer"
	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/token"
)

// Error is a fatal syntax error carrying the offending token.
type Error struct {
	Token    token.Token
	Expected token.TokenType // empty when no single expected kind applies
}

func (e *Error) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("%d:%d: syntax error: unexpected token %q, expected %s",
			e.Token.Line, e.Token.Column, e.Token.Literal, e.Expected)
	}
	return fmt.Sprintf("%d:%d: syntax error: unexpected token %q",
		e.Token.Line, e.Token.Column, e.Token.Literal)
}

type Parser struct {
	l       *lexer.Lexer
	curTok  token.Token
	peekTok token.Token
}

// New primes the two-token window. A lexical error in the first two tokens
// surfaces immediately.
func New(l *lexer.Lexer) (*Parser, error) {
	p := &Parser{l: l}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) nextToken() error {
	tok, err := p.l.NextToken()
	if err != nil {
		return err
	}
	p.curTok = p.peekTok
	p.peekTok = tok
	return nil
}

// eat consumes the current token if it matches the expected kind, otherwise
// it fails with an unexpected-token error.
func (p *Parser) eat(expected token.TokenType) error {
	if p.curTok.Type != expected {
		return &Error{Token: p.curTok, Expected: expected}
	}
	return p.nextToken()
}

// Parse parses a whole compilation unit and fails when trailing input
// remains after the closing DOT.
func (p *Parser) Parse() (*ast.Program, error) {
	prog, err := p.program()
	if err != nil {
		return nil, err
	}
	if p.curTok.Type != token.TokenEOF {
		return nil, &Error{Token: p.curTok}
	}
	return prog, nil
}

// program := PROGRAM ident SEMI block DOT
func (p *Parser) program() (*ast.Program, error) {
	progTok := p.curTok
	if err := p.eat(token.TokenProgram); err != nil {
		return nil, err
	}
	nameVar, err := p.variable()
	if err != nil {
		return nil, err
	}
	if err := p.eat(token.TokenSemi); err != nil {
		return nil, err
	}
	block, err := p.block()
	if err != nil {
		return nil, err
	}
	if err := p.eat(token.TokenDot); err != nil {
		return nil, err
	}
	return &ast.Program{Token: progTok, Name: nameVar.Name, Block: block}, nil
}

// block := declarations compound_statement
func (p *Parser) block() (*ast.Block, error) {
	decls, err := p.declarations()
	if err != nil {
		return nil, err
	}
	compound, err := p.compoundStatement()
	if err != nil {
		return nil, err
	}
	return &ast.Block{Declarations: decls, Compound: compound}, nil
}

// declarations := (VAR (var_decl SEMI)+)? proc_decl*
func (p *Parser) declarations() ([]ast.Decl, error) {
	var decls []ast.Decl

	if p.curTok.Type == token.TokenVar {
		if err := p.eat(token.TokenVar); err != nil {
			return nil, err
		}
		for p.curTok.Type == token.TokenIdent {
			varDecls, err := p.variableDeclaration()
			if err != nil {
				return nil, err
			}
			for _, vd := range varDecls {
				decls = append(decls, vd)
			}
			if err := p.eat(token.TokenSemi); err != nil {
				return nil, err
			}
		}
	}

	for p.curTok.Type == token.TokenProcedure {
		procDecl, err := p.procedureDeclaration()
		if err != nil {
			return nil, err
		}
		decls = append(decls, procDecl)
	}

	return decls, nil
}

// var_decl := ident (COMMA ident)* COLON type_spec
func (p *Parser) variableDeclaration() ([]*ast.VarDecl, error) {
	vars := []*ast.Var{}
	first, err := p.variable()
	if err != nil {
		return nil, err
	}
	vars = append(vars, first)

	for p.curTok.Type == token.TokenComma {
		if err := p.eat(token.TokenComma); err != nil {
			return nil, err
		}
		next, err := p.variable()
		if err != nil {
			return nil, err
		}
		vars = append(vars, next)
	}

	if err := p.eat(token.TokenColon); err != nil {
		return nil, err
	}
	typeSpec, err := p.typeSpec()
	if err != nil {
		return nil, err
	}

	decls := make([]*ast.VarDecl, len(vars))
	for i, v := range vars {
		decls[i] = &ast.VarDecl{Var: v, Type: typeSpec}
	}
	return decls, nil
}

// proc_decl := PROCEDURE ident (LPAREN params RPAREN)? SEMI block SEMI
func (p *Parser) procedureDeclaration() (*ast.ProcedureDecl, error) {
	procTok := p.curTok
	if err := p.eat(token.TokenProcedure); err != nil {
		return nil, err
	}
	nameTok := p.curTok
	if err := p.eat(token.TokenIdent); err != nil {
		return nil, err
	}

	var params []*ast.Param
	if p.curTok.Type == token.TokenLParen {
		if err := p.eat(token.TokenLParen); err != nil {
			return nil, err
		}
		var err error
		params, err = p.formalParameterList()
		if err != nil {
			return nil, err
		}
		if err := p.eat(token.TokenRParen); err != nil {
			return nil, err
		}
	}

	if err := p.eat(token.TokenSemi); err != nil {
		return nil, err
	}
	block, err := p.block()
	if err != nil {
		return nil, err
	}
	if err := p.eat(token.TokenSemi); err != nil {
		return nil, err
	}

	return &ast.ProcedureDecl{Token: procTok, Name: nameTok.Literal, Params: params, Block: block}, nil
}

// formal_parameter_list := formal_parameters (SEMI formal_parameters)*
func (p *Parser) formalParameterList() ([]*ast.Param, error) {
	if p.curTok.Type != token.TokenIdent {
		return nil, nil
	}

	params, err := p.formalParameters()
	if err != nil {
		return nil, err
	}
	for p.curTok.Type == token.TokenSemi {
		if err := p.eat(token.TokenSemi); err != nil {
			return nil, err
		}
		more, err := p.formalParameters()
		if err != nil {
			return nil, err
		}
		params = append(params, more...)
	}
	return params, nil
}

// formal_parameters := ident (COMMA ident)* COLON type_spec
func (p *Parser) formalParameters() ([]*ast.Param, error) {
	vars := []*ast.Var{}
	first, err := p.variable()
	if err != nil {
		return nil, err
	}
	vars = append(vars, first)

	for p.curTok.Type == token.TokenComma {
		if err := p.eat(token.TokenComma); err != nil {
			return nil, err
		}
		next, err := p.variable()
		if err != nil {
			return nil, err
		}
		vars = append(vars, next)
	}

	if err := p.eat(token.TokenColon); err != nil {
		return nil, err
	}
	typeSpec, err := p.typeSpec()
	if err != nil {
		return nil, err
	}

	params := make([]*ast.Param, len(vars))
	for i, v := range vars {
		params[i] = &ast.Param{Var: v, Type: typeSpec}
	}
	return params, nil
}

// type_spec := INTEGER | REAL | STRING | CHAR
//            | ARRAY LBRACK int_const DOT DOT int_const RBRACK OF INTEGER
func (p *Parser) typeSpec() (ast.TypeSpec, error) {
	tok := p.curTok
	switch tok.Type {
	case token.TokenInteger, token.TokenReal, token.TokenString, token.TokenChar:
		if err := p.eat(tok.Type); err != nil {
			return nil, err
		}
		return &ast.Type{Token: tok, Name: tok.Literal}, nil
	case token.TokenArray:
		return p.arrayTypeSpec()
	default:
		return nil, &Error{Token: tok}
	}
}

func (p *Parser) arrayTypeSpec() (*ast.ArrayType, error) {
	arrayTok := p.curTok
	if err := p.eat(token.TokenArray); err != nil {
		return nil, err
	}
	if err := p.eat(token.TokenLBrack); err != nil {
		return nil, err
	}
	low, err := p.intConst()
	if err != nil {
		return nil, err
	}
	if err := p.eat(token.TokenDot); err != nil {
		return nil, err
	}
	if err := p.eat(token.TokenDot); err != nil {
		return nil, err
	}
	high, err := p.intConst()
	if err != nil {
		return nil, err
	}
	if err := p.eat(token.TokenRBrack); err != nil {
		return nil, err
	}
	if err := p.eat(token.TokenOf); err != nil {
		return nil, err
	}
	elemTok := p.curTok
	if err := p.eat(token.TokenInteger); err != nil {
		return nil, err
	}

	return &ast.ArrayType{
		Token: arrayTok,
		Low:   low,
		High:  high,
		Elem:  &ast.Type{Token: elemTok, Name: elemTok.Literal},
	}, nil
}

func (p *Parser) intConst() (int, error) {
	tok := p.curTok
	if err := p.eat(token.TokenIntegerConst); err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok.Literal)
	if err != nil {
		return 0, &Error{Token: tok}
	}
	return n, nil
}

// compound_stmt := BEGIN stmt (SEMI stmt)* END
func (p *Parser) compoundStatement() (*ast.Compound, error) {
	beginTok := p.curTok
	if err := p.eat(token.TokenBegin); err != nil {
		return nil, err
	}

	stmts, err := p.statementList()
	if err != nil {
		return nil, err
	}

	if err := p.eat(token.TokenEnd); err != nil {
		return nil, err
	}
	return &ast.Compound{Token: beginTok, Children: stmts}, nil
}

func (p *Parser) statementList() ([]ast.Stmt, error) {
	first, err := p.statement()
	if err != nil {
		return nil, err
	}
	stmts := []ast.Stmt{first}

	for p.curTok.Type == token.TokenSemi {
		if err := p.eat(token.TokenSemi); err != nil {
			return nil, err
		}
		next, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, next)
	}
	return stmts, nil
}

// stmt := compound_stmt | proc_call | assignment | io_stmt
//       | if_stmt | while_stmt | empty
func (p *Parser) statement() (ast.Stmt, error) {
	switch {
	case p.curTok.Type == token.TokenBegin:
		return p.compoundStatement()
	case p.curTok.Type == token.TokenIdent && p.peekTok.Type == token.TokenLParen:
		return p.procCallStatement()
	case p.curTok.Type == token.TokenIdent:
		return p.assignmentStatement()
	case p.curTok.Type == token.TokenRead || p.curTok.Type == token.TokenReadln ||
		p.curTok.Type == token.TokenWrite || p.curTok.Type == token.TokenWriteln:
		return p.ioStatement()
	case p.curTok.Type == token.TokenIf:
		return p.ifStatement()
	case p.curTok.Type == token.TokenWhile:
		return p.whileStatement()
	default:
		return &ast.NoOp{}, nil
	}
}

// if_stmt := IF relation THEN stmt (ELSE stmt)?
func (p *Parser) ifStatement() (*ast.IfStatement, error) {
	ifTok := p.curTok
	if err := p.eat(token.TokenIf); err != nil {
		return nil, err
	}
	cond, err := p.relation()
	if err != nil {
		return nil, err
	}
	if err := p.eat(token.TokenThen); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}

	node := &ast.IfStatement{Token: ifTok, Cond: cond, Then: then}
	if p.curTok.Type == token.TokenElse {
		if err := p.eat(token.TokenElse); err != nil {
			return nil, err
		}
		node.Else, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

// while_stmt := WHILE relation DO stmt
func (p *Parser) whileStatement() (*ast.WhileStatement, error) {
	whileTok := p.curTok
	if err := p.eat(token.TokenWhile); err != nil {
		return nil, err
	}
	cond, err := p.relation()
	if err != nil {
		return nil, err
	}
	if err := p.eat(token.TokenDo); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Token: whileTok, Cond: cond, Body: body}, nil
}

// relation := expr (EQ|LT|GT|LE|GE|AND|OR) expr
//
// Exactly one operator between two arithmetic expressions; chained boolean
// conditions are not expressible.
func (p *Parser) relation() (*ast.Relation, error) {
	left, err := p.expr()
	if err != nil {
		return nil, err
	}

	opTok := p.curTok
	switch opTok.Type {
	case token.TokenEqual, token.TokenLess, token.TokenGreater,
		token.TokenLessEqual, token.TokenGreaterEqual,
		token.TokenAnd, token.TokenOr:
		if err := p.eat(opTok.Type); err != nil {
			return nil, err
		}
	default:
		return nil, &Error{Token: opTok}
	}

	right, err := p.expr()
	if err != nil {
		return nil, err
	}
	return &ast.Relation{Left: left, Op: opTok, Right: right}, nil
}

// proc_call := ident LPAREN (expr (COMMA expr)*)? RPAREN
func (p *Parser) procCallStatement() (*ast.ProcedureCall, error) {
	nameTok := p.curTok
	if err := p.eat(token.TokenIdent); err != nil {
		return nil, err
	}
	if err := p.eat(token.TokenLParen); err != nil {
		return nil, err
	}

	var args []ast.Expr
	if p.curTok.Type != token.TokenRParen {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		for p.curTok.Type == token.TokenComma {
			if err := p.eat(token.TokenComma); err != nil {
				return nil, err
			}
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
	}

	if err := p.eat(token.TokenRParen); err != nil {
		return nil, err
	}
	return &ast.ProcedureCall{Token: nameTok, Name: nameTok.Literal, Args: args}, nil
}

// assignment := ident (LBRACK int_const RBRACK)? ASSIGN expr
//
// The bracketed index is validated and then discarded: arrays have no
// runtime value and an indexed assignment targets the bare name.
func (p *Parser) assignmentStatement() (*ast.Assign, error) {
	target, err := p.variable()
	if err != nil {
		return nil, err
	}

	if p.curTok.Type == token.TokenLBrack {
		if err := p.eat(token.TokenLBrack); err != nil {
			return nil, err
		}
		if _, err := p.intConst(); err != nil {
			return nil, err
		}
		if err := p.eat(token.TokenRBrack); err != nil {
			return nil, err
		}
	}

	assignTok := p.curTok
	if err := p.eat(token.TokenAssign); err != nil {
		return nil, err
	}
	value, err := p.expr()
	if err != nil {
		return nil, err
	}
	return &ast.Assign{Var: target, Token: assignTok, Value: value}, nil
}

// io_stmt := (READ|READLN) LPAREN ident (COMMA ident)* RPAREN
//          | (WRITE|WRITELN) LPAREN string_const RPAREN
func (p *Parser) ioStatement() (ast.Stmt, error) {
	ioTok := p.curTok
	if err := p.eat(ioTok.Type); err != nil {
		return nil, err
	}
	if err := p.eat(token.TokenLParen); err != nil {
		return nil, err
	}

	var node ast.Stmt
	switch ioTok.Type {
	case token.TokenRead, token.TokenReadln:
		targets, err := p.readTargets()
		if err != nil {
			return nil, err
		}
		node = &ast.ReadStatement{Token: ioTok, Targets: targets}
	case token.TokenWrite, token.TokenWriteln:
		strTok := p.curTok
		if err := p.eat(token.TokenStringConst); err != nil {
			return nil, err
		}
		node = &ast.WriteStatement{
			Token: ioTok,
			Value: &ast.StringLit{Token: strTok, Value: strTok.Literal},
		}
	}

	if err := p.eat(token.TokenRParen); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) readTargets() ([]*ast.Var, error) {
	first, err := p.variable()
	if err != nil {
		return nil, err
	}
	targets := []*ast.Var{first}

	for p.curTok.Type == token.TokenComma {
		if err := p.eat(token.TokenComma); err != nil {
			return nil, err
		}
		next, err := p.variable()
		if err != nil {
			return nil, err
		}
		targets = append(targets, next)
	}
	return targets, nil
}

// expr := term ((PLUS|MINUS) term)*
func (p *Parser) expr() (ast.Expr, error) {
	node, err := p.term()
	if err != nil {
		return nil, err
	}

	for p.curTok.Type == token.TokenPlus || p.curTok.Type == token.TokenMinus {
		opTok := p.curTok
		if err := p.eat(opTok.Type); err != nil {
			return nil, err
		}
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		node = &ast.BinOp{Left: node, Op: opTok, Right: right}
	}
	return node, nil
}

// term := factor ((MUL|DIV|FDIV) factor)*
func (p *Parser) term() (ast.Expr, error) {
	node, err := p.factor()
	if err != nil {
		return nil, err
	}

	for p.curTok.Type == token.TokenMul ||
		p.curTok.Type == token.TokenIntegerDiv ||
		p.curTok.Type == token.TokenFloatDiv {
		opTok := p.curTok
		if err := p.eat(opTok.Type); err != nil {
			return nil, err
		}
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		node = &ast.BinOp{Left: node, Op: opTok, Right: right}
	}
	return node, nil
}

// factor := (PLUS|MINUS) factor | int_const | real_const
//         | LPAREN expr RPAREN | string_const | ident
func (p *Parser) factor() (ast.Expr, error) {
	tok := p.curTok
	switch tok.Type {
	case token.TokenPlus, token.TokenMinus:
		if err := p.eat(tok.Type); err != nil {
			return nil, err
		}
		operand, err := p.factor()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: tok, Operand: operand}, nil
	case token.TokenIntegerConst:
		if err := p.eat(token.TokenIntegerConst); err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, &Error{Token: tok}
		}
		return &ast.NumLit{Token: tok, Int: n}, nil
	case token.TokenRealConst:
		if err := p.eat(token.TokenRealConst); err != nil {
			return nil, err
		}
		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, &Error{Token: tok}
		}
		return &ast.NumLit{Token: tok, IsReal: true, Real: f}, nil
	case token.TokenLParen:
		if err := p.eat(token.TokenLParen); err != nil {
			return nil, err
		}
		node, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.eat(token.TokenRParen); err != nil {
			return nil, err
		}
		return node, nil
	case token.TokenStringConst:
		if err := p.eat(token.TokenStringConst); err != nil {
			return nil, err
		}
		return &ast.StringLit{Token: tok, Value: tok.Literal}, nil
	case token.TokenIdent:
		return p.variable()
	default:
		return nil, &Error{Token: tok}
	}
}

// variable := ident
func (p *Parser) variable() (*ast.Var, error) {
	tok := p.curTok
	if err := p.eat(token.TokenIdent); err != nil {
		return nil, err
	}
	return &ast.Var{Token: tok, Name: tok.Literal}, nil
}
