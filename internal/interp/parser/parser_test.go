package parser

import (
	"strings"
	"testing"

	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/ast"
	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/lexer"
	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/token"
)

// parseProgram is a common helper: it fails the test on any lexical or
// syntax error.
func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	p, err := New(lexer.New(input))
	if err != nil {
		t.Fatalf("lexer error priming parser: %v", err)
	}
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if prog == nil {
		t.Fatalf("Parse() returned nil without error")
	}
	return prog
}

func parseError(t *testing.T, input string) error {
	t.Helper()
	p, err := New(lexer.New(input))
	if err != nil {
		return err
	}
	_, err = p.Parse()
	if err == nil {
		t.Fatalf("expected a parse error, got none")
	}
	return err
}

func TestProgramStructure(t *testing.T) {
	input := `
PROGRAM demo;
VAR x, y : INTEGER;
    r : REAL;
BEGIN
  x := 1
END.
`
	prog := parseProgram(t, input)

	if prog.Name != "demo" {
		t.Errorf("program name expected=%q, got=%q", "demo", prog.Name)
	}
	if len(prog.Block.Declarations) != 3 {
		t.Fatalf("declarations expected=3, got=%d", len(prog.Block.Declarations))
	}

	vd, ok := prog.Block.Declarations[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("declaration[0] is not *ast.VarDecl, got=%T", prog.Block.Declarations[0])
	}
	if vd.Var.Name != "x" {
		t.Errorf("declaration[0] name expected=%q, got=%q", "x", vd.Var.Name)
	}
	typ, ok := vd.Type.(*ast.Type)
	if !ok || typ.Name != "INTEGER" {
		t.Errorf("declaration[0] type expected INTEGER, got=%v", vd.Type)
	}

	if len(prog.Block.Compound.Children) != 1 {
		t.Fatalf("compound children expected=1, got=%d", len(prog.Block.Compound.Children))
	}
	if _, ok := prog.Block.Compound.Children[0].(*ast.Assign); !ok {
		t.Errorf("statement is not *ast.Assign, got=%T", prog.Block.Compound.Children[0])
	}
}

func TestExpressionPrecedence(t *testing.T) {
	prog := parseProgram(t, "PROGRAM p; BEGIN x := 2 + 3 * 4 END.")

	assign := prog.Block.Compound.Children[0].(*ast.Assign)
	add, ok := assign.Value.(*ast.BinOp)
	if !ok {
		t.Fatalf("value is not *ast.BinOp, got=%T", assign.Value)
	}
	if add.Op.Type != token.TokenPlus {
		t.Fatalf("top operator expected PLUS, got=%s", add.Op.Type)
	}
	mul, ok := add.Right.(*ast.BinOp)
	if !ok || mul.Op.Type != token.TokenMul {
		t.Fatalf("right operand should be the multiplication, got=%v", add.Right)
	}
}

func TestUnaryOperators(t *testing.T) {
	prog := parseProgram(t, "PROGRAM p; BEGIN x := --5 END.")

	assign := prog.Block.Compound.Children[0].(*ast.Assign)
	outer, ok := assign.Value.(*ast.UnaryOp)
	if !ok || outer.Op.Type != token.TokenMinus {
		t.Fatalf("value is not unary minus, got=%v", assign.Value)
	}
	if _, ok := outer.Operand.(*ast.UnaryOp); !ok {
		t.Fatalf("operand is not a nested unary op, got=%T", outer.Operand)
	}
}

func TestProcedureDeclarationWithParams(t *testing.T) {
	input := `
PROGRAM p;
PROCEDURE alpha(a, b : INTEGER; r : REAL);
BEGIN
  a := b
END;
BEGIN
END.
`
	prog := parseProgram(t, input)

	pd, ok := prog.Block.Declarations[0].(*ast.ProcedureDecl)
	if !ok {
		t.Fatalf("declaration[0] is not *ast.ProcedureDecl, got=%T", prog.Block.Declarations[0])
	}
	if pd.Name != "alpha" {
		t.Errorf("procedure name expected=%q, got=%q", "alpha", pd.Name)
	}
	if len(pd.Params) != 3 {
		t.Fatalf("params expected=3, got=%d", len(pd.Params))
	}
	wantNames := []string{"a", "b", "r"}
	wantTypes := []string{"INTEGER", "INTEGER", "REAL"}
	for i, param := range pd.Params {
		if param.Var.Name != wantNames[i] {
			t.Errorf("param[%d] name expected=%q, got=%q", i, wantNames[i], param.Var.Name)
		}
		if param.Type.(*ast.Type).Name != wantTypes[i] {
			t.Errorf("param[%d] type expected=%q, got=%q", i, wantTypes[i], param.Type.(*ast.Type).Name)
		}
	}
}

func TestProcedureCallStatement(t *testing.T) {
	prog := parseProgram(t, "PROGRAM p; BEGIN alpha(1, 2 + 3) END.")

	call, ok := prog.Block.Compound.Children[0].(*ast.ProcedureCall)
	if !ok {
		t.Fatalf("statement is not *ast.ProcedureCall, got=%T", prog.Block.Compound.Children[0])
	}
	if call.Name != "alpha" {
		t.Errorf("callee expected=%q, got=%q", "alpha", call.Name)
	}
	if len(call.Args) != 2 {
		t.Fatalf("args expected=2, got=%d", len(call.Args))
	}
	if call.Proc != nil {
		t.Errorf("resolved symbol must be nil before semantic analysis")
	}
}

func TestIfElseAndWhile(t *testing.T) {
	input := `
PROGRAM p;
BEGIN
  IF x < 10 THEN x := 1 ELSE x := 2;
  WHILE x > 0 DO x := x - 1
END.
`
	prog := parseProgram(t, input)

	ifStmt, ok := prog.Block.Compound.Children[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("statement[0] is not *ast.IfStatement, got=%T", prog.Block.Compound.Children[0])
	}
	if ifStmt.Cond.Op.Type != token.TokenLess {
		t.Errorf("if relation operator expected LESS, got=%s", ifStmt.Cond.Op.Type)
	}
	if ifStmt.Else == nil {
		t.Errorf("else branch expected, got nil")
	}

	whileStmt, ok := prog.Block.Compound.Children[1].(*ast.WhileStatement)
	if !ok {
		t.Fatalf("statement[1] is not *ast.WhileStatement, got=%T", prog.Block.Compound.Children[1])
	}
	if whileStmt.Cond.Op.Type != token.TokenGreater {
		t.Errorf("while relation operator expected GREATER, got=%s", whileStmt.Cond.Op.Type)
	}
}

// A relation is exactly one comparison; chained boolean conditions do not
// parse.
func TestChainedRelationRejected(t *testing.T) {
	err := parseError(t, "PROGRAM p; BEGIN IF a < b AND c < d THEN x := 1 END.")
	synErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *parser.Error, got %T (%v)", err, err)
	}
	// The relation stops after one comparison, so AND lands where THEN is
	// required.
	if synErr.Token.Type != token.TokenAnd {
		t.Errorf("offending token expected AND, got=%s", synErr.Token.Type)
	}
	if synErr.Expected != token.TokenThen {
		t.Errorf("expected kind THEN, got=%s", synErr.Expected)
	}
}

func TestIOStatements(t *testing.T) {
	input := `
PROGRAM p;
BEGIN
  READ(a, b);
  READLN(c);
  WRITE('no newline');
  WRITELN('with newline')
END.
`
	prog := parseProgram(t, input)
	children := prog.Block.Compound.Children

	read, ok := children[0].(*ast.ReadStatement)
	if !ok {
		t.Fatalf("statement[0] is not *ast.ReadStatement, got=%T", children[0])
	}
	if len(read.Targets) != 2 || read.Targets[0].Name != "a" || read.Targets[1].Name != "b" {
		t.Errorf("read targets expected [a b], got=%v", read.Targets)
	}

	readln := children[1].(*ast.ReadStatement)
	if readln.Token.Type != token.TokenReadln {
		t.Errorf("statement[1] expected READLN token, got=%s", readln.Token.Type)
	}

	write, ok := children[2].(*ast.WriteStatement)
	if !ok {
		t.Fatalf("statement[2] is not *ast.WriteStatement, got=%T", children[2])
	}
	if write.Value.Value != "no newline" {
		t.Errorf("write value expected=%q, got=%q", "no newline", write.Value.Value)
	}

	writeln := children[3].(*ast.WriteStatement)
	if writeln.Token.Type != token.TokenWriteln {
		t.Errorf("statement[3] expected WRITELN token, got=%s", writeln.Token.Type)
	}
}

func TestArrayTypeSpec(t *testing.T) {
	prog := parseProgram(t, "PROGRAM p; VAR a : ARRAY [1..10] OF INTEGER; BEGIN END.")

	vd := prog.Block.Declarations[0].(*ast.VarDecl)
	at, ok := vd.Type.(*ast.ArrayType)
	if !ok {
		t.Fatalf("type is not *ast.ArrayType, got=%T", vd.Type)
	}
	if at.Low != 1 || at.High != 10 {
		t.Errorf("bounds expected 1..10, got=%d..%d", at.Low, at.High)
	}
	if at.Elem.Name != "INTEGER" {
		t.Errorf("element type expected INTEGER, got=%q", at.Elem.Name)
	}
}

// The bracketed index on an assignment target is validated and discarded.
func TestIndexedAssignmentDiscardsIndex(t *testing.T) {
	prog := parseProgram(t, "PROGRAM p; BEGIN a[3] := 7 END.")

	assign, ok := prog.Block.Compound.Children[0].(*ast.Assign)
	if !ok {
		t.Fatalf("statement is not *ast.Assign, got=%T", prog.Block.Compound.Children[0])
	}
	if assign.Var.Name != "a" {
		t.Errorf("assignment target expected=%q, got=%q", "a", assign.Var.Name)
	}
}

func TestUnexpectedTokenError(t *testing.T) {
	err := parseError(t, "PROGRAM p BEGIN END.")
	synErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *parser.Error, got %T (%v)", err, err)
	}
	if synErr.Token.Type != token.TokenBegin {
		t.Errorf("offending token expected BEGIN, got=%s", synErr.Token.Type)
	}
	if synErr.Expected != token.TokenSemi {
		t.Errorf("expected kind SEMI, got=%s", synErr.Expected)
	}
	if !strings.Contains(err.Error(), "1:11") {
		t.Errorf("error should carry position 1:11, got=%q", err.Error())
	}
}

func TestTrailingInputRejected(t *testing.T) {
	err := parseError(t, "PROGRAM p; BEGIN END. extra")
	synErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *parser.Error, got %T (%v)", err, err)
	}
	if synErr.Token.Literal != "extra" {
		t.Errorf("offending token expected=%q, got=%q", "extra", synErr.Token.Literal)
	}
}

// Pretty-printing a parsed program and lexing the result twice must yield
// identical token sequences, and re-parsing must print identically.
func TestPrettyPrintRoundTrip(t *testing.T) {
	input := `
PROGRAM roundtrip;
VAR x, y : INTEGER;
    s : STRING;
PROCEDURE show(n : INTEGER);
BEGIN
  IF n > 0 THEN WRITELN('positive') ELSE WRITELN('not positive')
END;
BEGIN
  x := 2 + 3 * 4;
  y := -x DIV 2;
  s := 'done';
  WHILE x > 0 DO x := x - 1;
  show(x);
  READ(y)
END.
`
	printed := parseProgram(t, input).String()

	first := lexAll(t, printed)
	second := lexAll(t, printed)
	if len(first) != len(second) {
		t.Fatalf("re-lex count mismatch: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Type != second[i].Type || first[i].Literal != second[i].Literal {
			t.Errorf("token[%d] mismatch: %v vs %v", i, first[i], second[i])
		}
	}

	reprinted := parseProgram(t, printed).String()
	if reprinted != printed {
		t.Errorf("pretty print is not stable:\nfirst:\n%s\nsecond:\n%s", printed, reprinted)
	}
}

func lexAll(t *testing.T, input string) []token.Token {
	t.Helper()
	l := lexer.New(input)
	var toks []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("lexical error on pretty-printed source: %v", err)
		}
		toks = append(toks, tok)
		if tok.Type == token.TokenEOF {
			return toks
		}
	}
}
