package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/symbols"
	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/token"
)

// The node set is closed: every variant is declared in this file and both
// tree walkers (semantic analyzer, interpreter) dispatch on it with a type
// switch. String() renders re-lexable source text; expressions print fully
// parenthesized so the printed form parses back to the same tree.

type Node interface {
	Tok() token.Token
	String() string
}

type Stmt interface {
	Node
	stmtNode()
}

type Expr interface {
	Node
	exprNode()
}

type Decl interface {
	Node
	declNode()
}

// TypeSpec is a declared type: a plain type name or an array spec.
type TypeSpec interface {
	Node
	typeSpecNode()
}

// --- Program structure ---

type Program struct {
	Token token.Token // the PROGRAM keyword
	Name  string
	Block *Block
}

func (p *Program) Tok() token.Token { return p.Token }
func (p *Program) String() string {
	var out bytes.Buffer
	out.WriteString("PROGRAM ")
	out.WriteString(p.Name)
	out.WriteString(";\n")
	out.WriteString(p.Block.String())
	out.WriteString(".")
	return out.String()
}

type Block struct {
	Declarations []Decl
	Compound     *Compound
}

func (b *Block) Tok() token.Token { return b.Compound.Token }
func (b *Block) String() string {
	var out bytes.Buffer
	wroteVar := false
	for _, d := range b.Declarations {
		vd, ok := d.(*VarDecl)
		if !ok {
			continue
		}
		if !wroteVar {
			out.WriteString("VAR\n")
			wroteVar = true
		}
		out.WriteString("  ")
		out.WriteString(vd.String())
		out.WriteString(";\n")
	}
	for _, d := range b.Declarations {
		if pd, ok := d.(*ProcedureDecl); ok {
			out.WriteString(pd.String())
			out.WriteString("\n")
		}
	}
	out.WriteString(b.Compound.String())
	return out.String()
}

type VarDecl struct {
	Var  *Var
	Type TypeSpec
}

func (vd *VarDecl) declNode()        {}
func (vd *VarDecl) Tok() token.Token { return vd.Var.Token }
func (vd *VarDecl) String() string {
	return vd.Var.String() + " : " + vd.Type.String()
}

type Param struct {
	Var  *Var
	Type TypeSpec
}

func (p *Param) Tok() token.Token { return p.Var.Token }
func (p *Param) String() string {
	return p.Var.String() + " : " + p.Type.String()
}

type ProcedureDecl struct {
	Token  token.Token // the PROCEDURE keyword
	Name   string
	Params []*Param
	Block  *Block
}

func (pd *ProcedureDecl) declNode()        {}
func (pd *ProcedureDecl) Tok() token.Token { return pd.Token }
func (pd *ProcedureDecl) String() string {
	var out bytes.Buffer
	out.WriteString("PROCEDURE ")
	out.WriteString(pd.Name)
	if len(pd.Params) > 0 {
		params := make([]string, len(pd.Params))
		for i, p := range pd.Params {
			params[i] = p.String()
		}
		out.WriteString("(")
		out.WriteString(strings.Join(params, "; "))
		out.WriteString(")")
	}
	out.WriteString(";\n")
	out.WriteString(pd.Block.String())
	out.WriteString(";")
	return out.String()
}

// --- Type specs ---

// Type is a plain type name: INTEGER, REAL, STRING or CHAR.
type Type struct {
	Token token.Token
	Name  string
}

func (t *Type) typeSpecNode()    {}
func (t *Type) Tok() token.Token { return t.Token }
func (t *Type) String() string   { return t.Name }

// ArrayType is 'ARRAY [lo..hi] OF INTEGER'. Arrays have no runtime value;
// the bounds only survive for diagnostics.
type ArrayType struct {
	Token token.Token // the ARRAY keyword
	Low   int
	High  int
	Elem  *Type
}

func (at *ArrayType) typeSpecNode()    {}
func (at *ArrayType) Tok() token.Token { return at.Token }
func (at *ArrayType) String() string {
	var out bytes.Buffer
	out.WriteString("ARRAY [")
	out.WriteString(strconv.Itoa(at.Low))
	out.WriteString("..")
	out.WriteString(strconv.Itoa(at.High))
	out.WriteString("] OF ")
	out.WriteString(at.Elem.String())
	return out.String()
}

// --- Statements ---

type Compound struct {
	Token    token.Token // the BEGIN keyword
	Children []Stmt
}

func (c *Compound) stmtNode()        {}
func (c *Compound) Tok() token.Token { return c.Token }
func (c *Compound) String() string {
	var out bytes.Buffer
	out.WriteString("BEGIN\n")
	stmts := make([]string, len(c.Children))
	for i, s := range c.Children {
		stmts[i] = s.String()
	}
	out.WriteString(strings.Join(stmts, ";\n"))
	out.WriteString("\nEND")
	return out.String()
}

type Assign struct {
	Var   *Var
	Token token.Token // the := token
	Value Expr
}

func (a *Assign) stmtNode()        {}
func (a *Assign) Tok() token.Token { return a.Token }
func (a *Assign) String() string {
	return a.Var.String() + " := " + a.Value.String()
}

type ProcedureCall struct {
	Token token.Token // the callee identifier
	Name  string
	Args  []Expr

	// Proc is the resolved procedure symbol, the single mutable annotation
	// the semantic analyzer attaches to the tree.
	Proc *symbols.Procedure
}

func (pc *ProcedureCall) stmtNode()        {}
func (pc *ProcedureCall) Tok() token.Token { return pc.Token }
func (pc *ProcedureCall) String() string {
	args := make([]string, len(pc.Args))
	for i, a := range pc.Args {
		args[i] = a.String()
	}
	return pc.Name + "(" + strings.Join(args, ", ") + ")"
}

type IfStatement struct {
	Token token.Token // the IF keyword
	Cond  *Relation
	Then  Stmt
	Else  Stmt // nil when no ELSE branch
}

func (is *IfStatement) stmtNode()        {}
func (is *IfStatement) Tok() token.Token { return is.Token }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("IF ")
	out.WriteString(is.Cond.String())
	out.WriteString(" THEN ")
	out.WriteString(is.Then.String())
	if is.Else != nil {
		out.WriteString(" ELSE ")
		out.WriteString(is.Else.String())
	}
	return out.String()
}

type WhileStatement struct {
	Token token.Token // the WHILE keyword
	Cond  *Relation
	Body  Stmt
}

func (ws *WhileStatement) stmtNode()        {}
func (ws *WhileStatement) Tok() token.Token { return ws.Token }
func (ws *WhileStatement) String() string {
	return "WHILE " + ws.Cond.String() + " DO " + ws.Body.String()
}

// ReadStatement is READ(a, b) or READLN(a, b); the token distinguishes the
// two forms.
type ReadStatement struct {
	Token   token.Token
	Targets []*Var
}

func (rs *ReadStatement) stmtNode()        {}
func (rs *ReadStatement) Tok() token.Token { return rs.Token }
func (rs *ReadStatement) String() string {
	names := make([]string, len(rs.Targets))
	for i, v := range rs.Targets {
		names[i] = v.String()
	}
	return rs.Token.Literal + "(" + strings.Join(names, ", ") + ")"
}

// WriteStatement is WRITE('...') or WRITELN('...'); the token distinguishes
// the two forms.
type WriteStatement struct {
	Token token.Token
	Value *StringLit
}

func (ws *WriteStatement) stmtNode()        {}
func (ws *WriteStatement) Tok() token.Token { return ws.Token }
func (ws *WriteStatement) String() string {
	return ws.Token.Literal + "(" + ws.Value.String() + ")"
}

type NoOp struct{}

func (n *NoOp) stmtNode()        {}
func (n *NoOp) Tok() token.Token { return token.Token{} }
func (n *NoOp) String() string   { return "" }

// --- Expressions ---

type BinOp struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

func (b *BinOp) exprNode()        {}
func (b *BinOp) Tok() token.Token { return b.Op }
func (b *BinOp) String() string {
	return "(" + b.Left.String() + " " + b.Op.Literal + " " + b.Right.String() + ")"
}

type UnaryOp struct {
	Op      token.Token
	Operand Expr
}

func (u *UnaryOp) exprNode()        {}
func (u *UnaryOp) Tok() token.Token { return u.Op }
func (u *UnaryOp) String() string {
	return "(" + u.Op.Literal + u.Operand.String() + ")"
}

// Relation is the single comparison allowed as an IF/WHILE condition:
// exactly one operator between two arithmetic expressions.
type Relation struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

func (r *Relation) exprNode()        {}
func (r *Relation) Tok() token.Token { return r.Op }
func (r *Relation) String() string {
	return r.Left.String() + " " + r.Op.Literal + " " + r.Right.String()
}

type Var struct {
	Token token.Token
	Name  string
}

func (v *Var) exprNode()        {}
func (v *Var) Tok() token.Token { return v.Token }
func (v *Var) String() string   { return v.Name }

// NumLit is an integer or real literal; IsReal selects which field holds
// the value.
type NumLit struct {
	Token  token.Token
	IsReal bool
	Int    int64
	Real   float64
}

func (n *NumLit) exprNode()        {}
func (n *NumLit) Tok() token.Token { return n.Token }
func (n *NumLit) String() string   { return n.Token.Literal }

type StringLit struct {
	Token token.Token
	Value string
}

func (s *StringLit) exprNode()        {}
func (s *StringLit) Tok() token.Token { return s.Token }
func (s *StringLit) String() string   { return "'" + s.Value + "'" }
