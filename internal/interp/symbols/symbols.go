package symbols

import (
	"fmt"
	"strings"
)

// Symbol is the closed set of things a scoped symbol table can hold: builtin
// type names, declared variables and declared procedures.
type Symbol interface {
	Name() string
	String() string
	symbol()
}

// Block is the procedure body reference carried by a Procedure symbol. It is
// satisfied by the parser's block node; keeping it an interface here avoids a
// dependency on the AST package.
type Block interface {
	String() string
}

// BuiltinType is a type name pre-seeded into the global scope (INTEGER,
// REAL, STRING, CHAR, ARRAY).
type BuiltinType struct {
	TypeName string
}

func (b *BuiltinType) symbol()      {}
func (b *BuiltinType) Name() string { return b.TypeName }
func (b *BuiltinType) String() string {
	return b.TypeName
}

// Variable is a declared variable or formal parameter together with its
// declared type.
type Variable struct {
	VarName string
	Type    Symbol
}

func (v *Variable) symbol()      {}
func (v *Variable) Name() string { return v.VarName }
func (v *Variable) String() string {
	typeName := "?"
	if v.Type != nil {
		typeName = v.Type.Name()
	}
	return fmt.Sprintf("<var %s : %s>", v.VarName, typeName)
}

// Procedure is a declared procedure. Params holds the formal parameters in
// declared order; Body is filled in by the semantic analyzer when the
// declaration is visited and is read by the interpreter on call.
type Procedure struct {
	ProcName string
	Params   []*Variable
	Body     Block
}

func (p *Procedure) symbol()      {}
func (p *Procedure) Name() string { return p.ProcName }
func (p *Procedure) String() string {
	names := make([]string, len(p.Params))
	for i, param := range p.Params {
		names[i] = param.VarName
	}
	return fmt.Sprintf("<procedure %s(%s)>", p.ProcName, strings.Join(names, ", "))
}
