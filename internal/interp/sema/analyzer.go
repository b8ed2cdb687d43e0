// Package sema implements the semantic analyzer: a single depth-first walk
// over the AST that builds the chain of scoped symbol tables, validates
// identifier declaration and use, and annotates procedure-call nodes with
// their resolved procedure symbol.
package sema

import (
	"fmt"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/ast"
	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/scope"
	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/symbols"
	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/token"
)

// T traces to the global engine tracer (generic AST-visit trace).
func T() tracing.Trace {
	return gtrace.EngineTracer
}

type ErrorCode string

const (
	DuplicateID ErrorCode = "duplicate identifier"
	IDNotFound  ErrorCode = "identifier not found"
)

// Error is a fatal semantic error carrying the offending token.
type Error struct {
	Code  ErrorCode
	Token token.Token
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: semantic error: %s %q",
		e.Token.Line, e.Token.Column, e.Code, e.Token.Literal)
}

type Analyzer struct {
	current *scope.ScopedSymbolTable
}

func New() *Analyzer {
	return &Analyzer{}
}

// Analyze walks the program once. On success its only externally visible
// effect is the resolved-procedure annotation on ProcedureCall nodes.
func (a *Analyzer) Analyze(prog *ast.Program) error {
	return a.walk(prog)
}

func (a *Analyzer) walk(n ast.Node) error {
	T().Debugf("visit %T", n)

	switch node := n.(type) {
	case *ast.Program:
		return a.walkProgram(node)
	case *ast.Block:
		return a.walkBlock(node)
	case *ast.VarDecl:
		return a.walkVarDecl(node)
	case *ast.ProcedureDecl:
		return a.walkProcedureDecl(node)
	case *ast.Compound:
		for _, child := range node.Children {
			if err := a.walk(child); err != nil {
				return err
			}
		}
		return nil
	case *ast.Assign:
		if err := a.walk(node.Value); err != nil {
			return err
		}
		return a.walk(node.Var)
	case *ast.ProcedureCall:
		return a.walkProcedureCall(node)
	case *ast.IfStatement:
		if err := a.walk(node.Cond); err != nil {
			return err
		}
		if err := a.walk(node.Then); err != nil {
			return err
		}
		if node.Else != nil {
			return a.walk(node.Else)
		}
		return nil
	case *ast.WhileStatement:
		if err := a.walk(node.Cond); err != nil {
			return err
		}
		return a.walk(node.Body)
	case *ast.ReadStatement:
		for _, target := range node.Targets {
			if err := a.walk(target); err != nil {
				return err
			}
		}
		return nil
	case *ast.WriteStatement, *ast.NoOp, *ast.NumLit, *ast.StringLit:
		return nil
	case *ast.Relation:
		if err := a.walk(node.Left); err != nil {
			return err
		}
		return a.walk(node.Right)
	case *ast.BinOp:
		if err := a.walk(node.Left); err != nil {
			return err
		}
		return a.walk(node.Right)
	case *ast.UnaryOp:
		return a.walk(node.Operand)
	case *ast.Var:
		if _, ok := a.current.Lookup(node.Name); !ok {
			return &Error{Code: IDNotFound, Token: node.Token}
		}
		return nil
	default:
		return fmt.Errorf("semantic analyzer: unexpected node %T", n)
	}
}

func (a *Analyzer) walkProgram(node *ast.Program) error {
	scope.T().Debugf("ENTER scope: global")
	global := scope.New("global", 1, nil)
	for _, name := range []string{"INTEGER", "REAL", "STRING", "CHAR", "ARRAY"} {
		if err := global.Define(&symbols.BuiltinType{TypeName: name}); err != nil {
			return err
		}
	}
	a.current = global

	if err := a.walk(node.Block); err != nil {
		return err
	}

	scope.T().Debugf("%s", global)
	a.current = nil
	scope.T().Debugf("LEAVE scope: global")
	return nil
}

func (a *Analyzer) walkBlock(node *ast.Block) error {
	for _, decl := range node.Declarations {
		if err := a.walk(decl); err != nil {
			return err
		}
	}
	return a.walk(node.Compound)
}

func (a *Analyzer) walkVarDecl(node *ast.VarDecl) error {
	typeSym, ok := a.current.Lookup(typeName(node.Type))
	if !ok {
		return &Error{Code: IDNotFound, Token: node.Type.Tok()}
	}

	// Duplicate declarations are checked against the current scope only;
	// shadowing an enclosing declaration is fine.
	if _, exists := a.current.LookupLocal(node.Var.Name); exists {
		return &Error{Code: DuplicateID, Token: node.Var.Token}
	}
	return a.current.Define(&symbols.Variable{VarName: node.Var.Name, Type: typeSym})
}

// walkProcedureDecl inserts the procedure symbol into the enclosing scope
// before entering the procedure's own scope, which is what makes direct and
// mutual recursion resolvable.
func (a *Analyzer) walkProcedureDecl(node *ast.ProcedureDecl) error {
	if _, exists := a.current.LookupLocal(node.Name); exists {
		return &Error{Code: DuplicateID, Token: node.Tok()}
	}
	procSym := &symbols.Procedure{ProcName: node.Name}
	if err := a.current.Define(procSym); err != nil {
		return err
	}

	scope.T().Debugf("ENTER scope: %s", node.Name)
	procScope := scope.New(node.Name, a.current.Level+1, a.current)
	a.current = procScope

	for _, param := range node.Params {
		paramType, ok := a.current.Lookup(typeName(param.Type))
		if !ok {
			return &Error{Code: IDNotFound, Token: param.Type.Tok()}
		}
		if _, exists := a.current.LookupLocal(param.Var.Name); exists {
			return &Error{Code: DuplicateID, Token: param.Var.Token}
		}
		paramSym := &symbols.Variable{VarName: param.Var.Name, Type: paramType}
		if err := a.current.Define(paramSym); err != nil {
			return err
		}
		procSym.Params = append(procSym.Params, paramSym)
	}

	if err := a.walk(node.Block); err != nil {
		return err
	}

	scope.T().Debugf("%s", procScope)
	a.current = procScope.Enclosing
	scope.T().Debugf("LEAVE scope: %s", node.Name)

	// Read by the interpreter when the procedure is called.
	procSym.Body = node.Block
	return nil
}

func (a *Analyzer) walkProcedureCall(node *ast.ProcedureCall) error {
	for _, arg := range node.Args {
		if err := a.walk(arg); err != nil {
			return err
		}
	}

	sym, ok := a.current.Lookup(node.Name)
	if !ok {
		return &Error{Code: IDNotFound, Token: node.Token}
	}
	// A non-procedure callee keeps a nil annotation and surfaces as a
	// runtime error at the call site. Formal/actual parameter counts are
	// not validated.
	if procSym, isProc := sym.(*symbols.Procedure); isProc {
		node.Proc = procSym
	}
	return nil
}

func typeName(spec ast.TypeSpec) string {
	if _, ok := spec.(*ast.ArrayType); ok {
		return "ARRAY"
	}
	return spec.(*ast.Type).Name
}
