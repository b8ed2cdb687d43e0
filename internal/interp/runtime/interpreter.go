// Package runtime implements tree-walking execution over the parsed and
// analyzed AST: a call stack of activation records, scalar arithmetic, and
// the READ/WRITE collaborator boundary.
package runtime

import (
	"fmt"

	"github.com/npillmayer/schuko/gtrace"

	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/ast"
	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/token"
)

// DefaultMaxStackDepth bounds dynamic call nesting; unbounded recursion in
// the interpreted program fails instead of corrupting state.
const DefaultMaxStackDepth = 1024

// Error is a fatal runtime error surfacing after semantic analysis has
// already passed. Token is the zero value when no source position applies.
type Error struct {
	Msg   string
	Token token.Token
}

func (e *Error) Error() string {
	if e.Token.Line > 0 {
		return fmt.Sprintf("%d:%d: runtime error: %s", e.Token.Line, e.Token.Column, e.Msg)
	}
	return fmt.Sprintf("runtime error: %s", e.Msg)
}

type Interpreter struct {
	out Output
	in  Input

	// MaxStackDepth may be lowered before Run; zero means the default.
	MaxStackDepth int

	stack        *CallStack
	programFrame *ActivationRecord
}

func New(out Output, in Input) *Interpreter {
	return &Interpreter{out: out, in: in, MaxStackDepth: DefaultMaxStackDepth}
}

// Stack exposes the call stack for diagnostics (depth, high-water mark).
func (i *Interpreter) Stack() *CallStack {
	return i.stack
}

// ProgramFrame returns the program's activation record; it stays readable
// for diagnostics after the run has popped it.
func (i *Interpreter) ProgramFrame() *ActivationRecord {
	return i.programFrame
}

// Run drives the program to completion or to the first fatal runtime error.
func (i *Interpreter) Run(prog *ast.Program) error {
	depth := i.MaxStackDepth
	if depth <= 0 {
		depth = DefaultMaxStackDepth
	}
	i.stack = NewCallStack(depth)

	T().Debugf("ENTER: PROGRAM %s", prog.Name)
	ar := NewActivationRecord(prog.Name, ARProgram, 1)
	i.programFrame = ar
	if err := i.stack.Push(ar); err != nil {
		return err
	}
	defer func() {
		i.stack.Pop()
		T().Debugf("LEAVE: PROGRAM %s", prog.Name)
	}()
	T().Debugf("%s", i.stack)

	return i.execBlock(prog.Block)
}

// execBlock runs a block's statements; declarations are no-ops at runtime.
func (i *Interpreter) execBlock(block *ast.Block) error {
	return i.exec(block.Compound)
}

func (i *Interpreter) exec(stmt ast.Stmt) error {
	gtrace.EngineTracer.Debugf("exec %T", stmt)

	switch node := stmt.(type) {
	case *ast.Compound:
		for _, child := range node.Children {
			if err := i.exec(child); err != nil {
				return err
			}
		}
		return nil
	case *ast.Assign:
		v, err := i.eval(node.Value)
		if err != nil {
			return err
		}
		i.stack.Peek().Set(node.Var.Name, v)
		return nil
	case *ast.ProcedureCall:
		return i.execCall(node)
	case *ast.IfStatement:
		holds, err := i.evalRelation(node.Cond)
		if err != nil {
			return err
		}
		if holds {
			return i.exec(node.Then)
		}
		if node.Else != nil {
			return i.exec(node.Else)
		}
		return nil
	case *ast.WhileStatement:
		for {
			holds, err := i.evalRelation(node.Cond)
			if err != nil {
				return err
			}
			if !holds {
				return nil
			}
			if err := i.exec(node.Body); err != nil {
				return err
			}
		}
	case *ast.ReadStatement:
		ar := i.stack.Peek()
		for _, target := range node.Targets {
			v, err := i.in.Read(target.Name)
			if err != nil {
				return &Error{Msg: err.Error(), Token: target.Token}
			}
			ar.Set(target.Name, v)
		}
		return nil
	case *ast.WriteStatement:
		newline := node.Token.Type == token.TokenWriteln
		if err := i.out.Write(node.Value.Value, newline); err != nil {
			return &Error{Msg: err.Error(), Token: node.Token}
		}
		return nil
	case *ast.NoOp:
		return nil
	default:
		return &Error{Msg: fmt.Sprintf("unexpected statement node %T", stmt)}
	}
}

// execCall evaluates actuals in the caller's frame, binds formals by value
// positionally, pushes a fresh PROCEDURE frame and runs the resolved body.
func (i *Interpreter) execCall(node *ast.ProcedureCall) error {
	proc := node.Proc
	if proc == nil {
		return &Error{Msg: fmt.Sprintf("call of non-procedure %q", node.Name), Token: node.Token}
	}
	body, ok := proc.Body.(*ast.Block)
	if !ok {
		return &Error{Msg: fmt.Sprintf("procedure %q has no body", node.Name), Token: node.Token}
	}

	ar := NewActivationRecord(proc.ProcName, ARProcedure, i.stack.Depth()+1)

	// Formal/actual counts are not validated; extra actuals are dropped and
	// missing ones stay unbound.
	n := len(proc.Params)
	if len(node.Args) < n {
		n = len(node.Args)
	}
	for idx := 0; idx < n; idx++ {
		v, err := i.eval(node.Args[idx])
		if err != nil {
			return err
		}
		ar.Set(proc.Params[idx].VarName, v)
	}

	if err := i.stack.Push(ar); err != nil {
		if rtErr, isRT := err.(*Error); isRT {
			return &Error{Msg: rtErr.Msg, Token: node.Token}
		}
		return err
	}
	defer func() {
		i.stack.Pop()
		T().Debugf("LEAVE: PROCEDURE %s", proc.ProcName)
		T().Debugf("%s", i.stack)
	}()

	T().Debugf("ENTER: PROCEDURE %s", proc.ProcName)
	T().Debugf("%s", i.stack)

	return i.execBlock(body)
}

func (i *Interpreter) eval(expr ast.Expr) (Value, error) {
	gtrace.EngineTracer.Debugf("eval %T", expr)

	switch node := expr.(type) {
	case *ast.NumLit:
		if node.IsReal {
			return RealValue(node.Real), nil
		}
		return IntValue(node.Int), nil
	case *ast.StringLit:
		return StrValue(node.Value), nil
	case *ast.Var:
		// Lookup is confined to the top-of-stack frame: only locals and own
		// parameters are visible to a procedure body.
		v, ok := i.stack.Peek().Get(node.Name)
		if !ok {
			return Value{}, &Error{Msg: fmt.Sprintf("undefined variable %q", node.Name), Token: node.Token}
		}
		return v, nil
	case *ast.UnaryOp:
		return i.evalUnaryOp(node)
	case *ast.BinOp:
		return i.evalBinOp(node)
	default:
		return Value{}, &Error{Msg: fmt.Sprintf("unexpected expression node %T", expr)}
	}
}

func (i *Interpreter) evalUnaryOp(node *ast.UnaryOp) (Value, error) {
	v, err := i.eval(node.Operand)
	if err != nil {
		return Value{}, err
	}
	if !v.isNumeric() {
		return Value{}, &Error{Msg: fmt.Sprintf("unary %s applied to a string", node.Op.Literal), Token: node.Op}
	}
	if node.Op.Type == token.TokenMinus {
		if v.Kind == IntKind {
			return IntValue(-v.Int), nil
		}
		return RealValue(-v.Real), nil
	}
	return v, nil
}

func (i *Interpreter) evalBinOp(node *ast.BinOp) (Value, error) {
	left, err := i.eval(node.Left)
	if err != nil {
		return Value{}, err
	}
	right, err := i.eval(node.Right)
	if err != nil {
		return Value{}, err
	}

	// String concatenation is the one non-numeric operation.
	if left.Kind == StrKind && right.Kind == StrKind && node.Op.Type == token.TokenPlus {
		return StrValue(left.Str + right.Str), nil
	}
	if !left.isNumeric() || !right.isNumeric() {
		return Value{}, &Error{
			Msg:   fmt.Sprintf("invalid operands for %s", node.Op.Literal),
			Token: node.Op,
		}
	}

	bothInt := left.Kind == IntKind && right.Kind == IntKind

	switch node.Op.Type {
	case token.TokenPlus:
		if bothInt {
			return IntValue(left.Int + right.Int), nil
		}
		return RealValue(left.asReal() + right.asReal()), nil
	case token.TokenMinus:
		if bothInt {
			return IntValue(left.Int - right.Int), nil
		}
		return RealValue(left.asReal() - right.asReal()), nil
	case token.TokenMul:
		if bothInt {
			return IntValue(left.Int * right.Int), nil
		}
		return RealValue(left.asReal() * right.asReal()), nil
	case token.TokenIntegerDiv:
		if !bothInt {
			return Value{}, &Error{Msg: "DIV requires integer operands", Token: node.Op}
		}
		if right.Int == 0 {
			return Value{}, &Error{Msg: "division by zero", Token: node.Op}
		}
		return IntValue(left.Int / right.Int), nil
	case token.TokenFloatDiv:
		if right.asReal() == 0 {
			return Value{}, &Error{Msg: "division by zero", Token: node.Op}
		}
		return RealValue(left.asReal() / right.asReal()), nil
	default:
		return Value{}, &Error{Msg: fmt.Sprintf("unexpected operator %s", node.Op.Literal), Token: node.Op}
	}
}

// evalRelation evaluates the single comparison of an IF/WHILE condition.
func (i *Interpreter) evalRelation(rel *ast.Relation) (bool, error) {
	left, err := i.eval(rel.Left)
	if err != nil {
		return false, err
	}
	right, err := i.eval(rel.Right)
	if err != nil {
		return false, err
	}

	switch rel.Op.Type {
	case token.TokenAnd:
		lt, err := left.isTrue()
		if err != nil {
			return false, &Error{Msg: err.Error(), Token: rel.Op}
		}
		rt, err := right.isTrue()
		if err != nil {
			return false, &Error{Msg: err.Error(), Token: rel.Op}
		}
		return lt && rt, nil
	case token.TokenOr:
		lt, err := left.isTrue()
		if err != nil {
			return false, &Error{Msg: err.Error(), Token: rel.Op}
		}
		rt, err := right.isTrue()
		if err != nil {
			return false, &Error{Msg: err.Error(), Token: rel.Op}
		}
		return lt || rt, nil
	case token.TokenEqual:
		if left.Kind == StrKind && right.Kind == StrKind {
			return left.Str == right.Str, nil
		}
		if left.isNumeric() && right.isNumeric() {
			return left.asReal() == right.asReal(), nil
		}
		return false, &Error{Msg: "cannot compare string with number", Token: rel.Op}
	}

	if !left.isNumeric() || !right.isNumeric() {
		return false, &Error{
			Msg:   fmt.Sprintf("ordering comparison %s requires numeric operands", rel.Op.Literal),
			Token: rel.Op,
		}
	}
	switch rel.Op.Type {
	case token.TokenLess:
		return left.asReal() < right.asReal(), nil
	case token.TokenGreater:
		return left.asReal() > right.asReal(), nil
	case token.TokenLessEqual:
		return left.asReal() <= right.asReal(), nil
	case token.TokenGreaterEqual:
		return left.asReal() >= right.asReal(), nil
	default:
		return false, &Error{Msg: fmt.Sprintf("unexpected relation operator %s", rel.Op.Literal), Token: rel.Op}
	}
}
