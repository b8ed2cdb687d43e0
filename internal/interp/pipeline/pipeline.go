// Package pipeline wires the four stages front to back: text to tokens to
// AST to analyzed AST to execution. Each run is independent; no state
// survives between runs.
package pipeline

import (
	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/ast"
	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/lexer"
	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/parser"
	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/runtime"
	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/sema"
)

// Parse lexes and parses the source text.
func Parse(src string) (*ast.Program, error) {
	p, err := parser.New(lexer.New(src))
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// Check parses and analyzes the source text, returning the annotated tree.
func Check(src string) (*ast.Program, error) {
	prog, err := Parse(src)
	if err != nil {
		return nil, err
	}
	if err := sema.New().Analyze(prog); err != nil {
		return nil, err
	}
	return prog, nil
}

// Run drives the full pipeline. Any lexical, syntax or semantic error
// returns before interpretation begins.
func Run(src string, out runtime.Output, in runtime.Input) error {
	prog, err := Check(src)
	if err != nil {
		return err
	}
	return runtime.New(out, in).Run(prog)
}
