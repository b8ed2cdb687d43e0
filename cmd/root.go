package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
)

var (
	traceLexer   bool
	traceScope   bool
	traceStack   bool
	traceVisitor bool
)

var rootCmd = &cobra.Command{
	Use:   "minipascal",
	Short: "Lexer, parser, checker and interpreter for a Pascal subset",
	Long: `minipascal runs a four-stage pipeline over a single Pascal source file:
lexical analysis, recursive-descent parsing, scoped identifier checking,
and tree-walking execution on a runtime call stack.

Commands:
  run    Execute a (.pas) source file
  check  Stop after semantic analysis
  lex    Dump the token stream
  ast    Dump the parsed tree
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureTracing()
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		reportError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&traceLexer, "lexer", false, "trace tokens as they are produced")
	rootCmd.PersistentFlags().BoolVar(&traceScope, "scope", false, "trace scope enter/leave and symbol tables")
	rootCmd.PersistentFlags().BoolVar(&traceStack, "stack", false, "trace the runtime call stack")
	rootCmd.PersistentFlags().BoolVar(&traceVisitor, "visitor", false, "trace every AST visit")

	rootCmd.AddCommand(runCmd, checkCmd, lexCmd, astCmd)
}

// configureTracing installs log-backed tracers and raises the level to Debug
// only for the stages whose flag is set. Trace output never affects program
// results.
func configureTracing() {
	gtrace.SyntaxTracer = newTracer(traceLexer)
	gtrace.CoreTracer = newTracer(traceScope)
	gtrace.InterpreterTracer = newTracer(traceStack)
	gtrace.EngineTracer = newTracer(traceVisitor)
}

func newTracer(verbose bool) tracing.Trace {
	t := gologadapter.New()
	if verbose {
		t.SetTraceLevel(tracing.LevelDebug)
	} else {
		t.SetTraceLevel(tracing.LevelError)
	}
	return t
}

// reportError prints a diagnostic to stderr, coloring the prefix only when
// stderr is a terminal.
func reportError(err error) {
	prefix := "error:"
	if isatty.IsTerminal(os.Stderr.Fd()) {
		prefix = "\x1b[31merror:\x1b[0m"
	}
	fmt.Fprintln(os.Stderr, prefix, err)
}
