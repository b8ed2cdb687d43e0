package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/lexer"
	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/token"
)

// lex: dump the token stream, one token per line.
var lexCmd = &cobra.Command{
	Use:   "lex <file.pas>",
	Short: "Print the token stream of a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(args[0])
		if err != nil {
			return err
		}

		l := lexer.New(src)
		for {
			tok, err := l.NextToken()
			if err != nil {
				return err
			}
			fmt.Printf("%-14s %-12q %d:%d\n", tok.Type, tok.Literal, tok.Line, tok.Column)
			if tok.Type == token.TokenEOF {
				return nil
			}
		}
	},
}
