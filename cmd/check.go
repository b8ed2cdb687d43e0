package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/pipeline"
)

// check: lex, parse and analyze, then stop.
var checkCmd = &cobra.Command{
	Use:   "check <file.pas>",
	Short: "Parse and semantically check a source file without running it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(args[0])
		if err != nil {
			return err
		}
		if _, err := pipeline.Check(src); err != nil {
			return err
		}
		fmt.Printf("%s: ok\n", args[0])
		return nil
	},
}
