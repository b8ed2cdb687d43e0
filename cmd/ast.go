package cmd

import (
	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/pipeline"
)

// ast: parse and dump the tree.
var astCmd = &cobra.Command{
	Use:   "ast <file.pas>",
	Short: "Print the parsed tree of a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(args[0])
		if err != nil {
			return err
		}
		prog, err := pipeline.Parse(src)
		if err != nil {
			return err
		}
		_, err = pretty.Println(prog)
		return err
	},
}
