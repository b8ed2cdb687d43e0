package cmd

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/pipeline"
	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/runtime"
)

// run: the full pipeline, wired to stdin/stdout.
var runCmd = &cobra.Command{
	Use:   "run <file.pas>",
	Short: "Execute a Pascal source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(args[0])
		if err != nil {
			return err
		}
		out := runtime.StreamOutput{W: os.Stdout}
		in := runtime.NewScanInput(os.Stdin)
		return pipeline.Run(src, out, in)
	},
}

func readSource(path string) (string, error) {
	if filepath.Ext(path) != ".pas" {
		return "", errors.Errorf("source must have .pas extension: %s", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	return string(b), nil
}
