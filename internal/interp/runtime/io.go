package runtime

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Output is the sink for WRITE/WRITELN effects: the literal string operand
// plus an append-newline flag.
type Output interface {
	Write(s string, newline bool) error
}

// Input is the source for READ/READLN effects: one value per named target
// identifier.
type Input interface {
	Read(name string) (Value, error)
}

// StreamOutput writes to an io.Writer; the CLI binds it to stdout.
type StreamOutput struct {
	W io.Writer
}

func (o StreamOutput) Write(s string, newline bool) error {
	if newline {
		_, err := fmt.Fprintln(o.W, s)
		return err
	}
	_, err := fmt.Fprint(o.W, s)
	return err
}

// ScanInput yields whitespace-separated input tokens, binding each as an
// integer, then a real, then a string by parse preference.
type ScanInput struct {
	scanner *bufio.Scanner
}

func NewScanInput(r io.Reader) *ScanInput {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	return &ScanInput{scanner: s}
}

func (in *ScanInput) Read(name string) (Value, error) {
	if !in.scanner.Scan() {
		if err := in.scanner.Err(); err != nil {
			return Value{}, errors.Wrapf(err, "reading input for %q", name)
		}
		return Value{}, fmt.Errorf("input exhausted reading %q", name)
	}
	word := in.scanner.Text()

	if n, err := strconv.ParseInt(word, 10, 64); err == nil {
		return IntValue(n), nil
	}
	if f, err := strconv.ParseFloat(word, 64); err == nil {
		return RealValue(f), nil
	}
	return StrValue(word), nil
}
