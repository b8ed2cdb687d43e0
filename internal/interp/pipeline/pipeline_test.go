package pipeline

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/runtime"
	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/sema"
)

func TestRunEndToEnd(t *testing.T) {
	src := `
PROGRAM Main;
VAR x, y : INTEGER;
PROCEDURE Alpha(a, b : INTEGER);
VAR tmp : INTEGER;
BEGIN
  tmp := a + b;
  IF tmp > 10 THEN WRITELN('big') ELSE WRITELN('small')
END;
BEGIN
  x := 2 + 3 * 4;
  y := 0;
  WHILE y < 3 DO y := y + 1;
  Alpha(x, y);
  WRITELN('done')
END.
`
	var buf bytes.Buffer
	err := Run(src, runtime.StreamOutput{W: &buf}, runtime.NewScanInput(strings.NewReader("")))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := "big\ndone\n"
	if buf.String() != want {
		t.Errorf("output expected=%q, got=%q", want, buf.String())
	}
}

func TestSemanticErrorStopsBeforeInterpretation(t *testing.T) {
	src := `
PROGRAM Main;
VAR x : INTEGER;
BEGIN
  x := 1;
  WRITELN('never printed');
  y := 2
END.
`
	var buf bytes.Buffer
	err := Run(src, runtime.StreamOutput{W: &buf}, runtime.NewScanInput(strings.NewReader("")))
	if err == nil {
		t.Fatalf("expected a semantic error, got none")
	}
	if _, ok := err.(*sema.Error); !ok {
		t.Fatalf("expected *sema.Error, got %T (%v)", err, err)
	}
	if buf.Len() != 0 {
		t.Errorf("no output may be produced before the error, got=%q", buf.String())
	}
}

func TestParseRejectsBadSyntax(t *testing.T) {
	if _, err := Parse("PROGRAM p BEGIN END."); err == nil {
		t.Errorf("expected a syntax error, got none")
	}
}

func TestCheckAcceptsValidSource(t *testing.T) {
	prog, err := Check("PROGRAM p; VAR x : INTEGER; BEGIN x := 1 END.")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if prog == nil {
		t.Fatalf("check returned a nil tree")
	}
}

func TestRunReadsInput(t *testing.T) {
	src := `
PROGRAM Echo;
VAR n : INTEGER;
BEGIN
  READ(n);
  IF n > 0 THEN WRITELN('positive') ELSE WRITELN('not positive')
END.
`
	var buf bytes.Buffer
	err := Run(src, runtime.StreamOutput{W: &buf}, runtime.NewScanInput(strings.NewReader("7")))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if buf.String() != "positive\n" {
		t.Errorf("output expected=%q, got=%q", "positive\n", buf.String())
	}
}
