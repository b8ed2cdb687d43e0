package runtime

import (
	"bytes"
	"strings"
	"testing"
)

func TestStreamOutput(t *testing.T) {
	var buf bytes.Buffer
	out := StreamOutput{W: &buf}

	if err := out.Write("a", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := out.Write("b", true); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := buf.String(); got != "ab\n" {
		t.Errorf("output expected=%q, got=%q", "ab\n", got)
	}
}

func TestScanInputParsePreference(t *testing.T) {
	in := NewScanInput(strings.NewReader("42 2.5 hello"))

	v, err := in.Read("a")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if v.Kind != IntKind || v.Int != 42 {
		t.Errorf("first token expected integer 42, got=%v", v)
	}

	v, err = in.Read("b")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if v.Kind != RealKind || v.Real != 2.5 {
		t.Errorf("second token expected real 2.5, got=%v", v)
	}

	v, err = in.Read("c")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if v.Kind != StrKind || v.Str != "hello" {
		t.Errorf("third token expected string hello, got=%v", v)
	}

	if _, err := in.Read("d"); err == nil {
		t.Errorf("expected exhaustion error")
	}
}
