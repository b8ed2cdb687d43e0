package scope

import (
	"strings"
	"testing"

	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/symbols"
)

func TestDefineAndLookup(t *testing.T) {
	global := New("global", 1, nil)

	intType := &symbols.BuiltinType{TypeName: "INTEGER"}
	if err := global.Define(intType); err != nil {
		t.Fatalf("define INTEGER: %v", err)
	}
	if err := global.Define(&symbols.Variable{VarName: "x", Type: intType}); err != nil {
		t.Fatalf("define x: %v", err)
	}

	sym, ok := global.Lookup("x")
	if !ok {
		t.Fatalf("lookup x failed")
	}
	v, ok := sym.(*symbols.Variable)
	if !ok {
		t.Fatalf("x is not a *symbols.Variable, got=%T", sym)
	}
	if v.Type != intType {
		t.Errorf("x type expected INTEGER builtin, got=%v", v.Type)
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	global := New("global", 1, nil)
	if err := global.Define(&symbols.Variable{VarName: "Counter"}); err != nil {
		t.Fatalf("define: %v", err)
	}

	for _, name := range []string{"counter", "COUNTER", "CoUnTeR"} {
		if _, ok := global.Lookup(name); !ok {
			t.Errorf("lookup %q failed", name)
		}
	}
}

func TestDefineRejectsDuplicates(t *testing.T) {
	global := New("global", 1, nil)
	if err := global.Define(&symbols.Variable{VarName: "x"}); err != nil {
		t.Fatalf("first define: %v", err)
	}
	// Case only differs; same name.
	if err := global.Define(&symbols.Variable{VarName: "X"}); err == nil {
		t.Errorf("duplicate define should fail")
	}
}

func TestLookupWalksEnclosingChain(t *testing.T) {
	global := New("global", 1, nil)
	outer := &symbols.Variable{VarName: "x"}
	if err := global.Define(outer); err != nil {
		t.Fatalf("define outer x: %v", err)
	}

	proc := New("alpha", 2, global)
	if _, ok := proc.Lookup("x"); !ok {
		t.Errorf("nested scope should see enclosing x")
	}
	if _, ok := proc.LookupLocal("x"); ok {
		t.Errorf("LookupLocal must not consult the enclosing chain")
	}
}

func TestShadowingResolvesInnermost(t *testing.T) {
	global := New("global", 1, nil)
	outer := &symbols.Variable{VarName: "x"}
	if err := global.Define(outer); err != nil {
		t.Fatalf("define outer x: %v", err)
	}

	proc := New("alpha", 2, global)
	inner := &symbols.Variable{VarName: "x"}
	if err := proc.Define(inner); err != nil {
		t.Fatalf("shadowing define should succeed: %v", err)
	}

	sym, ok := proc.Lookup("x")
	if !ok || sym != symbols.Symbol(inner) {
		t.Errorf("nested lookup expected the inner x, got=%v", sym)
	}
	sym, ok = global.Lookup("x")
	if !ok || sym != symbols.Symbol(outer) {
		t.Errorf("global lookup expected the outer x, got=%v", sym)
	}
}

func TestStringDump(t *testing.T) {
	global := New("global", 1, nil)
	proc := New("alpha", 2, global)
	if err := proc.Define(&symbols.Variable{VarName: "b"}); err != nil {
		t.Fatalf("define: %v", err)
	}
	if err := proc.Define(&symbols.Variable{VarName: "a"}); err != nil {
		t.Fatalf("define: %v", err)
	}

	dump := proc.String()
	if !strings.Contains(dump, "scope alpha (level 2, enclosing global)") {
		t.Errorf("header missing from dump:\n%s", dump)
	}
	// Entries are sorted by name.
	if strings.Index(dump, "\n  a") > strings.Index(dump, "\n  b") {
		t.Errorf("dump entries should be sorted:\n%s", dump)
	}
}
