package scope

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/symbols"
)

// T traces to the global core tracer (scope trace).
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// ScopedSymbolTable maps case-insensitive names to symbols for one scope.
// Tables chain through Enclosing; the global table has no enclosing table.
type ScopedSymbolTable struct {
	symbols   map[string]symbols.Symbol
	Name      string
	Level     int
	Enclosing *ScopedSymbolTable
}

func New(name string, level int, enclosing *ScopedSymbolTable) *ScopedSymbolTable {
	return &ScopedSymbolTable{
		symbols:   make(map[string]symbols.Symbol),
		Name:      name,
		Level:     level,
		Enclosing: enclosing,
	}
}

// Define inserts a symbol into this table only. It returns an error when a
// same-named symbol already exists at this level; callers decide whether
// that is fatal.
func (s *ScopedSymbolTable) Define(sym symbols.Symbol) error {
	key := strings.ToLower(sym.Name())
	if _, exists := s.symbols[key]; exists {
		return fmt.Errorf("symbol %q already declared in scope %q", sym.Name(), s.Name)
	}
	T().Debugf("insert: %s (scope %s)", sym.Name(), s.Name)
	s.symbols[key] = sym
	return nil
}

// Lookup searches this table first, then walks the enclosing chain.
func (s *ScopedSymbolTable) Lookup(name string) (symbols.Symbol, bool) {
	key := strings.ToLower(name)
	for tbl := s; tbl != nil; tbl = tbl.Enclosing {
		T().Debugf("lookup: %s (scope %s)", name, tbl.Name)
		if sym, ok := tbl.symbols[key]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupLocal checks only this table, ignoring the enclosing chain.
func (s *ScopedSymbolTable) LookupLocal(name string) (symbols.Symbol, bool) {
	sym, ok := s.symbols[strings.ToLower(name)]
	return sym, ok
}

// String renders the table contents for the scope trace.
func (s *ScopedSymbolTable) String() string {
	var out bytes.Buffer
	enclosing := "<none>"
	if s.Enclosing != nil {
		enclosing = s.Enclosing.Name
	}
	fmt.Fprintf(&out, "scope %s (level %d, enclosing %s)\n", s.Name, s.Level, enclosing)

	keys := make([]string, 0, len(s.symbols))
	for key := range s.symbols {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(&out, "  %-12s: %s\n", s.symbols[key].Name(), s.symbols[key])
	}
	return out.String()
}
