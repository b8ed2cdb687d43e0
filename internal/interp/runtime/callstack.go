package runtime

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global interpreter tracer (call-stack trace).
func T() tracing.Trace {
	return gtrace.InterpreterTracer
}

type ARKind string

const (
	ARProgram   ARKind = "PROGRAM"
	ARProcedure ARKind = "PROCEDURE"
)

// ActivationRecord holds the named bindings live for one in-progress program
// or procedure invocation. Names are case-insensitive. A record is mutated
// only while it is the top-of-stack frame.
type ActivationRecord struct {
	Name         string
	Kind         ARKind
	NestingLevel int
	members      map[string]Value
}

func NewActivationRecord(name string, kind ARKind, nestingLevel int) *ActivationRecord {
	return &ActivationRecord{
		Name:         name,
		Kind:         kind,
		NestingLevel: nestingLevel,
		members:      make(map[string]Value),
	}
}

func (ar *ActivationRecord) Set(name string, v Value) {
	ar.members[strings.ToLower(name)] = v
}

func (ar *ActivationRecord) Get(name string) (Value, bool) {
	v, ok := ar.members[strings.ToLower(name)]
	return v, ok
}

func (ar *ActivationRecord) String() string {
	var out bytes.Buffer
	fmt.Fprintf(&out, "%d: %s %s", ar.NestingLevel, ar.Kind, ar.Name)

	names := make([]string, 0, len(ar.members))
	for name := range ar.members {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&out, "\n   %-20s: %s", name, ar.members[name])
	}
	return out.String()
}

// CallStack is the LIFO sequence of activation records; depth equals the
// current dynamic nesting depth. Pushing past maxDepth is the fatal
// resource-exhaustion error for runaway recursion.
type CallStack struct {
	records   []*ActivationRecord
	maxDepth  int
	highWater int
}

func NewCallStack(maxDepth int) *CallStack {
	return &CallStack{maxDepth: maxDepth}
}

func (cs *CallStack) Push(ar *ActivationRecord) error {
	if len(cs.records) >= cs.maxDepth {
		return &Error{Msg: fmt.Sprintf("call stack exhausted at depth %d", cs.maxDepth)}
	}
	cs.records = append(cs.records, ar)
	if len(cs.records) > cs.highWater {
		cs.highWater = len(cs.records)
	}
	return nil
}

func (cs *CallStack) Pop() *ActivationRecord {
	if len(cs.records) == 0 {
		return nil
	}
	ar := cs.records[len(cs.records)-1]
	cs.records = cs.records[:len(cs.records)-1]
	return ar
}

// Peek returns the top-of-stack frame, the only frame the interpreter ever
// reads or writes variables through.
func (cs *CallStack) Peek() *ActivationRecord {
	if len(cs.records) == 0 {
		return nil
	}
	return cs.records[len(cs.records)-1]
}

func (cs *CallStack) Depth() int {
	return len(cs.records)
}

// HighWater reports the maximum depth the stack reached.
func (cs *CallStack) HighWater() int {
	return cs.highWater
}

func (cs *CallStack) String() string {
	var out bytes.Buffer
	out.WriteString("CALL STACK")
	for i := len(cs.records) - 1; i >= 0; i-- {
		out.WriteString("\n")
		out.WriteString(cs.records[i].String())
	}
	return out.String()
}
