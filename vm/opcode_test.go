package vm

import (
	"strings"
	"testing"
)

func TestOpcodeString(t *testing.T) {
	for op := Op(0); op <= OpMax; op++ {
		if s := op.String(); s == "" || strings.Contains(s, "illegal") {
			t.Errorf("invalid string representation of opcode %d", op)
		}
	}
}

func TestHandlersTableComplete(t *testing.T) {
	for op := Op(0); op <= OpMax; op++ {
		if handlers[op] == nil {
			t.Errorf("no handler registered for opcode %s (%d)", op, op)
		}
	}
}
