package vm

import "github.com/mna/chaosvm/types"

func init() {
	register(OpZstr, opZstr)
	register(OpConcat, opConcat)
}

// opZstr decodes an inline string literal: the compiler emits one `zstr`
// followed by a `concat <byte>` per character, so zstr peeks ahead opcode
// by opcode (consuming each one) until a non-concat opcode appears, then
// rewinds that one peek so the real opcode dispatches normally next.
func opZstr(m *Machine) error {
	var buf []byte
	for {
		local := m.nextImm()
		canon, ok := m.opmap[local]
		if !ok || Op(canon) != OpConcat {
			break
		}
		buf = append(buf, byte(m.nextImm()))
	}
	m.pc--
	m.push(string(buf))
	return nil
}

func opConcat(m *Machine) error {
	c := m.nextImm()
	s, _ := types.IsString(m.top())
	m.setTop(s + string(rune(c)))
	return nil
}
