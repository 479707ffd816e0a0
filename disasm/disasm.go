// Package disasm implements a disassembler driven entirely by a variant's
// cpu.Descriptor (mnemonic + byte count per opcode) rather than its own
// copy of the opcode table, so it can never drift out of sync with the
// pipeline tables that actually execute. It does not attempt the teacher's
// addressing-mode-aware operand formatting (e.g. "LDA $1234,X"); DESIGN.md
// records this as a deliberate simplification in exchange for never having
// to keep a second per-opcode table in lockstep with cpu's four variants.
package disasm

import (
	"fmt"
	"strings"

	"github.com/hollowclock/sixfiveohtwo/cpu"
	"github.com/hollowclock/sixfiveohtwo/memory"
	"github.com/hollowclock/sixfiveohtwo/variant"
)

// Step disassembles the instruction at pc for the given variant, reading
// operand bytes from bank via Peek so disassembly never disturbs the
// fixture being inspected. It returns the formatted line and the number of
// bytes (1-3) the instruction occupies, mirroring the teacher's
// disassemble.Step(pc, ram) (string, int) shape.
func Step(pc uint16, id variant.ID, bank memory.Bank) (string, int) {
	desc := cpu.DescriptorFor(id)
	opcode := bank.Peek(pc)
	mnemonic := desc.Mnemonic[opcode]
	n := desc.Bytes[opcode]
	if n <= 0 {
		n = 1
	}
	if mnemonic == "" {
		mnemonic = "???"
	}

	operandBytes := make([]string, 0, n-1)
	for i := 1; i < n; i++ {
		operandBytes = append(operandBytes, fmt.Sprintf("%02X", bank.Peek(pc+uint16(i))))
	}
	raw := append([]string{fmt.Sprintf("%02X", opcode)}, operandBytes...)

	return fmt.Sprintf("%04X  %-8s %-4s %s", pc, strings.Join(raw, " "), mnemonic, strings.Join(operandBytes, " ")), n
}

// Disassemble renders count consecutive instructions starting at pc, one
// per line, advancing by each instruction's own byte count.
func Disassemble(pc uint16, id variant.ID, bank memory.Bank, count int) []string {
	lines := make([]string, 0, count)
	for i := 0; i < count; i++ {
		line, n := Step(pc, id, bank)
		lines = append(lines, line)
		pc += uint16(n)
	}
	return lines
}
