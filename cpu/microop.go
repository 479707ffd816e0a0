package cpu

import "github.com/hollowclock/sixfiveohtwo/bus"

// instrMode distinguishes how an addressing-mode sequence terminates:
// a load reads a value and hands it to an operation function, a store
// writes a caller-supplied value, and a read-modify-write reads, performs
// a dummy write-back of the unmodified value (NMOS) or an extra read
// (irrelevant to our bus-cycle model, which always does the dummy write),
// then writes the modified value.
type instrMode int

const (
	modeLoad instrMode = iota
	modeStore
	modeRMW
)

// applyFunc performs the register/flag side effects of an operation
// against the byte already fetched into c.state.TempValue. It never
// touches the bus; it runs for free on the same cycle as the final
// addressing read, mirroring real hardware where the ALU settles within
// the same clock edge as the final data cycle.
type applyFunc func(c *CPU, b bus.Bus) (done bool, err error)

// fetchOpcodeOp is cycle 1 of every instruction: read the opcode byte at
// PC (a real, counted bus cycle even though the CPU already peeked it to
// select this pipeline) and advance PC. Shared by every table entry.
func fetchOpcodeOp(c *CPU, b bus.Bus) (bool, error) {
	c.state.OpcodeAddress = c.state.PC
	c.state.CurrentOpcode = b.Read(c.state.PC)
	c.state.PC++
	return false, nil
}

// seq prepends the shared opcode-fetch cycle to an addressing+operation
// cycle list to build one opcode's complete pipeline.
func seq(cycles ...MicroOp) []MicroOp {
	out := make([]MicroOp, 0, len(cycles)+1)
	out = append(out, fetchOpcodeOp)
	out = append(out, cycles...)
	return out
}

// oneCycle builds the pipeline for implied/accumulator instructions that
// do all their work in the single throwaway cycle following opcode fetch
// (real silicon reads PC again here and discards the result; we fold that
// read plus the register/flag update into one MicroOp since the read has
// no addressable effect on state).
func oneCycle(f func(c *CPU, b bus.Bus)) []MicroOp {
	return seq(func(c *CPU, b bus.Bus) (bool, error) {
		_ = b.Read(c.state.PC)
		f(c, b)
		return true, nil
	})
}

// fetchOperandByte reads the byte after the opcode into the low 8 bits of
// TempValue and advances PC. The addressing builders in addressing.go do
// not call it; each fetches its own operand bytes.
func fetchOperandByte(c *CPU, b bus.Bus) (bool, error) {
	c.state.TempValue = uint16(b.Read(c.state.PC))
	c.state.PC++
	return false, nil
}
