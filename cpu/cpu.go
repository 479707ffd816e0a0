package cpu

import (
	"fmt"

	"github.com/hollowclock/sixfiveohtwo/bus"
	"github.com/hollowclock/sixfiveohtwo/variant"
)

// InvalidPipelineState is returned when a micro-op runs against a pipeline
// index or opTick-equivalent that the table construction should have made
// impossible. Per spec this must never occur on well-formed opcode tables;
// seeing it means a decoding-table defect, not a recoverable runtime
// condition.
type InvalidPipelineState struct {
	Reason string
}

func (e InvalidPipelineState) Error() string {
	return fmt.Sprintf("invalid pipeline state: %s", e.Reason)
}

// maxCyclesPerInstruction is the safety ceiling from spec.md §5: no
// documented instruction exceeds ~8 cycles. 100 is the overrun threshold
// that indicates pipeline corruption.
const maxCyclesPerInstruction = 100

// CPU is one 6502-family processor instance bound to a variant.Profile and
// its pipeline tables. It holds no reference to a bus between calls: the
// host passes a bus.Bus to every Reset/Clock/Step/Run/
// HandlePendingInterrupt call, so a single CPU can in principle be driven
// against different buses across its lifetime (not that anything sane
// would do that).
type CPU struct {
	state   State
	profile variant.Profile
	desc    *Descriptor

	// irqLine/nmiLine/resetLine are the latched request lines driven by
	// SignalIRQ/ClearIRQ/SignalNMI/SignalReset. State.PendingInterrupt is
	// derived from these whenever they change; see interrupt.go.
	irqLine   bool
	nmiLine   bool
	resetLine bool
}

// New constructs a CPU for the given variant, in an unpowered state. Call
// Reset before driving it — spec.md marks reset as the only legal
// initialization for observable execution.
func New(id variant.ID) *CPU {
	return &CPU{
		profile: variant.ProfileFor(id),
		desc:    descriptorFor(id),
	}
}

// Variant returns the variant.ID this CPU was constructed with.
func (c *CPU) Variant() variant.ID {
	return c.profile.ID
}

// State returns a copy of the CPU's current register/pipeline aggregate.
func (c *CPU) State() State {
	return c.state
}

// SetState overwrites the CPU's register/pipeline aggregate wholesale,
// e.g. to restore a save state. The host is responsible for ensuring the
// Pipeline/PipelineIndex pair it supplies is internally consistent;
// callers that only want to tweak registers should read-modify-SetState
// a value obtained from State().
func (c *CPU) SetState(s State) {
	c.state = s
}

// clearInstructionState resets the per-instruction scratch fields so the
// next Clock call starts decoding a fresh opcode. Mirrors the invariant in
// spec.md §3: at an instruction boundary Pipeline/PipelineIndex/
// InstructionComplete are all cleared before the next opcode is decoded.
func (c *CPU) clearInstructionState() {
	c.state.Pipeline = nil
	c.state.PipelineIndex = 0
	c.state.InstructionComplete = false
}

// pushStack writes val to $0100+SP and decrements SP (wrapping in 8 bits).
func (c *CPU) pushStack(b bus.Bus, val uint8) {
	b.Write(0x0100+uint16(c.state.SP), val)
	c.state.SP--
}

// pullStack increments SP (wrapping in 8 bits) then reads $0100+SP.
func (c *CPU) pullStack(b bus.Bus) uint8 {
	c.state.SP++
	return b.Read(0x0100 + uint16(c.state.SP))
}

// atInstructionBoundary reports whether the pipeline is empty or fully
// consumed, i.e. the CPU is ready to decode a new opcode (or service a
// pending interrupt) on the next Clock call.
func (c *CPU) atInstructionBoundary() bool {
	return len(c.state.Pipeline) == 0 || c.state.PipelineIndex >= len(c.state.Pipeline)
}
