// Package cpu implements the 6502-family register/flag state machine, its
// per-cycle micro-op pipeline, the opcode decoding tables for all four
// supported variants, and the interrupt subsystem, bound to memory only
// through the bus.Bus contract.
package cpu

import (
	"fmt"

	"github.com/hollowclock/sixfiveohtwo/bus"
)

// Status flag bit positions within P.
const (
	FlagC = uint8(1) << 0 // Carry
	FlagZ = uint8(1) << 1 // Zero
	FlagI = uint8(1) << 2 // Interrupt disable
	FlagD = uint8(1) << 3 // Decimal mode
	FlagB = uint8(1) << 4 // Break (only meaningful in the pushed copy)
	FlagU = uint8(1) << 5 // Unused, always reads as 1
	FlagV = uint8(1) << 6 // Overflow
	FlagN = uint8(1) << 7 // Negative
)

// RunStatus enumerates the halt/run mode of the CPU.
type RunStatus int

const (
	// StatusRunning is normal instruction execution.
	StatusRunning RunStatus = iota
	// StatusStopped is entered by STP (65C02 WDC only) and is only
	// cleared by reset.
	StatusStopped
	// StatusJammed is entered by an NMOS JAM/KIL opcode and is only
	// cleared by reset.
	StatusJammed
	// StatusWaiting is entered by WAI (65C02 WDC only) and is cleared by
	// any pending interrupt.
	StatusWaiting
	// StatusBypassed is entered instead of Stopped/Jammed/Waiting when
	// State.IgnoreHaltStopWait is set; the opcode that would have halted
	// executes as a NOP. The status then stays Bypassed; nothing sets it
	// back to Running when the next instruction starts.
	StatusBypassed
)

func (s RunStatus) String() string {
	switch s {
	case StatusRunning:
		return "Running"
	case StatusStopped:
		return "Stopped"
	case StatusJammed:
		return "Jammed"
	case StatusWaiting:
		return "Waiting"
	case StatusBypassed:
		return "Bypassed"
	default:
		return fmt.Sprintf("RunStatus(%d)", int(s))
	}
}

// PendingInterrupt enumerates the highest-priority latched interrupt
// awaiting service. Reset dominates NMI, which dominates IRQ.
type PendingInterrupt int

const (
	// PendingNone means no interrupt is latched.
	PendingNone PendingInterrupt = iota
	// PendingIRQ is a maskable interrupt, serviced only when FlagI is
	// clear (or the CPU is Waiting).
	PendingIRQ
	// PendingNMI is a non-maskable interrupt, always serviced.
	PendingNMI
	// PendingReset always wins and always services immediately.
	PendingReset
)

func (p PendingInterrupt) String() string {
	switch p {
	case PendingNone:
		return "None"
	case PendingIRQ:
		return "Irq"
	case PendingNMI:
		return "Nmi"
	case PendingReset:
		return "Reset"
	default:
		return fmt.Sprintf("PendingInterrupt(%d)", int(p))
	}
}

// MicroOp is a single cycle of work within an instruction's pipeline. It
// reads/writes the bus at most once, may mutate registers or the scratch
// fields, and returns true when it is the final micro-op of the
// instruction (InstructionComplete is then set by the caller).
//
// Kept as a first-class callable value per spec's design notes rather than
// a tagged enum dispatched through a second switch: this avoids threading
// a duplicate "which micro-op is this" tag through every table entry while
// remaining allocation-free once a variant's tables are built, since each
// opcode's []MicroOp slice is built exactly once, the first time its
// variant's table is needed, and reused for every execution of that opcode.
type MicroOp func(c *CPU, b bus.Bus) (done bool, err error)

// State is the CPU's register and pipeline-control aggregate, owned by a
// CPU instance but swappable by the host (e.g. for save states or
// debugger rollback).
type State struct {
	A, X, Y uint8 // Accumulator and index registers.
	SP      uint8 // Stack pointer; the stack lives in page $01.
	PC      uint16
	P       uint8 // Packed status flags, see Flag* constants.

	Status           RunStatus
	PendingInterrupt PendingInterrupt

	CurrentOpcode  uint8
	OpcodeAddress  uint16
	Pipeline       []MicroOp
	PipelineIndex  int
	InstructionComplete bool

	TempAddress uint16
	TempValue   uint16

	// AddrPtr, AddrByte, AddrCrossed and AddrOffset are scratch slots used
	// only while a multi-cycle addressing-mode sequence is in flight (zero-
	// page pointer byte, RMW's pre-modification byte, the page-cross flag
	// for indexed/indirect-indexed modes, and a branch's signed offset).
	// They live on State rather than as closure-captured locals inside the
	// pipeline builders so that the built []MicroOp slices in a
	// Descriptor — singletons shared by every CPU instance of a variant —
	// stay reentrant across concurrently running CPUs.
	AddrPtr     uint8
	AddrByte    uint8
	AddrCrossed bool
	AddrOffset  int8

	// IgnoreHaltStopWait, if set, makes WAI/STP/JAM execute as a NOP and
	// report StatusBypassed instead of actually halting. A testing
	// convenience, not a hardware behavior.
	IgnoreHaltStopWait bool
}

// ResetVectorFlags is the value P takes on immediately after reset:
// U and I set, everything else clear. U is observably always 1.
const ResetVectorFlags = FlagU | FlagI
