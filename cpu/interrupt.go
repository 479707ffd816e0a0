package cpu

import "github.com/hollowclock/sixfiveohtwo/bus"

// Interrupt engine. Per spec.md §4.6 this is pull-based: the host calls
// SignalIRQ/SignalNMI/SignalReset to latch a request; Clock starts the
// highest-priority one at instruction boundaries, and a host may call
// HandlePendingInterrupt to service it at once. This replaces the
// teacher's push-based irq.Sender.Raised() polled every tick; see
// DESIGN.md for the rationale.

// SignalIRQ latches a level-triggered maskable interrupt request. It
// stays latched until ClearIRQ is called; servicing it does not clear
// it, matching real hardware where an IRQ line held low re-interrupts
// immediately after RTI unless the device deasserts it.
func (c *CPU) SignalIRQ() {
	c.irqLine = true
	c.latchPending()
}

// ClearIRQ deasserts the IRQ line.
func (c *CPU) ClearIRQ() {
	c.irqLine = false
	c.latchPending()
}

// SignalNMI latches an edge-triggered non-maskable interrupt. Unlike
// IRQ it is consumed exactly once: servicing it clears the latch.
func (c *CPU) SignalNMI() {
	c.nmiLine = true
	c.latchPending()
}

// SignalReset latches a reset request, which always wins over NMI/IRQ
// and is always serviced regardless of I.
func (c *CPU) SignalReset() {
	c.resetLine = true
	c.latchPending()
}

// latchPending recomputes State.PendingInterrupt from the three request
// lines without yet servicing anything: Reset beats NMI beats IRQ-if-
// unmasked.
func (c *CPU) latchPending() {
	switch {
	case c.resetLine:
		c.state.PendingInterrupt = PendingReset
	case c.nmiLine:
		c.state.PendingInterrupt = PendingNMI
	case c.irqLine && !c.flag(FlagI):
		c.state.PendingInterrupt = PendingIRQ
	case c.irqLine:
		// Latched but masked: recorded so a Waiting CPU still wakes (WAI
		// wakes on any pending request regardless of I), but it is only
		// serviced while I is set if the CPU is Waiting.
		c.state.PendingInterrupt = PendingIRQ
	default:
		c.state.PendingInterrupt = PendingNone
	}
}

// HandlePendingInterrupt services the highest-priority latched interrupt
// if one exists and the CPU is at an instruction boundary or Waiting,
// running the whole interrupt sequence before it returns (PC is then the
// vector target), and returns true if it did. Exposed so a host can
// drive interrupt servicing explicitly around Step/Run too.
func (c *CPU) HandlePendingInterrupt(b bus.Bus) bool {
	if !c.beginPendingInterrupt() {
		return false
	}
	for i := 0; i < maxCyclesPerInstruction && !c.atInstructionBoundary(); i++ {
		if _, err := c.Clock(b); err != nil {
			break
		}
	}
	return true
}

// beginPendingInterrupt installs the sequence for the highest-priority
// latched interrupt without running any of its cycles, returning true if
// it did. Clock calls it at instruction boundaries. A maskable IRQ is
// taken only while I is clear or the CPU is Waiting; taking an NMI or IRQ
// from Waiting sets status back to Running.
func (c *CPU) beginPendingInterrupt() bool {
	if c.state.Status != StatusWaiting && !c.atInstructionBoundary() {
		return false
	}
	switch c.state.PendingInterrupt {
	case PendingReset:
		c.resetLine = false
		c.latchPending()
		c.state.Pipeline = c.resetSequence()
		c.state.PipelineIndex = 0
		c.state.InstructionComplete = false
		return true
	case PendingNMI:
		c.nmiLine = false
		c.latchPending()
		if c.state.Status == StatusWaiting {
			c.state.Status = StatusRunning
		}
		c.state.Pipeline = c.interruptSequence(bus.NMIVector, false)
		c.state.PipelineIndex = 0
		c.state.InstructionComplete = false
		return true
	case PendingIRQ:
		if c.flag(FlagI) && c.state.Status != StatusWaiting {
			return false
		}
		if c.state.Status == StatusWaiting {
			c.state.Status = StatusRunning
		}
		c.state.Pipeline = c.interruptSequence(bus.IRQVector, false)
		c.state.PipelineIndex = 0
		c.state.InstructionComplete = false
		return true
	}
	return false
}

// resetSequence mirrors BRK's shape without the write side effects: real
// 6502 reset performs three stack "pushes" that are actually reads
// (R/W held high internally), then loads PC from the reset vector and
// sets I. 7 cycles in all.
func (c *CPU) resetSequence() []MicroOp {
	return []MicroOp{
		func(c *CPU, b bus.Bus) (bool, error) { return false, nil },
		func(c *CPU, b bus.Bus) (bool, error) { return false, nil },
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.SP--
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.SP--
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.SP--
			c.state.P = ResetVectorFlags
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			lo := uint16(b.Read(bus.ResetVector))
			c.state.TempAddress = lo
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			hi := uint16(b.Read(bus.ResetVector + 1))
			c.state.PC = c.state.TempAddress | (hi << 8)
			c.state.Status = StatusRunning
			c.state.A, c.state.X, c.state.Y = 0, 0, 0
			return true, nil
		},
	}
}

// interruptSequence builds the 7-cycle BRK/IRQ/NMI-shape sequence used
// for hardware interrupts (brk selects whether FlagB is pushed set,
// always false here since this path is only reached for hardware NMI/
// IRQ; software BRK uses pipelineBRK instead). Unlike BRK, which fetches
// and discards a real opcode and signature byte, a hardware interrupt has
// no instruction to fetch, so both throwaway cycles read the same PC
// twice without advancing it.
func (c *CPU) interruptSequence(vector uint16, brk bool) []MicroOp {
	return []MicroOp{
		func(c *CPU, b bus.Bus) (bool, error) {
			_ = b.Read(c.state.PC)
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			_ = b.Read(c.state.PC)
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			c.pushStack(b, uint8(c.state.PC>>8))
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			c.pushStack(b, uint8(c.state.PC))
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			flags := c.state.P | FlagU
			if brk {
				flags |= FlagB
			} else {
				flags &^= FlagB
			}
			c.pushStack(b, flags)
			if c.profile.ClearDOnInterrupt {
				c.setFlag(FlagD, false)
			}
			c.setFlag(FlagI, true)
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			lo := uint16(b.Read(vector))
			c.state.TempAddress = lo
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			hi := uint16(b.Read(vector + 1))
			c.state.PC = c.state.TempAddress | (hi << 8)
			return true, nil
		},
	}
}
