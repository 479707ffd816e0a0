package cpu

import "github.com/hollowclock/sixfiveohtwo/bus"

// Reset latches a reset request and drives it to completion immediately,
// leaving the CPU at StatusRunning with PC loaded from the reset vector.
// It is the only legal way to bring a freshly-constructed CPU to a
// well-defined state; calling any other method first is undefined by
// spec.md's reset invariant.
func (c *CPU) Reset(b bus.Bus) {
	c.SignalReset()
	c.clearInstructionState()
	for cycles := 0; cycles <= maxCyclesPerInstruction; cycles++ {
		done, err := c.Clock(b)
		if err != nil {
			return
		}
		if done {
			return
		}
	}
}

// Clock advances the CPU by exactly one bus cycle, decoding a new opcode
// or servicing a pending interrupt at instruction boundaries as needed.
// It returns true when the micro-op it just ran was the last one of an
// instruction (InstructionComplete), mirroring spec.md §5's per-cycle
// contract.
func (c *CPU) Clock(b bus.Bus) (bool, error) {
	if c.atInstructionBoundary() {
		if c.state.PendingInterrupt == PendingReset {
			c.beginPendingInterrupt()
		} else if c.state.Status == StatusStopped || c.state.Status == StatusJammed {
			// Only a reset can break Stopped/Jammed out of their loop;
			// anything else pending is ignored until then.
		} else if !c.beginPendingInterrupt() {
			c.clearInstructionState()
			c.state.Pipeline = c.desc.Pipelines[c.peekNextOpcode(b)]
		}
	}

	if len(c.state.Pipeline) == 0 {
		return false, InvalidPipelineState{Reason: "no pipeline installed for next cycle"}
	}
	if c.state.PipelineIndex >= len(c.state.Pipeline) {
		return false, InvalidPipelineState{Reason: "pipeline index past end"}
	}

	op := c.state.Pipeline[c.state.PipelineIndex]
	done, err := op(c, b)
	if err != nil {
		return false, err
	}
	c.state.PipelineIndex++
	if c.state.PipelineIndex > maxCyclesPerInstruction {
		return false, InvalidPipelineState{Reason: "instruction exceeded maximum cycle count"}
	}

	if done {
		c.state.InstructionComplete = true
		return true, nil
	}
	c.state.InstructionComplete = false
	return false, nil
}

// peekNextOpcode reads the byte at PC without advancing it, purely so
// Clock can select the right pipeline before the pipeline's own first
// micro-op (fetchOpcodeOp) performs the real fetch-and-advance.
func (c *CPU) peekNextOpcode(b bus.Bus) uint8 {
	return b.Peek(c.state.PC)
}

// Step runs Clock until the current instruction (or interrupt sequence)
// completes, returning the number of cycles consumed.
func (c *CPU) Step(b bus.Bus) (int, error) {
	cycles := 0
	for {
		done, err := c.Clock(b)
		cycles++
		if err != nil {
			return cycles, err
		}
		if done {
			return cycles, nil
		}
		if cycles > maxCyclesPerInstruction {
			return cycles, InvalidPipelineState{Reason: "Step exceeded maximum cycle count"}
		}
	}
}

// Run calls Step repeatedly until maxCycles bus cycles have been consumed
// (the last Step may overshoot slightly to finish its instruction) or an
// error is returned. It reports the total number of cycles actually run.
func (c *CPU) Run(b bus.Bus, maxCycles int) (int, error) {
	total := 0
	for total < maxCycles {
		cycles, err := c.Step(b)
		total += cycles
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
