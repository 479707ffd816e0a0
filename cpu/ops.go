package cpu

import "github.com/hollowclock/sixfiveohtwo/bus"

// Operation functions: the loadFn/storeFn/rmwFn values addressing.go's
// builders wire into pipelines. Named after their mnemonic family rather
// than by opcode, since several opcodes across addressing modes share
// one of these.

func (c *CPU) opLDA(v uint8) { c.state.A = v; c.setZN(v) }
func (c *CPU) opLDX(v uint8) { c.state.X = v; c.setZN(v) }
func (c *CPU) opLDY(v uint8) { c.state.Y = v; c.setZN(v) }

func (c *CPU) opSTA() uint8 { return c.state.A }
func (c *CPU) opSTX() uint8 { return c.state.X }
func (c *CPU) opSTY() uint8 { return c.state.Y }
func (c *CPU) opSTZ() uint8 { return 0 }

func (c *CPU) opBIT(v uint8) {
	c.setFlag(FlagZ, c.state.A&v == 0)
	c.setFlag(FlagN, v&0x80 != 0)
	c.setFlag(FlagV, v&0x40 != 0)
}

// opBITImmediate is the 65C02 BIT #i form: unlike memory BIT it only
// touches Z, since there is no operand byte to read N/V from.
func (c *CPU) opBITImmediate(v uint8) {
	c.setFlag(FlagZ, c.state.A&v == 0)
}

func (c *CPU) opORA(v uint8) { c.state.A |= v; c.setZN(c.state.A) }
func (c *CPU) opAND(v uint8) { c.state.A &= v; c.setZN(c.state.A) }
func (c *CPU) opEOR(v uint8) { c.state.A ^= v; c.setZN(c.state.A) }

func (c *CPU) opADC(v uint8) {
	if c.flag(FlagD) {
		r, carry, zero, neg, ov := adcDecimal(c.state.A, v, c.flag(FlagC), c.profile.CMOSBCDFlags)
		c.state.A = r
		c.setFlag(FlagC, carry)
		c.setFlag(FlagZ, zero)
		c.setFlag(FlagN, neg)
		c.setFlag(FlagV, ov)
		return
	}
	r, carry, ov := adcBinary(c.state.A, v, c.flag(FlagC))
	c.state.A = r
	c.setFlag(FlagC, carry)
	c.setFlag(FlagV, ov)
	c.setZN(r)
}

func (c *CPU) opSBC(v uint8) {
	if c.flag(FlagD) {
		r, carry, zero, neg, ov := sbcDecimal(c.state.A, v, c.flag(FlagC), c.profile.CMOSBCDFlags)
		c.state.A = r
		c.setFlag(FlagC, carry)
		c.setFlag(FlagZ, zero)
		c.setFlag(FlagN, neg)
		c.setFlag(FlagV, ov)
		return
	}
	r, carry, ov := sbcBinary(c.state.A, v, c.flag(FlagC))
	c.state.A = r
	c.setFlag(FlagC, carry)
	c.setFlag(FlagV, ov)
	c.setZN(r)
}

// Undocumented NMOS opcode family. Unstable variants (XAA, LAX #imm,
// AHX/SHX/SHY/TAS/LAS) are implemented with their commonly-emulated
// deterministic behavior rather than the magic-constant-dependent
// behavior real silicon exhibits, since the latter varies by die and
// temperature and isn't something a table-driven emulator can claim to
// reproduce faithfully.

func (c *CPU) opSLO(v uint8) uint8 {
	r, carry := asl(v)
	c.setFlag(FlagC, carry)
	c.state.A |= r
	c.setZN(c.state.A)
	return r
}

func (c *CPU) opRLA(v uint8) uint8 {
	r, carry := rol(v, c.flag(FlagC))
	c.setFlag(FlagC, carry)
	c.state.A &= r
	c.setZN(c.state.A)
	return r
}

func (c *CPU) opSRE(v uint8) uint8 {
	r, carry := lsr(v)
	c.setFlag(FlagC, carry)
	c.state.A ^= r
	c.setZN(c.state.A)
	return r
}

func (c *CPU) opRRA(v uint8) uint8 {
	r, carry := ror(v, c.flag(FlagC))
	c.setFlag(FlagC, carry)
	c.opADC(r)
	return r
}

func (c *CPU) opDCP(v uint8) uint8 {
	r := v - 1
	c.compare(c.state.A, r)
	return r
}

func (c *CPU) opISC(v uint8) uint8 {
	r := v + 1
	c.opSBC(r)
	return r
}

func (c *CPU) opSAX() uint8 { return c.state.A & c.state.X }

func (c *CPU) opLAX(v uint8) {
	c.state.A = v
	c.state.X = v
	c.setZN(v)
}

func (c *CPU) opANC(v uint8) {
	c.state.A &= v
	c.setZN(c.state.A)
	c.setFlag(FlagC, c.state.A&0x80 != 0)
}

func (c *CPU) opALR(v uint8) {
	c.state.A &= v
	r, carry := lsr(c.state.A)
	c.state.A = r
	c.setFlag(FlagC, carry)
	c.setZN(r)
}

func (c *CPU) opARR(v uint8) {
	c.state.A &= v
	r, _ := ror(c.state.A, c.flag(FlagC))
	c.state.A = r
	c.setZN(r)
	c.setFlag(FlagC, r&0x40 != 0)
	c.setFlag(FlagV, (r&0x40 != 0) != (r&0x20 != 0))
}

func (c *CPU) opSBX(v uint8) {
	combined := c.state.A & c.state.X
	c.setFlag(FlagC, combined >= v)
	c.state.X = combined - v
	c.setZN(c.state.X)
}

func (c *CPU) opLAS(v uint8) {
	r := v & c.state.SP
	c.state.A = r
	c.state.X = r
	c.state.SP = r
	c.setZN(r)
}

func (c *CPU) opXAA(v uint8) {
	c.state.A = c.state.X & v
	c.setZN(c.state.A)
}

// opHighAddrStore builds the AHX/SHX/SHY/TAS family: store reg &
// (high-address-byte+1), addressed via TempAddress already computed by
// the store addressing builder it is paired with (absolute-indexed or
// (zp),Y).
func opHighAddrStore(reg func(c *CPU) uint8) storeFn {
	return func(c *CPU) uint8 {
		hi := uint8(c.state.TempAddress>>8) + 1
		return reg(c) & hi
	}
}

func (c *CPU) opTAS() uint8 {
	c.state.SP = c.state.A & c.state.X
	hi := uint8(c.state.TempAddress>>8) + 1
	return c.state.SP & hi
}

func (c *CPU) opCMP(v uint8) { c.compare(c.state.A, v) }
func (c *CPU) opCPX(v uint8) { c.compare(c.state.X, v) }
func (c *CPU) opCPY(v uint8) { c.compare(c.state.Y, v) }

func (c *CPU) opASL(v uint8) uint8 {
	r, carry := asl(v)
	c.setFlag(FlagC, carry)
	c.setZN(r)
	return r
}

func (c *CPU) opLSR(v uint8) uint8 {
	r, carry := lsr(v)
	c.setFlag(FlagC, carry)
	c.setZN(r)
	return r
}

func (c *CPU) opROL(v uint8) uint8 {
	r, carry := rol(v, c.flag(FlagC))
	c.setFlag(FlagC, carry)
	c.setZN(r)
	return r
}

func (c *CPU) opROR(v uint8) uint8 {
	r, carry := ror(v, c.flag(FlagC))
	c.setFlag(FlagC, carry)
	c.setZN(r)
	return r
}

func (c *CPU) opINC(v uint8) uint8 { r := v + 1; c.setZN(r); return r }
func (c *CPU) opDEC(v uint8) uint8 { r := v - 1; c.setZN(r); return r }

func (c *CPU) opTRB(v uint8) uint8 {
	c.setFlag(FlagZ, c.state.A&v == 0)
	return v &^ c.state.A
}

func (c *CPU) opTSB(v uint8) uint8 {
	c.setFlag(FlagZ, c.state.A&v == 0)
	return v | c.state.A
}

// rmbSMB builds an RMB/SMB op: clears (set=false) or sets (set=true) bit
// n of the operand, leaving all flags untouched.
func rmbSMB(n uint, set bool) rmwFn {
	mask := uint8(1) << n
	return func(c *CPU, v uint8) uint8 {
		if set {
			return v | mask
		}
		return v &^ mask
	}
}

// Implied/accumulator-mode register operations, each built with oneCycle.

func (c *CPU) pipelineCLC() []MicroOp {
	return oneCycle(func(c *CPU, b bus.Bus) { c.setFlag(FlagC, false) })
}
func (c *CPU) pipelineSEC() []MicroOp {
	return oneCycle(func(c *CPU, b bus.Bus) { c.setFlag(FlagC, true) })
}
func (c *CPU) pipelineCLI() []MicroOp {
	return oneCycle(func(c *CPU, b bus.Bus) { c.setFlag(FlagI, false) })
}
func (c *CPU) pipelineSEI() []MicroOp {
	return oneCycle(func(c *CPU, b bus.Bus) { c.setFlag(FlagI, true) })
}
func (c *CPU) pipelineCLV() []MicroOp {
	return oneCycle(func(c *CPU, b bus.Bus) { c.setFlag(FlagV, false) })
}
func (c *CPU) pipelineCLD() []MicroOp {
	return oneCycle(func(c *CPU, b bus.Bus) { c.setFlag(FlagD, false) })
}
func (c *CPU) pipelineSED() []MicroOp {
	return oneCycle(func(c *CPU, b bus.Bus) { c.setFlag(FlagD, true) })
}

func (c *CPU) pipelineTAX() []MicroOp {
	return oneCycle(func(c *CPU, b bus.Bus) { c.state.X = c.state.A; c.setZN(c.state.X) })
}
func (c *CPU) pipelineTAY() []MicroOp {
	return oneCycle(func(c *CPU, b bus.Bus) { c.state.Y = c.state.A; c.setZN(c.state.Y) })
}
func (c *CPU) pipelineTXA() []MicroOp {
	return oneCycle(func(c *CPU, b bus.Bus) { c.state.A = c.state.X; c.setZN(c.state.A) })
}
func (c *CPU) pipelineTYA() []MicroOp {
	return oneCycle(func(c *CPU, b bus.Bus) { c.state.A = c.state.Y; c.setZN(c.state.A) })
}
func (c *CPU) pipelineTSX() []MicroOp {
	return oneCycle(func(c *CPU, b bus.Bus) { c.state.X = c.state.SP; c.setZN(c.state.X) })
}
func (c *CPU) pipelineTXS() []MicroOp {
	return oneCycle(func(c *CPU, b bus.Bus) { c.state.SP = c.state.X })
}
func (c *CPU) pipelineINX() []MicroOp {
	return oneCycle(func(c *CPU, b bus.Bus) { c.state.X++; c.setZN(c.state.X) })
}
func (c *CPU) pipelineINY() []MicroOp {
	return oneCycle(func(c *CPU, b bus.Bus) { c.state.Y++; c.setZN(c.state.Y) })
}
func (c *CPU) pipelineDEX() []MicroOp {
	return oneCycle(func(c *CPU, b bus.Bus) { c.state.X--; c.setZN(c.state.X) })
}
func (c *CPU) pipelineDEY() []MicroOp {
	return oneCycle(func(c *CPU, b bus.Bus) { c.state.Y--; c.setZN(c.state.Y) })
}
func (c *CPU) pipelineNOP() []MicroOp {
	return oneCycle(func(c *CPU, b bus.Bus) {})
}

// pipelineAccum builds an accumulator-mode RMW (ASL A/LSR A/ROL A/ROR A):
// one cycle, operates on A directly rather than a memory operand.
func (c *CPU) pipelineAccum(fn rmwFn) []MicroOp {
	return oneCycle(func(c *CPU, b bus.Bus) {
		c.state.A = fn(c, c.state.A)
	})
}

func (c *CPU) pipelineINCA() []MicroOp {
	return oneCycle(func(c *CPU, b bus.Bus) { c.state.A++; c.setZN(c.state.A) })
}
func (c *CPU) pipelineDECA() []MicroOp {
	return oneCycle(func(c *CPU, b bus.Bus) { c.state.A--; c.setZN(c.state.A) })
}

// Stack operations. PHA/PHP/PHX/PHY take 3 cycles (fetch, dummy read,
// push); PLA/PLP/PLX/PLY take 4 (fetch, dummy read, dummy SP increment
// read, pull).

func (c *CPU) pipelinePush(fn func(c *CPU) uint8) []MicroOp {
	return seq(
		func(c *CPU, b bus.Bus) (bool, error) {
			_ = b.Read(c.state.PC)
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			c.pushStack(b, fn(c))
			return true, nil
		},
	)
}

func (c *CPU) pipelinePull(fn func(c *CPU, v uint8)) []MicroOp {
	return seq(
		func(c *CPU, b bus.Bus) (bool, error) {
			_ = b.Read(c.state.PC)
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			_ = b.Read(0x0100 + uint16(c.state.SP))
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			fn(c, c.pullStack(b))
			return true, nil
		},
	)
}

func (c *CPU) pipelinePHA() []MicroOp {
	return c.pipelinePush(func(c *CPU) uint8 { return c.state.A })
}
func (c *CPU) pipelinePHX() []MicroOp {
	return c.pipelinePush(func(c *CPU) uint8 { return c.state.X })
}
func (c *CPU) pipelinePHY() []MicroOp {
	return c.pipelinePush(func(c *CPU) uint8 { return c.state.Y })
}
func (c *CPU) pipelinePHP() []MicroOp {
	return c.pipelinePush(func(c *CPU) uint8 { return c.state.P | FlagB | FlagU })
}
func (c *CPU) pipelinePLA() []MicroOp {
	return c.pipelinePull(func(c *CPU, v uint8) { c.state.A = v; c.setZN(v) })
}
func (c *CPU) pipelinePLX() []MicroOp {
	return c.pipelinePull(func(c *CPU, v uint8) { c.state.X = v; c.setZN(v) })
}
func (c *CPU) pipelinePLY() []MicroOp {
	return c.pipelinePull(func(c *CPU, v uint8) { c.state.Y = v; c.setZN(v) })
}
func (c *CPU) pipelinePLP() []MicroOp {
	return c.pipelinePull(func(c *CPU, v uint8) {
		c.state.P = (v &^ FlagB) | FlagU
	})
}

// pipelineJSR: fetch low, dummy stack-top read, push PC high, push PC
// low, fetch high and jump. 6 cycles total matching real hardware's
// interleaving of the operand fetch with the stack pushes.
func (c *CPU) pipelineJSR() []MicroOp {
	return seq(
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.TempAddress = uint16(b.Read(c.state.PC))
			c.state.PC++
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			_ = b.Read(0x0100 + uint16(c.state.SP))
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
			hi := uint16(b.Read(c.state.PC))
			c.state.PC = c.state.TempAddress | (hi << 8)
			return true, nil
		},
	)
}

// pipelineRTS: dummy read, dummy SP-increment read, pull low, pull high,
// final dummy read that increments PC past the JSR's operand. 6 cycles.
func (c *CPU) pipelineRTS() []MicroOp {
	return seq(
		func(c *CPU, b bus.Bus) (bool, error) {
			_ = b.Read(c.state.PC)
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			_ = b.Read(0x0100 + uint16(c.state.SP))
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.TempAddress = uint16(c.pullStack(b))
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			hi := uint16(c.pullStack(b))
			c.state.PC = c.state.TempAddress | (hi << 8)
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			_ = b.Read(c.state.PC)
			c.state.PC++
			return true, nil
		},
	)
}

// pipelineRTI: dummy read, dummy SP-increment read, pull P, pull PC low,
// pull PC high. 6 cycles.
func (c *CPU) pipelineRTI() []MicroOp {
	return seq(
		func(c *CPU, b bus.Bus) (bool, error) {
			_ = b.Read(c.state.PC)
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			_ = b.Read(0x0100 + uint16(c.state.SP))
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.P = (c.pullStack(b) &^ FlagB) | FlagU
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.TempAddress = uint16(c.pullStack(b))
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			hi := uint16(c.pullStack(b))
			c.state.PC = c.state.TempAddress | (hi << 8)
			return true, nil
		},
	)
}

// pipelineBRK: fetch (and discard) the signature byte, push PC, push P
// with B set, fetch the IRQ vector and jump, clearing D on CMOS variants
// per variant.Profile.ClearDOnInterrupt. 7 cycles.
func (c *CPU) pipelineBRK() []MicroOp {
	return seq(
		func(c *CPU, b bus.Bus) (bool, error) {
			_ = b.Read(c.state.PC)
			c.state.PC++
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
			c.pushStack(b, c.state.P|FlagB|FlagU)
			if c.profile.ClearDOnInterrupt {
				c.setFlag(FlagD, false)
			}
			c.setFlag(FlagI, true)
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			lo := uint16(b.Read(bus.IRQVector))
			c.state.TempAddress = lo
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			hi := uint16(b.Read(bus.IRQVector + 1))
			c.state.PC = c.state.TempAddress | (hi << 8)
			return true, nil
		},
	)
}

// pipelineWAI idles the CPU: the pipeline loops a single micro-op that
// pins itself in place via holdCycle while reporting every cycle as an
// instruction boundary (clock's bool is "always true while halted" per
// spec.md §4.6), until a pending interrupt exists, at which point this
// micro-op itself sets status back to Running and completes, so the
// facade services the interrupt at the next instruction boundary.
func (c *CPU) pipelineWAI() []MicroOp {
	return seq(func(c *CPU, b bus.Bus) (bool, error) {
		if c.state.IgnoreHaltStopWait {
			c.state.Status = StatusBypassed
			return true, nil
		}
		c.state.Status = StatusWaiting
		if c.state.PendingInterrupt != PendingNone {
			c.state.Status = StatusRunning
			return true, nil
		}
		c.holdCycle()
		return true, nil
	})
}

// pipelineSTP idles the CPU the same way pipelineWAI does, except only a
// pending reset (never IRQ/NMI) breaks it out of the hold, per spec.md
// §4.5's "only reset recovers" rule for Stopped/Jammed.
func (c *CPU) pipelineSTP() []MicroOp {
	return seq(func(c *CPU, b bus.Bus) (bool, error) {
		if c.state.IgnoreHaltStopWait {
			c.state.Status = StatusBypassed
			return true, nil
		}
		c.state.Status = StatusStopped
		if c.state.PendingInterrupt == PendingReset {
			return true, nil
		}
		c.holdCycle()
		return true, nil
	})
}

// pipelineJAM is pipelineSTP's counterpart for the illegal-opcode halt; see
// pipelineSTP for the reset-only wake rule.
func (c *CPU) pipelineJAM() []MicroOp {
	return seq(func(c *CPU, b bus.Bus) (bool, error) {
		if c.state.IgnoreHaltStopWait {
			c.state.Status = StatusBypassed
			return true, nil
		}
		c.state.Status = StatusJammed
		if c.state.PendingInterrupt == PendingReset {
			return true, nil
		}
		c.holdCycle()
		return true, nil
	})
}

// holdCycle pins PipelineIndex so that, once the facade's post-call
// increment runs, the same micro-op is what executes again next Clock.
// Used by the halt/wait loops (WAI/STP/JAM) whose pipeline is otherwise
// indistinguishable from a completed one once its last micro-op has run.
func (c *CPU) holdCycle() {
	c.state.PipelineIndex--
}

// Branch condition predicates.
func condCC(c *CPU) bool { return !c.flag(FlagC) }
func condCS(c *CPU) bool { return c.flag(FlagC) }
func condNE(c *CPU) bool { return !c.flag(FlagZ) }
func condEQ(c *CPU) bool { return c.flag(FlagZ) }
func condPL(c *CPU) bool { return !c.flag(FlagN) }
func condMI(c *CPU) bool { return c.flag(FlagN) }
func condVC(c *CPU) bool { return !c.flag(FlagV) }
func condVS(c *CPU) bool { return c.flag(FlagV) }
func condAlways(c *CPU) bool { return true }

// bbrBBS builds a Rockwell branch-on-bit-n-clear/set pipeline: zero page
// address, read operand, fetch offset, then one more cycle if the branch
// is taken. Unlike relative(), no extra cycle is added for a page cross.
func bbrBBS(n uint, set bool) func() []MicroOp {
	mask := uint8(1) << n
	return func() []MicroOp {
		return seq(
			func(c *CPU, b bus.Bus) (bool, error) {
				c.state.AddrPtr = b.Read(c.state.PC)
				c.state.PC++
				return false, nil
			},
			func(c *CPU, b bus.Bus) (bool, error) {
				c.state.AddrByte = b.Read(uint16(c.state.AddrPtr))
				return false, nil
			},
			func(c *CPU, b bus.Bus) (bool, error) {
				c.state.AddrOffset = int8(b.Read(c.state.PC))
				c.state.PC++
				bit := c.state.AddrByte&mask != 0
				taken := bit == set
				if !taken {
					return true, nil
				}
				c.state.TempValue = uint16(int32(c.state.PC) + int32(c.state.AddrOffset))
				return false, nil
			},
			func(c *CPU, b bus.Bus) (bool, error) {
				_ = b.Read(c.state.PC)
				c.state.PC = c.state.TempValue
				return true, nil
			},
		)
	}
}
