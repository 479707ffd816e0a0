package cpu

import "github.com/hollowclock/sixfiveohtwo/bus"

// Addressing-mode sequence builders. Each returns the cycles following
// opcode fetch (seq prepends fetchOpcodeOp) for one specific addressing
// mode in one specific termination mode (load/store/rmw). The cycle
// counts and dummy-read/dummy-write placement mirror real 6502 bus
// traffic, not just the documented "typical" cycle count, so bus-trace
// based tests see the same accesses real hardware would generate.
//
// Every []MicroOp a builder returns is a singleton shared by every CPU
// instance running that variant's table (built once, on first use). None of these functions may close over a local variable that
// carries state between cycles — all cross-cycle scratch goes through
// State's Addr*/Temp* fields so two CPUs can run the same opcode
// concurrently without corrupting each other.

type loadFn func(c *CPU, val uint8)
type storeFn func(c *CPU) uint8
type rmwFn func(c *CPU, val uint8) uint8

// immediate reads the operand byte and applies it directly; two cycles
// total (fetch + this one).
func immediate(fn loadFn) []MicroOp {
	return seq(func(c *CPU, b bus.Bus) (bool, error) {
		v := b.Read(c.state.PC)
		c.state.PC++
		fn(c, v)
		return true, nil
	})
}

func zpAddr(c *CPU, b bus.Bus) (bool, error) {
	c.state.TempAddress = uint16(b.Read(c.state.PC))
	c.state.PC++
	return false, nil
}

func zpLoad(fn loadFn) []MicroOp {
	return seq(zpAddr, func(c *CPU, b bus.Bus) (bool, error) {
		fn(c, b.Read(c.state.TempAddress))
		return true, nil
	})
}

func zpStore(fn storeFn) []MicroOp {
	return seq(zpAddr, func(c *CPU, b bus.Bus) (bool, error) {
		b.Write(c.state.TempAddress, fn(c))
		return true, nil
	})
}

func zpRMW(fn rmwFn) []MicroOp {
	return seq(zpAddr,
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.AddrByte = b.Read(c.state.TempAddress)
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			b.Write(c.state.TempAddress, c.state.AddrByte)
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			b.Write(c.state.TempAddress, fn(c, c.state.AddrByte))
			return true, nil
		},
	)
}

type regSel func(c *CPU) uint8

func regX(c *CPU) uint8 { return c.state.X }
func regY(c *CPU) uint8 { return c.state.Y }

func zpIndexedAddr(idx regSel) MicroOp {
	return func(c *CPU, b bus.Bus) (bool, error) {
		base := uint8(c.state.TempAddress)
		_ = b.Read(uint16(base))
		c.state.TempAddress = uint16(base + idx(c))
		return false, nil
	}
}

func zpIndexedLoad(idx regSel, fn loadFn) []MicroOp {
	return seq(zpAddr, zpIndexedAddr(idx), func(c *CPU, b bus.Bus) (bool, error) {
		fn(c, b.Read(c.state.TempAddress))
		return true, nil
	})
}

func zpIndexedStore(idx regSel, fn storeFn) []MicroOp {
	return seq(zpAddr, zpIndexedAddr(idx), func(c *CPU, b bus.Bus) (bool, error) {
		b.Write(c.state.TempAddress, fn(c))
		return true, nil
	})
}

func zpIndexedRMW(idx regSel, fn rmwFn) []MicroOp {
	return seq(zpAddr, zpIndexedAddr(idx),
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.AddrByte = b.Read(c.state.TempAddress)
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			b.Write(c.state.TempAddress, c.state.AddrByte)
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			b.Write(c.state.TempAddress, fn(c, c.state.AddrByte))
			return true, nil
		},
	)
}

func absLow(c *CPU, b bus.Bus) (bool, error) {
	c.state.TempAddress = uint16(b.Read(c.state.PC))
	c.state.PC++
	return false, nil
}

func absHigh(c *CPU, b bus.Bus) (bool, error) {
	hi := uint16(b.Read(c.state.PC))
	c.state.PC++
	c.state.TempAddress |= hi << 8
	return false, nil
}

func absLoad(fn loadFn) []MicroOp {
	return seq(absLow, absHigh, func(c *CPU, b bus.Bus) (bool, error) {
		fn(c, b.Read(c.state.TempAddress))
		return true, nil
	})
}

func absStore(fn storeFn) []MicroOp {
	return seq(absLow, absHigh, func(c *CPU, b bus.Bus) (bool, error) {
		b.Write(c.state.TempAddress, fn(c))
		return true, nil
	})
}

func absRMW(fn rmwFn) []MicroOp {
	return seq(absLow, absHigh,
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.AddrByte = b.Read(c.state.TempAddress)
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			b.Write(c.state.TempAddress, c.state.AddrByte)
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			b.Write(c.state.TempAddress, fn(c, c.state.AddrByte))
			return true, nil
		},
	)
}

// absIndexedFetchLow stores the low operand byte into TempValue (free
// scratch at this point of absolute-indexed addressing) ahead of
// absIndexedHigh combining it with the high byte and the index register.
func absIndexedFetchLow(c *CPU, b bus.Bus) (bool, error) {
	c.state.TempValue = uint16(b.Read(c.state.PC))
	c.state.PC++
	return false, nil
}

// absIndexedHigh fetches the high byte, adds the index register, and
// records whether the addition crossed a page boundary in AddrCrossed.
// TempAddress ends up holding the uncorrected (same-page) address and
// TempValue the corrected one; a later cycle picks whichever is needed.
func absIndexedHigh(idx regSel) MicroOp {
	return func(c *CPU, b bus.Bus) (bool, error) {
		hi := uint16(b.Read(c.state.PC))
		c.state.PC++
		unindexed := c.state.TempValue | (hi << 8)
		indexed := unindexed + uint16(idx(c))
		c.state.AddrCrossed = (unindexed & 0xFF00) != (indexed & 0xFF00)
		c.state.TempAddress = (unindexed & 0xFF00) | (indexed & 0x00FF)
		c.state.TempValue = indexed
		return false, nil
	}
}

func absIndexedLoad(idx regSel, fn loadFn) []MicroOp {
	return seq(
		absIndexedFetchLow,
		absIndexedHigh(idx),
		func(c *CPU, b bus.Bus) (bool, error) {
			v := b.Read(c.state.TempAddress)
			if !c.state.AddrCrossed {
				fn(c, v)
				return true, nil
			}
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			fn(c, b.Read(c.state.TempValue))
			return true, nil
		},
	)
}

func absIndexedStore(idx regSel, fn storeFn) []MicroOp {
	return seq(
		absIndexedFetchLow,
		absIndexedHigh(idx),
		func(c *CPU, b bus.Bus) (bool, error) {
			_ = b.Read(c.state.TempAddress)
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			addr := c.state.TempAddress
			if c.state.AddrCrossed {
				addr = c.state.TempValue
			}
			b.Write(addr, fn(c))
			return true, nil
		},
	)
}

func absIndexedRMW(idx regSel, fn rmwFn) []MicroOp {
	return seq(
		absIndexedFetchLow,
		absIndexedHigh(idx),
		func(c *CPU, b bus.Bus) (bool, error) {
			_ = b.Read(c.state.TempAddress)
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			addr := c.state.TempValue
			if !c.state.AddrCrossed {
				addr = c.state.TempAddress
			}
			c.state.AddrByte = b.Read(addr)
			c.state.TempAddress = addr
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			b.Write(c.state.TempAddress, c.state.AddrByte)
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			b.Write(c.state.TempAddress, fn(c, c.state.AddrByte))
			return true, nil
		},
	)
}

// indirectXLoad resolves (zp,X): fetch the zero-page pointer, add X with
// zero-page wraparound, then read the two pointer bytes (also wrapping
// within page zero).
func indirectXLoad(fn loadFn) []MicroOp {
	return seq(
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.AddrPtr = b.Read(c.state.PC)
			c.state.PC++
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			_ = b.Read(uint16(c.state.AddrPtr))
			c.state.AddrPtr += c.state.X
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.TempAddress = uint16(b.Read(uint16(c.state.AddrPtr)))
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			hi := uint16(b.Read(uint16(c.state.AddrPtr + 1)))
			c.state.TempAddress |= hi << 8
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			fn(c, b.Read(c.state.TempAddress))
			return true, nil
		},
	)
}

func indirectXStore(fn storeFn) []MicroOp {
	return seq(
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.AddrPtr = b.Read(c.state.PC)
			c.state.PC++
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			_ = b.Read(uint16(c.state.AddrPtr))
			c.state.AddrPtr += c.state.X
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.TempAddress = uint16(b.Read(uint16(c.state.AddrPtr)))
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			hi := uint16(b.Read(uint16(c.state.AddrPtr + 1)))
			c.state.TempAddress |= hi << 8
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			b.Write(c.state.TempAddress, fn(c))
			return true, nil
		},
	)
}

func indirectXRMW(fn rmwFn) []MicroOp {
	return seq(
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.AddrPtr = b.Read(c.state.PC)
			c.state.PC++
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			_ = b.Read(uint16(c.state.AddrPtr))
			c.state.AddrPtr += c.state.X
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.TempAddress = uint16(b.Read(uint16(c.state.AddrPtr)))
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			hi := uint16(b.Read(uint16(c.state.AddrPtr + 1)))
			c.state.TempAddress |= hi << 8
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.AddrByte = b.Read(c.state.TempAddress)
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			b.Write(c.state.TempAddress, c.state.AddrByte)
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			b.Write(c.state.TempAddress, fn(c, c.state.AddrByte))
			return true, nil
		},
	)
}

// indirectYLoad/Store resolve (zp),Y: fetch the zero-page pointer, read
// both pointer bytes, add Y to the resulting address with the same
// page-cross timing as absolute,X/Y.
func indirectYLoad(fn loadFn) []MicroOp {
	return seq(
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.AddrPtr = b.Read(c.state.PC)
			c.state.PC++
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.TempValue = uint16(b.Read(uint16(c.state.AddrPtr)))
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			hi := uint16(b.Read(uint16(c.state.AddrPtr + 1)))
			unindexed := c.state.TempValue | (hi << 8)
			indexed := unindexed + uint16(c.state.Y)
			c.state.AddrCrossed = (unindexed & 0xFF00) != (indexed & 0xFF00)
			c.state.TempAddress = (unindexed & 0xFF00) | (indexed & 0x00FF)
			c.state.TempValue = indexed
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			v := b.Read(c.state.TempAddress)
			if !c.state.AddrCrossed {
				fn(c, v)
				return true, nil
			}
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			fn(c, b.Read(c.state.TempValue))
			return true, nil
		},
	)
}

func indirectYStore(fn storeFn) []MicroOp {
	return seq(
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.AddrPtr = b.Read(c.state.PC)
			c.state.PC++
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.TempValue = uint16(b.Read(uint16(c.state.AddrPtr)))
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			hi := uint16(b.Read(uint16(c.state.AddrPtr + 1)))
			unindexed := c.state.TempValue | (hi << 8)
			indexed := unindexed + uint16(c.state.Y)
			c.state.AddrCrossed = (unindexed & 0xFF00) != (indexed & 0xFF00)
			c.state.TempAddress = (unindexed & 0xFF00) | (indexed & 0x00FF)
			c.state.TempValue = indexed
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			_ = b.Read(c.state.TempAddress)
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			addr := c.state.TempAddress
			if c.state.AddrCrossed {
				addr = c.state.TempValue
			}
			b.Write(addr, fn(c))
			return true, nil
		},
	)
}

func indirectYRMW(fn rmwFn) []MicroOp {
	return seq(
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.AddrPtr = b.Read(c.state.PC)
			c.state.PC++
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.TempValue = uint16(b.Read(uint16(c.state.AddrPtr)))
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			hi := uint16(b.Read(uint16(c.state.AddrPtr + 1)))
			unindexed := c.state.TempValue | (hi << 8)
			indexed := unindexed + uint16(c.state.Y)
			c.state.TempAddress = indexed
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			_ = b.Read(c.state.TempAddress)
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.AddrByte = b.Read(c.state.TempAddress)
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			b.Write(c.state.TempAddress, c.state.AddrByte)
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			b.Write(c.state.TempAddress, fn(c, c.state.AddrByte))
			return true, nil
		},
	)
}

// zpIndirectLoad/Store implement the 65C02-only (zp) addressing mode:
// like (zp),Y but without the Y index, so no page-cross penalty exists.
func zpIndirectLoad(fn loadFn) []MicroOp {
	return seq(
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.AddrPtr = b.Read(c.state.PC)
			c.state.PC++
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.TempAddress = uint16(b.Read(uint16(c.state.AddrPtr)))
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			hi := uint16(b.Read(uint16(c.state.AddrPtr + 1)))
			c.state.TempAddress |= hi << 8
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			fn(c, b.Read(c.state.TempAddress))
			return true, nil
		},
	)
}

func zpIndirectStore(fn storeFn) []MicroOp {
	return seq(
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.AddrPtr = b.Read(c.state.PC)
			c.state.PC++
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.TempAddress = uint16(b.Read(uint16(c.state.AddrPtr)))
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			hi := uint16(b.Read(uint16(c.state.AddrPtr + 1)))
			c.state.TempAddress |= hi << 8
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			b.Write(c.state.TempAddress, fn(c))
			return true, nil
		},
	)
}

// relative builds a conditional branch pipeline: the offset byte is
// always fetched (2 cycles total), a not-taken branch ends there; a
// taken branch spends one more cycle computing PC+offset, and a further
// cycle only if that addition crosses a page boundary.
func relative(cond func(c *CPU) bool) []MicroOp {
	return seq(
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.AddrOffset = int8(b.Read(c.state.PC))
			c.state.PC++
			if !cond(c) {
				return true, nil
			}
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			_ = b.Read(c.state.PC)
			base := c.state.PC
			newPC := uint16(int32(base) + int32(c.state.AddrOffset))
			c.state.TempAddress = newPC
			c.state.PC = (base & 0xFF00) | (newPC & 0x00FF)
			if (base & 0xFF00) == (newPC & 0xFF00) {
				return true, nil
			}
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			_ = b.Read(c.state.PC)
			c.state.PC = c.state.TempAddress
			return true, nil
		},
	)
}

func jmpAbs() []MicroOp {
	return seq(absLow, absHigh, func(c *CPU, b bus.Bus) (bool, error) {
		c.state.PC = c.state.TempAddress
		return true, nil
	})
}

// jmpIndirect implements JMP (abs). On NMOS the pointer fetch famously
// fails to cross a page: JMP ($xxFF) reads the high byte from $xx00, not
// $(xx+1)00. fixed selects the corrected CMOS behavior, which costs one
// extra cycle.
func jmpIndirect(fixed bool) []MicroOp {
	if fixed {
		return seq(absLow, absHigh,
			func(c *CPU, b bus.Bus) (bool, error) {
				_ = b.Read(c.state.TempAddress)
				return false, nil
			},
			func(c *CPU, b bus.Bus) (bool, error) {
				c.state.TempValue = uint16(b.Read(c.state.TempAddress))
				return false, nil
			},
			func(c *CPU, b bus.Bus) (bool, error) {
				hi := uint16(b.Read(c.state.TempAddress + 1))
				c.state.PC = c.state.TempValue | (hi << 8)
				return true, nil
			},
		)
	}
	return seq(absLow, absHigh,
		func(c *CPU, b bus.Bus) (bool, error) {
			c.state.TempValue = uint16(b.Read(c.state.TempAddress))
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			ptr := c.state.TempAddress
			hiAddr := (ptr & 0xFF00) | ((ptr + 1) & 0x00FF)
			hi := uint16(b.Read(hiAddr))
			c.state.PC = c.state.TempValue | (hi << 8)
			return true, nil
		},
	)
}

// jmpIndirectXAbs implements the 65C02 JMP (abs,X): the pointer is
// absolute + X, computed before dereferencing, with no page-wrap bug.
func jmpIndirectXAbs() []MicroOp {
	return seq(absLow,
		func(c *CPU, b bus.Bus) (bool, error) {
			hi := uint16(b.Read(c.state.PC))
			c.state.PC++
			c.state.TempAddress |= hi << 8
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			_ = b.Read(c.state.PC)
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			ptr := c.state.TempAddress + uint16(c.state.X)
			c.state.TempValue = uint16(b.Read(ptr))
			c.state.TempAddress = ptr
			return false, nil
		},
		func(c *CPU, b bus.Bus) (bool, error) {
			hi := uint16(b.Read(c.state.TempAddress + 1))
			c.state.PC = c.state.TempValue | (hi << 8)
			return true, nil
		},
	)
}
