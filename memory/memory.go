// Package memory defines the basic interfaces for working with a 6502
// family memory map. Since each implementation that is emulated has
// specific mappings (including shadowed regions) this is defined as an
// interface, with a flat RAM implementation for the common case of a
// CPU core exercising a plain 64 KiB address space.
package memory

import (
	"fmt"
	"math/rand"
	"time"
)

// Bank is the interface for a chunk of addressable memory that can be
// chained underneath other Banks (for mapping/mirroring) while still
// satisfying the bus.Bus contract directly for the flat case.
type Bank interface {
	// Read returns the data byte stored at addr. Counts as a bus cycle.
	Read(addr uint16) uint8
	// Write updates addr with the new value. For ROM addresses this is
	// simply a no-op without any error. Counts as a bus cycle.
	Write(addr uint16, val uint8)
	// Peek returns the data byte stored at addr without side effects and
	// without counting as a bus cycle.
	Peek(addr uint16) uint8
	// PowerOn performs power on reset of the memory. This is
	// implementation specific as to whether it's randomized or preset to
	// all zeros.
	PowerOn()
	// Parent holds a reference (if non-nil) to the next level memory
	// controller. A chain of these can be created in order to find the
	// top one and be able to query items such as the databus state (from
	// the last value to go over it). Some implementations depend on
	// transient databus state due to side effects.
	Parent() Bank
	// DatabusVal returns the last value seen to go across on the data bus.
	DatabusVal() uint8
}

// LatestDatabusVal hunts up a chain of Banks until it finds the outermost
// one and returns the DatabusVal from it.
func LatestDatabusVal(b Bank) uint8 {
	if b.Parent() != nil {
		return LatestDatabusVal(b.Parent())
	}
	return b.DatabusVal()
}

// ram implements a standard R/W interface to an address space for 8 bit
// systems. If this is mapped into a larger memory map it's up to a parent
// Bank to properly mask addr before calling Read/Write/Peek.
type ram struct {
	ram        []uint8
	parent     Bank
	databusVal uint8
}

// New8BitRAMBank creates a R/W RAM bank of the given size. Size must be a
// power of 2. If this is smaller than 64k (uint16 max) aliasing will occur
// on Read/Write/Peek.
func New8BitRAMBank(size int, parent Bank) (Bank, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("invalid size: %d must be a power of 2", size)
	}
	if size > 1<<16 {
		return nil, fmt.Errorf("invalid size: %d is bigger than 64k", size)
	}
	b := &ram{
		parent: parent,
	}
	// Go ahead and completely preallocate this now.
	b.ram = make([]uint8, size, size)
	return b, nil
}

// NewFlat64K creates a zeroed, non-randomized 64 KiB RAM bank ready to use
// directly as a bus.Bus. Unlike New8BitRAMBank+PowerOn this never
// randomizes contents, which is what deterministic test fixtures want.
func NewFlat64K() Bank {
	return &ram{ram: make([]uint8, 1<<16)}
}

// Read implements the interface for Bank. Address is clipped based on
// length of ram buffer.
func (r *ram) Read(addr uint16) uint8 {
	addr &= uint16(len(r.ram) - 1)
	val := r.ram[addr]
	r.databusVal = val
	return val
}

// Write implements the interface for Bank. Address is clipped based on
// length of ram buffer.
func (r *ram) Write(addr uint16, val uint8) {
	addr &= uint16(len(r.ram) - 1)
	r.databusVal = val
	r.ram[addr] = val
}

// Peek implements the interface for Bank. Never touches the databus latch
// and never counts as a cycle.
func (r *ram) Peek(addr uint16) uint8 {
	addr &= uint16(len(r.ram) - 1)
	return r.ram[addr]
}

// PowerOn implements the interface for memory.Bank and randomizes the RAM.
func (r *ram) PowerOn() {
	rand.Seed(time.Now().UnixNano())
	for i := range r.ram {
		r.ram[i] = uint8(rand.Intn(256))
	}
}

// Parent implements the interface for returning a possible parent
// memory.Bank.
func (r *ram) Parent() Bank {
	return r.parent
}

// DatabusVal returns the most recent seen databus item.
func (r *ram) DatabusVal() uint8 {
	return r.databusVal
}

// LoadAt copies data into the bank starting at addr. Used by harness
// loaders (Intel HEX, raw binary images) to seed a fixture before reset.
// For a plain RAM bank it writes the backing array directly, bypassing
// Write side effects, and silently truncates data that would run past the
// end of the bank. Any other Bank receives each byte through its own
// Write, and addresses past $FFFF wrap to $0000.
func LoadAt(b Bank, addr uint16, data []uint8) {
	if l, ok := b.(*ram); ok {
		for i, v := range data {
			a := int(addr) + i
			if a >= len(l.ram) {
				return
			}
			l.ram[a] = v
		}
		return
	}
	for i, v := range data {
		b.Write(addr+uint16(i), v)
	}
}
