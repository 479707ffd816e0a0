// Package bus defines the interface the CPU core uses to reach memory.
package bus

// Vector addresses, read little-endian. These are fixed by the 6502
// architecture, not configurable per implementation.
const (
	NMIVector   = uint16(0xFFFA)
	ResetVector = uint16(0xFFFC)
	IRQVector   = uint16(0xFFFE)
)

// Bus is the contract the CPU core uses to reach the address space.
//
// Read and Write each count as one emulated bus cycle and may have side
// effects (memory-mapped I/O, cycle counters, interrupt feedback
// registers). Peek must be side-effect-free and must not count as a
// cycle; the core uses it to inspect the next opcode when selecting a
// pipeline without double-counting the fetch.
type Bus interface {
	// Read returns the byte at addr. Counts as one bus cycle.
	Read(addr uint16) uint8
	// Write stores val at addr. Counts as one bus cycle.
	Write(addr uint16, val uint8)
	// Peek returns the byte at addr without side effects and without
	// consuming a cycle.
	Peek(addr uint16) uint8
}
