package cpu

import (
	"github.com/hollowclock/sixfiveohtwo/variant"
)

// buildNMOSSimpleDescriptor builds the same table as NMOS except every
// illegal opcode - including JAM - is replaced by a no-op that consumes
// exactly the same number of bus cycles and bytes its full-behavior
// counterpart would, per variant.NMOSSimple's contract. The documented
// 151 opcodes and the already-inert undocumented NOP family are shared
// verbatim with the full NMOS table.
func buildNMOSSimpleDescriptor() *Descriptor {
	d := &Descriptor{Profile: variant.ProfileFor(variant.NMOSSimple)}
	set := func(op uint8, mnemonic string, bytes int, pl []MicroOp) {
		d.Pipelines[op] = pl
		d.Mnemonic[op] = mnemonic
		d.Bytes[op] = bytes
	}
	populateCommonNMOS(set)

	nopNoEffect := func(c *CPU, v uint8) {}
	rmwNoEffect := func(c *CPU, v uint8) uint8 { return v }
	storeNoEffect := func(c *CPU) uint8 { return 0 }

	for _, op := range []uint8{0x07, 0x27, 0x47, 0x67, 0xC7, 0xE7} {
		set(op, "NOP", 2, zpRMW(rmwNoEffect))
	}
	for _, op := range []uint8{0x17, 0x37, 0x57, 0x77, 0xD7, 0xF7} {
		set(op, "NOP", 2, zpIndexedRMW(regX, rmwNoEffect))
	}
	for _, op := range []uint8{0x0F, 0x2F, 0x4F, 0x6F, 0xCF, 0xEF} {
		set(op, "NOP", 3, absRMW(rmwNoEffect))
	}
	for _, op := range []uint8{0x1F, 0x3F, 0x5F, 0x7F, 0xDF, 0xFF} {
		set(op, "NOP", 3, absIndexedRMW(regX, rmwNoEffect))
	}
	for _, op := range []uint8{0x1B, 0x3B, 0x5B, 0x7B, 0xDB, 0xFB} {
		set(op, "NOP", 3, absIndexedRMW(regY, rmwNoEffect))
	}
	for _, op := range []uint8{0x03, 0x23, 0x43, 0x63, 0xC3, 0xE3} {
		set(op, "NOP", 2, indirectXRMW(rmwNoEffect))
	}
	for _, op := range []uint8{0x13, 0x33, 0x53, 0x73, 0xD3, 0xF3} {
		set(op, "NOP", 2, indirectYRMW(rmwNoEffect))
	}

	// LAX/SAX/illegal-immediate family: reading has no side effect on
	// memory, so simply discard the loaded byte; the store-shaped family
	// (SAX/AHX/SHX/SHY/TAS) becomes a dummy read of the same cycle count
	// in place of the write.
	set(0xA7, "NOP", 2, zpLoad(nopNoEffect))
	set(0xB7, "NOP", 2, zpIndexedLoad(regY, nopNoEffect))
	set(0xAF, "NOP", 3, absLoad(nopNoEffect))
	set(0xBF, "NOP", 3, absIndexedLoad(regY, nopNoEffect))
	set(0xA3, "NOP", 2, indirectXLoad(nopNoEffect))
	set(0xB3, "NOP", 2, indirectYLoad(nopNoEffect))
	set(0xAB, "NOP", 2, immediate(nopNoEffect))
	set(0x0B, "NOP", 2, immediate(nopNoEffect))
	set(0x2B, "NOP", 2, immediate(nopNoEffect))
	set(0x4B, "NOP", 2, immediate(nopNoEffect))
	set(0x6B, "NOP", 2, immediate(nopNoEffect))
	set(0xCB, "NOP", 2, immediate(nopNoEffect))
	set(0xBB, "NOP", 3, absIndexedLoad(regY, nopNoEffect))
	set(0x8B, "NOP", 2, immediate(nopNoEffect))
	set(0xEB, "NOP", 2, immediate(nopNoEffect))

	set(0x87, "NOP", 2, zpStore(storeNoEffect))
	set(0x97, "NOP", 2, zpIndexedStore(regY, storeNoEffect))
	set(0x8F, "NOP", 3, absStore(storeNoEffect))
	set(0x83, "NOP", 2, indirectXStore(storeNoEffect))
	set(0x93, "NOP", 2, indirectYStore(storeNoEffect))
	set(0x9F, "NOP", 3, absIndexedStore(regY, storeNoEffect))
	set(0x9E, "NOP", 3, absIndexedStore(regY, storeNoEffect))
	set(0x9C, "NOP", 3, absIndexedStore(regX, storeNoEffect))
	set(0x9B, "NOP", 3, absIndexedStore(regY, storeNoEffect))

	for op := 0; op < 256; op++ {
		if d.Pipelines[op] == nil {
			// JAM opcodes: a correct-timing 2-cycle implied no-op, since
			// UndocNOP means there is no JAM concept in this variant.
			set(uint8(op), "NOP", 1, (*CPU)(nil).pipelineNOP())
		}
	}
	return d
}
