package cpu

import (
	"github.com/hollowclock/sixfiveohtwo/variant"
)

// buildNMOSDescriptor builds the opcode table for the original NMOS
// 6502, including the full stable undocumented-opcode family and the
// JAM/KIL opcodes that halt the processor.
func buildNMOSDescriptor() *Descriptor {
	d := &Descriptor{Profile: variant.ProfileFor(variant.NMOS)}
	set := func(op uint8, mnemonic string, bytes int, pl []MicroOp) {
		d.Pipelines[op] = pl
		d.Mnemonic[op] = mnemonic
		d.Bytes[op] = bytes
	}
	populateCommonNMOS(set)
	populateIllegalNMOS(set)
	for op := 0; op < 256; op++ {
		if d.Pipelines[op] == nil {
			set(uint8(op), "JAM", 1, (*CPU)(nil).pipelineJAM())
		}
	}
	return d
}

type setFunc func(op uint8, mnemonic string, bytes int, pl []MicroOp)

// populateCommonNMOS fills every documented 6502 opcode plus the NOP
// family, shared verbatim by both NMOS and NMOS-simple (they differ only
// in the effectful illegal opcodes and JAM).
func populateCommonNMOS(set setFunc) {
	// ADC
	set(0x69, "ADC", 2, immediate((*CPU).opADC))
	set(0x65, "ADC", 2, zpLoad((*CPU).opADC))
	set(0x75, "ADC", 2, zpIndexedLoad(regX, (*CPU).opADC))
	set(0x6D, "ADC", 3, absLoad((*CPU).opADC))
	set(0x7D, "ADC", 3, absIndexedLoad(regX, (*CPU).opADC))
	set(0x79, "ADC", 3, absIndexedLoad(regY, (*CPU).opADC))
	set(0x61, "ADC", 2, indirectXLoad((*CPU).opADC))
	set(0x71, "ADC", 2, indirectYLoad((*CPU).opADC))

	// AND
	set(0x29, "AND", 2, immediate((*CPU).opAND))
	set(0x25, "AND", 2, zpLoad((*CPU).opAND))
	set(0x35, "AND", 2, zpIndexedLoad(regX, (*CPU).opAND))
	set(0x2D, "AND", 3, absLoad((*CPU).opAND))
	set(0x3D, "AND", 3, absIndexedLoad(regX, (*CPU).opAND))
	set(0x39, "AND", 3, absIndexedLoad(regY, (*CPU).opAND))
	set(0x21, "AND", 2, indirectXLoad((*CPU).opAND))
	set(0x31, "AND", 2, indirectYLoad((*CPU).opAND))

	// ASL
	set(0x0A, "ASL", 1, (*CPU)(nil).pipelineAccum((*CPU).opASL))
	set(0x06, "ASL", 2, zpRMW((*CPU).opASL))
	set(0x16, "ASL", 2, zpIndexedRMW(regX, (*CPU).opASL))
	set(0x0E, "ASL", 3, absRMW((*CPU).opASL))
	set(0x1E, "ASL", 3, absIndexedRMW(regX, (*CPU).opASL))

	// Branches
	set(0x90, "BCC", 2, relative(condCC))
	set(0xB0, "BCS", 2, relative(condCS))
	set(0xF0, "BEQ", 2, relative(condEQ))
	set(0x30, "BMI", 2, relative(condMI))
	set(0xD0, "BNE", 2, relative(condNE))
	set(0x10, "BPL", 2, relative(condPL))
	set(0x50, "BVC", 2, relative(condVC))
	set(0x70, "BVS", 2, relative(condVS))

	// BIT
	set(0x24, "BIT", 2, zpLoad((*CPU).opBIT))
	set(0x2C, "BIT", 3, absLoad((*CPU).opBIT))

	// BRK
	set(0x00, "BRK", 1, (*CPU)(nil).pipelineBRK())

	// Flags
	set(0x18, "CLC", 1, (*CPU)(nil).pipelineCLC())
	set(0xD8, "CLD", 1, (*CPU)(nil).pipelineCLD())
	set(0x58, "CLI", 1, (*CPU)(nil).pipelineCLI())
	set(0xB8, "CLV", 1, (*CPU)(nil).pipelineCLV())
	set(0x38, "SEC", 1, (*CPU)(nil).pipelineSEC())
	set(0xF8, "SED", 1, (*CPU)(nil).pipelineSED())
	set(0x78, "SEI", 1, (*CPU)(nil).pipelineSEI())

	// CMP
	set(0xC9, "CMP", 2, immediate((*CPU).opCMP))
	set(0xC5, "CMP", 2, zpLoad((*CPU).opCMP))
	set(0xD5, "CMP", 2, zpIndexedLoad(regX, (*CPU).opCMP))
	set(0xCD, "CMP", 3, absLoad((*CPU).opCMP))
	set(0xDD, "CMP", 3, absIndexedLoad(regX, (*CPU).opCMP))
	set(0xD9, "CMP", 3, absIndexedLoad(regY, (*CPU).opCMP))
	set(0xC1, "CMP", 2, indirectXLoad((*CPU).opCMP))
	set(0xD1, "CMP", 2, indirectYLoad((*CPU).opCMP))

	// CPX/CPY
	set(0xE0, "CPX", 2, immediate((*CPU).opCPX))
	set(0xE4, "CPX", 2, zpLoad((*CPU).opCPX))
	set(0xEC, "CPX", 3, absLoad((*CPU).opCPX))
	set(0xC0, "CPY", 2, immediate((*CPU).opCPY))
	set(0xC4, "CPY", 2, zpLoad((*CPU).opCPY))
	set(0xCC, "CPY", 3, absLoad((*CPU).opCPY))

	// DEC/INC memory
	set(0xC6, "DEC", 2, zpRMW((*CPU).opDEC))
	set(0xD6, "DEC", 2, zpIndexedRMW(regX, (*CPU).opDEC))
	set(0xCE, "DEC", 3, absRMW((*CPU).opDEC))
	set(0xDE, "DEC", 3, absIndexedRMW(regX, (*CPU).opDEC))
	set(0xE6, "INC", 2, zpRMW((*CPU).opINC))
	set(0xF6, "INC", 2, zpIndexedRMW(regX, (*CPU).opINC))
	set(0xEE, "INC", 3, absRMW((*CPU).opINC))
	set(0xFE, "INC", 3, absIndexedRMW(regX, (*CPU).opINC))

	// DEX/DEY/INX/INY
	set(0xCA, "DEX", 1, (*CPU)(nil).pipelineDEX())
	set(0x88, "DEY", 1, (*CPU)(nil).pipelineDEY())
	set(0xE8, "INX", 1, (*CPU)(nil).pipelineINX())
	set(0xC8, "INY", 1, (*CPU)(nil).pipelineINY())

	// EOR
	set(0x49, "EOR", 2, immediate((*CPU).opEOR))
	set(0x45, "EOR", 2, zpLoad((*CPU).opEOR))
	set(0x55, "EOR", 2, zpIndexedLoad(regX, (*CPU).opEOR))
	set(0x4D, "EOR", 3, absLoad((*CPU).opEOR))
	set(0x5D, "EOR", 3, absIndexedLoad(regX, (*CPU).opEOR))
	set(0x59, "EOR", 3, absIndexedLoad(regY, (*CPU).opEOR))
	set(0x41, "EOR", 2, indirectXLoad((*CPU).opEOR))
	set(0x51, "EOR", 2, indirectYLoad((*CPU).opEOR))

	// JMP/JSR
	set(0x4C, "JMP", 3, jmpAbs())
	set(0x6C, "JMP", 3, jmpIndirect(false))
	set(0x20, "JSR", 3, (*CPU)(nil).pipelineJSR())

	// LDA/LDX/LDY
	set(0xA9, "LDA", 2, immediate((*CPU).opLDA))
	set(0xA5, "LDA", 2, zpLoad((*CPU).opLDA))
	set(0xB5, "LDA", 2, zpIndexedLoad(regX, (*CPU).opLDA))
	set(0xAD, "LDA", 3, absLoad((*CPU).opLDA))
	set(0xBD, "LDA", 3, absIndexedLoad(regX, (*CPU).opLDA))
	set(0xB9, "LDA", 3, absIndexedLoad(regY, (*CPU).opLDA))
	set(0xA1, "LDA", 2, indirectXLoad((*CPU).opLDA))
	set(0xB1, "LDA", 2, indirectYLoad((*CPU).opLDA))
	set(0xA2, "LDX", 2, immediate((*CPU).opLDX))
	set(0xA6, "LDX", 2, zpLoad((*CPU).opLDX))
	set(0xB6, "LDX", 2, zpIndexedLoad(regY, (*CPU).opLDX))
	set(0xAE, "LDX", 3, absLoad((*CPU).opLDX))
	set(0xBE, "LDX", 3, absIndexedLoad(regY, (*CPU).opLDX))
	set(0xA0, "LDY", 2, immediate((*CPU).opLDY))
	set(0xA4, "LDY", 2, zpLoad((*CPU).opLDY))
	set(0xB4, "LDY", 2, zpIndexedLoad(regX, (*CPU).opLDY))
	set(0xAC, "LDY", 3, absLoad((*CPU).opLDY))
	set(0xBC, "LDY", 3, absIndexedLoad(regX, (*CPU).opLDY))

	// LSR
	set(0x4A, "LSR", 1, (*CPU)(nil).pipelineAccum((*CPU).opLSR))
	set(0x46, "LSR", 2, zpRMW((*CPU).opLSR))
	set(0x56, "LSR", 2, zpIndexedRMW(regX, (*CPU).opLSR))
	set(0x4E, "LSR", 3, absRMW((*CPU).opLSR))
	set(0x5E, "LSR", 3, absIndexedRMW(regX, (*CPU).opLSR))

	// NOP (documented) and the undocumented NOP family, identical in
	// both NMOS and NMOS-simple since they have no effect either way.
	set(0xEA, "NOP", 1, (*CPU)(nil).pipelineNOP())
	for _, op := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		set(op, "NOP", 1, (*CPU)(nil).pipelineNOP())
	}
	for _, op := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		set(op, "NOP", 2, immediate(func(c *CPU, v uint8) {}))
	}
	for _, op := range []uint8{0x04, 0x44, 0x64} {
		set(op, "NOP", 2, zpLoad(func(c *CPU, v uint8) {}))
	}
	for _, op := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		set(op, "NOP", 2, zpIndexedLoad(regX, func(c *CPU, v uint8) {}))
	}
	set(0x0C, "NOP", 3, absLoad(func(c *CPU, v uint8) {}))
	for _, op := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		set(op, "NOP", 3, absIndexedLoad(regX, func(c *CPU, v uint8) {}))
	}

	// ORA
	set(0x09, "ORA", 2, immediate((*CPU).opORA))
	set(0x05, "ORA", 2, zpLoad((*CPU).opORA))
	set(0x15, "ORA", 2, zpIndexedLoad(regX, (*CPU).opORA))
	set(0x0D, "ORA", 3, absLoad((*CPU).opORA))
	set(0x1D, "ORA", 3, absIndexedLoad(regX, (*CPU).opORA))
	set(0x19, "ORA", 3, absIndexedLoad(regY, (*CPU).opORA))
	set(0x01, "ORA", 2, indirectXLoad((*CPU).opORA))
	set(0x11, "ORA", 2, indirectYLoad((*CPU).opORA))

	// Stack
	set(0x48, "PHA", 1, (*CPU)(nil).pipelinePHA())
	set(0x08, "PHP", 1, (*CPU)(nil).pipelinePHP())
	set(0x68, "PLA", 1, (*CPU)(nil).pipelinePLA())
	set(0x28, "PLP", 1, (*CPU)(nil).pipelinePLP())

	// ROL/ROR
	set(0x2A, "ROL", 1, (*CPU)(nil).pipelineAccum((*CPU).opROL))
	set(0x26, "ROL", 2, zpRMW((*CPU).opROL))
	set(0x36, "ROL", 2, zpIndexedRMW(regX, (*CPU).opROL))
	set(0x2E, "ROL", 3, absRMW((*CPU).opROL))
	set(0x3E, "ROL", 3, absIndexedRMW(regX, (*CPU).opROL))
	set(0x6A, "ROR", 1, (*CPU)(nil).pipelineAccum((*CPU).opROR))
	set(0x66, "ROR", 2, zpRMW((*CPU).opROR))
	set(0x76, "ROR", 2, zpIndexedRMW(regX, (*CPU).opROR))
	set(0x6E, "ROR", 3, absRMW((*CPU).opROR))
	set(0x7E, "ROR", 3, absIndexedRMW(regX, (*CPU).opROR))

	// RTI/RTS
	set(0x40, "RTI", 1, (*CPU)(nil).pipelineRTI())
	set(0x60, "RTS", 1, (*CPU)(nil).pipelineRTS())

	// SBC
	set(0xE9, "SBC", 2, immediate((*CPU).opSBC))
	set(0xE5, "SBC", 2, zpLoad((*CPU).opSBC))
	set(0xF5, "SBC", 2, zpIndexedLoad(regX, (*CPU).opSBC))
	set(0xED, "SBC", 3, absLoad((*CPU).opSBC))
	set(0xFD, "SBC", 3, absIndexedLoad(regX, (*CPU).opSBC))
	set(0xF9, "SBC", 3, absIndexedLoad(regY, (*CPU).opSBC))
	set(0xE1, "SBC", 2, indirectXLoad((*CPU).opSBC))
	set(0xF1, "SBC", 2, indirectYLoad((*CPU).opSBC))
	set(0xEB, "SBC", 2, immediate((*CPU).opSBC))

	// STA/STX/STY
	set(0x85, "STA", 2, zpStore((*CPU).opSTA))
	set(0x95, "STA", 2, zpIndexedStore(regX, (*CPU).opSTA))
	set(0x8D, "STA", 3, absStore((*CPU).opSTA))
	set(0x9D, "STA", 3, absIndexedStore(regX, (*CPU).opSTA))
	set(0x99, "STA", 3, absIndexedStore(regY, (*CPU).opSTA))
	set(0x81, "STA", 2, indirectXStore((*CPU).opSTA))
	set(0x91, "STA", 2, indirectYStore((*CPU).opSTA))
	set(0x86, "STX", 2, zpStore((*CPU).opSTX))
	set(0x96, "STX", 2, zpIndexedStore(regY, (*CPU).opSTX))
	set(0x8E, "STX", 3, absStore((*CPU).opSTX))
	set(0x84, "STY", 2, zpStore((*CPU).opSTY))
	set(0x94, "STY", 2, zpIndexedStore(regX, (*CPU).opSTY))
	set(0x8C, "STY", 3, absStore((*CPU).opSTY))

	// Transfers
	set(0xAA, "TAX", 1, (*CPU)(nil).pipelineTAX())
	set(0xA8, "TAY", 1, (*CPU)(nil).pipelineTAY())
	set(0xBA, "TSX", 1, (*CPU)(nil).pipelineTSX())
	set(0x8A, "TXA", 1, (*CPU)(nil).pipelineTXA())
	set(0x9A, "TXS", 1, (*CPU)(nil).pipelineTXS())
	set(0x98, "TYA", 1, (*CPU)(nil).pipelineTYA())
}

// populateIllegalNMOS fills the stable undocumented-opcode family. Only
// called for the full-illegal-behavior NMOS table; NMOS-simple overrides
// every one of these with a timing-matched NOP instead (see
// table_nmos_simple.go).
func populateIllegalNMOS(set setFunc) {
	set(0x07, "SLO", 2, zpRMW((*CPU).opSLO))
	set(0x17, "SLO", 2, zpIndexedRMW(regX, (*CPU).opSLO))
	set(0x0F, "SLO", 3, absRMW((*CPU).opSLO))
	set(0x1F, "SLO", 3, absIndexedRMW(regX, (*CPU).opSLO))
	set(0x1B, "SLO", 3, absIndexedRMW(regY, (*CPU).opSLO))
	set(0x03, "SLO", 2, indirectXRMW((*CPU).opSLO))
	set(0x13, "SLO", 2, indirectYRMW((*CPU).opSLO))

	set(0x27, "RLA", 2, zpRMW((*CPU).opRLA))
	set(0x37, "RLA", 2, zpIndexedRMW(regX, (*CPU).opRLA))
	set(0x2F, "RLA", 3, absRMW((*CPU).opRLA))
	set(0x3F, "RLA", 3, absIndexedRMW(regX, (*CPU).opRLA))
	set(0x3B, "RLA", 3, absIndexedRMW(regY, (*CPU).opRLA))
	set(0x23, "RLA", 2, indirectXRMW((*CPU).opRLA))
	set(0x33, "RLA", 2, indirectYRMW((*CPU).opRLA))

	set(0x47, "SRE", 2, zpRMW((*CPU).opSRE))
	set(0x57, "SRE", 2, zpIndexedRMW(regX, (*CPU).opSRE))
	set(0x4F, "SRE", 3, absRMW((*CPU).opSRE))
	set(0x5F, "SRE", 3, absIndexedRMW(regX, (*CPU).opSRE))
	set(0x5B, "SRE", 3, absIndexedRMW(regY, (*CPU).opSRE))
	set(0x43, "SRE", 2, indirectXRMW((*CPU).opSRE))
	set(0x53, "SRE", 2, indirectYRMW((*CPU).opSRE))

	set(0x67, "RRA", 2, zpRMW((*CPU).opRRA))
	set(0x77, "RRA", 2, zpIndexedRMW(regX, (*CPU).opRRA))
	set(0x6F, "RRA", 3, absRMW((*CPU).opRRA))
	set(0x7F, "RRA", 3, absIndexedRMW(regX, (*CPU).opRRA))
	set(0x7B, "RRA", 3, absIndexedRMW(regY, (*CPU).opRRA))
	set(0x63, "RRA", 2, indirectXRMW((*CPU).opRRA))
	set(0x73, "RRA", 2, indirectYRMW((*CPU).opRRA))

	set(0x87, "SAX", 2, zpStore((*CPU).opSAX))
	set(0x97, "SAX", 2, zpIndexedStore(regY, (*CPU).opSAX))
	set(0x8F, "SAX", 3, absStore((*CPU).opSAX))
	set(0x83, "SAX", 2, indirectXStore((*CPU).opSAX))

	set(0xA7, "LAX", 2, zpLoad((*CPU).opLAX))
	set(0xB7, "LAX", 2, zpIndexedLoad(regY, (*CPU).opLAX))
	set(0xAF, "LAX", 3, absLoad((*CPU).opLAX))
	set(0xBF, "LAX", 3, absIndexedLoad(regY, (*CPU).opLAX))
	set(0xA3, "LAX", 2, indirectXLoad((*CPU).opLAX))
	set(0xB3, "LAX", 2, indirectYLoad((*CPU).opLAX))
	set(0xAB, "LAX", 2, immediate((*CPU).opLAX))

	set(0xC7, "DCP", 2, zpRMW((*CPU).opDCP))
	set(0xD7, "DCP", 2, zpIndexedRMW(regX, (*CPU).opDCP))
	set(0xCF, "DCP", 3, absRMW((*CPU).opDCP))
	set(0xDF, "DCP", 3, absIndexedRMW(regX, (*CPU).opDCP))
	set(0xDB, "DCP", 3, absIndexedRMW(regY, (*CPU).opDCP))
	set(0xC3, "DCP", 2, indirectXRMW((*CPU).opDCP))
	set(0xD3, "DCP", 2, indirectYRMW((*CPU).opDCP))

	set(0xE7, "ISC", 2, zpRMW((*CPU).opISC))
	set(0xF7, "ISC", 2, zpIndexedRMW(regX, (*CPU).opISC))
	set(0xEF, "ISC", 3, absRMW((*CPU).opISC))
	set(0xFF, "ISC", 3, absIndexedRMW(regX, (*CPU).opISC))
	set(0xFB, "ISC", 3, absIndexedRMW(regY, (*CPU).opISC))
	set(0xE3, "ISC", 2, indirectXRMW((*CPU).opISC))
	set(0xF3, "ISC", 2, indirectYRMW((*CPU).opISC))

	set(0x0B, "ANC", 2, immediate((*CPU).opANC))
	set(0x2B, "ANC", 2, immediate((*CPU).opANC))
	set(0x4B, "ALR", 2, immediate((*CPU).opALR))
	set(0x6B, "ARR", 2, immediate((*CPU).opARR))
	set(0xCB, "SBX", 2, immediate((*CPU).opSBX))
	set(0xBB, "LAS", 3, absIndexedLoad(regY, (*CPU).opLAS))
	set(0x8B, "XAA", 2, immediate((*CPU).opXAA))

	set(0x93, "AHX", 2, indirectYStore(opHighAddrStore(func(c *CPU) uint8 { return c.state.A & c.state.X })))
	set(0x9F, "AHX", 3, absIndexedStore(regY, opHighAddrStore(func(c *CPU) uint8 { return c.state.A & c.state.X })))
	set(0x9E, "SHX", 3, absIndexedStore(regY, opHighAddrStore(regX)))
	set(0x9C, "SHY", 3, absIndexedStore(regX, opHighAddrStore(regY)))
	set(0x9B, "TAS", 3, absIndexedStore(regY, (*CPU).opTAS))
}
