package cpu

import (
	"github.com/hollowclock/sixfiveohtwo/bus"
	"github.com/hollowclock/sixfiveohtwo/variant"
)

// buildCMOSDescriptor builds the 65C02 opcode table shared by WDC and
// Rockwell parts: the documented NMOS 151 (inherited from
// populateCommonNMOS, with JMP-indirect replaced here by its corrected
// page-wrap form and BCD flags corrected via variant.Profile at execution
// time) plus every 65C02 addition: STZ, PHX/PHY/PLX/PLY, BRA, TRB/TSB,
// the new BIT addressing modes, (zp) indirect addressing, JMP (abs,X),
// INC A/DEC A, and WAI/STP where the profile has them. Opcode slots with
// no defined CMOS behavior become reserved NOPs with the byte/cycle
// counts listed below.
func buildCMOSDescriptor(profile variant.Profile) *Descriptor {
	d := &Descriptor{Profile: profile}
	set := func(op uint8, mnemonic string, bytes int, pl []MicroOp) {
		d.Pipelines[op] = pl
		d.Mnemonic[op] = mnemonic
		d.Bytes[op] = bytes
	}
	populateCommonNMOS(set)

	// JMP (abs) gets the corrected page-wrap behavior.
	set(0x6C, "JMP", 3, jmpIndirect(true))
	set(0x7C, "JMP", 3, jmpIndirectXAbs())

	// STZ
	set(0x64, "STZ", 2, zpStore((*CPU).opSTZ))
	set(0x74, "STZ", 2, zpIndexedStore(regX, (*CPU).opSTZ))
	set(0x9C, "STZ", 3, absStore((*CPU).opSTZ))
	set(0x9E, "STZ", 3, absIndexedStore(regX, (*CPU).opSTZ))

	// PHX/PHY/PLX/PLY
	set(0xDA, "PHX", 1, (*CPU)(nil).pipelinePHX())
	set(0xFA, "PLX", 1, (*CPU)(nil).pipelinePLX())
	set(0x5A, "PHY", 1, (*CPU)(nil).pipelinePHY())
	set(0x7A, "PLY", 1, (*CPU)(nil).pipelinePLY())

	// BRA
	set(0x80, "BRA", 2, relative(condAlways))

	// TRB/TSB
	set(0x14, "TRB", 2, zpRMW((*CPU).opTRB))
	set(0x1C, "TRB", 3, absRMW((*CPU).opTRB))
	set(0x04, "TSB", 2, zpRMW((*CPU).opTSB))
	set(0x0C, "TSB", 3, absRMW((*CPU).opTSB))

	// New BIT addressing modes; BIT #imm only touches Z.
	set(0x34, "BIT", 2, zpIndexedLoad(regX, (*CPU).opBIT))
	set(0x3C, "BIT", 3, absIndexedLoad(regX, (*CPU).opBIT))
	set(0x89, "BIT", 2, immediate((*CPU).opBITImmediate))

	// INC A/DEC A
	set(0x1A, "INC", 1, (*CPU)(nil).pipelineINCA())
	set(0x3A, "DEC", 1, (*CPU)(nil).pipelineDECA())

	// (zp) indirect addressing, filling the former NMOS JAM opcodes.
	set(0x12, "ORA", 2, zpIndirectLoad((*CPU).opORA))
	set(0x32, "AND", 2, zpIndirectLoad((*CPU).opAND))
	set(0x52, "EOR", 2, zpIndirectLoad((*CPU).opEOR))
	set(0x72, "ADC", 2, zpIndirectLoad((*CPU).opADC))
	set(0x92, "STA", 2, zpIndirectStore((*CPU).opSTA))
	set(0xB2, "LDA", 2, zpIndirectLoad((*CPU).opLDA))
	set(0xD2, "CMP", 2, zpIndirectLoad((*CPU).opCMP))
	set(0xF2, "SBC", 2, zpIndirectLoad((*CPU).opSBC))

	// WAI/STP where the profile defines them; otherwise plain NOPs.
	if profile.HasWAISTP {
		set(0xCB, "WAI", 1, (*CPU)(nil).pipelineWAI())
		set(0xDB, "STP", 1, (*CPU)(nil).pipelineSTP())
	} else {
		set(0xCB, "NOP", 1, (*CPU)(nil).pipelineNOP())
		set(0xDB, "NOP", 1, (*CPU)(nil).pipelineNOP())
	}

	// Every remaining former-illegal-NMOS slot becomes a reserved NOP on
	// CMOS parts, with the documented WDC byte/cycle count per column
	// (spec.md §4.4): 2-byte immediate NOPs at the $x2 column, 2-byte
	// ZP/ZP,X NOPs at $44/$54/$D4/$F4, 3-byte absolute NOPs at
	// $5C/$DC/$FC, and 1-byte 1-cycle NOPs everywhere else (the $x3/$xB
	// columns plus the remaining $x7/$xF slots WDC leaves undefined).
	nopNoEffect := func(c *CPU, v uint8) {}
	for _, op := range []uint8{0x02, 0x22, 0x42, 0x62, 0x82, 0xC2, 0xE2} {
		set(op, "NOP", 2, immediate(nopNoEffect))
	}
	set(0x44, "NOP", 2, zpLoad(nopNoEffect))
	for _, op := range []uint8{0x54, 0xD4, 0xF4} {
		set(op, "NOP", 2, zpIndexedLoad(regX, nopNoEffect))
	}
	for _, op := range []uint8{0x5C, 0xDC, 0xFC} {
		set(op, "NOP", 3, absIndexedLoad(regX, nopNoEffect))
	}
	oneByteNOPs := []uint8{
		0x03, 0x07, 0x0B, 0x0F,
		0x13, 0x17, 0x1B, 0x1F,
		0x23, 0x27, 0x2B, 0x2F,
		0x33, 0x37, 0x3B, 0x3F,
		0x43, 0x47, 0x4B, 0x4F,
		0x53, 0x57, 0x5B, 0x5F,
		0x63, 0x67, 0x6B, 0x6F,
		0x73, 0x77, 0x7B, 0x7F,
		0x83, 0x87, 0x8B, 0x8F,
		0x93, 0x97, 0x9B, 0x9F,
		0xA3, 0xA7, 0xAB, 0xAF,
		0xB3, 0xB7, 0xBB, 0xBF,
		0xC3, 0xC7, 0xCF,
		0xD3, 0xD7, 0xDF,
		0xE3, 0xE7, 0xEB, 0xEF,
		0xF3, 0xF7, 0xFF,
	}
	oneCycleNOP := []MicroOp{func(c *CPU, b bus.Bus) (bool, error) {
		_, err := fetchOpcodeOp(c, b)
		return true, err
	}}
	for _, op := range oneByteNOPs {
		set(op, "NOP", 1, oneCycleNOP)
	}
	// Safety net: any opcode slot the above didn't touch (there
	// shouldn't be any left) still gets a harmless 1-byte NOP rather
	// than a nil pipeline.
	for op := 0; op < 256; op++ {
		if d.Pipelines[op] == nil {
			set(uint8(op), "NOP", 1, (*CPU)(nil).pipelineNOP())
		}
	}
	return d
}
