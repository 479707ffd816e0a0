package cpu

import "github.com/hollowclock/sixfiveohtwo/variant"

// buildRockwellDescriptor builds on the shared CMOS table (which already
// leaves WAI/STP as plain NOPs for this profile since
// variant.Profile.HasWAISTP is false for Rockwell65C02) and adds the
// RMB/SMB zero-page bit operations and the BBR/BBS bit-conditional
// branches, both Rockwell-only extensions layered onto the 65C02 reserved
// opcode space.
func buildRockwellDescriptor() *Descriptor {
	d := buildCMOSDescriptor(variant.ProfileFor(variant.Rockwell65C02))
	set := func(op uint8, mnemonic string, bytes int, pl []MicroOp) {
		d.Pipelines[op] = pl
		d.Mnemonic[op] = mnemonic
		d.Bytes[op] = bytes
	}

	rmbOps := []uint8{0x07, 0x17, 0x27, 0x37, 0x47, 0x57, 0x67, 0x77}
	smbOps := []uint8{0x87, 0x97, 0xA7, 0xB7, 0xC7, 0xD7, 0xE7, 0xF7}
	for n, op := range rmbOps {
		set(op, "RMB", 2, zpRMW(rmbSMB(uint(n), false)))
	}
	for n, op := range smbOps {
		set(op, "SMB", 2, zpRMW(rmbSMB(uint(n), true)))
	}

	bbrOps := []uint8{0x0F, 0x1F, 0x2F, 0x3F, 0x4F, 0x5F, 0x6F, 0x7F}
	bbsOps := []uint8{0x8F, 0x9F, 0xAF, 0xBF, 0xCF, 0xDF, 0xEF, 0xFF}
	for n, op := range bbrOps {
		set(op, "BBR", 3, bbrBBS(uint(n), false)())
	}
	for n, op := range bbsOps {
		set(op, "BBS", 3, bbrBBS(uint(n), true)())
	}

	return d
}
