// Package variant models the differences between the four supported 6502
// family parts as a small immutable descriptor rather than inheritance or
// scattered type switches, per the core's design notes: each CPU instance
// holds a reference to exactly one Descriptor and never branches on "which
// chip am I" in the hot path again after construction.
package variant

// ID enumerates the four supported parts.
type ID int

const (
	// NMOS is the original 6502 including the full set of stable
	// undocumented opcodes.
	NMOS ID = iota
	// NMOSSimple is the same silicon behavior except every undocumented
	// opcode is treated as a no-op of the correct addressing-mode timing
	// instead of its documented illegal behavior.
	NMOSSimple
	// WDC65C02 is the WDC 65C02 CMOS part: corrected JMP indirect,
	// corrected-result BCD flags, STZ/PHX/PHY/PLX/PLY/BRA/TRB/TSB/BIT-new-
	// modes/(zp)-indirect/JMP(abs,x), WAI and STP.
	WDC65C02
	// Rockwell65C02 is identical to WDC65C02 except it has no WAI/STP
	// (those opcodes are implied-mode NOPs) and it adds the RMB/SMB
	// zero-page bit-set/clear opcodes and BBR/BBS bit-conditional
	// branches.
	Rockwell65C02
)

func (i ID) String() string {
	switch i {
	case NMOS:
		return "NMOS"
	case NMOSSimple:
		return "NMOS-simple"
	case WDC65C02:
		return "WDC65C02"
	case Rockwell65C02:
		return "Rockwell65C02"
	default:
		return "unknown"
	}
}

// IsCMOS reports whether this variant follows CMOS BCD/JMP-indirect/
// interrupt-D-clear semantics.
func (i ID) IsCMOS() bool {
	return i == WDC65C02 || i == Rockwell65C02
}

// UndocPolicy describes how an NMOS variant treats opcodes outside the
// 151 documented ones. CMOS variants don't use this; their undefined
// opcodes are all well-defined NOPs of specific addressing-mode timing,
// encoded directly in their pipeline tables.
type UndocPolicy int

const (
	// UndocNone applies to CMOS variants: there is no "undocumented
	// opcode" concept, every opcode is defined.
	UndocNone UndocPolicy = iota
	// UndocFull implements the stable illegal opcode family (LAX, SAX,
	// DCP, ISC, SLO, RLA, SRE, RRA, ANC, ALR, ARR, AXS, LAS, XAA, AHX,
	// SHX, SHY, TAS, the duplicate SBC) plus JAM opcodes that halt.
	UndocFull
	// UndocNOP treats every illegal opcode as a no-op of the correct
	// addressing-mode timing; there are no JAM opcodes.
	UndocNOP
)

// Profile is the immutable, per-variant flag set a CPU instance is
// constructed against. It intentionally holds no pipeline data: the
// micro-op pipeline tables live in the cpu package (they're built from
// cpu-internal types) keyed by ID, so Profile stays free of any
// dependency back on cpu and there's no import cycle.
type Profile struct {
	ID ID

	// ClearDOnInterrupt is true for CMOS variants: BRK/IRQ/NMI clear the
	// D flag before entering the handler. NMOS leaves D unchanged.
	ClearDOnInterrupt bool

	// CMOSBCDFlags is true for CMOS variants: N/Z/V after a decimal-mode
	// ADC/SBC reflect the BCD-corrected result. False (NMOS) means N/Z
	// reflect the binary intermediate result and V is a deterministic
	// but otherwise unspecified derivation from it.
	CMOSBCDFlags bool

	// FixedJMPIndirect is true for CMOS variants: JMP ($xxFF) correctly
	// reads the high byte from $(xx+1)00 instead of wrapping to $xx00,
	// at the cost of one additional cycle (6 instead of 5).
	FixedJMPIndirect bool

	// HasWAISTP is true only for WDC65C02: opcodes $CB/$DB are WAI/STP.
	// Rockwell65C02 has no WAI/STP; those opcodes are plain NOPs there.
	HasWAISTP bool

	// HasRockwellBitOps is true only for Rockwell65C02: RMB/SMB/BBR/BBS.
	HasRockwellBitOps bool

	UndocPolicy UndocPolicy
}

// ProfileFor returns the fixed Profile for a given variant ID.
func ProfileFor(id ID) Profile {
	switch id {
	case NMOSSimple:
		return Profile{ID: id, UndocPolicy: UndocNOP}
	case WDC65C02:
		return Profile{
			ID:                id,
			ClearDOnInterrupt: true,
			CMOSBCDFlags:      true,
			FixedJMPIndirect:  true,
			HasWAISTP:         true,
			UndocPolicy:       UndocNone,
		}
	case Rockwell65C02:
		return Profile{
			ID:                id,
			ClearDOnInterrupt: true,
			CMOSBCDFlags:      true,
			FixedJMPIndirect:  true,
			HasRockwellBitOps: true,
			UndocPolicy:       UndocNone,
		}
	default:
		return Profile{ID: NMOS, UndocPolicy: UndocFull}
	}
}
