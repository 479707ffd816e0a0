package cpu

import "github.com/hollowclock/sixfiveohtwo/variant"

// Descriptor holds the fully built, immutable per-opcode pipeline table
// for one variant plus the metadata a disassembler needs. It is built
// once per variant (see the table_*.go files) and shared by every CPU
// instance of that variant; none of its MicroOp closures may carry
// cross-invocation state (see the comment atop addressing.go).
type Descriptor struct {
	Profile   variant.Profile
	Pipelines [256][]MicroOp
	Mnemonic  [256]string
	Bytes     [256]int
}

var descriptors [4]*Descriptor

// DescriptorFor returns the singleton per-variant opcode table, exported
// so host tooling (the disassembler, the CLI) can inspect mnemonics and
// byte counts without needing a live CPU instance.
func DescriptorFor(id variant.ID) *Descriptor {
	return descriptorFor(id)
}

// descriptorFor returns the singleton Descriptor for id, building it on
// first use. Table construction is pure and side-effect-free so building
// it more than once (a harmless race under concurrent first use) would
// only waste work, never corrupt state; New() is nonetheless expected to
// be called from a single goroutine during program startup in practice.
func descriptorFor(id variant.ID) *Descriptor {
	idx := int(id)
	if idx < 0 || idx >= len(descriptors) {
		idx = int(variant.NMOS)
	}
	if descriptors[idx] == nil {
		descriptors[idx] = buildDescriptor(variant.ID(idx))
	}
	return descriptors[idx]
}

func buildDescriptor(id variant.ID) *Descriptor {
	switch id {
	case variant.NMOSSimple:
		return buildNMOSSimpleDescriptor()
	case variant.WDC65C02:
		return buildCMOSDescriptor(variant.ProfileFor(variant.WDC65C02))
	case variant.Rockwell65C02:
		return buildRockwellDescriptor()
	default:
		return buildNMOSDescriptor()
	}
}
