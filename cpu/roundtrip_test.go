package cpu_test

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/hollowclock/sixfiveohtwo/cpu"
	"github.com/hollowclock/sixfiveohtwo/variant"
)

// TestPHAPLARoundTrip implements spec.md §8's PHA/PLA round-trip law.
func TestPHAPLARoundTrip(t *testing.T) {
	c, b := newFixture(t, variant.NMOS)
	setResetVector(b, 0x0400)
	c.Reset(b)

	b.Write(0x0400, 0x48) // PHA
	b.Write(0x0401, 0xA9) // LDA #$00 (clobber A before pulling it back)
	b.Write(0x0402, 0x00)
	b.Write(0x0403, 0x68) // PLA

	s := c.State()
	s.A = 0x7F
	spBefore := s.SP
	c.SetState(s)

	for i := 0; i < 3; i++ {
		if _, err := c.Step(b); err != nil {
			t.Fatalf("step %d errored: %v", i, err)
		}
	}
	s = c.State()
	if s.A != 0x7F {
		t.Errorf("A = %#02x, want 0x7F", s.A)
	}
	if s.SP != spBefore {
		t.Errorf("SP = %#02x, want %#02x (net unchanged)", s.SP, spBefore)
	}
	if s.P&cpu.FlagZ != 0 {
		t.Errorf("Z set for nonzero A")
	}
	if s.P&cpu.FlagN != 0 {
		t.Errorf("N set for A with bit 7 clear")
	}
}

// TestPHPPLPRoundTrip implements spec.md §8's PHP/PLP round-trip law.
func TestPHPPLPRoundTrip(t *testing.T) {
	c, b := newFixture(t, variant.NMOS)
	setResetVector(b, 0x0400)
	c.Reset(b)

	b.Write(0x0400, 0x08) // PHP
	b.Write(0x0401, 0x28) // PLP

	s := c.State()
	s.P = cpu.FlagC | cpu.FlagN | cpu.FlagU | cpu.FlagI
	before := s.P
	c.SetState(s)

	for i := 0; i < 2; i++ {
		if _, err := c.Step(b); err != nil {
			t.Fatalf("step %d errored: %v", i, err)
		}
	}
	after := c.State().P
	if after != before {
		t.Errorf("P after PHP/PLP = %#02x, want %#02x unchanged", after, before)
	}
	if after&cpu.FlagU == 0 {
		t.Errorf("U not observed set after PLP: %#02x", after)
	}
}

// TestJSRRTSRoundTrip implements spec.md §8's JSR/RTS round-trip law.
func TestJSRRTSRoundTrip(t *testing.T) {
	c, b := newFixture(t, variant.NMOS)
	setResetVector(b, 0x0400)
	c.Reset(b)

	b.Write(0x0400, 0x20) // JSR $0500
	b.Write(0x0401, 0x00)
	b.Write(0x0402, 0x05)
	b.Write(0x0403, 0xEA) // NOP, the instruction after JSR's 3-byte encoding
	b.Write(0x0500, 0x60) // RTS

	if _, err := c.Step(b); err != nil { // JSR
		t.Fatalf("JSR errored: %v", err)
	}
	if got, want := c.State().PC, uint16(0x0500); got != want {
		t.Fatalf("PC after JSR = %#04x, want %#04x", got, want)
	}
	if _, err := c.Step(b); err != nil { // RTS
		t.Fatalf("RTS errored: %v", err)
	}
	if got, want := c.State().PC, uint16(0x0403); got != want {
		t.Fatalf("PC after RTS = %#04x, want %#04x (instruction after JSR)", got, want)
	}
}

// TestRTIRestoresInterruptedState implements spec.md §8's RTI round-trip
// law: RTI after the interrupt sequence that produced its stacked image
// restores the exact pre-interrupt PC and P (modulo the B/U mask rules).
func TestRTIRestoresInterruptedState(t *testing.T) {
	c, b := newFixture(t, variant.NMOS)
	setResetVector(b, 0x0400)
	setIRQVector(b, 0x8000)
	c.Reset(b)

	b.Write(0x0400, 0xEA) // NOP at the interrupted PC
	b.Write(0x8000, 0x40) // RTI in the handler

	s := c.State()
	s.P = (s.P &^ cpu.FlagI) | cpu.FlagC | cpu.FlagN
	c.SetState(s)

	// Only PC and P are part of the RTI round-trip law; Pipeline,
	// CurrentOpcode and the rest are execution-internal bookkeeping that
	// legitimately differs once the interrupt sequence and RTI have run.
	type pcAndFlags struct {
		PC uint16
		P  uint8
	}
	before := pcAndFlags{PC: c.State().PC, P: c.State().P}

	c.SignalIRQ()
	if !c.HandlePendingInterrupt(b) {
		t.Fatalf("HandlePendingInterrupt returned false")
	}
	if got, want := c.State().PC, uint16(0x8000); got != want {
		t.Fatalf("PC after interrupt entry = %#04x, want %#04x", got, want)
	}

	if _, err := c.Step(b); err != nil { // RTI
		t.Fatalf("RTI errored: %v", err)
	}
	after := pcAndFlags{PC: c.State().PC, P: c.State().P}

	if diff := deep.Equal(before, after); diff != nil {
		t.Errorf("PC/P after RTI do not match pre-interrupt values: %v", diff)
	}
}
