package cpu_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/hollowclock/sixfiveohtwo/cpu"
	"github.com/hollowclock/sixfiveohtwo/memory"
	"github.com/hollowclock/sixfiveohtwo/variant"
)

func newFixture(t *testing.T, id variant.ID) (*cpu.CPU, memory.Bank) {
	t.Helper()
	return cpu.New(id), memory.NewFlat64K()
}

func setResetVector(b memory.Bank, addr uint16) {
	b.Write(0xFFFC, uint8(addr&0xFF))
	b.Write(0xFFFD, uint8(addr>>8))
}

func setIRQVector(b memory.Bank, addr uint16) {
	b.Write(0xFFFE, uint8(addr&0xFF))
	b.Write(0xFFFF, uint8(addr>>8))
}

func setNMIVector(b memory.Bank, addr uint16) {
	b.Write(0xFFFA, uint8(addr&0xFF))
	b.Write(0xFFFB, uint8(addr>>8))
}

func TestResetInvariants(t *testing.T) {
	for _, id := range []variant.ID{variant.NMOS, variant.NMOSSimple, variant.WDC65C02, variant.Rockwell65C02} {
		id := id
		t.Run(id.String(), func(t *testing.T) {
			c, b := newFixture(t, id)
			setResetVector(b, 0x0400)
			c.Reset(b)

			s := c.State()
			if s.A != 0 || s.X != 0 || s.Y != 0 {
				t.Errorf("registers not zeroed after reset: %s", spew.Sdump(s))
			}
			if s.SP != 0xFD {
				t.Errorf("SP after reset = %#02x, want 0xFD: %s", s.SP, spew.Sdump(s))
			}
			if s.P&cpu.FlagI == 0 {
				t.Errorf("I flag not set after reset: %s", spew.Sdump(s))
			}
			if s.P&cpu.FlagU == 0 {
				t.Errorf("U flag not set after reset: %s", spew.Sdump(s))
			}
			if s.PC != 0x0400 {
				t.Errorf("PC after reset = %#04x, want 0x0400: %s", s.PC, spew.Sdump(s))
			}
			if s.Status != cpu.StatusRunning {
				t.Errorf("status after reset = %v, want Running", s.Status)
			}
		})
	}
}

func TestUFlagAlwaysObservedSet(t *testing.T) {
	// PHP must push U=1 regardless of what's in the live P register, and
	// the live P must also always read U=1, per spec.md §3's invariant.
	c, b := newFixture(t, variant.NMOS)
	setResetVector(b, 0x0400)
	c.Reset(b)

	b.Write(0x0400, 0x08) // PHP
	if _, err := c.Step(b); err != nil {
		t.Fatalf("PHP errored: %v", err)
	}
	s := c.State()
	pushed := b.Peek(0x0100 + uint16(s.SP) + 1)
	if pushed&cpu.FlagU == 0 {
		t.Errorf("PHP pushed U=0, want U=1: pushed=%#02x", pushed)
	}
	if s.P&cpu.FlagU == 0 {
		t.Errorf("live P has U=0, want U=1: %#02x", s.P)
	}
}

// TestLDAImmediate implements spec.md §8 scenario 1.
func TestLDAImmediate(t *testing.T) {
	c, b := newFixture(t, variant.NMOS)
	setResetVector(b, 0x0400)
	c.Reset(b)

	b.Write(0x0400, 0xA9) // LDA #$00
	b.Write(0x0401, 0x00)

	cycles, err := c.Step(b)
	if err != nil {
		t.Fatalf("LDA #$00 errored: %v", err)
	}
	s := c.State()
	if s.A != 0 {
		t.Errorf("A = %#02x, want 0x00", s.A)
	}
	if s.P&cpu.FlagZ == 0 {
		t.Errorf("Z not set: P=%#02x", s.P)
	}
	if s.P&cpu.FlagN != 0 {
		t.Errorf("N set, want clear: P=%#02x", s.P)
	}
	if cycles != 2 {
		t.Errorf("cycles = %d, want 2", cycles)
	}
	if s.PC != 0x0402 {
		t.Errorf("PC = %#04x, want 0x0402", s.PC)
	}
}

// TestADCBCDAcrossVariants implements spec.md §8 scenario 2.
func TestADCBCDAcrossVariants(t *testing.T) {
	for _, id := range []variant.ID{variant.NMOS, variant.NMOSSimple, variant.WDC65C02, variant.Rockwell65C02} {
		id := id
		t.Run(id.String(), func(t *testing.T) {
			c, b := newFixture(t, id)
			setResetVector(b, 0x0400)
			c.Reset(b)

			b.Write(0x0400, 0xF8)       // SED
			b.Write(0x0401, 0xA9)       // LDA #$15
			b.Write(0x0402, 0x15)
			b.Write(0x0403, 0x69)       // ADC #$27
			b.Write(0x0404, 0x27)

			for i := 0; i < 3; i++ {
				if _, err := c.Step(b); err != nil {
					t.Fatalf("step %d errored: %v", i, err)
				}
			}
			s := c.State()
			if s.A != 0x42 {
				t.Fatalf("A = %#02x, want 0x42: %s", s.A, spew.Sdump(s))
			}
			if s.P&cpu.FlagC != 0 {
				t.Errorf("C set, want clear: P=%#02x", s.P)
			}
			if id.IsCMOS() {
				if s.P&cpu.FlagZ != 0 {
					t.Errorf("CMOS: Z set, want clear: P=%#02x", s.P)
				}
				if s.P&cpu.FlagN != 0 {
					t.Errorf("CMOS: N set, want clear: P=%#02x", s.P)
				}
			}
		})
	}
}

// TestNMOSJMPIndirectBug implements spec.md §8 scenario 3 and the
// "Variant laws" JMP-indirect property.
func TestNMOSJMPIndirectBug(t *testing.T) {
	t.Run("NMOS wraps within page", func(t *testing.T) {
		c, b := newFixture(t, variant.NMOS)
		setResetVector(b, 0x0400)
		c.Reset(b)

		b.Write(0x0400, 0x6C) // JMP ($12FF)
		b.Write(0x0401, 0xFF)
		b.Write(0x0402, 0x12)
		b.Write(0x12FF, 0x34)
		b.Write(0x1200, 0xAB) // wrapped high byte read
		b.Write(0x1300, 0xCD) // correct high byte, must NOT be used

		cycles, err := c.Step(b)
		if err != nil {
			t.Fatalf("JMP errored: %v", err)
		}
		if cycles != 5 {
			t.Errorf("cycles = %d, want 5", cycles)
		}
		if got, want := c.State().PC, uint16(0xAB34); got != want {
			t.Errorf("PC = %#04x, want %#04x", got, want)
		}
	})

	t.Run("CMOS fixes the wrap", func(t *testing.T) {
		c, b := newFixture(t, variant.WDC65C02)
		setResetVector(b, 0x0400)
		c.Reset(b)

		b.Write(0x0400, 0x6C)
		b.Write(0x0401, 0xFF)
		b.Write(0x0402, 0x12)
		b.Write(0x12FF, 0x34)
		b.Write(0x1300, 0xCD)

		cycles, err := c.Step(b)
		if err != nil {
			t.Fatalf("JMP errored: %v", err)
		}
		if cycles != 6 {
			t.Errorf("cycles = %d, want 6", cycles)
		}
		if got, want := c.State().PC, uint16(0xCD34); got != want {
			t.Errorf("PC = %#04x, want %#04x", got, want)
		}
	})
}

// TestBranchPageCross implements spec.md §8 scenario 4 and the Branch law.
func TestBranchPageCross(t *testing.T) {
	t.Run("taken across page", func(t *testing.T) {
		c, b := newFixture(t, variant.NMOS)
		setResetVector(b, 0x04FE)
		c.Reset(b)
		s := c.State()
		s.P |= cpu.FlagZ
		c.SetState(s)

		b.Write(0x04FE, 0xF0) // BEQ +$10
		b.Write(0x04FF, 0x10)

		cycles, err := c.Step(b)
		if err != nil {
			t.Fatalf("BEQ errored: %v", err)
		}
		if got, want := c.State().PC, uint16(0x0510); got != want {
			t.Errorf("PC = %#04x, want %#04x", got, want)
		}
		if cycles != 4 {
			t.Errorf("cycles = %d, want 4", cycles)
		}
	})

	t.Run("not taken", func(t *testing.T) {
		c, b := newFixture(t, variant.NMOS)
		setResetVector(b, 0x04FE)
		c.Reset(b)
		s := c.State()
		s.P &^= cpu.FlagZ
		c.SetState(s)

		b.Write(0x04FE, 0xF0)
		b.Write(0x04FF, 0x10)

		cycles, err := c.Step(b)
		if err != nil {
			t.Fatalf("BEQ errored: %v", err)
		}
		if got, want := c.State().PC, uint16(0x0500); got != want {
			t.Errorf("PC = %#04x, want %#04x", got, want)
		}
		if cycles != 2 {
			t.Errorf("cycles = %d, want 2", cycles)
		}
	})
}

// TestIRQMaskingAndServicing implements spec.md §8 scenario 5.
func TestIRQMaskingAndServicing(t *testing.T) {
	t.Run("masked IRQ stays pending", func(t *testing.T) {
		c, b := newFixture(t, variant.NMOS)
		setResetVector(b, 0x0400)
		setIRQVector(b, 0x8000)
		c.Reset(b)
		s := c.State()
		s.P |= cpu.FlagI
		c.SetState(s)

		b.Write(0x0400, 0xEA) // NOP
		c.SignalIRQ()

		if _, err := c.Step(b); err != nil {
			t.Fatalf("NOP errored: %v", err)
		}
		if got, want := c.State().PC, uint16(0x0401); got != want {
			t.Errorf("PC = %#04x, want %#04x (IRQ should stay masked)", got, want)
		}
		if c.State().PendingInterrupt != cpu.PendingIRQ {
			t.Errorf("PendingInterrupt = %v, want PendingIRQ still latched", c.State().PendingInterrupt)
		}
	})

	t.Run("unmasked IRQ services", func(t *testing.T) {
		for _, id := range []variant.ID{variant.NMOS, variant.WDC65C02} {
			id := id
			t.Run(id.String(), func(t *testing.T) {
				c, b := newFixture(t, id)
				setResetVector(b, 0x0400)
				setIRQVector(b, 0x8000)
				c.Reset(b)
				s := c.State()
				s.P &^= cpu.FlagI
				if id.IsCMOS() {
					s.P |= cpu.FlagD
				}
				c.SetState(s)
				spBefore := c.State().SP

				c.SignalIRQ()
				serviced := c.HandlePendingInterrupt(b)
				if !serviced {
					t.Fatalf("HandlePendingInterrupt returned false, want true")
				}
				ns := c.State()
				if ns.PC != 0x8000 {
					t.Errorf("PC = %#04x, want 0x8000", ns.PC)
				}
				if got, want := spBefore-ns.SP, uint8(3); got != want {
					t.Errorf("SP decreased by %d, want %d", got, want)
				}
				pushedP := b.Peek(0x0100 + uint16(ns.SP) + 1)
				if pushedP&cpu.FlagB != 0 {
					t.Errorf("pushed P has B=1, want B=0 for hardware IRQ: %#02x", pushedP)
				}
				if pushedP&cpu.FlagU == 0 {
					t.Errorf("pushed P has U=0, want U=1: %#02x", pushedP)
				}
				if ns.P&cpu.FlagI == 0 {
					t.Errorf("live P has I=0 after servicing, want I=1")
				}
				if id.IsCMOS() && ns.P&cpu.FlagD != 0 {
					t.Errorf("CMOS: D not cleared on IRQ entry: P=%#02x", ns.P)
				}
			})
		}
	})
}

// TestWAIWakeOnWDC implements spec.md §8 scenario 6.
func TestWAIWakeOnWDC(t *testing.T) {
	c, b := newFixture(t, variant.WDC65C02)
	setResetVector(b, 0x0400)
	setIRQVector(b, 0x8000)
	c.Reset(b)
	s := c.State()
	s.P |= cpu.FlagI
	c.SetState(s)

	b.Write(0x0400, 0xCB) // WAI

	if _, err := c.Step(b); err != nil {
		t.Fatalf("WAI errored: %v", err)
	}
	s = c.State()
	if s.Status != cpu.StatusWaiting {
		t.Fatalf("status = %v, want Waiting", s.Status)
	}
	if s.PC != 0x0401 {
		t.Fatalf("PC = %#04x, want 0x0401", s.PC)
	}

	for i := 0; i < 3; i++ {
		done, err := c.Clock(b)
		if err != nil {
			t.Fatalf("Clock while waiting errored: %v", err)
		}
		if !done {
			t.Errorf("Clock while waiting returned done=false, want true")
		}
		if c.State().PC != 0x0401 {
			t.Errorf("PC advanced while waiting: %#04x", c.State().PC)
		}
	}

	c.SignalIRQ()
	if !c.HandlePendingInterrupt(b) {
		t.Fatalf("HandlePendingInterrupt returned false while Waiting, want true (wake despite I=1)")
	}
	ns := c.State()
	if ns.Status != cpu.StatusRunning {
		t.Errorf("status = %v, want Running after wake+service", ns.Status)
	}
	if ns.PC != 0x8000 {
		t.Errorf("PC = %#04x, want 0x8000", ns.PC)
	}
}

// TestJAMOnlyRecoversViaReset implements spec.md §4.5's "only reset
// recovers" rule for the illegal-opcode halt: repeated clock/step calls
// must hold forever, and only SignalReset may break the hold.
func TestJAMOnlyRecoversViaReset(t *testing.T) {
	c, b := newFixture(t, variant.NMOS)
	setResetVector(b, 0x0400)
	c.Reset(b)
	b.Write(0x0400, 0x02) // JAM

	cycles, err := c.Step(b)
	if err != nil {
		t.Fatalf("JAM errored: %v", err)
	}
	if cycles != 2 {
		t.Errorf("cycles = %d, want 2", cycles)
	}
	s := c.State()
	if s.Status != cpu.StatusJammed {
		t.Fatalf("status = %v, want Jammed", s.Status)
	}
	if s.PC != 0x0401 {
		t.Fatalf("PC = %#04x, want 0x0401", s.PC)
	}

	for i := 0; i < 3; i++ {
		done, err := c.Clock(b)
		if err != nil {
			t.Fatalf("Clock while jammed errored: %v, want no error (JAM is an observable status, not a fault)", err)
		}
		if !done {
			t.Errorf("Clock while jammed returned done=false, want true")
		}
		if c.State().PC != 0x0401 || c.State().Status != cpu.StatusJammed {
			t.Errorf("CPU escaped the jam without a reset: %s", spew.Sdump(c.State()))
		}
	}

	c.SignalReset()
	for i := 0; i < 10 && c.State().Status != cpu.StatusRunning; i++ {
		if _, err := c.Step(b); err != nil {
			t.Fatalf("reset-from-jammed step errored: %v", err)
		}
	}
	ns := c.State()
	if ns.Status != cpu.StatusRunning {
		t.Fatalf("status = %v, want Running after reset, never recovered: %s", ns.Status, spew.Sdump(ns))
	}
	if ns.PC != 0x0400 {
		t.Errorf("PC = %#04x, want 0x0400 (reset vector)", ns.PC)
	}
	if ns.A != 0 || ns.X != 0 || ns.Y != 0 {
		t.Errorf("registers not zeroed by reset-from-jammed: %s", spew.Sdump(ns))
	}
}

// TestSTPOnlyRecoversViaReset is TestJAMOnlyRecoversViaReset's counterpart
// for the WDC 65C02's STP opcode.
func TestSTPOnlyRecoversViaReset(t *testing.T) {
	c, b := newFixture(t, variant.WDC65C02)
	setResetVector(b, 0x0400)
	c.Reset(b)
	b.Write(0x0400, 0xDB) // STP

	if _, err := c.Step(b); err != nil {
		t.Fatalf("STP errored: %v", err)
	}
	if s := c.State(); s.Status != cpu.StatusStopped {
		t.Fatalf("status = %v, want Stopped", s.Status)
	}

	c.SignalIRQ() // an ordinary IRQ must not wake a Stopped CPU
	done, err := c.Clock(b)
	if err != nil {
		t.Fatalf("Clock while stopped errored: %v", err)
	}
	if !done {
		t.Errorf("Clock while stopped returned done=false, want true")
	}
	if s := c.State(); s.Status != cpu.StatusStopped {
		t.Errorf("IRQ woke a Stopped CPU, want only reset to recover: %s", spew.Sdump(s))
	}

	c.SignalReset()
	for i := 0; i < 10 && c.State().Status != cpu.StatusRunning; i++ {
		if _, err := c.Step(b); err != nil {
			t.Fatalf("reset-from-stopped step errored: %v", err)
		}
	}
	if ns := c.State(); ns.Status != cpu.StatusRunning || ns.PC != 0x0400 {
		t.Fatalf("status/PC = %v/%#04x, want Running/0x0400 after reset: %s", ns.Status, ns.PC, spew.Sdump(ns))
	}
}
