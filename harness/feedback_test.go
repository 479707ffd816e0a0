package harness_test

import (
	"testing"

	"github.com/hollowclock/sixfiveohtwo/cpu"
	"github.com/hollowclock/sixfiveohtwo/harness"
	"github.com/hollowclock/sixfiveohtwo/memory"
	"github.com/hollowclock/sixfiveohtwo/variant"
)

func TestFeedbackRegisterIRQLevel(t *testing.T) {
	c := cpu.New(variant.NMOS)
	bank := memory.NewFlat64K()
	fb := harness.NewFeedbackRegister(bank, c)
	c.Reset(fb)

	fb.Write(harness.FeedbackAddress, 0x01)
	if c.State().PendingInterrupt != cpu.PendingIRQ {
		t.Fatalf("PendingInterrupt = %v, want PendingIRQ after bit 0 set", c.State().PendingInterrupt)
	}
	if !fb.Raised() {
		t.Errorf("Raised() = false, want true while bit 0 held high")
	}

	fb.Write(harness.FeedbackAddress, 0x00)
	if c.State().PendingInterrupt != cpu.PendingNone {
		t.Fatalf("PendingInterrupt = %v, want PendingNone after bit 0 cleared", c.State().PendingInterrupt)
	}
	if fb.Raised() {
		t.Errorf("Raised() = true, want false after bit 0 cleared")
	}
}

func TestFeedbackRegisterNMIEdge(t *testing.T) {
	c := cpu.New(variant.NMOS)
	bank := memory.NewFlat64K()
	fb := harness.NewFeedbackRegister(bank, c)
	c.Reset(fb)

	fb.Write(harness.FeedbackAddress, 0x02) // rising edge
	if c.State().PendingInterrupt != cpu.PendingNMI {
		t.Fatalf("PendingInterrupt = %v, want PendingNMI after bit 1 rising edge", c.State().PendingInterrupt)
	}

	// Servicing clears the NMI latch; holding bit 1 steady (no new edge)
	// must not re-arm it.
	setIRQVector(bank, 0x8000)
	setNMIVector(bank, 0x9000)
	if !c.HandlePendingInterrupt(fb) {
		t.Fatalf("HandlePendingInterrupt returned false")
	}
	if c.State().PendingInterrupt != cpu.PendingNone {
		t.Fatalf("PendingInterrupt = %v, want PendingNone after NMI serviced", c.State().PendingInterrupt)
	}

	fb.Write(harness.FeedbackAddress, 0x02) // still high, no new edge
	if c.State().PendingInterrupt != cpu.PendingNone {
		t.Errorf("PendingInterrupt = %v, want PendingNone (no rising edge occurred)", c.State().PendingInterrupt)
	}
}

func setIRQVector(b memory.Bank, addr uint16) {
	b.Write(0xFFFE, uint8(addr&0xFF))
	b.Write(0xFFFF, uint8(addr>>8))
}

func setNMIVector(b memory.Bank, addr uint16) {
	b.Write(0xFFFA, uint8(addr&0xFF))
	b.Write(0xFFFB, uint8(addr>>8))
}
