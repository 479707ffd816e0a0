package harness

import (
	"github.com/hollowclock/sixfiveohtwo/cpu"
	"github.com/hollowclock/sixfiveohtwo/memory"
)

// FeedbackAddress is the fixed location, $BFFC, that the Dormann/Bruce-Clark
// interrupt test ROMs poke to drive IRQ/NMI into the CPU under test. See
// spec.md §6.
const FeedbackAddress = 0xBFFC

// FeedbackRegister wraps a memory.Bank and watches writes to
// FeedbackAddress, forwarding bit 0 (level-sensitive IRQ) and bit 1
// (rising-edge NMI) to a bound CPU. It satisfies memory.Bank itself so it
// can be dropped in front of the flat RAM a test fixture already uses,
// following the same decorator shape memory.Bank's Parent chaining implies.
type FeedbackRegister struct {
	memory.Bank
	cpu      *cpu.CPU
	lastBits uint8
}

// NewFeedbackRegister wraps bank, forwarding interrupt requests written to
// FeedbackAddress to c.
func NewFeedbackRegister(bank memory.Bank, c *cpu.CPU) *FeedbackRegister {
	return &FeedbackRegister{Bank: bank, cpu: c}
}

// Raised reports whether the feedback register's IRQ bit is currently held
// high, satisfying irq.Sender for callers that want to poll rather than be
// pushed to via the bound CPU's SignalIRQ/ClearIRQ.
func (f *FeedbackRegister) Raised() bool {
	return f.lastBits&0x01 != 0
}

// Write intercepts writes to FeedbackAddress and mirrors bit 0/bit 1 into
// the bound CPU's interrupt lines before delegating to the wrapped bank
// (the test ROMs also expect to read the byte back unchanged).
func (f *FeedbackRegister) Write(addr uint16, val uint8) {
	f.Bank.Write(addr, val)
	if addr != FeedbackAddress {
		return
	}
	f.applyFeedback(val)
}

func (f *FeedbackRegister) applyFeedback(val uint8) {
	// Bit 0: level-sensitive IRQ. The CPU's pending-IRQ state tracks the
	// live level of this bit, so a 1->0 transition must clear it, not just
	// leave it latched.
	if val&0x01 != 0 {
		f.cpu.SignalIRQ()
	} else {
		f.cpu.ClearIRQ()
	}

	// Bit 1: rising-edge NMI. SignalNMI latches PendingNMI; there is no
	// ClearNMI because NMI has no live-level concept on real hardware, only
	// the edge that triggered it.
	if val&0x02 != 0 && f.lastBits&0x02 == 0 {
		f.cpu.SignalNMI()
	}

	f.lastBits = val
}
