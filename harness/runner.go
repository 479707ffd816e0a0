package harness

import (
	"fmt"
	"os"

	"github.com/hollowclock/sixfiveohtwo/cpu"
	"github.com/hollowclock/sixfiveohtwo/memory"
	"github.com/hollowclock/sixfiveohtwo/variant"
)

// maxSteps bounds a fixture run against a CPU that never reaches either
// terminal address (a regression that would otherwise hang the harness
// forever instead of failing loudly).
const maxSteps = 200_000_000

// Result is the outcome of running one Fixture to a terminal address.
type Result struct {
	Fixture Fixture
	Passed  bool
	FinalPC uint16
	Cycles  int
	Err     error
}

// String renders a Result the way the CLI prints it to the console.
func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: ERROR at PC=$%04X: %v", r.Fixture.Name, r.FinalPC, r.Err)
	}
	if r.Passed {
		return fmt.Sprintf("%s: PASS (PC=$%04X, %d cycles)", r.Fixture.Name, r.FinalPC, r.Cycles)
	}
	return fmt.Sprintf("%s: FAIL at PC=$%04X (%d cycles) — see %s for the corresponding listing",
		r.Fixture.Name, r.FinalPC, r.Cycles, r.Fixture.HexFile)
}

// Run loads fix's Intel HEX image into a fresh flat 64 KiB bank, resets a
// CPU of the given variant at its start address, and steps it until the
// fixture's one terminal address (success or error) is reached or the step
// ceiling is hit.
func Run(cfg *Config, fix Fixture, id variant.ID) Result {
	res := Result{Fixture: fix}

	bank := memory.NewFlat64K()
	f, err := os.Open(cfg.HexPath(fix))
	if err != nil {
		res.Err = fmt.Errorf("opening hex file: %w", err)
		return res
	}
	defer f.Close()
	if err := LoadIHEX(f, bank); err != nil {
		res.Err = fmt.Errorf("loading hex file: %w", err)
		return res
	}

	start, err := fix.StartPC()
	if err != nil {
		res.Err = err
		return res
	}
	terminal, wantSuccess, err := fix.TerminalAddress()
	if err != nil {
		res.Err = err
		return res
	}

	c := cpu.New(id)
	c.Reset(bank)
	st := c.State()
	st.PC = start
	c.SetState(st)

	totalCycles := 0
	for i := 0; i < maxSteps; i++ {
		pc := c.State().PC
		if pc == terminal {
			res.FinalPC = pc
			res.Cycles = totalCycles
			res.Passed = wantSuccess
			return res
		}
		cycles, err := c.Step(bank)
		totalCycles += cycles
		if err != nil {
			res.FinalPC = c.State().PC
			res.Cycles = totalCycles
			res.Err = err
			return res
		}
	}

	res.FinalPC = c.State().PC
	res.Cycles = totalCycles
	res.Err = fmt.Errorf("exceeded %d steps without reaching a terminal address", maxSteps)
	return res
}
