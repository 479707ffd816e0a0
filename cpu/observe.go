package cpu

import "fmt"

// Snapshot is an immutable copy of a CPU's State taken for later
// comparison. It exists purely for debuggers/trace tooling built on top
// of this package; nothing in the hot Clock/Step/Run path allocates or
// reads one.
type Snapshot struct {
	state State
}

// Snapshot captures the CPU's current State.
func (c *CPU) Snapshot() Snapshot {
	return Snapshot{state: c.State()}
}

// RegisterDiff describes one named field that changed between two
// Snapshots, with both values formatted for display.
type RegisterDiff struct {
	Field string
	Prev  string
	Current string
}

// Diff compares this Snapshot (taken first) against a later one, returning
// one RegisterDiff per register, PC, P, Status or PendingInterrupt field
// that changed. It never
// inspects Pipeline/PipelineIndex: those are execution-internal, not
// observable processor state.
func (prev Snapshot) Diff(current Snapshot) []RegisterDiff {
	var out []RegisterDiff
	add := func(field string, before, after interface{}) {
		if fmt.Sprint(before) != fmt.Sprint(after) {
			out = append(out, RegisterDiff{
				Field:   field,
				Prev:    fmt.Sprint(before),
				Current: fmt.Sprint(after),
			})
		}
	}
	p, c := prev.state, current.state
	add("A", p.A, c.A)
	add("X", p.X, c.X)
	add("Y", p.Y, c.Y)
	add("SP", p.SP, c.SP)
	add("PC", fmt.Sprintf("%#04x", p.PC), fmt.Sprintf("%#04x", c.PC))
	add("P", fmt.Sprintf("%#02x", p.P), fmt.Sprintf("%#02x", c.P))
	add("Status", p.Status, c.Status)
	add("PendingInterrupt", p.PendingInterrupt, c.PendingInterrupt)
	return out
}

// State returns the register/flag aggregate captured by this Snapshot.
func (s Snapshot) State() State {
	return s.state
}
