package cpu_test

import (
	"testing"

	"github.com/hollowclock/sixfiveohtwo/cpu"
	"github.com/hollowclock/sixfiveohtwo/variant"
)

func toBCD(v int) uint8 {
	return uint8((v/10)<<4 | (v % 10))
}

func fromBCD(v uint8) int {
	return int(v>>4)*10 + int(v&0x0F)
}

// TestBCDAdditionLaw implements spec.md §8's BCD law: for every (A, M,
// C_in) in [0,99]x[0,99]x{0,1} with A and M valid BCD, ADC with D=1 yields
// A' = (A+M+C_in) mod 100 in BCD with C_out = 1 iff (A+M+C_in) >= 100. This
// holds identically across all four variants; only N/Z/V differ by variant
// (see TestBCDFlagsByVariant), so this test deliberately never inspects
// them, matching the Open Question decision recorded in DESIGN.md.
func TestBCDAdditionLaw(t *testing.T) {
	for _, id := range []variant.ID{variant.NMOS, variant.NMOSSimple, variant.WDC65C02, variant.Rockwell65C02} {
		id := id
		t.Run(id.String(), func(t *testing.T) {
			c, b := newFixture(t, id)
			setResetVector(b, 0x0400)

			b.Write(0x0400, 0xA9) // LDA #a
			b.Write(0x0402, 0x69) // ADC #m
			b.Write(0x0404, 0xEA) // NOP (landing pad for repeated reset/step)

			for a := 0; a <= 99; a += 7 { // sample the space; exhaustive is 2*10000 cases
				for m := 0; m <= 99; m += 11 {
					for cin := 0; cin <= 1; cin++ {
						c.Reset(b)
						s := c.State()
						s.P |= cpu.FlagD
						if cin == 1 {
							s.P |= cpu.FlagC
						} else {
							s.P &^= cpu.FlagC
						}
						c.SetState(s)

						b.Write(0x0401, toBCD(a))
						b.Write(0x0403, toBCD(m))

						if _, err := c.Step(b); err != nil { // LDA
							t.Fatalf("a=%d m=%d cin=%d: LDA errored: %v", a, m, cin, err)
						}
						if _, err := c.Step(b); err != nil { // ADC
							t.Fatalf("a=%d m=%d cin=%d: ADC errored: %v", a, m, cin, err)
						}

						sum := a + m + cin
						want := sum % 100
						wantCarry := sum >= 100

						got := c.State()
						if fromBCD(got.A) != want {
							t.Fatalf("a=%d m=%d cin=%d: A=%#02x (%d decoded), want %d",
								a, m, cin, got.A, fromBCD(got.A), want)
						}
						gotCarry := got.P&cpu.FlagC != 0
						if gotCarry != wantCarry {
							t.Fatalf("a=%d m=%d cin=%d: C=%v, want %v", a, m, cin, gotCarry, wantCarry)
						}
					}
				}
			}
		})
	}
}

// TestBCDFlagsByVariant checks the NMOS-vs-CMOS N/Z/V split documented in
// spec.md §4.2, using a case where the binary intermediate and the
// BCD-corrected result visibly disagree on Z: $99 + $01 with no carry in
// sums to a BCD-corrected $00 (Z=1) but a binary intermediate of $9A
// (nonzero, Z=0).
func TestBCDFlagsByVariant(t *testing.T) {
	for _, id := range []variant.ID{variant.NMOS, variant.NMOSSimple, variant.WDC65C02, variant.Rockwell65C02} {
		id := id
		t.Run(id.String(), func(t *testing.T) {
			c, b := newFixture(t, id)
			setResetVector(b, 0x0400)
			c.Reset(b)
			s := c.State()
			s.P |= cpu.FlagD
			s.P &^= cpu.FlagC
			c.SetState(s)

			b.Write(0x0400, 0xA9) // LDA #$99
			b.Write(0x0401, 0x99)
			b.Write(0x0402, 0x69) // ADC #$01
			b.Write(0x0403, 0x01)

			if _, err := c.Step(b); err != nil {
				t.Fatalf("LDA errored: %v", err)
			}
			if _, err := c.Step(b); err != nil {
				t.Fatalf("ADC errored: %v", err)
			}
			got := c.State()
			if got.A != 0x00 {
				t.Fatalf("A = %#02x, want 0x00 (BCD-corrected)", got.A)
			}
			wantZ := id.IsCMOS() // CMOS: Z from corrected 0x00 -> Z=1. NMOS: Z from binary 0x9A -> Z=0.
			gotZ := got.P&cpu.FlagZ != 0
			if gotZ != wantZ {
				t.Errorf("Z = %v, want %v (variant=%s)", gotZ, wantZ, id)
			}
			// V is intentionally not asserted for NMOS per the recorded
			// Open Question decision; CMOS V is well-defined but this case
			// doesn't exercise a signed overflow, so it's skipped here too.
		})
	}
}
