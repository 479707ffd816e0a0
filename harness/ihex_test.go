package harness_test

import (
	"strings"
	"testing"

	"github.com/hollowclock/sixfiveohtwo/harness"
	"github.com/hollowclock/sixfiveohtwo/memory"
)

func TestLoadIHEXDataRecords(t *testing.T) {
	src := ":04040000A9004C0096\n" +
		":00000001FF\n"
	bank := memory.NewFlat64K()
	if err := harness.LoadIHEX(strings.NewReader(src), bank); err != nil {
		t.Fatalf("LoadIHEX errored: %v", err)
	}
	want := []uint8{0xA9, 0x00, 0x4C, 0x00}
	for i, w := range want {
		if got := bank.Peek(0x0400 + uint16(i)); got != w {
			t.Errorf("byte %d: got %#02x, want %#02x", i, got, w)
		}
	}
}

func TestLoadIHEXSkipsBlankLines(t *testing.T) {
	src := "\n:02000000EAEA00\n\n:00000001FF\n"
	bank := memory.NewFlat64K()
	if err := harness.LoadIHEX(strings.NewReader(src), bank); err != nil {
		t.Fatalf("LoadIHEX errored: %v", err)
	}
	if got := bank.Peek(0x0000); got != 0xEA {
		t.Errorf("byte 0: got %#02x, want 0xEA", got)
	}
}

func TestLoadIHEXStopsAtEOFRecord(t *testing.T) {
	src := ":00000001FF\n:0100000012EC\n" // second record after EOF must be ignored
	bank := memory.NewFlat64K()
	if err := harness.LoadIHEX(strings.NewReader(src), bank); err != nil {
		t.Fatalf("LoadIHEX errored: %v", err)
	}
	if got := bank.Peek(0x0000); got != 0x00 {
		t.Errorf("byte after EOF record was written: got %#02x, want 0x00 (untouched)", got)
	}
}

func TestLoadIHEXMalformedLineIsFatal(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing colon", "04040000A9004C0096\n"},
		{"truncated record", ":04040000A900\n"},
		{"bad hex digit", ":0400000ZA9004C0096\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bank := memory.NewFlat64K()
			if err := harness.LoadIHEX(strings.NewReader(tc.src), bank); err == nil {
				t.Errorf("LoadIHEX(%q) succeeded, want a fatal parse error", tc.src)
			}
		})
	}
}
