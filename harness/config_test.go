package harness_test

import (
	"strings"
	"testing"

	"github.com/hollowclock/sixfiveohtwo/harness"
)

const sampleConfig = `{
	"testDataPath": "testdata",
	"functional": {
		"hexFile": "6502_functional_test.hex",
		"startAddress": "0400",
		"successAddress": "3469"
	},
	"dadc": {
		"hexFile": "dadc.hex",
		"startAddress": "D000",
		"errorAddress": "D002"
	}
}`

func TestLoadConfig(t *testing.T) {
	cfg, err := harness.LoadConfig(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfig errored: %v", err)
	}
	if cfg.TestDataPath != "testdata" {
		t.Errorf("TestDataPath = %q, want %q", cfg.TestDataPath, "testdata")
	}
	if len(cfg.Tests) != 2 {
		t.Fatalf("got %d fixtures, want 2", len(cfg.Tests))
	}

	fn, ok := cfg.Tests["functional"]
	if !ok {
		t.Fatalf("missing fixture %q", "functional")
	}
	pc, err := fn.StartPC()
	if err != nil || pc != 0x0400 {
		t.Errorf("functional.StartPC() = %#04x, %v, want 0x0400, nil", pc, err)
	}
	addr, success, err := fn.TerminalAddress()
	if err != nil || addr != 0x3469 || !success {
		t.Errorf("functional.TerminalAddress() = %#04x, %v, %v, want 0x3469, true, nil", addr, success, err)
	}

	dadc := cfg.Tests["dadc"]
	addr, success, err = dadc.TerminalAddress()
	if err != nil || addr != 0xD002 || success {
		t.Errorf("dadc.TerminalAddress() = %#04x, %v, %v, want 0xD002, false, nil", addr, success, err)
	}

	if got, want := cfg.HexPath(fn), "testdata/6502_functional_test.hex"; got != want {
		t.Errorf("HexPath = %q, want %q", got, want)
	}
}

func TestLoadConfigRejectsFixtureWithNoTerminalAddress(t *testing.T) {
	src := `{"testDataPath": "testdata", "bad": {"hexFile": "x.hex", "startAddress": "0400"}}`
	if _, err := harness.LoadConfig(strings.NewReader(src)); err == nil {
		t.Errorf("LoadConfig succeeded, want an error for a fixture with neither successAddress nor errorAddress")
	}
}

func TestLoadConfigMalformedJSON(t *testing.T) {
	if _, err := harness.LoadConfig(strings.NewReader("{not json")); err == nil {
		t.Errorf("LoadConfig succeeded on malformed JSON, want an error")
	}
}
