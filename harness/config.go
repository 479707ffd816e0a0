package harness

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Fixture describes one functional-test ROM: where its Intel HEX image
// lives, where execution begins, and the one terminal address the harness
// watches for to decide pass/fail. Exactly one of SuccessAddress/
// ErrorAddress is populated, mirroring the "either/or" shape of spec.md §6's
// JSON schema.
type Fixture struct {
	Name           string
	HexFile        string `json:"hexFile"`
	StartAddress   string `json:"startAddress"`
	SuccessAddress string `json:"successAddress"`
	ErrorAddress   string `json:"errorAddress"`
}

// Config is the root object of the test-harness JSON document: a shared
// testDataPath the per-fixture hexFile names are resolved against, plus one
// Fixture per named test.
type Config struct {
	TestDataPath string             `json:"testDataPath"`
	Tests        map[string]Fixture `json:"-"`
}

// rawTest mirrors the wire shape of one fixture entry before Name (the map
// key) has been folded into the Fixture value.
type rawTest struct {
	HexFile        string `json:"hexFile"`
	StartAddress   string `json:"startAddress"`
	SuccessAddress string `json:"successAddress"`
	ErrorAddress   string `json:"errorAddress"`
}

// LoadConfig parses a test-harness configuration document from r. Per
// spec.md §6 the fixtures are siblings of testDataPath at the document's
// root rather than nested under their own key, so this decodes into a
// generic map first and peels testDataPath off before treating every
// remaining key as a fixture name.
func LoadConfig(r io.Reader) (*Config, error) {
	raw := map[string]json.RawMessage{}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("harness: config parse error: %w", err)
	}

	cfg := &Config{
		Tests: make(map[string]Fixture, len(raw)),
	}
	if v, ok := raw["testDataPath"]; ok {
		if err := json.Unmarshal(v, &cfg.TestDataPath); err != nil {
			return nil, fmt.Errorf("harness: testDataPath: %w", err)
		}
		delete(raw, "testDataPath")
	}

	for name, v := range raw {
		var rt rawTest
		if err := json.Unmarshal(v, &rt); err != nil {
			return nil, fmt.Errorf("harness: fixture %q: %w", name, err)
		}
		if rt.SuccessAddress == "" && rt.ErrorAddress == "" {
			return nil, fmt.Errorf("harness: fixture %q has neither successAddress nor errorAddress", name)
		}
		if rt.SuccessAddress != "" && rt.ErrorAddress != "" {
			return nil, fmt.Errorf("harness: fixture %q has both successAddress and errorAddress", name)
		}
		cfg.Tests[name] = Fixture{
			Name:           name,
			HexFile:        rt.HexFile,
			StartAddress:   rt.StartAddress,
			SuccessAddress: rt.SuccessAddress,
			ErrorAddress:   rt.ErrorAddress,
		}
	}
	return cfg, nil
}

// LoadConfigFile opens path and parses it as a test-harness configuration.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("harness: opening config %s: %w", path, err)
	}
	defer f.Close()
	return LoadConfig(f)
}

// HexPath resolves a fixture's hexFile against the config's testDataPath.
func (c *Config) HexPath(fix Fixture) string {
	if filepath.IsAbs(fix.HexFile) {
		return fix.HexFile
	}
	return filepath.Join(c.TestDataPath, fix.HexFile)
}

// parseHexAddress parses a bare (no "0x" prefix) hex string address field,
// per spec.md §6 ("hex string, no prefix").
func parseHexAddress(s string) (uint16, error) {
	b, err := hex.DecodeString(pad4(s))
	if err != nil {
		return 0, fmt.Errorf("invalid hex address %q: %w", s, err)
	}
	if len(b) != 2 {
		return 0, fmt.Errorf("invalid hex address %q: want 4 hex digits", s)
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// pad4 left-pads an odd-length or short hex string to 4 digits so
// hex.DecodeString always sees an even-length, full 16-bit field.
func pad4(s string) string {
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}

// StartPC returns the fixture's parsed start address.
func (f Fixture) StartPC() (uint16, error) {
	return parseHexAddress(f.StartAddress)
}

// TerminalAddress returns the fixture's success-or-error watch address and
// whether reaching it means success.
func (f Fixture) TerminalAddress() (addr uint16, success bool, err error) {
	if f.SuccessAddress != "" {
		addr, err = parseHexAddress(f.SuccessAddress)
		return addr, true, err
	}
	addr, err = parseHexAddress(f.ErrorAddress)
	return addr, false, err
}
