// Command sixfiveohtwo drives the Dormann/Bruce-Clark style functional test
// ROMs against the core: select a variant, run one named fixture or all of
// them, and report pass/fail per spec.md §6's CLI surface.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hollowclock/sixfiveohtwo/harness"
	"github.com/hollowclock/sixfiveohtwo/variant"
)

var variantNames = map[string]variant.ID{
	"nmos":        variant.NMOS,
	"nmos-simple": variant.NMOSSimple,
	"wdc65c02":    variant.WDC65C02,
	"rockwell":    variant.Rockwell65C02,
}

func parseVariant(name string) (variant.ID, error) {
	id, ok := variantNames[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown variant %q (want one of: nmos, nmos-simple, wdc65c02, rockwell)", name)
	}
	return id, nil
}

func main() {
	var configPath string
	var variantName string

	rootCmd := &cobra.Command{
		Use:   "sixfiveohtwo",
		Short: "Run 6502-family functional test ROMs against the cycle-accurate core",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "testdata/config.json", "Path to the test-harness JSON configuration")
	rootCmd.PersistentFlags().StringVar(&variantName, "variant", "nmos", "CPU variant: nmos, nmos-simple, wdc65c02, rockwell")

	variantCmd := &cobra.Command{
		Use:   "variant",
		Short: "List the supported CPU variants",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := make([]string, 0, len(variantNames))
			for n := range variantNames {
				names = append(names, n)
			}
			sort.Strings(names)
			for _, n := range names {
				fmt.Printf("%-12s %s\n", n, variantNames[n])
			}
			return nil
		},
	}

	runCmd := &cobra.Command{
		Use:   "run [test name]",
		Short: "Run a single named test fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseVariant(variantName)
			if err != nil {
				return err
			}
			cfg, err := harness.LoadConfigFile(configPath)
			if err != nil {
				return err
			}
			fix, ok := cfg.Tests[args[0]]
			if !ok {
				return fmt.Errorf("no such test fixture %q in %s", args[0], configPath)
			}
			res := harness.Run(cfg, fix, id)
			fmt.Println(res)
			if !res.Passed {
				os.Exit(1)
			}
			return nil
		},
	}

	runAllCmd := &cobra.Command{
		Use:   "run-all",
		Short: "Run every test fixture in the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseVariant(variantName)
			if err != nil {
				return err
			}
			cfg, err := harness.LoadConfigFile(configPath)
			if err != nil {
				return err
			}
			names := make([]string, 0, len(cfg.Tests))
			for n := range cfg.Tests {
				names = append(names, n)
			}
			sort.Strings(names)

			failures := 0
			for _, n := range names {
				res := harness.Run(cfg, cfg.Tests[n], id)
				fmt.Println(res)
				if !res.Passed {
					failures++
				}
			}
			fmt.Printf("\n%d/%d passed\n", len(names)-failures, len(names))
			if failures > 0 {
				os.Exit(1)
			}
			return nil
		},
	}

	rootCmd.AddCommand(variantCmd, runCmd, runAllCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
