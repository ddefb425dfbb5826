package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/unitflow/unitflow/internal/inputs"
	"github.com/unitflow/unitflow/internal/policy"
)

var parseCmd = &cobra.Command{
	Use:   "parse <section.yaml>",
	Short: "Parse a flat config section into tracked quantities",
	Long:  "Reads a YAML mapping of field name to number, assigns each field its default unit under the named input unit system, and prints the tracked quantities.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrapf(err, "parse: read %s", args[0])
		}
		var section map[string]float64
		if err := yaml.Unmarshal(data, &section); err != nil {
			return eris.Wrapf(err, "parse: decode %s", args[0])
		}

		system, _ := cmd.Flags().GetString("system")
		if system == "" {
			system = cfg.Units.System
		}
		source, _ := cmd.Flags().GetString("source")

		parsed, err := inputs.ParseSection(section, system, source)
		if err != nil {
			return err
		}

		names := make([]string, 0, len(parsed))
		for name := range parsed {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(os.Stdout, "%-20s %s\n", name, parsed[name].String())
		}
		return nil
	},
}

var systemsCmd = &cobra.Command{
	Use:   "systems",
	Short: "List known unit systems",
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, s := range policy.Systems() {
			fmt.Fprintln(os.Stdout, s)
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().String("system", "", "input unit system (defaults to units.system from config)")
	parseCmd.Flags().String("source", "config", "source label recorded in provenance")
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(systemsCmd)
}
