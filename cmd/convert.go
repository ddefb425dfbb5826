package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/unitflow/unitflow/internal/quantity"
	"github.com/unitflow/unitflow/internal/units"
)

var convertCmd = &cobra.Command{
	Use:   "convert <value> <from-unit> <to-unit>",
	Short: "Convert a value between units",
	Long:  "Converts a value through the canonical registry, or through a domain adapter when --domain is set.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return eris.Wrapf(err, "convert: parse value %q", args[0])
		}
		from, to := args[1], args[2]

		domain, _ := cmd.Flags().GetString("domain")
		if domain != "" {
			out, err := domainConvert(domain, value, from, to)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "%g %s = %g %s\n", value, from, *out, to)
			return nil
		}

		q, err := quantity.New(value, from, "cli")
		if err != nil {
			return err
		}
		converted, err := q.To(to)
		if err != nil {
			return err
		}

		if trace, _ := cmd.Flags().GetBool("trace"); trace {
			f, err := newFormatter()
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, f.FormatWithProvenance(converted))
			return nil
		}
		fmt.Fprintf(os.Stdout, "%s = %s\n", q.String(), converted.String())
		return nil
	},
}

func domainConvert(domain string, value float64, from, to string) (*float64, error) {
	switch domain {
	case "speed":
		return units.ConvertSpeed(&value, from, to)
	case "length":
		return units.ConvertLength(&value, from, to)
	case "temperature":
		return units.ConvertTemperature(&value, from, to)
	case "pressure":
		return units.ConvertPressure(&value, from, to)
	case "energy":
		return units.ConvertEnergy(&value, from, to)
	case "mass":
		return units.ConvertMass(&value, from, to)
	case "volume":
		return units.ConvertVolume(&value, from, to)
	default:
		return nil, eris.Errorf("convert: unknown domain %q", domain)
	}
}

func init() {
	convertCmd.Flags().String("domain", "", "use a domain adapter (speed, length, temperature, pressure, energy, mass, volume)")
	convertCmd.Flags().Bool("trace", false, "print the provenance trail of the converted value")
	rootCmd.AddCommand(convertCmd)
}
