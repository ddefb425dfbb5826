package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/unitflow/unitflow/internal/audit"
	"github.com/unitflow/unitflow/internal/lineage"
)

var lineageCmd = &cobra.Command{
	Use:   "lineage <id-or-file>",
	Short: "Render the lineage graph of an audit log",
	Long:  "Builds the input/step/output lineage graph from a stored audit log (by ID) or an exported audit JSON file, and renders it as dot, html, svg, or json.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		log, err := loadLog(ctx, args[0])
		if err != nil {
			return err
		}
		graph := lineage.FromAuditLog(log)

		formatFlag, _ := cmd.Flags().GetString("format")
		var out []byte
		switch formatFlag {
		case "dot":
			out = []byte(graph.DOT())
		case "html":
			out = []byte(graph.HTML())
		case "json":
			out, err = graph.JSON()
			if err != nil {
				return err
			}
		case "svg":
			timeout := time.Duration(cfg.Lineage.DotTimeoutSecs) * time.Second
			renderCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			out, err = graph.SVG(renderCtx, cfg.Lineage.DotPath)
			if err != nil {
				return err
			}
		default:
			return eris.Errorf("lineage: unknown format %q (want dot, html, svg, or json)", formatFlag)
		}

		if outPath, _ := cmd.Flags().GetString("out"); outPath != "" {
			if err := os.WriteFile(outPath, out, 0o644); err != nil {
				return eris.Wrapf(err, "lineage: write %s", outPath)
			}
			return nil
		}
		fmt.Fprint(os.Stdout, string(out))
		return nil
	},
}

// loadLog resolves the argument as an audit JSON file first, then as a
// stored log ID.
func loadLog(ctx context.Context, arg string) (*audit.Log, error) {
	if data, err := os.ReadFile(arg); err == nil {
		return audit.FromJSON(data)
	}

	st, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close() //nolint:errcheck

	saved, err := st.Load(ctx, arg)
	if err != nil {
		return nil, err
	}
	return saved.Log, nil
}

func init() {
	lineageCmd.Flags().String("format", "dot", "output format (dot, html, svg, json)")
	lineageCmd.Flags().String("out", "", "write output to a file instead of stdout")
	rootCmd.AddCommand(lineageCmd)
}
