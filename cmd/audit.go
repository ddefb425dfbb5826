package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/unitflow/unitflow/internal/audit"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect stored calculation audit logs",
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored audit logs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		limit, _ := cmd.Flags().GetInt("limit")
		logs, err := st.List(ctx, limit)
		if err != nil {
			return err
		}
		if len(logs) == 0 {
			fmt.Fprintln(os.Stderr, "No audit logs found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tLABEL\tCREATED")
		for _, l := range logs {
			fmt.Fprintf(w, "%s\t%s\t%s\n", l.ID, l.Label, l.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}

var auditShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the summary of a stored audit log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		saved, err := st.Load(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Label: %s\n\n%s", saved.Label, saved.Log.Summary())
		return nil
	},
}

var auditExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a stored audit log as JSON or CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		saved, err := st.Load(ctx, args[0])
		if err != nil {
			return err
		}

		formatFlag, _ := cmd.Flags().GetString("format")
		switch formatFlag {
		case "json":
			data, err := saved.Log.JSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, string(data))
		case "csv":
			out, err := saved.Log.CSV()
			if err != nil {
				return err
			}
			fmt.Fprint(os.Stdout, out)
		default:
			return eris.Errorf("audit export: unknown format %q (want json or csv)", formatFlag)
		}
		return nil
	},
}

// openStore opens and migrates the audit store configured under store.path.
func openStore(ctx context.Context) (*audit.Store, error) {
	st, err := audit.NewStore(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

func init() {
	auditListCmd.Flags().Int("limit", 20, "maximum number of logs to list")
	auditExportCmd.Flags().String("format", "json", "export format (json or csv)")
	auditCmd.AddCommand(auditListCmd, auditShowCmd, auditExportCmd)
	rootCmd.AddCommand(auditCmd)
}
