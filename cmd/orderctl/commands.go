package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var importDryRun bool

// importCmd loads a CSV export into the local order store.
var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import orders from a CSV file",
	Long: `Import orders from a header-driven CSV file. Rows sharing an orderId are
grouped into one order. The whole file is rejected when any orderId already
exists or repeats within the file.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the storefront snapshot",
	Args:  cobra.NoArgs,
	RunE:  runSync,
}

var trackCmd = &cobra.Command{
	Use:   "track <order-id>",
	Short: "Refresh the carrier tracking record of an order",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrack,
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Only check that the file can be read")
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	if filepath.Ext(path) != ".csv" {
		return fmt.Errorf("%s: only .csv files are accepted", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	if importDryRun {
		st, err := f.Stat()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d bytes, ready to import\n", path, st.Size())
		return nil
	}

	return withApp(cmd, func(ctx context.Context, a *app) error {
		res, err := a.imports.ImportCSV(ctx, f, filepath.Base(path))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d orders\n", res.Count)
		if res.ArchiveURL != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Archived to %s\n", res.ArchiveURL)
		}
		return nil
	})
}

func runSync(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		res, err := a.orders.SyncUpstream(ctx)
		if err != nil {
			return err
		}
		return printJSON(cmd, res)
	})
}

func runTrack(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		order, err := a.returns.RefreshTracking(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, order.ReturnTracking)
	})
}
