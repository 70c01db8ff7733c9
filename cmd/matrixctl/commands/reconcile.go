package commands

import (
	"context"
	"os"
	"path/filepath"

	"glaze-matrix-be/internal/dto"
	"glaze-matrix-be/internal/printer"

	"github.com/spf13/cobra"
)

var (
	reconcileCSV      string
	reconcileBoundary string
	reconcileDryRun   bool
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Replace the disabled set from an externally maintained CSV matrix",
	Long: `Reconcile reads a CSV whose header row lists underglaze names and whose data rows
start with a glaze name. A cell containing 1 keeps the pairing enabled; any other value
disables it. Pairings the sheet does not address stay enabled.

The stored disabled set is replaced unless --dry-run is given.`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&reconcileCSV, "csv", "", "Path to the CSV matrix")
	reconcileCmd.Flags().StringVar(&reconcileBoundary, "boundary", "", "Last underglaze column to read (defaults to MATRIX_BOUNDARY_COLUMN)")
	reconcileCmd.Flags().BoolVar(&reconcileDryRun, "dry-run", false, "Report the result without saving")
	_ = reconcileCmd.MarkFlagRequired("csv")
	rootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	content, err := os.ReadFile(reconcileCSV)
	if err != nil {
		return printer.Error("Failed to read CSV", err.Error(), nil)
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	printer.Step("Reconciling %s against %d glazes and %d underglazes\n",
		filepath.Base(reconcileCSV), len(s.registry.Glazes), len(s.registry.Underglazes))

	res, err := s.service.Reconcile(ctx, &dto.ReconcileRequest{
		Csv:            string(content),
		BoundaryColumn: reconcileBoundary,
		Apply:          !reconcileDryRun,
		FileName:       filepath.Base(reconcileCSV),
	})
	if err != nil {
		return printer.Error("Reconciliation failed", err.Error(), []string{
			"Check that the first row holds underglaze names",
		})
	}

	printer.Info("  Total combinations: %d\n", res.TotalCombinations)
	printer.Info("  Enabled:            %d\n", res.EnabledCount)
	printer.Info("  Disabled:           %d\n", res.DisabledCount)

	for _, w := range res.Warnings {
		printer.Warning("%s\n", w.Message)
	}

	if reconcileDryRun {
		printer.Success("Dry run, nothing saved\n")
		return nil
	}
	printer.Success("Saved %d disabled pairings to %s storage\n", res.DisabledCount, res.StorageSource)
	return nil
}
