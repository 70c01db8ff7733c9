package commands

import (
	"context"
	"os"

	"glaze-matrix-be/internal/dto"
	"glaze-matrix-be/internal/printer"
	"glaze-matrix-be/pkg/matrix"

	"github.com/spf13/cobra"
)

var importFile string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Restore the disabled set from a file written by export",
	Long: `Import reads a matrix export (the CSV produced by "matrixctl export" or
GET /api/export-matrix) and replaces the stored disabled set with every row whose
Is Disabled column is true.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "Path to a matrix export CSV")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	f, err := os.Open(importFile)
	if err != nil {
		return printer.Error("Failed to open export", err.Error(), nil)
	}
	defer f.Close()

	disabled, err := matrix.ParseExport(f)
	if err != nil {
		return printer.Error("Not a matrix export", err.Error(), []string{
			"Use a file written by matrixctl export",
			"Use reconcile for externally authored sheets",
		})
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.service.SaveToggleStates(ctx, &dto.SaveToggleStatesRequest{DisabledCells: disabled.Keys()})
	if err != nil {
		return printer.Error("Failed to save toggle states", err.Error(), nil)
	}

	printer.Success("Restored %d disabled pairings (%s storage)\n", res.Count, s.store.Source())
	return nil
}
