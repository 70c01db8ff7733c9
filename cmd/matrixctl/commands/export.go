package commands

import (
	"context"
	"io"
	"os"

	"glaze-matrix-be/internal/printer"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the full pairing matrix with the stored disabled set as CSV",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (defaults to stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	var w io.Writer = cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return printer.Error("Failed to create output file", err.Error(), nil)
		}
		defer f.Close()
		w = f
	}

	if err := s.service.ExportStoredMatrix(ctx, w); err != nil {
		return printer.Error("Export failed", err.Error(), nil)
	}

	if exportOut != "" {
		printer.Success("Exported %d pairings to %s\n", s.registry.TotalPairings(), exportOut)
	}
	return nil
}
