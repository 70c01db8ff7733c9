package commands

import (
	"context"
	"encoding/json"

	"glaze-matrix-be/internal/printer"

	"github.com/spf13/cobra"
)

var loadJSON bool

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Print the stored disabled pairings",
	RunE:  runLoad,
}

func init() {
	loadCmd.Flags().BoolVar(&loadJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.service.LoadToggleStates(ctx)
	if err != nil {
		return printer.Error("Failed to load toggle states", err.Error(), nil)
	}

	if loadJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	printer.Step("%d disabled pairings (%s storage)\n", len(res.DisabledCells), res.Source)
	for _, key := range res.DisabledCells {
		printer.Println(key)
	}
	return nil
}
