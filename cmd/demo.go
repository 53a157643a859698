package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agusnoopy3000/Carta-QR/internal/fixtures"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Write a fabricated menu snapshot for offline development",
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, _ := cmd.Flags().GetInt64("seed")
		language, _ := cmd.Flags().GetString("lang")
		out, _ := cmd.Flags().GetString("out")

		snapshot := fixtures.Menu(seed, language)
		if err := snapshot.Validate(); err != nil {
			return fmt.Errorf("generated snapshot is invalid: %w", err)
		}

		data, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return err
		}
		if out == "" || out == "-" {
			_, err = os.Stdout.Write(append(data, '\n'))
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("Wrote demo menu with %d categories to %s\n", len(snapshot.Categories), out)
		return nil
	},
}

func init() {
	demoCmd.Flags().Int64("seed", 42, "Random seed for the fabricated menu")
	demoCmd.Flags().String("lang", "es", "Language of the fabricated menu")
	demoCmd.Flags().String("out", "-", "Output file, - for stdout")
	rootCmd.AddCommand(demoCmd)
}
