package cmd

import (
	"fmt"
	"log"
	"time"

	"subscriber-desk/core/config"
	"subscriber-desk/feature/roster"

	"github.com/spf13/cobra"
)

// rosterCmd inspects the credentials roster from the command line.
var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Inspect the credentials roster",
	Long:  `Loads the roster grid and prints a summary: row count and the first unused credential.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		g, err := newGridSource(cfg.Grid, cfg.Storage)
		if err != nil {
			return err
		}

		source := roster.NewSource(g, time.Duration(cfg.Grid.CacheTTLSeconds*float64(time.Second)))
		records, err := source.Records(cmd.Context(), true)
		if err != nil {
			return err
		}
		fmt.Printf("roster rows: %d\n", len(records))

		available, err := source.FirstAvailable(cmd.Context())
		if err != nil {
			return err
		}
		if available == nil {
			fmt.Println("no unused credentials left")
			return nil
		}
		fmt.Printf("first unused credential: %s (CIC %s, row %d)\n",
			available.Username, available.CIC, available.RowIndex)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(rosterCmd)
}
