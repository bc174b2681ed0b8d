package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"subscriber-desk/core/config"
	"subscriber-desk/core/upstream"
	"subscriber-desk/feature/client"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var lookupIDA string

// lookupCmd fetches one client record from the provisioning API and
// prints it, for operators debugging a lookup without the server.
var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Look up a client record by IDA",
	Long:  `Fetches a client record from the provisioning API and prints the normalized JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		svc := client.NewService(upstream.New(cfg.Upstream), cfg.Upstream, zap.NewNop())
		record, err := svc.FetchRecord(cmd.Context(), lookupIDA)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	lookupCmd.Flags().StringVar(&lookupIDA, "ida", "", "client identifier to look up")
	_ = lookupCmd.MarkFlagRequired("ida")
	RootCmd.AddCommand(lookupCmd)
}
