package cmd

import (
	"context"
	"fmt"

	"launcher-agent/core/config"
	"launcher-agent/core/logger"
	"launcher-agent/feature/roster"

	"github.com/spf13/cobra"
)

// serversCmd represents the servers command
var serversCmd = &cobra.Command{
	Use:   "servers",
	Short: "Fetch and print the normalized server roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		client := roster.NewClient(cfg.Roster, logg)
		servers, err := client.Fetch(context.Background())
		if err != nil {
			return err
		}

		for _, s := range servers {
			mark := " "
			if s.Recommended {
				mark = "*"
			}
			fmt.Printf("%s %3d  %-30s %s:%d  online %d/%d  queue %d\n",
				mark, s.Number, s.Name, s.IP, s.Port, s.Online, s.MaxPlayers, s.Queue)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(serversCmd)
}
