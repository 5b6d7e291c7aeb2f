package cmd

import (
	"fmt"

	"launcher-agent/core/config"
	"launcher-agent/core/history"
	"launcher-agent/core/logger"
	"launcher-agent/core/prefs"
	"launcher-agent/core/procs"
	"launcher-agent/feature/launch"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	launchNickname string
	launchIP       string
	launchPort     int
	launchNumber   int
)

// launchCmd represents the launch command
var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Launch the game client once and wait for the outcome",
	Long: `Runs a single launch attempt synchronously: kills conflicting client
instances, spawns the client and reports whether it survived its startup window.`,
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

		// Connect to the history database (Optional)
		var db *gorm.DB
		if cfg.History.Enabled {
			if conn, err := history.Connect(cfg.History); err != nil {
				logg.Warn("Optional history database connection failed", zap.Error(err))
			} else {
				db = conn
			}
		}

		svc := launch.NewService(
			cfg.Launcher,
			procs.NewRegistry(),
			prefs.NewStore(cfg.Prefs, logg),
			history.NewStore(db),
			logg,
		)

		req := launch.Request{Nickname: launchNickname}
		if launchIP != "" || launchPort != 0 || launchNumber != 0 {
			req.Server = &launch.ServerOverride{IP: launchIP, Port: launchPort, Number: launchNumber}
		}

		out, err := svc.LaunchSync(req)
		if err != nil {
			return err
		}

		if out.Succeeded {
			fmt.Printf("OK: %s (pid %d)\n", out.Message, *out.PID)
			return nil
		}
		return fmt.Errorf("%s", out.Message)
	},
}

func init() {
	RootCmd.AddCommand(launchCmd)

	launchCmd.Flags().StringVarP(&launchNickname, "nickname", "n", "", "Nickname to join with (required)")
	launchCmd.Flags().StringVar(&launchIP, "ip", "", "Server address override")
	launchCmd.Flags().IntVar(&launchPort, "port", 0, "Server port override")
	launchCmd.Flags().IntVar(&launchNumber, "number", 0, "Server number, saved to preferences on success")
	_ = launchCmd.MarkFlagRequired("nickname")
}
