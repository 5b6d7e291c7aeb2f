package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"launcher-agent/core/config"
	"launcher-agent/core/history"
	"launcher-agent/core/loader"
	"launcher-agent/core/logger"
	"launcher-agent/core/middleware/auth"
	"launcher-agent/core/middleware/rayid"
	"launcher-agent/core/prefs"
	"launcher-agent/core/procs"
	"launcher-agent/feature/launch"
	"launcher-agent/feature/patches"
	"launcher-agent/feature/roster"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// @title Launcher Agent API
// @version 1.0
// @description Local API the desktop shell uses to launch the game client, manage preferences, edit patches and list servers.
// @host 127.0.0.1:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the launcher agent server",
	Long:  `Starts the local HTTP server the desktop shell talks to and initializes all features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if _, err := os.Stat(cfg.Launcher.Path); err != nil {
			logg.Warn("Game client executable not found; launches will be rejected",
				zap.String("path", cfg.Launcher.Path))
		}

		// 3. Connect to the history database (Optional)
		var db *gorm.DB
		if cfg.History.Enabled {
			if conn, err := history.Connect(cfg.History); err != nil {
				logg.Warn("Optional history database connection failed", zap.Error(err))
			} else {
				db = conn
				logg.Info("Connected to launch-history database", zap.String("driver", cfg.History.Driver))
			}
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 5. Shared collaborators
		registry := procs.NewRegistry()
		prefStore := prefs.NewStore(cfg.Prefs, logg)
		histStore := history.NewStore(db)

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features
		mgr.Register(launch.NewFeature(cfg.Launcher, registry, prefStore, histStore, logg))
		mgr.Register(roster.NewFeature(cfg.Roster, logg))
		mgr.Register(patches.NewFeature(cfg.Patches, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Auth (only enforced when an API key is configured)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("addr", cfg.Server.Addr()))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
