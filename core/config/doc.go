// Package config provides configuration management for the launcher agent.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file next to the binary.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP boundary settings (host, port, API key)
//   - Log: Logging level, format and file sink
//   - Launcher: game-client executable path, connection defaults and timing
//   - Roster: remote roster endpoint URL and timeout
//   - Patches: plugin-configuration document path
//   - Prefs: user preferences document path
//   - History: optional launch-history database
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
