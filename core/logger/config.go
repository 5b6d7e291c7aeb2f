package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the output encoding (json or console).
	Format string `mapstructure:"format" default:"console"`
	// File is an optional log file that output is mirrored into.
	File string `mapstructure:"file" default:"launcher-agent.log"`
}
