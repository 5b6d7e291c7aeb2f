package roster

import "time"

// Config holds configuration for the remote server roster endpoint.
type Config struct {
	// URL is the roster endpoint. GET over HTTPS, JSON body, no auth.
	URL string `mapstructure:"url" default:"https://arizona-ping.react.group/desktop/ping/Arizona/ping.json"`
	// Timeout bounds the whole fetch, connection setup included.
	Timeout time.Duration `mapstructure:"timeout" default:"10s"`
}
