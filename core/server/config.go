package server

// Config holds configuration for the HTTP server exposed to the desktop shell.
type Config struct {
	// Host is the address the server binds to. The agent only ever serves
	// the local shell, so anything other than a loopback address is suspect.
	Host string `mapstructure:"host" default:"127.0.0.1"`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is an optional secret key required to access the API.
	// When empty, requests are not authenticated.
	ApiKey string `mapstructure:"api_key" default:""`
}

// Addr returns the listen address in host:port form.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}
