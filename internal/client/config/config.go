// Package config handles configuration for the curator CLI.
package config

// Config holds runtime settings for the CLI client.
type Config struct {
	// ServerEndpointAddr is the base URL of the keepsake server,
	// e.g. "http://127.0.0.1:8080".
	ServerEndpointAddr string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
