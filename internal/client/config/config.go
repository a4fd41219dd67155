package config

import "time"

// Config holds runtime settings for the PeerPoint terminal client.
//
// Units: intervals and timeouts are time.Duration values; the flag layer
// accepts them in seconds, the JSON layer as "3s" strings or nanoseconds.
type Config struct {
	// EndpointAddr is the base URL of the backend HTTP API.
	EndpointAddr string
	// RequestTimeout bounds every single API call.
	RequestTimeout time.Duration
	// DBPath is the sqlite file holding saved credentials.
	DBPath string
	// NoticeTTL is how long a transient notice stays visible.
	NoticeTTL time.Duration
	// OnlineCheckInterval is how often the client probes server reachability.
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.DBPath = "peerpoint.db"
	c.NoticeTTL = 3 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
