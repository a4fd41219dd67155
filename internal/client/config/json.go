package config

import (
	"encoding/json"
	"os"

	"github.com/smazurs/peerpoint/internal/flagx"
	"github.com/smazurs/peerpoint/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "3s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config.
type JsonConfig struct {
	EndpointAddr        string         `json:"endpoint_addr"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	DBPath              string         `json:"db_path"`
	NoticeTTL           timex.Duration `json:"notice_ttl"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags via flagx.JsonConfigFlags; if no path
// is given the function is a no-op. Fields absent from the JSON keep their
// current values. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.EndpointAddr != "" {
		cfg.EndpointAddr = jc.EndpointAddr
	}
	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.NoticeTTL.Duration != 0 {
		cfg.NoticeTTL = jc.NoticeTTL.Duration
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
}
