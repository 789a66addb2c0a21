package config

import (
	"encoding/json"
	"os"

	"github.com/argentbank/argentctl/internal/flagx"
	"github.com/argentbank/argentctl/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "10s" or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	DatabasePath   string         `json:"database_path"`
}

// parseJson overlays Config with values loaded from a JSON file, resolved
// via the -c/-config flags. If no path is given, nothing is loaded.
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones. Only fields present in the JSON override defaults.
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

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
}
