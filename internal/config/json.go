package config

import (
	"encoding/json"
	"os"

	"github.com/mkorotovs/pocketvine/internal/flagx"
	"github.com/mkorotovs/pocketvine/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the session TTL either as a string like
// "24h" or as integer nanoseconds. Parsed values are copied into the runtime
// Config.
type JsonConfig struct {
	DatabasePath    *string         `json:"database_path"`
	StoreQuotaBytes *int64          `json:"store_quota_bytes"`
	SessionSecret   *string         `json:"session_secret"`
	SessionTTL      *timex.Duration `json:"session_ttl"`
	LogLevel        *string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags via flagx.JsonConfigFlags; when no
// path is given, nothing is loaded. Fields absent from the JSON keep their
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

	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.StoreQuotaBytes != nil {
		cfg.StoreQuotaBytes = *jc.StoreQuotaBytes
	}
	if jc.SessionSecret != nil {
		cfg.SessionSecret = *jc.SessionSecret
	}
	if jc.SessionTTL != nil {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
