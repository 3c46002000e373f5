package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/avolkov/tourneyadmin/internal/flagx"
	"github.com/avolkov/tourneyadmin/internal/timex"
)

// JsonConfig is the DTO for reading a JSON configuration file. It uses
// timex.Duration for interval fields, which parses both string values such
// as "30m" and integer nanoseconds. After unmarshalling, its fields are
// copied into the runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP             string         `json:"endpoint_addr_http"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	SessionTokenValidityDuration timex.Duration `json:"session_token_validity_duration"`
	CookieSecure                 bool           `json:"cookie_secure"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config. The file path is taken from the -c/-config command-line flags; when
// neither flag is set, no JSON file is loaded. An unreadable or invalid file
// is a startup failure and panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.SessionTokenValidityDuration = time.Duration(c.SessionTokenValidityDuration.Duration)
	config.CookieSecure = c.CookieSecure
}
