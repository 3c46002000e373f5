package config

import (
	"flag"
	"os"
	"time"

	"github.com/avolkov/tourneyadmin/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   session token HMAC secret key
//	-t int      session token validity, minutes
//	-k          set the Secure attribute on the session cookie
//
// The argument list is first filtered down to the flags handled here using
// flagx.FilterArgs so this flag set never collides with flags owned by other
// components (such as -c/-config for the JSON overlay).
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.BoolVar(&config.CookieSecure, "k", config.CookieSecure, "mark session cookie Secure")

	sessionTokenValidityDuration := fs.Int("t", int(config.SessionTokenValidityDuration.Minutes()), "session_token_validity_duration (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionTokenValidityDuration = time.Duration(*sessionTokenValidityDuration) * time.Minute
}
