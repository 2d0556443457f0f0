package config

import (
	"flag"
	"os"
	"time"

	"github.com/sakanapp/sakan/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   path to the local database file
//	-e string   base URL of the remote proxy (empty = local-only)
//	-i int      drain interval in seconds
//
// Args are filtered through flagx.FilterArgs so flags owned by other
// components pass through untouched.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-e", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database file")
	fs.StringVar(&cfg.ProxyEndpoint, "e", cfg.ProxyEndpoint, "remote proxy base URL")
	drainInterval := fs.Int("i", int(cfg.DrainInterval.Seconds()), "drain interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.DrainInterval = time.Duration(*drainInterval) * time.Second
}
