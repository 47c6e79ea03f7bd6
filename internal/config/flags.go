package config

import (
	"flag"
	"os"
	"time"

	"github.com/mkorotovs/pocketvine/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-f string   path of the store database file (default from Config)
//	-q int      store quota in bytes, 0 disables the cap
//	-t int      session ttl in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-f", "-q", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "f", cfg.DatabasePath, "path of the store database file")
	fs.Int64Var(&cfg.StoreQuotaBytes, "q", cfg.StoreQuotaBytes, "store quota in bytes (0 disables)")
	sessionTTL := fs.Int("t", int(cfg.SessionTTL.Seconds()), "session ttl (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SessionTTL = time.Duration(*sessionTTL) * time.Second
}
