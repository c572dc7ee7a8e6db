package config

import (
	"flag"
	"fmt"
	"log/slog"
)

const DefaultDBPath = "bank_buddy.db"

type Config struct {
	DBPath   string
	LogLevel slog.Level
}

// Load parses command-line arguments. The ledger file path and log level are
// the only knobs; there is no environment-variable configuration.
func Load(name string, args []string) (*Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	dbPath := fs.String("db", DefaultDBPath, "path to the ledger database file")
	logLevel := fs.String("log-level", "warn", "log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	level, err := parseLevel(*logLevel)
	if err != nil {
		return nil, err
	}

	return &Config{
		DBPath:   *dbPath,
		LogLevel: level,
	}, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
