package config

import "flag"

// parseFlags overlays command-line flags onto cfg. A dedicated FlagSet keeps
// tests free of global flag state.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("nutrilog", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "api-url", cfg.APIBaseURL, "base URL of the nutrition backend")
	fs.StringVar(&cfg.StorageBackend, "storage", cfg.StorageBackend, "storage backend: sqlite, redis or memory")
	fs.StringVar(&cfg.StorageDSN, "dsn", cfg.StorageDSN, "sqlite database path")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "redis host:port")
	fs.IntVar(&cfg.RedisDB, "redis-db", cfg.RedisDB, "redis database index")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per-request timeout for validation and fetch calls")

	return fs.Parse(args)
}
