package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/contactbook/internal/flagx"
)

var knownFlags = []string{
	"-backend", "-db", "-redis", "-pg", "-s3-bucket", "-s3-endpoint",
	"-prefix", "-log-level", "-log-format", "-max-image", "-export-dir",
}

// parseFlags populates selected Config fields from command-line flags.
//
//	-backend string     sqlite | redis | postgres | s3 | memory
//	-db string          sqlite database file
//	-redis string       redis address
//	-pg string          postgres DSN
//	-s3-bucket string   bucket for the s3 backend
//	-s3-endpoint string S3 base endpoint
//	-prefix string      key prefix for shared stores
//	-log-level string   debug | info | warn | error
//	-log-format string  text | json
//	-max-image int      max photo size in bytes
//	-export-dir string  directory for relative export paths
//
// Only the flags above are taken from os.Args (see flagx.FilterArgs), so
// -c/-config and unrelated arguments do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StoreBackend, "backend", cfg.StoreBackend, "store backend")
	fs.StringVar(&cfg.SQLitePath, "db", cfg.SQLitePath, "sqlite database file")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.PostgresDSN, "pg", cfg.PostgresDSN, "postgres DSN")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "s3 bucket")
	fs.StringVar(&cfg.S3BaseEndpoint, "s3-endpoint", cfg.S3BaseEndpoint, "s3 base endpoint")
	fs.StringVar(&cfg.KeyPrefix, "prefix", cfg.KeyPrefix, "key prefix for shared stores")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format")
	fs.Int64Var(&cfg.MaxImageBytes, "max-image", cfg.MaxImageBytes, "max photo size in bytes")
	fs.StringVar(&cfg.ExportDir, "export-dir", cfg.ExportDir, "directory for relative export paths")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
