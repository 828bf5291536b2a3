package slots

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/contactbook/internal/client/config"
	"github.com/dmitrijs2005/contactbook/internal/common"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) S3API {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// Open builds the Repository selected by cfg.StoreBackend. SQL backends are
// migrated and remote backends pinged before returning.
func Open(ctx context.Context, cfg *config.Config) (Repository, error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite, "":
		return OpenSQLite(ctx, cfg.SQLitePath)
	case config.BackendPostgres:
		return openPostgres(ctx, cfg)
	case config.BackendRedis:
		return openRedis(ctx, cfg)
	case config.BackendS3:
		return openS3(ctx, cfg)
	case config.BackendMemory:
		return NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrorUnsupportedBackend, cfg.StoreBackend)
	}
}

// OpenSQLite opens (creating if needed) the SQLite file at dsn and applies
// migrations.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer keeps SQLite from returning SQLITE_BUSY inside the process
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db, "sqlite3"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewSQLiteRepository(db), nil
}

func openPostgres(ctx context.Context, cfg *config.Config) (*PostgresRepository, error) {
	db, err := sql.Open("pgx", cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := RunMigrations(ctx, db, "pgx"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewPostgresRepository(db), nil
}

func openRedis(ctx context.Context, cfg *config.Config) (*RedisRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewRedisRepository(client, cfg.KeyPrefix, cfg.StoreTimeout), nil
}

func openS3(ctx context.Context, cfg *config.Config) (*S3Repository, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.S3Region)}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	repo := NewS3Repository(client, cfg.S3Bucket, cfg.KeyPrefix, cfg.StoreTimeout)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
	defer cancel()
	if err := repo.Ping(pingCtx); err != nil {
		return nil, fmt.Errorf("ping s3 bucket %q: %w", cfg.S3Bucket, err)
	}

	return repo, nil
}
