package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/contactbook/internal/flagx"
	"github.com/dmitrijs2005/contactbook/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from zero values so a partial file only
// overrides what it names.
type JsonConfig struct {
	StoreBackend   *string         `json:"store_backend"`
	SQLitePath     *string         `json:"sqlite_path"`
	RedisAddr      *string         `json:"redis_addr"`
	RedisDB        *int            `json:"redis_db"`
	PostgresDSN    *string         `json:"postgres_dsn"`
	S3Bucket       *string         `json:"s3_bucket"`
	S3Region       *string         `json:"s3_region"`
	S3BaseEndpoint *string         `json:"s3_endpoint"`
	S3AccessKey    *string         `json:"s3_access_key"`
	S3SecretKey    *string         `json:"s3_secret_key"`
	KeyPrefix      *string         `json:"key_prefix"`
	StoreTimeout   *timex.Duration `json:"store_timeout"`
	LogLevel       *string         `json:"log_level"`
	LogFormat      *string         `json:"log_format"`
	MaxImageBytes  *int64          `json:"max_image_bytes"`
	ExportDir      *string         `json:"export_dir"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag it does nothing. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setString(&cfg.StoreBackend, jc.StoreBackend)
	setString(&cfg.SQLitePath, jc.SQLitePath)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	if jc.RedisDB != nil {
		cfg.RedisDB = *jc.RedisDB
	}
	setString(&cfg.PostgresDSN, jc.PostgresDSN)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.KeyPrefix, jc.KeyPrefix)
	if jc.StoreTimeout != nil {
		cfg.StoreTimeout = jc.StoreTimeout.Duration
	}
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	if jc.MaxImageBytes != nil {
		cfg.MaxImageBytes = *jc.MaxImageBytes
	}
	setString(&cfg.ExportDir, jc.ExportDir)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
