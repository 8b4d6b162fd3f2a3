package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"liyu1981.xyz/prioribin-service/pkg/common"
)

type DBType string

const (
	DBTypeFile     DBType = "file"
	DBTypeMemory   DBType = "memory"
	DBTypePostgres DBType = "postgres"
)

type Config struct {
	GoEnv        string        `mapstructure:"go_env"`
	DBType       DBType        `mapstructure:"db_type"`
	DBPath       string        `mapstructure:"db_path"`
	DBDsn        string        `mapstructure:"db_dsn"`
	HttpHostPort string        `mapstructure:"http_host_port"`
	GrpcHostPort string        `mapstructure:"grpc_host_port"`
	DefaultRate  float64       `mapstructure:"default_rate"`
	DefaultBurst int           `mapstructure:"default_burst"`
	ActiveWindow time.Duration `mapstructure:"active_window"`
	CorsOrigins  string        `mapstructure:"cors_origins"`
}

var bindings = map[string]string{
	"go_env":         common.EnvKeyGoEnv,
	"db_type":        common.EnvKeyDBType,
	"db_path":        common.EnvKeyDBPath,
	"db_dsn":         common.EnvKeyDBDsn,
	"http_host_port": common.EnvKeyHttpHostPort,
	"grpc_host_port": common.EnvKeyGrpcHostPort,
	"default_rate":   common.EnvKeyDefaultRate,
	"default_burst":  common.EnvKeyDefaultBurst,
	"active_window":  common.EnvKeyActiveWindow,
	"cors_origins":   common.EnvKeyCorsOrigins,
}

// Load reads envFiles (missing files are fine unless GO_ENV=development) and then the
// process environment, which always wins.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if os.Getenv(common.EnvKeyGoEnv) == "development" {
			return nil, fmt.Errorf("load .env file, copy .env.example to .env first in development: %w", err)
		}
	}

	v := viper.New()
	v.SetDefault("db_type", string(DBTypeFile))
	v.SetDefault("db_path", "prioribin.db")
	v.SetDefault("http_host_port", ":5000")
	v.SetDefault("default_rate", 5.0)
	v.SetDefault("default_burst", 10)
	v.SetDefault("active_window", 5*time.Minute)
	v.SetDefault("cors_origins", "*")

	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBType {
	case DBTypeFile, DBTypeMemory:
	case DBTypePostgres:
		if c.DBDsn == "" {
			return fmt.Errorf("%s is required when %s=postgres", common.EnvKeyDBDsn, common.EnvKeyDBType)
		}
	default:
		return fmt.Errorf("unknown %s: %q", common.EnvKeyDBType, c.DBType)
	}

	if c.DefaultRate < 0 {
		return fmt.Errorf("invalid %s, should be a non-negative float64 value", common.EnvKeyDefaultRate)
	}
	if c.DefaultBurst < 0 {
		return fmt.Errorf("invalid %s, should be a non-negative int value", common.EnvKeyDefaultBurst)
	}
	if c.ActiveWindow <= 0 {
		return errors.New("active window must be a positive duration")
	}
	return nil
}

func (c *Config) AllowedOrigins() []string {
	return common.SplitNonEmpty(c.CorsOrigins, ",")
}
