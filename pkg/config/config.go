// Package config loads service configuration from an optional YAML file
// and the process environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Abraxas-365/applymint/pkg/logx"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Storage   StorageConfig   `yaml:"storage"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	ShareCard ShareCardConfig `yaml:"sharecard"`
	Cache     CacheConfig     `yaml:"cache"`
}

type ServerConfig struct {
	Port          string `yaml:"port"`
	PublicBaseURL string `yaml:"public_base_url"`
	AllowOrigins  string `yaml:"allow_origins"`
}

type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	QueryTimeout    time.Duration `yaml:"query_timeout"`
}

// DSN returns a lib/pq connection string. The session runs in UTC so
// timestamps interpolated by dbr compare correctly against timestamptz.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s timezone=UTC",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type StorageConfig struct {
	Region string `yaml:"region"`
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

type AuthConfig struct {
	JWTSecret       string `yaml:"jwt_secret"`
	Issuer          string `yaml:"issuer"`
	AdminAPIKeyHash string `yaml:"admin_api_key_hash"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type SchedulerConfig struct {
	ExpirySpec string `yaml:"expiry_spec"`
}

type ShareCardConfig struct {
	Workers int    `yaml:"workers"`
	Queue   string `yaml:"queue"`
}

type CacheConfig struct {
	SimilarTTL time.Duration `yaml:"similar_ttl"`
	PopularTTL time.Duration `yaml:"popular_ttl"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:          "8080",
			PublicBaseURL: "http://localhost:3000",
			AllowOrigins:  "*",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            "5432",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
			QueryTimeout:    5 * time.Second,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Storage: StorageConfig{
			Region: "us-east-1",
			Prefix: "uploads",
		},
		Auth: AuthConfig{
			Issuer: "applymint",
		},
		Log: LogConfig{
			Level: "info",
		},
		Scheduler: SchedulerConfig{
			ExpirySpec: "@every 1h",
		},
		ShareCard: ShareCardConfig{
			Workers: 2,
			Queue:   "sharecard:render",
		},
		Cache: CacheConfig{
			SimilarTTL: 5 * time.Minute,
			PopularTTL: 15 * time.Minute,
		},
	}
}

// Load reads .env (if any), then the YAML file at path (if non-empty),
// then environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logx.Debug("no .env file found, using process environment")
	}

	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		content := expandEnvVars(string(b))
		if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every missing or malformed required setting at once
func (c *Config) Validate() error {
	var errs []error
	if c.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if c.Database.User == "" {
		errs = append(errs, errors.New("database.user is required"))
	}
	if c.Database.Name == "" {
		errs = append(errs, errors.New("database.name is required"))
	}
	if _, ok := logx.ParseLevel(c.Log.Level); !ok {
		errs = append(errs, fmt.Errorf("log.level %q is invalid", c.Log.Level))
	}
	if c.ShareCard.Workers < 0 {
		errs = append(errs, errors.New("sharecard.workers must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} with its value; unset variables expand to ""
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(m string) string {
		name := envVarPattern.FindStringSubmatch(m)[1]
		return os.Getenv(name)
	})
}

func applyEnv(c *Config) {
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.PublicBaseURL, "PUBLIC_BASE_URL")
	setString(&c.Server.AllowOrigins, "CORS_ALLOW_ORIGINS")

	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASS")
	setString(&c.Database.Name, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")

	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASS")
	setInt(&c.Redis.DB, "REDIS_DB")

	setString(&c.Storage.Region, "AWS_REGION")
	setString(&c.Storage.Bucket, "AWS_BUCKET")

	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Auth.AdminAPIKeyHash, "ADMIN_API_KEY_HASH")

	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Scheduler.ExpirySpec, "EXPIRY_SCHEDULE")
	setInt(&c.ShareCard.Workers, "SHARECARD_WORKERS")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

func setInt(dst *int, key string) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		logx.Warnf("ignoring %s=%q: not an integer", key, v)
		return
	}
	*dst = n
}
