// Package config loads runtime settings from .env files, an optional YAML
// file and the environment, in that order of increasing precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Application environments.
const (
	Development = "development"
	Test        = "test"
	Production  = "production"
)

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type Config struct {
	AppEnv    string    `mapstructure:"app_env"`
	AppName   string    `mapstructure:"app_name"`
	Port      int       `mapstructure:"port"`
	LogLevel  string    `mapstructure:"log_level"`
	SeedDemo  bool      `mapstructure:"seed_demo"`
	Database  Database  `mapstructure:"db"`
	Mongo     Mongo     `mapstructure:"mongo"`
	Auth      Auth      `mapstructure:"auth"`
	CORS      CORS      `mapstructure:"cors"`
	Scheduler Scheduler `mapstructure:"scheduler"`
}

type Database struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"database"`
	Schema   string `mapstructure:"schema"`
}

// DSN renders the postgres connection string.
func (d Database) DSN() string {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		d.Host, d.Username, d.Password, d.Name, d.Port)
	if d.Schema != "" {
		dsn += " search_path=" + d.Schema
	}
	return dsn
}

type Mongo struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type Auth struct {
	AccessSecret    string        `mapstructure:"access_secret"`
	RefreshSecret   string        `mapstructure:"refresh_secret"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
}

type CORS struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Scheduler struct {
	SessionPurge string `mapstructure:"session_purge"`
}

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string]string{
	"app_env":                 "APP_ENV",
	"app_name":                "APP_NAME",
	"port":                    "PORT",
	"log_level":               "LOG_LEVEL",
	"seed_demo":               "SEED_DEMO",
	"db.driver":               "DB_DRIVER",
	"db.host":                 "BLUEPRINT_DB_HOST",
	"db.port":                 "BLUEPRINT_DB_PORT",
	"db.username":             "BLUEPRINT_DB_USERNAME",
	"db.password":             "BLUEPRINT_DB_PASSWORD",
	"db.database":             "BLUEPRINT_DB_DATABASE",
	"db.schema":               "BLUEPRINT_DB_SCHEMA",
	"mongo.uri":               "MONGO_URI",
	"mongo.database":          "MONGO_DATABASE",
	"auth.access_secret":      "JWT_ACCESS_SECRET",
	"auth.refresh_secret":     "JWT_REFRESH_SECRET",
	"auth.access_token_ttl":   "ACCESS_TOKEN_TTL",
	"auth.refresh_token_ttl":  "REFRESH_TOKEN_TTL",
	"cors.allowed_origins":    "CORS_ALLOWED_ORIGINS",
	"scheduler.session_purge": "SESSION_PURGE_SCHEDULE",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", Development)
	v.SetDefault("app_name", "todo-dashboard")
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("seed_demo", false)
	v.SetDefault("db.driver", DriverPostgres)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.database", "")
	v.SetDefault("db.schema", "")
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "todo_dashboard")
	v.SetDefault("auth.access_secret", "")
	v.SetDefault("auth.refresh_secret", "")
	v.SetDefault("auth.access_token_ttl", 15*time.Minute)
	v.SetDefault("auth.refresh_token_ttl", 7*24*time.Hour)
	v.SetDefault("cors.allowed_origins", []string{"https://*", "http://*"})
	v.SetDefault("scheduler.session_purge", "@hourly")
}

// Load reads .env and .env.local, then CONFIG_FILE when set, then the
// environment.
func Load() (*Config, error) {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}

	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, errors.Wrapf(err, "bind %s", env)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("config_file", "CONFIG_FILE"); err != nil {
		return nil, errors.Wrap(err, "bind CONFIG_FILE")
	}
	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", file)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	cfg.applyDevelopmentSecrets()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDevelopmentSecrets fills missing JWT secrets in development and test
// so a fresh checkout can start without a .env file.
func (c *Config) applyDevelopmentSecrets() {
	if c.AppEnv != Development && c.AppEnv != Test {
		return
	}
	if c.Auth.AccessSecret == "" {
		c.Auth.AccessSecret = "dev-access-secret"
	}
	if c.Auth.RefreshSecret == "" {
		c.Auth.RefreshSecret = "dev-refresh-secret"
	}
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverMongo:
	default:
		return errors.Errorf("unsupported DB_DRIVER %q (want %q or %q)", c.Database.Driver, DriverPostgres, DriverMongo)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return errors.Errorf("invalid PORT %d", c.Port)
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return errors.New("ACCESS_TOKEN_TTL must be positive")
	}
	if c.Auth.RefreshTokenTTL <= 0 {
		return errors.New("REFRESH_TOKEN_TTL must be positive")
	}
	if c.Auth.AccessSecret == "" || c.Auth.RefreshSecret == "" {
		return errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required")
	}
	if c.Auth.AccessSecret == c.Auth.RefreshSecret {
		return errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == Production
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
