package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/spf13/viper"
)

var (
	ErrMissingAdvisorKey = errors.New("advisor.api_key (ADVISOR_API_KEY) must be set")
	ErrMissingDatabase   = errors.New("postgres settings or DATABASE_URL must be set")
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Advisor  *AdvisorConfig  `mapstructure:"advisor"`
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string        `mapstructure:"jwt_signing_key"`
	SessionTTL         time.Duration `mapstructure:"session_ttl"`
	CookieSecure       bool          `mapstructure:"cookie_secure"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	URL             string        `mapstructure:"url"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DB              string        `mapstructure:"db"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

type AdvisorConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DSN builds a libpq style connection string from the discrete settings.
func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.allowed_cors_domains", []string{"http://localhost:3000"})
	v.SetDefault("api.jwt_signing_key", "")
	v.SetDefault("api.session_ttl", 12*time.Hour)
	v.SetDefault("api.cookie_secure", false)

	v.SetDefault("gin.mode", "debug")

	v.SetDefault("postgres.url", "")
	v.SetDefault("postgres.host", "")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.db", "")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("postgres.max_open_conns", 20)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("postgres.conn_max_idle_time", 5*time.Minute)

	v.SetDefault("advisor.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("advisor.api_key", "")
	v.SetDefault("advisor.model", "llama3-8b-8192")
	v.SetDefault("advisor.timeout", 30*time.Second)
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The historical names of the two required settings.
	_ = v.BindEnv("postgres.url", "POSTGRES_URL", "DATABASE_URL")
	_ = v.BindEnv("advisor.api_key", "ADVISOR_API_KEY", "GROQ_API_KEY")

	return v
}

// Load reads the YAML file at path (optional) and lets environment variables
// override any key, e.g. API_PORT or POSTGRES_HOST.
func Load(path string) (*AppConfig, error) {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

// LoadPostgres reads only the database settings, for tools that do not
// serve HTTP.
func LoadPostgres(path string) (*PostgresConfig, error) {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if conf.Postgres == nil || (conf.Postgres.URL == "" && conf.Postgres.Host == "") {
		return nil, ErrMissingDatabase
	}

	return conf.Postgres, nil
}

// Watch reports changes to the config file. Values are not re-bound, a
// restart is needed to apply them.
func Watch(path string, onChange func(e fsnotify.Event)) {
	v := newViper(path)
	v.OnConfigChange(onChange)
	v.WatchConfig()
}

func (c *AppConfig) Validate() error {
	if c.Advisor == nil || strings.TrimSpace(c.Advisor.APIKey) == "" {
		return ErrMissingAdvisorKey
	}
	if c.Postgres == nil || (c.Postgres.URL == "" && c.Postgres.Host == "") {
		return ErrMissingDatabase
	}

	if err := validation.ValidateStruct(c.API,
		validation.Field(&c.API.Port, validation.Required, is.Port),
		validation.Field(&c.API.JWTSigningKey, validation.Required, validation.Length(16, 0)),
		validation.Field(&c.API.SessionTTL, validation.Required, validation.Min(time.Minute)),
	); err != nil {
		return fmt.Errorf("api -> %w", err)
	}

	if err := validation.ValidateStruct(c.Gin,
		validation.Field(&c.Gin.Mode, validation.In("debug", "release", "test")),
	); err != nil {
		return fmt.Errorf("gin -> %w", err)
	}

	if err := validation.ValidateStruct(c.Advisor,
		validation.Field(&c.Advisor.BaseURL, validation.Required, is.URL),
		validation.Field(&c.Advisor.Model, validation.Required),
		validation.Field(&c.Advisor.Timeout, validation.Required, validation.Min(time.Second)),
	); err != nil {
		return fmt.Errorf("advisor -> %w", err)
	}

	return nil
}
