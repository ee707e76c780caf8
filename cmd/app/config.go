package main

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string        `mapstructure:"PORT"`
	Environment    string        `mapstructure:"ENVIRONMENT"`
	Version        string        `mapstructure:"VERSION"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	Secret         string        `mapstructure:"SECRET"`
	TokenTTL       time.Duration `mapstructure:"TOKEN_TTL"`
	TrustedOrigins []string      `mapstructure:"TRUSTED_ORIGINS"`
	MigrationsPath string        `mapstructure:"MIGRATIONS_PATH"`

	RateLimitEnabled bool    `mapstructure:"RATE_LIMIT_ENABLED"`
	RateLimitRPS     float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst   int     `mapstructure:"RATE_LIMIT_BURST"`

	CacheExpiration time.Duration `mapstructure:"CACHE_EXPIRATION"`
	CacheCleanup    time.Duration `mapstructure:"CACHE_CLEANUP"`

	DBHost         string        `mapstructure:"POSTGRES_HOST"`
	DBPort         string        `mapstructure:"POSTGRES_PORT"`
	DBUser         string        `mapstructure:"POSTGRES_USER"`
	DBPassword     string        `mapstructure:"POSTGRES_PASSWORD"`
	DBName         string        `mapstructure:"POSTGRES_DB"`
	DBMaxOpenConns int           `mapstructure:"POSTGRES_MAX_OPEN_CONNS"`
	DBMaxIdleConns int           `mapstructure:"POSTGRES_MAX_IDLE_CONNS"`
	DBMaxIdleTime  time.Duration `mapstructure:"POSTGRES_MAX_IDLE_TIME"`

	MQHost     string `mapstructure:"RABBITMQ_HOST"`
	MQPort     string `mapstructure:"RABBITMQ_PORT"`
	MQUser     string `mapstructure:"RABBITMQ_USER"`
	MQPassword string `mapstructure:"RABBITMQ_PASSWORD"`

	MailHost      string `mapstructure:"MAIL_HOST"`
	MailPort      int    `mapstructure:"MAIL_PORT"`
	MailUser      string `mapstructure:"MAIL_USER"`
	MailPassword  string `mapstructure:"MAIL_PASSWORD"`
	MailSender    string `mapstructure:"MAIL_SENDER"`
	MailRecipient string `mapstructure:"MAIL_RECIPIENT"`

	TLSCertFile string `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile  string `mapstructure:"TLS_KEY_FILE"`
}

// every key needs a default so that AutomaticEnv can override it during Unmarshal
var configDefaults = map[string]any{
	"PORT":                    ":3003",
	"ENVIRONMENT":             "development",
	"VERSION":                 "1.0.0",
	"LOG_LEVEL":               "info",
	"SECRET":                  "",
	"TOKEN_TTL":               time.Hour,
	"TRUSTED_ORIGINS":         []string{},
	"MIGRATIONS_PATH":         "file://migrations",
	"RATE_LIMIT_ENABLED":      true,
	"RATE_LIMIT_RPS":          2.0,
	"RATE_LIMIT_BURST":        4,
	"CACHE_EXPIRATION":        5 * time.Minute,
	"CACHE_CLEANUP":           10 * time.Minute,
	"POSTGRES_HOST":           "localhost",
	"POSTGRES_PORT":           "5432",
	"POSTGRES_USER":           "postgres",
	"POSTGRES_PASSWORD":       "",
	"POSTGRES_DB":             "bloglist",
	"POSTGRES_MAX_OPEN_CONNS": 25,
	"POSTGRES_MAX_IDLE_CONNS": 25,
	"POSTGRES_MAX_IDLE_TIME":  15 * time.Minute,
	"RABBITMQ_HOST":           "localhost",
	"RABBITMQ_PORT":           "5672",
	"RABBITMQ_USER":           "guest",
	"RABBITMQ_PASSWORD":       "guest",
	"MAIL_HOST":               "",
	"MAIL_PORT":               587,
	"MAIL_USER":               "",
	"MAIL_PASSWORD":           "",
	"MAIL_SENDER":             "",
	"MAIL_RECIPIENT":          "",
	"TLS_CERT_FILE":           "",
	"TLS_KEY_FILE":            "",
}

// loadConfig reads the dotenv file at path. Environment variables take precedence and a
// missing file is not an error.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.Secret == "" {
		return nil, errors.New("SECRET must be set")
	}

	return &config, nil
}
