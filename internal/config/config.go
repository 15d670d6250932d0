package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is built once at process start and injected into every component;
// nothing reads the environment after startup.
type Config struct {
	Store  StoreConfig
	JWT    JWTConfig
	App    AppConfig
	Logger LoggerConfig
}

// StoreConfig holds configuration for the credential store
type StoreConfig struct {
	Host            string `mapstructure:"STORE_HOST"`
	Port            string `mapstructure:"STORE_PORT"`
	User            string `mapstructure:"STORE_USER"`
	Password        string `mapstructure:"STORE_PASSWORD"`
	DatabaseName    string `mapstructure:"STORE_DATABASE"`
	UsersTable      string `mapstructure:"STORE_USERS_TABLE"`
	SSLMode         string `mapstructure:"STORE_SSLMODE"`
	MaxOpenConns    int    `mapstructure:"STORE_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `mapstructure:"STORE_MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `mapstructure:"STORE_CONN_MAX_LIFETIME"`
}

// JWTConfig holds the token signing configuration
type JWTConfig struct {
	Secret   string `mapstructure:"JWT_SECRET"`
	Issuer   string `mapstructure:"JWT_ISSUER"`
	Audience string `mapstructure:"JWT_AUDIENCE"`
}

// AppConfig holds configuration for the application server
type AppConfig struct {
	HTTPPort               string `mapstructure:"HTTP_PORT"`
	ShutdownTimeoutSeconds int    `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS"`
}

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level            string  `mapstructure:"LOG_LEVEL"`
	Format           string  `mapstructure:"LOG_FORMAT"`
	OutputPath       string  `mapstructure:"LOG_OUTPUT_PATH"`
	SlowQuerySeconds float64 `mapstructure:"LOG_SLOW_QUERY_SECONDS"`
	EnableSampling   bool    `mapstructure:"LOG_ENABLE_SAMPLING"`
	ServiceName      string  `mapstructure:"SERVICE_NAME"`
	ServiceVersion   string  `mapstructure:"SERVICE_VERSION"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (*Config, error) {
	setDefaults()

	viper.AddConfigPath(path)
	viper.SetConfigName("app") // Look for app.env
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if we have env vars
	}

	var config Config

	config.Store.Host = viper.GetString("STORE_HOST")
	config.Store.Port = viper.GetString("STORE_PORT")
	config.Store.User = viper.GetString("STORE_USER")
	config.Store.Password = viper.GetString("STORE_PASSWORD")
	config.Store.DatabaseName = viper.GetString("STORE_DATABASE")
	config.Store.UsersTable = viper.GetString("STORE_USERS_TABLE")
	config.Store.SSLMode = viper.GetString("STORE_SSLMODE")
	config.Store.MaxOpenConns = viper.GetInt("STORE_MAX_OPEN_CONNS")
	config.Store.MaxIdleConns = viper.GetInt("STORE_MAX_IDLE_CONNS")
	config.Store.ConnMaxLifetime = viper.GetInt("STORE_CONN_MAX_LIFETIME")

	config.JWT.Secret = viper.GetString("JWT_SECRET")
	config.JWT.Issuer = viper.GetString("JWT_ISSUER")
	config.JWT.Audience = viper.GetString("JWT_AUDIENCE")

	config.App.HTTPPort = viper.GetString("HTTP_PORT")
	config.App.ShutdownTimeoutSeconds = viper.GetInt("SHUTDOWN_TIMEOUT_SECONDS")

	config.Logger.Level = viper.GetString("LOG_LEVEL")
	config.Logger.Format = viper.GetString("LOG_FORMAT")
	config.Logger.OutputPath = viper.GetString("LOG_OUTPUT_PATH")
	config.Logger.SlowQuerySeconds = viper.GetFloat64("LOG_SLOW_QUERY_SECONDS")
	config.Logger.EnableSampling = viper.GetBool("LOG_ENABLE_SAMPLING")
	config.Logger.ServiceName = viper.GetString("SERVICE_NAME")
	config.Logger.ServiceVersion = viper.GetString("SERVICE_VERSION")

	return &config, nil
}

// Validate checks that required configuration is present
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if c.JWT.Issuer == "" {
		return errors.New("JWT_ISSUER must be set")
	}
	if c.JWT.Audience == "" {
		return errors.New("JWT_AUDIENCE must be set")
	}
	if c.Store.DatabaseName == "" {
		return errors.New("STORE_DATABASE must be set")
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("STORE_HOST", "localhost")
	viper.SetDefault("STORE_PORT", "5432")
	viper.SetDefault("STORE_USER", "postgres")
	viper.SetDefault("STORE_PASSWORD", "postgres")
	viper.SetDefault("STORE_DATABASE", "user_account_service")
	viper.SetDefault("STORE_USERS_TABLE", "users")
	viper.SetDefault("STORE_SSLMODE", "disable")
	viper.SetDefault("STORE_MAX_OPEN_CONNS", 25)
	viper.SetDefault("STORE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("STORE_CONN_MAX_LIFETIME", 300)

	viper.SetDefault("JWT_ISSUER", "user-account-service")
	viper.SetDefault("JWT_AUDIENCE", "user-account-clients")

	viper.SetDefault("HTTP_PORT", "8080")
	viper.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)

	env := viper.GetString("APP_ENV")
	if env == "production" {
		viper.SetDefault("LOG_LEVEL", "info")
		viper.SetDefault("LOG_FORMAT", "json")
		viper.SetDefault("LOG_ENABLE_SAMPLING", true)
	} else {
		viper.SetDefault("LOG_LEVEL", "debug")
		viper.SetDefault("LOG_FORMAT", "console")
		viper.SetDefault("LOG_ENABLE_SAMPLING", false)
	}
	viper.SetDefault("LOG_OUTPUT_PATH", "stdout")
	viper.SetDefault("LOG_SLOW_QUERY_SECONDS", 0.2)
	viper.SetDefault("SERVICE_NAME", "user-account-service")
	viper.SetDefault("SERVICE_VERSION", "1.0.0")
}

// DSN returns the PostgreSQL Data Source Name
func (c *StoreConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.DatabaseName, c.Port, c.SSLMode)
}
