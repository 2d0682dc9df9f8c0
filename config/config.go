package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full application configuration, loadable from config.yaml
// and overridable through the environment (e.g. MONGO_URI, PAYPAL_CLIENT_ID).
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Log    LogConfig    `mapstructure:"log"`
	PayPal PayPalConfig `mapstructure:"paypal"`
	Card   CardConfig   `mapstructure:"card"`
	SMTP   SMTPConfig   `mapstructure:"smtp"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type AuthConfig struct {
	SignKey  string        `mapstructure:"sign_key"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

type PayPalConfig struct {
	ClientId     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	Mode         string `mapstructure:"mode"` // sandbox, live
	ReturnBase   string `mapstructure:"return_base"`
}

type CardConfig struct {
	ChargeTimeout time.Duration `mapstructure:"charge_timeout"`
}

type SMTPConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	From    string `mapstructure:"from"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("server.port", ":8080")
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "conference-service")
	v.SetDefault("auth.token_ttl", 8*time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("paypal.mode", "sandbox")
	v.SetDefault("paypal.return_base", "http://localhost:8080")
	v.SetDefault("card.charge_timeout", 15*time.Second)
	v.SetDefault("smtp.enabled", false)
	v.SetDefault("smtp.port", 25)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// config file is optional, env and defaults carry a bare deployment
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Auth.SignKey == "" {
		// legacy deployments provide the signing key as SIGN
		if sign, err := GetSecret("SIGN"); err == nil {
			cfg.Auth.SignKey = sign
		}
	}

	return cfg, nil
}

func GetSecret(key string) (string, error) {
	val, exist := os.LookupEnv(key)
	if exist {
		return val, nil
	}
	return "", fmt.Errorf("no env variable with key %v", key)
}
