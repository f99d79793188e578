package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port           int
	SecretKey      string
	MongoURI       string
	MongoDatabase  string
	GinMode        string
	TLSCertFile    string
	TLSKeyFile     string
	TokenExpiry    time.Duration
	WSRequireToken bool
	LogLevel       string
	LogDev         bool
}

type Env interface {
	Getenv(key string) string
}

type osEnv struct{}

func (osEnv) Getenv(key string) string { return os.Getenv(key) }

func LoadConfig() (Config, error) {
	return LoadConfigFromEnv(osEnv{})
}

func LoadConfigFromEnv(env Env) (Config, error) {
	cfg := Config{
		Port:          4000,
		MongoDatabase: "WHATProject",
		GinMode:       "release",
		TokenExpiry:   time.Hour,
	}

	if raw := env.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid PORT")
		}
		cfg.Port = port
	}

	cfg.SecretKey = env.Getenv("SECRET_KEY")
	if cfg.SecretKey == "" {
		return Config{}, fmt.Errorf("SECRET_KEY is required")
	}

	cfg.MongoURI = env.Getenv("MONGODB_URI")
	if raw := env.Getenv("MONGODB_DATABASE"); raw != "" {
		cfg.MongoDatabase = raw
	}

	if raw := env.Getenv("GIN_MODE"); raw != "" {
		cfg.GinMode = raw
	}

	cfg.TLSCertFile = env.Getenv("TLS_CERT_FILE")
	cfg.TLSKeyFile = env.Getenv("TLS_KEY_FILE")

	if raw := env.Getenv("TOKEN_EXPIRY_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("invalid TOKEN_EXPIRY_SECONDS")
		}
		cfg.TokenExpiry = time.Duration(seconds) * time.Second
	}

	switch env.Getenv("WS_REQUIRE_TOKEN") {
	case "1", "true", "yes":
		cfg.WSRequireToken = true
	}

	cfg.LogLevel = env.Getenv("LOG_LEVEL")
	cfg.LogDev = env.Getenv("LOG_DEV") == "1"

	return cfg, nil
}
