package config

import "os"

type Config struct {
	Port        string
	DBPath      string
	TokenSecret string
	LogLevel    string
}

// Load reads configuration from the environment. Callers that want .env
// support should run godotenv.Load before this.
func Load() *Config {
	cfg := &Config{
		Port:        os.Getenv("PORT"),
		DBPath:      os.Getenv("NOTES_DB_PATH"),
		TokenSecret: os.Getenv("ACCESS_TOKEN_SECRET"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}

	if cfg.Port == "" {
		cfg.Port = "8082"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "notes.db"
	}

	return cfg
}
