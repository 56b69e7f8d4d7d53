package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string
	PostgresURL    string
	JWTKey         string
	AllowedOrigins []string
	TokenAge       time.Duration
	Debug          bool
}

// Load reads configuration from the environment. A .env file is honored when
// present but never required.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:     ":5000",
		TokenAge: time.Hour * 24 * 7,
		Debug:    os.Getenv("DEBUG") == "true",
	}

	if addr, ok := os.LookupEnv("ADDR"); ok {
		cfg.Addr = addr
	}

	origins, ok := os.LookupEnv("ALLOWED_ORIGINS")
	if !ok {
		return Config{}, fmt.Errorf("missing ALLOWED_ORIGINS")
	}
	cfg.AllowedOrigins = strings.Split(origins, ",")

	cfg.PostgresURL, ok = os.LookupEnv("POSTGRES_URL")
	if !ok {
		return Config{}, fmt.Errorf("missing POSTGRES_URL")
	}

	cfg.JWTKey, ok = os.LookupEnv("JWT_KEY")
	if !ok {
		return Config{}, fmt.Errorf("missing JWT_KEY")
	}

	return cfg, nil
}
