package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	JWTSecret   string `env:"JWT_SECRET,notEmpty"`

	// Rating given to a freshly signed up player, used for both the current
	// and the peak rating.
	InitialRating int `env:"INITIAL_RATING" envDefault:"1000"`

	DB    DBConfig    `envPrefix:"DB_"`
	Redis RedisConfig `envPrefix:"REDIS_"`
}

type DBConfig struct {
	Host     string `env:"HOST,notEmpty"`
	User     string `env:"USER,notEmpty"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME,notEmpty"`
	Port     string `env:"PORT" envDefault:"5432"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

type RedisConfig struct {
	Addr         string `env:"ADDR,notEmpty"`
	Username     string `env:"USERNAME"`
	Password     string `env:"PASSWORD"`
	DB           int    `env:"DB" envDefault:"0"`
	TLS          bool   `env:"TLS" envDefault:"false"`
	StatsChannel string `env:"STATS_CHANNEL" envDefault:"stats"`
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info("File .env not found, using system values")
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.InitialRating < 0 {
		return nil, fmt.Errorf("INITIAL_RATING must not be negative, got %d", cfg.InitialRating)
	}
	return &cfg, nil
}

// ConfigureLogger applies the log level and picks JSON output outside
// development.
func ConfigureLogger(cfg *Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Warn("Unknown LOG_LEVEL, falling back to info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if cfg.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
