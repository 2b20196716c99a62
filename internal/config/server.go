package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server is the API server configuration, read from the environment.
type Server struct {
	Port      string `env:"API_PORT" envDefault:"8080"`
	Env       string `env:"API_ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// ProTokenSecret signs capability tokens. Empty means every caller gets
	// the full feature set.
	ProTokenSecret string `env:"PRO_TOKEN_SECRET"`

	MaxRemaining  int `env:"MAX_REMAINING" envDefault:"500"`
	DefaultTrials int `env:"MC_DEFAULT_TRIALS" envDefault:"10000"`
	MaxTrials     int `env:"MC_MAX_TRIALS" envDefault:"200000"`
	Workers       int `env:"MC_WORKERS" envDefault:"0"`

	// Seeded simulation results are reused for CacheTTL; 0 disables the cache.
	CacheTTL  time.Duration `env:"MC_CACHE_TTL" envDefault:"10m"`
	CacheSize int           `env:"MC_CACHE_SIZE" envDefault:"256"`

	StaticDir string `env:"STATIC_DIR" envDefault:"./web/dist"`
}

func (s Server) Production() bool { return s.Env == "production" }

// LoadServer parses the server configuration from environment variables.
func LoadServer() (*Server, error) {
	var s Server
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if s.MaxRemaining <= 0 {
		return nil, fmt.Errorf("MAX_REMAINING must be > 0, got %d", s.MaxRemaining)
	}
	if s.DefaultTrials <= 0 || s.MaxTrials < s.DefaultTrials {
		return nil, fmt.Errorf("need 0 < MC_DEFAULT_TRIALS <= MC_MAX_TRIALS, got %d and %d", s.DefaultTrials, s.MaxTrials)
	}
	return &s, nil
}
