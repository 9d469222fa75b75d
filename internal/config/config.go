package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"kitchen-rush/internal/database"
)

type Config struct {
	// Address the HTTP and WebSocket server listens on
	HTTPAddr string `envconfig:"KITCHEN_HTTP_ADDR" default:":5001"`

	Debug bool `envconfig:"KITCHEN_DEBUG" default:"false"`

	// Browser origins allowed by CORS and the WebSocket upgrader; "*" allows any
	AllowedOrigins []string `envconfig:"KITCHEN_ALLOWED_ORIGINS" default:"*"`

	// Optional YAML file replacing the built-in recipes, abilities and levels
	CatalogPath string `envconfig:"KITCHEN_CATALOG_PATH"`

	// Number of items in the result cache
	CacheSize int `envconfig:"KITCHEN_CACHE_SIZE" default:"256"`

	TickInterval time.Duration `envconfig:"KITCHEN_TICK_INTERVAL" default:"1s"`
	LevelPause   time.Duration `envconfig:"KITCHEN_LEVEL_PAUSE" default:"5s"`
	AbilityDelay time.Duration `envconfig:"KITCHEN_ABILITY_DELAY" default:"6s"`
	MaxPlayers   int           `envconfig:"KITCHEN_MAX_PLAYERS" default:"8"`

	// Inbound messages per second per connection, and the burst above it
	MsgRate  float64 `envconfig:"KITCHEN_MSG_RATE" default:"20"`
	MsgBurst int     `envconfig:"KITCHEN_MSG_BURST" default:"40"`

	// Outbound messages queued per connection before it is dropped
	SendBuffer int `envconfig:"KITCHEN_SEND_BUFFER" default:"64"`

	ShutdownTimeout time.Duration `envconfig:"KITCHEN_SHUTDOWN_TIMEOUT" default:"10s"`

	DB database.Config
}

// Default returns the configuration with every default applied.
func Default() Config {
	return Config{
		HTTPAddr:        ":5001",
		AllowedOrigins:  []string{"*"},
		CacheSize:       256,
		TickInterval:    time.Second,
		LevelPause:      5 * time.Second,
		AbilityDelay:    6 * time.Second,
		MaxPlayers:      8,
		MsgRate:         20,
		MsgBurst:        40,
		SendBuffer:      64,
		ShutdownTimeout: 10 * time.Second,
		DB: database.Config{
			FilePath: "kitchen.db",
			Timeout:  time.Second,
		},
	}
}

// Load reads the environment on top of the defaults.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("processing the config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.MaxPlayers < 1:
		return fmt.Errorf("KITCHEN_MAX_PLAYERS must be positive, got %d", c.MaxPlayers)
	case c.TickInterval <= 0:
		return fmt.Errorf("KITCHEN_TICK_INTERVAL must be positive, got %s", c.TickInterval)
	case c.CacheSize < 1:
		return fmt.Errorf("KITCHEN_CACHE_SIZE must be positive, got %d", c.CacheSize)
	case c.SendBuffer < 1:
		return fmt.Errorf("KITCHEN_SEND_BUFFER must be positive, got %d", c.SendBuffer)
	case c.MsgRate <= 0:
		return fmt.Errorf("KITCHEN_MSG_RATE must be positive, got %v", c.MsgRate)
	case c.MsgBurst < 1:
		return fmt.Errorf("KITCHEN_MSG_BURST must be positive, got %d", c.MsgBurst)
	case c.LevelPause < 0:
		return fmt.Errorf("KITCHEN_LEVEL_PAUSE must not be negative, got %s", c.LevelPause)
	case c.AbilityDelay < 0:
		return fmt.Errorf("KITCHEN_ABILITY_DELAY must not be negative, got %s", c.AbilityDelay)
	}
	return nil
}
