package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env"
)

// Config is loaded once at startup and never mutated. AuthURL and OrderFeedURL
// point at the commerce backend; OrderFeedURL is a template carrying
// {site_uid}, {start_date} and {end_date} placeholders.
type Config struct {
	RunAddress   string `env:"RUN_ADDRESS" envDefault:"localhost:8080"`
	AuthURL      string `env:"AUTH_URL"`
	OrderFeedURL string `env:"ORDER_FEED_URL"`
}

func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.AuthURL == "" {
		return nil, errors.New("AUTH_URL is required")
	}
	if cfg.OrderFeedURL == "" {
		return nil, errors.New("ORDER_FEED_URL is required")
	}

	return cfg, nil
}
