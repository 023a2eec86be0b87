// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/olegiv/oblog-go/internal/store"
)

// MinSessionSecretLength is the minimum required length for the session
// secret.
const MinSessionSecretLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Store         string `env:"OBLOG_STORE" envDefault:"file"`
	DBPath        string `env:"OBLOG_DB_PATH" envDefault:"./data/oblog.db"`
	PostsDir      string `env:"OBLOG_POSTS_DIR" envDefault:"./data/posts"`
	UploadsDir    string `env:"OBLOG_UPLOADS_DIR" envDefault:"./public/uploads"`
	SessionSecret string `env:"OBLOG_SESSION_SECRET,required"`
	AdminPassword string `env:"OBLOG_ADMIN_PASSWORD,required"`
	SiteName      string `env:"OBLOG_SITE_NAME" envDefault:"oBlog"`
	ServerHost    string `env:"OBLOG_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"OBLOG_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"OBLOG_ENV" envDefault:"development"`
	LogLevel      string `env:"OBLOG_LOG_LEVEL" envDefault:"info"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// UseSQLite returns true when the table-backed post store is selected.
func (c Config) UseSQLite() bool {
	return c.Store == store.KindSQLite
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Store != store.KindFile && cfg.Store != store.KindSQLite {
		return nil, fmt.Errorf("OBLOG_STORE must be %q or %q, got %q",
			store.KindFile, store.KindSQLite, cfg.Store)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("OBLOG_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	if len(cfg.AdminPassword) < 8 {
		return nil, fmt.Errorf("OBLOG_ADMIN_PASSWORD must be at least 8 characters long")
	}

	return cfg, nil
}
