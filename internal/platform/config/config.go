// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, S3) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Content source variants selectable at deployment time.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// # Configuration Schema

// Config holds all runtime configuration for the mumoweb API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// SiteBaseURL is the canonical public origin used for feed/sitemap links.
	SiteBaseURL string `env:"SITE_BASE_URL" envDefault:"https://www.mumocomics.com"`

	// ContentSource selects the comic collection backend: "file" or "postgres".
	ContentSource string `env:"CONTENT_SOURCE" envDefault:"postgres"`

	// ContentDir is the directory of .mdx comic files (file variant only).
	ContentDir string `env:"CONTENT_DIR" envDefault:"./content/comics"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Cryptographic keys for admin session signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Object Storage (Cloudflare R2 / S3-compatible) for cover uploads
	S3Bucket    string `env:"S3_BUCKET"    envDefault:"mumo-media"`
	S3Region    string `env:"S3_REGION"    envDefault:"auto"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3UseSSL    bool   `env:"S3_USE_SSL"   envDefault:"true"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// The content source is chosen once, at composition time. Reject unknown
	// values here instead of branching on them at call sites later.
	if cfg.ContentSource != SourceFile && cfg.ContentSource != SourcePostgres {
		return nil, fmt.Errorf("config: unknown CONTENT_SOURCE %q (want %q or %q)",
			cfg.ContentSource, SourceFile, SourcePostgres)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
