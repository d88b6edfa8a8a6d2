// Copyright (c) 2026 BookWise. All rights reserved.

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
  - DI-Friendly: Passed to core components (DB, Redis, Mailer) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the BookWise API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis): deployment settings, ephemeral bundles, reset tokens
	RedisURL string `env:"REDIS_URL,required"`

	// Cryptographic keys for session and identity signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Object Storage (S3-compatible) for book media: covers, PDFs, audio, video
	S3Bucket      string `env:"S3_BUCKET"`
	S3Region      string `env:"S3_REGION"   envDefault:"auto"`
	S3Endpoint    string `env:"S3_ENDPOINT"`
	S3AccessKeyID string `env:"S3_ACCESS_KEY_ID"`
	S3SecretKey   string `env:"S3_SECRET_ACCESS_KEY"`

	// SMTP relay for the daily quote digest
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM" envDefault:"digest@bookwise.store"`

	// Promo code accepted by the cart (single flat-percentage code)
	PromoCode    string  `env:"CART_PROMO_CODE"    envDefault:"DISCOUNT20"`
	PromoPercent float64 `env:"CART_PROMO_PERCENT" envDefault:"20"`

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

// SMTPConfigured reports whether an outbound mail relay is available.
// When false, the digest scheduler logs and skips sends instead of failing.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != ""
}
