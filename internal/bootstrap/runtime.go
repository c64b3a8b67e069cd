// Package bootstrap wires configuration, storage, and seed data into a
// ready-to-serve runtime.
package bootstrap

import (
	"fmt"

	"skillswap/internal/cache"
	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedBuiltIns bool
}

// InitRuntime connects to DB and Redis and optionally runs built-in seeding.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedBuiltIns {
		if err := seed.Skills(db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed skill catalog: %w", err)
		}
	}

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := seed.EnsureAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return nil, nil, fmt.Errorf("failed to bootstrap admin account: %w", err)
		}
	}

	return db, r, nil
}
