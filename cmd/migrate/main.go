// Command migrate applies the application schema to the configured database.
package main

import (
	"fmt"
	"log"

	"skillswap/internal/config"
	"skillswap/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Println("schema migration applied")
	return nil
}
