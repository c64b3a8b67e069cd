// Command seed populates the database with demo data for development.
package main

import (
	"flag"
	"log"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of demo users to create")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users\n", *numUsers)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Connect skips AutoMigrate in production, so make sure the schema exists
	// before writing demo rows.
	if err := database.Migrate(db); err != nil {
		log.Fatalf("❌ Schema migration failed: %v", err)
	}

	if err := seed.NewFactory(db).Demo(*numUsers); err != nil {
		log.Fatalf("❌ Demo seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with demo data.")
	log.Println("📧 All demo users have the password: Password123!")
}
