package main

import (
	"context"
	"log"
	"os"
	"time"

	"datasentry/internal/config"
	"datasentry/internal/container"
	"datasentry/internal/migration"

	"github.com/joho/godotenv"
)

// Usage: migrate [database_url]. Without an argument DATABASE_URL is used.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if len(os.Args) > 1 {
		databaseURL = os.Args[1]
	}
	if databaseURL == "" {
		log.Fatal("Usage: migrate <database_url> (or set DATABASE_URL)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := container.OpenDatabase(ctx, config.DatabaseConfig{URL: databaseURL, MaxOpenConns: 2})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	runner := migration.NewRunner()
	if err := runner.Run(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Schema is at version %s", runner.Version())
}
