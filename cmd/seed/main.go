package main

import (
	"fmt"
	"log"

	"github.com/fitshop/fitshop-backend/config"
	"github.com/fitshop/fitshop-backend/internal/db"
)

// Seeds the catalog with the demo categories and products. Safe to run
// repeatedly: populated tables are left untouched.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if err := db.Seed(); err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	fmt.Println("Seed completed.")
}
