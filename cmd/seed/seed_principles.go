package main

import (
	"log"
	"os"

	"communal-canon-be/internal/model"
	"communal-canon-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Principle Set...")

	// Default weighted charter principles. Weights are relative; the scorer
	// normalizes by their sum.
	principles := []model.Principle{
		{Code: "coherence", Name: "Doctrinal Coherence", Description: "The text must not contradict established entries or the charter's stated positions.", Weight: 0.25, Active: true},
		{Code: "clarity", Name: "Clarity of Expression", Description: "The text must be understandable to a general reader without specialist vocabulary.", Weight: 0.20, Active: true},
		{Code: "universality", Name: "Universality", Description: "The text must speak to the community as a whole rather than a faction or individual.", Weight: 0.20, Active: true},
		{Code: "non_harm", Name: "Non-Harm", Description: "The text must not advocate harm, exclusion, or the targeting of any person or group.", Weight: 0.20, Active: true},
		{Code: "humility", Name: "Epistemic Humility", Description: "The text must not claim unfounded certainty or demand unquestioning acceptance.", Weight: 0.15, Active: true},
	}

	for _, p := range principles {
		var existing model.Principle
		if err := db.Where("code = ?", p.Code).First(&existing).Error; err == nil {
			log.Printf("Principle '%s' already exists, skipping...", p.Code)
			continue
		}

		if err := db.Create(&p).Error; err != nil {
			log.Printf("Error creating principle '%s': %v", p.Code, err)
		} else {
			log.Printf("Created principle: %s (%s)", p.Name, p.Code)
		}
	}

	log.Println("Principle seeding completed!")
}
