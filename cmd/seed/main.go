package main

import (
	"log"
	"os"
	"time"

	"github.com/neuronest/neuronest/internal/config"
	"github.com/neuronest/neuronest/internal/database"
	"github.com/neuronest/neuronest/internal/models"
	"github.com/neuronest/neuronest/internal/utils"

	"github.com/google/uuid"
)

// Seeds a demo user with a few sample thoughts for local development.
// Idempotent: re-running against an existing user does nothing.
func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	demoUsername := os.Getenv("DEMO_USERNAME")
	demoPassword := os.Getenv("DEMO_PASSWORD")
	if demoUsername == "" || demoPassword == "" {
		log.Fatal("Missing environment variables: DEMO_USERNAME, DEMO_PASSWORD")
	}

	var existing models.User
	if err := db.Where("username = ?", demoUsername).First(&existing).Error; err == nil {
		log.Println("Demo user already exists:", existing.Username)
		return
	}

	passwordHash, err := utils.HashPassword(demoPassword)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	user := models.User{
		ID:           uuid.New(),
		Username:     demoUsername,
		PasswordHash: passwordHash,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatal("Failed to create demo user:", err)
	}

	samples := []struct {
		content string
		mood    models.Mood
		daysAgo int
	}{
		{"Took a long walk and felt my shoulders finally relax.", models.MoodPositive, 6},
		{"Busy day, nothing special to report.", models.MoodNeutral, 4},
		{"Struggled to focus and felt anxious about the deadline.", models.MoodNegative, 2},
		{"Had coffee with an old friend, laughed a lot.", models.MoodPositive, 1},
	}

	for _, s := range samples {
		createdAt := time.Now().UTC().AddDate(0, 0, -s.daysAgo)
		thought := models.Thought{
			ID:            uuid.New(),
			Content:       s.content,
			Mood:          s.mood,
			GrowthStage:   0,
			CreatedAt:     createdAt,
			LastWateredAt: createdAt,
			UserID:        user.ID,
		}
		if err := db.Create(&thought).Error; err != nil {
			log.Fatal("Failed to create sample thought:", err)
		}
	}

	log.Println("Demo user created:", user.Username)
	log.Printf("Seeded %d sample thoughts", len(samples))
}
