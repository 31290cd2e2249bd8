package main

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"taskhub/internal/auth"
	"taskhub/internal/config"
	"taskhub/internal/db"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

const (
	demoEmail    = "demo@taskhub.local"
	demoUsername = "demo"
	demoPassword = "demo-password"
)

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	user, err := userRepo.FindByEmail(ctx, demoEmail)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to look up demo user: %v", err)
		}
		hash, err := auth.HashPassword(demoPassword)
		if err != nil {
			log.Fatalf("Failed to hash demo password: %v", err)
		}
		user = &model.User{
			Name:         "Demo User",
			Username:     demoUsername,
			Email:        demoEmail,
			PasswordHash: hash,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create demo user: %v", err)
		}
		log.Printf("Created demo user %s (password: %s)", demoEmail, demoPassword)
	} else {
		log.Printf("Demo user %s already exists, skipping user creation", demoEmail)
	}

	existing, err := taskRepo.ListByOwner(ctx, user.ID)
	if err != nil {
		log.Fatalf("Failed to list demo tasks: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Demo user already has %d tasks, nothing to do", len(existing))
		return
	}

	tomorrow := time.Now().Add(24 * time.Hour)
	tasks := []model.Task{
		{Title: "Try out TaskHub", Description: "Log in with the demo account and look around.", Priority: model.PriorityHigh, UserID: user.ID},
		{Title: "Plan the week", Description: "Sketch out what needs doing.", Priority: model.PriorityMedium, DueDate: &tomorrow, UserID: user.ID},
		{Title: "Archive old notes", Priority: model.PriorityLow, Completed: true, UserID: user.ID},
	}
	for i := range tasks {
		if err := taskRepo.Create(ctx, &tasks[i]); err != nil {
			log.Fatalf("Failed to create demo task: %v", err)
		}
	}
	log.Printf("Seeded %d demo tasks", len(tasks))
}
