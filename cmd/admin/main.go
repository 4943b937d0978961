// Command admin creates a back-office account, or promotes an existing user
// and resets their password.
//
//	go run ./cmd/admin -email ops@fitcamp.id -name "Ops" -password s3cretpass
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/fuazim/fitcamp/internal/config"
	"github.com/fuazim/fitcamp/internal/db"
	"github.com/fuazim/fitcamp/internal/logger"
	"github.com/fuazim/fitcamp/internal/user"
)

func main() {
	email := flag.String("email", "", "admin email (required)")
	name := flag.String("name", "Admin", "display name")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "password, at least 8 characters (defaults to $ADMIN_PASSWORD)")
	flag.Parse()

	logger.Init("info")
	defer logger.Sync()

	if *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	svc := user.NewService(user.NewRepository(database), cfg.JWTSecret)
	admin, err := svc.CreateAdmin(ctx, *name, *email, *password)
	if err != nil {
		logger.Fatalf("Failed to create admin: %v", err)
	}

	logger.Info("admin ready", "id", admin.ID, "email", admin.Email)
}
