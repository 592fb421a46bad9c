package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"freshbasket/internal/config"
	"freshbasket/internal/db"
	"freshbasket/internal/domain"
	"freshbasket/internal/httpserver"
	"freshbasket/internal/seed"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	res, err := seed.Apply(ctx, pool)
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Printf("seed applied, demo shop %s", res.ShopID)

	// Demo tokens so the API can be exercised without a login service.
	for _, u := range []domain.User{res.Customer, res.Courier, res.ShopAdmin, res.SuperAdmin} {
		token, err := httpserver.SignToken(cfg.JWTSecret, u, 24*time.Hour)
		if err != nil {
			logger.Fatalf("sign token for %s: %v", u.Name, err)
		}
		logger.Printf("%s (%s): %s", u.Name, u.Role, token)
	}
}
