// Command seed creates the demo accounts and jobs and prints a development
// access token for each account.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"time"

	"jobboard-backend/config"
	"jobboard-backend/internal/domain"
	"jobboard-backend/internal/repository/postgres"
	"jobboard-backend/internal/seed"
	"jobboard-backend/internal/usecase"
	"jobboard-backend/pkg/auth"
	"jobboard-backend/pkg/database"
	"jobboard-backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	ttl := flag.Duration("ttl", 24*time.Hour, "lifetime of the printed access tokens")
	migrate := flag.Bool("migrate", true, "apply embedded migrations first")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)

	ctx := context.Background()
	if *migrate {
		if err := database.Migrate(ctx, cfg.DBUrl); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
	}

	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	users, err := seed.Users(ctx, postgres.NewUserRepository(dbPool), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Seeding users failed: %v", err)
	}

	jobUC := usecase.NewJobUsecase(postgres.NewJobRepository(dbPool), nil)
	for _, u := range users {
		if u.Role == domain.RoleAdmin {
			n, err := seed.Jobs(ctx, jobUC, domain.Caller{UserID: u.ID, Role: u.Role})
			if err != nil {
				log.Fatalf("Seeding jobs failed: %v", err)
			}
			fmt.Printf("Created %d demo jobs for %s\n\n", n, u.Email)
			break
		}
	}

	for i, u := range users {
		fmt.Printf("User: %s (%s)\nPassword: %s\n", u.Email, u.Role, seed.DemoAccounts[i].Password)
		if cfg.JWTSecret == "" {
			fmt.Print("Token: JWT_SECRET not set\n\n")
			continue
		}
		token, err := auth.SignHS256(cfg.JWTSecret, cfg.JWTIssuer, strconv.FormatInt(u.ID, 10), *ttl)
		if err != nil {
			log.Fatalf("Signing token failed: %v", err)
		}
		fmt.Printf("Token: %s\n\n", token)
	}
}
