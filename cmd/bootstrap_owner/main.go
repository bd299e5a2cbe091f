// Command bootstrap_owner creates the first platform owner. Provisioning
// tenants requires an owner, so a fresh deployment has no other way in.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/kingrain94/tenancy-api/internal/config"
	"github.com/kingrain94/tenancy-api/internal/domain"
	"github.com/kingrain94/tenancy-api/internal/identity"
	"github.com/kingrain94/tenancy-api/internal/repository"
	"github.com/kingrain94/tenancy-api/internal/repository/postgres"
	"github.com/kingrain94/tenancy-api/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	email := flag.String("email", "", "Owner email")
	password := flag.String("password", "", "Owner password, at least 8 characters")
	name := flag.String("name", "Platform Owner", "Display name")
	flag.Parse()

	if *email == "" || len(*password) < 8 {
		log.Fatal("-email and a -password of at least 8 characters are required")
	}

	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))
	defer appLogger.Sync()

	dbConnections, err := config.NewDatabaseConnections()
	if err != nil {
		appLogger.Fatal("Failed to connect to PostgreSQL", err)
	}
	defer dbConnections.Close()

	if err := postgres.Migrate(dbConnections.Writer); err != nil {
		appLogger.Fatal("Failed to migrate database", err)
	}
	repo := postgres.NewPostgresRepository(dbConnections)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// No tokens are issued here
	provider := identity.NewLocalProvider(repo.Identity(), identity.NewJWTService(os.Getenv("JWT_SECRET_KEY"), time.Hour))

	principalID, err := provider.CreateIdentity(ctx, *email, *password, identity.Metadata{Name: *name, EmailVerified: true})
	switch {
	case errors.Is(err, identity.ErrIdentityExists):
		existing, lookupErr := repo.Identity().GetByEmail(ctx, *email)
		if lookupErr != nil {
			appLogger.Fatal("Failed to look up existing identity", lookupErr)
		}
		principalID = existing.ID
		appLogger.Infof("Identity %s already exists, granting owner", *email)
	case err != nil:
		appLogger.Fatal("Failed to create identity", err)
	}

	err = repo.GlobalRole().Grant(ctx, &domain.GlobalRoleGrant{PrincipalID: principalID, Role: domain.RoleOwner})
	if err != nil && !errors.Is(err, repository.ErrDuplicate) {
		appLogger.Fatal("Failed to grant owner role", err)
	}

	appLogger.Infof("Principal %s is a platform owner", principalID)
}
