package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/kingrain94/tenancy-api/internal/identity"
)

// Prints a bearer token for an existing principal, for poking at the API locally.
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}

	principalID := flag.String("principal", "", "Principal ID for the token")
	email := flag.String("email", "", "Email embedded in the token")
	expirationHours := flag.Int("exp", 24, "Token expiration in hours")
	flag.Parse()

	if *principalID == "" {
		log.Fatal("Principal ID is required")
	}

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	tokens := identity.NewJWTService(secret, time.Duration(*expirationHours)*time.Hour)
	tokenString, err := tokens.GenerateToken(*principalID, *email)
	if err != nil {
		log.Fatalf("Error signing token: %v", err)
	}

	fmt.Printf("Generated JWT Token:\n%s\n", tokenString)
}
