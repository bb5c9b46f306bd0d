package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/prateekh777/professional-website/pkg/auth"
)

// Mints an admin bearer token for the content API.
//
//	go run ./scripts -sub prateek -ttl 24h
func main() {
	_ = godotenv.Load()

	subject := flag.String("sub", "admin", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	tokens := auth.NewTokenService(os.Getenv("ADMIN_JWT_SECRET"), "portfolio-api")
	token, err := tokens.Issue(*subject, auth.RoleAdmin, *ttl)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	fmt.Printf("Subject: %s\nExpires: %s\nToken: %s\n", *subject, time.Now().Add(*ttl).Format(time.RFC3339), token)
}
