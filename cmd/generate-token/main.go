// Command generate-token mints a short-lived admin token out of band, for
// poking at protected endpoints during development.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"StudentPortalAPI/internal/token"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET not found in environment variables")
	}

	userID := "12345"
	role := "admin" // change to "student" if needed
	if len(os.Args) > 1 {
		userID = os.Args[1]
	}
	if len(os.Args) > 2 {
		role = os.Args[2]
	}

	tokens, err := token.NewService(secret, "student-portal-api")
	if err != nil {
		log.Fatal(err)
	}
	t, err := tokens.Issue(userID, role, time.Hour)
	if err != nil {
		log.Fatal("error generating token:", err)
	}

	fmt.Println("Your JWT Token:")
	fmt.Println("Bearer", t)
	fmt.Println()
	fmt.Println("Usage: add this to your Authorization header:")
	fmt.Println("Authorization: Bearer " + t)
}
