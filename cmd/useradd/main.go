// Command useradd creates a user account. There is no public registration
// endpoint; accounts are provisioned by an operator.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/studydesk-app/studydesk/internal/database"
	"github.com/studydesk-app/studydesk/internal/store"
)

func main() {
	email := flag.String("email", "", "email address (login key)")
	name := flag.String("name", "", "display name")
	password := flag.String("password", "", "plaintext password to hash")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: useradd -email <email> -password <password> [-name <name>]")
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	dbPath := os.Getenv("STUDYDESK_DB_PATH")
	if dbPath == "" {
		dbPath = "studydesk.db"
	}

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	user, err := store.NewUserStore(db).Create(*email, *name, string(hash))
	if err != nil {
		log.Fatalf("create user: %v", err)
	}

	fmt.Printf("created user %d (%s)\n", user.ID, user.Email)
}
