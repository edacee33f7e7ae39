package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Arashi20/Workout-Logging-App/internal/db"
	"github.com/Arashi20/Workout-Logging-App/internal/users"
	"github.com/Arashi20/Workout-Logging-App/pkg"

	log "github.com/sirupsen/logrus"
)

// adduser creates a user account directly in the database. There is no
// open registration endpoint, accounts are provisioned with this tool.
func main() {
	username := flag.String("username", "", "username of the new user")
	dbHost := flag.String("db-host", "localhost", "postgres host")
	dbPort := flag.String("db-port", "5432", "postgres port")
	dbName := flag.String("db-name", "workout_log", "postgres database name")
	flag.Parse()

	if *username == "" {
		log.Fatalln("username empty, use -username")
	}

	password := os.Getenv("WLOG_NEW_USER_PASSWORD")
	if password == "" {
		log.Fatalln("password not set, use WLOG_NEW_USER_PASSWORD env var")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         *dbHost,
		DBPort:         *dbPort,
		DBName:         *dbName,
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("new db pool: %s", err)
	}
	defer dbPool.Close()

	passwordHash, err := pkg.HashPassword(password)
	if err != nil {
		log.Fatalf("hash password: %s", err)
	}

	user, err := users.NewRepo(dbPool).Create(ctx, *username, passwordHash)
	if err != nil {
		if errors.Is(err, users.ErrUsernameTaken) {
			log.Fatalf("user %s already exists", *username)
		}
		log.Fatalf("create user: %s", err)
	}

	fmt.Printf("user [%s] created, id: %d\n", user.Username, user.ID)
}
