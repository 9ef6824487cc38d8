// Command createadmin creates an admin account. There is no public signup
// surface; accounts exist only through this tool.
//
// Usage:
//
//	createadmin -username ops -password 'long secret here'
package main

import (
	"flag"
	"log"

	"github.com/domilony/leadgen/internal/api/middleware"
	"github.com/domilony/leadgen/internal/application"
	"github.com/domilony/leadgen/internal/config"
	"github.com/domilony/leadgen/internal/config/db"
	"github.com/domilony/leadgen/internal/domain/admin"
	"github.com/domilony/leadgen/internal/repository"
)

func main() {
	username := flag.String("username", "", "admin username")
	password := flag.String("password", "", "admin password (min 8 characters)")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("both -username and -password are required")
	}
	if len(*password) < 8 {
		log.Fatal("password must be at least 8 characters")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	conn, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	repos := repository.NewRepositories(conn)
	auth := application.NewAuthService(repos, middleware.NewTokenManager(cfg))

	adm, err := auth.CreateAdmin(admin.CreateAdminInput{
		Username: *username,
		Password: *password,
	})
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	log.Printf("Created admin %q (id %d)", adm.Username, adm.ID)
}
