package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/bookfinder/internal/auth"
	"github.com/mrlokans/bookfinder/internal/config"
	"github.com/mrlokans/bookfinder/internal/database"
	"github.com/mrlokans/bookfinder/internal/database/users"
	"github.com/mrlokans/bookfinder/internal/entities"
	"github.com/mrlokans/bookfinder/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "create-admin":
		if err := runCreateAdmin(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// runCreateAdmin creates an admin user directly in the database. Search and
// import endpoints require an admin, and registration only creates regular
// users.
func runCreateAdmin(args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ExitOnError)
	name := fs.String("name", "", "Admin display name (required)")
	email := fs.String("email", "", "Admin email (required)")
	password := fs.String("password", "", "Admin password (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name == "" || *email == "" || *password == "" {
		fs.Usage()
		return fmt.Errorf("name, email and password are required")
	}

	cfg := config.NewConfig()
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	service := auth.NewService(users.NewRepository(db.DB), cfg.Auth)
	user, token, err := service.Register(*name, *email, *password, entities.UserRoleAdmin)
	if err != nil {
		return err
	}

	fmt.Printf("Admin user %q (id=%d) created.\n", user.Email, user.ID)
	fmt.Printf("API token (shown once): %s\n", token)
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve          Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  create-admin   Create an admin user (-name, -email, -password)\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
