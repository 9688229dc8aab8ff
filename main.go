package main

import (
	"fmt"
	"log"
	"os"

	"github.com/mrlokans/library-tracker/internal/config"
	"github.com/mrlokans/library-tracker/internal/console"
	"github.com/mrlokans/library-tracker/internal/database"
	"github.com/mrlokans/library-tracker/internal/entrypoint"
	"github.com/mrlokans/library-tracker/internal/library"
	"github.com/mrlokans/library-tracker/internal/seed"
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

	switch os.Args[1] {
	case "console":
		cfg := config.NewConfig()
		service, closeDB := mustOpenService(cfg)
		defer closeDB()

		if _, err := seed.Run(service); err != nil {
			log.Fatalf("Failed to seed catalog: %v", err)
		}

		console.New(service, os.Stdin, os.Stdout).Run()

	case "seed":
		cfg := config.NewConfig()
		service, closeDB := mustOpenService(cfg)
		defer closeDB()

		created, err := seed.Run(service)
		if err != nil {
			log.Fatalf("Failed to seed catalog: %v", err)
		}
		fmt.Printf("Seeded %d new books (out of %d in the catalog)\n", created, len(seed.Catalog))

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func mustOpenService(cfg *config.Config) (*library.Service, func()) {
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}
	return library.NewService(db, cfg.Loans.PeriodDays), closeDB
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command>\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve    Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  console  Run the interactive lending console (seeds the catalog first)\n")
	fmt.Fprintf(os.Stderr, "  seed     Seed the base catalog and exit\n")
	fmt.Fprintf(os.Stderr, "\nConfiguration is read from the environment (DATABASE_PATH, PORT, HOST, ...).\n")
}
