package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fadedpez/suitdeck/pkg/db/migrations"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	migrateCmd := flag.NewFlagSet("migrate", flag.ExitOnError)
	statusCmd := flag.NewFlagSet("status", flag.ExitOnError)

	migrateDB := migrateCmd.String("db", "data/suitdeck.db", "Path to SQLite database")
	statusDB := statusCmd.String("db", "data/suitdeck.db", "Path to SQLite database")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "migrate":
		migrateCmd.Parse(os.Args[2:])
		applyMigrations(*migrateDB)

	case "status":
		statusCmd.Parse(os.Args[2:])
		printStatus(*statusDB)

	case "help":
		printUsage()

	default:
		fmt.Printf("Error: Unknown command '%s'\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/migration migrate [-db PATH]  - Apply pending migrations")
	fmt.Println("  go run ./cmd/migration status [-db PATH]   - List migrations and whether they are applied")
	fmt.Println("  go run ./cmd/migration help                - Show this help")
}

func openDB(dbPath string) *sql.DB {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		log.Fatalf("Error creating database directory: %v", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	return db
}

func applyMigrations(dbPath string) {
	db := openDB(dbPath)
	defer db.Close()

	if err := migrations.NewMigrator(db, migrations.Embedded()).MigrateUp(); err != nil {
		log.Fatalf("Error applying migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}

func printStatus(dbPath string) {
	db := openDB(dbPath)
	defer db.Close()

	migrator := migrations.NewMigrator(db, migrations.Embedded())
	if err := migrator.Initialize(); err != nil {
		log.Fatalf("Error initializing migrations table: %v", err)
	}

	applied, err := migrator.GetAppliedMigrations()
	if err != nil {
		log.Fatalf("Error reading applied migrations: %v", err)
	}
	all, err := migrator.LoadMigrations()
	if err != nil {
		log.Fatalf("Error loading migrations: %v", err)
	}

	for _, m := range all {
		state := "pending"
		if applied[m.Version] {
			state = "applied"
		}
		fmt.Printf("%s  %-8s %s\n", m.Version, state, m.Description)
	}
}
