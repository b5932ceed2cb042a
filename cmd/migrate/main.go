package main

import (
	"embed"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/joho/godotenv"

	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
)

//go:embed migrations/mysql/*.sql migrations/postgres/*.sql
var migrations embed.FS

func main() {
	_ = godotenv.Load()

	var (
		driver  = flag.String("driver", "", "Database driver: mysql or postgres (default $DATABASE_DRIVER)")
		dsn     = flag.String("dsn", "", "Database connection string (default $DATABASE_DSN)")
		up      = flag.Bool("up", false, "Run all up migrations")
		down    = flag.Bool("down", false, "Run all down migrations")
		steps   = flag.Int("steps", 0, "Number of migrations (positive=up, negative=down)")
		version = flag.Bool("version", false, "Print current migration version")
		force   = flag.Int("force", -1, "Force set version (use with caution)")
	)
	flag.Parse()

	forceSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "force" {
			forceSet = true
		}
	})

	if *driver == "" {
		*driver = os.Getenv("DATABASE_DRIVER")
	}
	if *driver == "" {
		*driver = "mysql"
	}
	if *dsn == "" {
		*dsn = os.Getenv("DATABASE_DSN")
	}
	if *dsn == "" {
		log.Fatal("a DSN is required: pass -dsn or set DATABASE_DSN")
	}

	databaseURL, err := migrationURL(*driver, *dsn)
	if err != nil {
		log.Fatal(err)
	}

	source, err := iofs.New(migrations, "migrations/"+*driver)
	if err != nil {
		log.Fatalf("failed to create migration source: %v", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		log.Fatalf("failed to create migrator: %v", err)
	}
	defer m.Close()

	switch {
	case *version:
		v, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("failed to get version: %v", err)
		}
		fmt.Printf("version: %d, dirty: %v\n", v, dirty)
	case forceSet:
		if err := m.Force(*force); err != nil {
			log.Fatalf("failed to force version: %v", err)
		}
		fmt.Printf("forced to version %d\n", *force)
	case *up:
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("failed to run up migrations: %v", err)
		}
		fmt.Println("migrations applied successfully")
	case *down:
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("failed to run down migrations: %v", err)
		}
		fmt.Println("migrations reverted successfully")
	case *steps != 0:
		if err := m.Steps(*steps); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("failed to run migrations: %v", err)
		}
		fmt.Printf("applied %d migration steps\n", *steps)
	default:
		fmt.Println("usage: migrate [-driver mysql|postgres] -dsn <connection-string> [-up|-down|-steps N|-version|-force N]")
		flag.PrintDefaults()
	}
}

// migrationURL turns the server's DSN into the URL form golang-migrate
// expects. MySQL DSNs gain a mysql:// scheme; postgres DSNs are already URLs.
func migrationURL(driver, dsn string) (string, error) {
	switch driver {
	case "mysql":
		if strings.HasPrefix(dsn, "mysql://") {
			return dsn, nil
		}
		return "mysql://" + dsn, nil
	case "postgres":
		return dsn, nil
	}
	return "", fmt.Errorf("unsupported database driver %q", driver)
}
