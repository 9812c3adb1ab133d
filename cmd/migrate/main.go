package main

import (
	"flag"
	"os"

	"github.com/fatih/color"

	"cashlytic-pos/config"
	"cashlytic-pos/db/migrate"
)

func main() {
	seed := flag.Bool("seed", false, "insert demo products and salespersons")
	verbose := flag.Bool("v", false, "log every SQL statement")
	envPath := flag.String("env", ".env", "path to the .env file")
	flag.Parse()

	green := color.New(color.FgGreen, color.Bold)
	red := color.New(color.FgRed, color.Bold)

	config.LoadEnv(*envPath)

	dsn, err := config.DatabaseURL()
	if err != nil {
		red.Printf("✗ %v\n", err)
		os.Exit(1)
	}

	gdb, err := migrate.Open(dsn, *verbose)
	if err != nil {
		red.Printf("✗ %v\n", err)
		os.Exit(1)
	}

	if err := migrate.Run(gdb); err != nil {
		red.Printf("✗ Migration failed: %v\n", err)
		os.Exit(1)
	}
	green.Println("✓ Schema and stored functions are up to date")

	if *seed {
		if err := migrate.Seed(gdb); err != nil {
			red.Printf("✗ Seed failed: %v\n", err)
			os.Exit(1)
		}
		green.Println("✓ Demo data seeded")
	}
}
