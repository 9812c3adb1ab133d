package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// Pool is the shared pgx connection pool
var Pool *pgxpool.Pool

// DB is a database/sql handle backed by Pool
var DB *sql.DB

// InitDB opens the connection pool for the given connection string
func InitDB(ctx context.Context, connStr string) error {
	cfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	Pool, err = pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	// Test the connection
	if err := Pool.Ping(ctx); err != nil {
		Pool.Close()
		Pool = nil
		return fmt.Errorf("failed to ping database: %w", err)
	}

	DB = stdlib.OpenDBFromPool(Pool)

	log.Printf("✓ Database connection established successfully")
	return nil
}

// CloseDB closes the database connection
func CloseDB() error {
	var err error
	if DB != nil {
		err = DB.Close()
		DB = nil
	}
	if Pool != nil {
		Pool.Close()
		Pool = nil
	}
	return err
}
