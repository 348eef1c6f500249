package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBConfig holds database connection parameters
type DBConfig struct {
	DSN string
}

// LoadDBConfig reads the PostgreSQL connection settings from the environment.
func LoadDBConfig() (*DBConfig, error) {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")

	if host == "" || port == "" || user == "" || name == "" {
		return nil, fmt.Errorf("missing database settings: DB_HOST, DB_PORT, DB_USER and DB_NAME are required")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, name)

	return &DBConfig{DSN: dsn}, nil
}

// ConnectDB opens a pgx pool, waiting for the database to become reachable.
func ConnectDB(cfg *DBConfig) (*pgxpool.Pool, error) {
	const (
		connectAttempts = 10
		connectBackoff  = 3 * time.Second
	)

	var pool *pgxpool.Pool
	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		pool, err = pgxpool.New(context.Background(), cfg.DSN)
		if err == nil {
			if err = pool.Ping(context.Background()); err == nil {
				log.Println("Connected to PostgreSQL")
				return pool, nil
			}
		}
		log.Printf("Database not ready (attempt %d/%d): %v", attempt, connectAttempts, err)
		time.Sleep(connectBackoff)
	}
	return nil, fmt.Errorf("database unreachable after %d attempts: %w", connectAttempts, err)
}

// Execer is the statement-execution capability the schema bootstrap
// needs; *pgxpool.Pool satisfies it, as do the test mocks.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// InitSchema creates all application tables if they don't exist.
// Only tb_users has read/write operations; the reservation, payment,
// hotel and comment tables are provisioned for the rest of the
// application and are not touched by any endpoint here.
func InitSchema(ctx context.Context, db Execer) error {
	sql := `
	CREATE TABLE IF NOT EXISTS tb_users (
		id SERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL, -- bcrypt hash, never the plaintext
		name_full TEXT NOT NULL DEFAULT '',
		role CHAR(1) NOT NULL CHECK (role IN ('u', 'a')) DEFAULT 'u',
		date_creation DATE NOT NULL DEFAULT CURRENT_DATE,
		email TEXT UNIQUE NOT NULL,
		last_code TEXT,              -- recovery flow, not implemented
		code_expiration TIMESTAMP WITH TIME ZONE
	);

	CREATE TABLE IF NOT EXISTS tb_hotel (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT,
		city TEXT,
		stars SMALLINT
	);

	CREATE TABLE IF NOT EXISTS tb_reservation (
		id SERIAL PRIMARY KEY,
		id_user INTEGER NOT NULL REFERENCES tb_users(id),
		id_hotel INTEGER NOT NULL REFERENCES tb_hotel(id),
		date_start DATE NOT NULL,
		date_end DATE NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending'
	);

	CREATE TABLE IF NOT EXISTS tb_payment (
		id SERIAL PRIMARY KEY,
		id_reservation INTEGER NOT NULL REFERENCES tb_reservation(id),
		amount NUMERIC(10, 2) NOT NULL,
		date_payment DATE NOT NULL DEFAULT CURRENT_DATE
	);

	CREATE TABLE IF NOT EXISTS tb_comment (
		id SERIAL PRIMARY KEY,
		id_user INTEGER NOT NULL REFERENCES tb_users(id),
		id_hotel INTEGER NOT NULL REFERENCES tb_hotel(id),
		body TEXT NOT NULL,
		date_comment DATE NOT NULL DEFAULT CURRENT_DATE
	);
	`
	_, err := db.Exec(ctx, sql)
	if err != nil {
		return fmt.Errorf("unable to create schema: %w", err)
	}

	log.Println("Schema verified")
	return nil
}

// SeedAdmin ensures the default administrator account exists. The insert
// is keyed by username so rerunning it is a no-op.
func SeedAdmin(ctx context.Context, db Execer, passwordHash string) error {
	sql := `INSERT INTO tb_users (username, password, name_full, role, email)
	        VALUES ('admin', $1, 'Administrator', 'a', 'admin@hotel.com')
	        ON CONFLICT (username) DO NOTHING`
	tag, err := db.Exec(ctx, sql, passwordHash)
	if err != nil {
		return fmt.Errorf("unable to seed admin user: %w", err)
	}
	if tag.RowsAffected() > 0 {
		log.Println("Default 'admin' account created")
	}
	return nil
}
