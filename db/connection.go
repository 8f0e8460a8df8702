package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"wiredleaf-api/config"
	"wiredleaf-api/logger"
)

// InitDB opens the Postgres pool, checks connectivity and creates any
// missing tables.
func InitDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	conn, err := sql.Open("postgres", cfg.DBConnString())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	conn.SetMaxOpenConns(20)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := Migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// Migrate runs the bootstrap DDL. Every statement is idempotent.
func Migrate(ctx context.Context, conn *sql.DB) error {
	for _, t := range tables {
		if _, err := conn.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("error creating %s table: %w", t.name, err)
		}
	}
	logger.Info("Database schema ready (%d tables)", len(tables))
	return nil
}

// Order matters: meetings reference consultations.
var tables = []struct {
	name string
	ddl  string
}{
	{"consultations", `
	CREATE TABLE IF NOT EXISTS consultations (
		id UUID PRIMARY KEY,
		user_id UUID,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT,
		service TEXT NOT NULL,
		message TEXT,
		preferred_date TEXT,
		preferred_time TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS consultations_user_id_idx ON consultations (user_id);`},
	{"meetings", `
	CREATE TABLE IF NOT EXISTS meetings (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		start_time TIMESTAMPTZ NOT NULL,
		end_time TIMESTAMPTZ NOT NULL,
		meeting_link TEXT,
		status TEXT NOT NULL DEFAULT 'scheduled',
		consultation_id UUID REFERENCES consultations(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`},
	{"profiles", `
	CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL UNIQUE,
		full_name TEXT,
		email TEXT,
		phone TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`},
	{"contact_messages", `
	CREATE TABLE IF NOT EXISTS contact_messages (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT,
		service TEXT,
		message TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`},
	{"admins", `
	CREATE TABLE IF NOT EXISTS admins (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`},
	{"dlq_messages", `
	CREATE TABLE IF NOT EXISTS dlq_messages (
		message_id UUID PRIMARY KEY,
		topic TEXT NOT NULL,
		key TEXT,
		value JSONB,
		error_message TEXT NOT NULL,
		resolved BOOLEAN NOT NULL DEFAULT FALSE,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		resolved_at TIMESTAMPTZ
	);`},
}
