// Package postgres implements the song store on an external PostgreSQL
// database. Each connecting role gets its own schema so several deployments
// can share one database instance.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/lib/pq"
)

const TableName = "songs"

// DSN returns dsn with an sslmode chosen from useSSL unless one is already set.
// Key/value DSNs are returned untouched.
func DSN(dsn string, useSSL bool) string {
	u, err := url.Parse(dsn)
	if err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") {
		return dsn
	}
	q := u.Query()
	if q.Get("sslmode") != "" {
		return dsn
	}
	if useSSL {
		q.Set("sslmode", "require")
	} else {
		q.Set("sslmode", "disable")
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Open connects to the database and tunes the pool.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	return db, nil
}

// EnsureSchema creates a schema named after the connecting role and the songs
// table inside it, and returns the quoted, schema-qualified table name.
func EnsureSchema(ctx context.Context, db *sql.DB) (string, error) {
	var role string
	if err := db.QueryRowContext(ctx, `SELECT current_user`).Scan(&role); err != nil {
		return "", fmt.Errorf("current user: %w", err)
	}
	schema := SchemaName(role)
	if _, err := db.ExecContext(ctx, `CREATE SCHEMA IF NOT EXISTS `+pq.QuoteIdentifier(schema)); err != nil {
		return "", fmt.Errorf("create schema %s: %w", schema, err)
	}
	table := QualifiedTable(schema)
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS `+table+` (
  id SERIAL PRIMARY KEY,
  song_name TEXT NOT NULL,
  artist_name TEXT NOT NULL,
  lyrics_spanish TEXT NOT NULL,
  lyrics_english TEXT,
  lyrics_german TEXT,
  youtube_link TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`); err != nil {
		return "", fmt.Errorf("create table %s: %w", table, err)
	}
	slog.InfoContext(ctx, "postgres schema ready", slog.String("role", role), slog.String("table", table))
	return table, nil
}

// SchemaName derives the per-role schema name.
func SchemaName(role string) string {
	return "app_" + strings.ToLower(role)
}

func QualifiedTable(schema string) string {
	return pq.QuoteIdentifier(schema) + "." + pq.QuoteIdentifier(TableName)
}
