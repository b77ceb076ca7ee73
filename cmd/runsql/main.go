// Command runsql executes one SQL statement against DATABASE_URL and prints
// the resulting rows as JSON, or OK when there are none.
//
//	runsql "SELECT id, song_name FROM app_myrole.songs"
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/kawabatas/songbook/internal/infra/config"
	pgdriver "github.com/kawabatas/songbook/internal/infra/datastore/postgres"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	dsn := cfg.PostgresDSN()
	if dsn == "" {
		log.Fatal("Missing DATABASE_URL")
	}
	stmt := strings.TrimSpace(strings.Join(os.Args[1:], " "))
	if stmt == "" {
		fmt.Fprintln(os.Stderr, `Usage: runsql "<SQL_STATEMENT>"`)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	db, err := pgdriver.Open(ctx, pgdriver.DSN(dsn, cfg.PGSSL))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rows, err := queryMaps(ctx, db, stmt)
	if err != nil {
		fmt.Fprintln(os.Stderr, "SQL error:", err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		fmt.Println("OK")
		return
	}
	_ = json.NewEncoder(os.Stdout).Encode(rows)
}

func queryMaps(ctx context.Context, db *sql.DB, stmt string) ([]map[string]any, error) {
	rows, err := db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out []map[string]any
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		m := make(map[string]any, len(cols))
		for i, c := range cols {
			if b, ok := vals[i].([]byte); ok {
				m[c] = string(b)
			} else {
				m[c] = vals[i]
			}
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
