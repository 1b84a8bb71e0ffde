package db

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is a key-value item store on top of a pgx pool. Items live in the
// kv_items table as JSONB, keyed by (table_name, item_key).
type DB struct {
	Pool *pgxpool.Pool
}

// Connect opens a pool, retrying until Postgres answers a ping or
// attempts run out.
func Connect(ctx context.Context, dsn string, attempts int) (*DB, error) {
	var lastErr error
	for i := 1; i <= attempts; i++ {
		pool, err := pgxpool.New(ctx, dsn)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				log.Println("[db] connected to PostgreSQL")
				return &DB{Pool: pool}, nil
			}
			pool.Close()
		}
		lastErr = err
		log.Printf("[db] waiting for PostgreSQL... (%d/%d)", i, attempts)
		if i < attempts {
			time.Sleep(2 * time.Second)
		}
	}
	return nil, fmt.Errorf("postgres: failed after %d attempts: %w", attempts, lastErr)
}

// RunMigrations applies the .sql files in migrationFS in name order,
// skipping versions already recorded in schema_migrations.
func (d *DB) RunMigrations(ctx context.Context, migrationFS fs.FS) error {
	_, err := d.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ  DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	files, err := sqlFiles(migrationFS)
	if err != nil {
		return err
	}

	for _, file := range files {
		var applied bool
		err := d.Pool.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version=$1)", file).Scan(&applied)
		if err != nil {
			return fmt.Errorf("check %s: %w", file, err)
		}
		if applied {
			continue
		}

		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		if _, err = d.Pool.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("exec %s: %w", file, err)
		}
		if _, err = d.Pool.Exec(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", file); err != nil {
			return fmt.Errorf("record %s: %w", file, err)
		}
		log.Printf("[db] applied migration %s", file)
	}
	return nil
}

func sqlFiles(migrationFS fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// PutItem upserts item as JSON under (table, key), replacing any previous
// value unconditionally.
func (d *DB) PutItem(ctx context.Context, table, key string, item any) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("postgres: encode %s item: %w", table, err)
	}
	_, err = d.Pool.Exec(ctx,
		`INSERT INTO kv_items (table_name,item_key,item,updated_at)
		 VALUES ($1,$2,$3,NOW())
		 ON CONFLICT (table_name,item_key)
		 DO UPDATE SET item=EXCLUDED.item, updated_at=EXCLUDED.updated_at`,
		table, key, string(data))
	if err != nil {
		return fmt.Errorf("postgres: put %s/%s: %w", table, key, err)
	}
	return nil
}

// Close shuts down the pool.
func (d *DB) Close() { d.Pool.Close() }
