// Package db provides PostgreSQL access for the job catalog.
package db

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the catalog tables if they do not exist.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply catalog schema: %w", err)
	}
	return nil
}

// ReplaceCatalog swaps the stored catalog for roles and jobs in one transaction.
// Positions are taken from slice order.
func (db *DB) ReplaceCatalog(ctx context.Context, roles []CatalogRole, jobs []CatalogJob) error {
	tx, err := db.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, stmt := range []string{
		`DELETE FROM catalog_jobs`,
		`DELETE FROM catalog_role_skills`,
		`DELETE FROM catalog_roles`,
	} {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear catalog: %w", err)
		}
	}

	batch := &pgx.Batch{}
	for i, r := range roles {
		batch.Queue(`INSERT INTO catalog_roles (name, position) VALUES ($1, $2)`, r.Name, i)
		for j, skill := range r.Skills {
			batch.Queue(
				`INSERT INTO catalog_role_skills (role_id, skill, position)
				 SELECT id, $2, $3 FROM catalog_roles WHERE name = $1
				 ON CONFLICT DO NOTHING`,
				r.Name, skill, j,
			)
		}
	}
	for i, j := range jobs {
		batch.Queue(
			`INSERT INTO catalog_jobs (id, title, company, location, job_type, description, requirements, role, skills, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			j.ID, j.Title, j.Company, j.Location, j.Type, j.Description, j.Requirements, j.Role, j.Skills, i,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}
