package catalog

import (
	"context"
	"fmt"
	"slices"

	"github.com/jonathan/ats-matcher/internal/db"
	"github.com/jonathan/ats-matcher/internal/logger"
	"github.com/jonathan/ats-matcher/internal/types"
)

// Store is the read side of the database that a catalog can be built from.
// *db.DB satisfies it.
type Store interface {
	ListCatalogRoles(ctx context.Context) ([]db.CatalogRole, error)
	ListCatalogJobs(ctx context.Context) ([]db.CatalogJob, error)
}

// FromStore builds a catalog from the catalog_* tables.
func FromStore(ctx context.Context, store Store) (*Catalog, error) {
	roleRows, err := store.ListCatalogRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog roles: %w", err)
	}
	jobRows, err := store.ListCatalogJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog jobs: %w", err)
	}

	c := &Catalog{Roles: make([]Role, 0, len(roleRows)), Jobs: make([]types.JobPosting, 0, len(jobRows))}
	for _, r := range roleRows {
		c.Roles = append(c.Roles, Role{Name: r.Name, Skills: r.Skills})
	}
	for _, j := range jobRows {
		job := types.JobPosting{
			ID:           j.ID,
			Title:        j.Title,
			Company:      j.Company,
			Location:     j.Location,
			Type:         j.Type,
			Description:  j.Description,
			Requirements: j.Requirements,
			Skills:       j.Skills,
		}
		if j.Role != nil {
			job.Role = *j.Role
		}
		c.Jobs = append(c.Jobs, job)
	}

	c.resolve()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger.Info().
		Int("roles", len(c.Roles)).
		Int("jobs", len(c.Jobs)).
		Msg("catalog loaded from database")
	return c, nil
}

// Open resolves the catalog for the given sources, in priority order:
// a database URL, then a catalog file, then the embedded default.
func Open(ctx context.Context, databaseURL, path string) (*Catalog, error) {
	switch {
	case databaseURL != "":
		conn, err := db.Connect(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		defer conn.Close()
		return FromStore(ctx, conn)
	case path != "":
		c, err := Load(path)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("path", path).Int("jobs", len(c.Jobs)).Msg("catalog loaded from file")
		return c, nil
	default:
		return Default()
	}
}

// Writer is the write side used to publish a catalog to the database.
type Writer interface {
	ReplaceCatalog(ctx context.Context, roles []db.CatalogRole, jobs []db.CatalogJob) error
}

// Publish validates c and replaces the stored catalog with it.
func Publish(ctx context.Context, w Writer, c *Catalog) error {
	if err := c.Validate(); err != nil {
		return err
	}

	roles := make([]db.CatalogRole, 0, len(c.Roles))
	for i, r := range c.Roles {
		roles = append(roles, db.CatalogRole{Name: r.Name, Position: i, Skills: r.Skills})
	}
	jobs := make([]db.CatalogJob, 0, len(c.Jobs))
	for i, j := range c.Jobs {
		row := db.CatalogJob{
			ID:           j.ID,
			Title:        j.Title,
			Company:      j.Company,
			Location:     j.Location,
			Type:         j.Type,
			Description:  j.Description,
			Requirements: j.Requirements,
			Position:     i,
		}
		if j.Role != "" {
			role := j.Role
			row.Role = &role
		}
		// Inherited skills are left to the role so later role edits still apply.
		if !slices.Equal(j.Skills, c.RoleSkills(j.Role)) {
			row.Skills = j.Skills
		}
		jobs = append(jobs, row)
	}

	if err := w.ReplaceCatalog(ctx, roles, jobs); err != nil {
		return fmt.Errorf("failed to publish catalog: %w", err)
	}
	logger.Info().Int("roles", len(roles)).Int("jobs", len(jobs)).Msg("catalog published to database")
	return nil
}
