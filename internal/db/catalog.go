package db

import (
	"context"
	"fmt"
)

// -----------------------------------------------------------------------------
// Catalog Methods
// -----------------------------------------------------------------------------

// ListCatalogRoles returns every role with its skills, in catalog order.
// Skills keep the order given by catalog_role_skills.position.
func (db *DB) ListCatalogRoles(ctx context.Context) ([]CatalogRole, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT r.name, r.position,
		        COALESCE(array_agg(s.skill ORDER BY s.position) FILTER (WHERE s.skill IS NOT NULL), '{}')
		 FROM catalog_roles r
		 LEFT JOIN catalog_role_skills s ON s.role_id = r.id
		 GROUP BY r.id, r.name, r.position
		 ORDER BY r.position, r.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog roles: %w", err)
	}
	defer rows.Close()

	var roles []CatalogRole
	for rows.Next() {
		var r CatalogRole
		if err := rows.Scan(&r.Name, &r.Position, &r.Skills); err != nil {
			return nil, fmt.Errorf("failed to scan catalog role: %w", err)
		}
		roles = append(roles, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate catalog roles: %w", err)
	}
	return roles, nil
}

// ListCatalogJobs returns every catalog posting in catalog order.
func (db *DB) ListCatalogJobs(ctx context.Context) ([]CatalogJob, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, company, location, job_type, description,
		        COALESCE(requirements, '{}'), role, skills, position
		 FROM catalog_jobs
		 ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog jobs: %w", err)
	}
	defer rows.Close()

	var jobs []CatalogJob
	for rows.Next() {
		var j CatalogJob
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Type,
			&j.Description, &j.Requirements, &j.Role, &j.Skills, &j.Position); err != nil {
			return nil, fmt.Errorf("failed to scan catalog job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate catalog jobs: %w", err)
	}
	return jobs, nil
}
