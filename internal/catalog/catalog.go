// Package catalog holds the skill catalog and the job postings resumes are matched against.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/ats-matcher/internal/types"
)

// Role is a job role and its canonical skill names.
type Role struct {
	Name   string   `json:"name" yaml:"name" validate:"required"`
	Skills []string `json:"skills" yaml:"skills" validate:"required,min=1,unique,dive,required"`
}

// Catalog is an ordered list of roles plus the postings derived from them.
// A loaded Catalog is treated as read-only and may be shared between goroutines.
type Catalog struct {
	Roles []Role             `json:"roles" yaml:"roles" validate:"required,min=1,dive"`
	Jobs  []types.JobPosting `json:"jobs" yaml:"jobs" validate:"dive"`
}

// ErrInvalidCatalog is wrapped by every error returned from Validate.
var ErrInvalidCatalog = errors.New("invalid catalog")

// RoleSkills returns the skills of the named role, matched case-insensitively.
func (c *Catalog) RoleSkills(name string) []string {
	for _, r := range c.Roles {
		if strings.EqualFold(r.Name, name) {
			return r.Skills
		}
	}
	return nil
}

// DeriveRole returns the longest role name contained in title, ignoring case.
// It returns "" when no role matches.
func (c *Catalog) DeriveRole(title string) string {
	lower := strings.ToLower(title)
	best := ""
	for _, r := range c.Roles {
		if strings.Contains(lower, strings.ToLower(r.Name)) && len(r.Name) > len(best) {
			best = r.Name
		}
	}
	return best
}

// Job returns the posting with the given ID.
func (c *Catalog) Job(id string) (types.JobPosting, bool) {
	for _, j := range c.Jobs {
		if j.ID == id {
			return j, true
		}
	}
	return types.JobPosting{}, false
}

// SkillCount is the number of distinct canonical skills across all roles.
func (c *Catalog) SkillCount() int {
	seen := make(map[string]bool)
	for _, r := range c.Roles {
		for _, s := range r.Skills {
			seen[strings.ToLower(s)] = true
		}
	}
	return len(seen)
}

// resolve fills in each posting's role and skills from the role table.
// Skills already present on a posting are left untouched.
func (c *Catalog) resolve() {
	for i := range c.Jobs {
		job := &c.Jobs[i]
		if job.Role == "" {
			job.Role = c.DeriveRole(job.Title)
		}
		if len(job.Skills) == 0 {
			if skills := c.RoleSkills(job.Role); len(skills) > 0 {
				job.Skills = append([]string(nil), skills...)
			}
		}
	}
}

// Validate checks structural constraints and cross references.
func (c *Catalog) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidCatalog, describeValidation(err))
	}

	roles := make(map[string]bool, len(c.Roles))
	for _, r := range c.Roles {
		key := strings.ToLower(strings.TrimSpace(r.Name))
		if roles[key] {
			return fmt.Errorf("%w: duplicate role %q", ErrInvalidCatalog, r.Name)
		}
		roles[key] = true
	}

	ids := make(map[string]bool, len(c.Jobs))
	for _, j := range c.Jobs {
		if ids[j.ID] {
			return fmt.Errorf("%w: duplicate job id %q", ErrInvalidCatalog, j.ID)
		}
		ids[j.ID] = true
		if j.Role != "" && !roles[strings.ToLower(j.Role)] {
			return fmt.Errorf("%w: job %q references unknown role %q", ErrInvalidCatalog, j.ID, j.Role)
		}
		if len(j.Skills) == 0 {
			return fmt.Errorf("%w: job %q (%s) has no skills and no matching role", ErrInvalidCatalog, j.ID, j.Title)
		}
	}
	return nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		ve := verrs[0]
		return fmt.Sprintf("%s failed %q", ve.Namespace(), ve.Tag())
	}
	return err.Error()
}
