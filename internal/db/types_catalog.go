package db

// CatalogRole is a row of catalog_roles joined with its ordered skills.
type CatalogRole struct {
	Name     string   `json:"name"`
	Position int      `json:"position"`
	Skills   []string `json:"skills"`
}

// CatalogJob is a row of catalog_jobs.
type CatalogJob struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Type         string   `json:"type"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Role         *string  `json:"role,omitempty"`
	// Skills is set only for postings whose skills are not inherited from their role.
	Skills   []string `json:"skills,omitempty"`
	Position int      `json:"position"`
}
