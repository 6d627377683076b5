package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxBatchJobs bounds how many job descriptions one batch request may score.
const MaxBatchJobs = 50

// ExtractSkillsRequest asks for the catalog skills mentioned in a resume.
type ExtractSkillsRequest struct {
	ResumeText string `json:"resume_text" validate:"required"`
}

// SkillsResponse lists extracted skills.
type SkillsResponse struct {
	Skills []string `json:"skills"`
}

// RecommendRequest ranks catalog jobs for a resume. Either ResumeText or Skills must be set;
// when both are present the explicit skills win.
type RecommendRequest struct {
	ResumeText string   `json:"resume_text,omitempty" validate:"required_without=Skills"`
	Skills     []string `json:"skills,omitempty" validate:"required_without=ResumeText,dive,required"`
	Prompt     string   `json:"prompt,omitempty" validate:"max=200"`
	MinScore   int      `json:"min_score,omitempty" validate:"lte=100"`
}

// RecommendResponse is the ranked job list together with the skills used to rank it.
type RecommendResponse struct {
	Skills []string    `json:"skills"`
	Jobs   []ScoredJob `json:"jobs"`
}

// ScoreRequest scores one resume against one job description, given inline or by URL.
type ScoreRequest struct {
	ResumeText     string `json:"resume_text" validate:"required"`
	JobDescription string `json:"job_description,omitempty" validate:"required_without=JobURL"`
	JobURL         string `json:"job_url,omitempty" validate:"omitempty,url"`
	Potential      bool   `json:"potential,omitempty"`
}

// ScoreResponse is an analysis plus the presentation helpers derived from it.
type ScoreResponse struct {
	Analysis  *AnalysisResult   `json:"analysis"`
	Plan      []string          `json:"plan"`
	Insights  []CategoryInsight `json:"insights"`
	Summary   string            `json:"summary"`
	Potential *Potential        `json:"potential,omitempty"`
	Source    string            `json:"source,omitempty"`
}

// BatchRequest scores one resume against several job descriptions.
type BatchRequest struct {
	ResumeText      string   `json:"resume_text" validate:"required"`
	JobDescriptions []string `json:"job_descriptions" validate:"required,min=1,max=50,dive,required"`
}

// BatchResponse holds one analysis per job description, in request order.
type BatchResponse struct {
	Results []*AnalysisResult `json:"results"`
}

// validate reports fields by their JSON names so errors match the request body.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate validates the ExtractSkillsRequest using the validator.
func (r *ExtractSkillsRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the RecommendRequest using the validator.
func (r *RecommendRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ScoreRequest using the validator.
func (r *ScoreRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the BatchRequest using the validator.
func (r *BatchRequest) Validate() error {
	return validate.Struct(r)
}
