package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jonathan/ats-matcher/internal/ats"
	"github.com/jonathan/ats-matcher/internal/ingestion"
	"github.com/jonathan/ats-matcher/internal/logger"
	"github.com/jonathan/ats-matcher/internal/matching"
	"github.com/jonathan/ats-matcher/internal/skills"
	"github.com/jonathan/ats-matcher/internal/types"
)

// multipartMemory is how much of an upload is buffered in memory before spilling to disk.
const multipartMemory = 1 << 20

// UploadResponse is a ScoreResponse plus details about the uploaded resume.
type UploadResponse struct {
	types.ScoreResponse
	Resume *ingestion.Metadata `json:"resume"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, r, http.StatusOK, map[string]any{
		"status": "ok",
		"jobs":   len(s.catalog.Jobs),
		"skills": s.catalog.SkillCount(),
	})
}

// handleListJobs returns catalog postings, optionally filtered by ?q=.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	jobs := make([]types.JobPosting, 0, len(s.catalog.Jobs))
	for _, j := range s.catalog.Jobs {
		if q == "" ||
			strings.Contains(strings.ToLower(j.Title), q) ||
			strings.Contains(strings.ToLower(j.Company), q) ||
			strings.Contains(strings.ToLower(j.Role), q) {
			jobs = append(jobs, j)
		}
	}
	s.jsonResponse(w, r, http.StatusOK, jobs)
}

// handleGetJob returns one catalog posting.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	job, ok := s.catalog.Job(id)
	if !ok {
		s.fail(w, r, &ErrNotFound{Kind: "job", ID: id})
		return
	}
	s.jsonResponse(w, r, http.StatusOK, job)
}

// handleExtractSkills lists the catalog skills found in a resume.
func (s *Server) handleExtractSkills(w http.ResponseWriter, r *http.Request) {
	var req types.ExtractSkillsRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusOK, types.SkillsResponse{
		Skills: skills.Extract(s.catalog, req.ResumeText),
	})
}

// handleRecommendations ranks catalog jobs for a resume or skill list.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req types.RecommendRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	resumeSkills := req.Skills
	if len(resumeSkills) == 0 {
		resumeSkills = skills.Extract(s.catalog, req.ResumeText)
	}
	jobs := matching.Recommend(s.catalog, resumeSkills, matching.Options{
		Prompt:   req.Prompt,
		MinScore: req.MinScore,
	})

	s.jsonResponse(w, r, http.StatusOK, types.RecommendResponse{Skills: resumeSkills, Jobs: jobs})
}

// handleScore runs the ATS analysis for a resume and an inline or remote job description.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	job, source, err := s.resolveJob(r.Context(), req.JobDescription, req.JobURL)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.jsonResponse(w, r, http.StatusOK, buildScoreResponse(req.ResumeText, job, source, req.Potential))
}

// handlePotential returns only the improvement estimate for a resume/job pair.
func (s *Server) handlePotential(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	job, _, err := s.resolveJob(r.Context(), req.JobDescription, req.JobURL)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.jsonResponse(w, r, http.StatusOK, ats.Potential(ats.Analyze(req.ResumeText, job)))
}

// handleBatch scores one resume against several job descriptions.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req types.BatchRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	results, err := ats.AnalyzeBatch(r.Context(), req.ResumeText, req.JobDescriptions, s.concurrency)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusOK, types.BatchResponse{Results: results})
}

// handleUpload scores an uploaded resume file (multipart field "resume") against
// the "job_description" or "job_url" form value.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, ingestion.MaxFileSize+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, r, &ingestion.Error{Name: "upload", Err: ingestion.ErrFileTooLarge})
			return
		}
		s.fail(w, r, &ErrValidation{Field: "body", Message: "expected multipart form: " + err.Error()})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.fail(w, r, &ErrValidation{Field: "resume", Message: "a resume file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := ingestion.ReadLimited(file)
	if err != nil {
		s.fail(w, r, &ingestion.Error{Name: header.Filename, Err: err})
		return
	}
	resume, meta, err := ingestion.FromBytes(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	jobDescription := strings.TrimSpace(r.FormValue("job_description"))
	jobURL := strings.TrimSpace(r.FormValue("job_url"))
	if jobDescription == "" && jobURL == "" {
		s.fail(w, r, &ErrValidation{Field: "job_description", Message: "is required when job_url is not set"})
		return
	}

	job, source, err := s.resolveJob(r.Context(), jobDescription, jobURL)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	logger.Ctx(r.Context()).Info().
		Str("file", header.Filename).
		Str("format", string(meta.Format)).
		Int("words", meta.WordCount).
		Msg("resume uploaded")

	s.jsonResponse(w, r, http.StatusOK, UploadResponse{
		ScoreResponse: buildScoreResponse(resume, job, source, r.FormValue("potential") == "true"),
		Resume:        meta,
	})
}

// resolveJob returns the job description text and where it came from.
// Inline text wins over a URL.
func (s *Server) resolveJob(ctx context.Context, description, url string) (string, string, error) {
	if strings.TrimSpace(description) != "" {
		return description, "inline", nil
	}
	text, _, err := ingestion.FromURL(ctx, url, s.jobOptions)
	if err != nil {
		return "", "", err
	}
	return text, url, nil
}

func buildScoreResponse(resume, job, source string, withPotential bool) types.ScoreResponse {
	result := ats.Analyze(resume, job)
	resp := types.ScoreResponse{
		Analysis: result,
		Plan:     ats.GenerateRecommendations(result),
		Insights: ats.Insights(result.Breakdown),
		Summary:  ats.Summary(result),
		Source:   source,
	}
	if withPotential {
		p := ats.Potential(result)
		resp.Potential = &p
	}
	return resp
}
