package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-matcher/internal/catalog"
	"github.com/jonathan/ats-matcher/internal/server/middleware"
	"github.com/jonathan/ats-matcher/internal/types"
)

const testResume = `Jane Doe
jane@example.com | (555) 123-4567

Summary
Senior software engineer with 6 years of experience building JavaScript and Python services.

Experience
- Built React and Node.js applications on AWS
- Led migration to Docker and Kubernetes

Skills
JavaScript, TypeScript, React, Node.js, Python, SQL, Git, AWS

Education
Bachelor of Science in Computer Science`

const testJob = `Senior Software Engineer. We need JavaScript, React, Node.js, AWS and SQL experience.
Bachelor degree in computer science preferred.`

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.MustDefault()
	}
	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.2.1:1234"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestNew_RequiresCatalog(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, Config{})

	w := doJSON(t, s.Handler(), http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string]any](t, w)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, float64(5), resp["jobs"])
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestListJobs(t *testing.T) {
	s := newTestServer(t, Config{})

	w := doJSON(t, s.Handler(), http.MethodGet, "/jobs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]types.JobPosting](t, w), 5)

	w = doJSON(t, s.Handler(), http.MethodGet, "/jobs?q=data", nil)
	require.Equal(t, http.StatusOK, w.Code)
	jobs := decode[[]types.JobPosting](t, w)
	require.NotEmpty(t, jobs)
	for _, j := range jobs {
		hay := strings.ToLower(j.Title + " " + j.Company + " " + j.Role)
		assert.Contains(t, hay, "data")
	}
}

func TestGetJob(t *testing.T) {
	s := newTestServer(t, Config{})

	w := doJSON(t, s.Handler(), http.MethodGet, "/jobs/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	job := decode[types.JobPosting](t, w)
	assert.Equal(t, "Full Stack Software Engineer", job.Title)
	assert.NotEmpty(t, job.Skills)

	w = doJSON(t, s.Handler(), http.MethodGet, "/jobs/404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["error"], "job not found")
}

func TestExtractSkills(t *testing.T) {
	s := newTestServer(t, Config{})

	w := doJSON(t, s.Handler(), http.MethodPost, "/skills/extract", types.ExtractSkillsRequest{ResumeText: testResume})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[types.SkillsResponse](t, w)
	assert.Contains(t, resp.Skills, "JavaScript")
	assert.Contains(t, resp.Skills, "Node.js")
	assert.Contains(t, resp.Skills, "SQL")
}

func TestExtractSkills_Validation(t *testing.T) {
	s := newTestServer(t, Config{})

	w := doJSON(t, s.Handler(), http.MethodPost, "/skills/extract", map[string]string{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["error"], "resume_text")

	w = doJSON(t, s.Handler(), http.MethodPost, "/skills/extract", `{"resume_text": "x", "extra": 1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, s.Handler(), http.MethodPost, "/skills/extract", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendations_BySkills(t *testing.T) {
	s := newTestServer(t, Config{})

	req := types.RecommendRequest{Skills: []string{"JavaScript", "TypeScript", "React", "Node.js", "Python", "SQL", "Git", "AWS"}}
	w := doJSON(t, s.Handler(), http.MethodPost, "/recommendations", req)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[types.RecommendResponse](t, w)
	require.Len(t, resp.Jobs, 1)
	assert.Equal(t, "2", resp.Jobs[0].ID)
	assert.Equal(t, 62, resp.Jobs[0].MatchScore)
}

func TestRecommendations_ByResumeText(t *testing.T) {
	s := newTestServer(t, Config{})

	w := doJSON(t, s.Handler(), http.MethodPost, "/recommendations",
		types.RecommendRequest{ResumeText: testResume, MinScore: -1})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[types.RecommendResponse](t, w)
	assert.NotEmpty(t, resp.Skills)
	assert.Len(t, resp.Jobs, 5)
	for i := 1; i < len(resp.Jobs); i++ {
		assert.GreaterOrEqual(t, resp.Jobs[i-1].MatchScore, resp.Jobs[i].MatchScore)
	}
}

func TestRecommendations_RequiresInput(t *testing.T) {
	s := newTestServer(t, Config{})

	w := doJSON(t, s.Handler(), http.MethodPost, "/recommendations", types.RecommendRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScore_Inline(t *testing.T) {
	s := newTestServer(t, Config{})

	w := doJSON(t, s.Handler(), http.MethodPost, "/ats/score",
		types.ScoreRequest{ResumeText: testResume, JobDescription: testJob})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[types.ScoreResponse](t, w)
	require.NotNil(t, resp.Analysis)
	assert.GreaterOrEqual(t, resp.Analysis.Score, 0)
	assert.LessOrEqual(t, resp.Analysis.Score, 100)
	assert.Equal(t, resp.Analysis.Score, resp.Analysis.Breakdown.Overall)
	assert.NotEmpty(t, resp.Plan)
	assert.Len(t, resp.Insights, 5)
	assert.Contains(t, resp.Summary, "/100")
	assert.Equal(t, "inline", resp.Source)
	assert.Nil(t, resp.Potential)
}

func TestScore_WithPotential(t *testing.T) {
	s := newTestServer(t, Config{})

	w := doJSON(t, s.Handler(), http.MethodPost, "/ats/score",
		types.ScoreRequest{ResumeText: testResume, JobDescription: testJob, Potential: true})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[types.ScoreResponse](t, w)
	require.NotNil(t, resp.Potential)
	assert.Equal(t, resp.Analysis.Score, resp.Potential.Current)
	assert.GreaterOrEqual(t, resp.Potential.Potential, resp.Potential.Current)
}

func TestScore_JobURL(t *testing.T) {
	posting := strings.Repeat("We are hiring a senior engineer with React, Node.js and AWS experience. ", 12)
	board := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><nav>Menu</nav><main><h1>Senior Engineer</h1><p>" + posting + "</p></main></body></html>"))
	}))
	defer board.Close()

	s := newTestServer(t, Config{AllowPrivateNetworks: true})
	w := doJSON(t, s.Handler(), http.MethodPost, "/ats/score",
		types.ScoreRequest{ResumeText: testResume, JobURL: board.URL + "/jobs/1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[types.ScoreResponse](t, w)
	assert.Equal(t, board.URL+"/jobs/1", resp.Source)
	assert.Greater(t, resp.Analysis.Breakdown.Keywords.Score, 10)
}

func TestScore_JobURLUpstreamFailure(t *testing.T) {
	board := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer board.Close()

	s := newTestServer(t, Config{AllowPrivateNetworks: true})
	w := doJSON(t, s.Handler(), http.MethodPost, "/ats/score",
		types.ScoreRequest{ResumeText: testResume, JobURL: board.URL + "/missing"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestScore_JobURLRefusesInternalAddresses(t *testing.T) {
	var hit atomic.Bool
	internal := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		hit.Store(true)
	}))
	defer internal.Close()

	s := newTestServer(t, Config{})
	for _, path := range []string{"/ats/score", "/ats/potential"} {
		for _, target := range []string{internal.URL + "/", "http://169.254.169.254/latest/meta-data/"} {
			w := doJSON(t, s.Handler(), http.MethodPost, path,
				types.ScoreRequest{ResumeText: testResume, JobURL: target})
			assert.Equal(t, http.StatusBadRequest, w.Code, "%s %s: %s", path, target, w.Body.String())
			assert.Contains(t, w.Body.String(), "non-public address")
		}
	}
	assert.False(t, hit.Load(), "server fetched a loopback URL")
}

func TestScore_Validation(t *testing.T) {
	s := newTestServer(t, Config{})

	tests := []struct {
		name      string
		req       types.ScoreRequest
		wantField string
	}{
		{name: "missing resume", req: types.ScoreRequest{JobDescription: testJob}, wantField: "resume_text"},
		{name: "missing job", req: types.ScoreRequest{ResumeText: testResume}, wantField: "job_description"},
		{name: "bad url", req: types.ScoreRequest{ResumeText: testResume, JobURL: "nope"}, wantField: "job_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, s.Handler(), http.MethodPost, "/ats/score", tt.req)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decode[map[string]string](t, w)["error"], tt.wantField)
		})
	}
}

func TestScore_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t, Config{})

	w := doJSON(t, s.Handler(), http.MethodGet, "/ats/score", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestPotential(t *testing.T) {
	s := newTestServer(t, Config{})

	w := doJSON(t, s.Handler(), http.MethodPost, "/ats/potential",
		types.ScoreRequest{ResumeText: testResume, JobDescription: testJob})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[types.Potential](t, w)
	assert.GreaterOrEqual(t, resp.Potential, resp.Current)
	assert.Len(t, resp.Categories, 5)
}

func TestBatch(t *testing.T) {
	s := newTestServer(t, Config{Concurrency: 2})

	jobs := []string{testJob, "Data analyst with SQL and Tableau", "Product designer fluent in Figma"}
	w := doJSON(t, s.Handler(), http.MethodPost, "/ats/batch",
		types.BatchRequest{ResumeText: testResume, JobDescriptions: jobs})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[types.BatchResponse](t, w)
	require.Len(t, resp.Results, 3)
	assert.Greater(t, resp.Results[0].Score, resp.Results[2].Score)

	w = doJSON(t, s.Handler(), http.MethodPost, "/ats/batch", types.BatchRequest{ResumeText: testResume})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func multipartUpload(t *testing.T, fields map[string]string, fileName string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("resume", fileName)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/ats/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUpload(t *testing.T) {
	s := newTestServer(t, Config{})

	req := multipartUpload(t, map[string]string{"job_description": testJob, "potential": "true"}, "resume.txt", []byte(testResume))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[UploadResponse](t, w)
	require.NotNil(t, resp.Analysis)
	require.NotNil(t, resp.Resume)
	require.NotNil(t, resp.Potential)
	assert.Equal(t, "resume.txt", resp.Resume.Source)
	assert.EqualValues(t, "txt", resp.Resume.Format)
	assert.Positive(t, resp.Resume.WordCount)
}

func TestUpload_Errors(t *testing.T) {
	s := newTestServer(t, Config{})

	tests := []struct {
		name       string
		req        *http.Request
		wantStatus int
	}{
		{
			name:       "unsupported format",
			req:        multipartUpload(t, map[string]string{"job_description": testJob}, "resume.exe", []byte{0x4d, 0x5a, 0x00, 0x01}),
			wantStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:       "missing file",
			req:        multipartUpload(t, map[string]string{"job_description": testJob}, "", nil),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing job",
			req:        multipartUpload(t, nil, "resume.txt", []byte(testResume)),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not multipart",
			req:        httptest.NewRequest(http.MethodPost, "/ats/upload", strings.NewReader("plain")),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, tt.req)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, Config{AllowedOrigins: []string{"https://app.example.com"}})

	req := httptest.NewRequest(http.MethodOptions, "/ats/score", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, Config{RateLimit: 1, Burst: 1})
	body := types.ExtractSkillsRequest{ResumeText: "SQL"}

	w := doJSON(t, s.Handler(), http.MethodPost, "/skills/extract", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "60", w.Header().Get("X-RateLimit-Limit"))

	w = doJSON(t, s.Handler(), http.MethodPost, "/skills/extract", body)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decode[map[string]any](t, w)["error"])

	// Health checks are never limited
	for i := 0; i < 3; i++ {
		w = doJSON(t, s.Handler(), http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimit_KeyedByRoute(t *testing.T) {
	s := newTestServer(t, Config{RateLimit: 1, Burst: 1})

	w := doJSON(t, s.Handler(), http.MethodGet, "/jobs/no-such-job-0", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	for i := 1; i <= 20; i++ {
		w = doJSON(t, s.Handler(), http.MethodGet, fmt.Sprintf("/jobs/no-such-job-%d", i), nil)
		require.Equal(t, http.StatusTooManyRequests, w.Code, "request %d", i)
	}
	assert.Equal(t, 1, s.rateLimiter.Len())

	// Unrouted paths share one bucket too
	for i := 0; i < 5; i++ {
		doJSON(t, s.Handler(), http.MethodGet, fmt.Sprintf("/random-%d", i), nil)
	}
	assert.Equal(t, 2, s.rateLimiter.Len())
}

func TestRouteKey(t *testing.T) {
	s := newTestServer(t, Config{})

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/jobs/abc", "/jobs/{id}"},
		{http.MethodGet, "/jobs", "/jobs"},
		{http.MethodPost, "/ats/upload", "/ats/upload"},
		{http.MethodGet, "/does/not/exist", unmatchedRoute},
		{http.MethodDelete, "/jobs/abc", unmatchedRoute},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, tt.path, nil)
			assert.Equal(t, tt.want, s.routeKey(r))
		})
	}
}
