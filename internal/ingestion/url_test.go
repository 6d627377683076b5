package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonathan/ats-matcher/internal/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// localJobOptions permits the loopback addresses httptest listens on.
func localJobOptions() *fetch.JobOptions {
	return &fetch.JobOptions{HTTP: &fetch.Options{AllowPrivateNetworks: true}}
}

func TestFromURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>
			<nav>Careers</nav>
			<div class="job-description">
				<h2>Senior Data Analyst</h2>
				<ul><li>SQL and Python</li><li>5+ years of experience</li></ul>
			</div>
		</body></html>`))
	}))
	defer server.Close()

	text, meta, err := FromURL(context.Background(), server.URL, localJobOptions())
	require.NoError(t, err)

	assert.Equal(t, "Senior Data Analyst\n- SQL and Python\n- 5+ years of experience", text)
	assert.Equal(t, server.URL, meta.Source)
	assert.Equal(t, string(fetch.BoardUnknown), meta.Board)
	assert.False(t, meta.Rendered)
}

func TestFromURL_InvalidURL(t *testing.T) {
	_, _, err := FromURL(context.Background(), "not a url", nil)
	require.Error(t, err)

	var fetchErr *fetch.Error
	assert.ErrorAs(t, err, &fetchErr)
}

func TestFromURL_EmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><script>app()</script></body></html>`))
	}))
	defer server.Close()

	_, _, err := FromURL(context.Background(), server.URL, localJobOptions())
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestFromURL_RefusesLoopbackByDefault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>internal admin page</p></body></html>`))
	}))
	defer server.Close()

	_, _, err := FromURL(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, fetch.ErrBlockedAddress)
}
