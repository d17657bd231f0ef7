package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jobPage = `<html>
<head><title>Acme Careers</title><meta property="og:title" content="Senior Go Engineer"></head>
<body>
<nav>Home | Jobs</nav>
<h1>Senior Go Engineer</h1>
<div class="job-description">
<p>We are hiring a Go engineer.</p>
<p>5+ years experience with PostgreSQL and Docker required.</p>
</div>
<footer>Copyright Acme</footer>
</body>
</html>`

func TestExtractPosting(t *testing.T) {
	posting, err := ExtractPosting(jobPage)
	require.NoError(t, err)

	assert.Equal(t, "Senior Go Engineer", posting.Title)
	assert.Contains(t, posting.Description, "We are hiring a Go engineer.")
	assert.Contains(t, posting.Description, "PostgreSQL and Docker")
	assert.NotContains(t, posting.Description, "Copyright")
	assert.NotContains(t, posting.Description, "Home | Jobs")
}

func TestExtractPosting_FallsBackToBody(t *testing.T) {
	posting, err := ExtractPosting(`<html><body><h1>Backend Role</h1><p>Build services.</p></body></html>`)
	require.NoError(t, err)

	assert.Equal(t, "Backend Role", posting.Title)
	assert.Contains(t, posting.Description, "Build services.")
}

func TestExtractPosting_Empty(t *testing.T) {
	_, err := ExtractPosting(`<html><body><script>var x = 1;</script></body></html>`)
	assert.Error(t, err)
}

func TestFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(jobPage))
	}))
	defer srv.Close()

	posting, err := NewFetcher(0).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, srv.URL, posting.URL)
	assert.Equal(t, "Senior Go Engineer", posting.Title)
}

func TestFetcher_Fetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewFetcher(0).Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var ingErr *Error
	require.ErrorAs(t, err, &ingErr)
	assert.Contains(t, ingErr.Message, "404")
}

func TestFetcher_Fetch_InvalidURL(t *testing.T) {
	_, err := NewFetcher(0).Fetch(context.Background(), "not-a-url")
	assert.Error(t, err)
}
