package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleExtractsBodyAsMarkdown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><head><title>Page Title</title></head><body>
			<nav>Home | Markets</nav>
			<article>
				<h1>Apple beats estimates</h1>
				<p>Revenue came in <strong>ahead</strong> of expectations.</p>
				<script>track();</script>
			</article>
			<footer>Copyright</footer>
		</body></html>`))
	}))
	defer srv.Close()

	c := NewClient(5 * time.Second)
	article, err := c.Article(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Apple beats estimates", article.Title)
	assert.Contains(t, article.Markdown, "**ahead**")
	assert.NotContains(t, article.Markdown, "track()")
	assert.NotContains(t, article.Markdown, "Home | Markets")
}

func TestArticleRejectsNonHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	c := NewClient(5 * time.Second)
	_, err := c.Article(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestArticleStopsOnContextCancel(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := NewClient(10 * time.Second)
	start := time.Now()
	_, err := c.Article(ctx, srv.URL)
	assert.Error(t, err)
	// Cancellation must not wait out the request timeout.
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestArticleRejectsBadScheme(t *testing.T) {
	c := NewClient(5 * time.Second)
	_, err := c.Article(context.Background(), "ftp://example.com/report")
	assert.ErrorIs(t, err, ErrUpstream)
}
