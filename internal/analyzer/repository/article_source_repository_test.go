package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang-news-insight/internal/analyzer/config"
	"golang-news-insight/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/" xmlns:dc="http://purl.org/dc/elements/1.1/">
<channel>
  <title>Example Markets</title>
  <link>https://news.example.com</link>
  <image><url>https://news.example.com/logo.png</url><title>Example Markets</title><link>https://news.example.com</link></image>
  <item>
    <title>  Apple beats estimates  </title>
    <link>%s/apple</link>
    <description><![CDATA[<p>Apple reported record profit.</p><p>Shares rose.</p>]]></description>
    <pubDate>Mon, 04 Mar 2024 09:00:00 GMT</pubDate>
    <dc:creator>Jane Doe</dc:creator>
    <media:thumbnail url="https://img.example.com/apple.jpg"/>
  </item>
  <item>
    <title>Item without link</title>
  </item>
</channel>
</rss>`

var testArticlePage = `<html><head><title>Apple beats estimates</title></head><body>
<nav><a href="/">Home</a> <a href="/markets">Markets</a></nav>
<article>
<p>Apple reported record quarterly revenue on Thursday, driven by strong iPhone sales, growing services income, and a rebound in demand across China and Europe.</p>
<p>Chief executive Tim Cook said the company saw broad strength in every region, adding that wearables, home, and accessories also returned to growth after several weak quarters.</p>
<p>Shares of the company rose in extended trading, as analysts raised their price targets, citing margins, buybacks, and the pipeline of new products expected later this year.</p>
</article>
<footer>Copyright Example News</footer>
</body></html>`

func newTestSourceServer(t *testing.T) *httptest.Server {
	t.Helper()
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/feed":
			w.Header().Set("Content-Type", "application/rss+xml")
			fmt.Fprintf(w, testFeed, server.URL)
		case "/apple":
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, testArticlePage)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestSourceRepository() ArticleSourceRepository {
	return NewArticleSourceRepository(&config.Config{Scraper: config.Scraper{RequestTimeout: 5 * time.Second}}, logger.NewNop())
}

func TestArticleSourceRepository_FetchFeed(t *testing.T) {
	server := newTestSourceServer(t)
	repo := newTestSourceRepository()

	articles, err := repo.FetchFeed(context.Background(), server.URL+"/feed")
	require.NoError(t, err)
	require.Len(t, articles, 1)

	a := articles[0]
	assert.Equal(t, "Apple beats estimates", a.Title)
	assert.Equal(t, server.URL+"/apple", a.URL)
	assert.Equal(t, "Apple reported record profit. Shares rose.", a.Description)
	assert.Equal(t, []string{"Jane Doe"}, a.Authors)
	assert.Equal(t, "https://img.example.com/apple.jpg", a.ImageURL)
	require.NotNil(t, a.PublishedAt)
	assert.True(t, a.PublishedAt.Equal(time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Example Markets", a.Publisher.Name)
	assert.Equal(t, "https://news.example.com", a.Publisher.HomepageURL)
	assert.Equal(t, "https://news.example.com/logo.png", a.Publisher.LogoURL)
}

func TestArticleSourceRepository_FetchFeedError(t *testing.T) {
	server := newTestSourceServer(t)
	_, err := newTestSourceRepository().FetchFeed(context.Background(), server.URL+"/missing")
	assert.Error(t, err)
}

func TestArticleSourceRepository_FetchContent(t *testing.T) {
	server := newTestSourceServer(t)
	repo := newTestSourceRepository()

	content, err := repo.FetchContent(context.Background(), server.URL+"/apple")
	require.NoError(t, err)
	assert.Contains(t, content, "Apple reported record quarterly revenue on Thursday")
	assert.Contains(t, content, "Shares of the company rose in extended trading")
	assert.NotContains(t, content, "<p>")
	assert.False(t, strings.Contains(content, "\n"))

	_, err = repo.FetchContent(context.Background(), server.URL+"/gone")
	assert.True(t, errors.Is(err, ErrUnexpectedStatus))
}

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{name: "empty", html: "  ", want: ""},
		{name: "paragraphs", html: "<p> Apple rose. </p><p></p><p>Microsoft fell.</p>", want: "Apple rose. Microsoft fell."},
		{name: "no paragraphs", html: "<div>Apple\n\n  rose.</div>", want: "Apple rose."},
		{name: "plain text", html: "Apple rose.", want: "Apple rose."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, htmlToText(tt.html))
		})
	}
}
