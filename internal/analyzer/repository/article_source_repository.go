package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang-news-insight/internal/analyzer/config"
	"golang-news-insight/internal/analyzer/dto"
	"golang-news-insight/pkg/logger"
	"golang-news-insight/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
	"github.com/mmcdole/gofeed"
)

// ArticleSourceRepository reads article metadata from feeds and bodies from article pages.
type ArticleSourceRepository interface {
	FetchFeed(ctx context.Context, feedURL string) ([]dto.Article, error)
	FetchContent(ctx context.Context, articleURL string) (string, error)
}

type articleSourceRepository struct {
	client *http.Client
	parser *gofeed.Parser
	logger *logger.Logger
}

// NewArticleSourceRepository creates a feed and page reader.
func NewArticleSourceRepository(cfg *config.Config, log *logger.Logger) ArticleSourceRepository {
	client := &http.Client{Timeout: timeoutOrDefault(cfg.Scraper.RequestTimeout, 20*time.Second)}
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = userAgent
	return &articleSourceRepository{client: client, parser: parser, logger: log}
}

func (r *articleSourceRepository) FetchFeed(ctx context.Context, feedURL string) ([]dto.Article, error) {
	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to parse RSS feed", logger.ErrorField(err), logger.StringField("url", feedURL))
		return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
	}

	publisher := dto.Publisher{Name: feed.Title, HomepageURL: feed.Link}
	if feed.Image != nil {
		publisher.LogoURL = feed.Image.URL
	}

	articles := make([]dto.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil || item.Link == "" {
			continue
		}
		article := dto.Article{
			Title:       utils.CleanToValidUTF8(strings.TrimSpace(item.Title)),
			Description: htmlToText(item.Description),
			URL:         item.Link,
			ImageURL:    itemImage(item),
			Authors:     []string{},
			PublishedAt: item.PublishedParsed,
			Publisher:   publisher,
		}
		if article.PublishedAt == nil {
			article.PublishedAt = item.UpdatedParsed
		}
		for _, a := range item.Authors {
			if a != nil && a.Name != "" {
				article.Authors = append(article.Authors, a.Name)
			}
		}
		articles = append(articles, article)
	}
	return articles, nil
}

// itemImage tries the item image, then image enclosures, then media thumbnails.
func itemImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}
	if media, ok := item.Extensions["media"]; ok {
		for _, key := range []string{"thumbnail", "content"} {
			for _, ext := range media[key] {
				if u := ext.Attrs["url"]; u != "" {
					return u
				}
			}
		}
	}
	return ""
}

func (r *articleSourceRepository) FetchContent(ctx context.Context, articleURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for news item: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to fetch news content", logger.ErrorField(err), logger.StringField("url", articleURL))
		return "", fmt.Errorf("failed to fetch news content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "Failed to fetch news content with non-200 status", logger.IntField("status", resp.StatusCode), logger.StringField("url", articleURL))
		return "", fmt.Errorf("%w: news content returned %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	doc, err := readability.NewDocument(string(body))
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to parse news content", logger.ErrorField(err), logger.StringField("url", articleURL))
		return "", fmt.Errorf("failed to parse news content: %w", err)
	}
	return htmlToText(doc.Content()), nil
}

// htmlToText joins paragraph texts with spaces, falling back to the full document text.
func htmlToText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	docHTML, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return utils.SafeText(strings.TrimSpace(html))
	}

	var parts []string
	docHTML.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	text := strings.Join(parts, " ")
	if text == "" {
		text = docHTML.Text()
	}
	return utils.SafeText(strings.Join(strings.Fields(text), " "))
}
