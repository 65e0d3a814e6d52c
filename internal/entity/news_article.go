package entity

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Publisher is embedded into the news_articles row.
type Publisher struct {
	Name        string `json:"name"`
	HomepageURL string `json:"homepage_url"`
	LogoURL     string `json:"logo_url"`
}

// NewsArticle is an analyzed article together with its ticker insights.
type NewsArticle struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	ArticleURL  string         `gorm:"column:article_url;uniqueIndex;not null" json:"article_url"`
	ImageURL    string         `json:"image_url"`
	Authors     pq.StringArray `gorm:"type:text[]" json:"authors"`
	PublishedAt *time.Time     `gorm:"index" json:"published_at,omitempty"`
	Publisher   Publisher      `gorm:"embedded;embeddedPrefix:publisher_" json:"publisher"`
	Tickers     pq.StringArray `gorm:"type:text[]" json:"tickers"`
	Summary     pq.StringArray `gorm:"type:text[]" json:"summary"`
	Insights    []Insight      `gorm:"foreignKey:NewsArticleID" json:"insights"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the NewsArticle model.
func (NewsArticle) TableName() string {
	return "news_articles"
}

// Insight is the sentiment toward one ticker expressed by one sentence of an article.
type Insight struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	NewsArticleID      uint           `gorm:"index" json:"news_article_id"`
	Ticker             string         `gorm:"index;not null" json:"ticker"`
	Sentiment          string         `gorm:"not null" json:"sentiment"`
	SentimentReasoning string         `gorm:"not null" json:"sentiment_reasoning"`
	SentimentScore     float64        `gorm:"not null" json:"sentiment_score"`
	Confidence         float64        `json:"confidence"`
	Probabilities      datatypes.JSON `json:"probabilities"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (Insight) TableName() string {
	return "insights"
}

// TickerInsight is an insight row joined with its article publication time.
type TickerInsight struct {
	Ticker         string     `json:"ticker"`
	Sentiment      string     `json:"sentiment"`
	SentimentScore float64    `json:"sentiment_score"`
	PublishedAt    *time.Time `json:"published_at"`
}
