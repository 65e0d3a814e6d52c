package dto

import "time"

// Publisher describes the outlet an article came from.
type Publisher struct {
	Name        string `json:"name"`
	HomepageURL string `json:"homepage_url"`
	LogoURL     string `json:"logo_url"`
}

// Article is a scraped article queued for analysis.
type Article struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	URL         string     `json:"article_url"`
	ImageURL    string     `json:"image_url"`
	Authors     []string   `json:"authors"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Publisher   Publisher  `json:"publisher"`
	Content     string     `json:"content"`
}
