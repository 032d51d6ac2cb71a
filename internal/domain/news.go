package domain

// NewsArticle is one scraped sports-news headline.
type NewsArticle struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Source      string `json:"source"`
}
