package dto

// GenerateBriefRequest is the body of POST /api/generate_brief.
type GenerateBriefRequest struct {
	NewsID      int    `json:"news_id"`
	NewsTitle   string `json:"news_title"`
	NewsContent string `json:"news_content"`
	StockCode   string `json:"stock_code"`
	StockName   string `json:"stock_name"`
}

// GenerateBriefResponse carries the briefing rendered for one article.
type GenerateBriefResponse struct {
	NewsID        int    `json:"news_id"`
	BriefTitle    string `json:"brief_title"`
	BriefContent  string `json:"brief_content"`
	GeneratedTime string `json:"generated_time"`
}

// SentimentRequest is the body of POST /api/sentiment.
type SentimentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
