package dto

// SourceInfo describes which corpus the loader would use right now.
type SourceInfo struct {
	Path         string `json:"path"`
	UsedSeed     bool   `json:"used_seed"`
	ArticleCount int    `json:"article_count"`
	Timestamp    string `json:"timestamp"`
	Reason       string `json:"reason,omitempty"`
	Modified     string `json:"modified,omitempty"`
	Size         string `json:"size,omitempty"`
}

// AnalyzerStatus reports scorer usage.
type AnalyzerStatus struct {
	Method        string `json:"method"`
	AnalyzedCount int64  `json:"analyzed_count"`
}

// GeneratorStatus reports narrative generator usage.
type GeneratorStatus struct {
	GeneratedCount int64  `json:"generated_count"`
	LastGenerated  string `json:"last_generated,omitempty"`
}

// StatusResponse is the body of GET /api/status.
type StatusResponse struct {
	Analyzer  AnalyzerStatus  `json:"analyzer"`
	Generator GeneratorStatus `json:"generator"`
	Source    SourceInfo      `json:"source"`
}
