package common

const (
	RedisStreamRiskAlerts = "radar.alerts"

	// Defaults applied to loosely shaped corpus records.
	DefaultNewsSource = "东方财富"
	UnknownStockCode  = "000000"
	UnknownIndustry   = "unknown"
	UntitledNews      = "Untitled news"

	DateTimeLayout = "2006-01-02 15:04:05"
	ReportLayout   = "2006-01-02 15:04"
)
