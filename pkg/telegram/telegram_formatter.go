package telegram

import (
	"fmt"
	"strings"
	"time"

	"market-risk-radar/internal/entity"
	"market-risk-radar/pkg/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MaxMessageLen keeps each part under Telegram's 4096 byte cap.
const MaxMessageLen = 4090

// FormatAlertsForTelegram renders a run's alerts as Markdown messages, split
// so that no part exceeds MaxMessageLen.
func FormatAlertsForTelegram(runID string, alerts []entity.Alert, dashboard entity.DashboardMetrics) []string {
	summary := fmt.Sprintf("📊 %d news, %d risk (%.1f%%), %d alerts\n🕒 %s\n\n",
		dashboard.TotalNews, dashboard.RiskNewsCount, dashboard.RiskRatio, dashboard.AlertCount, dashboard.UpdateTime)

	if len(alerts) == 0 {
		return []string{"🚨 *Market Risk Alerts*\n\n" + summary + "No risk alerts in this run."}
	}

	var messages []string
	var current strings.Builder
	part := 1

	startNewPart := func() {
		current.Reset()
		if part == 1 {
			current.WriteString("🚨 *Market Risk Alerts*\n\n")
			current.WriteString(summary)
		} else {
			current.WriteString(fmt.Sprintf("---*Market Risk Alerts Part %d*---\n\n", part))
		}
	}

	startNewPart()
	for _, a := range alerts {
		entry := formatAlertEntry(a)
		if current.Len()+len(entry) > MaxMessageLen {
			messages = append(messages, current.String())
			part++
			startNewPart()
		}
		current.WriteString(entry)
	}

	footer := fmt.Sprintf("🆔 run %s", runID)
	if current.Len()+len(footer) > MaxMessageLen {
		messages = append(messages, current.String())
		part++
		startNewPart()
	}
	current.WriteString(footer)
	messages = append(messages, current.String())

	return messages
}

func formatAlertEntry(a entity.Alert) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔴 *[%s]* %s\n", escape(a.StockCode), escape(utils.TruncateRunes(a.Title, 200))))
	b.WriteString(fmt.Sprintf("📉 Score: %.3f | 🎯 Confidence: %.0f%%\n", a.SentimentScore, a.Confidence*100))
	b.WriteString(fmt.Sprintf("🕒 %s\n\n", escape(a.PublishTime)))
	return b.String()
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

// FormatErrorAlertMessage renders an operational failure.
func FormatErrorAlertMessage(t time.Time, errType string, errMsg string, data string) string {
	return fmt.Sprintf("📛 [ERROR ALERT]\n%s\n🔧 %s\n⚠️ %s\n\n📄 Data: %s\n",
		utils.PrettyDate(t), errType, errMsg, data)
}
