package utils

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
)

// CleanToValidUTF8 drops invalid byte sequences.
func CleanToValidUTF8(s string) string {
	return strings.ToValidUTF8(s, "")
}

// SafeText removes control characters and collapses runs of whitespace.
func SafeText(s string) string {
	s = CleanToValidUTF8(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// TruncateRunes cuts s to at most n runes, appending "..." when it was cut.
func TruncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// LooksLikeHTML reports whether s carries markup worth stripping.
func LooksLikeHTML(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(lower, "</") || strings.Contains(lower, "<br") || strings.Contains(lower, "<p>")
}

// HTMLToText reduces markup to plain text. Full documents go through
// readability first so navigation and footers are dropped.
func HTMLToText(raw string) string {
	content := raw
	lower := strings.ToLower(raw)
	if strings.Contains(lower, "<html") || strings.Contains(lower, "<body") {
		if doc, err := readability.NewDocument(raw); err == nil {
			if extracted := doc.Content(); strings.TrimSpace(extracted) != "" {
				content = extracted
			}
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return SafeText(raw)
	}
	return SafeText(doc.Text())
}

// ContainsString reports whether target is in list.
func ContainsString(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}
