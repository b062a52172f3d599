package events

import (
	"html"
	"strings"
)

// bulletMarkers are the line prefixes recognized as list items.
var bulletMarkers = []string{"- ", "* ", "• ", "– ", "— "}

// extractBulletText returns the text after a bullet marker, or ok=false when
// the line is not a bullet.
func extractBulletText(line string) (string, bool) {
	stripped := strings.TrimLeft(line, " \t")
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(stripped, marker) {
			return strings.TrimSpace(stripped[len(marker):]), true
		}
	}
	return "", false
}

// FormatDescriptionHTML converts line-based plain text from the spreadsheet
// into the restricted markup subset the events platform accepts.
//
// Blank lines separate paragraphs. A paragraph whose every line is a bullet
// becomes <ul><li>…</li></ul>; anything else becomes <p> with <br/> joining
// its lines. Content is HTML-escaped.
func FormatDescriptionHTML(raw string) string {
	if raw == "" {
		return ""
	}

	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return ""
	}

	var paragraphs [][]string
	var current []string
	for _, line := range strings.Split(normalized, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				paragraphs = append(paragraphs, current)
				current = nil
			}
			continue
		}
		current = append(current, strings.TrimRight(line, " \t"))
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, current)
	}

	var b strings.Builder
	for _, para := range paragraphs {
		bullets := make([]string, 0, len(para))
		allBullets := true
		for _, line := range para {
			text, ok := extractBulletText(line)
			if !ok {
				allBullets = false
				break
			}
			bullets = append(bullets, html.EscapeString(text))
		}

		if allBullets && len(bullets) > 0 {
			b.WriteString("<ul>")
			for _, item := range bullets {
				b.WriteString("<li>")
				b.WriteString(item)
				b.WriteString("</li>")
			}
			b.WriteString("</ul>")
			continue
		}

		escaped := make([]string, 0, len(para))
		for _, line := range para {
			escaped = append(escaped, html.EscapeString(strings.TrimSpace(line)))
		}
		b.WriteString("<p>")
		b.WriteString(strings.Join(escaped, "<br/>"))
		b.WriteString("</p>")
	}
	return b.String()
}
