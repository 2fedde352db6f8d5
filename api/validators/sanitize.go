package validators

import "strings"

// SanitizeString trims surrounding whitespace and caps the result at maxLen
// bytes. A maxLen of zero means no cap.
func SanitizeString(value string, maxLen int) string {
	cleaned := strings.TrimSpace(value)
	if maxLen > 0 && len(cleaned) > maxLen {
		cleaned = strings.TrimSpace(cleaned[:maxLen])
	}
	return cleaned
}
