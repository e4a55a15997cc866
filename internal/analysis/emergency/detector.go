// Package emergency flags user messages that may describe a medical
// emergency. It is a recall-oriented keyword heuristic, not a classifier:
// false positives and false negatives are both expected.
package emergency

import "strings"

// keywords are matched as lowercase substrings. The Hindi phrases cover the
// same symptoms for users typing in Devanagari.
var keywords = []string{
	"chest pain", "difficulty breathing", "shortness of breath", "severe pain",
	"unconscious", "heart attack", "stroke", "bleeding heavily",
	"सीने में दर्द", "सांस लेने में दिक्कत", "बेहोशी", "तेज दर्द",
}

// Detect reports whether text contains any emergency keyword,
// case-insensitively.
func Detect(text string) bool {
	normalized := strings.ToLower(text)
	if strings.TrimSpace(normalized) == "" {
		return false
	}

	for _, word := range keywords {
		if strings.Contains(normalized, word) {
			return true
		}
	}
	return false
}

// Keywords returns a copy of the keyword list.
func Keywords() []string {
	return append([]string(nil), keywords...)
}
