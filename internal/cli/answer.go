package cli

import (
	"strings"
)

// IsCorrectAnswer compares an answer with the target word ignoring case and
// surrounding spaces. A target such as "house, home" accepts either word.
func IsCorrectAnswer(answer, target string) bool {
	answer = normalize(answer)
	if answer == "" {
		return false
	}
	if answer == normalize(target) {
		return true
	}
	for _, alternative := range strings.FieldsFunc(target, func(r rune) bool { return r == ',' || r == ';' || r == '/' }) {
		if answer == normalize(alternative) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
