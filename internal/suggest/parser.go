package suggest

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	smartQuotes      = strings.NewReplacer("“", "", "”", "", "‘", "", "’", "")
	paddedSeparators = regexp.MustCompile(`\s*\|\|\s*`)
)

// FallbackQuestions is what ParseQuestions returns when nothing usable survives.
func FallbackQuestions() []string {
	return []string{
		"What's your favorite movie?",
		"Do you have any pets?",
		"What's your dream job?",
	}
}

// ParseQuestions turns a delimited question string into displayable
// questions. It never fails: segments of five characters or fewer are
// dropped and an empty result is replaced by FallbackQuestions.
func ParseQuestions(raw string) []string {
	cleaned := smartQuotes.Replace(raw)
	cleaned = paddedSeparators.ReplaceAllString(cleaned, Separator)
	cleaned = strings.TrimSpace(cleaned)

	var out []string
	for _, segment := range strings.Split(cleaned, Separator) {
		q := strings.TrimSpace(segment)
		if !strings.HasSuffix(q, "?") {
			q += "?"
		}
		if utf8.RuneCountInString(q) <= 5 {
			continue
		}
		out = append(out, q)
	}
	if len(out) == 0 {
		return FallbackQuestions()
	}
	return out
}
