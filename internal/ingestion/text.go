package ingestion

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxJoinRunes is the longest line that may be merged with its neighbour.
const maxJoinRunes = 20

var (
	bulletReplacer = strings.NewReplacer(
		"•", "-",
		"*", "-",
		"‣", "-",
		"◦", "-",
		"▪", "-",
		"_", "-",
		"·", "-",
	)
	horizontalSpaceRE = regexp.MustCompile(`[ \t]+`)
	blankRunRE        = regexp.MustCompile(`\n{3,}`)
)

// Preprocess normalizes raw document text into the ordered, trimmed,
// non-empty lines the parser consumes.
//
// Carriage returns become newlines, bullet glyphs become "-", runs of spaces
// and tabs collapse to one space. Two adjacent short purely alphabetic lines
// are merged into one ("Jane" + "Doe" -> "Jane Doe"); merging is pairwise and
// never chains.
func Preprocess(raw string) []string {
	if raw == "" {
		return []string{}
	}

	text := strings.ReplaceAll(raw, "\r", "\n")
	text = bulletReplacer.Replace(text)
	text = horizontalSpaceRE.ReplaceAllString(text, " ")
	text = blankRunRE.ReplaceAllString(text, "\n\n")

	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			lines = append(lines, ln)
		}
	}

	joined := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		cur := lines[i]
		if i+1 < len(lines) && isShortWord(cur) && isShortWord(lines[i+1]) {
			joined = append(joined, cur+" "+lines[i+1])
			i++
			continue
		}
		joined = append(joined, cur)
	}
	return joined
}

// isShortWord reports whether s is at most maxJoinRunes letters and nothing else.
func isShortWord(s string) bool {
	if s == "" || utf8.RuneCountInString(s) > maxJoinRunes {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
