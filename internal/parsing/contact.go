package parsing

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-profiler/internal/types"
)

var (
	emailRE     = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRE     = regexp.MustCompile(`\+?\d[\d\s().-]{7,}\d`)
	urlRE       = regexp.MustCompile(`https?://\S+|www\.\S+`)
	nameTokenRE = regexp.MustCompile(`^[A-Za-z.-]+$`)
)

const (
	emailConfidence = 0.99
	phoneConfidence = 0.85
	linksConfidence = 0.90
	nameConfidence  = 0.6

	nameScanLines = 5
)

// RegexContactExtractor pulls name, email, phone and profile links out of the whole document.
type RegexContactExtractor struct{}

// Extract scans every line for contact details.
func (RegexContactExtractor) Extract(lines []string) types.ContactResult {
	text := strings.Join(lines, "\n")

	contact := types.Contact{Links: types.Links{Other: []string{}}}
	confidence := map[string]float64{"name": 0, "email": 0, "phone": 0, "links": 0}

	if m := emailRE.FindString(text); m != "" {
		contact.Email = types.StringPtr(m)
		confidence["email"] = emailConfidence
	}
	if m := phoneRE.FindString(text); m != "" {
		contact.Phone = types.StringPtr(m)
		confidence["phone"] = phoneConfidence
	}

	urls := urlRE.FindAllString(text, -1)
	for _, u := range urls {
		lower := strings.ToLower(u)
		switch {
		case strings.Contains(lower, "linkedin.com"):
			contact.Links.LinkedIn = types.StringPtr(u)
		case strings.Contains(lower, "github.com"):
			contact.Links.GitHub = types.StringPtr(u)
		default:
			contact.Links.Other = append(contact.Links.Other, u)
		}
	}
	if len(urls) > 0 {
		confidence["links"] = linksConfidence
	}

	if name, ok := guessName(lines, types.Deref(contact.Email), types.Deref(contact.Phone)); ok {
		contact.Name = types.StringPtr(name)
		confidence["name"] = nameConfidence
	}

	return types.ContactResult{Contact: contact, Confidence: confidence}
}

// guessName returns the first of the opening lines that reads like a person's name.
func guessName(lines []string, email, phone string) (string, bool) {
	limit := min(len(lines), nameScanLines)
	for _, line := range lines[:limit] {
		if email != "" && strings.Contains(line, email) {
			continue
		}
		if phone != "" && strings.Contains(line, phone) {
			continue
		}
		if urlRE.MatchString(line) {
			continue
		}
		if looksLikeName(line) {
			return line, true
		}
	}
	return "", false
}

func looksLikeName(line string) bool {
	tokens := strings.Fields(line)
	if len(tokens) < 2 || len(tokens) > 4 {
		return false
	}
	for _, tok := range tokens {
		if !nameTokenRE.MatchString(tok) {
			return false
		}
		if !unicode.IsUpper(rune(tok[0])) {
			return false
		}
	}
	return true
}
