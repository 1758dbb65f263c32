package listing

import "regexp"

var markupPattern = regexp.MustCompile(`<[^>]*>`)

// StripMarkup removes every HTML tag from s. Search APIs wrap matched terms in <b> tags.
func StripMarkup(s string) string {
	return markupPattern.ReplaceAllString(s, "")
}
