package validator

import (
	"regexp"
	"strings"
)

// forbidden is the denylist stripped from every inbound text field. Removal
// is literal deletion, not escaping, so legitimate words containing a token
// lose it too ("postscript" -> "post").
var forbidden = []string{"<", ">", "\"", "'", ";", "--", "script"}

// nameRe is the allowlist for author names: basic Latin letters, the Spanish
// accented vowels and ñ (both cases) and whitespace, 3-50 characters.
var nameRe = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑ\s]{3,50}$`)

const (
	bodyMinLen = 10
	bodyMaxLen = 500
)

// Sanitize deletes every occurrence of the forbidden substrings, repeating
// until a fixed point: removing one token can expose another
// ("<<script>>" ends up empty).
func Sanitize(text string) string {
	for {
		before := text
		for _, f := range forbidden {
			text = strings.ReplaceAll(text, f, "")
		}
		if text == before {
			return text
		}
	}
}

// ValidName reports whether a sanitized author name matches the allowlist.
func ValidName(name string) bool {
	return nameRe.MatchString(name)
}

// ValidBody reports whether a sanitized message body is 10-500 characters,
// boundaries inclusive.
func ValidBody(body string) bool {
	n := len([]rune(body))
	return n >= bodyMinLen && n <= bodyMaxLen
}
