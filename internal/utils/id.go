package utils

import (
	"math/rand/v2"
	"strings"
	"unicode"
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// MakeID returns a random alphanumeric string of length n. Used for post and
// comment identifiers and for uploaded image filenames.
func MakeID(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return string(b)
}

// Slugify derives a URL path segment from a title: lowercase, strip anything
// that is not a letter or digit, collapse the gaps into single dashes. The
// slug alone is not unique; posts are addressed by (identifier, slug).
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
