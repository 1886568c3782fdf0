package assistant

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, drops combining marks (diacritics), and
// recomposes. Transformer chains carry state, so each call builds its own.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Normalize canonicalizes a question for hashing and similarity lookup:
// lower-cased, diacritics stripped, non-alphanumerics removed, internal
// whitespace collapsed to single spaces, trimmed. Pure and idempotent.
func Normalize(question string) string {
	if question == "" {
		return ""
	}

	s := strings.ToLower(question)
	if out, _, err := transform.String(stripMarks(), s); err == nil {
		s = out
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// HashQuestion returns the hex SHA-256 digest of a normalized question.
// The digest keys the exact cache tier.
func HashQuestion(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
