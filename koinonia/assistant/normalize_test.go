package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty passthrough", "", ""},
		{"lowercases", "O Que É Fé?", "o que e fe"},
		{"strips diacritics", "oração salvação céu", "oracao salvacao ceu"},
		{"drops punctuation", "Quem é Deus?!...", "quem e deus"},
		{"collapses whitespace", "  o   que\t\né \n fé  ", "o que e fe"},
		{"keeps digits", "Salmo 23 fala de quê?", "salmo 23 fala de que"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"O que é fé?",
		"  Várias   Palavras Com ACENTOS: ão, ç, ê!  ",
		"already normalized text",
		"",
	}

	for _, q := range inputs {
		once := Normalize(q)
		twice := Normalize(once)
		assert.Equal(t, once, twice, "normalize must be idempotent for %q", q)
		assert.Equal(t, HashQuestion(once), HashQuestion(twice))
	}
}

func TestHashQuestion(t *testing.T) {
	h1 := HashQuestion("o que e fe")
	h2 := HashQuestion("o que e fe")
	h3 := HashQuestion("o que significa ter fe")

	assert.Equal(t, h1, h2, "same input must hash identically")
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64, "sha-256 hex digest")
}
