package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		question string
		want     Category
	}{
		{"quem e deus", CategoryDeity},
		{"who is god", CategoryDeity},
		{"quem foi jesus cristo", CategoryMessiah},
		{"o que e o espirito santo", CategorySpirit},
		{"como alcancar a salvacao", CategorySalvation},
		{"como fazer uma oracao", CategoryPrayer},
		{"o que e fe", CategoryFaith},
		{"o que a biblia diz sobre o amor", CategoryLove},
		{"o que e pecado", CategorySin},
		{"existe vida apos a morte", CategoryAfterlife},
		{"qual o papel da igreja", CategoryCommunity},
		{"o que e o apocalipse", CategoryProphecy},
		{"qual a melhor receita de bolo", CategoryGeneral},
		{"", CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.question))
		})
	}
}

// Rule order is contract: a question matching several rules must take the
// first one in the list, so reordering rules is a behavior change.
func TestClassify_FirstMatchWins(t *testing.T) {
	// spirit (rule 1) beats messiah (rule 2) and deity (rule 3)
	assert.Equal(t, CategorySpirit, Classify("o espirito santo de deus e jesus"))
	// messiah (rule 2) beats deity (rule 3)
	assert.Equal(t, CategoryMessiah, Classify("jesus e deus"))
	// salvation (rule 4) beats faith (rule 6)
	assert.Equal(t, CategorySalvation, Classify("a salvacao pela fe"))
}

func TestClassify_CaseInsensitive(t *testing.T) {
	assert.Equal(t, Classify("QUEM E DEUS"), Classify("quem e deus"))
}

func TestClassify_Deterministic(t *testing.T) {
	q := "a salvacao pela fe em jesus"
	first := Classify(q)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(q))
	}
}
