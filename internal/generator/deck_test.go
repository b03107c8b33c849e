package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/neoarcana-server/internal/model"
)

func TestDeck_Draw(t *testing.T) {
	d := NewSeededDeck(7, 11)

	for _, n := range []int{1, 3, 22, 40} {
		cards := d.Draw(n)
		want := n
		if want > len(MajorArcana) {
			want = len(MajorArcana)
		}
		assert.Len(t, cards, want)

		seen := map[string]bool{}
		for _, c := range cards {
			assert.False(t, seen[c.Name], "card %s drawn twice", c.Name)
			seen[c.Name] = true
		}
	}
}

func TestDeck_Seeded(t *testing.T) {
	a := NewSeededDeck(3, 5).Draw(3)
	b := NewSeededDeck(3, 5).Draw(3)
	assert.Equal(t, a, b)
}

func TestPositions(t *testing.T) {
	assert.Equal(t, []string{"Past", "Present", "Future"}, Positions(model.ReadingTypeThreeCardDaily))
	assert.Equal(t, []string{"Challenge", "Opportunity", "Outcome"}, Positions(model.ReadingTypeThreeCardWeekly))
	assert.Len(t, Positions(model.ReadingTypeDailySingle), 1)
}
