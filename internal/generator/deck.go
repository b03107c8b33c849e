package generator

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/dtroode/neoarcana-server/internal/model"
)

// Card is a tarot card.
type Card struct {
	Name     string
	Keywords []string
}

// MajorArcana is the deck readings are drawn from.
var MajorArcana = []Card{
	{"The Fool", []string{"beginnings", "innocence", "spontaneity"}},
	{"The Magician", []string{"manifestation", "resourcefulness", "power"}},
	{"The High Priestess", []string{"intuition", "mystery", "inner voice"}},
	{"The Empress", []string{"abundance", "nurturing", "nature"}},
	{"The Emperor", []string{"authority", "structure", "stability"}},
	{"The Hierophant", []string{"tradition", "guidance", "belief"}},
	{"The Lovers", []string{"love", "harmony", "choices"}},
	{"The Chariot", []string{"willpower", "victory", "direction"}},
	{"Strength", []string{"courage", "patience", "compassion"}},
	{"The Hermit", []string{"introspection", "solitude", "wisdom"}},
	{"Wheel of Fortune", []string{"cycles", "fate", "turning point"}},
	{"Justice", []string{"fairness", "truth", "balance"}},
	{"The Hanged Man", []string{"surrender", "new perspective", "pause"}},
	{"Death", []string{"endings", "transformation", "transition"}},
	{"Temperance", []string{"moderation", "patience", "purpose"}},
	{"The Devil", []string{"attachment", "shadow", "release"}},
	{"The Tower", []string{"upheaval", "revelation", "awakening"}},
	{"The Star", []string{"hope", "renewal", "inspiration"}},
	{"The Moon", []string{"illusion", "dreams", "the subconscious"}},
	{"The Sun", []string{"joy", "success", "vitality"}},
	{"Judgement", []string{"rebirth", "calling", "reflection"}},
	{"The World", []string{"completion", "achievement", "wholeness"}},
}

// Deck draws distinct cards. Safe for concurrent use.
type Deck struct {
	mu    sync.Mutex
	rng   *rand.Rand
	cards []Card
}

// NewDeck returns a deck seeded from the clock.
func NewDeck() *Deck {
	seed := uint64(time.Now().UnixNano())
	return NewSeededDeck(seed, seed>>32)
}

// NewSeededDeck returns a deck with a deterministic draw order.
func NewSeededDeck(seed1, seed2 uint64) *Deck {
	return &Deck{
		rng:   rand.New(rand.NewPCG(seed1, seed2)),
		cards: MajorArcana,
	}
}

// Draw returns n distinct cards.
func (d *Deck) Draw(n int) []Card {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n > len(d.cards) {
		n = len(d.cards)
	}
	perm := d.rng.Perm(len(d.cards))
	drawn := make([]Card, 0, n)
	for _, i := range perm[:n] {
		drawn = append(drawn, d.cards[i])
	}
	return drawn
}

// Positions returns the spread positions of a reading type.
func Positions(t model.ReadingType) []string {
	switch t {
	case model.ReadingTypeThreeCardDaily:
		return []string{"Past", "Present", "Future"}
	case model.ReadingTypeThreeCardWeekly:
		return []string{"Challenge", "Opportunity", "Outcome"}
	default:
		return []string{"Card of the Day"}
	}
}
