package cards

import (
	"fmt"

	"github.com/fadedpez/suitdeck/internal/types"
	"github.com/fadedpez/suitdeck/pkg/entities"
)

// topRank is one above the highest regular rank; initialized ranges end just below it
const topRank = entities.Ace + 1

// Source is the random source used for every draw. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// SuitPile holds the unissued cards of a single suit. Not safe for concurrent use.
type SuitPile struct {
	suit        entities.Suit
	cards       []entities.Card
	rng         Source
	initialized bool
}

// NewSuitPile creates an empty pile for suit
func NewSuitPile(suit entities.Suit, rng Source) *SuitPile {
	return &SuitPile{
		suit: suit,
		rng:  rng,
	}
}

// rankRange returns the inclusive rank range for a pile of count cards
func rankRange(count int) (low, high int) {
	low = topRank - count
	if low < entities.MinRank {
		low = entities.MinRank
	}
	return low, low + count - 1
}

// Initialize fills the pile with count consecutive ranks ending at the ace,
// clamped so the lowest rank is never below two. It may only be called once.
func (p *SuitPile) Initialize(count int) error {
	if p.initialized {
		return types.NewDeckError(types.ErrInvalidState,
			fmt.Sprintf("%s pile already initialized", p.suit.Name()))
	}
	if count < 0 {
		return types.NewDeckError(types.ErrInvalidArgument,
			fmt.Sprintf("negative card count %d for %s pile", count, p.suit.Name()))
	}

	low, high := rankRange(count)
	p.cards = make([]entities.Card, 0, count)
	for rank := low; rank <= high; rank++ {
		p.cards = append(p.cards, entities.NewCard(rank, p.suit))
	}
	p.initialized = true
	return nil
}

// DrawRandom removes and returns a uniformly chosen card.
// It returns false once the pile is empty.
func (p *SuitPile) DrawRandom() (entities.Card, bool) {
	if len(p.cards) == 0 {
		return entities.Card{}, false
	}

	index := p.rng.Intn(len(p.cards))
	card := p.cards[index]
	p.cards = append(p.cards[:index], p.cards[index+1:]...)
	return card, true
}

// Len returns the number of cards left in the pile
func (p *SuitPile) Len() int {
	return len(p.cards)
}

// Suit returns the pile's suit
func (p *SuitPile) Suit() entities.Suit {
	return p.suit
}
