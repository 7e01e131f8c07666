package cards

import (
	"math/rand"
	"testing"

	"github.com/fadedpez/suitdeck/internal/types"
	"github.com/fadedpez/suitdeck/pkg/entities"
	"github.com/stretchr/testify/suite"
)

type SuitPileTestSuite struct {
	suite.Suite
	rng *rand.Rand
}

func TestSuitPileSuite(t *testing.T) {
	suite.Run(t, new(SuitPileTestSuite))
}

func (s *SuitPileTestSuite) SetupTest() {
	s.rng = rand.New(rand.NewSource(42))
}

func (s *SuitPileTestSuite) TestInitializeRankRange() {
	testCases := []struct {
		name     string
		count    int
		expected []int
	}{
		{name: "thousand", count: 6, expected: []int{9, 10, 11, 12, 13, 14}},
		{name: "small", count: 8, expected: []int{7, 8, 9, 10, 11, 12, 13, 14}},
		{name: "short", count: 9, expected: []int{6, 7, 8, 9, 10, 11, 12, 13, 14}},
		{name: "standard", count: 13, expected: []int{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}},
		{name: "standard with joker", count: 14, expected: []int{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}},
		{name: "clamped at two", count: 16, expected: []int{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17}},
		{name: "empty", count: 0, expected: nil},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			// Setup
			pile := NewSuitPile(entities.Clovers, s.rng)

			// Execute
			err := pile.Initialize(tc.count)

			// Assert
			s.Require().NoError(err)
			s.Equal(tc.count, pile.Len())
			ranks := make([]int, 0, len(pile.cards))
			for _, card := range pile.cards {
				s.Equal(entities.Clovers, card.Suit, "Every card should carry the pile's suit")
				ranks = append(ranks, card.Rank)
			}
			if tc.expected == nil {
				s.Empty(ranks)
				return
			}
			s.Equal(tc.expected, ranks)
		})
	}
}

func (s *SuitPileTestSuite) TestInitializeTwice() {
	// Setup
	pile := NewSuitPile(entities.Hearts, s.rng)
	s.Require().NoError(pile.Initialize(6))

	// Execute
	err := pile.Initialize(13)

	// Assert
	s.True(types.IsDeckError(err, types.ErrInvalidState), "Second initialize should be rejected")
	s.Equal(6, pile.Len(), "Pile should be unchanged")
}

func (s *SuitPileTestSuite) TestInitializeNegative() {
	pile := NewSuitPile(entities.Hearts, s.rng)
	err := pile.Initialize(-1)
	s.True(types.IsDeckError(err, types.ErrInvalidArgument))
	s.Zero(pile.Len())
}

func (s *SuitPileTestSuite) TestDrawRandomDrainsWithoutDuplicates() {
	// Setup
	pile := NewSuitPile(entities.Pikes, s.rng)
	s.Require().NoError(pile.Initialize(13))
	seen := make(map[entities.Card]bool)

	// Execute
	for i := 13; i > 0; i-- {
		card, ok := pile.DrawRandom()
		s.Require().True(ok)
		s.False(seen[card], "Card %v drawn twice", card)
		seen[card] = true
		s.Equal(i-1, pile.Len(), "Each draw should shrink the pile by one")
	}

	// Assert
	s.Len(seen, 13)
	for rank := 2; rank <= 14; rank++ {
		s.True(seen[entities.NewCard(rank, entities.Pikes)], "Rank %d missing", rank)
	}
}

func (s *SuitPileTestSuite) TestDrawRandomWhenEmpty() {
	// Setup
	pile := NewSuitPile(entities.Tiles, s.rng)

	// Execute and assert
	for i := 0; i < 3; i++ {
		card, ok := pile.DrawRandom()
		s.False(ok, "Empty pile should yield no card")
		s.Equal(entities.Card{}, card)
	}
}

func (s *SuitPileTestSuite) TestDrawRandomIsRandom() {
	// Setup
	firsts := make(map[int]int)

	// Execute
	for i := 0; i < 200; i++ {
		pile := NewSuitPile(entities.Hearts, s.rng)
		s.Require().NoError(pile.Initialize(6))
		card, _ := pile.DrawRandom()
		firsts[card.Rank]++
	}

	// Assert
	s.Len(firsts, 6, "Every rank should come up first at least once")
}
