package entities

import "strconv"

// Suit represents a card suit. The integer value is the display code.
type Suit int

const (
	Hearts Suit = iota
	Tiles
	Clovers
	Pikes
)

// Suits returns all suits in code order
func Suits() []Suit {
	return []Suit{Hearts, Tiles, Clovers, Pikes}
}

// Code returns the integer code used for display
func (s Suit) Code() int {
	return int(s)
}

// Name returns the suit's English name
func (s Suit) Name() string {
	switch s {
	case Hearts:
		return "hearts"
	case Tiles:
		return "tiles"
	case Clovers:
		return "clovers"
	case Pikes:
		return "pikes"
	default:
		return "unknown"
	}
}

// String returns the suit glyph
func (s Suit) String() string {
	return SuitGlyph(s.Code())
}

// Rank bounds and face ranks
const (
	MinRank = 2
	Valet   = 11
	Dame    = 12
	King    = 13
	Ace     = 14
	Joker   = 15
)

// Card represents a playing card. Cards are compared by value.
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

// NewCard creates a new card
func NewCard(rank int, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// IsJoker reports whether the card carries the joker rank
func (c Card) IsJoker() bool {
	return c.Rank == Joker
}

// String returns the suit glyph immediately followed by the rank name
func (c Card) String() string {
	return SuitGlyph(c.Suit.Code()) + RankName(c.Rank)
}

// SuitGlyph renders a suit code as its glyph
func SuitGlyph(code int) string {
	switch code {
	case 0:
		return "♡"
	case 1:
		return "♢"
	case 2:
		return "♣"
	case 3:
		return "♠"
	default:
		return "Unknown"
	}
}

// RankName renders a rank as text
func RankName(rank int) string {
	switch {
	case rank >= MinRank && rank <= 10:
		return strconv.Itoa(rank)
	case rank == Valet:
		return "Valet"
	case rank == Dame:
		return "Dame"
	case rank == King:
		return "King"
	case rank == Ace:
		return "Ace"
	case rank == Joker:
		return "Joker"
	default:
		return "Unknown value"
	}
}
