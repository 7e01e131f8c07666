package entities

import "time"

// DealRecord is the outcome of shuffling a deck and drawing it to exhaustion
type DealRecord struct {
	ID      string    `json:"id"`
	Variant Variant   `json:"variant"`
	Cards   []Card    `json:"cards"` // in draw order
	DealtAt time.Time `json:"dealt_at"`
}

// Summary counts the cards of a deal
type Summary struct {
	Total   int          `json:"total"`
	Jokers  int          `json:"jokers"`
	PerSuit map[Suit]int `json:"per_suit"`
}

// Summary returns per-suit and joker counts for the record
func (r *DealRecord) Summary() Summary {
	summary := Summary{PerSuit: make(map[Suit]int, len(Suits()))}
	for _, suit := range Suits() {
		summary.PerSuit[suit] = 0
	}
	for _, card := range r.Cards {
		summary.Total++
		summary.PerSuit[card.Suit]++
		if card.IsJoker() {
			summary.Jokers++
		}
	}
	return summary
}
