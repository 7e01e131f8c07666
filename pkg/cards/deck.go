package cards

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/fadedpez/suitdeck/internal/logging"
	"github.com/fadedpez/suitdeck/internal/types"
	"github.com/fadedpez/suitdeck/pkg/entities"
)

// State is the lifecycle stage of a Deck
type State int

const (
	Built    State = iota // piles populated, output stack empty
	Shuffled              // output stack full, piles empty
	Draining              // at least one card drawn
	Empty                 // every card drawn
)

var stateNames = map[State]string{
	Built:    "built",
	Shuffled: "shuffled",
	Draining: "draining",
	Empty:    "empty",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Deck owns one pile per suit and the shuffled output stack
type Deck struct {
	variant entities.Variant
	piles   map[entities.Suit]*SuitPile
	suits   []entities.Suit
	stack   []entities.Card
	state   State
	rng     Source
	logger  *logging.Logger
}

// Option configures a Deck
type Option func(*Deck)

// WithRand sets the random source shared by the deck and its piles
func WithRand(rng Source) Option {
	return func(d *Deck) {
		d.rng = rng
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(d *Deck) {
		d.logger = logger
	}
}

// NewDeck builds a deck for variant with every pile populated
func NewDeck(variant entities.Variant, opts ...Option) (*Deck, error) {
	counts, err := suitCounts(variant)
	if err != nil {
		return nil, err
	}

	d := &Deck{
		variant: variant,
		suits:   entities.Suits(),
		piles:   make(map[entities.Suit]*SuitPile, len(counts)),
		state:   Built,
		logger:  logging.Default,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.rng == nil {
		d.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for _, suit := range d.suits {
		pile := NewSuitPile(suit, d.rng)
		if err := pile.Initialize(counts[suit]); err != nil {
			return nil, types.WrapError(types.ErrInternalError, "initializing suit pile", err)
		}
		d.piles[suit] = pile
	}
	d.stack = make([]entities.Card, 0, variant.Size())

	return d, nil
}

// suitCounts partitions the variant's size across the four suits.
// Jokers go to Tiles and Clovers.
func suitCounts(variant entities.Variant) (map[entities.Suit]int, error) {
	if !variant.Valid() {
		return nil, types.NewDeckError(types.ErrInvalidVariant, fmt.Sprintf("unknown deck variant %q", variant))
	}

	size := variant.Size()
	if !variant.HasJokers() {
		perSuit := size / 4
		return map[entities.Suit]int{
			entities.Hearts:  perSuit,
			entities.Tiles:   perSuit,
			entities.Clovers: perSuit,
			entities.Pikes:   perSuit,
		}, nil
	}

	base := (size - entities.JokerCount) / 4
	return map[entities.Suit]int{
		entities.Hearts:  base,
		entities.Tiles:   base + 1,
		entities.Clovers: base + 1,
		entities.Pikes:   base,
	}, nil
}

// Shuffle moves every pile card onto the output stack. Each draw picks a
// suit uniformly, ignoring how many cards each pile holds, and picks again
// when that pile is already empty. Calling it outside the built state does nothing.
func (d *Deck) Shuffle() {
	if d.state != Built {
		d.logger.Warn("shuffle ignored: deck is %s", d.state)
		return
	}

	size := d.variant.Size()
	d.logger.Debug("deck size %d", size)
	for i := 0; i < size; i++ {
		card, ok := d.drawRandomCard()
		if !ok {
			break
		}
		d.stack = append(d.stack, card)
	}
	d.state = Shuffled
}

// drawRandomCard keeps choosing suits until one yields a card.
// The loop stops once no pile has cards left.
func (d *Deck) drawRandomCard() (entities.Card, bool) {
	for d.pileCards() > 0 {
		suit := d.suits[d.rng.Intn(len(d.suits))]
		if card, ok := d.piles[suit].DrawRandom(); ok {
			return card, true
		}
	}
	return entities.Card{}, false
}

func (d *Deck) pileCards() int {
	total := 0
	for _, pile := range d.piles {
		total += pile.Len()
	}
	return total
}

// DrawTop pops the most recently shuffled card. It returns false once the
// stack is exhausted, on every call after that.
func (d *Deck) DrawTop() (entities.Card, bool) {
	if len(d.stack) == 0 {
		if d.state != Built {
			d.state = Empty
		}
		return entities.Card{}, false
	}

	last := len(d.stack) - 1
	card := d.stack[last]
	d.stack = d.stack[:last]

	d.state = Draining
	if len(d.stack) == 0 {
		d.state = Empty
	}
	return card, true
}

// State returns the deck's lifecycle stage
func (d *Deck) State() State {
	return d.state
}

// Variant returns the deck's configuration
func (d *Deck) Variant() entities.Variant {
	return d.variant
}

// Remaining returns the number of cards left on the output stack
func (d *Deck) Remaining() int {
	return len(d.stack)
}

// PileLen returns the number of unissued cards in suit's pile
func (d *Deck) PileLen(suit entities.Suit) int {
	pile, ok := d.piles[suit]
	if !ok {
		return 0
	}
	return pile.Len()
}
