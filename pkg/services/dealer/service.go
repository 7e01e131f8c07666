package dealer

import (
	"context"
	"time"

	"github.com/fadedpez/suitdeck/internal/logging"
	"github.com/fadedpez/suitdeck/internal/types"
	"github.com/fadedpez/suitdeck/pkg/cards"
	"github.com/fadedpez/suitdeck/pkg/entities"
	"github.com/fadedpez/suitdeck/pkg/repositories/deal"
	"github.com/google/uuid"
)

// Service runs complete deals and keeps their history
type Service struct {
	repository deal.Repository
	logger     *logging.Logger
	rng        cards.Source
	now        func() time.Time
	newID      func() string
}

// Option configures a Service
type Option func(*Service)

// WithRandSource makes every deck draw from rng
func WithRandSource(rng cards.Source) Option {
	return func(s *Service) {
		s.rng = rng
	}
}

// WithLogger sets the logger used by the service and its decks
func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock overrides the deal timestamp source
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new deal service. repository may be nil, in which case deals are not stored.
func NewService(repository deal.Repository, opts ...Option) *Service {
	s := &Service{
		repository: repository,
		logger:     logging.Default,
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Deal builds a deck of the given variant, shuffles it and draws every card.
// The returned record lists the cards in draw order.
func (s *Service) Deal(ctx context.Context, variant entities.Variant) (*entities.DealRecord, error) {
	deckOpts := []cards.Option{cards.WithLogger(s.logger)}
	if s.rng != nil {
		deckOpts = append(deckOpts, cards.WithRand(s.rng))
	}

	deck, err := cards.NewDeck(variant, deckOpts...)
	if err != nil {
		return nil, err
	}
	deck.Shuffle()

	record := &entities.DealRecord{
		ID:      s.newID(),
		Variant: variant,
		Cards:   make([]entities.Card, 0, variant.Size()),
		DealtAt: s.now().UTC(),
	}
	for {
		card, ok := deck.DrawTop()
		if !ok {
			break
		}
		record.Cards = append(record.Cards, card)
	}
	s.logger.Debug("dealt %d cards for %s deal %s", len(record.Cards), variant, record.ID)

	if s.repository != nil {
		if err := s.repository.SaveDeal(ctx, record); err != nil {
			return record, types.WrapError(types.ErrStorageError, "storing deal", err)
		}
	}

	return record, nil
}

// History returns up to limit stored deals, newest first
func (s *Service) History(ctx context.Context, variant entities.Variant, limit int) ([]*entities.DealRecord, error) {
	if s.repository == nil {
		return []*entities.DealRecord{}, nil
	}
	return s.repository.ListDeals(ctx, variant, limit)
}

// Stats aggregates the stored deals of a variant
type Stats struct {
	Variant entities.Variant `json:"variant"`
	Deals   int              `json:"deals"`
	// JokerPositions counts, per draw position, how often a joker came out there
	JokerPositions map[int]int `json:"joker_positions"`
	// TopSuits counts the suit of the first card drawn in each deal
	TopSuits map[entities.Suit]int `json:"top_suits"`
}

// Stats summarizes up to limit stored deals of variant
func (s *Service) Stats(ctx context.Context, variant entities.Variant, limit int) (*Stats, error) {
	records, err := s.History(ctx, variant, limit)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Variant:        variant,
		JokerPositions: make(map[int]int),
		TopSuits:       make(map[entities.Suit]int),
	}
	for _, record := range records {
		stats.Deals++
		if len(record.Cards) > 0 {
			stats.TopSuits[record.Cards[0].Suit]++
		}
		for i, card := range record.Cards {
			if card.IsJoker() {
				stats.JokerPositions[i]++
			}
		}
	}
	return stats, nil
}
