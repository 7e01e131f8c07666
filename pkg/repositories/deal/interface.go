package deal

import (
	"context"

	"github.com/fadedpez/suitdeck/pkg/entities"
)

// Repository stores the history of completed deals
type Repository interface {
	// SaveDeal stores a deal record, replacing any record with the same ID
	SaveDeal(ctx context.Context, record *entities.DealRecord) error

	// GetDeal loads a deal by ID. It returns a DEAL_NOT_FOUND error if none exists.
	GetDeal(ctx context.Context, id string) (*entities.DealRecord, error)

	// ListDeals returns up to limit deals, newest first. An empty variant matches all.
	ListDeals(ctx context.Context, variant entities.Variant, limit int) ([]*entities.DealRecord, error)

	// Close closes any resources used by the repository
	Close() error
}
