package deal

import (
	"context"
	"sort"
	"sync"

	"github.com/fadedpez/suitdeck/pkg/entities"
)

// MemoryRepository implements Repository with in-memory storage
type MemoryRepository struct {
	mu    sync.RWMutex
	deals map[string]*entities.DealRecord
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		deals: make(map[string]*entities.DealRecord),
	}
}

// SaveDeal stores a deal record
func (r *MemoryRepository) SaveDeal(ctx context.Context, record *entities.DealRecord) error {
	if record == nil || record.ID == "" {
		return invalidRecord("deal record requires an ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.deals[record.ID] = cloneRecord(record)
	return nil
}

// GetDeal retrieves a deal by ID
func (r *MemoryRepository) GetDeal(ctx context.Context, id string) (*entities.DealRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.deals[id]
	if !ok {
		return nil, notFound(id)
	}
	return cloneRecord(record), nil
}

// ListDeals retrieves the most recent deals
func (r *MemoryRepository) ListDeals(ctx context.Context, variant entities.Variant, limit int) ([]*entities.DealRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*entities.DealRecord, 0, len(r.deals))
	for _, record := range r.deals {
		if variant == "" || record.Variant == variant {
			records = append(records, cloneRecord(record))
		}
	}
	return newestFirst(records, limit), nil
}

// Close is a no-op for memory repository since there are no resources to close
func (r *MemoryRepository) Close() error {
	return nil
}

func cloneRecord(record *entities.DealRecord) *entities.DealRecord {
	clone := *record
	clone.Cards = make([]entities.Card, len(record.Cards))
	copy(clone.Cards, record.Cards)
	return &clone
}

// newestFirst sorts by deal time descending, ID breaking ties, and applies limit when positive
func newestFirst(records []*entities.DealRecord, limit int) []*entities.DealRecord {
	sort.Slice(records, func(i, j int) bool {
		if records[i].DealtAt.Equal(records[j].DealtAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].DealtAt.After(records[j].DealtAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records
}
