package deal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fadedpez/suitdeck/internal/types"
	"github.com/fadedpez/suitdeck/pkg/entities"
)

// FileRepository keeps deal records in a single JSON file
type FileRepository struct {
	path  string
	mu    sync.RWMutex
	deals map[string]*entities.DealRecord
}

// NewFileRepository opens the file at path, loading any deals already stored there
func NewFileRepository(path string) (*FileRepository, error) {
	r := &FileRepository{
		path:  path,
		deals: make(map[string]*entities.DealRecord),
	}

	if err := r.load(); err != nil {
		return nil, types.WrapError(types.ErrStorageError, "failed to load deals", err)
	}

	return r, nil
}

// SaveDeal stores a deal record and rewrites the file
func (r *FileRepository) SaveDeal(ctx context.Context, record *entities.DealRecord) error {
	if record == nil || record.ID == "" {
		return invalidRecord("deal record requires an ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.deals[record.ID] = cloneRecord(record)
	if err := r.save(); err != nil {
		return types.WrapError(types.ErrStorageError, "failed to save deals", err)
	}
	return nil
}

// GetDeal retrieves a deal by ID
func (r *FileRepository) GetDeal(ctx context.Context, id string) (*entities.DealRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.deals[id]
	if !ok {
		return nil, notFound(id)
	}
	return cloneRecord(record), nil
}

// ListDeals retrieves the most recent deals
func (r *FileRepository) ListDeals(ctx context.Context, variant entities.Variant, limit int) ([]*entities.DealRecord, error) {
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

// Close is a no-op; every save is already flushed
func (r *FileRepository) Close() error {
	return nil
}

func (r *FileRepository) load() error {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &r.deals); err != nil {
		return err
	}
	// a file holding "null" decodes to a nil map
	if r.deals == nil {
		r.deals = make(map[string]*entities.DealRecord)
	}
	return nil
}

func (r *FileRepository) save() error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(r.deals, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal deals: %w", err)
	}

	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
