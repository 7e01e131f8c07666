package deal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/fadedpez/suitdeck/internal/types"
	"github.com/fadedpez/suitdeck/pkg/entities"
)

// ElasticsearchConfig holds configuration options for the Elasticsearch repository
type ElasticsearchConfig struct {
	URL         string
	Username    string
	Password    string
	IndexPrefix string
}

// DefaultElasticsearchConfig returns a default configuration for Elasticsearch
func DefaultElasticsearchConfig() *ElasticsearchConfig {
	return &ElasticsearchConfig{
		URL:         "http://localhost:9200",
		IndexPrefix: "suitdeck",
	}
}

const dealMapping = `{
	"mappings": {
		"properties": {
			"deal_id": { "type": "keyword" },
			"variant": { "type": "keyword" },
			"size": { "type": "integer" },
			"dealt_at": { "type": "date" },
			"cards": { "type": "keyword" },
			"jokers": { "type": "integer" },
			"per_suit": {
				"properties": {
					"hearts": { "type": "integer" },
					"tiles": { "type": "integer" },
					"clovers": { "type": "integer" },
					"pikes": { "type": "integer" }
				}
			}
		}
	}
}`

// esDealDocument is the indexed form of a deal
type esDealDocument struct {
	DealID  string         `json:"deal_id"`
	Variant string         `json:"variant"`
	Size    int            `json:"size"`
	DealtAt time.Time      `json:"dealt_at"`
	Cards   []string       `json:"cards"`
	Jokers  int            `json:"jokers"`
	PerSuit map[string]int `json:"per_suit"`
}

func newESDealDocument(record *entities.DealRecord) esDealDocument {
	summary := record.Summary()
	doc := esDealDocument{
		DealID:  record.ID,
		Variant: string(record.Variant),
		Size:    summary.Total,
		DealtAt: record.DealtAt.UTC(),
		Cards:   make([]string, 0, len(record.Cards)),
		Jokers:  summary.Jokers,
		PerSuit: make(map[string]int, len(summary.PerSuit)),
	}
	for _, card := range record.Cards {
		doc.Cards = append(doc.Cards, card.String())
	}
	for suit, count := range summary.PerSuit {
		doc.PerSuit[suit.Name()] = count
	}
	return doc
}

// ElasticsearchRepository indexes every saved deal into Elasticsearch.
// Reads are served by the base repository.
type ElasticsearchRepository struct {
	baseRepo  Repository
	client    *elasticsearch.Client
	config    *ElasticsearchConfig
	dealIndex string
}

// NewElasticsearchRepository creates a new Elasticsearch repository, creating the deal index if needed
func NewElasticsearchRepository(ctx context.Context, baseRepo Repository, config *ElasticsearchConfig) (*ElasticsearchRepository, error) {
	if config == nil {
		config = DefaultElasticsearchConfig()
	}

	cfg := elasticsearch.Config{
		Addresses: []string{config.URL},
	}
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	// copy so defaults never leak back into the caller's config
	resolved := *config
	config = &resolved
	if config.IndexPrefix == "" {
		config.IndexPrefix = "suitdeck"
	}

	repo := &ElasticsearchRepository{
		baseRepo:  baseRepo,
		client:    client,
		config:    config,
		dealIndex: config.IndexPrefix + "_deals",
	}

	if err := repo.initIndex(ctx); err != nil {
		return nil, fmt.Errorf("error initializing index: %w", err)
	}

	return repo, nil
}

// initIndex creates the deal index if it doesn't exist
func (r *ElasticsearchRepository) initIndex(ctx context.Context) error {
	res, err := r.client.Indices.Exists([]string{r.dealIndex}, r.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("error checking if deal index exists: %w", err)
	}
	res.Body.Close()

	if res.StatusCode != http.StatusNotFound {
		return nil
	}

	req := esapi.IndicesCreateRequest{
		Index: r.dealIndex,
		Body:  bytes.NewReader([]byte(dealMapping)),
	}
	res, err = req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("error creating deal index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error creating deal index: %s", res.String())
	}
	return nil
}

// SaveDeal stores the deal in the base repository, then indexes it
func (r *ElasticsearchRepository) SaveDeal(ctx context.Context, record *entities.DealRecord) error {
	if err := r.baseRepo.SaveDeal(ctx, record); err != nil {
		return err
	}
	return r.IndexDeal(ctx, record)
}

// IndexDeal writes the deal document keyed by deal ID
func (r *ElasticsearchRepository) IndexDeal(ctx context.Context, record *entities.DealRecord) error {
	jsonData, err := json.Marshal(newESDealDocument(record))
	if err != nil {
		return types.WrapError(types.ErrStorageError, "marshaling deal", err)
	}

	res, err := r.client.Index(
		r.dealIndex,
		bytes.NewReader(jsonData),
		r.client.Index.WithDocumentID(record.ID),
		r.client.Index.WithContext(ctx),
		r.client.Index.WithRefresh("true"),
	)
	if err != nil {
		return types.WrapError(types.ErrStorageError, "indexing deal", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return types.NewDeckError(types.ErrStorageError, fmt.Sprintf("indexing deal: %s", res.String()))
	}
	return nil
}

// CountDeals returns the number of indexed deals, optionally restricted to a variant
func (r *ElasticsearchRepository) CountDeals(ctx context.Context, variant entities.Variant) (int, error) {
	query := `{"query": {"match_all": {}}}`
	if variant != "" {
		query = fmt.Sprintf(`{"query": {"term": {"variant": %q}}}`, string(variant))
	}

	res, err := r.client.Count(
		r.client.Count.WithContext(ctx),
		r.client.Count.WithIndex(r.dealIndex),
		r.client.Count.WithBody(bytes.NewReader([]byte(query))),
	)
	if err != nil {
		return 0, types.WrapError(types.ErrStorageError, "counting deals", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, types.NewDeckError(types.ErrStorageError, fmt.Sprintf("counting deals: %s", res.String()))
	}

	var body struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return 0, types.WrapError(types.ErrStorageError, "decoding count response", err)
	}
	return body.Count, nil
}

// GetDeal delegates to the base repository
func (r *ElasticsearchRepository) GetDeal(ctx context.Context, id string) (*entities.DealRecord, error) {
	return r.baseRepo.GetDeal(ctx, id)
}

// ListDeals delegates to the base repository
func (r *ElasticsearchRepository) ListDeals(ctx context.Context, variant entities.Variant, limit int) ([]*entities.DealRecord, error) {
	return r.baseRepo.ListDeals(ctx, variant, limit)
}

// Close closes the base repository
func (r *ElasticsearchRepository) Close() error {
	return r.baseRepo.Close()
}

// DealIndex returns the name of the index deals are written to
func (r *ElasticsearchRepository) DealIndex() string {
	return r.dealIndex
}
