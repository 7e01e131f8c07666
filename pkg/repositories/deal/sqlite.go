package deal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fadedpez/suitdeck/internal/types"
	"github.com/fadedpez/suitdeck/pkg/db/migrations"
	"github.com/fadedpez/suitdeck/pkg/entities"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteRepository implements the Repository interface using SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite repository and applies pending migrations
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	migrator := migrations.NewMigrator(db, migrations.Embedded())
	if err := migrator.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// SaveDeal stores a deal and its cards in draw order
func (r *SQLiteRepository) SaveDeal(ctx context.Context, record *entities.DealRecord) error {
	if record == nil || record.ID == "" {
		return invalidRecord("deal record requires an ID")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.WrapError(types.ErrDatabaseError, "beginning transaction", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO deals (id, variant, card_count, dealt_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id)
		DO UPDATE SET variant = excluded.variant, card_count = excluded.card_count, dealt_at = excluded.dealt_at`
	if _, err := tx.ExecContext(ctx, query, record.ID, string(record.Variant), len(record.Cards), record.DealtAt.UTC().UnixNano()); err != nil {
		return types.WrapError(types.ErrDatabaseError, "saving deal", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM deal_cards WHERE deal_id = ?`, record.ID); err != nil {
		return types.WrapError(types.ErrDatabaseError, "clearing deal cards", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO deal_cards (deal_id, position, rank, suit) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return types.WrapError(types.ErrDatabaseError, "preparing card insert", err)
	}
	defer stmt.Close()

	for i, card := range record.Cards {
		if _, err := stmt.ExecContext(ctx, record.ID, i, card.Rank, card.Suit.Code()); err != nil {
			return types.WrapError(types.ErrDatabaseError, "saving deal card", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return types.WrapError(types.ErrDatabaseError, "committing deal", err)
	}
	return nil
}

// GetDeal retrieves a deal by ID
func (r *SQLiteRepository) GetDeal(ctx context.Context, id string) (*entities.DealRecord, error) {
	var (
		variant string
		dealtAt int64
	)
	err := r.db.QueryRowContext(ctx, `SELECT variant, dealt_at FROM deals WHERE id = ?`, id).Scan(&variant, &dealtAt)
	if err == sql.ErrNoRows {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "loading deal", err)
	}

	record := &entities.DealRecord{
		ID:      id,
		Variant: entities.Variant(variant),
		DealtAt: time.Unix(0, dealtAt).UTC(),
	}
	if record.Cards, err = r.loadCards(ctx, id); err != nil {
		return nil, err
	}
	return record, nil
}

// ListDeals retrieves the most recent deals
func (r *SQLiteRepository) ListDeals(ctx context.Context, variant entities.Variant, limit int) ([]*entities.DealRecord, error) {
	query := `SELECT id, variant, dealt_at FROM deals WHERE (? = '' OR variant = ?) ORDER BY dealt_at DESC, id ASC`
	args := []interface{}{string(variant), string(variant)}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "listing deals", err)
	}
	defer rows.Close()

	var records []*entities.DealRecord
	for rows.Next() {
		var (
			record  entities.DealRecord
			v       string
			dealtAt int64
		)
		if err := rows.Scan(&record.ID, &v, &dealtAt); err != nil {
			return nil, types.WrapError(types.ErrDatabaseError, "scanning deal", err)
		}
		record.Variant = entities.Variant(v)
		record.DealtAt = time.Unix(0, dealtAt).UTC()
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "listing deals", err)
	}
	rows.Close()

	for _, record := range records {
		if record.Cards, err = r.loadCards(ctx, record.ID); err != nil {
			return nil, err
		}
	}
	if records == nil {
		records = []*entities.DealRecord{}
	}
	return records, nil
}

func (r *SQLiteRepository) loadCards(ctx context.Context, id string) ([]entities.Card, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT rank, suit FROM deal_cards WHERE deal_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "loading deal cards", err)
	}
	defer rows.Close()

	cards := []entities.Card{}
	for rows.Next() {
		var rank, suit int
		if err := rows.Scan(&rank, &suit); err != nil {
			return nil, types.WrapError(types.ErrDatabaseError, "scanning deal card", err)
		}
		cards = append(cards, entities.NewCard(rank, entities.Suit(suit)))
	}
	if err := rows.Err(); err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "loading deal cards", err)
	}
	return cards, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
