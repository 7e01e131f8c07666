package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/fadedpez/suitdeck/internal/config"
	"github.com/fadedpez/suitdeck/internal/logging"
	"github.com/fadedpez/suitdeck/pkg/entities"
	"github.com/fadedpez/suitdeck/pkg/repositories/deal"
	"github.com/fadedpez/suitdeck/pkg/services/dealer"
)

func main() {
	// Card lines go to stdout; log lines go to stderr so the output stays clean
	if err := run(context.Background(), os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out, logOut io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.NewLoggerWithWriter(cfg.LogLevel, logOut)

	repo := openRepository(ctx, cfg, logger)
	if repo != nil {
		defer func() {
			if err := repo.Close(); err != nil {
				logger.Error("Error closing deal repository: %v", err)
			}
		}()
	}

	opts := []dealer.Option{dealer.WithLogger(logger)}
	if cfg.Seed != 0 {
		opts = append(opts, dealer.WithRandSource(rand.New(rand.NewSource(cfg.Seed))))
	}
	service := dealer.NewService(repo, opts...)

	record, err := service.Deal(ctx, cfg.Variant)
	if record == nil {
		return err
	}
	if err != nil {
		// The cards were dealt; only recording them failed
		logger.LogError(err)
	}

	for _, card := range record.Cards {
		fmt.Fprintln(out, card)
	}

	if cfg.HistoryLimit > 0 {
		return printHistory(ctx, out, service, cfg)
	}
	return nil
}

// printHistory reports on the most recent stored deals of the configured variant
func printHistory(ctx context.Context, out io.Writer, service *dealer.Service, cfg *config.Config) error {
	records, err := service.History(ctx, cfg.Variant, cfg.HistoryLimit)
	if err != nil {
		return fmt.Errorf("failed to load deal history: %w", err)
	}
	stats, err := service.Stats(ctx, cfg.Variant, cfg.HistoryLimit)
	if err != nil {
		return fmt.Errorf("failed to load deal stats: %w", err)
	}

	fmt.Fprintf(out, "\nhistory: %d %s deals\n", stats.Deals, stats.Variant)
	for _, record := range records {
		fmt.Fprintf(out, "  %s  %s  first %s\n", record.DealtAt.Format(time.RFC3339), record.ID, firstCard(record))
	}

	positions := make([]int, 0, len(stats.JokerPositions))
	for pos := range stats.JokerPositions {
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	for _, pos := range positions {
		fmt.Fprintf(out, "  joker at draw %d: %d\n", pos+1, stats.JokerPositions[pos])
	}
	for _, suit := range entities.Suits() {
		if n := stats.TopSuits[suit]; n > 0 {
			fmt.Fprintf(out, "  first card %s: %d\n", suit.Name(), n)
		}
	}
	return nil
}

func firstCard(record *entities.DealRecord) string {
	if len(record.Cards) == 0 {
		return "-"
	}
	return record.Cards[0].String()
}

// openRepository picks the deal history backend, falling back to memory
// when the configured one cannot be opened
func openRepository(ctx context.Context, cfg *config.Config, logger *logging.Logger) deal.Repository {
	switch cfg.StorageType {
	case config.StorageNone:
		return nil

	case config.StorageFile:
		logger.Info("Using file repository at %s", cfg.DealsFilePath())
		repo, err := deal.NewFileRepository(cfg.DealsFilePath())
		if err != nil {
			logger.Warn("Failed to open file repository: %v", err)
			break
		}
		return repo

	case config.StorageSQLite:
		logger.Info("Initializing SQLite repository at %s", cfg.DatabasePath())
		repo, err := deal.NewSQLiteRepository(cfg.DatabasePath())
		if err != nil {
			logger.Warn("Failed to initialize SQLite repository: %v", err)
			break
		}
		return repo

	case config.StorageElasticsearch:
		base, err := deal.NewSQLiteRepository(cfg.DatabasePath())
		if err != nil {
			logger.Warn("Failed to initialize SQLite repository for Elasticsearch: %v", err)
			break
		}
		repo, err := deal.NewElasticsearchRepository(ctx, base, &deal.ElasticsearchConfig{
			URL:         cfg.ESURL,
			Username:    cfg.ESUsername,
			Password:    cfg.ESPassword,
			IndexPrefix: cfg.ESIndexPrefix,
		})
		if err != nil {
			logger.Warn("Failed to initialize Elasticsearch repository: %v", err)
			logger.Info("Keeping deal history in SQLite only")
			return base
		}
		return repo
	}

	logger.Info("Falling back to in-memory repository (deal history will be lost on exit)")
	return deal.NewMemoryRepository()
}
