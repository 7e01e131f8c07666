package dealer

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/fadedpez/suitdeck/internal/logging"
	"github.com/fadedpez/suitdeck/internal/types"
	"github.com/fadedpez/suitdeck/pkg/entities"
	"github.com/fadedpez/suitdeck/pkg/repositories/deal"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockRepository is a mock implementation of the deal.Repository interface
type MockRepository struct {
	mock.Mock
}

// SaveDeal implements Repository
func (m *MockRepository) SaveDeal(ctx context.Context, record *entities.DealRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// GetDeal implements Repository
func (m *MockRepository) GetDeal(ctx context.Context, id string) (*entities.DealRecord, error) {
	args := m.Called(ctx, id)
	record, _ := args.Get(0).(*entities.DealRecord)
	return record, args.Error(1)
}

// ListDeals implements Repository
func (m *MockRepository) ListDeals(ctx context.Context, variant entities.Variant, limit int) ([]*entities.DealRecord, error) {
	args := m.Called(ctx, variant, limit)
	return args.Get(0).([]*entities.DealRecord), args.Error(1)
}

// Close implements Repository
func (m *MockRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

type ServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	logger *logging.Logger
	clock  time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.logger = logging.NewLoggerWithWriter(logging.DEBUG, io.Discard)
	s.clock = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
}

func (s *ServiceTestSuite) newService(repo deal.Repository, seed int64) *Service {
	return NewService(repo,
		WithRandSource(rand.New(rand.NewSource(seed))),
		WithLogger(s.logger),
		WithClock(func() time.Time { return s.clock }),
	)
}

func (s *ServiceTestSuite) TestDealStoresRecord() {
	// Setup
	repo := new(MockRepository)
	repo.On("SaveDeal", mock.Anything, mock.AnythingOfType("*entities.DealRecord")).Return(nil)
	service := s.newService(repo, 1)

	// Execute
	record, err := service.Deal(s.ctx, entities.StandardWithJokers)

	// Assert
	s.Require().NoError(err)
	repo.AssertExpectations(s.T())
	s.Len(record.Cards, 54)
	s.Equal(entities.StandardWithJokers, record.Variant)
	s.Equal(s.clock, record.DealtAt)
	_, parseErr := uuid.Parse(record.ID)
	s.NoError(parseErr, "Deal ID should be a UUID")

	summary := record.Summary()
	s.Equal(2, summary.Jokers)
	s.Equal(13, summary.PerSuit[entities.Hearts])
	s.Equal(14, summary.PerSuit[entities.Tiles])
	s.Equal(14, summary.PerSuit[entities.Clovers])
	s.Equal(13, summary.PerSuit[entities.Pikes])
}

func (s *ServiceTestSuite) TestDealWithoutRepository() {
	// Setup
	service := s.newService(nil, 2)

	// Execute
	record, err := service.Deal(s.ctx, entities.Thousand)
	history, histErr := service.History(s.ctx, "", 10)

	// Assert
	s.Require().NoError(err)
	s.Len(record.Cards, 24)
	s.NoError(histErr)
	s.Empty(history)
}

func (s *ServiceTestSuite) TestDealUnknownVariant() {
	// Setup
	repo := new(MockRepository)
	service := s.newService(repo, 3)

	// Execute
	record, err := service.Deal(s.ctx, entities.Variant("tarot"))

	// Assert
	s.Nil(record)
	s.True(types.IsDeckError(err, types.ErrInvalidVariant))
	repo.AssertNotCalled(s.T(), "SaveDeal", mock.Anything, mock.Anything)
}

func (s *ServiceTestSuite) TestDealRepositoryError() {
	// Setup
	repo := new(MockRepository)
	repo.On("SaveDeal", mock.Anything, mock.Anything).Return(errors.New("disk full"))
	service := s.newService(repo, 4)

	// Execute
	record, err := service.Deal(s.ctx, entities.Small)

	// Assert
	s.True(types.IsDeckError(err, types.ErrStorageError))
	s.Require().NotNil(record, "The dealt cards are still returned")
	s.Len(record.Cards, 32)
}

func (s *ServiceTestSuite) TestSameSeedSameDeal() {
	// Execute
	first, err := s.newService(nil, 11).Deal(s.ctx, entities.Standard)
	s.Require().NoError(err)
	second, err := s.newService(nil, 11).Deal(s.ctx, entities.Standard)
	s.Require().NoError(err)

	// Assert
	s.Equal(first.Cards, second.Cards)
	s.NotEqual(first.ID, second.ID)
}

func (s *ServiceTestSuite) TestStats() {
	// Setup
	records := []*entities.DealRecord{
		{ID: "a", Variant: entities.StandardWithJokers, Cards: []entities.Card{
			entities.NewCard(entities.Joker, entities.Tiles),
			entities.NewCard(9, entities.Hearts),
			entities.NewCard(entities.Joker, entities.Clovers),
		}},
		{ID: "b", Variant: entities.StandardWithJokers, Cards: []entities.Card{
			entities.NewCard(entities.Joker, entities.Clovers),
			entities.NewCard(entities.Joker, entities.Tiles),
		}},
	}
	repo := new(MockRepository)
	repo.On("ListDeals", mock.Anything, entities.StandardWithJokers, 50).Return(records, nil)
	service := s.newService(repo, 5)

	// Execute
	stats, err := service.Stats(s.ctx, entities.StandardWithJokers, 50)

	// Assert
	s.Require().NoError(err)
	s.Equal(2, stats.Deals)
	s.Equal(map[int]int{0: 2, 1: 1, 2: 1}, stats.JokerPositions)
	s.Equal(map[entities.Suit]int{entities.Tiles: 1, entities.Clovers: 1}, stats.TopSuits)
}

func (s *ServiceTestSuite) TestDealsAreStoredInMemoryHistory() {
	// Setup
	repo := deal.NewMemoryRepository()
	service := s.newService(repo, 6)

	// Execute
	for i := 0; i < 3; i++ {
		s.clock = s.clock.Add(time.Minute)
		_, err := service.Deal(s.ctx, entities.Short)
		s.Require().NoError(err)
	}
	history, err := service.History(s.ctx, entities.Short, 2)

	// Assert
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.True(history[0].DealtAt.After(history[1].DealtAt), "History should be newest first")
}
