package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (s *ErrorTestSuite) TestNewDeckError() {
	// Setup
	code := ErrInvalidVariant
	message := "unknown deck variant"

	// Execute
	err := NewDeckError(code, message)

	// Assert
	s.Equal(code, err.Code, "Error code should match")
	s.Equal(message, err.Message, "Error message should match")
	s.Nil(err.Err, "Underlying error should be nil")
}

func (s *ErrorTestSuite) TestWrapError() {
	// Setup
	code := ErrDatabaseError
	message := "saving deal"
	underlying := errors.New("disk I/O error")

	// Execute
	err := WrapError(code, message, underlying)

	// Assert
	s.Equal(code, err.Code, "Error code should match")
	s.Equal(message, err.Message, "Error message should match")
	s.Equal(underlying, err.Err, "Underlying error should match")
	s.ErrorIs(err, underlying, "errors.Is should see the wrapped error")
}

func (s *ErrorTestSuite) TestErrorString() {
	testCases := []struct {
		name     string
		err      *DeckError
		expected string
	}{
		{
			name:     "Simple error",
			err:      NewDeckError(ErrInvalidVariant, "unknown deck variant"),
			expected: "INVALID_VARIANT: unknown deck variant",
		},
		{
			name:     "Wrapped error",
			err:      WrapError(ErrDatabaseError, "saving deal", errors.New("disk I/O error")),
			expected: "DATABASE_ERROR: saving deal (disk I/O error)",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, tc.err.Error(), "Error string should match expected format")
		})
	}
}

func (s *ErrorTestSuite) TestIsDeckError() {
	// Setup
	deckErr := NewDeckError(ErrInvalidState, "pile already initialized")
	regularErr := errors.New("regular error")

	testCases := []struct {
		name     string
		err      error
		code     ErrorCode
		expected bool
	}{
		{
			name:     "Matching deck error",
			err:      deckErr,
			code:     ErrInvalidState,
			expected: true,
		},
		{
			name:     "Non-matching deck error",
			err:      deckErr,
			code:     ErrInternalError,
			expected: false,
		},
		{
			name:     "Deck error wrapped with fmt",
			err:      fmt.Errorf("building deck: %w", deckErr),
			code:     ErrInvalidState,
			expected: true,
		},
		{
			name:     "Regular error",
			err:      regularErr,
			code:     ErrInvalidState,
			expected: false,
		},
		{
			name:     "Nil error",
			err:      nil,
			code:     ErrInvalidState,
			expected: false,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			result := IsDeckError(tc.err, tc.code)
			s.Equal(tc.expected, result, "IsDeckError result should match expected value")
		})
	}
}

func (s *ErrorTestSuite) TestAs() {
	// Setup
	deckErr := NewDeckError(ErrDealNotFound, "deal not found")
	regularErr := errors.New("regular error")

	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "Deck error",
			err:      deckErr,
			expected: true,
		},
		{
			name:     "Regular error",
			err:      regularErr,
			expected: false,
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			var target *DeckError
			result := As(tc.err, &target)
			s.Equal(tc.expected, result, "As result should match expected value")
			if tc.expected {
				s.Equal(deckErr, target, "Target should be set to the deck error")
			}
		})
	}
}
