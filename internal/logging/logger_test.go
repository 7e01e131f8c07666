package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fadedpez/suitdeck/internal/types"
	"github.com/stretchr/testify/suite"
)

type LoggerTestSuite struct {
	suite.Suite
	buf *bytes.Buffer
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (s *LoggerTestSuite) SetupTest() {
	s.buf = &bytes.Buffer{}
}

func (s *LoggerTestSuite) TestLevelFiltering() {
	// Setup
	logger := NewLoggerWithWriter(WARN, s.buf)

	// Execute
	logger.Debug("debug %d", 1)
	logger.Info("info %d", 2)
	logger.Warn("warn %d", 3)
	logger.Error("error %d", 4)

	// Assert
	out := s.buf.String()
	s.NotContains(out, "debug 1")
	s.NotContains(out, "info 2")
	s.Contains(out, "WARN  logger_test.go")
	s.Contains(out, "warn 3")
	s.Contains(out, "ERROR logger_test.go")
	s.Contains(out, "error 4")
}

func (s *LoggerTestSuite) TestLogError() {
	testCases := []struct {
		name     string
		err      error
		expected []string
	}{
		{
			name:     "deck error with cause",
			err:      types.WrapError(types.ErrDatabaseError, "saving deal", errors.New("locked")),
			expected: []string{"Code: DATABASE_ERROR", "Message: saving deal", "Cause: locked"},
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			expected: []string{"Unexpected error: boom"},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			// Setup
			s.buf.Reset()
			logger := NewLoggerWithWriter(DEBUG, s.buf)

			// Execute
			logger.LogError(tc.err)

			// Assert
			for _, want := range tc.expected {
				s.Contains(s.buf.String(), want)
			}
		})
	}
}

func (s *LoggerTestSuite) TestParseLevel() {
	testCases := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{input: "debug", expected: DEBUG},
		{input: "INFO", expected: INFO},
		{input: " Warn ", expected: WARN},
		{input: "error", expected: ERROR},
		{input: "verbose", expected: INFO, wantErr: true},
	}

	for _, tc := range testCases {
		s.Run(tc.input, func() {
			level, err := ParseLevel(tc.input)
			if tc.wantErr {
				s.True(types.IsDeckError(err, types.ErrInvalidArgument))
				return
			}
			s.NoError(err)
			s.Equal(tc.expected, level)
		})
	}
}
