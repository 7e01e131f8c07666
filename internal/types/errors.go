package types

import "fmt"

// ErrorCode represents a specific error type
type ErrorCode string

const (
	// Deck construction errors
	ErrInvalidVariant  ErrorCode = "INVALID_VARIANT"
	ErrInvalidState    ErrorCode = "INVALID_STATE"
	ErrInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// Deal history errors
	ErrDealNotFound ErrorCode = "DEAL_NOT_FOUND"

	// System errors
	ErrInternalError ErrorCode = "INTERNAL_ERROR"
	ErrDatabaseError ErrorCode = "DATABASE_ERROR"
	ErrStorageError  ErrorCode = "STORAGE_ERROR"
)

// DeckError represents a deck-related error
type DeckError struct {
	Code    ErrorCode
	Message string
	Err     error // Underlying error, if any
}

// Error implements the error interface
func (e *DeckError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DeckError) Unwrap() error {
	return e.Err
}

// NewDeckError creates a new DeckError
func NewDeckError(code ErrorCode, message string) *DeckError {
	return &DeckError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error in a DeckError
func WrapError(code ErrorCode, message string, err error) *DeckError {
	return &DeckError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsDeckError checks if an error is a DeckError and has a specific code
func IsDeckError(err error, code ErrorCode) bool {
	var deckErr *DeckError
	if err == nil {
		return false
	}
	if ok := As(err, &deckErr); !ok {
		return false
	}
	return deckErr.Code == code
}

// As reports whether err, or anything it wraps, is a DeckError and stores it in target
func As(err error, target **DeckError) bool {
	if target == nil {
		return false
	}
	for err != nil {
		if deckErr, ok := err.(*DeckError); ok {
			*target = deckErr
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
