package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrRecordNotFound is matched by every RecordNotFoundError
	ErrRecordNotFound = errors.New("record not found")

	// ErrWithdrawNotAllowed is returned when withdrawing an application that already progressed
	ErrWithdrawNotAllowed = errors.New("only applications in applied status can be withdrawn")

	// ErrUnsupportedFile is returned for uploads that are not PDF, DOC or DOCX
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrInvalidInput is returned when caller supplied data is rejected
	ErrInvalidInput = errors.New("invalid input")
)

// RecordNotFoundError identifies the entity and id that could not be found
type RecordNotFoundError struct {
	Entity string
	ID     int
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *RecordNotFoundError) Unwrap() error {
	return ErrRecordNotFound
}

// NewRecordNotFoundError creates a new RecordNotFoundError
func NewRecordNotFoundError(entity string, id int) error {
	return &RecordNotFoundError{Entity: entity, ID: id}
}
