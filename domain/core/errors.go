package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrSeasonNotFound = fmt.Errorf("%w: season", ErrNotFound)
	ErrReportNotFound = fmt.Errorf("%w: report", ErrNotFound)

	// Analysis errors
	ErrInsufficientData = errors.New("insufficient data for analysis")
	ErrEmptyGroup       = errors.New("group contains no events")

	// Ingestion errors
	ErrMalformedRow = errors.New("malformed row")
)

// Error constructors with context

func NewInsufficientDataError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInsufficientData, reason)
}

func NewEmptyGroupError(group string) error {
	return fmt.Errorf("%w: %s", ErrEmptyGroup, group)
}

func NewMalformedRowError(row int, reason string) error {
	return fmt.Errorf("%w %d: %s", ErrMalformedRow, row, reason)
}

func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, resource, id)
}

// Error checking helpers

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInsufficientDataError(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

func IsEmptyGroupError(err error) bool {
	return errors.Is(err, ErrEmptyGroup)
}

func IsMalformedRowError(err error) bool {
	return errors.Is(err, ErrMalformedRow)
}
