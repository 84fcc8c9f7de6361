package core

import (
	"errors"
	"fmt"
)

// Repositories return these when a lookup misses
var (
	ErrNotFound         = errors.New("resource not found")
	ErrDatasetNotFound  = fmt.Errorf("%w: dataset", ErrNotFound)
	ErrAnalysisNotFound = fmt.Errorf("%w: analysis", ErrNotFound)
)

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
