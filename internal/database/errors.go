package database

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// pqUniqueViolation is the PostgreSQL error code for unique-constraint
// violations.
const pqUniqueViolation = "23505"

// Error types for the database package.
var (
	// ErrNotFound is returned when no row exists for the requested id.
	ErrNotFound = errors.New("listing not found")

	// ErrIntegrity is returned on uniqueness or integrity violations, so
	// callers can tell duplicate-key races apart from I/O failures.
	ErrIntegrity = errors.New("integrity violation")

	// ErrStore is returned on any other store failure.
	ErrStore = errors.New("store error")
)

// mapError classifies a driver error into the package's failure taxonomy.
func mapError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return fmt.Errorf("%w: %v", ErrIntegrity, err)
	}
	return fmt.Errorf("%w: %v", ErrStore, err)
}
