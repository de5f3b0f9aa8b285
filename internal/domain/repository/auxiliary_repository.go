package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrRecordNotFound is the domain-specific error returned when a lookup
// does not resolve to a record. It deliberately does not distinguish
// "absent" from "inactive".
var ErrRecordNotFound = errors.New("record not found")

// AuxiliaryRepository is the shared persistence contract for the small
// value-holding entities (phones, emails, addresses, important dates,
// related persons, tags). Each entity type registers both read scopes;
// soft delete and restore persist immediately and never remove rows.
type AuxiliaryRepository[E any] interface {
	// Create persists a new standalone auxiliary row.
	Create(ctx context.Context, item *E) error

	// FindByID retrieves a row by id across all records, active or not.
	FindByID(ctx context.Context, id uuid.UUID) (*E, error)

	// List returns one page of rows under the given scope.
	List(ctx context.Context, scope Scope, query ListQuery) (*Page[*E], error)

	// Update persists changes to an existing row.
	Update(ctx context.Context, item *E) error

	// SetActive flips the soft-delete flag. Idempotent.
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}
