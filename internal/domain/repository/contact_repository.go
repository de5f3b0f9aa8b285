// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"agenda/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrContactNotFound is a domain-specific error returned when a contact is not found.
var ErrContactNotFound = errors.New("contact not found")

// ContactAdditions groups the auxiliary items a partial update attaches
// to an existing contact. Each item is created as a new standalone row
// and linked into the matching association.
type ContactAdditions struct {
	Phones         []*entity.Phone
	Emails         []*entity.Email
	Addresses      []*entity.Address
	ImportantDates []*entity.ImportantDate
	RelatedPersons []*entity.RelatedPerson
	Tags           []*entity.Tag
}

// Empty reports whether the additions carry no items at all.
func (a *ContactAdditions) Empty() bool {
	if a == nil {
		return true
	}

	return len(a.Phones) == 0 && len(a.Emails) == 0 && len(a.Addresses) == 0 &&
		len(a.ImportantDates) == 0 && len(a.RelatedPersons) == 0 && len(a.Tags) == 0
}

// ContactRepository defines the operations for contact aggregate
// persistence. Writes that touch the contact row plus auxiliary rows
// must run inside a transaction supplied by the TransactionManager.
type ContactRepository interface {
	// Create persists the contact row, every auxiliary item present in
	// its collections, and the join rows linking them.
	Create(ctx context.Context, contact *entity.Contact) error

	// FindByID retrieves a contact with all collections preloaded,
	// across all records, active or not.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error)

	// FindActiveForOwner retrieves an active contact owned by the given
	// user, with all collections preloaded. Inactive, absent and
	// foreign-owned contacts are indistinguishable in the error.
	FindActiveForOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Contact, error)

	// ListActiveForOwner returns one page of the owner's active contacts
	// with all collections preloaded.
	ListActiveForOwner(ctx context.Context, ownerID uuid.UUID, query ListQuery) (*Page[*entity.Contact], error)

	// UpdateScalars persists changes to the contact's scalar fields only;
	// collections are untouched.
	UpdateScalars(ctx context.Context, contact *entity.Contact) error

	// Append creates each addition as a new auxiliary row and links it
	// to the contact. Existing associations are never removed or altered.
	Append(ctx context.Context, contactID uuid.UUID, additions *ContactAdditions) error

	// SetActive flips the soft-delete flag. Idempotent; the row and its
	// associations remain queryable through the unscoped path.
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}
