// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"
)

// Collection names accepted by the AuxiliaryUsecase. Each maps to one
// auxiliary entity type and its REST route group.
const (
	CollectionPhones         = "phones"
	CollectionEmails         = "emails"
	CollectionAddresses      = "addresses"
	CollectionImportantDates = "important-dates"
	CollectionRelatedPersons = "related-persons"
	CollectionTags           = "tags"
)

// AuxiliaryItemInput is the uniform write payload for auxiliary
// entities: a value plus a kind code. For tags the value is the label
// and the kind is ignored; for important dates the value uses the
// "2006-01-02" wire format.
type AuxiliaryItemInput struct {
	Value string `json:"value"`
	Kind  string `json:"kind"`
}

// AuxiliaryItemOutput is the uniform external representation of an
// auxiliary entity.
type AuxiliaryItemOutput struct {
	ID        string    `json:"id"`
	Value     string    `json:"value"`
	Kind      string    `json:"kind"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuxiliaryUsecase defines the uniform CRUD surface shared by the six
// auxiliary entity types. The collection argument selects the type and
// must be one of the Collection constants.
type AuxiliaryUsecase interface {
	// Create persists a new standalone auxiliary item.
	Create(ctx context.Context, collection string, input *AuxiliaryItemInput) (*AuxiliaryItemOutput, error)

	// Get retrieves an item by id, active or not.
	Get(ctx context.Context, collection, id string) (*AuxiliaryItemOutput, error)

	// List returns one page of items.
	List(ctx context.Context, collection string, input *ListInput) (*PageOutput[*AuxiliaryItemOutput], error)

	// Update replaces an item's value and kind.
	Update(ctx context.Context, collection, id string, input *AuxiliaryItemInput) (*AuxiliaryItemOutput, error)

	// Delete soft-deletes an item.
	Delete(ctx context.Context, collection, id string) error

	// Restore reactivates a soft-deleted item.
	Restore(ctx context.Context, collection, id string) error
}
