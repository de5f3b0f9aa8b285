// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"
)

// --- Input DTOs ---

// PhoneItemInput is one phone entry inside a contact payload.
type PhoneItemInput struct {
	Number string `json:"number" validate:"required"`
	Kind   string `json:"kind"`
}

// EmailItemInput is one email entry inside a contact payload.
type EmailItemInput struct {
	Address string `json:"address" validate:"required"`
	Kind    string `json:"kind"`
}

// AddressItemInput is one postal address entry inside a contact payload.
type AddressItemInput struct {
	Street string `json:"street" validate:"required"`
	Kind   string `json:"kind"`
}

// ImportantDateItemInput is one date entry inside a contact payload.
// Date uses the "2006-01-02" wire format.
type ImportantDateItemInput struct {
	Date string `json:"date" validate:"required"`
	Kind string `json:"kind"`
}

// RelatedPersonItemInput is one related-person entry inside a contact payload.
type RelatedPersonItemInput struct {
	Name string `json:"name" validate:"required"`
	Kind string `json:"kind"`
}

// TagItemInput is one tag entry inside a contact payload.
type TagItemInput struct {
	Label string `json:"label"`
}

// CreateContactInput defines the full nested payload for creating a
// contact together with its auxiliary collections in one request.
type CreateContactInput struct {
	OwnerID string `json:"-"`

	Name     string `json:"name" validate:"required"`
	LastName string `json:"last_name" validate:"required"`
	Company  string `json:"company"`
	Website  string `json:"website"`
	SIP      string `json:"sip"`
	Notes    string `json:"notes"`

	Phones         []PhoneItemInput         `json:"phones" validate:"required,min=1,dive"`
	Emails         []EmailItemInput         `json:"emails" validate:"dive"`
	Addresses      []AddressItemInput       `json:"addresses" validate:"dive"`
	ImportantDates []ImportantDateItemInput `json:"important_dates" validate:"dive"`
	RelatedPersons []RelatedPersonItemInput `json:"related_persons" validate:"dive"`
	Tags           []TagItemInput           `json:"tags" validate:"dive"`
}

// UpdateContactInput defines a partial update. Nil scalar pointers
// leave the field unchanged; collection entries are additive only and
// entries already present on the contact are silently skipped.
type UpdateContactInput struct {
	ID      string `json:"-"`
	OwnerID string `json:"-"`

	Name     *string `json:"name"`
	LastName *string `json:"last_name"`
	Company  *string `json:"company"`
	Website  *string `json:"website"`
	SIP      *string `json:"sip"`
	Notes    *string `json:"notes"`

	Phones         []PhoneItemInput         `json:"phones" validate:"dive"`
	Emails         []EmailItemInput         `json:"emails" validate:"dive"`
	Addresses      []AddressItemInput       `json:"addresses" validate:"dive"`
	ImportantDates []ImportantDateItemInput `json:"important_dates" validate:"dive"`
	RelatedPersons []RelatedPersonItemInput `json:"related_persons" validate:"dive"`
	Tags           []TagItemInput           `json:"tags" validate:"dive"`
}

// ListContactsInput defines the query parameters for the contact listing.
type ListContactsInput struct {
	ListInput
	OwnerID string
}

// --- Output DTOs ---

// ContactItemOutput is one auxiliary entry in a contact detail view.
type ContactItemOutput struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	Kind  string `json:"kind"`
}

// ContactOutput is the full detail representation of a contact with
// its collections expanded.
type ContactOutput struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	LastName  string    `json:"last_name"`
	Company   string    `json:"company"`
	Website   string    `json:"website"`
	SIP       string    `json:"sip"`
	Notes     string    `json:"notes"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Phones         []ContactItemOutput `json:"phones"`
	Emails         []ContactItemOutput `json:"emails"`
	Addresses      []ContactItemOutput `json:"addresses"`
	ImportantDates []ContactItemOutput `json:"important_dates"`
	RelatedPersons []ContactItemOutput `json:"related_persons"`
	Tags           []ContactItemOutput `json:"tags"`
}

// ContactListItemOutput is the flattened list representation: each
// collection collapses to the bare values under a singular key, so a
// list row stays small enough for table views.
type ContactListItemOutput struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Company  string `json:"company"`

	Phone         []string `json:"phone"`
	Email         []string `json:"email"`
	Address       []string `json:"address"`
	ImportantDate []string `json:"important_date"`
	RelatedPerson []string `json:"related_person"`
	Tag           []string `json:"tag"`
}

// ContactUsecase defines the interface for contact aggregate operations.
type ContactUsecase interface {
	// CreateContact persists a contact and all nested auxiliary items
	// atomically.
	CreateContact(ctx context.Context, input *CreateContactInput) (*ContactOutput, error)

	// GetContact retrieves one of the owner's active contacts in full.
	GetContact(ctx context.Context, ownerID, id string) (*ContactOutput, error)

	// ListContacts returns one page of the owner's active contacts in
	// the flattened list shape.
	ListContacts(ctx context.Context, input *ListContactsInput) (*PageOutput[*ContactListItemOutput], error)

	// UpdateContact applies a partial update: scalar changes plus
	// additive collection entries, atomically.
	UpdateContact(ctx context.Context, input *UpdateContactInput) (*ContactOutput, error)

	// DeleteContact soft-deletes one of the owner's contacts.
	DeleteContact(ctx context.Context, ownerID, id string) error

	// RestoreContact reactivates one of the owner's soft-deleted contacts.
	RestoreContact(ctx context.Context, ownerID, id string) error

	// ContactVCardQR renders one of the owner's active contacts as a
	// vCard QR code in PNG format.
	ContactVCardQR(ctx context.Context, ownerID, id string) ([]byte, error)
}
