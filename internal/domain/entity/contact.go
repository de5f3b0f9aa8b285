// Package entity contains the core business objects of the project.
package entity

import "github.com/google/uuid"

// Contact is the aggregate root of the address book. It owns scalar
// identity fields plus a many-to-many collection of each auxiliary
// entity type. A contact belongs to exactly one user.
type Contact struct {
	Record
	Name     string    // Required given name.
	LastName string    // Required family name.
	Company  string    // Optional company name.
	Website  string    // Optional website URL.
	SIP      string    // Optional SIP handle.
	Notes    string    // Optional free-text notes.
	OwnerID  uuid.UUID // The user this contact belongs to.

	Phones         []*Phone
	Emails         []*Email
	Addresses      []*Address
	ImportantDates []*ImportantDate
	RelatedPersons []*RelatedPerson
	Tags           []*Tag
}

// HasPhone reports whether an active phone with the given number and
// kind is already associated. Used by the aggregate writer to keep
// partial updates idempotent.
func (c *Contact) HasPhone(number string, kind PhoneKind) bool {
	for _, p := range c.Phones {
		if p.Number == number && p.Kind == kind {
			return true
		}
	}

	return false
}

// HasEmail reports whether an email with the given address and kind is
// already associated.
func (c *Contact) HasEmail(address string, kind EmailKind) bool {
	for _, e := range c.Emails {
		if e.Address == address && e.Kind == kind {
			return true
		}
	}

	return false
}

// HasAddress reports whether a street address with the given value and
// kind is already associated.
func (c *Contact) HasAddress(street string, kind AddressKind) bool {
	for _, a := range c.Addresses {
		if a.Street == street && a.Kind == kind {
			return true
		}
	}

	return false
}

// HasImportantDate reports whether a date with the given value and kind
// is already associated. Comparison is on the date portion only.
func (c *Contact) HasImportantDate(value string, kind DateKind) bool {
	for _, d := range c.ImportantDates {
		if d.Value() == value && d.Kind == kind {
			return true
		}
	}

	return false
}

// HasRelatedPerson reports whether a related person with the given name
// and kind is already associated.
func (c *Contact) HasRelatedPerson(name string, kind RelationKind) bool {
	for _, p := range c.RelatedPersons {
		if p.Name == name && p.Kind == kind {
			return true
		}
	}

	return false
}

// HasTag reports whether the tag label is already associated.
func (c *Contact) HasTag(label TagKind) bool {
	for _, t := range c.Tags {
		if t.Label == label {
			return true
		}
	}

	return false
}
