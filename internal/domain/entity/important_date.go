// Package entity contains the core business objects of the project.
package entity

import "time"

// DateKind classifies what an important date commemorates.
type DateKind string

const (
	DateKindBirthday    DateKind = "birthday"
	DateKindAnniversary DateKind = "anniversary"
	DateKindOther       DateKind = "other"
)

// DefaultDateKind is assumed when a payload omits the kind code.
const DefaultDateKind = DateKindBirthday

// DateLayout is the wire format for important dates.
const DateLayout = "2006-01-02"

// String returns the string representation of the DateKind.
func (k DateKind) String() string {
	return string(k)
}

// IsValid checks if the DateKind is one of the enumerated codes.
func (k DateKind) IsValid() bool {
	switch k {
	case DateKindBirthday, DateKindAnniversary, DateKindOther:
		return true
	default:
		return false
	}
}

// ImportantDate is an auxiliary entity holding one calendar date tied
// to a contact, such as a birthday or an anniversary.
type ImportantDate struct {
	Record
	Date time.Time // Date-only; the time portion is ignored.
	Kind DateKind  // What the date commemorates.
}

// Value returns the date in wire format, used by flattened list views.
func (d *ImportantDate) Value() string {
	return d.Date.Format(DateLayout)
}
