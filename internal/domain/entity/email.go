// Package entity contains the core business objects of the project.
package entity

// EmailKind classifies what an email address is used for.
type EmailKind string

const (
	EmailKindMain  EmailKind = "main"
	EmailKindWork  EmailKind = "work"
	EmailKindOther EmailKind = "other"
)

// DefaultEmailKind is assumed when a payload omits the kind code.
const DefaultEmailKind = EmailKindMain

// String returns the string representation of the EmailKind.
func (k EmailKind) String() string {
	return string(k)
}

// IsValid checks if the EmailKind is one of the enumerated codes.
func (k EmailKind) IsValid() bool {
	switch k {
	case EmailKindMain, EmailKindWork, EmailKindOther:
		return true
	default:
		return false
	}
}

// Email is an auxiliary entity holding one email address.
type Email struct {
	Record
	Address string    // The email address.
	Kind    EmailKind // The category of the address.
}

// Value returns the semantic value field, used by flattened list views.
func (e *Email) Value() string {
	return e.Address
}
