// Package entity contains the core business objects of the project.
package entity

// AddressKind classifies what a street address is used for.
type AddressKind string

const (
	AddressKindMain  AddressKind = "main"
	AddressKindWork  AddressKind = "work"
	AddressKindOther AddressKind = "other"
)

// DefaultAddressKind is assumed when a payload omits the kind code.
const DefaultAddressKind = AddressKindMain

// String returns the string representation of the AddressKind.
func (k AddressKind) String() string {
	return string(k)
}

// IsValid checks if the AddressKind is one of the enumerated codes.
func (k AddressKind) IsValid() bool {
	switch k {
	case AddressKindMain, AddressKindWork, AddressKindOther:
		return true
	default:
		return false
	}
}

// Address is an auxiliary entity holding one street address.
type Address struct {
	Record
	Street string      // The full, human-readable street address.
	Kind   AddressKind // The category of the address.
}

// Value returns the semantic value field, used by flattened list views.
func (a *Address) Value() string {
	return a.Street
}
