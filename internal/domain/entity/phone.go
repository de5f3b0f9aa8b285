// Package entity contains the core business objects of the project.
package entity

// PhoneKind classifies what a phone number is used for.
type PhoneKind string

const (
	PhoneKindMobile  PhoneKind = "mobile"
	PhoneKindWork    PhoneKind = "work"
	PhoneKindHome    PhoneKind = "home"
	PhoneKindMain    PhoneKind = "main"
	PhoneKindWorkFax PhoneKind = "work_fax"
	PhoneKindHomeFax PhoneKind = "home_fax"
	PhoneKindPager   PhoneKind = "pager"
	PhoneKindOther   PhoneKind = "other"
)

// DefaultPhoneKind is assumed when a payload omits the kind code.
const DefaultPhoneKind = PhoneKindMobile

// String returns the string representation of the PhoneKind.
func (k PhoneKind) String() string {
	return string(k)
}

// IsValid checks if the PhoneKind is one of the enumerated codes.
func (k PhoneKind) IsValid() bool {
	switch k {
	case PhoneKindMobile, PhoneKindWork, PhoneKindHome, PhoneKindMain,
		PhoneKindWorkFax, PhoneKindHomeFax, PhoneKindPager, PhoneKindOther:
		return true
	default:
		return false
	}
}

// Phone is an auxiliary entity holding one phone number. Phones have
// independent identity and are linked to contacts many-to-many.
type Phone struct {
	Record
	Number string    // The phone number, E.164 or free-form.
	Kind   PhoneKind // The category of the number.
}

// Value returns the semantic value field, used by flattened list views.
func (p *Phone) Value() string {
	return p.Number
}
