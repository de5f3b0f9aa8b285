// Package entity contains the core business objects of the project.
package entity

// TagKind is the enumerated set of tag labels. Unlike the other
// auxiliary entities, a tag's value and category are the same field.
type TagKind string

const (
	TagKindCustomer TagKind = "customer"
	TagKindFriend   TagKind = "friend"
	TagKindSupplier TagKind = "supplier"
)

// DefaultTagKind is assumed when a payload omits the label.
const DefaultTagKind = TagKindFriend

// String returns the string representation of the TagKind.
func (k TagKind) String() string {
	return string(k)
}

// IsValid checks if the TagKind is one of the enumerated labels.
func (k TagKind) IsValid() bool {
	switch k {
	case TagKindCustomer, TagKindFriend, TagKindSupplier:
		return true
	default:
		return false
	}
}

// Tag is an auxiliary entity grouping contacts under a label.
type Tag struct {
	Record
	Label TagKind // The tag label, constrained to the enumerated set.
}

// Value returns the semantic value field, used by flattened list views.
func (t *Tag) Value() string {
	return t.Label.String()
}
