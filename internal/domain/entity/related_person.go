// Package entity contains the core business objects of the project.
package entity

// RelationKind classifies how a related person is connected to a contact.
type RelationKind string

const (
	RelationKindAssistant  RelationKind = "assistant"
	RelationKindBrother    RelationKind = "brother"
	RelationKindChild      RelationKind = "child"
	RelationKindPartner    RelationKind = "partner"
	RelationKindFather     RelationKind = "father"
	RelationKindFriend     RelationKind = "friend"
	RelationKindSupervisor RelationKind = "supervisor"
	RelationKindMother     RelationKind = "mother"
	RelationKindAssociate  RelationKind = "associate"
	RelationKindReferral   RelationKind = "referral"
	RelationKindRelative   RelationKind = "relative"
	RelationKindSister     RelationKind = "sister"
	RelationKindSpouse     RelationKind = "spouse"
	RelationKindOther      RelationKind = "other"
)

// DefaultRelationKind is assumed when a payload omits the kind code.
const DefaultRelationKind = RelationKindFriend

// String returns the string representation of the RelationKind.
func (k RelationKind) String() string {
	return string(k)
}

// IsValid checks if the RelationKind is one of the enumerated codes.
func (k RelationKind) IsValid() bool {
	switch k {
	case RelationKindAssistant, RelationKindBrother, RelationKindChild,
		RelationKindPartner, RelationKindFather, RelationKindFriend,
		RelationKindSupervisor, RelationKindMother, RelationKindAssociate,
		RelationKindReferral, RelationKindRelative, RelationKindSister,
		RelationKindSpouse, RelationKindOther:
		return true
	default:
		return false
	}
}

// RelatedPerson is an auxiliary entity holding the name of a person
// connected to a contact, together with the nature of the relation.
type RelatedPerson struct {
	Record
	Name string       // The related person's name.
	Kind RelationKind // How the person relates to the contact.
}

// Value returns the semantic value field, used by flattened list views.
func (p *RelatedPerson) Value() string {
	return p.Name
}
