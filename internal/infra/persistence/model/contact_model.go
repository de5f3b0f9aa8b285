package model

import (
	"time"

	"github.com/google/uuid"
)

// ContactModel mirrors the 'contacts' table. Each auxiliary collection
// is a many-to-many association through its own join table, so an
// auxiliary row keeps independent identity and is never cascade-deleted
// from a contact.
type ContactModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name      string    `gorm:"type:varchar(50);not null"`
	LastName  string    `gorm:"type:varchar(50);not null"`
	Company   string    `gorm:"type:varchar(50)"`
	Website   string    `gorm:"type:varchar(200)"`
	SIP       string    `gorm:"type:varchar(50);column:sip"`
	Notes     string    `gorm:"type:varchar(250)"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Active    bool      `gorm:"not null;default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Phones         []*PhoneModel         `gorm:"many2many:contact_phones"`
	Emails         []*EmailModel         `gorm:"many2many:contact_emails"`
	Addresses      []*AddressModel       `gorm:"many2many:contact_addresses"`
	ImportantDates []*ImportantDateModel `gorm:"many2many:contact_important_dates"`
	RelatedPersons []*RelatedPersonModel `gorm:"many2many:contact_related_persons"`
	Tags           []*TagModel           `gorm:"many2many:contact_tags"`
}

// TableName explicitly sets the table name for GORM.
func (ContactModel) TableName() string {
	return "contacts"
}
