package model

import (
	"time"

	"github.com/google/uuid"
)

// RelatedPersonModel mirrors the 'related_persons' table.
type RelatedPersonModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name      string    `gorm:"type:varchar(150);not null"`
	Kind      string    `gorm:"type:varchar(15);not null;default:'friend'"`
	Active    bool      `gorm:"not null;default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RelatedPersonModel) TableName() string {
	return "related_persons"
}
