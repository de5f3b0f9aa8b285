package model

import (
	"time"

	"github.com/google/uuid"
)

// EmailModel mirrors the 'emails' table.
type EmailModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Address   string    `gorm:"type:varchar(254);not null"`
	Kind      string    `gorm:"type:varchar(10);not null;default:'main'"`
	Active    bool      `gorm:"not null;default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (EmailModel) TableName() string {
	return "emails"
}
