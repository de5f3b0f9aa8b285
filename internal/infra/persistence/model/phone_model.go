package model

import (
	"time"

	"github.com/google/uuid"
)

// PhoneModel mirrors the 'phones' table.
type PhoneModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Number    string    `gorm:"type:varchar(50);not null"`
	Kind      string    `gorm:"type:varchar(10);not null;default:'mobile'"`
	Active    bool      `gorm:"not null;default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PhoneModel) TableName() string {
	return "phones"
}
