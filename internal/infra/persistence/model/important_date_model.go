package model

import (
	"time"

	"github.com/google/uuid"
)

// ImportantDateModel mirrors the 'important_dates' table.
type ImportantDateModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Date      time.Time `gorm:"type:date;not null"`
	Kind      string    `gorm:"type:varchar(15);not null;default:'birthday'"`
	Active    bool      `gorm:"not null;default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ImportantDateModel) TableName() string {
	return "important_dates"
}
