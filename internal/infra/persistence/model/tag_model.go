package model

import (
	"time"

	"github.com/google/uuid"
)

// TagModel mirrors the 'tags' table. A tag's label doubles as its kind.
type TagModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Label     string    `gorm:"type:varchar(10);not null;default:'friend'"`
	Active    bool      `gorm:"not null;default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (TagModel) TableName() string {
	return "tags"
}
