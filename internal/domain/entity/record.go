// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Record is the identity and audit data shared by every persisted entity.
// Active is the soft-delete flag: records are never physically removed
// through the application API, only marked inactive.
type Record struct {
	ID        uuid.UUID // The Global Unique Identifier for the record.
	CreatedAt time.Time // Set once when the record is first persisted.
	UpdatedAt time.Time // Refreshed on every mutation.
	Active    bool      // False means logically deleted.
}

// SoftDeletable is the capability contract implemented by all entities
// that support logical deletion.
type SoftDeletable interface {
	SoftDelete()
	Restore()
	IsActive() bool
}

// SoftDelete marks the record inactive. Calling it on an already
// inactive record leaves state unchanged.
func (r *Record) SoftDelete() {
	r.Active = false
}

// Restore marks the record active again. Idempotent.
func (r *Record) Restore() {
	r.Active = true
}

// IsActive reports whether the record is logically present.
func (r *Record) IsActive() bool {
	return r.Active
}
