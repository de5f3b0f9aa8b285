// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application
// layers and the infrastructure layer.
package repository

// Scope selects one of the two read paths over entity storage.
//
// End-user-facing listings must use ScopeActive; ScopeAll is reserved
// for administrative listing and by-id lookup.
type Scope int

const (
	// ScopeActive restricts reads to records with the active flag set.
	ScopeActive Scope = iota
	// ScopeAll reads every record regardless of the active flag.
	ScopeAll
)

// ListQuery carries the search, ordering and pagination parameters of a
// list endpoint. Zero values mean "no search, default order, first page".
type ListQuery struct {
	Search   string // Substring match on the entity's searchable fields.
	Ordering string // Column name, optionally prefixed with "-" for descending.
	Page     int    // 1-based page number.
	PageSize int    // Items per page.
}

// Page is one page of a list result together with the total count.
type Page[T any] struct {
	Items    []T
	Total    int64
	Page     int
	PageSize int
}
