// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

// ListInput carries the common query parameters of every list endpoint.
type ListInput struct {
	Search   string // Substring match on the collection's searchable fields.
	Ordering string // Field name, optionally prefixed with "-" for descending.
	Page     int    // 1-based page number; zero means first page.
	PageSize int    // Items per page; zero means the configured default.

	// IncludeInactive switches the listing to the unscoped read path.
	// Only honored for staff callers; everyone else gets active records.
	IncludeInactive bool
}

// PageOutput is one page of results together with the total count.
type PageOutput[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}
