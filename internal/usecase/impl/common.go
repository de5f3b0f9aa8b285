// Package impl contains the implementation of the application's business logic.
package impl

import (
	"agenda/config"
	"agenda/internal/domain/repository"
	"agenda/internal/usecase"

	"github.com/google/uuid"
)

// parseID parses a path or payload id. A malformed id is reported with
// the same error as a missing record, so callers cannot probe which
// ids are syntactically valid.
func parseID(id string, notFound error) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, notFound
	}

	return parsed, nil
}

// Fallback page bounds for when the configuration omits them.
const (
	fallbackDefaultPageSize = 20
	fallbackMaxPageSize     = 100
)

// paginationDefaults carries the configured list page bounds.
type paginationDefaults struct {
	defaultPageSize int
	maxPageSize     int
}

func newPaginationDefaults(cfg *config.Config) paginationDefaults {
	defaults := paginationDefaults{
		defaultPageSize: fallbackDefaultPageSize,
		maxPageSize:     fallbackMaxPageSize,
	}
	if cfg != nil && cfg.Pagination != nil {
		if cfg.Pagination.DefaultPageSize > 0 {
			defaults.defaultPageSize = cfg.Pagination.DefaultPageSize
		}
		if cfg.Pagination.MaxPageSize > 0 {
			defaults.maxPageSize = cfg.Pagination.MaxPageSize
		}
	}

	return defaults
}

// normalizeListQuery clamps the caller-supplied paging values into a
// repository query. Out-of-range sizes snap to the configured bounds
// instead of erroring.
func (d paginationDefaults) normalizeListQuery(input *usecase.ListInput) repository.ListQuery {
	query := repository.ListQuery{
		Search:   input.Search,
		Ordering: input.Ordering,
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 {
		query.PageSize = d.defaultPageSize
	}
	if query.PageSize > d.maxPageSize {
		query.PageSize = d.maxPageSize
	}

	return query
}

// listScope maps the include-inactive switch onto a read scope.
func listScope(includeInactive bool) repository.Scope {
	if includeInactive {
		return repository.ScopeAll
	}

	return repository.ScopeActive
}
