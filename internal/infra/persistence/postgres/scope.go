package postgres

import (
	"fmt"
	"strings"

	"agenda/internal/domain/repository"

	"gorm.io/gorm"
)

// scoped narrows a query to active rows unless the caller asked for the
// full table, soft-deleted rows included.
func scoped(db *gorm.DB, scope repository.Scope) *gorm.DB {
	if scope == repository.ScopeAll {
		return db
	}

	return db.Where("active = ?", true)
}

// applySearch matches the query term case-insensitively against each of
// the given columns. An empty term leaves the query untouched.
func applySearch(db *gorm.DB, term string, columns ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return db
	}

	pattern := "%" + term + "%"
	conditions := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, column := range columns {
		conditions = append(conditions, column+" ILIKE ?")
		args = append(args, pattern)
	}

	return db.Where(strings.Join(conditions, " OR "), args...)
}

// applyOrdering applies the requested ordering when its field is in the
// whitelist. A leading "-" reverses the direction. Unknown fields fall
// back to the default ordering so callers cannot inject SQL.
func applyOrdering(db *gorm.DB, ordering string, orderable map[string]string, fallback string) *gorm.DB {
	ordering = strings.TrimSpace(ordering)
	descending := strings.HasPrefix(ordering, "-")
	field := strings.TrimPrefix(ordering, "-")

	column, ok := orderable[field]
	if !ok {
		return db.Order(fallback)
	}

	if descending {
		return db.Order(fmt.Sprintf("%s DESC", column))
	}

	return db.Order(column)
}

// applyPagination clamps the page and translates it into limit/offset.
func applyPagination(db *gorm.DB, query repository.ListQuery) *gorm.DB {
	page := query.Page
	if page < 1 {
		page = 1
	}

	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = 1
	}

	return db.Limit(pageSize).Offset((page - 1) * pageSize)
}
