// file: internals/helpers/list_params.go
package helper

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ListParams is the shared POST body for every list endpoint. Embedded in
// each feature's list request DTO so validator tags run with the rest of
// the payload.
type ListParams struct {
	Slugs    []string          `json:"slugs" validate:"omitempty,dive,len=36"`
	Status   string            `json:"status" validate:"omitempty,max=32"`
	Search   map[string]string `json:"search" validate:"omitempty"`
	OrderBy  string            `json:"order_by" validate:"omitempty,max=64"`
	SortedBy string            `json:"sorted_by" validate:"omitempty,oneof=asc desc"`
	Skip     int               `json:"skip" validate:"omitempty,min=0,max=1000"`
	Limit    int               `json:"limit" validate:"omitempty,min=1,max=100"`
}

// ListScope is a feature's column allowlist. Map keys are the API field
// names; values the real columns. Nothing outside the maps ever reaches
// the SQL.
type ListScope struct {
	SlugColumn   string
	StatusColumn string
	// Default sort: primary key, newest first.
	IDColumn   string
	Searchable map[string]string
	Orderable  map[string]string
}

// ApplyListFilters adds slug/status/search predicates. Search is a
// case-insensitive prefix match per field.
func ApplyListFilters(q *gorm.DB, p ListParams, sc ListScope) (*gorm.DB, error) {
	if len(p.Slugs) > 0 {
		q = q.Where(sc.SlugColumn+" IN ?", p.Slugs)
	}
	if p.Status != "" {
		q = q.Where(sc.StatusColumn+" = ?", p.Status)
	}
	for field, val := range p.Search {
		col, ok := sc.Searchable[field]
		if !ok {
			return nil, fmt.Errorf("search field %q is not allowed", field)
		}
		val = strings.TrimSpace(val)
		if val == "" {
			continue
		}
		q = q.Where("LOWER("+col+") LIKE ?", strings.ToLower(val)+"%")
	}
	return q, nil
}

// OrderClause resolves order_by/sorted_by against the allowlist.
// Defaults to the primary key descending.
func OrderClause(p ListParams, sc ListScope) (string, error) {
	col := sc.IDColumn
	if p.OrderBy != "" {
		var ok bool
		col, ok = sc.Orderable[p.OrderBy]
		if !ok {
			return "", fmt.Errorf("order_by field %q is not allowed", p.OrderBy)
		}
	}
	dir := "DESC"
	if p.SortedBy == "asc" {
		dir = "ASC"
	}
	return col + " " + dir, nil
}

// Page returns the effective skip/limit. Limit defaults to 100 when the
// body omits it.
func (p ListParams) Page() (skip, limit int) {
	limit = p.Limit
	if limit == 0 {
		limit = 100
	}
	return p.Skip, limit
}
