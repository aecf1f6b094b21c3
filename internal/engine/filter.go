package engine

import (
	"strings"

	"golang.org/x/text/cases"

	"catalogdash/internal/models"
)

// Criteria selects products for the table. Zero fields impose no constraint.
type Criteria struct {
	Search   string
	Category string
	Sold     *bool
}

func (c Criteria) IsZero() bool {
	return c.Search == "" && c.Category == "" && c.Sold == nil
}

// Key is a stable string form of the criteria, used for caching.
func (c Criteria) Key() string {
	sold := "all"
	if c.Sold != nil {
		sold = "false"
		if *c.Sold {
			sold = "true"
		}
	}
	return strings.Join([]string{c.Search, c.Category, sold}, "\x00")
}

// Filter returns the products matching every supplied criterion. The input
// slice is never modified.
func Filter(products []models.Product, c Criteria) []models.Product {
	out := make([]models.Product, 0, len(products))

	fold := cases.Fold()
	needle := fold.String(c.Search)

	for _, p := range products {
		if c.Search != "" && !strings.Contains(fold.String(p.Title), needle) {
			continue
		}
		if c.Category != "" && p.Category != c.Category {
			continue
		}
		if c.Sold != nil && p.Sold != *c.Sold {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories lists the distinct non-empty Category values in first-encounter
// order. These are the options a category filter can match.
func Categories(products []models.Product) []string {
	out := make([]string, 0)
	seen := make(map[string]struct{})
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
