package engine

import (
	"testing"

	"catalogdash/internal/models"
)

func boolPtr(b bool) *bool { return &b }

func catalog() []models.Product {
	return []models.Product{
		{ID: "1", Title: "Toy Car", Category: "Toys", Sold: true},
		{ID: "2", Title: "Wooden TOY train", Category: "Toys", Sold: false},
		{ID: "3", Title: "Go Programming", Category: "Books", Sold: true},
		{ID: "4", Title: "Éclair mould", Category: "Kitchen", Sold: false},
		{ID: "5", Title: "Garden hose", Category: "", Sold: false},
	}
}

func ids(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"no criteria passes everything", Criteria{}, []string{"1", "2", "3", "4", "5"}},
		{"search is case-insensitive", Criteria{Search: "toy"}, []string{"1", "2"}},
		{"search folds accents case", Criteria{Search: "éCLAIR"}, []string{"4"}},
		{"category is exact", Criteria{Category: "Toys"}, []string{"1", "2"}},
		{"category is case-sensitive", Criteria{Category: "toys"}, []string{}},
		{"sold true", Criteria{Sold: boolPtr(true)}, []string{"1", "3"}},
		{"sold false", Criteria{Sold: boolPtr(false)}, []string{"2", "4", "5"}},
		{"criteria are combined", Criteria{Search: "toy", Category: "Toys", Sold: boolPtr(false)}, []string{"2"}},
		{"no match", Criteria{Search: "spaceship"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(catalog(), tt.criteria))
			if !equalIDs(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFilterEmptyInput(t *testing.T) {
	for _, c := range []Criteria{{}, {Search: "x"}, {Category: "Toys"}, {Sold: boolPtr(true)}} {
		if got := Filter(nil, c); len(got) != 0 {
			t.Errorf("Expected empty result for %+v, got %d", c, len(got))
		}
	}
}

func TestFilterCategoryOnlyReturnsThatCategory(t *testing.T) {
	products := catalog()
	for _, c := range Categories(products) {
		for _, p := range Filter(products, Criteria{Category: c}) {
			if p.Category != c {
				t.Errorf("Filter(%q) returned product in %q", c, p.Category)
			}
		}
	}
}

func TestFilterSoldPartitions(t *testing.T) {
	products := catalog()
	sold := Filter(products, Criteria{Sold: boolPtr(true)})
	unsold := Filter(products, Criteria{Sold: boolPtr(false)})

	if len(sold)+len(unsold) != len(products) {
		t.Fatalf("Partition sizes %d + %d != %d", len(sold), len(unsold), len(products))
	}
	seen := make(map[string]int)
	for _, p := range append(sold, unsold...) {
		seen[p.ID]++
	}
	for _, p := range products {
		if seen[p.ID] != 1 {
			t.Errorf("Product %s appears %d times", p.ID, seen[p.ID])
		}
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	products := catalog()
	before := ids(products)

	_ = Filter(products, Criteria{Search: "toy", Sold: boolPtr(true)})

	if !equalIDs(ids(products), before) {
		t.Errorf("Input changed: %v", ids(products))
	}
}

func TestCategories(t *testing.T) {
	got := Categories(catalog())
	want := []string{"Toys", "Books", "Kitchen"}
	if !equalIDs(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestCriteriaKey(t *testing.T) {
	a := Criteria{Search: "a", Sold: boolPtr(true)}
	b := Criteria{Search: "a", Sold: boolPtr(false)}
	c := Criteria{Search: "a"}
	if a.Key() == b.Key() || b.Key() == c.Key() || a.Key() == c.Key() {
		t.Errorf("Keys should differ: %q %q %q", a.Key(), b.Key(), c.Key())
	}
	if !(Criteria{}).IsZero() || a.IsZero() {
		t.Error("IsZero mismatch")
	}
}
