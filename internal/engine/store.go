package engine

import (
	"time"

	"catalogdash/internal/models"
)

// State is an immutable snapshot of everything the dashboard renders from.
// Transitions go through Reduce; a State is never modified once published.
type State struct {
	Products []models.Product
	Criteria Criteria

	Loading  bool
	Err      string
	Version  uint64
	LoadedAt time.Time
}

// Initial is the state before the first fetch resolves.
func Initial() *State {
	return &State{Loading: true, Products: []models.Product{}}
}

// Action is a state transition.
type Action interface {
	apply(s State) State
}

// Loaded replaces the product list with a fresh fetch result.
type Loaded struct {
	Products []models.Product
	At       time.Time
}

func (a Loaded) apply(s State) State {
	s.Products = append(make([]models.Product, 0, len(a.Products)), a.Products...)
	s.Loading = false
	s.Err = ""
	s.Version++
	s.LoadedAt = a.At
	return s
}

// LoadFailed degrades to the empty list and clears the loading flag.
type LoadFailed struct {
	Err error
	At  time.Time
}

func (a LoadFailed) apply(s State) State {
	s.Products = []models.Product{}
	s.Loading = false
	s.Err = ""
	if a.Err != nil {
		s.Err = a.Err.Error()
	}
	s.Version++
	s.LoadedAt = a.At
	return s
}

type SetSearch string

func (a SetSearch) apply(s State) State {
	s.Criteria.Search = string(a)
	return s
}

type SetCategory string

func (a SetCategory) apply(s State) State {
	s.Criteria.Category = string(a)
	return s
}

// SetSold filters on the sold flag; a nil Sold shows every product.
type SetSold struct {
	Sold *bool
}

func (a SetSold) apply(s State) State {
	if a.Sold == nil {
		s.Criteria.Sold = nil
		return s
	}
	v := *a.Sold
	s.Criteria.Sold = &v
	return s
}

// ClearFilters resets every criterion.
type ClearFilters struct{}

func (ClearFilters) apply(s State) State {
	s.Criteria = Criteria{}
	return s
}

// Reduce applies actions in order and returns the resulting snapshot.
func Reduce(s *State, actions ...Action) *State {
	next := *s
	for _, a := range actions {
		next = a.apply(next)
	}
	return &next
}

// Filtered is the table view of the snapshot.
func (s *State) Filtered() []models.Product {
	return Filter(s.Products, s.Criteria)
}

// Aggregate is the chart view of the snapshot. Charts ignore the table filters.
func (s *State) Aggregate() *models.DashboardData {
	return Aggregate(s.Products)
}

func (s *State) Categories() []string {
	return Categories(s.Products)
}
