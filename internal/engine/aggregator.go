package engine

import (
	"strings"

	"catalogdash/internal/models"
)

// UncategorizedLabel replaces a missing or blank category in every chart.
const UncategorizedLabel = "Uncategorized"

// Palette is cycled through when colouring chart series and pie slices.
var Palette = []string{"#0088FE", "#00C49F", "#FFBB28", "#FF8042", "#FF499E"}

func categoryOf(p models.Product) string {
	if c := strings.TrimSpace(p.Category); c != "" {
		return p.Category
	}
	return UncategorizedLabel
}

// Groups holds the (category, month) buckets in first-insertion order.
type Groups struct {
	keys    []string
	buckets map[string]*models.GroupAggregate

	// Skipped counts records left out because DateOfSale did not parse.
	Skipped int
}

func newGroups() *Groups {
	return &Groups{buckets: make(map[string]*models.GroupAggregate)}
}

func groupKey(category, month string) string {
	return category + "-" + month
}

func (g *Groups) Len() int { return len(g.keys) }

// Get looks a bucket up by its composite key, e.g. "Toys-January 2024".
func (g *Groups) Get(key string) (models.GroupAggregate, bool) {
	b, ok := g.buckets[key]
	if !ok {
		return models.GroupAggregate{}, false
	}
	return *b, true
}

func (g *Groups) Keys() []string {
	return append([]string(nil), g.keys...)
}

// All returns copies of the buckets in insertion order.
func (g *Groups) All() []models.GroupAggregate {
	out := make([]models.GroupAggregate, 0, len(g.keys))
	for _, k := range g.keys {
		out = append(out, *g.buckets[k])
	}
	return out
}

func (g *Groups) add(p models.Product) {
	month, ok := MonthLabel(p.DateOfSale)
	if !ok {
		g.Skipped++
		return
	}
	category := categoryOf(p)
	key := groupKey(category, month)

	b, exists := g.buckets[key]
	if !exists {
		b = &models.GroupAggregate{Category: category, Month: month}
		g.buckets[key] = b
		g.keys = append(g.keys, key)
	}
	b.TotalSales = b.TotalSales.Add(p.Price)
	b.TotalItems++
}

// GroupByCategoryAndMonth buckets products by category and month of sale,
// summing price and counting records.
func GroupByCategoryAndMonth(products []models.Product) *Groups {
	g := newGroups()
	for _, p := range products {
		g.add(p)
	}
	return g
}

func pivot(g *Groups, value func(models.GroupAggregate) float64) []models.PivotRow {
	rows := make([]models.PivotRow, 0)
	index := make(map[string]int)

	for _, k := range g.keys {
		b := g.buckets[k]
		i, ok := index[b.Month]
		if !ok {
			i = len(rows)
			index[b.Month] = i
			rows = append(rows, models.PivotRow{Name: b.Month})
		}
		rows[i].Set(b.Category, value(*b))
	}
	return rows
}

// SalesPivot yields one row per month with total sales per category.
func SalesPivot(g *Groups) []models.PivotRow {
	return pivot(g, func(b models.GroupAggregate) float64 {
		return b.TotalSales.InexactFloat64()
	})
}

// ItemsPivot yields one row per month with item counts per category.
func ItemsPivot(g *Groups) []models.PivotRow {
	return pivot(g, func(b models.GroupAggregate) float64 {
		return float64(b.TotalItems)
	})
}

// CategoryTally counts records per category over the whole list, dated or not.
func CategoryTally(products []models.Product) []models.CategoryCount {
	out := make([]models.CategoryCount, 0)
	index := make(map[string]int)
	for _, p := range products {
		c := categoryOf(p)
		if i, ok := index[c]; ok {
			out[i].Value++
			continue
		}
		index[c] = len(out)
		out = append(out, models.CategoryCount{Name: c, Value: 1})
	}
	return out
}

// Series lists every category key across rows so that a chart draws one
// series per category, not just the ones present in the first month.
func Series(rows []models.PivotRow) []models.SeriesKey {
	out := make([]models.SeriesKey, 0)
	seen := make(map[string]struct{})
	for _, r := range rows {
		for _, v := range r.Values {
			if _, ok := seen[v.Key]; ok || v.Key == models.PivotKeyName {
				continue
			}
			seen[v.Key] = struct{}{}
			out = append(out, models.SeriesKey{Key: v.Key, Color: Palette[len(out)%len(Palette)]})
		}
	}
	return out
}

// Aggregate derives every chart series from one product list.
func Aggregate(products []models.Product) *models.DashboardData {
	groups := GroupByCategoryAndMonth(products)
	sales := SalesPivot(groups)
	items := ItemsPivot(groups)

	slices := CategoryTally(products)
	for i := range slices {
		slices[i].Fill = Palette[i%len(Palette)]
	}

	return &models.DashboardData{
		Sales:      models.ChartData{Rows: sales, Series: Series(sales)},
		Items:      models.ChartData{Rows: items, Series: Series(items)},
		Categories: slices,
		Products:   len(products),
		Undated:    groups.Skipped,
	}
}
