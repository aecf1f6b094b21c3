package models

import (
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Product is one catalog record as served by the product API.
type Product struct {
	ID          string          `json:"_id"`
	Title       string          `json:"Title"`
	Price       decimal.Decimal `json:"Price"`
	Description string          `json:"Description"`
	Category    string          `json:"Category"`
	Image       string          `json:"Image,omitempty"`
	Sold        bool            `json:"Sold"`
	IsSale      bool            `json:"Is Sale"`
	DateOfSale  string          `json:"DateOfSale"`
}

type productFields Product

// UnmarshalJSON accepts the spellings seen in the live payload: the table
// reads "Category" and "Is Sale" while the charts read "category".
func (p *Product) UnmarshalJSON(data []byte) error {
	aux := struct {
		productFields
		LowerCategory *string `json:"category"`
		IsSaleCamel   *bool   `json:"isSale"`
		IsSalePascal  *bool   `json:"IsSale"`
	}{productFields: productFields(*p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Product(aux.productFields)
	if p.Category == "" && aux.LowerCategory != nil {
		p.Category = *aux.LowerCategory
	}
	if aux.IsSaleCamel != nil && *aux.IsSaleCamel {
		p.IsSale = true
	}
	if aux.IsSalePascal != nil && *aux.IsSalePascal {
		p.IsSale = true
	}
	return nil
}

// ProductRow is the display projection used by the products table.
type ProductRow struct {
	ID          string `json:"key"`
	Title       string `json:"title"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	HasImage    bool   `json:"has_image"`
	Sold        string `json:"sold"`
	SaleTag     string `json:"sale_tag"`
	SaleColor   string `json:"sale_color"`
	DateOfSale  string `json:"date_of_sale"`
}

func (p Product) Row() ProductRow {
	row := ProductRow{
		ID:          p.ID,
		Title:       p.Title,
		Price:       "$" + p.Price.StringFixed(2),
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
		HasImage:    p.Image != "",
		Sold:        "No",
		SaleTag:     "Not On Sale",
		SaleColor:   "red",
		DateOfSale:  p.DateOfSale,
	}
	if !row.HasImage {
		row.Image = "No Image"
	}
	if p.Sold {
		row.Sold = "Yes"
	}
	if p.IsSale {
		row.SaleTag = "On Sale"
		row.SaleColor = "green"
	}
	return row
}

// GroupAggregate accumulates one (category, month) bucket.
type GroupAggregate struct {
	Category   string          `json:"category"`
	Month      string          `json:"month"`
	TotalSales decimal.Decimal `json:"totalSales"`
	TotalItems int             `json:"totalItems"`
}

type CategoryCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Fill  string `json:"fill,omitempty"`
}

// SeriesKey names one plotted series of a pivot chart.
type SeriesKey struct {
	Key   string `json:"key"`
	Color string `json:"color"`
}

type ChartData struct {
	Rows   []PivotRow  `json:"rows"`
	Series []SeriesKey `json:"series"`
}

type DashboardData struct {
	Sales      ChartData       `json:"sales"`
	Items      ChartData       `json:"items"`
	Categories []CategoryCount `json:"categories"`
	Products   int             `json:"products"`
	Undated    int             `json:"undated"`
}

type ProductPage struct {
	Data   []ProductRow `json:"data"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}
