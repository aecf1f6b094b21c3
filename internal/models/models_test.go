package models

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

func TestProductUnmarshal(t *testing.T) {
	data := []byte(`{
		"_id": "65a1",
		"Title": "Toy Car",
		"Price": 12.5,
		"Description": "red",
		"Category": "Toys",
		"Image": "https://img/1.png",
		"Sold": true,
		"Is Sale": true,
		"DateOfSale": "2024-01-05"
	}`)

	var p Product
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatal(err)
	}
	if p.ID != "65a1" || p.Title != "Toy Car" || p.Category != "Toys" || !p.Sold || !p.IsSale {
		t.Errorf("Unexpected product %+v", p)
	}
	if !p.Price.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("Price: expected 12.5, got %s", p.Price)
	}
}

func TestProductUnmarshalAliases(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		category string
		isSale   bool
		price    string
	}{
		{"lower-case category", `{"category":"Books"}`, "Books", false, "0"},
		{"empty Category falls back", `{"Title":"a","Category":"","category":"Books","Price":3}`, "Books", false, "3"},
		{"full record with alias", `{"_id":"9","Title":"Kite","Price":"4.25","category":"Toys","Sold":true,"Is Sale":false,"DateOfSale":"2024-01-05"}`, "Toys", false, "4.25"},
		{"camel isSale", `{"Category":"Books","isSale":true}`, "Books", true, "0"},
		{"pascal IsSale", `{"IsSale":true}`, "", true, "0"},
		{"string price", `{"Price":"19.99"}`, "", false, "19.99"},
		{"null price", `{"Price":null}`, "", false, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Product
			if err := json.Unmarshal([]byte(tt.data), &p); err != nil {
				t.Fatal(err)
			}
			if p.Category != tt.category || p.IsSale != tt.isSale {
				t.Errorf("Got category %q isSale %v", p.Category, p.IsSale)
			}
			if !p.Price.Equal(decimal.RequireFromString(tt.price)) {
				t.Errorf("Price: expected %s, got %s", tt.price, p.Price)
			}
		})
	}
}

func TestProductRow(t *testing.T) {
	row := Product{ID: "1", Title: "Lamp", Price: decimal.RequireFromString("3.5"), Sold: true}.Row()

	if row.Price != "$3.50" {
		t.Errorf("Price: expected $3.50, got %s", row.Price)
	}
	if row.Sold != "Yes" || row.SaleTag != "Not On Sale" || row.SaleColor != "red" {
		t.Errorf("Unexpected status columns %+v", row)
	}
	if row.HasImage || row.Image != "No Image" {
		t.Errorf("Expected placeholder image, got %q", row.Image)
	}

	row = Product{Image: "x.png", IsSale: true}.Row()
	if row.Price != "$0.00" || row.Sold != "No" || row.SaleTag != "On Sale" || row.SaleColor != "green" || row.Image != "x.png" {
		t.Errorf("Unexpected row %+v", row)
	}
}

func TestPivotRowMarshal(t *testing.T) {
	row := PivotRow{Name: "January 2024"}
	row.Set("Toys", 30)
	row.Set("Books", 12.25)
	row.Set("Toys", 31)

	got, err := json.Marshal(row)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"name":"January 2024","Toys":31,"Books":12.25}`
	if string(got) != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	empty, err := json.Marshal([]PivotRow{{Name: "May 2021"}})
	if err != nil {
		t.Fatal(err)
	}
	if string(empty) != `[{"name":"May 2021"}]` {
		t.Errorf("Sparse row should carry only its name, got %s", empty)
	}
}

func TestPivotRowSkipsShadowingKey(t *testing.T) {
	row := PivotRow{Name: "March 2024", Values: []SeriesValue{{Key: PivotKeyName, Value: 1}, {Key: `Kids "Toys"`, Value: 2}}}

	got, err := json.Marshal(row)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"name":"March 2024","Kids \"Toys\"":2}`
	if string(got) != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}
