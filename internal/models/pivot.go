package models

import (
	"bytes"
	"strconv"

	"github.com/goccy/go-json"
)

// PivotKeyName is the key holding the month label in an encoded pivot row.
const PivotKeyName = "name"

type SeriesValue struct {
	Key   string
	Value float64
}

// PivotRow is one month of a pivot chart. Values only holds the categories
// seen in that month, in first-encounter order.
type PivotRow struct {
	Name   string
	Values []SeriesValue
}

// Get returns the value stored for key and whether the row has it.
func (r PivotRow) Get(key string) (float64, bool) {
	for _, v := range r.Values {
		if v.Key == key {
			return v.Value, true
		}
	}
	return 0, false
}

// Set overwrites an existing key or appends a new one.
func (r *PivotRow) Set(key string, value float64) {
	for i := range r.Values {
		if r.Values[i].Key == key {
			r.Values[i].Value = value
			return
		}
	}
	r.Values = append(r.Values, SeriesValue{Key: key, Value: value})
}

// MarshalJSON encodes the row as a flat object, {"name": "January 2024", "Toys": 30},
// which chart widgets consume as column keys.
func (r PivotRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"` + PivotKeyName + `":`)
	name, err := json.Marshal(r.Name)
	if err != nil {
		return nil, err
	}
	buf.Write(name)

	for _, v := range r.Values {
		if v.Key == PivotKeyName {
			// would shadow the month label
			continue
		}
		key, err := json.Marshal(v.Key)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatFloat(v.Value, 'f', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
