package source

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"catalogdash/internal/models"
)

// ErrUnexpectedShape is returned when the payload is neither a product
// array nor an object carrying a "products" array.
var ErrUnexpectedShape = errors.New("unexpected product payload shape")

type envelope struct {
	Products *[]models.Product `json:"products"`
}

// DecodeProducts normalizes the two payload shapes the product API uses,
// a bare array or {"products": [...]}, into one list.
func DecodeProducts(data []byte) ([]models.Product, error) {
	body := bytes.TrimSpace(data)
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrUnexpectedShape)
	}

	switch body[0] {
	case '[':
		var products []models.Product
		if err := json.Unmarshal(body, &products); err != nil {
			return nil, fmt.Errorf("decode product array: %w", err)
		}
		return nonNil(products), nil
	case '{':
		var env envelope
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, fmt.Errorf("decode product envelope: %w", err)
		}
		if env.Products == nil {
			return nil, fmt.Errorf("%w: object has no products field", ErrUnexpectedShape)
		}
		return nonNil(*env.Products), nil
	default:
		return nil, fmt.Errorf("%w: top-level %q", ErrUnexpectedShape, body[0])
	}
}

func nonNil(p []models.Product) []models.Product {
	if p == nil {
		return []models.Product{}
	}
	return p
}
