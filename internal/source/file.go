package source

import (
	"context"
	"fmt"
	"os"

	"catalogdash/internal/models"
)

// File reads a saved product payload from disk, in either payload shape.
// Useful for local runs without the remote API.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Fetch(ctx context.Context) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read product file: %w", err)
	}
	return DecodeProducts(content)
}
