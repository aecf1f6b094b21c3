package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"catalogdash/internal/log"
	"catalogdash/internal/models"
)

// DefaultURL is the product listing the dashboard was built against.
const DefaultURL = "https://e-comerce-backend-mf8i.onrender.com/api/v1/product"

const maxBodyBytes = 32 << 20

// ErrStatus is wrapped when the product API answers with a non-2xx status.
var ErrStatus = errors.New("unexpected status from product API")

// Client fetches the product list over HTTP. It sends a bare GET: no
// parameters, no auth, no pagination.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *log.Logger
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func NewClient(url string, logger *log.Logger, opts ...ClientOption) *Client {
	if logger == nil {
		logger = log.Nop()
	}
	c := &Client{
		url:        url,
		httpClient: &http.Client{},
		logger:     logger.WithComponent(log.ComponentSource),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Fetch(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build product request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: %d - %s", ErrStatus, resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read product response: %w", err)
	}

	products, err := DecodeProducts(data)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str(log.FieldSource, c.url).
		Int(log.FieldProducts, len(products)).
		Msg("product list fetched")
	return products, nil
}
