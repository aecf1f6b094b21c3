package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"catalogdash/internal/cache"
	"catalogdash/internal/engine"
	"catalogdash/internal/log"
	"catalogdash/internal/models"
)

// Store publishes dashboard snapshots. engine.Loader implements it.
type Store interface {
	State() *engine.State
	Load(ctx context.Context) *engine.State
}

type Handler struct {
	store       Store
	pageSize    int
	refreshRate float64
	logger      *log.Logger

	pages  cache.Cache[[]models.Product]
	charts cache.Cache[*models.DashboardData]
}

type Option func(*Handler)

// WithPageSize sets the default table page size.
func WithPageSize(n int) Option {
	return func(h *Handler) {
		if n > 0 {
			h.pageSize = n
		}
	}
}

// WithPageCache memoizes filtered product lists per snapshot version.
func WithPageCache(c cache.Cache[[]models.Product]) Option {
	return func(h *Handler) { h.pages = c }
}

func WithLogger(l *log.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithRefreshRate caps refresh calls per second per client.
func WithRefreshRate(perSecond float64) Option {
	return func(h *Handler) {
		if perSecond > 0 {
			h.refreshRate = perSecond
		}
	}
}

func NewHandler(store Store, opts ...Option) *Handler {
	h := &Handler{
		store:       store,
		pageSize:    5,
		refreshRate: 0.2,
		logger:      log.Nop(),
		charts:      cache.NewLRUCache[*models.DashboardData](2, time.Hour),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	api := e.Group("/api")
	api.GET("/products", h.GetProducts, h.requireLoaded)
	api.GET("/categories", h.GetCategories, h.requireLoaded)
	api.GET("/charts/sales", h.GetSalesChart, h.requireLoaded)
	api.GET("/charts/items", h.GetItemsChart, h.requireLoaded)
	api.GET("/charts/categories", h.GetCategoryChart, h.requireLoaded)
	api.GET("/dashboard", h.GetDashboard, h.requireLoaded)

	limiter := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(h.refreshRate),
		Burst:     1,
		ExpiresIn: time.Minute,
	})
	api.POST("/refresh", h.Refresh, middleware.RateLimiter(limiter))
}

// requireLoaded answers 503 until the first fetch has resolved.
func (h *Handler) requireLoaded(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.store.State().Loading {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "loading")
		}
		return next(c)
	}
}

// --- HANDLERS ---
func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// parseSold maps the sold query param: "" or "all" means no constraint.
func parseSold(raw string) (*bool, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" || raw == "all" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (h *Handler) filtered(st *engine.State) []models.Product {
	if h.pages == nil {
		return st.Filtered()
	}
	key := strconv.FormatUint(st.Version, 10) + "|" + st.Criteria.Key()
	if products, ok := h.pages.Get(key); ok {
		return products
	}
	products := st.Filtered()
	h.pages.Set(key, products)
	return products
}

func (h *Handler) dashboard(st *engine.State) *models.DashboardData {
	key := strconv.FormatUint(st.Version, 10)
	if d, ok := h.charts.Get(key); ok {
		return d
	}
	d := st.Aggregate()
	h.charts.Set(key, d)
	return d
}

// GetProducts serves one page of the filtered products table.
func (h *Handler) GetProducts(c echo.Context) error {
	sold, err := parseSold(c.QueryParam("sold"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "sold must be true, false or all")
	}

	st := engine.Reduce(h.store.State(),
		engine.SetSearch(c.QueryParam("q")),
		engine.SetCategory(c.QueryParam("category")),
		engine.SetSold{Sold: sold},
	)

	products := h.filtered(st)
	total := len(products)
	limit, offset := getPaginationParams(c, h.pageSize)

	page := models.ProductPage{Data: []models.ProductRow{}, Total: total, Limit: limit, Offset: offset}
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		page.Data = make([]models.ProductRow, 0, end-offset)
		for _, p := range products[offset:end] {
			page.Data = append(page.Data, p.Row())
		}
	}
	return c.JSON(http.StatusOK, page)
}

func (h *Handler) GetCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.State().Categories())
}

// monthly sales per category
func (h *Handler) GetSalesChart(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboard(h.store.State()).Sales)
}

// monthly item counts per category
func (h *Handler) GetItemsChart(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboard(h.store.State()).Items)
}

// category distribution
func (h *Handler) GetCategoryChart(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboard(h.store.State()).Categories)
}

func (h *Handler) GetDashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboard(h.store.State()))
}

type healthResponse struct {
	Status   string     `json:"status"`
	Loading  bool       `json:"loading"`
	Products int        `json:"products"`
	Version  uint64     `json:"version"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
	Error    string     `json:"error,omitempty"`
}

func health(st *engine.State) healthResponse {
	resp := healthResponse{
		Status:   "ok",
		Loading:  st.Loading,
		Products: len(st.Products),
		Version:  st.Version,
		Error:    st.Err,
	}
	switch {
	case st.Loading:
		resp.Status = "loading"
	case st.Err != "":
		resp.Status = "degraded"
	}
	if !st.LoadedAt.IsZero() {
		t := st.LoadedAt
		resp.LoadedAt = &t
	}
	return resp
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, health(h.store.State()))
}

// Refresh re-runs the product fetch and reports the new snapshot.
func (h *Handler) Refresh(c echo.Context) error {
	st := h.store.Load(c.Request().Context())
	ev := h.logger.Info()
	if st.Err != "" {
		ev = h.logger.Warn().Str("error", st.Err)
	}
	ev.Str(log.FieldOperation, log.OpRefresh).
		Int(log.FieldProducts, len(st.Products)).
		Uint64(log.FieldVersion, st.Version).
		Msg("products refreshed")
	return c.JSON(http.StatusOK, health(st))
}
