package engine

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"catalogdash/internal/log"
	"catalogdash/internal/models"
)

// Source produces the raw product list.
type Source interface {
	Fetch(ctx context.Context) ([]models.Product, error)
}

// Loader runs the product fetch and publishes the resulting State. Callers
// racing on Load share a single fetch.
type Loader struct {
	src     Source
	timeout time.Duration
	logger  *log.Logger
	now     func() time.Time

	group   singleflight.Group
	current atomic.Pointer[State]
}

// NewLoader starts in the Initial (loading) state. A zero timeout leaves the
// fetch bounded only by the caller's context.
func NewLoader(src Source, timeout time.Duration, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Nop()
	}
	l := &Loader{
		src:     src,
		timeout: timeout,
		logger:  logger.WithComponent(log.ComponentLoader),
		now:     time.Now,
	}
	l.current.Store(Initial())
	return l
}

// State returns the latest published snapshot.
func (l *Loader) State() *State {
	return l.current.Load()
}

// Load fetches once and publishes the outcome. A failed fetch is not returned
// as an error: it is logged and becomes the empty, not-loading state.
func (l *Loader) Load(ctx context.Context) *State {
	v, _, _ := l.group.Do("load", func() (any, error) {
		return l.load(context.WithoutCancel(ctx)), nil
	})
	return v.(*State)
}

func (l *Loader) load(ctx context.Context) *State {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	start := l.now()
	products, err := l.src.Fetch(ctx)

	var next *State
	if err != nil {
		l.logger.Error().Err(err).Str(log.FieldOperation, log.OpLoad).Msg("error fetching products")
		next = Reduce(l.State(), LoadFailed{Err: err, At: l.now()})
	} else {
		next = Reduce(l.State(), Loaded{Products: products, At: l.now()})
		l.logger.Info().
			Int(log.FieldProducts, len(next.Products)).
			Int(log.FieldUndated, GroupByCategoryAndMonth(next.Products).Skipped).
			Uint64(log.FieldVersion, next.Version).
			Dur(log.FieldDuration, l.now().Sub(start)).
			Msg("products loaded")
	}

	l.current.Store(next)
	return next
}
