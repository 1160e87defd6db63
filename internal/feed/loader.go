package feed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"marketplace/internal/cache"
	"marketplace/internal/model"
)

// Source runs feed queries against the listing store.
type Source interface {
	Feed(ctx context.Context, f Filter) (*Page, error)
}

// Loader loads feed pages. Identical filters issued while a query is in flight share its result,
// and each result is reused for the debounce window so clients re-issuing a query on every
// filter change do not each reach the database.
type Loader struct {
	src    Source
	cache  cache.Cache
	window time.Duration
	group  singleflight.Group
	log    zerolog.Logger
}

// NewLoader constructs a Loader. A nil cache disables result reuse beyond in-flight sharing.
func NewLoader(src Source, c cache.Cache, window time.Duration, log zerolog.Logger) *Loader {
	if c == nil {
		c = cache.Noop{}
	}
	return &Loader{src: src, cache: c, window: window, log: log}
}

// Load returns the page for f. The returned page is owned by the caller.
func (l *Loader) Load(ctx context.Context, f Filter) (*Page, error) {
	key := f.Key()

	if b, err := l.cache.Get(ctx, key); err == nil {
		var p Page
		if err := json.Unmarshal(b, &p); err == nil {
			return &p, nil
		}
	} else if !errors.Is(err, cache.ErrMiss) {
		l.log.Warn().Err(err).Str("key", key).Msg("feed cache read failed")
	}

	v, err, _ := l.group.Do(key, func() (any, error) {
		p, err := l.src.Feed(ctx, f)
		if err != nil {
			return nil, err
		}
		if b, err := json.Marshal(p); err == nil {
			if err := l.cache.Set(ctx, key, b, l.window); err != nil {
				l.log.Warn().Err(err).Str("key", key).Msg("feed cache write failed")
			}
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}

	shared := v.(*Page)
	out := &Page{Total: shared.Total, Items: make([]model.Listing, len(shared.Items))}
	copy(out.Items, shared.Items)
	return out, nil
}
