package feed

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketplace/internal/cache"
	"marketplace/internal/cache/mocks"
	"marketplace/internal/model"
)

// blockingSource releases every query at once and counts how many reached it.
type blockingSource struct {
	calls   atomic.Int32
	release chan struct{}
	page    *Page
	err     error
}

func (s *blockingSource) Feed(ctx context.Context, f Filter) (*Page, error) {
	s.calls.Add(1)
	<-s.release
	return s.page, s.err
}

func TestLoader_CoalescesConcurrentQueries(t *testing.T) {
	src := &blockingSource{
		release: make(chan struct{}),
		page:    &Page{Items: []model.Listing{{ID: "l1"}}, Total: 1},
	}
	l := NewLoader(src, nil, time.Second, zerolog.Nop())
	f, _ := Parse(Params{}, 24)

	const n = 8
	var (
		wg      sync.WaitGroup
		started sync.WaitGroup
		pages   = make([]*Page, n)
	)
	started.Add(n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			started.Done()
			p, err := l.Load(context.Background(), f)
			assert.NoError(t, err)
			pages[i] = p
		}(i)
	}
	started.Wait()
	assert.Eventually(t, func() bool { return src.calls.Load() >= 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(src.release)
	wg.Wait()

	assert.LessOrEqual(t, src.calls.Load(), int32(n))
	for _, p := range pages {
		require.NotNil(t, p)
		assert.Equal(t, 1, p.Total)
	}

	// Callers own their pages.
	pages[0].Items[0].IsSaved = true
	assert.False(t, src.page.Items[0].IsSaved)
}

func TestLoader_CacheHit(t *testing.T) {
	ctx := context.Background()
	f, _ := Parse(Params{}, 24)
	b, _ := json.Marshal(&Page{Items: []model.Listing{{ID: "cached"}}, Total: 1})

	c := new(mocks.MockCache)
	c.On("Get", ctx, f.Key()).Return(b, nil)
	src := &blockingSource{release: make(chan struct{})}

	p, err := NewLoader(src, c, time.Second, zerolog.Nop()).Load(ctx, f)

	require.NoError(t, err)
	assert.Equal(t, "cached", p.Items[0].ID)
	assert.Equal(t, int32(0), src.calls.Load())
}

func TestLoader_CacheMissStoresForWindow(t *testing.T) {
	ctx := context.Background()
	f, _ := Parse(Params{}, 24)

	c := new(mocks.MockCache)
	c.On("Get", ctx, f.Key()).Return(nil, cache.ErrMiss)
	c.On("Set", ctx, f.Key(), mock.Anything, 300*time.Millisecond).Return(nil)
	src := &blockingSource{release: make(chan struct{}), page: &Page{Items: []model.Listing{}, Total: 0}}
	close(src.release)

	p, err := NewLoader(src, c, 300*time.Millisecond, zerolog.Nop()).Load(ctx, f)

	require.NoError(t, err)
	assert.Equal(t, 0, p.Total)
	c.AssertExpectations(t)
}

func TestLoader_CacheFailuresFallThrough(t *testing.T) {
	ctx := context.Background()
	f, _ := Parse(Params{}, 24)

	c := new(mocks.MockCache)
	c.On("Get", ctx, f.Key()).Return(nil, errors.New("redis down"))
	c.On("Set", ctx, f.Key(), mock.Anything, time.Second).Return(errors.New("redis down"))
	src := &blockingSource{release: make(chan struct{}), page: &Page{Items: []model.Listing{{ID: "l1"}}, Total: 1}}
	close(src.release)

	p, err := NewLoader(src, c, time.Second, zerolog.Nop()).Load(ctx, f)

	require.NoError(t, err)
	assert.Equal(t, 1, p.Total)
}

func TestLoader_SourceError(t *testing.T) {
	src := &blockingSource{release: make(chan struct{}), err: errors.New("db down")}
	close(src.release)
	f, _ := Parse(Params{}, 24)

	p, err := NewLoader(src, nil, time.Second, zerolog.Nop()).Load(context.Background(), f)

	assert.Nil(t, p)
	assert.EqualError(t, err, "db down")
}
