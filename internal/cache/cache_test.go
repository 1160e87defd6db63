package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c Cache = Noop{}

	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestRedis_Key(t *testing.T) {
	r := NewRedisWithClient(nil, "marketplace:")
	assert.Equal(t, "marketplace:feed|sale", r.key("feed|sale"))
}

func TestRedis_SetNonPositiveTTL(t *testing.T) {
	r := NewRedisWithClient(nil, "p:")
	assert.NoError(t, r.Set(context.Background(), "k", []byte("v"), 0))
}
