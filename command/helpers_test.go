package command

import (
	"sync"
	"testing"
	"time"

	"github.com/himakhaitan/respkv/engine"
	"github.com/himakhaitan/respkv/resp"
	"github.com/himakhaitan/respkv/store"
	"github.com/himakhaitan/respkv/types"
	"go.uber.org/zap/zaptest"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestContext(t *testing.T) (*Context, *fakeClock) {
	clock := &fakeClock{t: time.UnixMilli(1_700_000_000_000)}
	return &Context{
		DB:     engine.NewDB(store.New(), store.NewExpiryIndexWithClock(clock.Now)),
		Role:   types.NewRole(""),
		Logger: zaptest.NewLogger(t),
	}, clock
}

// frame builds a command frame out of bulk strings.
func frame(args ...string) resp.Value {
	elems := make([]resp.Value, len(args))
	for i, a := range args {
		elems[i] = resp.Bulk(a)
	}
	return resp.Array(elems...)
}

func bulks(values ...string) []resp.Value {
	return frame(values...).Elems
}
