package cache

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devotional/internal/domain"
	"devotional/internal/metrics"
)

type countingFetcher struct {
	calls   atomic.Int32
	records map[string][]domain.Record
	delay   time.Duration
}

func (f *countingFetcher) Fetch(_ context.Context, kind domain.Kind, language string) []domain.Record {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.records[key(kind, language)]
}

type stubLibrary struct {
	calls atomic.Int32
}

func (l *stubLibrary) BuiltIn(kind domain.Kind, language string) []domain.Record {
	l.calls.Add(1)
	if language != "en" {
		return []domain.Record{}
	}
	return []domain.Record{{ID: "builtin-" + kind.String() + "-en-0", Kind: kind, Language: "en", Origin: domain.OriginBuiltin}}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestGetOrLoad_ExternalWins(t *testing.T) {
	fetcher := &countingFetcher{records: map[string][]domain.Record{
		"prayers/en": {{ID: "external-prayers-en-0", Origin: domain.OriginExternal}},
	}}
	lib := &stubLibrary{}
	c := New(fetcher, lib, testLogger(), nil)

	records := c.GetOrLoad(context.Background(), domain.KindPrayers, "en")

	require.Len(t, records, 1)
	assert.Equal(t, domain.OriginExternal, records[0].Origin)
	assert.Equal(t, int32(0), lib.calls.Load())
}

func TestGetOrLoad_FallsBackToBuiltIn(t *testing.T) {
	fetcher := &countingFetcher{}
	lib := &stubLibrary{}
	c := New(fetcher, lib, testLogger(), nil)

	records := c.GetOrLoad(context.Background(), domain.KindSaints, "en")

	require.Len(t, records, 1)
	assert.Equal(t, domain.OriginBuiltin, records[0].Origin)
	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestGetOrLoad_EmptyIsCached(t *testing.T) {
	fetcher := &countingFetcher{}
	c := New(fetcher, &stubLibrary{}, testLogger(), nil)

	first := c.GetOrLoad(context.Background(), domain.KindPrayers, "es")
	second := c.GetOrLoad(context.Background(), domain.KindPrayers, "es")

	assert.NotNil(t, first)
	assert.Empty(t, first)
	assert.Empty(t, second)
	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestGetOrLoad_Idempotent(t *testing.T) {
	fetcher := &countingFetcher{records: map[string][]domain.Record{
		"apparitions/pt": {{ID: "external-apparitions-pt-0"}},
	}}
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	c := New(fetcher, &stubLibrary{}, testLogger(), m)

	first := c.GetOrLoad(context.Background(), domain.KindApparitions, "pt")
	second := c.GetOrLoad(context.Background(), domain.KindApparitions, "pt")

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), fetcher.calls.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("apparitions", "pt", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("apparitions", "pt", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLoads.WithLabelValues("apparitions", "pt", "external")))
}

func TestGetOrLoad_ConcurrentColdCallsShareLoad(t *testing.T) {
	fetcher := &countingFetcher{delay: 20 * time.Millisecond}
	c := New(fetcher, &stubLibrary{}, testLogger(), nil)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			records := c.GetOrLoad(context.Background(), domain.KindPrayers, "en")
			assert.Len(t, records, 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestGetOrLoad_KeysAreIndependent(t *testing.T) {
	fetcher := &countingFetcher{}
	c := New(fetcher, &stubLibrary{}, testLogger(), nil)

	c.GetOrLoad(context.Background(), domain.KindPrayers, "en")
	c.GetOrLoad(context.Background(), domain.KindPrayers, "es")
	c.GetOrLoad(context.Background(), domain.KindSaints, "en")

	assert.Equal(t, int32(3), fetcher.calls.Load())
	assert.Equal(t, 3, c.Len())
}

func TestWarm(t *testing.T) {
	fetcher := &countingFetcher{}
	c := New(fetcher, &stubLibrary{}, testLogger(), nil)

	err := c.Warm(context.Background(), domain.Kinds, []string{"en", "es"})
	require.NoError(t, err)

	assert.Equal(t, 6, c.Len())
	assert.Equal(t, int32(6), fetcher.calls.Load())

	c.GetOrLoad(context.Background(), domain.KindSaints, "es")
	assert.Equal(t, int32(6), fetcher.calls.Load())
}

func TestWarm_CanceledContext(t *testing.T) {
	c := New(&countingFetcher{}, &stubLibrary{}, testLogger(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Warm(ctx, domain.Kinds, []string{"en"})
	assert.ErrorIs(t, err, context.Canceled)
}
