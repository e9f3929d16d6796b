package gemini

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/couchcryptid/groundwater-forecast-service/internal/domain"
	"github.com/couchcryptid/groundwater-forecast-service/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock for cache tests ---

type countingGenerator struct {
	calls int
	text  string
	err   error
}

func (g *countingGenerator) Generate(_ context.Context, _ domain.Prompt) (string, error) {
	g.calls++
	return g.text, g.err
}

func validPayload(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile("../../forecast/testdata/jaipur.json")
	require.NoError(t, err)
	return string(b)
}

func TestCachedGenerator_Hit(t *testing.T) {
	inner := &countingGenerator{text: validPayload(t)}
	metrics := observability.NewMetricsForTesting()
	cached := NewCachedGenerator(inner, 10, metrics)

	first, err := cached.Generate(context.Background(), testPrompt())
	require.NoError(t, err)
	second, err := cached.Generate(context.Background(), testPrompt())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls, "should only call inner once")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("miss")))
}

func TestCachedGenerator_DifferentPromptsMiss(t *testing.T) {
	inner := &countingGenerator{text: validPayload(t)}
	cached := NewCachedGenerator(inner, 10, observability.NewMetricsForTesting())

	p := testPrompt()
	_, _ = cached.Generate(context.Background(), p)
	p.Text += " Additional context: sandy soil."
	_, _ = cached.Generate(context.Background(), p)
	p.Temperature = 0.9
	_, _ = cached.Generate(context.Background(), p)

	assert.Equal(t, 3, inner.calls)
	assert.Equal(t, 3, cached.Len())
}

func TestCachedGenerator_UnusablePayloadNotCached(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"malformed", "{not json"},
		{"incomplete", `{"locationName": "Jaipur"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := &countingGenerator{text: tt.text}
			cached := NewCachedGenerator(inner, 10, observability.NewMetricsForTesting())

			text, err := cached.Generate(context.Background(), testPrompt())
			require.NoError(t, err, "parse failures are the caller's to report")
			assert.Equal(t, tt.text, text)
			_, _ = cached.Generate(context.Background(), testPrompt())

			assert.Equal(t, 2, inner.calls)
			assert.Zero(t, cached.Len())
		})
	}
}

func TestCachedGenerator_ErrorsPassThrough(t *testing.T) {
	want := domain.NewError(domain.KindServiceUnavailable, errors.New("503"))
	inner := &countingGenerator{err: want}
	cached := NewCachedGenerator(inner, 10, observability.NewMetricsForTesting())

	_, err := cached.Generate(context.Background(), testPrompt())
	assert.ErrorIs(t, err, want)
	assert.Zero(t, cached.Len())
}

func TestCachedGenerator_EvictsLeastRecentlyUsed(t *testing.T) {
	inner := &countingGenerator{text: validPayload(t)}
	cached := NewCachedGenerator(inner, 2, observability.NewMetricsForTesting())

	prompt := func(s string) domain.Prompt { p := testPrompt(); p.Text = s; return p }
	ctx := context.Background()

	_, _ = cached.Generate(ctx, prompt("a"))
	_, _ = cached.Generate(ctx, prompt("b"))
	_, _ = cached.Generate(ctx, prompt("a")) // a becomes most recent
	_, _ = cached.Generate(ctx, prompt("c")) // evicts b
	require.Equal(t, 3, inner.calls)

	_, _ = cached.Generate(ctx, prompt("a"))
	assert.Equal(t, 3, inner.calls, "a should still be cached")
	_, _ = cached.Generate(ctx, prompt("b"))
	assert.Equal(t, 4, inner.calls, "b should have been evicted")
	assert.Equal(t, 2, cached.Len())
}
