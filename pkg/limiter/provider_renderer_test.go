package limiter_test

import (
	"context"
	"testing"
	"time"

	"github.com/adrianliechti/aiphoto/pkg/limiter"
	"github.com/adrianliechti/aiphoto/pkg/provider"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type stubRenderer struct {
	calls int
}

func (r *stubRenderer) Render(ctx context.Context, input string, options *provider.RenderOptions) (*provider.Rendering, error) {
	r.calls++

	return &provider.Rendering{
		Content:     []byte("image"),
		ContentType: "image/png",
	}, nil
}

func TestRenderDelegates(t *testing.T) {
	stub := &stubRenderer{}

	r := limiter.NewRenderer(rate.NewLimiter(rate.Inf, 1), stub)

	result, err := r.Render(context.Background(), "A sunset", nil)
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)
	require.Equal(t, 1, stub.calls)
}

func TestRenderNilLimiter(t *testing.T) {
	stub := &stubRenderer{}

	r := limiter.NewRenderer(nil, stub)

	_, err := r.Render(context.Background(), "A sunset", nil)
	require.NoError(t, err)
	require.Equal(t, 1, stub.calls)
}

func TestRenderWaits(t *testing.T) {
	stub := &stubRenderer{}

	l := rate.NewLimiter(rate.Every(50*time.Millisecond), 1)
	r := limiter.NewRenderer(l, stub)

	start := time.Now()

	for range 2 {
		_, err := r.Render(context.Background(), "A sunset", nil)
		require.NoError(t, err)
	}

	require.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	require.Equal(t, 2, stub.calls)
}
