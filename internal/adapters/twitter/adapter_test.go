package twitter

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-stats-service/internal/adapters"
	"social-stats-service/internal/adapters/fetch"
	"social-stats-service/internal/config"
	"social-stats-service/pkg/logger"
)

func newTestAdapter(t *testing.T, status int, body string) (*TwitterAdapter, *atomic.Value) {
	t.Helper()
	var requested atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested.Store(r.URL.Path)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	log, err := logger.NewLogger(logger.Config{Level: logger.LevelDebug, Output: io.Discard})
	require.NoError(t, err)
	return NewTwitterAdapter(config.PlatformConfig{BaseURL: srv.URL}, fetch.NewClient(fetch.Options{}), log), &requested
}

func TestCollectStats(t *testing.T) {
	page := `<meta property="og:title" content="Jack (@jack) on X">
<meta property="og:description" content="6.5M Followers. Building things.">`
	a, requested := newTestAdapter(t, http.StatusOK, page)

	stats, err := a.CollectStats(context.Background(), "jack")
	require.NoError(t, err)
	assert.Equal(t, "/jack", requested.Load())
	assert.Equal(t, "X (Twitter)", a.GetPlatformName())

	require.NotNil(t, stats.FollowerCount)
	assert.Equal(t, int64(6_500_000), *stats.FollowerCount)
	require.NotNil(t, stats.DisplayName)
	assert.Equal(t, "Jack", *stats.DisplayName)
}

func TestNameWithoutCount(t *testing.T) {
	a, _ := newTestAdapter(t, http.StatusOK, `<meta content="Jack (@jack) on X" property="og:title">`)

	stats, err := a.CollectStats(context.Background(), "jack")
	require.NoError(t, err)
	assert.Nil(t, stats.FollowerCount)
	require.NotNil(t, stats.DisplayName)
	assert.Equal(t, "Jack", *stats.DisplayName)
}

func TestCountWithoutName(t *testing.T) {
	a, _ := newTestAdapter(t, http.StatusOK, `<meta property="og:description" content="6.5M Followers. Building things.">`)

	stats, err := a.CollectStats(context.Background(), "jack")
	require.NoError(t, err)
	require.NotNil(t, stats.FollowerCount)
	assert.Equal(t, int64(6_500_000), *stats.FollowerCount)
	assert.Nil(t, stats.DisplayName)
}

func TestTitleWithoutHandleIsIgnored(t *testing.T) {
	a, _ := newTestAdapter(t, http.StatusOK, `<meta property="og:title" content="X. It's what's happening">`)

	stats, err := a.CollectStats(context.Background(), "jack")
	require.NoError(t, err)
	assert.True(t, stats.IsEmpty())
}

func TestNonSuccessStatusYieldsEmptyStats(t *testing.T) {
	a, _ := newTestAdapter(t, http.StatusServiceUnavailable, `<meta property="og:description" content="1 Followers">`)

	stats, diag := adapters.Attempt(context.Background(), a, "jack")
	assert.Error(t, diag)
	assert.True(t, stats.IsEmpty())
}
