package bootstrap

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-stats-service/internal/config"
	"social-stats-service/pkg/logger"
)

func TestNewStatsServiceRegistersPlatforms(t *testing.T) {
	log, err := logger.NewLogger(logger.Config{Level: logger.LevelDebug, Output: io.Discard})
	require.NoError(t, err)

	svc := NewStatsService(config.Default(), log)
	list := svc.SupportedPlatforms()

	assert.Equal(t, []string{"Instagram", "LinkedIn", "TikTok", "X (Twitter)", "YouTube"}, list.Dedicated)
	assert.Equal(t, []string{"Facebook", "Pinterest", "Substack", "Threads", "Twitch"}, list.Fallback)
}

func TestNewStatsServiceUsesConfiguredEndpoints(t *testing.T) {
	var userAgent atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent.Store(r.Header.Get("User-Agent"))
		assert.Equal(t, "/in/jane-doe/", r.URL.Path)
		_, _ = io.WriteString(w, `<meta property="og:title" content="Jane Doe - Senior Engineer | LinkedIn">
<meta property="og:description" content="500 followers · 500+ connections">`)
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.HTTP.UserAgent = "statsbot/1.0"
	cfg.Adapters.LinkedIn.BaseURL = srv.URL

	log, err := logger.NewLogger(logger.Config{Level: logger.LevelDebug, Output: io.Discard})
	require.NoError(t, err)

	stats := NewStatsService(cfg, log).ResolveStats(context.Background(), "LinkedIn", "jane-doe")
	require.NotNil(t, stats.FollowerCount)
	assert.Equal(t, int64(500), *stats.FollowerCount)
	require.NotNil(t, stats.DisplayName)
	assert.Equal(t, "Jane Doe", *stats.DisplayName)
	assert.Equal(t, "statsbot/1.0", userAgent.Load())
}
