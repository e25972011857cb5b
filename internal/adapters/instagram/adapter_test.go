package instagram

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

const profilePage = `<html><head>
<meta property="og:title" content="Jane Doe (&#064;jane) &#x2022; Instagram photos and videos">
<meta property="og:description" content="1.2M Followers, 500 Following, 300 Posts - See Instagram photos and videos from Jane Doe (&#064;jane)">
</head></html>`

type fakeInstagram struct {
	apiStatus  int
	apiBody    string
	pageStatus int
	pageBody   string
	apiHits    int32
	pageHits   int32
	appID      atomic.Value
}

func (f *fakeInstagram) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(profileInfoPath, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.apiHits, 1)
		f.appID.Store(r.Header.Get(appIDHeader))
		w.WriteHeader(f.apiStatus)
		_, _ = io.WriteString(w, f.apiBody)
	})
	mux.HandleFunc("/jane/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.pageHits, 1)
		w.WriteHeader(f.pageStatus)
		_, _ = io.WriteString(w, f.pageBody)
	})
	return mux
}

func newAdapter(t *testing.T, fake *fakeInstagram) *InstagramAdapter {
	t.Helper()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	log, err := logger.NewLogger(logger.Config{Level: logger.LevelDebug, Output: io.Discard})
	require.NoError(t, err)

	cfg := config.InstagramConfig{BaseURL: srv.URL, APIBaseURL: srv.URL, AppID: "test-app"}
	return NewInstagramAdapter(cfg, fetch.NewClient(fetch.Options{}), log)
}

func TestCollectStatsFromProfileAPI(t *testing.T) {
	fake := &fakeInstagram{
		apiStatus: http.StatusOK,
		apiBody:   `{"data":{"user":{"full_name":"Jane Doe","edge_followed_by":{"count":4401}}}}`,
	}
	a := newAdapter(t, fake)

	stats, err := a.CollectStats(context.Background(), "jane")
	require.NoError(t, err)
	require.NotNil(t, stats.FollowerCount)
	assert.Equal(t, int64(4401), *stats.FollowerCount)
	require.NotNil(t, stats.DisplayName)
	assert.Equal(t, "Jane Doe", *stats.DisplayName)

	assert.Equal(t, "test-app", fake.appID.Load())
	assert.EqualValues(t, 1, atomic.LoadInt32(&fake.apiHits))
	assert.EqualValues(t, 0, atomic.LoadInt32(&fake.pageHits))
}

func TestPartialAPIDataDoesNotTriggerFallback(t *testing.T) {
	fake := &fakeInstagram{
		apiStatus:  http.StatusOK,
		apiBody:    `{"data":{"user":{"edge_followed_by":{"count":10}}}}`,
		pageStatus: http.StatusOK,
		pageBody:   profilePage,
	}
	a := newAdapter(t, fake)

	stats, err := a.CollectStats(context.Background(), "jane")
	require.NoError(t, err)
	require.NotNil(t, stats.FollowerCount)
	assert.Equal(t, int64(10), *stats.FollowerCount)
	assert.Nil(t, stats.DisplayName)
	assert.EqualValues(t, 0, atomic.LoadInt32(&fake.pageHits))
}

func TestFallsBackToProfilePageWhenAPIFails(t *testing.T) {
	fake := &fakeInstagram{
		apiStatus:  http.StatusUnauthorized,
		pageStatus: http.StatusOK,
		pageBody:   profilePage,
	}
	a := newAdapter(t, fake)

	stats, err := a.CollectStats(context.Background(), "jane")
	require.NoError(t, err)
	require.NotNil(t, stats.FollowerCount)
	assert.Equal(t, int64(1_200_000), *stats.FollowerCount)
	require.NotNil(t, stats.DisplayName)
	assert.Equal(t, "Jane Doe", *stats.DisplayName)
	assert.EqualValues(t, 1, atomic.LoadInt32(&fake.apiHits))
	assert.EqualValues(t, 1, atomic.LoadInt32(&fake.pageHits))
}

func TestFallsBackWhenAPIHasNoUser(t *testing.T) {
	fake := &fakeInstagram{
		apiStatus:  http.StatusOK,
		apiBody:    `{"data":{"user":null}}`,
		pageStatus: http.StatusOK,
		pageBody:   profilePage,
	}
	stats, err := newAdapter(t, fake).CollectStats(context.Background(), "jane")
	require.NoError(t, err)
	assert.False(t, stats.IsEmpty())
	assert.EqualValues(t, 1, atomic.LoadInt32(&fake.pageHits))
}

func TestFallsBackWhenAPIBodyIsNotJSON(t *testing.T) {
	fake := &fakeInstagram{
		apiStatus:  http.StatusOK,
		apiBody:    `<html>login</html>`,
		pageStatus: http.StatusOK,
		pageBody:   profilePage,
	}
	stats, err := newAdapter(t, fake).CollectStats(context.Background(), "jane")
	require.NoError(t, err)
	require.NotNil(t, stats.FollowerCount)
	assert.Equal(t, int64(1_200_000), *stats.FollowerCount)
}

func TestNameFromDescriptionWhenTitleMissing(t *testing.T) {
	fake := &fakeInstagram{
		apiStatus:  http.StatusForbidden,
		pageStatus: http.StatusOK,
		pageBody:   `<meta property="og:description" content="987 Followers, 1 Following - See Instagram photos and videos from Only Desc (@jane)">`,
	}
	stats, err := newAdapter(t, fake).CollectStats(context.Background(), "jane")
	require.NoError(t, err)
	require.NotNil(t, stats.FollowerCount)
	assert.Equal(t, int64(987), *stats.FollowerCount)
	require.NotNil(t, stats.DisplayName)
	assert.Equal(t, "Only Desc", *stats.DisplayName)
}

func TestFieldsResolvedIndependently(t *testing.T) {
	fake := &fakeInstagram{
		apiStatus:  http.StatusForbidden,
		pageStatus: http.StatusOK,
		pageBody:   `<meta property="og:description" content="55 Followers">`,
	}
	stats, err := newAdapter(t, fake).CollectStats(context.Background(), "jane")
	require.NoError(t, err)
	require.NotNil(t, stats.FollowerCount)
	assert.Equal(t, int64(55), *stats.FollowerCount)
	assert.Nil(t, stats.DisplayName)
}

func TestNonSuccessStatusYieldsEmptyStats(t *testing.T) {
	fake := &fakeInstagram{
		apiStatus:  http.StatusTooManyRequests,
		pageStatus: http.StatusNotFound,
		pageBody:   profilePage,
	}
	a := newAdapter(t, fake)

	_, err := a.CollectStats(context.Background(), "jane")
	assert.ErrorIs(t, err, fetch.ErrUnexpectedStatus)

	stats, diag := adapters.Attempt(context.Background(), a, "jane")
	assert.Error(t, diag)
	assert.True(t, stats.IsEmpty())
}
