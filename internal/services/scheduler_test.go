package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"social-stats-service/internal/domain/entities"
)

type staleLister struct {
	profiles []entities.ProfileRequest
	err      error
	before   time.Time
}

func (l *staleLister) ListStaleProfiles(ctx context.Context, before time.Time) ([]entities.ProfileRequest, error) {
	l.before = before
	return l.profiles, l.err
}

func TestRefreshAllResolvesInBatches(t *testing.T) {
	repo := &memoryRepo{}
	s := NewStatsService(testLogger(t), WithSnapshotRepo(repo))
	s.RegisterAdapter(&fakeAdapter{name: "YouTube", stats: &entities.ProfileStats{FollowerCount: int64Ptr(7)}})

	lister := &staleLister{profiles: []entities.ProfileRequest{
		{Platform: "YouTube", Username: "a"},
		{Platform: "YouTube", Username: "b"},
		{Platform: "MySpace", Username: "c"},
	}}
	scheduler := NewStatsScheduler(s, lister, testLogger(t))
	scheduler.SetBatchSize(2)
	scheduler.SetStaleAfter(time.Hour)

	refreshed := scheduler.RefreshAll(context.Background())
	assert.Equal(t, 3, refreshed)
	assert.Equal(t, 3, repo.saved())
	assert.WithinDuration(t, time.Now().Add(-time.Hour), lister.before, time.Minute)
}

func TestRefreshAllListError(t *testing.T) {
	scheduler := NewStatsScheduler(NewStatsService(testLogger(t)), &staleLister{err: errors.New("db down")}, testLogger(t))
	assert.Zero(t, scheduler.RefreshAll(context.Background()))
}

func TestRefreshAllStopsWhenCancelled(t *testing.T) {
	repo := &memoryRepo{}
	s := NewStatsService(testLogger(t), WithSnapshotRepo(repo))
	lister := &staleLister{profiles: []entities.ProfileRequest{{Platform: "YouTube", Username: "a"}}}
	scheduler := NewStatsScheduler(s, lister, testLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Zero(t, scheduler.RefreshAll(ctx))
	assert.Zero(t, repo.saved())
}

func TestSchedulerStartStop(t *testing.T) {
	repo := &memoryRepo{}
	s := NewStatsService(testLogger(t), WithSnapshotRepo(repo))
	s.RegisterAdapter(&fakeAdapter{name: "YouTube"})
	lister := &staleLister{profiles: []entities.ProfileRequest{{Platform: "YouTube", Username: "a"}}}

	scheduler := NewStatsScheduler(s, lister, testLogger(t))
	scheduler.SetRefreshPeriod(time.Hour)
	scheduler.Start()

	assert.Eventually(t, func() bool { return repo.saved() == 1 }, time.Second, 10*time.Millisecond)
	scheduler.Stop()
	assert.Equal(t, 1, repo.saved())
}
