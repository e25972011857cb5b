package services

import (
	"context"
	"sync"
	"time"

	"social-stats-service/internal/domain/entities"
	"social-stats-service/pkg/logger"
)

// StaleProfileLister 查询需要刷新的账号
type StaleProfileLister interface {
	ListStaleProfiles(ctx context.Context, before time.Time) ([]entities.ProfileRequest, error)
}

// StatsScheduler 定时刷新已记录账号的统计快照
type StatsScheduler struct {
	statsService  *StatsService
	repo          StaleProfileLister
	logger        logger.Logger
	refreshPeriod time.Duration
	staleAfter    time.Duration
	batchSize     int
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

// NewStatsScheduler 创建快照刷新调度器
func NewStatsScheduler(statsService *StatsService, repo StaleProfileLister, log logger.Logger) *StatsScheduler {
	return &StatsScheduler{
		statsService:  statsService,
		repo:          repo,
		logger:        log.WithField("component", "scheduler"),
		refreshPeriod: 6 * time.Hour,
		staleAfter:    24 * time.Hour,
		batchSize:     10,
	}
}

// SetRefreshPeriod 设置刷新周期
func (s *StatsScheduler) SetRefreshPeriod(period time.Duration) {
	s.refreshPeriod = period
}

// SetStaleAfter 设置快照过期时间
func (s *StatsScheduler) SetStaleAfter(d time.Duration) {
	s.staleAfter = d
}

// SetBatchSize 设置每批刷新的账号数
func (s *StatsScheduler) SetBatchSize(n int) {
	if n > 0 {
		s.batchSize = n
	}
}

// Start 启动调度器，立即执行一次
func (s *StatsScheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go s.scheduledRefresh(ctx)
	s.logger.Info("快照刷新调度器已启动，刷新周期: %v", s.refreshPeriod)
}

// Stop 停止调度器并等待正在进行的刷新结束
func (s *StatsScheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
	s.logger.Info("快照刷新调度器已停止")
}

func (s *StatsScheduler) scheduledRefresh(ctx context.Context) {
	defer s.wg.Done()

	s.RefreshAll(ctx)

	ticker := time.NewTicker(s.refreshPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RefreshAll(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// RefreshAll 刷新所有过期的账号，返回刷新的账号数
func (s *StatsScheduler) RefreshAll(ctx context.Context) int {
	profiles, err := s.repo.ListStaleProfiles(ctx, time.Now().Add(-s.staleAfter))
	if err != nil {
		s.logger.WithError(err).Error("获取需要刷新的账号失败")
		return 0
	}
	s.logger.Info("找到%d个需要刷新的账号", len(profiles))

	refreshed := 0
	for i := 0; i < len(profiles); i += s.batchSize {
		end := i + s.batchSize
		if end > len(profiles) {
			end = len(profiles)
		}

		s.logger.Debug("刷新账号批次: %d-%d", i, end)
		for _, req := range profiles[i:end] {
			if ctx.Err() != nil {
				s.logger.Info("刷新被取消，已刷新%d个账号", refreshed)
				return refreshed
			}
			s.statsService.Resolve(logger.WithTraceID(ctx, logger.GenerateTraceID()), req)
			refreshed++
		}
	}

	s.logger.Info("快照刷新完成，共%d个账号", refreshed)
	return refreshed
}
