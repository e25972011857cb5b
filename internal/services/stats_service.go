package services

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"social-stats-service/internal/adapters"
	"social-stats-service/internal/domain/entities"
	"social-stats-service/pkg/logger"
)

// SnapshotRepo 快照仓库接口
type SnapshotRepo interface {
	Save(ctx context.Context, snapshot *entities.StatsSnapshot) error
	ListByProfile(ctx context.Context, platform, username string, limit int) ([]*entities.StatsSnapshot, error)
}

// EventPublisher 解析结果事件发布接口
type EventPublisher interface {
	PublishResolved(ctx context.Context, req entities.ProfileRequest, stats *entities.ProfileStats) error
}

// FallbackResolver 没有专用适配器时的兜底策略
type FallbackResolver interface {
	ForPlatform(platform string) (adapters.PlatformAdapter, bool)
	Platforms() []string
}

// ErrHistoryDisabled 没有配置快照仓库
var ErrHistoryDisabled = errors.New("未配置快照存储")

// PlatformList 支持的平台
type PlatformList struct {
	Dedicated []string `json:"dedicated"`
	Fallback  []string `json:"fallback"`
}

// StatsService 统计服务，按平台名称分发到对应适配器
type StatsService struct {
	adapters  map[string]adapters.PlatformAdapter
	fallback  FallbackResolver
	repo      SnapshotRepo
	publisher EventPublisher
	logger    logger.Logger
}

// Option 统计服务可选项
type Option func(*StatsService)

// WithFallback 设置兜底策略
func WithFallback(fallback FallbackResolver) Option {
	return func(s *StatsService) { s.fallback = fallback }
}

// WithSnapshotRepo 设置快照仓库
func WithSnapshotRepo(repo SnapshotRepo) Option {
	return func(s *StatsService) { s.repo = repo }
}

// WithEventPublisher 设置事件发布者
func WithEventPublisher(publisher EventPublisher) Option {
	return func(s *StatsService) { s.publisher = publisher }
}

// NewStatsService 创建统计服务
func NewStatsService(log logger.Logger, opts ...Option) *StatsService {
	s := &StatsService{
		adapters: make(map[string]adapters.PlatformAdapter),
		logger:   log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterAdapter 注册平台适配器
func (s *StatsService) RegisterAdapter(adapter adapters.PlatformAdapter) {
	s.adapters[adapter.GetPlatformName()] = adapter
}

// GetAdapter 获取平台适配器，平台名称需完全一致
func (s *StatsService) GetAdapter(platform string) (adapters.PlatformAdapter, bool) {
	adapter, ok := s.adapters[platform]
	return adapter, ok
}

// SupportedPlatforms 专用适配器和兜底模板支持的平台
func (s *StatsService) SupportedPlatforms() PlatformList {
	list := PlatformList{Dedicated: make([]string, 0, len(s.adapters)), Fallback: []string{}}
	for name := range s.adapters {
		list.Dedicated = append(list.Dedicated, name)
	}
	sort.Strings(list.Dedicated)
	if s.fallback != nil {
		list.Fallback = s.fallback.Platforms()
	}
	return list
}

// resolveAdapter 先精确匹配专用适配器，再查兜底模板
func (s *StatsService) resolveAdapter(platform string) (adapters.PlatformAdapter, bool) {
	if adapter, ok := s.adapters[platform]; ok {
		return adapter, true
	}
	if s.fallback != nil {
		return s.fallback.ForPlatform(platform)
	}
	return nil, false
}

// ResolveStats 获取账号统计数据，任何失败都返回全空结果而不是错误
func (s *StatsService) ResolveStats(ctx context.Context, platform, username string) *entities.ProfileStats {
	log := s.logger.WithFields(map[string]interface{}{"platform": platform, "username": username})

	adapter, ok := s.resolveAdapter(platform)
	if !ok {
		log.InfoContext(ctx, "不支持的平台，返回空结果")
		return entities.EmptyProfileStats()
	}

	stats, diag := adapters.Attempt(ctx, adapter, username)
	if diag != nil {
		log.WithError(diag).WarnContext(ctx, "获取统计数据失败")
	} else {
		log.DebugContext(ctx, "获取统计数据完成: 粉丝=%v, 名称=%v", stats.FollowerCount != nil, stats.DisplayName != nil)
	}
	return stats
}

// Resolve 处理一次请求：解析统计数据，然后记录快照并发送事件
// 记录和发送失败只写日志，不影响返回结果
func (s *StatsService) Resolve(ctx context.Context, req entities.ProfileRequest) *entities.ProfileStats {
	stats := s.ResolveStats(ctx, req.Platform, req.Username)
	s.record(ctx, req, stats)
	return stats
}

func (s *StatsService) record(ctx context.Context, req entities.ProfileRequest, stats *entities.ProfileStats) {
	log := s.logger.WithFields(map[string]interface{}{"platform": req.Platform, "username": req.Username})

	if s.repo != nil {
		if err := s.repo.Save(ctx, entities.NewStatsSnapshot(req, stats)); err != nil {
			log.WithError(err).WarnContext(ctx, "保存统计快照失败")
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishResolved(ctx, req, stats); err != nil {
			log.WithError(err).WarnContext(ctx, "发送统计事件失败")
		}
	}
}

// GetHistory 获取账号的历史快照，最新的在前
func (s *StatsService) GetHistory(ctx context.Context, platform, username string, limit int) ([]*entities.StatsSnapshot, error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}
	snapshots, err := s.repo.ListByProfile(ctx, platform, username, limit)
	if err != nil {
		return nil, errors.Wrap(err, "获取历史快照失败")
	}
	return snapshots, nil
}
