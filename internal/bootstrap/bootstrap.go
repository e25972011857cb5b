// Package bootstrap 根据配置组装统计服务，供 HTTP 服务和命令行工具共用
package bootstrap

import (
	"social-stats-service/internal/adapters/fetch"
	"social-stats-service/internal/adapters/generic"
	"social-stats-service/internal/adapters/instagram"
	"social-stats-service/internal/adapters/linkedin"
	"social-stats-service/internal/adapters/tiktok"
	"social-stats-service/internal/adapters/twitter"
	"social-stats-service/internal/adapters/youtube"
	"social-stats-service/internal/config"
	"social-stats-service/internal/services"
	"social-stats-service/pkg/logger"
)

// NewFetchClient 根据出站请求配置创建客户端
func NewFetchClient(cfg config.HTTPConfig) *fetch.Client {
	return fetch.NewClient(fetch.Options{
		UserAgent:      cfg.UserAgent,
		AcceptLanguage: cfg.AcceptLanguage,
		Timeout:        cfg.Timeout(),
	})
}

// NewStatsService 创建统计服务并注册所有平台适配器和通用兜底策略
func NewStatsService(cfg *config.Config, log logger.Logger, opts ...services.Option) *services.StatsService {
	client := NewFetchClient(cfg.HTTP)

	fallback := generic.NewGenericAdapter(cfg.Fallback.ProfileURLs, client, log)
	opts = append([]services.Option{services.WithFallback(fallback)}, opts...)

	statsService := services.NewStatsService(log, opts...)
	statsService.RegisterAdapter(instagram.NewInstagramAdapter(cfg.Adapters.Instagram, client, log))
	statsService.RegisterAdapter(tiktok.NewTikTokAdapter(cfg.Adapters.TikTok, client, log))
	statsService.RegisterAdapter(youtube.NewYouTubeAdapter(cfg.Adapters.YouTube, client, log))
	statsService.RegisterAdapter(twitter.NewTwitterAdapter(cfg.Adapters.Twitter, client, log))
	statsService.RegisterAdapter(linkedin.NewLinkedInAdapter(cfg.Adapters.LinkedIn, client, log))

	return statsService
}
