package adapters

import (
	"context"
	"fmt"

	"social-stats-service/internal/adapters/extract"
	"social-stats-service/internal/domain/entities"
	"social-stats-service/pkg/logger"
)

// PageRules 一个页面上两个字段各自的提取规则，按优先级排列
type PageRules struct {
	Count []extract.CountRule
	Name  []extract.TextRule
}

// Hits 记录每个字段命中的规则，便于调试日志
type Hits struct {
	Count string
	Name  string
}

// Apply 对页面分别提取两个字段
func (r PageRules) Apply(doc *extract.Document) (*entities.ProfileStats, Hits) {
	count, countRule := extract.FirstCount(doc, r.Count...)
	name, nameRule := extract.FirstText(doc, r.Name...)
	return &entities.ProfileStats{FollowerCount: count, DisplayName: name}, Hits{Count: countRule, Name: nameRule}
}

// ScrapePage 请求页面并应用规则；请求失败时不做任何提取
func ScrapePage(ctx context.Context, f Fetcher, url string, headers map[string]string, rules PageRules) (*entities.ProfileStats, Hits, error) {
	body, err := f.Get(ctx, url, headers)
	if err != nil {
		return nil, Hits{}, err
	}
	stats, hits := rules.Apply(extract.NewDocument(body))
	return stats, hits, nil
}

// PageAdapter 只请求一个页面的平台适配器
type PageAdapter struct {
	name       string
	profileURL func(username string) string
	rules      PageRules
	fetcher    Fetcher
	logger     logger.Logger
}

// NewPageAdapter 创建页面适配器
func NewPageAdapter(name string, profileURL func(username string) string, rules PageRules, fetcher Fetcher, log logger.Logger) *PageAdapter {
	return &PageAdapter{
		name:       name,
		profileURL: profileURL,
		rules:      rules,
		fetcher:    fetcher,
		logger:     log.WithField("platform", name),
	}
}

// GetPlatformName 获取平台名称
func (a *PageAdapter) GetPlatformName() string {
	return a.name
}

// CollectStats 请求主页并提取统计数据
func (a *PageAdapter) CollectStats(ctx context.Context, username string) (*entities.ProfileStats, error) {
	pageURL := a.profileURL(username)
	stats, hits, err := ScrapePage(ctx, a.fetcher, pageURL, nil, a.rules)
	if err != nil {
		return nil, fmt.Errorf("获取%s主页失败: %w", a.name, err)
	}
	a.logger.DebugContext(ctx, "主页解析完成: url=%s, 粉丝规则=%q, 名称规则=%q", pageURL, hits.Count, hits.Name)
	return stats, nil
}
