package generic

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"social-stats-service/internal/adapters"
	"social-stats-service/internal/adapters/extract"
	"social-stats-service/internal/domain/entities"
	"social-stats-service/pkg/logger"
)

// UsernamePlaceholder URL模板中的用户名占位符
const UsernamePlaceholder = "{username}"

// DefaultProfileURLs 没有专用适配器的平台的主页地址模板
var DefaultProfileURLs = map[string]string{
	"Facebook":  "https://www.facebook.com/{username}",
	"Pinterest": "https://www.pinterest.com/{username}/",
	"Threads":   "https://www.threads.net/@{username}",
	"Twitch":    "https://www.twitch.tv/{username}",
	"Substack":  "https://{username}.substack.com",
}

// 最通用的规则：og:description 中的 "<n> followers" 和原样的 og:title
var pageRules = adapters.PageRules{
	Count: []extract.CountRule{
		extract.MetaCount("og:description", "followers"),
	},
	Name: []extract.TextRule{
		extract.MetaText("og:title", extract.Raw),
	},
}

// GenericAdapter 通用兜底策略
type GenericAdapter struct {
	templates map[string]string
	fetcher   adapters.Fetcher
	logger    logger.Logger
}

// NewGenericAdapter 创建通用兜底策略，overrides 中的模板覆盖或补充内置表
func NewGenericAdapter(overrides map[string]string, fetcher adapters.Fetcher, log logger.Logger) *GenericAdapter {
	templates := make(map[string]string, len(DefaultProfileURLs)+len(overrides))
	for platform, tmpl := range DefaultProfileURLs {
		templates[platform] = tmpl
	}
	for platform, tmpl := range overrides {
		if tmpl == "" {
			delete(templates, platform)
			continue
		}
		templates[platform] = tmpl
	}

	return &GenericAdapter{
		templates: templates,
		fetcher:   fetcher,
		logger:    log.WithField("strategy", "generic"),
	}
}

// ProfileURL 根据模板表构建主页地址，平台不在表中时返回 false
func (a *GenericAdapter) ProfileURL(platform, username string) (string, bool) {
	tmpl, ok := a.templates[platform]
	if !ok {
		return "", false
	}
	return strings.ReplaceAll(tmpl, UsernamePlaceholder, url.PathEscape(username)), true
}

// Platforms 模板表中的平台，按名称排序
func (a *GenericAdapter) Platforms() []string {
	platforms := make([]string, 0, len(a.templates))
	for platform := range a.templates {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)
	return platforms
}

// CollectProfile 请求主页并按通用规则提取
func (a *GenericAdapter) CollectProfile(ctx context.Context, profileURL string) (*entities.ProfileStats, error) {
	stats, hits, err := adapters.ScrapePage(ctx, a.fetcher, profileURL, nil, pageRules)
	if err != nil {
		return nil, fmt.Errorf("获取主页失败: %w", err)
	}
	a.logger.DebugContext(ctx, "主页解析完成: url=%s, 粉丝规则=%q, 名称规则=%q", profileURL, hits.Count, hits.Name)
	return stats, nil
}

// ForPlatform 返回绑定到某个平台的适配器，平台不在表中时返回 false
func (a *GenericAdapter) ForPlatform(platform string) (adapters.PlatformAdapter, bool) {
	if _, ok := a.templates[platform]; !ok {
		return nil, false
	}
	return &platformAdapter{parent: a, platform: platform}, true
}

type platformAdapter struct {
	parent   *GenericAdapter
	platform string
}

func (p *platformAdapter) GetPlatformName() string {
	return p.platform
}

func (p *platformAdapter) CollectStats(ctx context.Context, username string) (*entities.ProfileStats, error) {
	profileURL, ok := p.parent.ProfileURL(p.platform, username)
	if !ok {
		return entities.EmptyProfileStats(), nil
	}
	return p.parent.CollectProfile(ctx, profileURL)
}
