package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"social-stats-service/internal/adapters"
	"social-stats-service/internal/adapters/extract"
	"social-stats-service/internal/config"
	"social-stats-service/internal/domain/entities"
	"social-stats-service/pkg/logger"
)

const (
	PlatformName    = "Instagram"
	profileInfoPath = "/api/v1/users/web_profile_info/"
	appIDHeader     = "X-IG-App-ID"
)

// 页面兜底规则：og:description 形如 "1.2M Followers, 500 Following, 300 Posts - See Instagram photos and videos from Name (@user)"
var pageRules = adapters.PageRules{
	Count: []extract.CountRule{
		extract.MetaCount("og:description", "Followers"),
	},
	Name: []extract.TextRule{
		extract.MetaText("og:title", extract.BeforeHandle),
		extract.MetaText("og:description", extract.AfterFrom),
	},
}

// profileInfoResponse 内部接口返回的结构，只保留需要的字段
type profileInfoResponse struct {
	Data struct {
		User *struct {
			FullName       *string `json:"full_name"`
			EdgeFollowedBy *struct {
				Count *int64 `json:"count"`
			} `json:"edge_followed_by"`
		} `json:"user"`
	} `json:"data"`
}

// InstagramAdapter Instagram 适配器
// 先调用内部资料接口，接口没有任何数据时再抓取主页的 meta 标签
type InstagramAdapter struct {
	config  config.InstagramConfig
	fetcher adapters.Fetcher
	logger  logger.Logger
}

// NewInstagramAdapter 创建 Instagram 适配器
func NewInstagramAdapter(cfg config.InstagramConfig, fetcher adapters.Fetcher, log logger.Logger) *InstagramAdapter {
	return &InstagramAdapter{
		config:  cfg,
		fetcher: fetcher,
		logger:  log.WithField("platform", PlatformName),
	}
}

// GetPlatformName 获取平台名称
func (a *InstagramAdapter) GetPlatformName() string {
	return PlatformName
}

// CollectStats 获取账号统计数据
func (a *InstagramAdapter) CollectStats(ctx context.Context, username string) (*entities.ProfileStats, error) {
	stats, err := a.fetchProfileInfo(ctx, username)
	if err != nil {
		a.logger.DebugContext(ctx, "内部接口获取失败，改为抓取主页: %v", err)
	} else if !stats.IsEmpty() {
		return stats, nil
	}

	pageURL := fmt.Sprintf("%s/%s/", a.config.BaseURL, url.PathEscape(username))
	pageStats, hits, err := adapters.ScrapePage(ctx, a.fetcher, pageURL, nil, pageRules)
	if err != nil {
		return nil, fmt.Errorf("获取Instagram主页失败: %w", err)
	}
	a.logger.DebugContext(ctx, "主页解析完成: 粉丝规则=%q, 名称规则=%q", hits.Count, hits.Name)

	return pageStats, nil
}

// fetchProfileInfo 调用内部资料接口
func (a *InstagramAdapter) fetchProfileInfo(ctx context.Context, username string) (*entities.ProfileStats, error) {
	apiURL := fmt.Sprintf("%s%s?username=%s", a.config.APIBaseURL, profileInfoPath, url.QueryEscape(username))

	body, err := a.fetcher.Get(ctx, apiURL, map[string]string{appIDHeader: a.config.AppID})
	if err != nil {
		return nil, err
	}

	var resp profileInfoResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, fmt.Errorf("解析资料接口响应失败: %w", err)
	}

	stats := entities.EmptyProfileStats()
	user := resp.Data.User
	if user == nil {
		return stats, nil
	}
	if user.EdgeFollowedBy != nil && user.EdgeFollowedBy.Count != nil && *user.EdgeFollowedBy.Count >= 0 {
		stats.FollowerCount = user.EdgeFollowedBy.Count
	}
	if user.FullName != nil && *user.FullName != "" {
		stats.DisplayName = user.FullName
	}
	return stats, nil
}
