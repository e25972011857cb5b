package tiktok

import (
	"fmt"
	"net/url"

	"social-stats-service/internal/adapters"
	"social-stats-service/internal/adapters/extract"
	"social-stats-service/internal/config"
	"social-stats-service/pkg/logger"
)

const PlatformName = "TikTok"

// 页面内嵌的 JSON 数据优先，其次是 og 标签
var pageRules = adapters.PageRules{
	Count: []extract.CountRule{
		extract.JSONNumberKey("followerCount"),
		extract.MetaCount("og:description", "Followers"),
	},
	Name: []extract.TextRule{
		extract.JSONStringKey("nickname"),
		extract.MetaText("og:title", extract.BeforeHandle),
	},
}

// TikTokAdapter TikTok 适配器
type TikTokAdapter struct {
	*adapters.PageAdapter
}

// NewTikTokAdapter 创建 TikTok 适配器
func NewTikTokAdapter(cfg config.PlatformConfig, fetcher adapters.Fetcher, log logger.Logger) *TikTokAdapter {
	profileURL := func(username string) string {
		return fmt.Sprintf("%s/@%s", cfg.BaseURL, url.PathEscape(username))
	}
	return &TikTokAdapter{adapters.NewPageAdapter(PlatformName, profileURL, pageRules, fetcher, log)}
}
