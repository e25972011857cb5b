package twitter

import (
	"fmt"
	"net/url"

	"social-stats-service/internal/adapters"
	"social-stats-service/internal/adapters/extract"
	"social-stats-service/internal/config"
	"social-stats-service/pkg/logger"
)

const PlatformName = "X (Twitter)"

// og:title 形如 "John Doe (@johndoe) / X"
var pageRules = adapters.PageRules{
	Count: []extract.CountRule{
		extract.MetaCount("og:description", "Followers"),
	},
	Name: []extract.TextRule{
		extract.MetaText("og:title", extract.BeforeHandle),
	},
}

// TwitterAdapter X/Twitter 适配器
type TwitterAdapter struct {
	*adapters.PageAdapter
}

// NewTwitterAdapter 创建 X/Twitter 适配器
func NewTwitterAdapter(cfg config.PlatformConfig, fetcher adapters.Fetcher, log logger.Logger) *TwitterAdapter {
	profileURL := func(username string) string {
		return fmt.Sprintf("%s/%s", cfg.BaseURL, url.PathEscape(username))
	}
	return &TwitterAdapter{adapters.NewPageAdapter(PlatformName, profileURL, pageRules, fetcher, log)}
}
