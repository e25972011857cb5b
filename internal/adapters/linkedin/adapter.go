package linkedin

import (
	"fmt"
	"net/url"

	"social-stats-service/internal/adapters"
	"social-stats-service/internal/adapters/extract"
	"social-stats-service/internal/config"
	"social-stats-service/pkg/logger"
)

const PlatformName = "LinkedIn"

// og:title 形如 "Jane Doe - Senior Engineer | LinkedIn"
var pageRules = adapters.PageRules{
	Count: []extract.CountRule{
		extract.MetaCount("og:description", "followers"),
	},
	Name: []extract.TextRule{
		extract.MetaText("og:title", extract.FirstSegment),
	},
}

// LinkedInAdapter LinkedIn 个人主页适配器
type LinkedInAdapter struct {
	*adapters.PageAdapter
}

// NewLinkedInAdapter 创建 LinkedIn 适配器
func NewLinkedInAdapter(cfg config.PlatformConfig, fetcher adapters.Fetcher, log logger.Logger) *LinkedInAdapter {
	profileURL := func(username string) string {
		return fmt.Sprintf("%s/in/%s/", cfg.BaseURL, url.PathEscape(username))
	}
	return &LinkedInAdapter{adapters.NewPageAdapter(PlatformName, profileURL, pageRules, fetcher, log)}
}
