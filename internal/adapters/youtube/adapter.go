package youtube

import (
	"fmt"
	"net/url"

	"social-stats-service/internal/adapters"
	"social-stats-service/internal/adapters/extract"
	"social-stats-service/internal/config"
	"social-stats-service/pkg/logger"
)

const PlatformName = "YouTube"

// 订阅数只出现在页面正文里，没有对应的 meta 标签
var pageRules = adapters.PageRules{
	Count: []extract.CountRule{
		extract.BodyCount("subscribers"),
	},
	Name: []extract.TextRule{
		extract.MetaText("og:title", extract.StripYouTubeSuffix),
	},
}

// YouTubeAdapter YouTube 适配器，使用 @handle 形式的频道地址
type YouTubeAdapter struct {
	*adapters.PageAdapter
}

// NewYouTubeAdapter 创建 YouTube 适配器
func NewYouTubeAdapter(cfg config.PlatformConfig, fetcher adapters.Fetcher, log logger.Logger) *YouTubeAdapter {
	profileURL := func(username string) string {
		return fmt.Sprintf("%s/@%s", cfg.BaseURL, url.PathEscape(username))
	}
	return &YouTubeAdapter{adapters.NewPageAdapter(PlatformName, profileURL, pageRules, fetcher, log)}
}
