package adapters

import (
	"context"
	"fmt"

	"social-stats-service/internal/domain/entities"
)

// PlatformAdapter 平台适配器接口
type PlatformAdapter interface {
	// GetPlatformName 获取平台名称，与请求中的 platform 完全一致
	GetPlatformName() string

	// CollectStats 获取账号的粉丝数和显示名称
	// 请求失败或非2xx时返回错误，提取不到的字段保持为空
	CollectStats(ctx context.Context, username string) (*entities.ProfileStats, error)
}

// Fetcher 发起GET请求并返回正文，非2xx视为错误
type Fetcher interface {
	Get(ctx context.Context, url string, headers map[string]string) (string, error)
}

// Attempt 调用适配器，任何错误或panic都转换为全空结果
// 返回的 error 只用于记录诊断信息，结果永远不为nil
func Attempt(ctx context.Context, adapter PlatformAdapter, username string) (stats *entities.ProfileStats, diag error) {
	defer func() {
		if r := recover(); r != nil {
			stats = entities.EmptyProfileStats()
			diag = fmt.Errorf("平台 %s 适配器异常: %v", adapter.GetPlatformName(), r)
		}
	}()

	stats, err := adapter.CollectStats(ctx, username)
	if err != nil {
		return entities.EmptyProfileStats(), err
	}
	if stats == nil {
		return entities.EmptyProfileStats(), nil
	}
	return stats, nil
}
