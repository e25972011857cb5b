package entities

// ProfileStats 社交账号统计结果
// 两个字段独立提取，任一字段缺失不影响另一字段
type ProfileStats struct {
	FollowerCount *int64  `json:"follower_count"` // 粉丝/订阅数
	DisplayName   *string `json:"display_name"`   // 显示名称
}

// EmptyProfileStats 返回全空结果
func EmptyProfileStats() *ProfileStats {
	return &ProfileStats{}
}

// IsEmpty 两个字段都为空
func (s *ProfileStats) IsEmpty() bool {
	return s == nil || (s.FollowerCount == nil && s.DisplayName == nil)
}
