package entities

import "strings"

// ProfileRequest 统计查询请求
type ProfileRequest struct {
	Platform string `json:"platform" form:"platform" db:"platform"`
	Username string `json:"username" form:"username" db:"username"`
}

// Validate 平台和用户名均为必填
func (r ProfileRequest) Validate() bool {
	return strings.TrimSpace(r.Platform) != "" && strings.TrimSpace(r.Username) != ""
}
