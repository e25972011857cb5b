package entities

import (
	"time"

	"github.com/google/uuid"
)

// StatsSnapshot 一次解析结果的历史记录
type StatsSnapshot struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Platform      string    `json:"platform" db:"platform"`
	Username      string    `json:"username" db:"username"`
	FollowerCount *int64    `json:"follower_count" db:"follower_count"`
	DisplayName   *string   `json:"display_name" db:"display_name"`
	FetchedAt     time.Time `json:"fetched_at" db:"fetched_at"`
}

// NewStatsSnapshot 根据解析结果创建快照
func NewStatsSnapshot(req ProfileRequest, stats *ProfileStats) *StatsSnapshot {
	snap := &StatsSnapshot{
		ID:        uuid.New(),
		Platform:  req.Platform,
		Username:  req.Username,
		FetchedAt: time.Now().UTC(),
	}
	if stats != nil {
		snap.FollowerCount = stats.FollowerCount
		snap.DisplayName = stats.DisplayName
	}
	return snap
}
