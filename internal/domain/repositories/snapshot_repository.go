package repositories

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"social-stats-service/internal/config"
	"social-stats-service/internal/domain/entities"
)

// DefaultHistoryLimit 未指定数量时返回的快照条数
const DefaultHistoryLimit = 30

// MaxHistoryLimit 单次最多返回的快照条数
const MaxHistoryLimit = 500

// Schema 快照表结构
const Schema = `
CREATE TABLE IF NOT EXISTS social_stats_snapshots (
	id             UUID PRIMARY KEY,
	platform       VARCHAR(64)  NOT NULL,
	username       VARCHAR(255) NOT NULL,
	follower_count BIGINT,
	display_name   TEXT,
	fetched_at     TIMESTAMPTZ  NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_social_stats_snapshots_profile
	ON social_stats_snapshots (platform, username, fetched_at DESC);
`

// SnapshotRepository 统计快照仓库
type SnapshotRepository struct {
	db *sqlx.DB
}

// NewDBConnection 创建数据库连接
func NewDBConnection(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.DatabaseDSN())
	if err != nil {
		return nil, errors.Wrap(err, "连接数据库失败")
	}
	return db, nil
}

// NewSnapshotRepository 创建统计快照仓库
func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// EnsureSchema 创建快照表
func (r *SnapshotRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return errors.Wrap(err, "创建快照表失败")
	}
	return nil
}

// Close 关闭数据库连接
func (r *SnapshotRepository) Close() error {
	return r.db.Close()
}

// Save 保存一条快照
func (r *SnapshotRepository) Save(ctx context.Context, snapshot *entities.StatsSnapshot) error {
	query := `
		INSERT INTO social_stats_snapshots (id, platform, username, follower_count, display_name, fetched_at)
		VALUES (:id, :platform, :username, :follower_count, :display_name, :fetched_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, snapshot); err != nil {
		return errors.Wrapf(err, "保存快照失败: %s/%s", snapshot.Platform, snapshot.Username)
	}
	return nil
}

// ListByProfile 获取账号的快照，最新的在前
func (r *SnapshotRepository) ListByProfile(ctx context.Context, platform, username string, limit int) ([]*entities.StatsSnapshot, error) {
	query := `
		SELECT id, platform, username, follower_count, display_name, fetched_at
		FROM social_stats_snapshots
		WHERE platform = $1 AND username = $2
		ORDER BY fetched_at DESC
		LIMIT $3
	`

	snapshots := []*entities.StatsSnapshot{}
	if err := r.db.SelectContext(ctx, &snapshots, query, platform, username, normalizeLimit(limit)); err != nil {
		return nil, errors.Wrap(err, "查询快照失败")
	}
	return snapshots, nil
}

// ListStaleProfiles 最新快照早于 before 的账号
func (r *SnapshotRepository) ListStaleProfiles(ctx context.Context, before time.Time) ([]entities.ProfileRequest, error) {
	query := `
		SELECT platform, username
		FROM social_stats_snapshots
		GROUP BY platform, username
		HAVING MAX(fetched_at) < $1
		ORDER BY MAX(fetched_at)
	`

	profiles := []entities.ProfileRequest{}
	if err := r.db.SelectContext(ctx, &profiles, query, before); err != nil {
		return nil, errors.Wrap(err, "查询需要刷新的账号失败")
	}
	return profiles, nil
}

func normalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		return MaxHistoryLimit
	default:
		return limit
	}
}
