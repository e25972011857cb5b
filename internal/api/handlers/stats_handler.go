package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"social-stats-service/internal/domain/entities"
	"social-stats-service/internal/services"
	"social-stats-service/pkg/logger"
)

// MissingFieldsMessage 缺少必填字段时的错误信息
const MissingFieldsMessage = "Missing required fields: platform, username"

// StatsResponse 统计查询响应
// Error 只在请求体无法解析时出现，此时两个字段均为空
type StatsResponse struct {
	FollowerCount *int64  `json:"follower_count"`
	DisplayName   *string `json:"display_name"`
	Error         string  `json:"error,omitempty"`
}

func newStatsResponse(stats *entities.ProfileStats) StatsResponse {
	if stats == nil {
		return StatsResponse{}
	}
	return StatsResponse{FollowerCount: stats.FollowerCount, DisplayName: stats.DisplayName}
}

// StatsHandler 处理社交账号统计相关的API请求
type StatsHandler struct {
	statsService *services.StatsService
	logger       logger.Logger
}

// NewStatsHandler 创建统计处理器
func NewStatsHandler(statsService *services.StatsService, log logger.Logger) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		logger:       log,
	}
}

// ResolveStats 获取账号统计数据
// POST /api/v1/social-stats
func (h *StatsHandler) ResolveStats(c *gin.Context) {
	var req entities.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).WarnContext(c.Request.Context(), "解析请求体失败")
		c.JSON(http.StatusOK, StatsResponse{Error: err.Error()})
		return
	}

	h.resolve(c, req)
}

// GetStats 获取账号统计数据
// GET /api/v1/social-stats/:platform/:username
func (h *StatsHandler) GetStats(c *gin.Context) {
	h.resolve(c, entities.ProfileRequest{
		Platform: c.Param("platform"),
		Username: c.Param("username"),
	})
}

func (h *StatsHandler) resolve(c *gin.Context, req entities.ProfileRequest) {
	if !req.Validate() {
		c.JSON(http.StatusBadRequest, gin.H{"error": MissingFieldsMessage})
		return
	}

	stats := h.statsService.Resolve(c.Request.Context(), req)
	c.JSON(http.StatusOK, newStatsResponse(stats))
}

// ListPlatforms 获取支持的平台
// GET /api/v1/social-stats/platforms
func (h *StatsHandler) ListPlatforms(c *gin.Context) {
	c.JSON(http.StatusOK, h.statsService.SupportedPlatforms())
}

// GetHistory 获取账号的历史快照
// GET /api/v1/social-stats/history/:platform/:username?limit=30
func (h *StatsHandler) GetHistory(c *gin.Context) {
	platform := c.Param("platform")
	username := c.Param("username")

	limit := 0
	if limitParam := c.Query("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit 必须为正整数"})
			return
		}
		limit = parsed
	}

	snapshots, err := h.statsService.GetHistory(c.Request.Context(), platform, username, limit)
	if errors.Is(err, services.ErrHistoryDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.WithError(err).ErrorContext(c.Request.Context(), "获取历史快照失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取历史快照失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"platform": platform,
		"username": username,
		"data":     snapshots,
	})
}
