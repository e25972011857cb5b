package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"social-stats-service/internal/config"
	"social-stats-service/internal/domain/entities"
	"social-stats-service/pkg/logger"
)

// 事件类型常量
const (
	EventTypeStatsResolved = "social_stats.resolved"
)

// MessageEvent Kafka消息事件结构
type MessageEvent struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// StatsResolvedPayload 统计数据解析完成事件载荷
type StatsResolvedPayload struct {
	Platform      string  `json:"platform"`
	Username      string  `json:"username"`
	FollowerCount *int64  `json:"follower_count"`
	DisplayName   *string `json:"display_name"`
}

// KafkaProducer Kafka生产者
type KafkaProducer struct {
	topic    string
	producer sarama.SyncProducer
	logger   logger.Logger
}

// NewKafkaProducer 创建Kafka生产者
func NewKafkaProducer(cfg config.KafkaConfig, log logger.Logger) (*KafkaProducer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V2_8_1_0
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll // 等待所有副本确认
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("创建Kafka生产者失败: %w", err)
	}

	return NewKafkaProducerWithClient(cfg.Topic, producer, log), nil
}

// NewKafkaProducerWithClient 使用已有的 SyncProducer 创建生产者
func NewKafkaProducerWithClient(topic string, producer sarama.SyncProducer, log logger.Logger) *KafkaProducer {
	return &KafkaProducer{
		topic:    topic,
		producer: producer,
		logger:   log,
	}
}

// Close 关闭Kafka生产者
func (k *KafkaProducer) Close() error {
	return k.producer.Close()
}

// PublishResolved 发送统计数据解析完成事件，按 平台:用户名 分区
func (k *KafkaProducer) PublishResolved(ctx context.Context, req entities.ProfileRequest, stats *entities.ProfileStats) error {
	payload := StatsResolvedPayload{
		Platform: req.Platform,
		Username: req.Username,
	}
	if stats != nil {
		payload.FollowerCount = stats.FollowerCount
		payload.DisplayName = stats.DisplayName
	}
	return k.SendEvent(ctx, EventTypeStatsResolved, req.Platform+":"+req.Username, payload)
}

// SendEvent 发送事件
func (k *KafkaProducer) SendEvent(ctx context.Context, eventType, key string, payload interface{}) error {
	event := MessageEvent{
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	}

	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("序列化事件失败: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: k.topic,
		Value: sarama.ByteEncoder(jsonData),
	}
	if key != "" {
		msg.Key = sarama.StringEncoder(key)
	}

	partition, offset, err := k.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("发送事件失败: %w", err)
	}

	k.logger.DebugContext(ctx, "消息发送成功: 主题=%s, 分区=%d, 偏移量=%d, 类型=%s",
		k.topic, partition, offset, eventType)
	return nil
}
