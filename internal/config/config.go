package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	HTTP     HTTPConfig     `yaml:"http"`
	Adapters AdaptersConfig `yaml:"adapters"`
	Fallback FallbackConfig `yaml:"fallback"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Nacos    NacosConfig    `yaml:"nacos"`
	Refresh  RefreshConfig  `yaml:"refresh"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port                string `yaml:"port"`
	Mode                string `yaml:"mode"` // gin 运行模式: debug, release, test
	ReadTimeoutSeconds  int    `yaml:"readTimeoutSeconds"`
	WriteTimeoutSeconds int    `yaml:"writeTimeoutSeconds"`
	IdleTimeoutSeconds  int    `yaml:"idleTimeoutSeconds"`
}

// HTTPConfig 出站请求配置
type HTTPConfig struct {
	UserAgent      string `yaml:"user_agent"`
	AcceptLanguage string `yaml:"accept_language"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout 出站请求超时
func (c HTTPConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// AdaptersConfig 各平台适配器配置
type AdaptersConfig struct {
	Instagram InstagramConfig `yaml:"instagram"`
	TikTok    PlatformConfig  `yaml:"tiktok"`
	YouTube   PlatformConfig  `yaml:"youtube"`
	Twitter   PlatformConfig  `yaml:"twitter"`
	LinkedIn  PlatformConfig  `yaml:"linkedin"`
}

// PlatformConfig 只抓取页面的平台配置
type PlatformConfig struct {
	BaseURL string `yaml:"base_url"`
}

// InstagramConfig Instagram 配置，内部接口需要额外的应用ID请求头
type InstagramConfig struct {
	BaseURL    string `yaml:"base_url"`
	APIBaseURL string `yaml:"api_base_url"`
	AppID      string `yaml:"app_id"`
}

// FallbackConfig 通用兜底策略的URL模板，{username} 为占位符
// 这里的条目会覆盖或补充内置表
type FallbackConfig struct {
	ProfileURLs map[string]string `yaml:"profile_urls"`
}

// DatabaseConfig 数据库配置，Host 为空时不记录快照
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// Enabled 是否配置了数据库
func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

// DatabaseDSN 获取数据库连接字符串
func (c DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// JWTConfig JWT配置，Secret 为空时接口不做认证
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// KafkaConfig Kafka配置，Brokers 为空时不发送事件
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// RefreshConfig 快照定时刷新配置，IntervalMinutes 为0时不启动
type RefreshConfig struct {
	IntervalMinutes   int `yaml:"interval_minutes"`
	StaleAfterMinutes int `yaml:"stale_after_minutes"`
	BatchSize         int `yaml:"batch_size"`
}

// Interval 刷新周期
func (c RefreshConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMinutes) * time.Minute
}

// StaleAfter 快照过期时间
func (c RefreshConfig) StaleAfter() time.Duration {
	return time.Duration(c.StaleAfterMinutes) * time.Minute
}

// NacosConfig Nacos配置
type NacosConfig struct {
	ServerAddr  string            `yaml:"server_addr"`
	NamespaceID string            `yaml:"namespace_id"`
	Group       string            `yaml:"group"`
	ServiceName string            `yaml:"service_name"`
	Username    string            `yaml:"username"`
	Password    string            `yaml:"password"`
	Enable      bool              `yaml:"enable"`
	Metadata    map[string]string `yaml:"metadata"`
	LogDir      string            `yaml:"log_dir"`
	CacheDir    string            `yaml:"cache_dir"`
}

// Default 返回带默认值的配置
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load 从环境变量 CONFIG_PATH 指定的文件加载配置，默认 config.yaml
func Load() (*Config, error) {
	return LoadConfig(getConfigPath())
}

// LoadConfig 从文件加载配置；文件不存在时使用默认配置
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
	}

	// 从环境变量覆盖配置
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Server.Port = port
	} else if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWT.Secret = secret
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8086"
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.Server.ReadTimeoutSeconds == 0 {
		cfg.Server.ReadTimeoutSeconds = 10
	}
	if cfg.Server.WriteTimeoutSeconds == 0 {
		// 要大于出站请求超时的两倍，Instagram 最多串行请求两次
		cfg.Server.WriteTimeoutSeconds = 30
	}
	if cfg.Server.IdleTimeoutSeconds == 0 {
		cfg.Server.IdleTimeoutSeconds = 60
	}

	if cfg.HTTP.TimeoutSeconds == 0 {
		cfg.HTTP.TimeoutSeconds = 10
	}

	a := &cfg.Adapters
	if a.Instagram.BaseURL == "" {
		a.Instagram.BaseURL = "https://www.instagram.com"
	}
	if a.Instagram.APIBaseURL == "" {
		a.Instagram.APIBaseURL = "https://i.instagram.com"
	}
	if a.Instagram.AppID == "" {
		a.Instagram.AppID = "936619743392459"
	}
	if a.TikTok.BaseURL == "" {
		a.TikTok.BaseURL = "https://www.tiktok.com"
	}
	if a.YouTube.BaseURL == "" {
		a.YouTube.BaseURL = "https://www.youtube.com"
	}
	if a.Twitter.BaseURL == "" {
		a.Twitter.BaseURL = "https://x.com"
	}
	if a.LinkedIn.BaseURL == "" {
		a.LinkedIn.BaseURL = "https://www.linkedin.com"
	}

	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}

	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "social-stats-events"
	}

	if cfg.Refresh.StaleAfterMinutes == 0 {
		cfg.Refresh.StaleAfterMinutes = 24 * 60
	}
	if cfg.Refresh.BatchSize == 0 {
		cfg.Refresh.BatchSize = 10
	}

	if cfg.Nacos.ServiceName == "" {
		cfg.Nacos.ServiceName = "social-stats-service"
	}
}

func getConfigPath() string {
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		return configPath
	}
	return "config.yaml"
}
