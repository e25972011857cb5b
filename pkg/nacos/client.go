package nacos

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/nacos-group/nacos-sdk-go/v2/clients"
	"github.com/nacos-group/nacos-sdk-go/v2/clients/naming_client"
	"github.com/nacos-group/nacos-sdk-go/v2/common/constant"
	"github.com/nacos-group/nacos-sdk-go/v2/vo"
)

// Config Nacos配置
type Config struct {
	ServerAddr  string // Nacos服务地址，多个地址用逗号分隔，如 localhost:8848
	NamespaceID string // 命名空间ID，默认为public
	Group       string // 分组，默认为DEFAULT_GROUP
	Username    string
	Password    string
	LogDir      string
	CacheDir    string
}

// Client Nacos客户端，只负责服务注册
type Client struct {
	config       Config
	namingClient naming_client.INamingClient
}

func (c *Config) applyDefaults() {
	if c.NamespaceID == "" {
		c.NamespaceID = "public"
	}
	if c.Group == "" {
		c.Group = "DEFAULT_GROUP"
	}
	if c.LogDir == "" {
		c.LogDir = "/tmp/nacos/log"
	}
	if c.CacheDir == "" {
		c.CacheDir = "/tmp/nacos/cache"
	}
}

// parseServerAddrs 解析 host:port 列表
func parseServerAddrs(serverAddr string) ([]constant.ServerConfig, error) {
	addrs := strings.Split(serverAddr, ",")
	serverConfigs := make([]constant.ServerConfig, 0, len(addrs))

	for _, addr := range addrs {
		addr = strings.TrimSpace(addr)
		host, portStr, err := net.SplitHostPort(addr)
		if err != nil || host == "" {
			return nil, fmt.Errorf("无效的服务器地址格式: %s", addr)
		}

		port, err := strconv.ParseUint(portStr, 10, 16)
		if err != nil || port == 0 {
			return nil, fmt.Errorf("无效的端口号: %s", portStr)
		}

		serverConfigs = append(serverConfigs, constant.ServerConfig{
			IpAddr: host,
			Port:   port,
		})
	}

	return serverConfigs, nil
}

// NewClient 创建Nacos客户端
func NewClient(config Config) (*Client, error) {
	config.applyDefaults()

	serverConfigs, err := parseServerAddrs(config.ServerAddr)
	if err != nil {
		return nil, err
	}

	clientConfig := constant.ClientConfig{
		NamespaceId:         config.NamespaceID,
		TimeoutMs:           5000,
		NotLoadCacheAtStart: true,
		LogDir:              config.LogDir,
		CacheDir:            config.CacheDir,
		Username:            config.Username,
		Password:            config.Password,
		LogLevel:            "info",
	}

	namingClient, err := clients.NewNamingClient(
		vo.NacosClientParam{
			ClientConfig:  &clientConfig,
			ServerConfigs: serverConfigs,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("创建Nacos命名服务客户端失败: %w", err)
	}

	return &Client{
		config:       config,
		namingClient: namingClient,
	}, nil
}

// RegisterService 注册服务实例，ip 为空时使用本机IP，返回实际注册的IP
func (c *Client) RegisterService(serviceName, ip string, port int, metadata map[string]string) (string, error) {
	if ip == "" {
		localIP, err := LocalIP()
		if err != nil {
			return "", fmt.Errorf("无法获取本机IP: %w", err)
		}
		ip = localIP
	}

	ok, err := c.namingClient.RegisterInstance(vo.RegisterInstanceParam{
		Ip:          ip,
		Port:        uint64(port),
		ServiceName: serviceName,
		Weight:      10,
		Enable:      true,
		Healthy:     true,
		Ephemeral:   true,
		Metadata:    metadata,
		GroupName:   c.config.Group,
	})
	if err != nil {
		return "", fmt.Errorf("注册服务实例失败: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("注册服务实例失败: %s", serviceName)
	}

	return ip, nil
}

// DeregisterService 注销服务实例
func (c *Client) DeregisterService(serviceName, ip string, port int) error {
	_, err := c.namingClient.DeregisterInstance(vo.DeregisterInstanceParam{
		Ip:          ip,
		Port:        uint64(port),
		ServiceName: serviceName,
		Ephemeral:   true,
		GroupName:   c.config.Group,
	})
	if err != nil {
		return fmt.Errorf("注销服务实例失败: %w", err)
	}
	return nil
}

// Close 关闭客户端
func (c *Client) Close() {
	c.namingClient.CloseClient()
}

// LocalIP 获取本机第一个非回环IPv4地址
func LocalIP() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}

	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				return ipnet.IP.String(), nil
			}
		}
	}

	return "", fmt.Errorf("无法获取本机IP地址")
}
