package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultUserAgent 模拟未登录的桌面浏览器
	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultAcceptLanguage = "en-US,en;q=0.9"
	DefaultTimeout        = 10 * time.Second
	maxRedirects          = 10
)

// ErrUnexpectedStatus 上游返回非2xx状态码
var ErrUnexpectedStatus = errors.New("unexpected status")

// StatusError 非2xx响应
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("请求 %s 返回状态码 %d", e.URL, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// Options 客户端配置
type Options struct {
	UserAgent      string
	AcceptLanguage string
	Timeout        time.Duration
}

// Client 以浏览器身份发起GET请求的客户端
type Client struct {
	client *resty.Client
}

// NewClient 创建客户端，空字段使用默认值
func NewClient(opts Options) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.AcceptLanguage == "" {
		opts.AcceptLanguage = DefaultAcceptLanguage
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects)).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept-Language", opts.AcceptLanguage)

	return &Client{client: client}
}

// Get 请求页面并返回响应正文；非2xx返回 *StatusError
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (string, error) {
	req := c.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}

	resp, err := req.Get(url)
	if err != nil {
		return "", fmt.Errorf("请求 %s 失败: %w", url, err)
	}

	if !resp.IsSuccess() {
		return "", &StatusError{URL: url, StatusCode: resp.StatusCode()}
	}

	return resp.String(), nil
}
