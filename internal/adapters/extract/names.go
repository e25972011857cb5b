package extract

import (
	"regexp"
	"strings"
)

var (
	beforeHandlePattern  = regexp.MustCompile(`^(.+?)\s*\(@`)
	afterFromPattern     = regexp.MustCompile(`(?i)\bfrom\s+(.+?)(?:\s*\(@|\s*$)`)
	youtubeSuffixPattern = regexp.MustCompile(`\s*[-–—]?\s*YouTube\s*$`)
	titleSeparator       = regexp.MustCompile(`\s*[-–—|]\s*`)
)

// BeforeHandle "Display Name (@handle) ..." 取 "(@" 之前的部分
func BeforeHandle(title string) (string, bool) {
	m := beforeHandlePattern.FindStringSubmatch(title)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// AfterFrom "... photos and videos from Display Name (@handle)" 取 from 之后的名称
func AfterFrom(description string) (string, bool) {
	m := afterFromPattern.FindStringSubmatch(description)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// StripYouTubeSuffix 去掉标题末尾的 "- YouTube"
func StripYouTubeSuffix(title string) (string, bool) {
	return strings.TrimSpace(youtubeSuffixPattern.ReplaceAllString(title, "")), true
}

// FirstSegment 按第一个 - – — | 分隔符切分，取第一段
func FirstSegment(title string) (string, bool) {
	parts := titleSeparator.Split(title, 2)
	return strings.TrimSpace(parts[0]), true
}

// Raw 原样返回
func Raw(s string) (string, bool) {
	return strings.TrimSpace(s), true
}
