package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// CountRule 从页面中提取计数的一种方式
type CountRule struct {
	Name    string
	Extract func(doc *Document) (int64, bool)
}

// TextRule 从页面中提取文本的一种方式
type TextRule struct {
	Name    string
	Extract func(doc *Document) (string, bool)
}

// FirstCount 按顺序尝试规则，返回第一个成功的结果和命中的规则名
func FirstCount(doc *Document, rules ...CountRule) (*int64, string) {
	for _, r := range rules {
		if v, ok := r.Extract(doc); ok {
			return &v, r.Name
		}
	}
	return nil, ""
}

// FirstText 按顺序尝试规则，空字符串视为未命中
func FirstText(doc *Document, rules ...TextRule) (*string, string) {
	for _, r := range rules {
		if v, ok := r.Extract(doc); ok && v != "" {
			return &v, r.Name
		}
	}
	return nil, ""
}

// countWordPattern 匹配 "<n> <word>"，不区分大小写
func countWordPattern(word string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)([\d,.]+[KMB]?)\s+` + regexp.QuoteMeta(word))
}

// countIn 用 countWordPattern 生成的正则在文本中查找并解析数字部分
func countIn(re *regexp.Regexp, text string) (int64, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	return ParseCount(m[1])
}

// MetaCount 在 meta 标签内容中查找 "<n> <word>"
func MetaCount(key, word string) CountRule {
	re := countWordPattern(word)
	return CountRule{
		Name: fmt.Sprintf("meta:%s", key),
		Extract: func(doc *Document) (int64, bool) {
			content, ok := doc.Meta(key)
			if !ok {
				return 0, false
			}
			return countIn(re, content)
		},
	}
}

// BodyCount 在整个页面正文中查找 "<n> <word>"
func BodyCount(word string) CountRule {
	re := countWordPattern(word)
	return CountRule{
		Name: "body:" + word,
		Extract: func(doc *Document) (int64, bool) {
			return countIn(re, doc.Body)
		},
	}
}

// JSONNumberKey 在页面内嵌的 JSON 中查找第一个 "key": 数字
func JSONNumberKey(key string) CountRule {
	re := regexp.MustCompile(`"` + regexp.QuoteMeta(key) + `"\s*:\s*"?(\d+)`)
	return CountRule{
		Name: "json:" + key,
		Extract: func(doc *Document) (int64, bool) {
			m := re.FindStringSubmatch(doc.Body)
			if m == nil {
				return 0, false
			}
			return ParseCount(m[1])
		},
	}
}

// JSONStringKey 在页面内嵌的 JSON 中查找第一个 "key": "字符串"，并处理转义
func JSONStringKey(key string) TextRule {
	re := regexp.MustCompile(`"` + regexp.QuoteMeta(key) + `"\s*:\s*("(?:[^"\\]|\\.)*")`)
	return TextRule{
		Name: "json:" + key,
		Extract: func(doc *Document) (string, bool) {
			m := re.FindStringSubmatch(doc.Body)
			if m == nil {
				return "", false
			}
			var value string
			if err := json.Unmarshal([]byte(m[1]), &value); err != nil {
				return "", false
			}
			return strings.TrimSpace(value), true
		},
	}
}

// MetaText 读取 meta 标签内容并做转换
func MetaText(key string, transform func(string) (string, bool)) TextRule {
	return TextRule{
		Name: fmt.Sprintf("meta:%s", key),
		Extract: func(doc *Document) (string, bool) {
			content, ok := doc.Meta(key)
			if !ok || content == "" {
				return "", false
			}
			return transform(content)
		},
	}
}
