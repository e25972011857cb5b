package extract

import (
	"fmt"
	"regexp"
	"sync"

	"golang.org/x/net/html"
)

// metaPatterns 每个 key 两个正则：key 在 content 之前、content 在 key 之前
type metaPatterns struct {
	keyFirst     *regexp.Regexp
	contentFirst *regexp.Regexp
}

var metaPatternCache sync.Map // map[string]*metaPatterns

const contentAttr = `content=(?:"([^"]*)"|'([^']*)')`

func patternsFor(key string) *metaPatterns {
	if p, ok := metaPatternCache.Load(key); ok {
		return p.(*metaPatterns)
	}

	keyAttr := fmt.Sprintf(`(?:property|name)=["']%s["']`, regexp.QuoteMeta(key))
	p := &metaPatterns{
		keyFirst:     regexp.MustCompile(`(?i)<meta[^>]*` + keyAttr + `[^>]*` + contentAttr),
		contentFirst: regexp.MustCompile(`(?i)<meta[^>]*` + contentAttr + `[^>]*` + keyAttr),
	}
	actual, _ := metaPatternCache.LoadOrStore(key, p)
	return actual.(*metaPatterns)
}

// ExtractMeta 查找 property 或 name 等于 key 的 meta 标签，返回其 content
// 只做文本匹配，不解析DOM；属性顺序两种都支持，先匹配到的优先
func ExtractMeta(document, key string) (string, bool) {
	p := patternsFor(key)
	for _, re := range []*regexp.Regexp{p.keyFirst, p.contentFirst} {
		m := re.FindStringSubmatch(document)
		if m == nil {
			continue
		}
		value := m[1]
		if value == "" {
			value = m[2]
		}
		return html.UnescapeString(value), true
	}
	return "", false
}
