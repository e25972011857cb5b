package extract

// Document 一次抓取到的页面正文，meta 查询结果按 key 缓存
type Document struct {
	Body string
	meta map[string]metaValue
}

type metaValue struct {
	value string
	ok    bool
}

// NewDocument 包装页面正文
func NewDocument(body string) *Document {
	return &Document{Body: body, meta: make(map[string]metaValue)}
}

// Meta 返回指定 meta 标签的 content
func (d *Document) Meta(key string) (string, bool) {
	if v, ok := d.meta[key]; ok {
		return v.value, v.ok
	}
	value, ok := ExtractMeta(d.Body, key)
	d.meta[key] = metaValue{value: value, ok: ok}
	return value, ok
}
