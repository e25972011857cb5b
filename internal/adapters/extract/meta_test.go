package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMeta(t *testing.T) {
	testCases := []struct {
		name     string
		document string
		key      string
		expected string
		ok       bool
	}{
		{
			name:     "property before content",
			document: `<meta property="og:title" content="Hi">`,
			key:      "og:title",
			expected: "Hi",
			ok:       true,
		},
		{
			name:     "content before property",
			document: `<meta content="Hi" property="og:title">`,
			key:      "og:title",
			expected: "Hi",
			ok:       true,
		},
		{
			name:     "name attribute and single quotes",
			document: `<META name='description' CONTENT='Hello there'/>`,
			key:      "description",
			expected: "Hello there",
			ok:       true,
		},
		{
			name:     "apostrophe inside double quotes",
			document: `<meta property="og:title" content="Jane's Channel">`,
			key:      "og:title",
			expected: "Jane's Channel",
			ok:       true,
		},
		{
			name:     "entities are unescaped",
			document: `<meta property="og:title" content="Tom &amp; Jerry (&#064;tj)">`,
			key:      "og:title",
			expected: "Tom & Jerry (@tj)",
			ok:       true,
		},
		{
			name:     "other keys are ignored",
			document: `<meta property="og:description" content="x"><meta property="og:title" content="y">`,
			key:      "og:title",
			expected: "y",
			ok:       true,
		},
		{
			name:     "key is not a regex",
			document: `<meta property="ogXtitle" content="nope">`,
			key:      "og.title",
			ok:       false,
		},
		{
			name:     "missing",
			document: `<html><head><title>t</title></head>`,
			key:      "og:title",
			ok:       false,
		},
		{
			name:     "malformed html",
			document: `<meta property="og:title" content="unterminated`,
			key:      "og:title",
			ok:       false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractMeta(tc.document, tc.key)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestDocumentMetaIsCached(t *testing.T) {
	doc := NewDocument(`<meta property="og:title" content="Cached">`)
	v, ok := doc.Meta("og:title")
	assert.True(t, ok)
	assert.Equal(t, "Cached", v)

	doc.Body = ""
	v, ok = doc.Meta("og:title")
	assert.True(t, ok)
	assert.Equal(t, "Cached", v)
}
