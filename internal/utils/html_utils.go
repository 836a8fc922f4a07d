package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.UGCPolicy()

func init() {
	// Force links to open in new tab
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.RequireNoReferrerOnLinks(true)
}

// SanitizeHTML 清洗导入的 HTML 正文，只保留用户内容常见的安全标签
func SanitizeHTML(htmlStr string) string {
	if htmlStr == "" {
		return ""
	}
	return policy.Sanitize(htmlStr)
}

// PlainText 提取 HTML 的纯文本并合并空白，超过 limit 个字符时截断并追加 "..."
// limit <= 0 表示不截断
func PlainText(htmlStr string, limit int) string {
	if htmlStr == "" {
		return ""
	}

	text := htmlStr
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err == nil {
		doc.Find("script, style").Remove()
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")

	if limit > 0 && utf8.RuneCountInString(text) > limit {
		runes := []rune(text)
		text = strings.TrimSpace(string(runes[:limit])) + "..."
	}
	return text
}
