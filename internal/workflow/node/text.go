package node

import (
	"strings"
	"unicode/utf8"
)

// TruncateByRunes 按 Unicode 码点截断，不会切断多字节字符
func TruncateByRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i]
		}
		n++
	}
	return s
}

// CleanModelText 整理自由文本类任务的模型输出：
// 去掉首尾空白，以及包裹整段输出的 markdown 代码块。
func CleanModelText(s string) string {
	out := strings.TrimSpace(s)
	if !strings.HasPrefix(out, "```") || !strings.HasSuffix(out, "```") || len(out) < 6 {
		return out
	}

	inner := strings.TrimSuffix(strings.TrimPrefix(out, "```"), "```")
	// 首行可能是语言标记
	if nl := strings.IndexByte(inner, '\n'); nl >= 0 {
		if first := strings.TrimSpace(inner[:nl]); first != "" && !strings.ContainsAny(first, " \t") {
			inner = inner[nl+1:]
		}
	}
	return strings.TrimSpace(inner)
}
