package node

import (
	"errors"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrJSONNotFound 输出中没有配平的 JSON 对象
	ErrJSONNotFound = errors.New("no balanced JSON object in model output")
	// ErrJSONParse 找到了配平的花括号区间，但不是合法的 JSON 对象
	ErrJSONParse = errors.New("malformed JSON object in model output")
)

// ExtractJSONObject 从模型输出中取出第一个合法的 JSON 对象。
// 模型可能会在 JSON 前后夹杂说明文字或 markdown 代码块。
// 依次尝试每个 '{' 起点的配平区间，返回第一个可解析的对象；
// 若存在配平区间但都无法解析返回 ErrJSONParse，否则返回 ErrJSONNotFound。
func ExtractJSONObject(s string) (gjson.Result, error) {
	sawBalanced := false
	for from := 0; from < len(s); {
		start := strings.IndexByte(s[from:], '{')
		if start < 0 {
			break
		}
		start += from

		if end, ok := matchBrace(s, start); ok {
			sawBalanced = true
			raw := s[start : end+1]
			if gjson.Valid(raw) {
				if res := gjson.Parse(raw); res.IsObject() {
					return res, nil
				}
			}
		}
		from = start + 1
	}

	if sawBalanced {
		return gjson.Result{}, ErrJSONParse
	}
	return gjson.Result{}, ErrJSONNotFound
}

// matchBrace 返回与 s[start] 处 '{' 配对的 '}' 下标。
// 字符串字面量内的花括号与转义字符不参与计数。
func matchBrace(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
