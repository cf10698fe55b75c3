// Package normalize 将模型输出的 JSON 归一化为字段完整、取值合法的结果记录。
// 越界、缺失、类型错误都会被静默修正，只记录指标，不向调用方返回错误。
package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"otisium-api/internal/workflow/node"
	"otisium-api/pkg/metrics"
)

const (
	ScoreMin = 0
	ScoreMax = 100
)

// 修正类型
const (
	adjustClamp    = "clamp"
	adjustDefault  = "default"
	adjustTruncate = "truncate"
	adjustDrop     = "drop"
)

func note(field, kind string) {
	metrics.NormalizeAdjustTotal.WithLabelValues(field, kind).Inc()
}

// first 返回第一个存在的路径值，用于兼容模型输出与已归一化记录的不同键名
func first(res gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if v := res.Get(p); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

// Score 数值分数：接受数字或数字字符串（可带 %），四舍五入后夹到 [0,100]。
// 缺失或无法解析时返回 def。
func Score(v gjson.Result, field string, def int) int {
	var f float64
	switch v.Type {
	case gjson.Number:
		f = v.Num
	case gjson.String:
		s := strings.TrimSuffix(strings.TrimSpace(v.Str), "%")
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			note(field, adjustDefault)
			return def
		}
		f = parsed
	default:
		note(field, adjustDefault)
		return def
	}

	if math.IsNaN(f) {
		note(field, adjustDefault)
		return def
	}
	return clamp(field, f)
}

// clamp 先在浮点域夹取再取整，超出 int 范围的值不能直接转换
func clamp(field string, f float64) int {
	switch {
	case f < ScoreMin:
		note(field, adjustClamp)
		return ScoreMin
	case f > ScoreMax:
		note(field, adjustClamp)
		return ScoreMax
	default:
		return int(math.Round(f))
	}
}

// Enum 枚举值：忽略大小写与首尾空白匹配允许集合，返回集合中的规范写法；否则返回 def
func Enum[T ~string](v gjson.Result, field string, allowed []T, def T) T {
	if v.Type == gjson.String {
		s := strings.TrimSpace(v.Str)
		for _, a := range allowed {
			if strings.EqualFold(s, string(a)) {
				return a
			}
		}
	}
	note(field, adjustDefault)
	return def
}

// StringList 字符串列表：非数组视为空，丢弃非字符串与空白项，最多保留 max 项
func StringList(v gjson.Result, field string, max int) []string {
	out := make([]string, 0)
	if !v.IsArray() {
		if v.Exists() {
			note(field, adjustDefault)
		}
		return out
	}

	for _, item := range v.Array() {
		if item.Type != gjson.String {
			note(field, adjustDrop)
			continue
		}
		s := strings.TrimSpace(item.Str)
		if s == "" {
			note(field, adjustDrop)
			continue
		}
		if len(out) == max {
			note(field, adjustTruncate)
			break
		}
		out = append(out, s)
	}
	return out
}

// Text 文本字段：为空时回退到 fallback
func Text(v gjson.Result, field, fallback string) string {
	if v.Type == gjson.String && strings.TrimSpace(v.Str) != "" {
		return v.Str
	}
	note(field, adjustDefault)
	return fallback
}

// truncate 按码点截断，发生截断时计数
func truncate(field, s string, max int) string {
	out := node.TruncateByRunes(s, max)
	if len(out) != len(s) {
		note(field, adjustTruncate)
	}
	return out
}
