// Package align 将模型声称的可疑片段定位回原文，生成覆盖全文的渲染片段序列。
package align

import (
	"cmp"
	"slices"
	"strings"

	"otisium-api/internal/workflow/model"
)

type located struct {
	start, end int
	seg        model.SuspiciousSegment
}

// Align 定位并切分原文。
// 每个候选片段取原文中第一次精确出现的位置，找不到的丢弃；
// 按起点稳定排序后贪心保留与前一个保留片段不重叠的候选；
// 其余区间以 normal 片段填充，所有片段内容按序拼接等于原文。
func Align(text string, candidates []model.SuspiciousSegment) []model.Span {
	if text == "" {
		return []model.Span{}
	}

	found := make([]located, 0, len(candidates))
	for _, c := range candidates {
		if c.Segment == "" {
			continue
		}
		idx := strings.Index(text, c.Segment)
		if idx < 0 {
			continue
		}
		found = append(found, located{start: idx, end: idx + len(c.Segment), seg: c})
	}
	slices.SortStableFunc(found, func(a, b located) int {
		return cmp.Compare(a.start, b.start)
	})

	spans := make([]model.Span, 0, 2*len(found)+1)
	cursor := 0
	for _, f := range found {
		if f.start < cursor {
			continue
		}
		if f.start > cursor {
			spans = append(spans, normal(text, cursor, f.start))
		}
		spans = append(spans, model.Span{
			Start:    f.start,
			End:      f.end,
			Content:  text[f.start:f.end],
			Type:     model.SpanHighlight,
			Severity: f.seg.Severity,
			Reason:   f.seg.Reason,
		})
		cursor = f.end
	}
	if cursor < len(text) {
		spans = append(spans, normal(text, cursor, len(text)))
	}
	return spans
}

func normal(text string, start, end int) model.Span {
	return model.Span{Start: start, End: end, Content: text[start:end], Type: model.SpanNormal}
}

// Highlighted 返回被保留的高亮片段
func Highlighted(spans []model.Span) []model.Span {
	out := make([]model.Span, 0)
	for _, s := range spans {
		if s.Type == model.SpanHighlight {
			out = append(out, s)
		}
	}
	return out
}
