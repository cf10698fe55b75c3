package normalize

import (
	"strings"

	"github.com/tidwall/gjson"

	"otisium-api/internal/workflow/model"
)

const (
	DefaultGrammarScore = 100
	MaxCorrections      = 50
)

// Grammar 归一化语法检查结果，缺失的修改稿回退为原文。
// 分数缺失时：没有修改项视为满分，有修改项则取中性分。
func Grammar(res gjson.Result, input string) model.GrammarResult {
	corr := corrections(res.Get("corrections"))
	def := DefaultGrammarScore
	if len(corr) > 0 {
		def = DefaultScore
	}
	return model.GrammarResult{
		CorrectedText: Text(res.Get("corrected_text"), "corrected_text", input),
		Corrections:   corr,
		Score:         Score(res.Get("score"), "grammar.score", def),
	}
}

func corrections(v gjson.Result) []model.GrammarCorrection {
	out := make([]model.GrammarCorrection, 0)
	if !v.IsArray() {
		return out
	}
	for _, item := range v.Array() {
		if !item.IsObject() {
			note("corrections", adjustDrop)
			continue
		}
		c := model.GrammarCorrection{
			Type:        strings.ToLower(strings.TrimSpace(item.Get("type").String())),
			Original:    item.Get("original").String(),
			Corrected:   item.Get("corrected").String(),
			Explanation: strings.TrimSpace(item.Get("explanation").String()),
		}
		if c.Original == "" && c.Corrected == "" {
			note("corrections", adjustDrop)
			continue
		}
		if c.Type == "" {
			c.Type = "grammar"
		}
		if len(out) == MaxCorrections {
			note("corrections", adjustTruncate)
			break
		}
		out = append(out, c)
	}
	return out
}

// FallbackGrammar 模型输出无法解析时视为原文无误
func FallbackGrammar(input string) model.GrammarResult {
	return model.GrammarResult{
		CorrectedText: input,
		Corrections:   []model.GrammarCorrection{},
		Score:         DefaultGrammarScore,
	}
}
