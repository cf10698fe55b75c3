package normalize

import (
	"strings"

	"github.com/tidwall/gjson"

	"otisium-api/internal/workflow/model"
)

const (
	MaxSources        = 10
	MaxFlaggedPhrases = 20
)

var confidences = []model.Confidence{model.ConfidenceLow, model.ConfidenceMedium, model.ConfidenceHigh}

// Plagiarism 归一化查重结果，同时接受模型键名与已归一化记录的键名
func Plagiarism(res gjson.Result) model.PlagiarismResult {
	return model.PlagiarismResult{
		Percentage:     Score(first(res, "plagiarism_percentage", "percentage"), "plagiarism.percentage", 0),
		Confidence:     Enum(res.Get("confidence"), "plagiarism.confidence", confidences, model.ConfidenceMedium),
		Sources:        sources(first(res, "potential_sources", "sources")),
		FlaggedPhrases: StringList(res.Get("flagged_phrases"), "flagged_phrases", MaxFlaggedPhrases),
	}
}

// sources 支持字符串项与 {url, match} 对象项，字符串项的匹配度记为 0
func sources(v gjson.Result) []model.PlagiarismSource {
	out := make([]model.PlagiarismSource, 0)
	if !v.IsArray() {
		return out
	}
	for _, item := range v.Array() {
		var src model.PlagiarismSource
		switch {
		case item.Type == gjson.String:
			src.URL = strings.TrimSpace(item.Str)
		case item.IsObject():
			src.URL = strings.TrimSpace(item.Get("url").String())
			src.Match = Score(item.Get("match"), "plagiarism.sources.match", 0)
		}
		if src.URL == "" {
			note("plagiarism.sources", adjustDrop)
			continue
		}
		if len(out) == MaxSources {
			note("plagiarism.sources", adjustTruncate)
			break
		}
		out = append(out, src)
	}
	return out
}

// FallbackPlagiarism 模型输出无法解析时的结果
func FallbackPlagiarism() model.PlagiarismResult {
	return model.PlagiarismResult{
		Percentage:     0,
		Confidence:     model.ConfidenceLow,
		Sources:        []model.PlagiarismSource{},
		FlaggedPhrases: []string{},
	}
}
