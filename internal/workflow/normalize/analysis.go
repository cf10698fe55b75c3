package normalize

import (
	"github.com/tidwall/gjson"

	"otisium-api/internal/workflow/model"
)

const (
	MaxReasoning          = 5
	MaxDetectedPatterns   = 10
	MaxSuspiciousSegments = 10
	MaxSegmentRunes       = 500
	MaxReasonRunes        = 200

	DefaultScore  = 50
	DefaultReason = "AI pattern detected"

	uncertainReasoning = "Analysis completed but results are uncertain. Please try again."
)

var (
	verdicts   = []model.Verdict{model.VerdictHuman, model.VerdictAI, model.VerdictUncertain}
	severities = []model.Severity{model.SeverityHigh, model.SeverityMedium, model.SeverityLow}
)

// Analysis 归一化 AI 检测结果
func Analysis(res gjson.Result) model.AnalysisResult {
	m := res.Get("metrics")
	return model.AnalysisResult{
		Verdict:         Enum(res.Get("verdict"), "verdict", verdicts, model.VerdictUncertain),
		ConfidenceScore: Score(res.Get("confidenceScore"), "confidenceScore", DefaultScore),
		Reasoning:       StringList(res.Get("reasoning"), "reasoning", MaxReasoning),
		Metrics: model.AnalysisMetrics{
			PerplexityScore:     Score(m.Get("perplexityScore"), "metrics.perplexityScore", DefaultScore),
			BurstinessScore:     Score(m.Get("burstinessScore"), "metrics.burstinessScore", DefaultScore),
			ReadabilityScore:    Score(m.Get("readabilityScore"), "metrics.readabilityScore", DefaultScore),
			RepetitivenessScore: Score(m.Get("repetitivenessScore"), "metrics.repetitivenessScore", DefaultScore),
		},
		DetectedPatterns:   StringList(res.Get("detectedPatterns"), "detectedPatterns", MaxDetectedPatterns),
		SuspiciousSegments: suspiciousSegments(res.Get("suspiciousSegments")),
	}
}

// suspiciousSegments 先丢弃空片段再截取前 MaxSuspiciousSegments 项
func suspiciousSegments(v gjson.Result) []model.SuspiciousSegment {
	out := make([]model.SuspiciousSegment, 0)
	if !v.IsArray() {
		if v.Exists() {
			note("suspiciousSegments", adjustDefault)
		}
		return out
	}

	for _, item := range v.Array() {
		seg := ""
		if s := item.Get("segment"); s.Type == gjson.String {
			seg = truncate("suspiciousSegments.segment", s.Str, MaxSegmentRunes)
		}
		if seg == "" {
			note("suspiciousSegments", adjustDrop)
			continue
		}
		if len(out) == MaxSuspiciousSegments {
			note("suspiciousSegments", adjustTruncate)
			break
		}

		reason := DefaultReason
		if r := item.Get("reason"); r.Type == gjson.String && r.Str != "" {
			reason = r.Str
		}
		out = append(out, model.SuspiciousSegment{
			Segment:  seg,
			Reason:   truncate("suspiciousSegments.reason", reason, MaxReasonRunes),
			Severity: Enum(item.Get("severity"), "suspiciousSegments.severity", severities, model.SeverityMedium),
		})
	}
	return out
}

// FallbackAnalysis 模型输出无法解析时的中性结果
func FallbackAnalysis() model.AnalysisResult {
	return model.AnalysisResult{
		Verdict:         model.VerdictUncertain,
		ConfidenceScore: DefaultScore,
		Reasoning:       []string{uncertainReasoning},
		Metrics: model.AnalysisMetrics{
			PerplexityScore:     DefaultScore,
			BurstinessScore:     DefaultScore,
			ReadabilityScore:    DefaultScore,
			RepetitivenessScore: DefaultScore,
		},
		DetectedPatterns:   []string{},
		SuspiciousSegments: []model.SuspiciousSegment{},
	}
}
