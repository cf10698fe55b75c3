package model

type Verdict string

const (
	VerdictHuman     Verdict = "Human-Written"
	VerdictAI        Verdict = "AI-Generated"
	VerdictUncertain Verdict = "Mixed/Uncertain"
)

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

type AnalysisMetrics struct {
	PerplexityScore     int `json:"perplexityScore"`
	BurstinessScore     int `json:"burstinessScore"`
	ReadabilityScore    int `json:"readabilityScore"`
	RepetitivenessScore int `json:"repetitivenessScore"`
}

type SuspiciousSegment struct {
	Segment  string   `json:"segment"`
	Reason   string   `json:"reason"`
	Severity Severity `json:"severity"`
}

type AnalysisResult struct {
	Verdict            Verdict             `json:"verdict"`
	ConfidenceScore    int                 `json:"confidenceScore"`
	Reasoning          []string            `json:"reasoning"`
	Metrics            AnalysisMetrics     `json:"metrics"`
	DetectedPatterns   []string            `json:"detectedPatterns"`
	SuspiciousSegments []SuspiciousSegment `json:"suspiciousSegments"`
}

// SpanType 渲染片段类型
type SpanType string

const (
	SpanNormal    SpanType = "normal"
	SpanHighlight SpanType = "highlight"
)

// Span 对齐后的渲染片段，Start/End 为原文字节偏移
type Span struct {
	Start    int      `json:"start"`
	End      int      `json:"end"`
	Content  string   `json:"content"`
	Type     SpanType `json:"type"`
	Severity Severity `json:"severity,omitempty"`
	Reason   string   `json:"reason,omitempty"`
}

// DetectionResult 检测结果附带原文对齐后的渲染片段
type DetectionResult struct {
	AnalysisResult
	Highlights []Span `json:"highlights"`
}
