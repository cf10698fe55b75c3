package assist

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otisium-api/internal/domain/service"
	"otisium-api/internal/workflow/model"
	"otisium-api/internal/workflow/port"
	apperrors "otisium-api/pkg/errors"
)

type fakeInvoker struct {
	reply    string
	err      error
	requests []port.GenerationRequest
	tasks    []string
}

func (f *fakeInvoker) Generate(ctx context.Context, req port.GenerationRequest) (*port.GenerationResponse, error) {
	f.requests = append(f.requests, req)
	f.tasks = append(f.tasks, service.TaskFromContext(ctx))
	if f.err != nil {
		return nil, f.err
	}
	return &port.GenerationResponse{Text: f.reply, Provider: "fake", Model: "fake-model"}, nil
}

func newTestService(inv *fakeInvoker) *Service {
	return NewService(inv, Options{Temperature: 1.0, MaxOutputTokens: 4096, DetectMaxOutputTokens: 8192})
}

const detectText = "The results clearly demonstrate a significant improvement in overall performance across all metrics."

func joinSpans(spans []model.Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Content)
	}
	return b.String()
}

func TestDetectClampsAndAligns(t *testing.T) {
	inv := &fakeInvoker{reply: "Here is my analysis:\n```json\n" + `{
		"verdict": "ai-generated",
		"confidenceScore": 150,
		"reasoning": ["uniform tone"],
		"metrics": {"perplexityScore": 20, "burstinessScore": -5, "readabilityScore": "70", "repetitivenessScore": 40},
		"detectedPatterns": ["hedging"],
		"suspiciousSegments": [{"segment": "clearly demonstrate a significant improvement", "reason": "stock phrase", "severity": "HIGH"}]
	}` + "\n```"}
	svc := newTestService(inv)

	out, err := svc.Detect(context.Background(), detectText)
	require.NoError(t, err)

	require.Len(t, inv.requests, 1)
	assert.Equal(t, port.TierDeep, inv.requests[0].Tier)
	assert.Equal(t, 8192, inv.requests[0].MaxOutputTokens)
	assert.Equal(t, 1.0, inv.requests[0].Temperature)
	assert.Equal(t, "detect", inv.tasks[0])
	assert.Contains(t, inv.requests[0].Prompt, detectText)

	assert.Equal(t, model.VerdictAI, out.Verdict)
	assert.Equal(t, 100, out.ConfidenceScore)
	assert.Equal(t, 0, out.Metrics.BurstinessScore)
	assert.Equal(t, 70, out.Metrics.ReadabilityScore)
	require.Len(t, out.SuspiciousSegments, 1)
	assert.Equal(t, model.SeverityHigh, out.SuspiciousSegments[0].Severity)

	assert.Equal(t, detectText, joinSpans(out.Highlights))
	require.Len(t, out.Highlights, 3)
	assert.Equal(t, model.SpanHighlight, out.Highlights[1].Type)
	assert.Equal(t, "clearly demonstrate a significant improvement", out.Highlights[1].Content)
}

func TestDetectOverlappingSegmentsKeepsFirst(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog while the farmer watches from afar."
	inv := &fakeInvoker{reply: `{"verdict":"Human-Written","confidenceScore":30,"suspiciousSegments":[
		{"segment":"brown fox jumps","reason":"b","severity":"low"},
		{"segment":"quick brown fox","reason":"a","severity":"high"}]}`}

	out, err := newTestService(inv).Detect(context.Background(), text)
	require.NoError(t, err)

	var highlighted []string
	for _, s := range out.Highlights {
		if s.Type == model.SpanHighlight {
			highlighted = append(highlighted, s.Content)
		}
	}
	assert.Equal(t, []string{"quick brown fox"}, highlighted)
	assert.Equal(t, text, joinSpans(out.Highlights))
}

func TestDetectFallsBackOnGarbage(t *testing.T) {
	inv := &fakeInvoker{reply: "I cannot analyze this text."}
	out, err := newTestService(inv).Detect(context.Background(), detectText)
	require.NoError(t, err)

	assert.Equal(t, model.VerdictUncertain, out.Verdict)
	assert.Equal(t, 50, out.ConfidenceScore)
	assert.Equal(t, 50, out.Metrics.PerplexityScore)
	assert.Empty(t, out.SuspiciousSegments)
	require.Len(t, out.Highlights, 1)
	assert.Equal(t, model.SpanNormal, out.Highlights[0].Type)
}

func TestDetectRejectsShortText(t *testing.T) {
	inv := &fakeInvoker{}
	_, err := newTestService(inv).Detect(context.Background(), "   too short, even with padding                      ")

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeInvalidParam, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.Equal(t, "Please enter at least 50 characters for accurate forensic analysis.", appErr.Message)
	assert.Empty(t, inv.requests)
}

func TestTranslateAutoDetect(t *testing.T) {
	inv := &fakeInvoker{reply: "  Good morning\n"}
	svc := newTestService(inv)

	out, err := svc.Translate(context.Background(), "Buenos días", "Auto Detect", "English")
	require.NoError(t, err)
	assert.Equal(t, "Good morning", out.TranslatedText)
	assert.Equal(t, "Detected", out.DetectedLanguage)

	req := inv.requests[0]
	assert.Equal(t, port.TierFast, req.Tier)
	assert.Equal(t, 4096, req.MaxOutputTokens)
	assert.Contains(t, req.Prompt, "Detect the source language automatically")

	out, err = svc.Translate(context.Background(), "Buenos días", "Spanish", "English")
	require.NoError(t, err)
	assert.Equal(t, "Spanish", out.DetectedLanguage)
}

func TestTranslateValidation(t *testing.T) {
	inv := &fakeInvoker{}
	svc := newTestService(inv)

	_, err := svc.Translate(context.Background(), "  ", "", "English")
	assert.Equal(t, "Text is required", apperrors.AsAppError(err).Message)

	_, err = svc.Translate(context.Background(), "hello", "", " ")
	assert.Equal(t, "Target language is required", apperrors.AsAppError(err).Message)
	assert.Empty(t, inv.requests)
}

func TestGrammarMalformedReplyUsesInput(t *testing.T) {
	text := "She go to school every days."
	inv := &fakeInvoker{reply: `{"corrected_text": "She goes to school", "corrections": [`}

	out, err := newTestService(inv).Grammar(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, text, out.CorrectedText)
	assert.Empty(t, out.Corrections)
	assert.Equal(t, 100, out.Score)
	assert.Equal(t, port.TierDeep, inv.requests[0].Tier)
}

func TestCitationRequiresTitle(t *testing.T) {
	inv := &fakeInvoker{}
	svc := newTestService(inv)

	_, err := svc.Citation(context.Background(), &model.CitationSource{Authors: "Doe"}, "APA")
	assert.Equal(t, "Source information is required", apperrors.AsAppError(err).Message)

	_, err = svc.Citation(context.Background(), nil, "APA")
	assert.Error(t, err)
	assert.Empty(t, inv.requests)
}

func TestProviderErrorMapsToBadGateway(t *testing.T) {
	pe := port.NewProviderError("fake", port.ProviderErrorQuota, errors.New("429"))
	svc := newTestService(&fakeInvoker{err: pe})

	_, err := svc.Plagiarism(context.Background(), "some text that is long enough")
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeLLMProviderError, appErr.Code)
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPStatus)
	assert.Equal(t, "Plagiarism check service error", appErr.Message)

	got, ok := port.AsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, port.ProviderErrorQuota, got.Kind)

	_, err = svc.Chat(context.Background(), "hi", nil)
	assert.Equal(t, "Chat service error", apperrors.AsAppError(err).Message)
}

func TestFreeTextTasks(t *testing.T) {
	inv := &fakeInvoker{reply: "```\nRewritten text.\n```"}
	svc := newTestService(inv)

	h, err := svc.Humanize(context.Background(), "Original text here.", "advanced")
	require.NoError(t, err)
	assert.Equal(t, "Rewritten text.", h.HumanizedText)

	p, err := svc.Paraphrase(context.Background(), "Original text here.", "formal", nil)
	require.NoError(t, err)
	assert.Equal(t, "Rewritten text.", p.ParaphrasedText)
	assert.Contains(t, inv.requests[1].Prompt, "Synonym intensity: 50%")

	s, err := svc.Summarize(context.Background(), "Original text here.", "bullets", "short")
	require.NoError(t, err)
	assert.Equal(t, "Rewritten text.", s.Summary)

	c, err := svc.Citation(context.Background(), &model.CitationSource{Title: "Go"}, "")
	require.NoError(t, err)
	assert.Equal(t, "Rewritten text.", c.Citation)
	assert.Equal(t, port.TierFast, inv.requests[3].Tier)

	assert.Equal(t, []string{"humanize", "paraphrase", "summarize", "citation"}, inv.tasks)
}

func TestParaphraseSynonymLevel(t *testing.T) {
	inv := &fakeInvoker{reply: "Rewritten text."}
	svc := newTestService(inv)

	zero, high := 0, 80
	_, err := svc.Paraphrase(context.Background(), "Original text here.", "", &zero)
	require.NoError(t, err)
	_, err = svc.Paraphrase(context.Background(), "Original text here.", "", &high)
	require.NoError(t, err)

	require.Len(t, inv.requests, 2)
	assert.Contains(t, inv.requests[0].Prompt, "Synonym intensity: 0%")
	assert.Contains(t, inv.requests[1].Prompt, "Synonym intensity: 80%")
}

func TestEmptyReplyFallbacks(t *testing.T) {
	inv := &fakeInvoker{reply: "   "}
	svc := newTestService(inv)

	h, err := svc.Humanize(context.Background(), "Original text here.", "")
	require.NoError(t, err)
	assert.Equal(t, "Original text here.", h.HumanizedText)

	c, err := svc.Chat(context.Background(), "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, chatPlaceholder, c.Response)
}

func TestPlagiarismFallbackAndShortText(t *testing.T) {
	inv := &fakeInvoker{reply: "no json"}
	svc := newTestService(inv)

	out, err := svc.Plagiarism(context.Background(), "a long enough sample")
	require.NoError(t, err)
	assert.Equal(t, 0, out.Percentage)
	assert.Equal(t, model.ConfidenceLow, out.Confidence)

	_, err = svc.Humanize(context.Background(), "short", "")
	assert.Equal(t, "Text must be at least 10 characters long", apperrors.AsAppError(err).Message)
	assert.Len(t, inv.requests, 1)
}
