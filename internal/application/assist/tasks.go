package assist

import (
	"context"
	"strings"
	"unicode/utf8"

	"otisium-api/internal/workflow/align"
	"otisium-api/internal/workflow/model"
	"otisium-api/internal/workflow/normalize"
	"otisium-api/internal/workflow/prompt"
)

// 输入校验
const (
	MinDetectChars = 50
	MinTextChars   = 10
)

const (
	msgDetectTooShort   = "Please enter at least 50 characters for accurate forensic analysis."
	msgTextTooShort     = "Text must be at least 10 characters long"
	msgTextRequired     = "Text is required"
	msgTargetRequired   = "Target language is required"
	msgMessageRequired  = "Message is required"
	msgSourceRequired   = "Source information is required"
	detectedLanguage    = "Detected"
	chatPlaceholder     = "Sorry, I couldn't come up with a response. Please try again."
	citationPlaceholder = "Citation unavailable. Please try again."
)

// trimmedLen 去除首尾空白后的字符数
func trimmedLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

// Detect 判断文本是否由 AI 生成，并返回可疑片段在原文中的高亮
func (s *Service) Detect(ctx context.Context, text string) (*model.DetectionResult, error) {
	if trimmedLen(text) < MinDetectChars {
		return nil, invalid(ctx, model.TaskDetect, msgDetectTooShort)
	}

	raw, err := s.generate(ctx, model.TaskDetect, model.TaskInput{Text: text})
	if err != nil {
		return nil, err
	}

	analysis := normalize.FallbackAnalysis()
	if res, ok := extract(ctx, model.TaskDetect, raw); ok {
		analysis = normalize.Analysis(res)
		succeeded(model.TaskDetect)
	}

	return &model.DetectionResult{
		AnalysisResult: analysis,
		Highlights:     align.Align(text, analysis.SuspiciousSegments),
	}, nil
}

// Plagiarism 评估文本的抄袭风险
func (s *Service) Plagiarism(ctx context.Context, text string) (*model.PlagiarismResult, error) {
	if trimmedLen(text) < MinTextChars {
		return nil, invalid(ctx, model.TaskPlagiarism, msgTextTooShort)
	}

	raw, err := s.generate(ctx, model.TaskPlagiarism, model.TaskInput{Text: text})
	if err != nil {
		return nil, err
	}

	out := normalize.FallbackPlagiarism()
	if res, ok := extract(ctx, model.TaskPlagiarism, raw); ok {
		out = normalize.Plagiarism(res)
		succeeded(model.TaskPlagiarism)
	}
	return &out, nil
}

// Humanize 将文本改写得更自然
func (s *Service) Humanize(ctx context.Context, text, mode string) (*model.HumanizeResult, error) {
	if trimmedLen(text) < MinTextChars {
		return nil, invalid(ctx, model.TaskHumanize, msgTextTooShort)
	}

	raw, err := s.generate(ctx, model.TaskHumanize, model.TaskInput{Text: text, Mode: mode})
	if err != nil {
		return nil, err
	}
	return &model.HumanizeResult{HumanizedText: freeText(ctx, model.TaskHumanize, raw, text)}, nil
}

// Paraphrase 按模式与同义词强度改写文本，synonymLevel 为 nil 时取默认值
func (s *Service) Paraphrase(ctx context.Context, text, mode string, synonymLevel *int) (*model.ParaphraseResult, error) {
	if trimmedLen(text) < MinTextChars {
		return nil, invalid(ctx, model.TaskParaphrase, msgTextTooShort)
	}
	level := prompt.DefaultSynonymLevel
	if synonymLevel != nil {
		level = *synonymLevel
	}

	raw, err := s.generate(ctx, model.TaskParaphrase, model.TaskInput{Text: text, Mode: mode, SynonymLevel: level})
	if err != nil {
		return nil, err
	}
	return &model.ParaphraseResult{ParaphrasedText: freeText(ctx, model.TaskParaphrase, raw, text)}, nil
}

// Grammar 检查语法，解析失败时原样返回输入并给满分
func (s *Service) Grammar(ctx context.Context, text string) (*model.GrammarResult, error) {
	if trimmedLen(text) < MinTextChars {
		return nil, invalid(ctx, model.TaskGrammar, msgTextTooShort)
	}

	raw, err := s.generate(ctx, model.TaskGrammar, model.TaskInput{Text: text})
	if err != nil {
		return nil, err
	}

	out := normalize.FallbackGrammar(text)
	if res, ok := extract(ctx, model.TaskGrammar, raw); ok {
		out = normalize.Grammar(res, text)
		succeeded(model.TaskGrammar)
	}
	return &out, nil
}

// Translate 翻译文本，sourceLang 为空或 "Auto Detect" 时自动识别
func (s *Service) Translate(ctx context.Context, text, sourceLang, targetLang string) (*model.TranslationResult, error) {
	if trimmedLen(text) == 0 {
		return nil, invalid(ctx, model.TaskTranslate, msgTextRequired)
	}
	if trimmedLen(targetLang) == 0 {
		return nil, invalid(ctx, model.TaskTranslate, msgTargetRequired)
	}

	raw, err := s.generate(ctx, model.TaskTranslate, model.TaskInput{Text: text, SourceLang: sourceLang, TargetLang: targetLang})
	if err != nil {
		return nil, err
	}

	detected := detectedLanguage
	if !prompt.IsAutoDetect(sourceLang) {
		detected = strings.TrimSpace(sourceLang)
	}
	return &model.TranslationResult{
		TranslatedText:   freeText(ctx, model.TaskTranslate, raw, text),
		DetectedLanguage: detected,
	}, nil
}

// Summarize 按格式与长度生成摘要
func (s *Service) Summarize(ctx context.Context, text, format, length string) (*model.SummaryResult, error) {
	if trimmedLen(text) < MinTextChars {
		return nil, invalid(ctx, model.TaskSummarize, msgTextTooShort)
	}

	raw, err := s.generate(ctx, model.TaskSummarize, model.TaskInput{Text: text, Mode: format, Length: length})
	if err != nil {
		return nil, err
	}
	return &model.SummaryResult{Summary: freeText(ctx, model.TaskSummarize, raw, text)}, nil
}

func (s *Service) Chat(ctx context.Context, message string, history []model.ChatTurn) (*model.ChatResult, error) {
	if trimmedLen(message) == 0 {
		return nil, invalid(ctx, model.TaskChat, msgMessageRequired)
	}

	raw, err := s.generate(ctx, model.TaskChat, model.TaskInput{Message: message, History: history})
	if err != nil {
		return nil, err
	}
	return &model.ChatResult{Response: freeText(ctx, model.TaskChat, raw, chatPlaceholder)}, nil
}

func (s *Service) Citation(ctx context.Context, source *model.CitationSource, style string) (*model.CitationResult, error) {
	if source == nil || trimmedLen(source.Title) == 0 {
		return nil, invalid(ctx, model.TaskCitation, msgSourceRequired)
	}

	raw, err := s.generate(ctx, model.TaskCitation, model.TaskInput{Source: *source, Style: style})
	if err != nil {
		return nil, err
	}
	return &model.CitationResult{Citation: freeText(ctx, model.TaskCitation, raw, citationPlaceholder)}, nil
}
