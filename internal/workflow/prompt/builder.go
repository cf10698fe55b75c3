// Package prompt 为各写作任务构建模型提示词。
// 所有构建函数都是纯函数：相同输入得到相同输出，不会失败。
package prompt

import (
	"fmt"
	"strings"

	"otisium-api/internal/workflow/model"
)

// AutoDetect 源语言自动识别的取值
const AutoDetect = "Auto Detect"

const (
	DefaultParaphraseMode   = "standard"
	DefaultHumanizeMode     = "basic"
	DefaultSummaryFormat    = "paragraph"
	DefaultSummaryLength    = "medium"
	DefaultSynonymLevel     = 50
	DefaultCitationStyle    = "APA"
	defaultCitationAuthors  = "Unknown"
	defaultCitationYear     = "n.d."
	defaultCitationType     = "website"
	jsonOnlyInstructionHead = "Respond with ONLY a JSON object, no text before or after it:"
)

var paraphraseModes = map[string]string{
	"standard": "Rewrite clearly while preserving the meaning",
	"fluency":  "Focus on smooth, natural flow",
	"formal":   "Use professional, academic language",
	"simple":   "Use simple, easy-to-understand words",
	"creative": "Be creative with word choice and sentence structure",
	"shorten":  "Make it more concise",
	"expand":   "Add more detail and explanation",
}

var humanizeModes = map[string]string{
	"basic":    "Make simple, natural improvements. Replace formal words with casual alternatives.",
	"advanced": "Make sophisticated improvements while keeping an academic or professional tone.",
}

var summaryFormats = map[string]string{
	"paragraph": "Write a flowing paragraph",
	"bullets":   "Write bullet points",
	"keypoints": "Extract only the key points",
}

var summaryLengths = map[string]string{
	"short":  "Very brief, 1-2 sentences",
	"medium": "Moderate length, covering the main points",
	"long":   "Detailed, including key supporting details",
}

// lookup 按键取描述，未知键回退到默认键
func lookup(table map[string]string, key, def string) string {
	if v, ok := table[strings.ToLower(strings.TrimSpace(key))]; ok {
		return v
	}
	return table[def]
}

// quoted 将用户文本原样放入三引号块
func quoted(text string) string {
	return `"""` + "\n" + text + "\n" + `"""`
}

// Build 按任务类型构建提示词，未知任务返回空字符串
func Build(task model.TaskType, in model.TaskInput) string {
	switch task {
	case model.TaskDetect:
		return Detect(in.Text)
	case model.TaskPlagiarism:
		return Plagiarism(in.Text)
	case model.TaskHumanize:
		return Humanize(in.Text, in.Mode)
	case model.TaskParaphrase:
		return Paraphrase(in.Text, in.Mode, in.SynonymLevel)
	case model.TaskGrammar:
		return Grammar(in.Text)
	case model.TaskTranslate:
		return Translate(in.Text, in.SourceLang, in.TargetLang)
	case model.TaskSummarize:
		return Summarize(in.Text, in.Mode, in.Length)
	case model.TaskChat:
		return Chat(in.Message, in.History)
	case model.TaskCitation:
		return Citation(in.Source, in.Style)
	default:
		return ""
	}
}

func Detect(text string) string {
	var b strings.Builder
	b.WriteString("You are an expert AI content detection system. Decide whether the following text was written by a human or generated by an AI model (ChatGPT, Claude, Gemini, Llama, etc.).\n\n")
	b.WriteString("ANALYZE THIS TEXT CAREFULLY:\n")
	b.WriteString(quoted(text))
	b.WriteString("\n\n")
	b.WriteString(detectCriteria)
	b.WriteString("\n\n")
	b.WriteString(detectFormat)
	return b.String()
}

func Plagiarism(text string) string {
	var b strings.Builder
	b.WriteString("You are an expert plagiarism detector. Analyze the following text for potential plagiarism indicators.\n\n")
	b.WriteString("Text to analyze:\n")
	b.WriteString(quoted(text))
	b.WriteString("\n\n")
	b.WriteString(jsonOnlyInstructionHead)
	b.WriteString("\n")
	b.WriteString(`{"plagiarism_percentage": <integer 0-100>, "confidence": "low" | "medium" | "high", "potential_sources": [{"url": "<source url or title>", "match": <integer 0-100>}], "flagged_phrases": ["<EXACT phrase from the input>"]}`)
	b.WriteString("\n\nEach flagged phrase MUST be an exact substring of the input text.")
	return b.String()
}

func Humanize(text, mode string) string {
	var b strings.Builder
	b.WriteString("Rewrite the following text so it sounds more natural and human-written.\n\n")
	fmt.Fprintf(&b, "Instructions: %s\n", lookup(humanizeModes, mode, DefaultHumanizeMode))
	b.WriteString("- Preserve the original meaning\n")
	b.WriteString("- Allow the small imperfections people naturally make\n")
	b.WriteString("- Remove robotic patterns\n\n")
	b.WriteString("Original text:\n")
	b.WriteString(quoted(text))
	b.WriteString("\n\nRespond with ONLY the rewritten text, no explanations.")
	return b.String()
}

func Paraphrase(text, mode string, synonymLevel int) string {
	var b strings.Builder
	b.WriteString("Paraphrase the following text.\n\n")
	fmt.Fprintf(&b, "Mode: %s\n", lookup(paraphraseModes, mode, DefaultParaphraseMode))
	fmt.Fprintf(&b, "Synonym intensity: %d%% (higher = more word replacements)\n\n", clampPercent(synonymLevel))
	b.WriteString("Original text:\n")
	b.WriteString(quoted(text))
	b.WriteString("\n\nRespond with ONLY the paraphrased text, no explanations.")
	return b.String()
}

func Grammar(text string) string {
	var b strings.Builder
	b.WriteString("You are an expert grammar checker. Find grammar, spelling and punctuation errors in the following text.\n\n")
	b.WriteString("Text to analyze:\n")
	b.WriteString(quoted(text))
	b.WriteString("\n\n")
	b.WriteString(jsonOnlyInstructionHead)
	b.WriteString("\n")
	b.WriteString(`{"corrected_text": "<full corrected version>", "corrections": [{"type": "grammar" | "spelling" | "punctuation", "original": "<EXACT text from the input>", "corrected": "<replacement>", "explanation": "<why>"}], "score": <integer 0-100>}`)
	b.WriteString("\n\nUse score 100 and an empty corrections list when the text has no errors.")
	return b.String()
}

func Translate(text, sourceLang, targetLang string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Translate the following text to %s.\n\n", strings.TrimSpace(targetLang))
	if IsAutoDetect(sourceLang) {
		b.WriteString("Detect the source language automatically.\n\n")
	} else {
		fmt.Fprintf(&b, "Source language: %s\n\n", strings.TrimSpace(sourceLang))
	}
	b.WriteString("Text to translate:\n")
	b.WriteString(quoted(text))
	b.WriteString("\n\nRespond with ONLY the translated text, no explanations or labels.")
	return b.String()
}

// IsAutoDetect 源语言为空或为 "Auto Detect"
func IsAutoDetect(sourceLang string) bool {
	s := strings.TrimSpace(sourceLang)
	return s == "" || strings.EqualFold(s, AutoDetect)
}

func Summarize(text, format, length string) string {
	var b strings.Builder
	b.WriteString("Summarize the following text.\n\n")
	fmt.Fprintf(&b, "Format: %s\n", lookup(summaryFormats, format, DefaultSummaryFormat))
	fmt.Fprintf(&b, "Length: %s\n\n", lookup(summaryLengths, length, DefaultSummaryLength))
	b.WriteString("Text to summarize:\n")
	b.WriteString(quoted(text))
	b.WriteString("\n\nRespond with ONLY the summary, no explanations.")
	return b.String()
}

func Chat(message string, history []model.ChatTurn) string {
	var b strings.Builder
	b.WriteString("You are a helpful writing assistant. Be friendly, informative and concise.\n\n")

	turns := 0
	for _, h := range history {
		if strings.TrimSpace(h.Content) == "" {
			continue
		}
		if turns == 0 {
			b.WriteString("Previous conversation:\n")
		}
		speaker := "Assistant"
		if strings.EqualFold(h.Role, "user") {
			speaker = "User"
		}
		fmt.Fprintf(&b, "%s: %s\n", speaker, h.Content)
		turns++
	}
	if turns > 0 {
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "User: %s\n\n", message)
	b.WriteString("Respond naturally and helpfully.")
	return b.String()
}

func Citation(src model.CitationSource, style string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a %s format citation for the following source:\n\n", orDefault(style, DefaultCitationStyle))
	fmt.Fprintf(&b, "Title: %s\n", strings.TrimSpace(src.Title))
	fmt.Fprintf(&b, "Author(s): %s\n", orDefault(src.Authors, defaultCitationAuthors))
	fmt.Fprintf(&b, "Year: %s\n", orDefault(src.Year, defaultCitationYear))
	fmt.Fprintf(&b, "URL: %s\n", strings.TrimSpace(src.URL))
	fmt.Fprintf(&b, "Publisher: %s\n", strings.TrimSpace(src.Publisher))
	fmt.Fprintf(&b, "Type: %s\n\n", orDefault(src.Type, defaultCitationType))
	b.WriteString("Respond with ONLY the formatted citation, no explanations.")
	return b.String()
}

func orDefault(s, def string) string {
	if v := strings.TrimSpace(s); v != "" {
		return v
	}
	return def
}

func clampPercent(n int) int {
	switch {
	case n < 0:
		return 0
	case n > 100:
		return 100
	default:
		return n
	}
}
