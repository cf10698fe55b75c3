package model

type GrammarCorrection struct {
	Type        string `json:"type"`
	Original    string `json:"original"`
	Corrected   string `json:"corrected"`
	Explanation string `json:"explanation"`
}

type GrammarResult struct {
	CorrectedText string              `json:"corrected_text"`
	Corrections   []GrammarCorrection `json:"corrections"`
	Score         int                 `json:"score"`
}

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

type PlagiarismSource struct {
	URL   string `json:"url"`
	Match int    `json:"match"`
}

type PlagiarismResult struct {
	Percentage     int                `json:"percentage"`
	Confidence     Confidence         `json:"confidence"`
	Sources        []PlagiarismSource `json:"sources"`
	FlaggedPhrases []string           `json:"flagged_phrases"`
}

type HumanizeResult struct {
	HumanizedText string `json:"humanized_text"`
}

type ParaphraseResult struct {
	ParaphrasedText string `json:"paraphrased_text"`
}

type TranslationResult struct {
	TranslatedText   string `json:"translated_text"`
	DetectedLanguage string `json:"detected_language"`
}

type SummaryResult struct {
	Summary string `json:"summary"`
}

type ChatResult struct {
	Response string `json:"response"`
}

type CitationResult struct {
	Citation string `json:"citation"`
}
