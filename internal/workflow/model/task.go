package model

// TaskType 写作任务类型
type TaskType string

const (
	TaskDetect     TaskType = "detect"
	TaskPlagiarism TaskType = "plagiarism"
	TaskHumanize   TaskType = "humanize"
	TaskParaphrase TaskType = "paraphrase"
	TaskGrammar    TaskType = "grammar"
	TaskTranslate  TaskType = "translate"
	TaskSummarize  TaskType = "summarize"
	TaskChat       TaskType = "chat"
	TaskCitation   TaskType = "citation"
)

type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type CitationSource struct {
	Title     string `json:"title"`
	Authors   string `json:"authors"`
	Year      string `json:"year"`
	URL       string `json:"url"`
	Publisher string `json:"publisher"`
	Type      string `json:"type"`
}

// TaskInput 各任务的输入并集，未使用的字段保持零值
type TaskInput struct {
	Text string

	// Mode paraphrase/humanize 的改写模式，summarize 的输出格式
	Mode   string
	Length string

	SynonymLevel int

	SourceLang string
	TargetLang string

	Message string
	History []ChatTurn

	Source CitationSource
	Style  string
}
