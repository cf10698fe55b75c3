package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"otisium-api/internal/workflow/model"
)

func TestUserTextIsTripleQuotedVerbatim(t *testing.T) {
	text := "Line one {\"json\": true}\nline two with %s and %d"
	in := model.TaskInput{Text: text, TargetLang: "French"}

	for _, task := range []model.TaskType{
		model.TaskDetect, model.TaskPlagiarism, model.TaskHumanize, model.TaskParaphrase,
		model.TaskGrammar, model.TaskTranslate, model.TaskSummarize,
	} {
		p := Build(task, in)
		assert.Contains(t, p, "\"\"\"\n"+text+"\n\"\"\"", "task %s", task)
		assert.NotContains(t, p, "%!", "task %s", task)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	in := model.TaskInput{Text: "same input text", Mode: "formal", SynonymLevel: 70}
	assert.Equal(t, Build(model.TaskParaphrase, in), Build(model.TaskParaphrase, in))
	assert.Empty(t, Build(model.TaskType("unknown"), in))
}

func TestModeLookupsFallBackToDefaults(t *testing.T) {
	p := Paraphrase("text here", "nonexistent", 50)
	assert.Contains(t, p, paraphraseModes[DefaultParaphraseMode])
	assert.Contains(t, Paraphrase("text here", "SHORTEN", 50), paraphraseModes["shorten"])
	assert.Contains(t, Paraphrase("text here", "", 250), "Synonym intensity: 100%")

	assert.Contains(t, Humanize("text", ""), humanizeModes["basic"])
	assert.Contains(t, Humanize("text", "advanced"), humanizeModes["advanced"])

	s := Summarize("text", "weird", "")
	assert.Contains(t, s, summaryFormats["paragraph"])
	assert.Contains(t, s, summaryLengths["medium"])
	assert.Contains(t, Summarize("text", "bullets", "short"), summaryLengths["short"])
}

func TestJSONTasksDeclareShapeAndRules(t *testing.T) {
	d := Detect("some text")
	assert.Contains(t, d, "ONLY a JSON object")
	assert.Contains(t, d, `"suspiciousSegments"`)
	assert.Contains(t, d, "EXACT substring")
	assert.Contains(t, d, "DETECTION CRITERIA")

	assert.Contains(t, Grammar("x"), `"corrected_text"`)
	assert.Contains(t, Plagiarism("x"), `"plagiarism_percentage"`)
}

func TestTranslateSourceInstruction(t *testing.T) {
	auto := Translate("Hola", AutoDetect, "English")
	assert.Contains(t, auto, "Translate the following text to English.")
	assert.Contains(t, auto, "Detect the source language automatically")
	assert.Contains(t, Translate("Hola", "", "English"), "Detect the source language automatically")

	explicit := Translate("Hola", "Spanish", "English")
	assert.Contains(t, explicit, "Source language: Spanish")
	assert.NotContains(t, explicit, "automatically")
}

func TestChatHistory(t *testing.T) {
	assert.NotContains(t, Chat("hi", nil), "Previous conversation")

	p := Chat("and now?", []model.ChatTurn{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi there"},
		{Role: "user", Content: "  "},
	})
	assert.Contains(t, p, "Previous conversation:\nUser: hello\nAssistant: hi there\n\nUser: and now?")
}

func TestCitationDefaults(t *testing.T) {
	p := Citation(model.CitationSource{Title: "Go in Practice"}, "")
	assert.True(t, strings.HasPrefix(p, "Generate a APA format citation"))
	assert.Contains(t, p, "Author(s): Unknown\n")
	assert.Contains(t, p, "Year: n.d.\n")
	assert.Contains(t, p, "Type: website\n")

	p = Citation(model.CitationSource{Title: "T", Authors: "Pike, R.", Year: "2012", Type: "book"}, "MLA")
	assert.Contains(t, p, "MLA format")
	assert.Contains(t, p, "Author(s): Pike, R.\n")
	assert.Contains(t, p, "Year: 2012\n")
}
