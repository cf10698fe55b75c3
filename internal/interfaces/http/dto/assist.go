package dto

import "otisium-api/internal/workflow/model"

// 请求字段与前端保持一致，长度等校验在应用层完成

type TextRequest struct {
	Text string `json:"text"`
}

type RewriteRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

type ParaphraseRequest struct {
	Text         string `json:"text"`
	Mode         string `json:"mode"`
	// SynonymLevel 未传时为 nil，0 是合法取值
	SynonymLevel *int `json:"synonymLevel"`
}

type TranslateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"sourceLang"`
	TargetLang string `json:"targetLang"`
}

type SummarizeRequest struct {
	Text   string `json:"text"`
	Mode   string `json:"mode"`
	Length string `json:"length"`
}

type ChatRequest struct {
	Message string           `json:"message"`
	History []model.ChatTurn `json:"history"`
}

type CitationRequest struct {
	Source *model.CitationSource `json:"source"`
	Style  string                `json:"style"`
}
