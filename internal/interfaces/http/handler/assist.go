package handler

import (
	"github.com/gin-gonic/gin"

	"otisium-api/internal/application/assist"
	"otisium-api/internal/interfaces/http/dto"
)

// AssistHandler 写作任务处理器
type AssistHandler struct {
	svc *assist.Service
}

// NewAssistHandler 创建写作任务处理器
func NewAssistHandler(svc *assist.Service) *AssistHandler {
	return &AssistHandler{svc: svc}
}

// respond 统一输出任务结果
func respond[T any](c *gin.Context, out *T, err error) {
	if err != nil {
		dto.FromError(c, err)
		return
	}
	dto.OK(c, out)
}

// Detect AI 内容检测
// @Summary AI 内容检测
// @Description 判断文本是否由模型生成，并返回逐段高亮
// @Tags Assist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.TextRequest true "待检测文本，至少 50 个字符"
// @Success 200 {object} model.DetectionResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/detect [post]
func (h *AssistHandler) Detect(c *gin.Context) {
	var req dto.TextRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.svc.Detect(c.Request.Context(), req.Text)
	respond(c, out, err)
}

// Plagiarism 抄袭检测
// @Summary 抄袭检测
// @Tags Assist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.TextRequest true "待检测文本"
// @Success 200 {object} model.PlagiarismResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/plagiarism [post]
func (h *AssistHandler) Plagiarism(c *gin.Context) {
	var req dto.TextRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.svc.Plagiarism(c.Request.Context(), req.Text)
	respond(c, out, err)
}

// Humanize 改写为更自然的文本
// @Summary 文本拟人化
// @Description mode 取 basic 或 advanced
// @Tags Assist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RewriteRequest true "原文与模式"
// @Success 200 {object} model.HumanizeResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/humanize [post]
func (h *AssistHandler) Humanize(c *gin.Context) {
	var req dto.RewriteRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.svc.Humanize(c.Request.Context(), req.Text, req.Mode)
	respond(c, out, err)
}

// Paraphrase 按模式与同义词强度改写
// @Summary 文本改写
// @Description synonymLevel 缺省为 50
// @Tags Assist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ParaphraseRequest true "原文、模式与同义词强度"
// @Success 200 {object} model.ParaphraseResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/paraphrase [post]
func (h *AssistHandler) Paraphrase(c *gin.Context) {
	var req dto.ParaphraseRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.svc.Paraphrase(c.Request.Context(), req.Text, req.Mode, req.SynonymLevel)
	respond(c, out, err)
}

// Grammar 语法检查
// @Summary 语法检查
// @Tags Assist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.TextRequest true "待检查文本"
// @Success 200 {object} model.GrammarResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/grammar [post]
func (h *AssistHandler) Grammar(c *gin.Context) {
	var req dto.TextRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.svc.Grammar(c.Request.Context(), req.Text)
	respond(c, out, err)
}

// Translate 翻译
// @Summary 翻译
// @Description sourceLang 为空或 Auto Detect 时自动识别源语言
// @Tags Assist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.TranslateRequest true "原文与语言"
// @Success 200 {object} model.TranslationResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/translate [post]
func (h *AssistHandler) Translate(c *gin.Context) {
	var req dto.TranslateRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.svc.Translate(c.Request.Context(), req.Text, req.SourceLang, req.TargetLang)
	respond(c, out, err)
}

// Summarize 摘要
// @Summary 文本摘要
// @Tags Assist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SummarizeRequest true "原文、格式与长度"
// @Success 200 {object} model.SummaryResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/summarize [post]
func (h *AssistHandler) Summarize(c *gin.Context) {
	var req dto.SummarizeRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.svc.Summarize(c.Request.Context(), req.Text, req.Mode, req.Length)
	respond(c, out, err)
}

// Chat 写作助手对话
// @Summary 对话
// @Tags Assist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ChatRequest true "当前消息与历史"
// @Success 200 {object} model.ChatResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/chat [post]
func (h *AssistHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.svc.Chat(c.Request.Context(), req.Message, req.History)
	respond(c, out, err)
}

// Citation 生成引用格式
// @Summary 引用生成
// @Description style 缺省为 APA
// @Tags Assist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CitationRequest true "来源信息与引用格式"
// @Success 200 {object} model.CitationResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/citation [post]
func (h *AssistHandler) Citation(c *gin.Context) {
	var req dto.CitationRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.svc.Citation(c.Request.Context(), req.Source, req.Style)
	respond(c, out, err)
}
