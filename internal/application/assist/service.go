// Package assist 编排各写作任务：校验输入、构建提示词、调用模型、解析并归一化结果。
package assist

import (
	"context"
	"errors"

	"github.com/tidwall/gjson"

	"otisium-api/internal/config"
	"otisium-api/internal/domain/service"
	"otisium-api/internal/workflow/model"
	"otisium-api/internal/workflow/node"
	"otisium-api/internal/workflow/port"
	"otisium-api/internal/workflow/prompt"
	apperrors "otisium-api/pkg/errors"
	"otisium-api/pkg/logger"
	"otisium-api/pkg/metrics"
)

// 任务状态，用于 TaskTotal 指标
const (
	statusOK            = "ok"
	statusInvalid       = "invalid"
	statusProviderError = "provider_error"
	statusFallback      = "fallback"
)

// taskTiers 结构化分析走 deep，简单改写走 fast
var taskTiers = map[model.TaskType]port.EffortTier{
	model.TaskDetect:     port.TierDeep,
	model.TaskPlagiarism: port.TierDeep,
	model.TaskHumanize:   port.TierDeep,
	model.TaskParaphrase: port.TierDeep,
	model.TaskGrammar:    port.TierDeep,
	model.TaskSummarize:  port.TierDeep,
	model.TaskTranslate:  port.TierFast,
	model.TaskChat:       port.TierFast,
	model.TaskCitation:   port.TierFast,
}

var providerErrorMessages = map[model.TaskType]string{
	model.TaskDetect:     "AI detection service error",
	model.TaskPlagiarism: "Plagiarism check service error",
	model.TaskHumanize:   "Humanization service error",
	model.TaskParaphrase: "Paraphrase service error",
	model.TaskGrammar:    "Grammar check service error",
	model.TaskTranslate:  "Translation service error",
	model.TaskSummarize:  "Summarization service error",
	model.TaskChat:       "Chat service error",
	model.TaskCitation:   "Citation service error",
}

// Options 模型调用参数
type Options struct {
	Temperature           float64
	MaxOutputTokens       int
	DetectMaxOutputTokens int
}

// OptionsFromConfig 从 LLM 配置提取调用参数
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Temperature:           cfg.LLM.Temperature,
		MaxOutputTokens:       cfg.LLM.MaxOutputTokens,
		DetectMaxOutputTokens: cfg.LLM.DetectMaxOutputTokens,
	}
}

// Service 写作任务服务，无状态，可并发使用
type Service struct {
	invoker port.Invoker
	opts    Options
}

// NewService 创建写作任务服务
func NewService(invoker port.Invoker, opts Options) *Service {
	return &Service{invoker: invoker, opts: opts}
}

// TierFor 返回任务使用的档位
func TierFor(task model.TaskType) port.EffortTier {
	if t, ok := taskTiers[task]; ok {
		return t
	}
	return port.TierFast
}

func (s *Service) maxTokens(task model.TaskType) int {
	if task == model.TaskDetect && s.opts.DetectMaxOutputTokens > 0 {
		return s.opts.DetectMaxOutputTokens
	}
	return s.opts.MaxOutputTokens
}

// invalid 记录校验失败并返回 400 错误
func invalid(ctx context.Context, task model.TaskType, message string) error {
	metrics.TaskTotal.WithLabelValues(string(task), statusInvalid).Inc()
	logger.Debug(ctx, "task input rejected", "task", string(task), "reason", message)
	return apperrors.New(apperrors.CodeInvalidParam, message)
}

// generate 构建提示词并发起一次模型调用
func (s *Service) generate(ctx context.Context, task model.TaskType, in model.TaskInput) (string, error) {
	ctx = service.WithTask(ctx, string(task))
	ctx = logger.WithContext(ctx, logger.TaskKey, string(task))

	resp, err := s.invoker.Generate(ctx, port.GenerationRequest{
		Prompt:          prompt.Build(task, in),
		Tier:            TierFor(task),
		Temperature:     s.opts.Temperature,
		MaxOutputTokens: s.maxTokens(task),
	})
	if err != nil {
		metrics.TaskTotal.WithLabelValues(string(task), statusProviderError).Inc()
		logger.Error(ctx, "task model call failed", err)
		return "", apperrors.Wrap(err, apperrors.CodeLLMProviderError, providerErrorMessages[task])
	}
	return resp.Text, nil
}

// extract 从模型输出提取 JSON 对象，失败时返回 false 由调用方使用默认结果
func extract(ctx context.Context, task model.TaskType, raw string) (gjson.Result, bool) {
	res, err := node.ExtractJSONObject(raw)
	if err == nil {
		metrics.ExtractionTotal.WithLabelValues(string(task), "ok").Inc()
		return res, true
	}

	status := "parse_error"
	if errors.Is(err, node.ErrJSONNotFound) {
		status = "not_found"
	}
	metrics.ExtractionTotal.WithLabelValues(string(task), status).Inc()
	metrics.TaskTotal.WithLabelValues(string(task), statusFallback).Inc()
	logger.Warn(ctx, "model output is not a usable JSON object, using default result",
		"task", string(task),
		"reason", status,
		"output_chars", len(raw),
	)
	return gjson.Result{}, false
}

func succeeded(task model.TaskType) {
	metrics.TaskTotal.WithLabelValues(string(task), statusOK).Inc()
}

// freeText 清理模型文本，为空时使用 fallback
func freeText(ctx context.Context, task model.TaskType, raw, fallback string) string {
	if out := node.CleanModelText(raw); out != "" {
		succeeded(task)
		return out
	}
	metrics.TaskTotal.WithLabelValues(string(task), statusFallback).Inc()
	logger.Warn(ctx, "model returned empty text, using fallback", "task", string(task))
	return fallback
}
