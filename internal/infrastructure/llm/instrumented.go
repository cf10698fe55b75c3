package llm

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"otisium-api/internal/domain/service"
	"otisium-api/internal/workflow/node"
	"otisium-api/internal/workflow/port"
	"otisium-api/pkg/logger"
	"otisium-api/pkg/metrics"
	"otisium-api/pkg/tracer"
)

const usageRecordTimeout = 3 * time.Second

// InstrumentedInvoker 为 Invoker 增加超时、链路追踪、指标与用量记录。
// 不做重试，底层错误统一转换为 *port.ProviderError。
type InstrumentedInvoker struct {
	next     port.Invoker
	provider string
	timeout  time.Duration
	recorder service.LLMUsageRecorder
}

// NewInstrumentedInvoker 包装 Invoker，recorder 可为 nil
func NewInstrumentedInvoker(next port.Invoker, provider string, timeout time.Duration, recorder service.LLMUsageRecorder) *InstrumentedInvoker {
	return &InstrumentedInvoker{next: next, provider: provider, timeout: timeout, recorder: recorder}
}

// Generate 实现 port.Invoker
func (i *InstrumentedInvoker) Generate(ctx context.Context, req port.GenerationRequest) (*port.GenerationResponse, error) {
	task := service.TaskFromContext(ctx)
	tier := string(req.Tier)

	ctx, span := tracer.Start(ctx, "llm.Generate", trace.WithAttributes(
		attribute.String("llm.provider", i.provider),
		attribute.String("llm.tier", tier),
		attribute.String("llm.task", task),
		attribute.Int("llm.max_output_tokens", req.MaxOutputTokens),
	))
	defer span.End()

	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := i.next.Generate(ctx, req)
	elapsed := time.Since(start)
	metrics.LLMCallDuration.WithLabelValues(i.provider, tier).Observe(elapsed.Seconds())

	if err != nil {
		pe, ok := port.AsProviderError(err)
		if !ok {
			pe = port.NewProviderError(i.provider, node.ClassifyProviderError(err), err)
		}
		tracer.RecordError(span, err)
		metrics.LLMCallTotal.WithLabelValues(i.provider, tier, string(pe.Kind)).Inc()
		logger.Error(ctx, "llm call failed", err,
			"provider", i.provider,
			"tier", tier,
			"task", task,
			"kind", string(pe.Kind),
			"duration_ms", elapsed.Milliseconds(),
		)
		i.record(ctx, service.LLMUsageInput{
			Task:       task,
			Tier:       tier,
			Provider:   i.provider,
			Status:     string(pe.Kind),
			DurationMs: int(elapsed.Milliseconds()),
		})
		return nil, pe
	}

	metrics.LLMCallTotal.WithLabelValues(i.provider, tier, "success").Inc()
	metrics.LLMTokensUsed.WithLabelValues(i.provider, resp.Model, "prompt").Add(float64(resp.PromptTokens))
	metrics.LLMTokensUsed.WithLabelValues(i.provider, resp.Model, "completion").Add(float64(resp.CompletionTokens))
	span.SetAttributes(
		attribute.String("llm.model", resp.Model),
		attribute.Int("llm.prompt_tokens", resp.PromptTokens),
		attribute.Int("llm.completion_tokens", resp.CompletionTokens),
	)
	logger.Debug(ctx, "llm call completed",
		"provider", i.provider,
		"model", resp.Model,
		"tier", tier,
		"task", task,
		"output_chars", len(resp.Text),
		"duration_ms", elapsed.Milliseconds(),
	)

	i.record(ctx, service.LLMUsageInput{
		Task:             task,
		Tier:             tier,
		Provider:         i.provider,
		Model:            resp.Model,
		Status:           "success",
		PromptTokens:     resp.PromptTokens,
		CompletionTokens: resp.CompletionTokens,
		DurationMs:       int(elapsed.Milliseconds()),
	})
	return resp, nil
}

// record 异步写入用量，失败只记日志
func (i *InstrumentedInvoker) record(ctx context.Context, in service.LLMUsageInput) {
	if i.recorder == nil {
		return
	}
	in.UserID = service.UserFromContext(ctx)

	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), usageRecordTimeout)
	go func() {
		defer cancel()
		if err := i.recorder.Record(rctx, in); err != nil {
			logger.Warn(rctx, "failed to record llm usage", "error", err.Error(), "task", in.Task)
		}
	}()
}
