package usage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otisium-api/internal/domain/entity"
	"otisium-api/internal/domain/repository"
	"otisium-api/internal/domain/service"
)

type fakeUsageRepo struct {
	events []*entity.LLMUsageEvent
	tasks  []repository.TaskUsage
	calls  int
	start  time.Time
	end    time.Time
	err    error
}

func (f *fakeUsageRepo) Create(_ context.Context, e *entity.LLMUsageEvent) error {
	f.events = append(f.events, e)
	return f.err
}

func (f *fakeUsageRepo) SummarizeByUser(_ context.Context, _ string, start, end time.Time) ([]repository.TaskUsage, error) {
	f.calls++
	f.start, f.end = start, end
	return f.tasks, f.err
}

type mapCache struct {
	data map[string][]byte
}

func (m *mapCache) GetOrLoad(ctx context.Context, key string, _ time.Duration, loader func(ctx context.Context) (any, error)) ([]byte, error) {
	if b, ok := m.data[key]; ok {
		return b, nil
	}
	v, err := loader(ctx)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	m.data[key] = b
	return b, nil
}

func TestRecorderWritesEvent(t *testing.T) {
	repo := &fakeUsageRepo{}
	r := NewRecorder(repo)

	err := r.Record(context.Background(), service.LLMUsageInput{
		UserID: " u1 ", Task: "detect", Tier: "deep", Provider: "gemini", Model: "m",
		Status: "success", PromptTokens: 10, CompletionTokens: 5, DurationMs: 42,
	})
	require.NoError(t, err)
	require.Len(t, repo.events, 1)
	assert.Equal(t, "u1", repo.events[0].UserID)
	assert.Equal(t, "detect", repo.events[0].Task)
	assert.Equal(t, 15, repo.events[0].TokensPrompt+repo.events[0].TokensCompletion)
}

func TestRecorderRejectsNegativeTokens(t *testing.T) {
	repo := &fakeUsageRepo{}
	err := NewRecorder(repo).Record(context.Background(), service.LLMUsageInput{PromptTokens: -1})
	assert.Error(t, err)
	assert.Empty(t, repo.events)

	var nilRecorder *Recorder
	assert.NoError(t, nilRecorder.Record(context.Background(), service.LLMUsageInput{}))
}

func TestSummarizeTotalsAndCaches(t *testing.T) {
	repo := &fakeUsageRepo{tasks: []repository.TaskUsage{
		{Task: "detect", Calls: 2, Tokens: 300},
		{Task: "translate", Calls: 1, Tokens: 40},
	}}
	svc := NewSummaryService(repo, &mapCache{data: map[string][]byte{}})
	svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	sum, err := svc.Summarize(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, sum.TotalCalls)
	assert.EqualValues(t, 340, sum.TotalTokens)
	assert.Len(t, sum.Tasks, 2)
	assert.Equal(t, DefaultWindow, repo.end.Sub(repo.start))
	assert.Equal(t, time.Date(2026, 1, 2, 3, 5, 0, 0, time.UTC), sum.Until)

	_, err = svc.Summarize(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
}

func TestSummarizeWithoutCachePropagatesError(t *testing.T) {
	repo := &fakeUsageRepo{err: errors.New("db down")}
	_, err := NewSummaryService(repo, nil).Summarize(context.Background(), "u1", time.Hour)
	assert.EqualError(t, err, "db down")
}
