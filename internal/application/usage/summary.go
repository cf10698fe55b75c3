package usage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"otisium-api/internal/domain/repository"
)

// DefaultWindow 用量汇总的默认统计窗口
const DefaultWindow = 30 * 24 * time.Hour

const summaryCacheTTL = 30 * time.Second

// Loader 读穿缓存
type Loader interface {
	GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader func(ctx context.Context) (any, error)) ([]byte, error)
}

// Summary 用户在统计窗口内的用量
type Summary struct {
	Since       time.Time              `json:"since"`
	Until       time.Time              `json:"until"`
	TotalCalls  int64                  `json:"total_calls"`
	TotalTokens int64                  `json:"total_tokens"`
	Tasks       []repository.TaskUsage `json:"tasks"`
}

// SummaryService 用量汇总查询
type SummaryService struct {
	usageRepo repository.LLMUsageEventRepository
	cache     Loader
	now       func() time.Time
}

// NewSummaryService cache 可为 nil
func NewSummaryService(usageRepo repository.LLMUsageEventRepository, cache Loader) *SummaryService {
	return &SummaryService{usageRepo: usageRepo, cache: cache, now: time.Now}
}

// Summarize 汇总 userID 最近 window 内的用量，window <= 0 时使用 DefaultWindow
func (s *SummaryService) Summarize(ctx context.Context, userID string, window time.Duration) (*Summary, error) {
	if window <= 0 {
		window = DefaultWindow
	}
	// 按分钟取整，使缓存键在 TTL 内稳定
	until := s.now().UTC().Truncate(time.Minute).Add(time.Minute)
	since := until.Add(-window)

	load := func(ctx context.Context) (any, error) {
		tasks, err := s.usageRepo.SummarizeByUser(ctx, userID, since, until)
		if err != nil {
			return nil, err
		}
		sum := &Summary{Since: since, Until: until, Tasks: tasks}
		for _, t := range tasks {
			sum.TotalCalls += t.Calls
			sum.TotalTokens += t.Tokens
		}
		return sum, nil
	}

	if s.cache == nil {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return v.(*Summary), nil
	}

	key := fmt.Sprintf("usage:%s:%d:%d", userID, since.Unix(), until.Unix())
	b, err := s.cache.GetOrLoad(ctx, key, summaryCacheTTL, load)
	if err != nil {
		return nil, err
	}
	var sum Summary
	if err := json.Unmarshal(b, &sum); err != nil {
		return nil, fmt.Errorf("failed to decode usage summary: %w", err)
	}
	return &sum, nil
}
