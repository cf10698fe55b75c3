package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otisium-api/internal/application/assist"
	"otisium-api/internal/application/auth"
	"otisium-api/internal/application/usage"
	"otisium-api/internal/config"
	"otisium-api/internal/domain/entity"
	"otisium-api/internal/domain/repository"
	"otisium-api/internal/domain/service"
	"otisium-api/internal/interfaces/http/handler"
	"otisium-api/internal/workflow/port"
	"otisium-api/pkg/utils"
)

type stubInvoker struct {
	mu    sync.Mutex
	reply string
	err   error
	users   []string
	prompts []string
	calls   int
}

func (s *stubInvoker) Generate(ctx context.Context, req port.GenerationRequest) (*port.GenerationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.users = append(s.users, service.UserFromContext(ctx))
	s.prompts = append(s.prompts, req.Prompt)
	if s.err != nil {
		return nil, s.err
	}
	return &port.GenerationResponse{Text: s.reply}, nil
}

type memUsers struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return repository.ErrEmailTaken
		}
	}
	u.ID = uuid.NewString()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == entity.NormalizeEmail(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, err := m.GetByEmail(ctx, email)
	return u != nil, err
}

type memUsage struct{}

func (memUsage) Create(context.Context, *entity.LLMUsageEvent) error { return nil }

func (memUsage) SummarizeByUser(context.Context, string, time.Time, time.Time) ([]repository.TaskUsage, error) {
	return []repository.TaskUsage{{Task: "detect", Calls: 3, Tokens: 900}}, nil
}

type countingLimiter struct {
	mu    sync.Mutex
	limit int
	seen  map[string]int
}

func (l *countingLimiter) Allow(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seen[key]++
	return l.seen[key] <= l.limit, nil
}

type testEnv struct {
	engine  *gin.Engine
	invoker *stubInvoker
	jwt     *utils.JWTManager
	limiter *countingLimiter
}

func testConfig(protect bool) *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "otisium-api"
	cfg.Server.HTTP.MaxBodyBytes = 1 << 10
	cfg.Security.Auth.ProtectTasks = protect
	cfg.Security.RateLimit = config.RateLimitConfig{Enabled: true, Limit: 100, Window: time.Minute}
	return cfg
}

func newTestEnv(t *testing.T, cfg *config.Config) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	inv := &stubInvoker{reply: "Bonjour"}
	jm := utils.NewJWTManager("secret", "otisium-api", time.Hour)
	users := &memUsers{users: map[string]*entity.User{}}
	limiter := &countingLimiter{limit: 100, seen: map[string]int{}}

	handlers := Handlers{
		Health: handler.NewHealthHandler("test", nil),
		Auth:   handler.NewAuthHandler(auth.NewService(users, nil, jm, nil)),
		Assist: handler.NewAssistHandler(assist.NewService(inv, assist.Options{Temperature: 1, MaxOutputTokens: 4096, DetectMaxOutputTokens: 8192})),
		Usage:  handler.NewUsageHandler(usage.NewSummaryService(memUsage{}, nil)),
	}
	keyFn := func(subject, route string) string { return subject + "|" + route }
	r := New(cfg, handlers, jm, limiter, keyFn)
	return &testEnv{engine: r.Engine(), invoker: inv, jwt: jm, limiter: limiter}
}

func (e *testEnv) do(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestSignupLoginMeFlow(t *testing.T) {
	env := newTestEnv(t, testConfig(true))

	w := env.do(http.MethodPost, "/api/auth/signup", `{"name":"Ada","email":"ada@example.com","password":"pw123456"}`, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Account created successfully", body["message"])
	token := body["token"].(string)
	assert.NotEmpty(t, token)

	w = env.do(http.MethodPost, "/api/auth/signup", `{"name":"Ada","email":"ada@example.com","password":"x"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already registered", decode(t, w)["message"])

	w = env.do(http.MethodPost, "/api/auth/login", `{"email":"ada@example.com","password":"nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", decode(t, w)["message"])

	w = env.do(http.MethodGet, "/api/auth/me", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, "ada@example.com", user["email"])

	w = env.do(http.MethodGet, "/api/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "No token provided", decode(t, w)["message"])

	w = env.do(http.MethodGet, "/api/auth/me", "", "garbage")
	assert.Equal(t, "Invalid token", decode(t, w)["message"])
}

func TestTasksRequireTokenWhenProtected(t *testing.T) {
	env := newTestEnv(t, testConfig(true))

	w := env.do(http.MethodPost, "/api/translate", `{"text":"Hello","targetLang":"French"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, env.invoker.calls)

	token, err := env.jwt.GenerateToken("user-1", "u@example.com")
	require.NoError(t, err)

	w = env.do(http.MethodPost, "/api/translate", `{"text":"Hello","sourceLang":"Auto Detect","targetLang":"French"}`, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Bonjour", body["translated_text"])
	assert.Equal(t, "Detected", body["detected_language"])
	assert.Equal(t, []string{"user-1"}, env.invoker.users)
	assert.Equal(t, 1, env.limiter.seen["user-1|/api/translate"])
}

func TestOpenTasksAndErrorMapping(t *testing.T) {
	env := newTestEnv(t, testConfig(false))

	w := env.do(http.MethodPost, "/api/detect", `{"text":"too short"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Please enter at least 50 characters for accurate forensic analysis.", body["message"])
	assert.EqualValues(t, 400, body["code"])

	w = env.do(http.MethodPost, "/api/citation", `{"source":{"authors":"Doe"}}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Source information is required", decode(t, w)["message"])

	w = env.do(http.MethodPost, "/api/chat", `{"message":`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, env.invoker.calls)

	env.invoker.err = port.NewProviderError("stub", port.ProviderErrorNetwork, assert.AnError)
	w = env.do(http.MethodPost, "/api/summarize", `{"text":"A sufficiently long text to summarize."}`, "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Summarization service error", decode(t, w)["message"])
}

func TestParaphraseSynonymLevelFromJSON(t *testing.T) {
	env := newTestEnv(t, testConfig(false))

	w := env.do(http.MethodPost, "/api/paraphrase", `{"text":"Some text to paraphrase.","synonymLevel":0}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = env.do(http.MethodPost, "/api/paraphrase", `{"text":"Some text to paraphrase."}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.Len(t, env.invoker.prompts, 2)
	assert.Contains(t, env.invoker.prompts[0], "Synonym intensity: 0%")
	assert.Contains(t, env.invoker.prompts[1], "Synonym intensity: 50%")
}

func TestBodyLimit(t *testing.T) {
	env := newTestEnv(t, testConfig(false))

	big := `{"text":"` + strings.Repeat("a", 2<<10) + `"}`
	w := env.do(http.MethodPost, "/api/grammar", big, "")
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	// 未声明长度的请求在读取时触发限制
	req := httptest.NewRequest(http.MethodPost, "/api/grammar", struct{ *bytes.Reader }{bytes.NewReader([]byte(big))})
	req.ContentLength = -1
	rec := httptest.NewRecorder()
	env.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Zero(t, env.invoker.calls)
}

func TestRateLimitRejects(t *testing.T) {
	env := newTestEnv(t, testConfig(false))
	env.limiter.limit = 1

	w := env.do(http.MethodPost, "/api/chat", `{"message":"hi"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(http.MethodPost, "/api/chat", `{"message":"hi"}`, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, 1, env.invoker.calls)
}

func TestUsageAndHealth(t *testing.T) {
	env := newTestEnv(t, testConfig(true))

	w := env.do(http.MethodGet, "/api/usage", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := env.jwt.GenerateToken("user-9", "u9@example.com")
	require.NoError(t, err)
	w = env.do(http.MethodGet, "/api/usage?window=24h", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 900, decode(t, w)["total_tokens"])

	w = env.do(http.MethodGet, "/api/usage?window=forever", "", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
