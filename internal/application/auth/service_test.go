package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otisium-api/internal/config"
	"otisium-api/internal/domain/entity"
	"otisium-api/internal/domain/repository"
	apperrors "otisium-api/pkg/errors"
	"otisium-api/pkg/utils"
)

type memUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*entity.User
	creates int
	updates int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return repository.ErrEmailTaken
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	r.creates++
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byEmail[entity.NormalizeEmail(email)]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byEmail[entity.NormalizeEmail(email)]
	return ok, nil
}

func newJWT() *utils.JWTManager {
	return utils.NewJWTManager("test-secret", "otisium-api", time.Hour)
}

func TestSignupAndLogin(t *testing.T) {
	repo := newMemUserRepo()
	jm := newJWT()
	svc := NewService(repo, nil, jm, nil)
	ctx := context.Background()

	res, err := svc.Signup(ctx, "Ada", "Ada@Example.com", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", res.User.Email)

	claims, err := jm.ParseToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)

	_, err = svc.Signup(ctx, "Ada", "ada@example.com", "other")
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.Equal(t, "Email already registered", appErr.Message)

	_, err = svc.Signup(ctx, "", "x@example.com", "pw")
	assert.Equal(t, "All fields are required", apperrors.AsAppError(err).Message)

	res, err = svc.Login(ctx, "ADA@example.com", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, "Ada", res.User.Name)

	_, err = svc.Login(ctx, "ada@example.com", "wrong")
	appErr = apperrors.AsAppError(err)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPStatus)
	assert.Equal(t, "Invalid email or password", appErr.Message)

	_, err = svc.Login(ctx, "nobody@example.com", "pw")
	assert.Equal(t, "Invalid email or password", apperrors.AsAppError(err).Message)

	_, err = svc.Login(ctx, "", "pw")
	assert.Equal(t, "Email and password are required", apperrors.AsAppError(err).Message)
}

func TestLoginGoogleOnlyAccount(t *testing.T) {
	repo := newMemUserRepo()
	require.NoError(t, repo.Create(context.Background(), entity.NewGoogleUser("G", "g@example.com", "gid", "")))

	_, err := NewService(repo, nil, newJWT(), nil).Login(context.Background(), "g@example.com", "anything")
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPStatus)
	assert.Equal(t, "Please sign in with Google", appErr.Message)
}

type fakeGoogle struct {
	tokenStatus int
	tokenBody   map[string]any
	profile     map[string]any
	gotForm     map[string]string
}

func (f *fakeGoogle) server(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		f.gotForm = map[string]string{}
		for k := range r.PostForm {
			f.gotForm[k] = r.PostForm.Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		if f.tokenStatus != 0 {
			w.WriteHeader(f.tokenStatus)
		}
		_ = json.NewEncoder(w).Encode(f.tokenBody)
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"code":401}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(f.profile)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newGoogleClient(srv *httptest.Server) *GoogleClient {
	return NewGoogleClient(config.GoogleOAuthConfig{
		ClientID:     "cid",
		ClientSecret: "csecret",
		TokenURL:     srv.URL + "/token",
		UserInfoURL:  srv.URL + "/userinfo",
		Timeout:      5 * time.Second,
	})
}

func TestGoogleCreatesThenLinks(t *testing.T) {
	fg := &fakeGoogle{
		tokenBody: map[string]any{"access_token": "at-1"},
		profile:   map[string]any{"id": "g-42", "email": "New@Example.com", "name": "New", "picture": "https://pic"},
	}
	srv := fg.server(t)
	repo := newMemUserRepo()
	svc := NewService(repo, nil, newJWT(), newGoogleClient(srv))
	ctx := context.Background()

	res, err := svc.Google(ctx, "code-1", "http://localhost/cb")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", res.User.Email)
	assert.Equal(t, entity.AuthProviderGoogle, res.User.Provider)
	assert.Equal(t, "code-1", fg.gotForm["code"])
	assert.Equal(t, "http://localhost/cb", fg.gotForm["redirect_uri"])
	assert.Equal(t, "authorization_code", fg.gotForm["grant_type"])
	assert.Equal(t, "cid", fg.gotForm["client_id"])
	assert.Equal(t, "csecret", fg.gotForm["client_secret"])

	_, err = svc.Google(ctx, "code-2", "http://localhost/cb")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.creates)
	assert.Equal(t, 0, repo.updates)

	// 已有邮箱账号首次用 Google 登录时关联身份
	_, err = svc.Signup(ctx, "Old", "old@example.com", "pw")
	require.NoError(t, err)
	fg.profile = map[string]any{"id": "g-7", "email": "old@example.com", "name": "Old", "picture": "https://p2"}

	res, err = svc.Google(ctx, "code-3", "http://localhost/cb")
	require.NoError(t, err)
	assert.Equal(t, "g-7", res.User.GoogleID)
	assert.Equal(t, entity.AuthProviderEmail, res.User.Provider)
	assert.Equal(t, 1, repo.updates)

	linked, _ := repo.GetByEmail(ctx, "old@example.com")
	assert.True(t, linked.CheckPassword("pw"))
}

func TestGoogleExchangeFailure(t *testing.T) {
	fg := &fakeGoogle{
		tokenStatus: http.StatusBadRequest,
		tokenBody:   map[string]any{"error": "invalid_grant", "error_description": "Bad Request"},
	}
	svc := NewService(newMemUserRepo(), nil, newJWT(), newGoogleClient(fg.server(t)))

	_, err := svc.Google(context.Background(), "bad", "http://localhost/cb")
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeOAuthFailed, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.Equal(t, "Bad Request", appErr.Message)

	_, err = svc.Google(context.Background(), " ", "")
	assert.Equal(t, apperrors.CodeInvalidParam, apperrors.AsAppError(err).Code)
}

func TestGoogleExchangeFailureMessages(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   map[string]any
	}{
		{"error without description", http.StatusBadRequest, map[string]any{"error": "invalid_grant"}},
		{"ok without access token", http.StatusOK, map[string]any{"token_type": "Bearer"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fg := &fakeGoogle{tokenStatus: c.status, tokenBody: c.body}
			svc := NewService(newMemUserRepo(), nil, newJWT(), newGoogleClient(fg.server(t)))

			_, err := svc.Google(context.Background(), "code", "http://localhost/cb")
			appErr := apperrors.AsAppError(err)
			assert.Equal(t, apperrors.CodeOAuthFailed, appErr.Code)
			assert.Equal(t, "Failed to exchange code", appErr.Message)
		})
	}
}

func TestGoogleUserInfoRejected(t *testing.T) {
	fg := &fakeGoogle{tokenBody: map[string]any{"access_token": "other-token"}}
	svc := NewService(newMemUserRepo(), nil, newJWT(), newGoogleClient(fg.server(t)))

	_, err := svc.Google(context.Background(), "code", "http://localhost/cb")
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeOAuthFailed, appErr.Code)
	assert.Equal(t, "Failed to get user info from Google", appErr.Message)
}

func TestGoogleMissingEmail(t *testing.T) {
	fg := &fakeGoogle{
		tokenBody: map[string]any{"access_token": "at-1"},
		profile:   map[string]any{"id": "g-1"},
	}
	svc := NewService(newMemUserRepo(), nil, newJWT(), newGoogleClient(fg.server(t)))

	_, err := svc.Google(context.Background(), "code", "http://localhost/cb")
	assert.Equal(t, "Failed to get user info from Google", apperrors.AsAppError(err).Message)
}

func TestMe(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewService(repo, nil, newJWT(), nil)

	res, err := svc.Signup(context.Background(), "Ada", "ada@example.com", "pw")
	require.NoError(t, err)

	u, err := svc.Me(context.Background(), res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)

	_, err = svc.Me(context.Background(), uuid.NewString())
	assert.Equal(t, "User not found", apperrors.AsAppError(err).Message)
}
