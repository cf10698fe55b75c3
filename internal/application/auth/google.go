package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"otisium-api/internal/config"
)

const msgExchangeFailed = "Failed to exchange code"

// GoogleProfile Google userinfo 返回的用户资料
type GoogleProfile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleClient 基于 x/oauth2 完成授权码换取 token 与读取用户资料
type GoogleClient struct {
	conf        oauth2.Config
	userInfoURL string
	httpClient  *http.Client
}

// NewGoogleClient 创建 Google OAuth 客户端，TokenURL 为空时使用 Google 默认端点
func NewGoogleClient(cfg config.GoogleOAuthConfig) *GoogleClient {
	endpoint := google.Endpoint
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}
	// Google 要求凭证放在表单参数中
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	return &GoogleClient{
		conf: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		userInfoURL: cfg.UserInfoURL,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
	}
}

// ExchangeError 授权码交换失败，Message 可直接返回给客户端
type ExchangeError struct {
	Message string
	Err     error
}

func (e *ExchangeError) Error() string {
	return "google token exchange failed: " + e.Message
}

func (e *ExchangeError) Unwrap() error { return e.Err }

// withHTTPClient 让 oauth2 使用带超时的客户端
func (g *GoogleClient) withHTTPClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)
}

// Exchange 用授权码换取 access token。
// 令牌端点拒绝时返回 ExchangeError；网络错误原样返回。
func (g *GoogleClient) Exchange(ctx context.Context, code, redirectURI string) (string, error) {
	conf := g.conf
	conf.RedirectURL = redirectURI

	tok, err := conf.Exchange(g.withHTTPClient(ctx), code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			msg := retrieveErr.ErrorDescription
			if msg == "" {
				msg = msgExchangeFailed
			}
			return "", &ExchangeError{Message: msg, Err: err}
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return "", err
		}
		// 响应可解析但缺少 access_token
		return "", &ExchangeError{Message: msgExchangeFailed, Err: err}
	}
	return tok.AccessToken, nil
}

// UserInfo 读取 access token 对应的用户资料
func (g *GoogleClient) UserInfo(ctx context.Context, accessToken string) (*GoogleProfile, error) {
	ctx = g.withHTTPClient(ctx)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))
	client.Timeout = g.httpClient.Timeout

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google userinfo returned status %d", resp.StatusCode)
	}

	var profile GoogleProfile
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode google userinfo: %w", err)
	}
	return &profile, nil
}
