// Package auth 提供邮箱注册登录与 Google 登录
package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/singleflight"

	"otisium-api/internal/domain/entity"
	"otisium-api/internal/domain/repository"
	apperrors "otisium-api/pkg/errors"
	"otisium-api/pkg/logger"
	"otisium-api/pkg/utils"
)

const (
	msgAllFieldsRequired   = "All fields are required"
	msgCredentialsRequired = "Email and password are required"
	msgEmailTaken          = "Email already registered"
	msgBadCredential       = "Invalid email or password"
	msgUseGoogle           = "Please sign in with Google"
	msgGoogleUserInfo      = "Failed to get user info from Google"
	msgCodeRequired        = "Authorization code is required"
	msgUserNotFound        = "User not found"
	msgServerError         = "Server error"
)

// GoogleIdentity Google 授权码登录
type GoogleIdentity interface {
	Exchange(ctx context.Context, code, redirectURI string) (string, error)
	UserInfo(ctx context.Context, accessToken string) (*GoogleProfile, error)
}

// Result 登录成功结果
type Result struct {
	Token string
	User  *entity.User
}

// Service 账号服务
type Service struct {
	users  repository.UserRepository
	tx     repository.Transactor
	jwt    *utils.JWTManager
	google GoogleIdentity
	group  singleflight.Group
}

// NewService 创建账号服务，tx 可为 nil
func NewService(users repository.UserRepository, tx repository.Transactor, jwt *utils.JWTManager, google GoogleIdentity) *Service {
	return &Service{users: users, tx: tx, jwt: jwt, google: google}
}

// Signup 邮箱注册
func (s *Service) Signup(ctx context.Context, name, email, password string) (*Result, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, apperrors.New(apperrors.CodeInvalidParam, msgAllFieldsRequired)
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, s.internal(ctx, "failed to check email existence", err)
	}
	if exists {
		return nil, apperrors.New(apperrors.CodeEmailTaken, msgEmailTaken)
	}

	user := entity.NewUser(name, email)
	if err := user.SetPassword(password); err != nil {
		return nil, s.internal(ctx, "failed to hash password", err)
	}
	if err := s.users.Create(ctx, user); err != nil {
		// 并发注册同一邮箱时由唯一索引兜底
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, apperrors.New(apperrors.CodeEmailTaken, msgEmailTaken)
		}
		return nil, s.internal(ctx, "failed to create user", err)
	}

	logger.Info(ctx, "user signed up", "user_id", user.ID)
	return s.issue(ctx, user)
}

// Login 邮箱密码登录
func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, apperrors.New(apperrors.CodeInvalidParam, msgCredentialsRequired)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, s.internal(ctx, "failed to get user", err)
	}
	if user == nil {
		return nil, apperrors.New(apperrors.CodeBadCredential, msgBadCredential)
	}
	if user.IsGoogleOnly() {
		return nil, apperrors.New(apperrors.CodeBadCredential, msgUseGoogle)
	}
	if !user.CheckPassword(password) {
		return nil, apperrors.New(apperrors.CodeBadCredential, msgBadCredential)
	}
	return s.issue(ctx, user)
}

// Google 用授权码登录，首次登录自动建号，已有邮箱账号则关联 Google 身份
func (s *Service) Google(ctx context.Context, code, redirectURI string) (*Result, error) {
	if strings.TrimSpace(code) == "" {
		return nil, apperrors.New(apperrors.CodeInvalidParam, msgCodeRequired)
	}

	accessToken, err := s.google.Exchange(ctx, code, redirectURI)
	if err != nil {
		var exErr *ExchangeError
		if errors.As(err, &exErr) {
			return nil, apperrors.Wrap(err, apperrors.CodeOAuthFailed, exErr.Message)
		}
		return nil, s.internal(ctx, "google token exchange failed", err)
	}

	profile, err := s.google.UserInfo(ctx, accessToken)
	if err != nil || profile == nil || strings.TrimSpace(profile.Email) == "" {
		if err != nil {
			logger.Warn(ctx, "failed to fetch google userinfo", "error", err.Error())
		}
		return nil, apperrors.New(apperrors.CodeOAuthFailed, msgGoogleUserInfo)
	}

	// 同一邮箱的并发登录只执行一次查找或创建
	key := entity.NormalizeEmail(profile.Email)
	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.findOrCreateGoogleUser(context.WithoutCancel(ctx), profile)
	})
	if err != nil {
		return nil, s.internal(ctx, "failed to resolve google user", err)
	}
	return s.issue(ctx, v.(*entity.User))
}

func (s *Service) findOrCreateGoogleUser(ctx context.Context, p *GoogleProfile) (*entity.User, error) {
	var user *entity.User
	run := func(ctx context.Context) error {
		existing, err := s.users.GetByEmail(ctx, p.Email)
		if err != nil {
			return err
		}
		if existing == nil {
			user = entity.NewGoogleUser(p.Name, p.Email, p.ID, p.Picture)
			return s.users.Create(ctx, user)
		}
		user = existing
		if existing.Provider != entity.AuthProviderGoogle {
			existing.LinkGoogle(p.ID, p.Picture)
			return s.users.Update(ctx, existing)
		}
		return nil
	}

	var err error
	if s.tx == nil {
		err = run(ctx)
	} else {
		err = s.tx.WithTransaction(ctx, run)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Me 根据 token 中的用户 ID 查询用户
func (s *Service) Me(ctx context.Context, userID string) (*entity.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, s.internal(ctx, "failed to get user", err)
	}
	if user == nil {
		return nil, apperrors.New(apperrors.CodeUnauthorized, msgUserNotFound)
	}
	return user, nil
}

func (s *Service) issue(ctx context.Context, user *entity.User) (*Result, error) {
	token, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, s.internal(ctx, "failed to generate token", err)
	}
	return &Result{Token: token, User: user}, nil
}

func (s *Service) internal(ctx context.Context, msg string, err error) error {
	logger.Error(ctx, msg, err)
	return apperrors.Wrap(err, apperrors.CodeInternalError, msgServerError)
}
