package dto

import (
	"otisium-api/internal/domain/entity"
)

// SignupRequest 注册请求
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleAuthRequest Google 授权码登录请求
type GoogleAuthRequest struct {
	Code        string `json:"code"`
	RedirectURI string `json:"redirectUri"`
}

// AuthUserDTO 认证响应中的用户信息
type AuthUserDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
}

// AuthResponse 认证响应
type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *AuthUserDTO `json:"user"`
}

// MeResponse 当前用户
type MeResponse struct {
	User *AuthUserDTO `json:"user"`
}

// ToAuthUserDTO 将领域实体转换为 DTO
func ToAuthUserDTO(u *entity.User) *AuthUserDTO {
	if u == nil {
		return nil
	}
	return &AuthUserDTO{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Picture: u.Picture,
	}
}
