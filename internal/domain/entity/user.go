// Package entity 定义领域实体
package entity

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// AuthProvider 账号来源
type AuthProvider string

const (
	AuthProviderEmail  AuthProvider = "email"
	AuthProviderGoogle AuthProvider = "google"
)

// User 用户实体
type User struct {
	ID           string       `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string       `json:"name" gorm:"type:varchar(128);not null"`
	Email        string       `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string       `json:"-" gorm:"type:varchar(255)"` // 不在 JSON 中暴露
	Provider     AuthProvider `json:"provider" gorm:"type:varchar(16);not null;default:email"`
	GoogleID     string       `json:"google_id,omitempty" gorm:"type:varchar(64);index"`
	Picture      string       `json:"picture,omitempty" gorm:"type:text"`
	CreatedAt    time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 表名
func (User) TableName() string {
	return "users"
}

// NormalizeEmail 统一邮箱格式，唯一性以此为准
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewUser 创建邮箱注册用户
func NewUser(name, email string) *User {
	return &User{
		Name:     strings.TrimSpace(name),
		Email:    NormalizeEmail(email),
		Provider: AuthProviderEmail,
	}
}

// NewGoogleUser 创建 Google 登录用户
func NewGoogleUser(name, email, googleID, picture string) *User {
	return &User{
		Name:     strings.TrimSpace(name),
		Email:    NormalizeEmail(email),
		Provider: AuthProviderGoogle,
		GoogleID: googleID,
		Picture:  picture,
	}
}

// IsGoogleOnly 仅能通过 Google 登录的账号
func (u *User) IsGoogleOnly() bool {
	return u.Provider == AuthProviderGoogle && u.PasswordHash == ""
}

// LinkGoogle 将 Google 身份关联到已有账号
func (u *User) LinkGoogle(googleID, picture string) {
	u.GoogleID = googleID
	if picture != "" {
		u.Picture = picture
	}
}

// SetPassword 设置并散列密码
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword 校验密码
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}
