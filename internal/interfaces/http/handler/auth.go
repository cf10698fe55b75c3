package handler

import (
	"github.com/gin-gonic/gin"

	"otisium-api/internal/application/auth"
	"otisium-api/internal/interfaces/http/dto"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	svc *auth.Service
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func toAuthResponse(message string, res *auth.Result) *dto.AuthResponse {
	return &dto.AuthResponse{
		Message: message,
		Token:   res.Token,
		User:    dto.ToAuthUserDTO(res.User),
	}
}

// Signup 邮箱注册
// @Summary 用户注册
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.SignupRequest true "注册信息"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.svc.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		dto.FromError(c, err)
		return
	}
	dto.Created(c, toAuthResponse("Account created successfully", res))
}

// Login 邮箱密码登录
// @Summary 用户登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		dto.FromError(c, err)
		return
	}
	dto.OK(c, toAuthResponse("Login successful", res))
}

// Google 授权码登录
// @Summary Google 登录
// @Description 首次登录自动建号，已有邮箱账号则关联 Google 身份
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.GoogleAuthRequest true "授权码与回调地址"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/auth/google [post]
func (h *AuthHandler) Google(c *gin.Context) {
	var req dto.GoogleAuthRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.svc.Google(c.Request.Context(), req.Code, req.RedirectURI)
	if err != nil {
		dto.FromError(c, err)
		return
	}
	dto.OK(c, toAuthResponse("Google authentication successful", res))
}

// Me 当前登录用户，需经过 Auth 中间件
// @Summary 当前用户
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.svc.Me(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		dto.FromError(c, err)
		return
	}
	dto.OK(c, &dto.MeResponse{User: dto.ToAuthUserDTO(user)})
}
