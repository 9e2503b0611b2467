// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"warehouse_backend/internal/feature/auth/domain/entity"
	"warehouse_backend/internal/feature/auth/transport/http/dto"
	"warehouse_backend/internal/feature/auth/usecase"
	jwtmw "warehouse_backend/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	Register(ctx context.Context, username, password, fullName string) error
	Login(ctx context.Context, username, password string) (string, error)
	UserInfo(ctx context.Context, userID uint) (*entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - 入力不備は400、ユーザー名重複時は409、その他の失敗時は500を返却
// - 成功時は201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := h.auth.Register(c.Request.Context(), req.Username, req.Password, req.FullName); err != nil {
		if errors.Is(err, usecase.ErrInvalidRegistration) {
			slog.Warn("register rejected", "error", err, "username", req.Username)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		if errors.Is(err, usecase.ErrUsernameAlreadyExists) {
			slog.Warn("register failed", "error", err, "username", req.Username)
			c.JSON(http.StatusConflict, gin.H{"error": "Username already in use. Please use a different username."})
			return
		}
		slog.Error("register failed", "error", err, "username", req.Username)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed. Please try again later."})
		return
	}
	slog.Info("user registered", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful."})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - 認証失敗時は401を返却
// - 認証成功時はJWTトークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password."})
		return
	}
	slog.Info("user login successful", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.LoginRes{Token: token})
}

// UserInfo はログイン中ユーザーのフルネームを返します。
// JWTミドルウェアの後段で使用します。
func (h *AuthHandler) UserInfo(c *gin.Context) {
	userID, ok := c.Get(jwtmw.ContextUserID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in."})
		return
	}
	id, _ := userID.(uint)
	user, err := h.auth.UserInfo(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
			return
		}
		slog.Error("failed to retrieve user info", "error", err, "user_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving user info."})
		return
	}
	c.JSON(http.StatusOK, dto.UserInfoRes{Username: user.Username, FullName: user.FullName})
}
