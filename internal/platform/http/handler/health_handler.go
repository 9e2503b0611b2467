// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const checkTimeout = 2 * time.Second

// Check は依存先（DB・Redisなど）の疎通確認です。
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// NewHealth は /healthz エンドポイントのハンドラーを生成します。
// HTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
// GET等では各Checkを順に実行し、失敗があれば503を返します。
func NewHealth(checks ...Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		switch c.Request.Method {
		case http.MethodHead:
			c.Status(http.StatusOK)
			return
		case http.MethodOptions:
			c.Status(http.StatusNoContent)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
		defer cancel()
		for _, chk := range checks {
			if err := chk.Ping(ctx); err != nil {
				slog.Error("health check failed", "dependency", chk.Name, "error", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "dependency": chk.Name})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
