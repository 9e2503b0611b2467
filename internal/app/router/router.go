package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "warehouse_backend/internal/feature/auth/transport/handler"
	stockhandler "warehouse_backend/internal/feature/stock/transport/handler"
	"warehouse_backend/internal/platform/http/handler"
	jwtmw "warehouse_backend/internal/platform/jwt"
)

// Options はルーター生成時の設定です。
type Options struct {
	JWTSecret   string
	CORSOrigins []string
	// HealthChecks は /healthz で確認する依存先です。
	HealthChecks []handler.Check
}

// NewRouter は全ルートを登録したgin.Engineを返します。
func NewRouter(authHandler *authhandler.AuthHandler, stock *stockhandler.StockHandler, opts Options) *gin.Engine {
	r := gin.Default()

	// ブラウザのフロントエンドから呼ぶ場合のみCORSを有効化
	if len(opts.CORSOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = opts.CORSOrigins
		cfg.AddAllowHeaders("Authorization")
		r.Use(cors.New(cfg))
	}

	// 認証不要
	// 導通確認用
	health := handler.NewHealth(opts.HealthChecks...)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)
	// 新規ユーザー登録
	r.POST("/register", authHandler.Register)
	// ログイン（JWT 発行）
	r.POST("/login", authHandler.Login)

	// 認証必須のルート
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(opts.JWTSecret))
	{
		auth.GET("/get-userinfo", authHandler.UserInfo)
		// 入庫・出庫
		auth.POST("/stockin", stock.StockIn)
		auth.POST("/stockout", stock.StockOut)
		// 在庫一覧・履歴
		auth.GET("/get-stock-items", stock.ListItems)
		auth.GET("/history", stock.ListHistory)
	}

	return r
}
