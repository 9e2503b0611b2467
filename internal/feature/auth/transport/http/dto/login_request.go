package dto

// LoginReq は/loginエンドポイントのリクエストボディを表します。
type LoginReq struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// LoginRes はログイン成功時のレスポンスです。
type LoginRes struct {
	Token string `json:"token"`
}
