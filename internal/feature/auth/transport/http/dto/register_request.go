// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// RegisterReq represents the request body for the /register endpoint.
type RegisterReq struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required,min=8"`
	FullName string `json:"fullname" form:"fullname" binding:"required"`
}

// UserInfoRes is the response of /get-userinfo.
type UserInfoRes struct {
	Username string `json:"username"`
	FullName string `json:"fullname"`
}
