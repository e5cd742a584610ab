package dto

// Response 统一返回结构，HTTP 状态码恒为 200，业务状态放在 Code
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// PageDTO 分页列表
type PageDTO[T any] struct {
	Total int64 `json:"total"`
	Items []T   `json:"items"`
}
