package dto

// Response 统一返回结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// PageDTO 分页列表
type PageDTO[T any] struct {
	List     []T `json:"list"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}
