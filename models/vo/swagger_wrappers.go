package vo

// --- 用于 swagger 文档的具体响应包装器 (对应 response.APIResponse[T]) ---

// PostPageResponseWrapper 对应 response.APIResponse[vo.PostPageVO]
type PostPageResponseWrapper struct {
	Code    int        `json:"code" example:"0"`
	Message string     `json:"message,omitempty" example:"success"`
	Data    PostPageVO `json:"data"`
}

// CategoryPageResponseWrapper 对应 response.APIResponse[vo.CategoryPageVO]
type CategoryPageResponseWrapper struct {
	Code    int            `json:"code" example:"0"`
	Message string         `json:"message,omitempty" example:"success"`
	Data    CategoryPageVO `json:"data"`
}

// PostDetailResponseWrapper 对应 response.APIResponse[vo.PostDetailVO]
type PostDetailResponseWrapper struct {
	Code    int          `json:"code" example:"0"`
	Message string       `json:"message,omitempty" example:"success"`
	Data    PostDetailVO `json:"data"`
}

// ProfilePageResponseWrapper 对应 response.APIResponse[vo.ProfilePageVO]
type ProfilePageResponseWrapper struct {
	Code    int           `json:"code" example:"0"`
	Message string        `json:"message,omitempty" example:"success"`
	Data    ProfilePageVO `json:"data"`
}

// ProfileResponseWrapper 对应 response.APIResponse[vo.ProfileVO]
type ProfileResponseWrapper struct {
	Code    int       `json:"code" example:"0"`
	Message string    `json:"message,omitempty" example:"success"`
	Data    ProfileVO `json:"data"`
}

// FieldErrorsResponseWrapper 表单校验失败时的响应，Data 为 字段名 -> 错误信息
type FieldErrorsResponseWrapper struct {
	Code    int               `json:"code" example:"40001"`
	Message string            `json:"message" example:"表单校验失败"`
	Data    map[string]string `json:"data"`
}

// BaseResponseWrapper 只包含 Code 和 Message 的响应，适用于错误情况
type BaseResponseWrapper struct {
	Code    int    `json:"code" example:"0"`
	Message string `json:"message" example:"success"`
}
