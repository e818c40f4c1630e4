package myErrors

import (
	"errors"
	"sort"
	"strings"
)

// ErrNotAuthor 表示当前用户不是资源的作者，调用方应重定向到资源详情页而不是返回错误页
var ErrNotAuthor = errors.New("当前用户不是作者")

// ErrValidation 表单校验失败，具体字段信息见 FieldErrors
var ErrValidation = errors.New("表单校验失败")

// ErrImageStorageDisabled 未启用对象存储时上传了图片
var ErrImageStorageDisabled = errors.New("图片存储未启用")

// FieldErrors 字段名 -> 错误信息
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for field, msg := range f {
		fields = append(fields, field+": "+msg)
	}
	sort.Strings(fields)
	return ErrValidation.Error() + ": " + strings.Join(fields, "; ")
}

func (f FieldErrors) Unwrap() error {
	return ErrValidation
}

// NewFieldError 构造只包含一个字段的校验错误
func NewFieldError(field, msg string) FieldErrors {
	return FieldErrors{field: msg}
}
