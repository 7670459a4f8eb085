// Package errors 提供统一的错误定义
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

// 预定义错误码
const (
	// 通用错误 (1xxx)
	CodeUnknown         ErrorCode = "1000"
	CodeInvalidParam    ErrorCode = "1001"
	CodeTooManyRequests ErrorCode = "1006"
	CodeInternalError   ErrorCode = "1007"

	// 表单与上传 (3xxx)
	CodeFormNotFound     ErrorCode = "3001"
	CodeUploadUnreadable ErrorCode = "3004"

	// 生成 (4xxx)
	CodeGenerationFailed    ErrorCode = "4001"
	CodeDocumentParseFailed ErrorCode = "4002"
	CodeLLMCallFailed       ErrorCode = "4005"

	// 外部依赖 (5xxx)
	CodeCacheError ErrorCode = "5002"
)

// httpStatus 未列出的错误码一律 500
var httpStatus = map[ErrorCode]int{
	CodeInvalidParam:     http.StatusBadRequest,
	CodeUploadUnreadable: http.StatusBadRequest,
	CodeFormNotFound:     http.StatusNotFound,
	CodeTooManyRequests:  http.StatusTooManyRequests,
}

// AppError 应用错误
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail 返回附带详情的副本，预定义错误不会被修改
func (e *AppError) WithDetail(detail string) *AppError {
	cp := *e
	cp.Detail = detail
	return &cp
}

// New 创建应用错误
func New(code ErrorCode, message string) *AppError {
	return Wrap(nil, code, message)
}

// Wrap 包装底层错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: StatusOf(code),
		Err:        err,
	}
}

// StatusOf 错误码对应的 HTTP 状态码
func StatusOf(code ErrorCode) int {
	if status, ok := httpStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrFormNotFound 请求的表单不存在
var ErrFormNotFound = New(CodeFormNotFound, "form not found")

// IsAppError 检查错误链中是否有 AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError 取出错误链中的 AppError，没有时包装为 CodeUnknown
func AsAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeUnknown, "unknown error")
}
