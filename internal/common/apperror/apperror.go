package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Type 错误类别（决定边界层返回的 HTTP 状态码）。
type Type int

const (
	Internal Type = iota
	Database
	NotFound
	InvalidTrip // 行程时间窗非法：专用 422，与普通参数校验（400）区分
	Conflict
	Auth
	Validation
)

// Error 应用统一错误类型，可包装底层错误（errors.Is/As 可穿透）。
type Error struct {
	Type    Type
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// StatusCode 错误类别到 HTTP 状态码的映射。
func (e *Error) StatusCode() int {
	switch e.Type {
	case NotFound:
		return http.StatusNotFound
	case InvalidTrip:
		return http.StatusUnprocessableEntity
	case Conflict:
		return http.StatusConflict
	case Auth:
		return http.StatusUnauthorized
	case Validation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func New(t Type, message string, err error) *Error {
	return &Error{Type: t, Message: message, Err: err}
}

func NewNotFound(message string, err error) *Error { return New(NotFound, message, err) }

// NewInvalidTrip 预订不变量被破坏（start >= end）。不携带恢复数据。
func NewInvalidTrip(message string) *Error { return New(InvalidTrip, message, nil) }

func NewConflict(message string, err error) *Error { return New(Conflict, message, err) }

// NewAuth 认证失败。用户不存在与密码错误统一走这里，调用方不可区分。
func NewAuth(message string) *Error { return New(Auth, message, nil) }

func NewValidation(message string, err error) *Error { return New(Validation, message, err) }

func NewDatabase(message string, err error) *Error { return New(Database, message, err) }

func NewInternal(message string, err error) *Error { return New(Internal, message, err) }

func is(err error, t Type) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Type == t
}

func IsNotFound(err error) bool { return is(err, NotFound) }

func IsInvalidTrip(err error) bool { return is(err, InvalidTrip) }

func IsConflict(err error) bool { return is(err, Conflict) }

func IsAuth(err error) bool { return is(err, Auth) }

func IsValidation(err error) bool { return is(err, Validation) }

// From 把任意 error 还原为 *Error；未知错误兜底为 Internal（边界层映射为 500）。
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return New(Internal, "internal error", err)
}
