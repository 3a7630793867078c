package pkg

import (
	"errors"
	"net/http"
)

// ErrKind 业务错误分类，handler 层据此映射 HTTP 状态码
type ErrKind int

const (
	KindInternal ErrKind = iota
	KindNotFound
	KindConflict
	KindForbidden
	KindUnauthorized
	KindInvalidInput
	KindUnsupportedMedia
)

type AppError struct {
	Kind ErrKind
	Msg  string
	Err  error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *AppError) Unwrap() error { return e.Err }

func NotFound(msg string) error  { return &AppError{Kind: KindNotFound, Msg: msg} }
func Conflict(msg string) error  { return &AppError{Kind: KindConflict, Msg: msg} }
func Forbidden(msg string) error { return &AppError{Kind: KindForbidden, Msg: msg} }

func Unauthorized(msg string) error     { return &AppError{Kind: KindUnauthorized, Msg: msg} }
func InvalidInput(msg string) error     { return &AppError{Kind: KindInvalidInput, Msg: msg} }
func UnsupportedMedia(msg string) error { return &AppError{Kind: KindUnsupportedMedia, Msg: msg} }

// Internal 包装底层存储错误，信息不外露细节
func Internal(msg string, err error) error {
	return &AppError{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf 非 AppError 一律视为内部错误
func KindOf(err error) ErrKind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnsupportedMedia:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

// Message 对外返回的错误文案；内部错误统一文案，避免泄漏存储层细节
func Message(err error) string {
	var ae *AppError
	if errors.As(err, &ae) && ae.Kind != KindInternal {
		return ae.Msg
	}
	return "internal server error"
}
