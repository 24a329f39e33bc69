package errorx

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 标识一类稳定的、机器可判定的错误
type Kind string

const (
	KindConflict         Kind = "CONFLICT"
	KindAlreadyMinted    Kind = "ALREADY_MINTED"
	KindCrypto           Kind = "CRYPTO_ERROR"
	KindChainUnavailable Kind = "CHAIN_UNAVAILABLE"
	KindNotFound         Kind = "NOT_FOUND"
	KindUnauthorized     Kind = "UNAUTHORIZED"
)

// Error carries a stable kind for callers plus a human-readable message.
// 消息中绝不包含私钥、主密钥或密文片段
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches any *Error with the same Kind, so callers can test with
// errors.Is(err, errorx.Conflict("")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func wrapError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, cause: cause}
}

func Conflict(msg string) *Error      { return newError(KindConflict, msg) }
func AlreadyMinted(msg string) *Error { return newError(KindAlreadyMinted, msg) }
func NotFound(msg string) *Error      { return newError(KindNotFound, msg) }
func Unauthorized(msg string) *Error  { return newError(KindUnauthorized, msg) }

func Crypto(msg string, cause error) *Error {
	return wrapError(KindCrypto, msg, cause)
}

func ChainUnavailable(msg string, cause error) *Error {
	return wrapError(KindChainUnavailable, msg, cause)
}

// KindOf 提取错误的 Kind，非 errorx 错误返回空串
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// HTTPBody 统一的错误响应体，与原有前端约定保持一致
type HTTPBody struct {
	Success bool   `json:"success"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

// HTTPStatus maps an error kind to the status code handlers reply with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindConflict, KindAlreadyMinted:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindChainUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Body 构建错误响应体
func Body(err error) (int, HTTPBody) {
	var e *Error
	if errors.As(err, &e) {
		return HTTPStatus(err), HTTPBody{Success: false, Kind: string(e.Kind), Message: e.Message}
	}
	return http.StatusInternalServerError, HTTPBody{Success: false, Message: "internal server error"}
}
