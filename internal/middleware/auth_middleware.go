package middleware

import (
	"context"
	"net/http"
	"strings"

	"chainclub/internal/errorx"

	"github.com/golang-jwt/jwt/v4"
	"github.com/zeromicro/go-zero/rest/httpx"
)

type ctxKey string

// userIdKey 认证中间件写入 request context 的用户标识
const userIdKey ctxKey = "userId"

// AuthMiddleware validates the bearer token and injects the user id.
type AuthMiddleware struct {
	secret []byte
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(jwtSecret)}
}

// Handle 校验 Authorization: Bearer <token>，失败统一返回 401
func (m *AuthMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeUnauthorized(w, r, "missing bearer token")
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.secret, nil
		})
		if err != nil || !token.Valid {
			writeUnauthorized(w, r, "invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			writeUnauthorized(w, r, "invalid token claims")
			return
		}
		userId, _ := claims["userId"].(string)
		if userId == "" {
			writeUnauthorized(w, r, "invalid token claims")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userIdKey, userId)))
	}
}

// UserIdFromContext 取出认证中间件写入的用户标识
func UserIdFromContext(ctx context.Context) string {
	userId, _ := ctx.Value(userIdKey).(string)
	return userId
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	status, body := errorx.Body(errorx.Unauthorized(msg))
	httpx.WriteJsonCtx(r.Context(), w, status, body)
}
