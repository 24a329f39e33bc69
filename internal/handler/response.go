package handler

import (
	"net/http"

	"chainclub/internal/errorx"

	"github.com/zeromicro/go-zero/rest/httpx"
)

// errorJson 把 errorx 错误映射为稳定的状态码和响应体
func errorJson(w http.ResponseWriter, r *http.Request, err error) {
	status, body := errorx.Body(err)
	httpx.WriteJsonCtx(r.Context(), w, status, body)
}
