package handler

import (
	"net/http"

	"chainclub/internal/logic/wallet"
	"chainclub/internal/middleware"
	"chainclub/internal/svc"

	"github.com/zeromicro/go-zero/rest/httpx"
)

// WalletCreateHandler 为当前用户创建托管钱包（已存在则 409）
func WalletCreateHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userId := middleware.UserIdFromContext(r.Context())

		l := wallet.NewWalletLogic(r.Context(), svcCtx)
		resp, err := l.CreateWallet(userId)
		if err != nil {
			errorJson(w, r, err)
		} else {
			httpx.WriteJsonCtx(r.Context(), w, http.StatusCreated, resp)
		}
	}
}

// WalletInfoHandler 钱包信息，附带实时余额并刷新缓存
func WalletInfoHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userId := middleware.UserIdFromContext(r.Context())

		l := wallet.NewWalletLogic(r.Context(), svcCtx)
		resp, err := l.WalletInfo(userId)
		if err != nil {
			errorJson(w, r, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}

func WalletBalanceHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userId := middleware.UserIdFromContext(r.Context())

		l := wallet.NewWalletLogic(r.Context(), svcCtx)
		resp, err := l.WalletBalance(userId)
		if err != nil {
			errorJson(w, r, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}

func WalletAddressHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userId := middleware.UserIdFromContext(r.Context())

		l := wallet.NewWalletLogic(r.Context(), svcCtx)
		resp, err := l.WalletAddress(userId)
		if err != nil {
			errorJson(w, r, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
