package handler

import (
	"net/http"

	"chainclub/internal/logic/nft"
	"chainclub/internal/middleware"
	"chainclub/internal/svc"
	"chainclub/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"
)

// MintMemberCardHandler 触发会员卡铸造流程
func MintMemberCardHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userId := middleware.UserIdFromContext(r.Context())
		logx.WithContext(r.Context()).Infof("MintMemberCardHandler, user: %s", userId)

		l := nft.NewNftLogic(r.Context(), svcCtx)
		resp, err := l.MintMemberCard(userId)
		if err != nil {
			errorJson(w, r, err)
		} else {
			httpx.WriteJsonCtx(r.Context(), w, http.StatusCreated, resp)
		}
	}
}

func MyNftsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userId := middleware.UserIdFromContext(r.Context())

		l := nft.NewNftLogic(r.Context(), svcCtx)
		resp, err := l.MyNfts(userId)
		if err != nil {
			errorJson(w, r, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}

func NftCollectionHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userId := middleware.UserIdFromContext(r.Context())

		l := nft.NewNftLogic(r.Context(), svcCtx)
		resp, err := l.Collection(userId)
		if err != nil {
			errorJson(w, r, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}

func NftDetailHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.NftDetailReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := nft.NewNftLogic(r.Context(), svcCtx)
		resp, err := l.NftDetail(req.TokenId)
		if err != nil {
			errorJson(w, r, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}

// VerifyOwnershipHandler 校验当前用户是否持有该 token（仅已铸造的算数）
func VerifyOwnershipHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.NftDetailReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		userId := middleware.UserIdFromContext(r.Context())

		l := nft.NewNftLogic(r.Context(), svcCtx)
		resp, err := l.VerifyOwnership(userId, req.TokenId)
		if err != nil {
			errorJson(w, r, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
