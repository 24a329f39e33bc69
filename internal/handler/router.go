package handler

import (
	"net/http"
	"time"

	"chainclub/internal/middleware"
	"chainclub/internal/svc"

	"github.com/zeromicro/go-zero/rest"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	authMiddleware := middleware.NewAuthMiddleware(serverCtx.Config.Auth.JwtSecret)

	server.AddRoutes(
		[]rest.Route{
			// --- Auth Routes ---
			{
				Method:  http.MethodPost,
				Path:    "/auth/register",
				Handler: RegisterHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/auth/login",
				Handler: LoginHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/auth/logout",
				Handler: authMiddleware.Handle(LogoutHandler(serverCtx)),
			},
			{
				Method:  http.MethodGet,
				Path:    "/auth/profile",
				Handler: authMiddleware.Handle(ProfileHandler(serverCtx)),
			},
			// --- Wallet Routes ---
			{
				Method:  http.MethodPost,
				Path:    "/wallet/create",
				Handler: authMiddleware.Handle(WalletCreateHandler(serverCtx)),
			},
			{
				Method:  http.MethodGet,
				Path:    "/wallet/info",
				Handler: authMiddleware.Handle(WalletInfoHandler(serverCtx)),
			},
			{
				Method:  http.MethodGet,
				Path:    "/wallet/balance",
				Handler: authMiddleware.Handle(WalletBalanceHandler(serverCtx)),
			},
			{
				Method:  http.MethodGet,
				Path:    "/wallet/address",
				Handler: authMiddleware.Handle(WalletAddressHandler(serverCtx)),
			},
			// --- NFT Routes ---
			{
				Method:  http.MethodGet,
				Path:    "/nft/my-nfts",
				Handler: authMiddleware.Handle(MyNftsHandler(serverCtx)),
			},
			{
				Method:  http.MethodGet,
				Path:    "/nft/collection",
				Handler: authMiddleware.Handle(NftCollectionHandler(serverCtx)),
			},
			{
				Method:  http.MethodGet,
				Path:    "/nft/:tokenId",
				Handler: authMiddleware.Handle(NftDetailHandler(serverCtx)),
			},
			{
				Method:  http.MethodGet,
				Path:    "/nft/:tokenId/verify",
				Handler: authMiddleware.Handle(VerifyOwnershipHandler(serverCtx)),
			},
		},
		rest.WithPrefix("/api/"),
		rest.WithTimeout(30000*time.Millisecond),
	)

	// 铸造要等待链上确认，单独给更长的超时
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodPost,
				Path:    "/nft/mint-member-card",
				Handler: authMiddleware.Handle(MintMemberCardHandler(serverCtx)),
			},
		},
		rest.WithPrefix("/api/"),
		rest.WithTimeout(180000*time.Millisecond),
	)
}
