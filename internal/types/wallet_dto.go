package types

// WalletView 钱包对外视图，只暴露公开信息。
// 加密私钥和明文私钥永远不会出现在任何响应里
type WalletView struct {
	// The public address of the custodial wallet.
	Address string `json:"address"`
	// Cached balance in ether, informational only.
	Balance   string `json:"balance"`
	CreatedAt string `json:"created_at,omitempty"`
}

// WalletCreateResp defines the response body for explicit wallet creation.
type WalletCreateResp struct {
	Wallet WalletView `json:"wallet"`
}

// WalletInfoResp defines the response body for the wallet info endpoint.
// Balance 为实时链上查询结果，同时回写缓存
type WalletInfoResp struct {
	Wallet WalletView `json:"wallet"`
}

// WalletBalanceResp defines the response body for the balance endpoint.
type WalletBalanceResp struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

// WalletAddressResp defines the response body for the address endpoint.
type WalletAddressResp struct {
	Address string `json:"address"`
}
