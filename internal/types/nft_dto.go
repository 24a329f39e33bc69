package types

// NftView 会员卡对外视图
type NftView struct {
	TokenId     string `json:"token_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageUrl    string `json:"image_url"`
	MetadataUrl string `json:"metadata_url"`
	Network     string `json:"network"`
	IsMinted    bool   `json:"is_minted"`
	// RFC3339, 待铸造时为空
	MintedAt string `json:"minted_at,omitempty"`
}

// NftOwnerView 带持有人信息的会员卡视图（collection 接口）
type NftOwnerView struct {
	Nft  NftView  `json:"nft"`
	User UserView `json:"user"`
}

// MintMemberCardResp defines the response body for a successful mint.
type MintMemberCardResp struct {
	Nft             NftView `json:"nft"`
	TransactionHash string  `json:"transaction_hash"`
	BlockNumber     int64   `json:"block_number"`
}

// MyNftsResp defines the response body listing the user's tokens.
type MyNftsResp struct {
	Nfts []NftView `json:"nfts"`
}

// NftCollectionResp defines the response body for the collection endpoint.
type NftCollectionResp struct {
	Nfts []NftOwnerView `json:"nfts"`
}

// NftDetailReq captures the token id path parameter.
type NftDetailReq struct {
	TokenId string `path:"tokenId"`
}

// NftDetailResp defines the response body for the token detail endpoint.
type NftDetailResp struct {
	Nft NftView `json:"nft"`
}

// VerifyOwnershipResp defines the response body for the verify endpoint.
// 仅已铸造的 token 才算持有
type VerifyOwnershipResp struct {
	TokenId string `json:"token_id"`
	IsOwner bool   `json:"is_owner"`
}
