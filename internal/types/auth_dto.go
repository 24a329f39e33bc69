package types

// RegisterReq defines the request body for user registration.
type RegisterReq struct {
	// The user's email address, used as the login identity.
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	// Optional profile fields.
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// LoginReq defines the request body for user login.
type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserView 返回给前端的用户信息，永不包含密码哈希
type UserView struct {
	Id        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
	CreatedAt string `json:"created_at"`
}

// RegisterResp defines the response body for a successful registration.
// 注册会同步创建托管钱包，并尽力铸造会员卡（失败不影响注册）
type RegisterResp struct {
	User   UserView    `json:"user"`
	Wallet *WalletView `json:"wallet,omitempty"`
	Nft    *NftView    `json:"nft,omitempty"`
	Token  string      `json:"token"`
}

// LoginResp defines the response body for a successful login.
// 钱包余额为尽力刷新后的值，会员卡列表与 /api/nft/my-nfts 一致
type LoginResp struct {
	User   UserView    `json:"user"`
	Wallet *WalletView `json:"wallet,omitempty"`
	Nfts   []NftView   `json:"nfts"`
	Token  string      `json:"token"`
}

// ProfileResp defines the response body for the profile endpoint.
type ProfileResp struct {
	User UserView `json:"user"`
}
