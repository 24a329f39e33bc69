package nft

import (
	"errors"
	"time"

	"chainclub/internal/errorx"
	"chainclub/internal/model"
	"chainclub/internal/types"
)

// MyNfts 返回用户的全部会员卡记录，最新在前
func (l *NftLogic) MyNfts(userId string) (*types.MyNftsResp, error) {
	nfts, err := l.svcCtx.NftsDao.FindByUserId(l.ctx, userId)
	if err != nil {
		return nil, err
	}

	resp := &types.MyNftsResp{Nfts: make([]types.NftView, 0, len(nfts))}
	for _, n := range nfts {
		resp.Nfts = append(resp.Nfts, toNftView(n))
	}
	return resp, nil
}

// Collection 返回带持有人信息的会员卡列表
func (l *NftLogic) Collection(userId string) (*types.NftCollectionResp, error) {
	user, err := l.svcCtx.UsersDao.FindOneById(l.ctx, userId)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, errorx.NotFound("user not found")
		}
		return nil, err
	}

	nfts, err := l.svcCtx.NftsDao.FindByUserId(l.ctx, userId)
	if err != nil {
		return nil, err
	}

	owner := toUserView(user)
	resp := &types.NftCollectionResp{Nfts: make([]types.NftOwnerView, 0, len(nfts))}
	for _, n := range nfts {
		resp.Nfts = append(resp.Nfts, types.NftOwnerView{Nft: toNftView(n), User: owner})
	}
	return resp, nil
}

// NftDetail 按 token id 查询单张会员卡
func (l *NftLogic) NftDetail(tokenId string) (*types.NftDetailResp, error) {
	nft, err := l.svcCtx.NftsDao.FindOneByTokenId(l.ctx, tokenId)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, errorx.NotFound("token not found")
		}
		return nil, err
	}
	return &types.NftDetailResp{Nft: toNftView(nft)}, nil
}

// VerifyOwnership 校验用户是否持有该 token。待铸造的记录不算持有
func (l *NftLogic) VerifyOwnership(userId, tokenId string) (*types.VerifyOwnershipResp, error) {
	isOwner, err := l.svcCtx.NftsDao.VerifyOwnership(l.ctx, userId, tokenId)
	if err != nil {
		return nil, err
	}
	return &types.VerifyOwnershipResp{TokenId: tokenId, IsOwner: isOwner}, nil
}

func toNftView(n *model.Nfts) types.NftView {
	view := types.NftView{
		TokenId:     n.TokenId,
		Name:        n.Name,
		Description: n.Description,
		ImageUrl:    n.ImageUrl,
		MetadataUrl: n.MetadataUrl,
		Network:     n.Network,
		IsMinted:    n.IsMinted,
	}
	if n.MintedAt.Valid {
		view.MintedAt = n.MintedAt.Time.Format(time.RFC3339)
	}
	return view
}

func toUserView(u *model.Users) types.UserView {
	return types.UserView{
		Id:        u.Id,
		Email:     u.Email,
		FirstName: u.FirstName.String,
		LastName:  u.LastName.String,
		Username:  u.Username.String,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}
