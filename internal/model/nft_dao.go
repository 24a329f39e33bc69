package model

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrAlreadyMinted is returned by MarkMinted when the token was already
// promoted to minted by an earlier call.
var ErrAlreadyMinted = errors.New("token already minted")

// NftsDao defines the interface for database operations on the nfts table.
type NftsDao interface {
	Insert(ctx context.Context, data *Nfts) error
	FindOneByTokenId(ctx context.Context, tokenId string) (*Nfts, error)
	FindByUserId(ctx context.Context, userId string) ([]*Nfts, error)
	HasMinted(ctx context.Context, userId string) (bool, error)
	VerifyOwnership(ctx context.Context, userId, tokenId string) (bool, error)
	SetTxHash(ctx context.Context, tokenId, txHash string) error
	MarkMinted(ctx context.Context, tokenId, txHash string, blockNumber int64) (*Nfts, error)
	FindPendingWithTxHash(ctx context.Context) ([]*Nfts, error)
}

type nftsDao struct {
	db *gorm.DB
}

// NewNftsDao creates a new instance of NftsDao.
func NewNftsDao(db *gorm.DB) NftsDao {
	return &nftsDao{db: db}
}

// Insert adds a new pending token record.
// token_id 唯一约束以及 "每用户至多一条已铸造" 的部分唯一索引在提交时兜底
func (d *nftsDao) Insert(ctx context.Context, data *Nfts) error {
	return d.db.WithContext(ctx).Create(data).Error
}

// FindOneByTokenId retrieves a single token record by its token id.
func (d *nftsDao) FindOneByTokenId(ctx context.Context, tokenId string) (*Nfts, error) {
	var resp Nfts
	err := d.db.WithContext(ctx).Where("token_id = ?", tokenId).First(&resp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &resp, nil
}

// FindByUserId retrieves all token records for a user, newest first.
func (d *nftsDao) FindByUserId(ctx context.Context, userId string) ([]*Nfts, error) {
	var nfts []*Nfts
	err := d.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&nfts).Error
	if err != nil {
		return nil, err
	}
	return nfts, nil
}

// HasMinted reports whether the user already holds a minted token.
// 这是铸造资格的权威判断
func (d *nftsDao) HasMinted(ctx context.Context, userId string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&Nfts{}).
		Where("user_id = ? AND is_minted = ?", userId, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// VerifyOwnership reports whether the minted token belongs to the user.
// 待铸造状态的记录不算持有
func (d *nftsDao) VerifyOwnership(ctx context.Context, userId, tokenId string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&Nfts{}).
		Where("user_id = ? AND token_id = ? AND is_minted = ?", userId, tokenId, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SetTxHash records the submitted transaction hash on a pending row.
// 在等待回执之前先落库，崩溃后对账任务才能找回这笔交易
func (d *nftsDao) SetTxHash(ctx context.Context, tokenId, txHash string) error {
	return d.db.WithContext(ctx).Model(&Nfts{}).
		Where("token_id = ? AND is_minted = ?", tokenId, false).
		Update("tx_hash", txHash).Error
}

// MarkMinted promotes a pending token to minted exactly once.
// WHERE is_minted = false 保证重复调用不会破坏已有状态；
// 并发铸造时 uniq_nfts_minted_user 部分唯一索引会以 ErrDuplicate
// 拦下同一用户的第二张
func (d *nftsDao) MarkMinted(ctx context.Context, tokenId, txHash string, blockNumber int64) (*Nfts, error) {
	res := d.db.WithContext(ctx).Model(&Nfts{}).
		Where("token_id = ? AND is_minted = ?", tokenId, false).
		Updates(map[string]interface{}{
			"is_minted":    true,
			"tx_hash":      txHash,
			"block_number": blockNumber,
			"minted_at":    sql.NullTime{Time: time.Now(), Valid: true},
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// 记录不存在，或已被更早的调用置为已铸造
		nft, err := d.FindOneByTokenId(ctx, tokenId)
		if err != nil {
			return nil, err
		}
		if nft.IsMinted {
			return nil, ErrAlreadyMinted
		}
		return nil, ErrNotFound
	}
	return d.FindOneByTokenId(ctx, tokenId)
}

// FindPendingWithTxHash retrieves pending rows that already recorded a
// transaction hash, for the reconcile job to re-check against the chain.
func (d *nftsDao) FindPendingWithTxHash(ctx context.Context) ([]*Nfts, error) {
	var nfts []*Nfts
	err := d.db.WithContext(ctx).
		Where("is_minted = ? AND tx_hash IS NOT NULL AND tx_hash <> ''", false).
		Order("created_at ASC").
		Find(&nfts).Error
	if err != nil {
		return nil, err
	}
	return nfts, nil
}
