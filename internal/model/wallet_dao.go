package model

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// WalletsDao defines the interface for database operations on the wallets table.
type WalletsDao interface {
	Insert(ctx context.Context, data *Wallets) error
	FindOneByUserId(ctx context.Context, userId string) (*Wallets, error)
	FindOneByAddress(ctx context.Context, address string) (*Wallets, error)
	UpdateBalance(ctx context.Context, userId string, balance string) error
}

type walletsDao struct {
	db *gorm.DB
}

// NewWalletsDao creates a new instance of WalletsDao.
func NewWalletsDao(db *gorm.DB) WalletsDao {
	return &walletsDao{db: db}
}

// Insert adds a new record to the wallets table.
// user_id 和 address 上的唯一约束在这里兜底并发创建
func (d *walletsDao) Insert(ctx context.Context, data *Wallets) error {
	return d.db.WithContext(ctx).Create(data).Error
}

// FindOneByUserId retrieves a single wallet record by its owning user.
func (d *walletsDao) FindOneByUserId(ctx context.Context, userId string) (*Wallets, error) {
	var resp Wallets
	err := d.db.WithContext(ctx).Where("user_id = ?", userId).First(&resp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &resp, nil
}

// FindOneByAddress retrieves a single wallet record by its address.
func (d *walletsDao) FindOneByAddress(ctx context.Context, address string) (*Wallets, error) {
	var resp Wallets
	err := d.db.WithContext(ctx).Where("address = ?", address).First(&resp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &resp, nil
}

// UpdateBalance overwrites the cached balance field.
// 仅更新展示缓存，失败不会影响钱包的其他字段
func (d *walletsDao) UpdateBalance(ctx context.Context, userId string, balance string) error {
	return d.db.WithContext(ctx).Model(&Wallets{}).
		Where("user_id = ?", userId).
		Update("balance", balance).Error
}
