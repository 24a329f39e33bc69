package model

import "time"

// Wallets corresponds to the wallets table in the database.
// 每个用户至多一个钱包，地址全局唯一，创建后不可变更
type Wallets struct {
	Id                  int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserId              string    `gorm:"column:user_id;uniqueIndex"`
	Address             string    `gorm:"column:address;uniqueIndex"`
	EncryptedPrivateKey string    `gorm:"column:encrypted_private_key"` // vault 密文，格式 hex(iv):hex(cipher)
	Balance             string    `gorm:"column:balance"`               // 缓存余额，仅作展示，不参与任何授权判断
	CreatedAt           time.Time `gorm:"column:created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at"`
}

func (Wallets) TableName() string { return "wallets" }
