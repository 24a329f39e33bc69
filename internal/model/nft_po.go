package model

import (
	"database/sql"
	"time"
)

// Nfts corresponds to the nfts table in the database.
// 一条记录代表一张已铸造或待铸造的会员卡。
// is_minted 只会从 false 变为 true，永不回退，记录永不删除
type Nfts struct {
	Id              int64          `gorm:"column:id;primaryKey;autoIncrement"`
	UserId          string         `gorm:"column:user_id;index"`
	TokenId         string         `gorm:"column:token_id;uniqueIndex"`
	Name            string         `gorm:"column:name"`
	Description     string         `gorm:"column:description"`
	ImageUrl        string         `gorm:"column:image_url"`
	MetadataUrl     string         `gorm:"column:metadata_url"` // ipfs://<cid>
	ContractAddress string         `gorm:"column:contract_address"`
	Network         string         `gorm:"column:network"`
	IsMinted        bool           `gorm:"column:is_minted"`
	TxHash          sql.NullString `gorm:"column:tx_hash"`
	BlockNumber     sql.NullInt64  `gorm:"column:block_number"`
	MintedAt        sql.NullTime   `gorm:"column:minted_at"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
}

func (Nfts) TableName() string { return "nfts" }
