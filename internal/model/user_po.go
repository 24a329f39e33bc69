package model

import (
	"database/sql"
	"time"
)

// Users corresponds to the users table in the database.
type Users struct {
	Id        string         `gorm:"column:id;primaryKey"`
	Email     string         `gorm:"column:email;uniqueIndex"`
	Password  string         `gorm:"column:password"` // bcrypt 哈希，绝不存明文
	Username  sql.NullString `gorm:"column:username;uniqueIndex"`
	FirstName sql.NullString `gorm:"column:first_name"`
	LastName  sql.NullString `gorm:"column:last_name"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (Users) TableName() string { return "users" }
