package model

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = gorm.ErrRecordNotFound
	ErrDuplicate = gorm.ErrDuplicatedKey
)

// UsersDao defines the interface for database operations on the users table.
type UsersDao interface {
	Insert(ctx context.Context, data *Users) error
	FindOneById(ctx context.Context, id string) (*Users, error)
	FindOneByEmail(ctx context.Context, email string) (*Users, error)
	FindOneByUsername(ctx context.Context, username string) (*Users, error)
}

type usersDao struct {
	db *gorm.DB
}

// NewUsersDao creates a new instance of UsersDao.
func NewUsersDao(db *gorm.DB) UsersDao {
	return &usersDao{db: db}
}

// Insert adds a new record to the users table.
func (d *usersDao) Insert(ctx context.Context, data *Users) error {
	return d.db.WithContext(ctx).Create(data).Error
}

// FindOneById retrieves a single user record by its id.
func (d *usersDao) FindOneById(ctx context.Context, id string) (*Users, error) {
	var resp Users
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&resp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &resp, nil
}

// FindOneByEmail retrieves a single user record by email.
func (d *usersDao) FindOneByEmail(ctx context.Context, email string) (*Users, error) {
	var resp Users
	err := d.db.WithContext(ctx).Where("email = ?", email).First(&resp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &resp, nil
}

// FindOneByUsername retrieves a single user record by username.
func (d *usersDao) FindOneByUsername(ctx context.Context, username string) (*Users, error) {
	var resp Users
	err := d.db.WithContext(ctx).Where("username = ?", username).First(&resp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &resp, nil
}
