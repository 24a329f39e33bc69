package svc

import (
	"log"
	"time"

	"chainclub/internal/config"
	"chainclub/internal/ipfs"
	"chainclub/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type ServiceContext struct {
	Config     config.Config
	UsersDao   model.UsersDao
	WalletsDao model.WalletsDao
	NftsDao    model.NftsDao
	Publisher  ipfs.Publisher
	DB         *gorm.DB
}

func NewServiceContext(c config.Config) *ServiceContext {
	if err := c.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	db, err := initDB(c.Postgres.DSN)
	if err != nil {
		log.Fatalf("failed to init db: %v", err)
	}

	return &ServiceContext{
		Config:     c,
		UsersDao:   model.NewUsersDao(db),
		WalletsDao: model.NewWalletsDao(db),
		NftsDao:    model.NewNftsDao(db),
		Publisher:  ipfs.NewPublisher(c.Ipfs, c.Mode),
		DB:         db,
	}
}

func initDB(dsn string) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(log.Writer(), "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger,
		// 把唯一约束冲突翻译成 gorm.ErrDuplicatedKey，DAO 层依赖这个判重
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// 设置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	return db, nil
}
