package mysql

import (
	"Reddit_MVP/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// InitDB 进程启动时调用一次，句柄由 main 注入各仓储
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		// 唯一键冲突翻译成 gorm.ErrDuplicatedKey，service 层据此返回 Conflict
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// AutoMigrate 自动建表（开发阶段 OK）
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Community{},
		&model.CommunityMember{},
	)
}
