// Package mysql establishes the database connection, migrates the schema and
// hands out the Repositories aggregate.
package mysql

import (
	"fmt"

	"chitchat_server/internal/config"
	"chitchat_server/internal/dao/mysql/repository"
	"chitchat_server/internal/model"

	"go.uber.org/zap"
	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Init connects to MySQL, runs AutoMigrate and returns the repository
// aggregate. Failure at this stage is fatal.
func Init() repository.Repositories {
	conf := config.GetConfig()

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		conf.MysqlConfig.User,
		conf.MysqlConfig.Password,
		conf.MysqlConfig.Host,
		conf.MysqlConfig.Port,
		conf.MysqlConfig.DatabaseName,
	)

	// TranslateError turns driver duplicate-key errors into
	// gorm.ErrDuplicatedKey, which the repositories map to CodeConflict.
	db, err := gorm.Open(mysqldriver.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		zap.L().Fatal("mysql connect failed", zap.Error(err))
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Room{},
		&model.Participant{},
		&model.Message{},
		&model.Contact{},
		&model.MessageAttachment{},
	)
	if err != nil {
		zap.L().Fatal("mysql migrate failed", zap.Error(err))
	}

	return repository.NewRepositories(db)
}
