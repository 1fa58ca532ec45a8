package console

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"guardlink.com.au/guardlink/infrastructure/devops"
	"guardlink.com.au/guardlink/utils"
)

// Connect opens the console schema, the one database shared across the
// whole deployment that tracks tenant companies and subscriptions.
func Connect(ctx context.Context) (*gorm.DB, error) {
	databases, err := devops.LoadDBConfig(ctx)
	if err != nil {
		return nil, err
	}

	dbconfig := utils.Find(databases, func(db devops.DBEntry) bool {
		return db.Name == "console"
	})
	if dbconfig == nil {
		return nil, fmt.Errorf("console database parameter not found")
	}

	dsn := dbconfig.GetDSN(dbconfig.Name)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}
