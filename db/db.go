package db

import (
	"server/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var Instance *gorm.DB

func Init() {
	if config.MYSQL_DSN != "" {
		InitMySQL(config.MYSQL_DSN)
		return
	}
	if config.SQLITE_FILE != "" {
		InitSQLite(config.SQLITE_FILE)
		return
	}
	panic("no database configured - set MYSQL_DSN or SQLITE_FILE")
}

func InitMySQL(dsn string) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil || db == nil {
		panic(err)
	}
	Instance = db
}

func InitSQLite(dsn string) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil || db == nil {
		panic(err)
	}
	Instance = db
}
