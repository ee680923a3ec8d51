package models

import (
	"server/db"
)

func Init() {
	db.Instance.AutoMigrate(&Member{})
	db.Instance.AutoMigrate(&Post{})
	db.Instance.AutoMigrate(&PostImage{})
	db.Instance.AutoMigrate(&PostLike{})
	db.Instance.AutoMigrate(&Comment{})
}
