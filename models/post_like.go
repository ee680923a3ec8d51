package models

import (
	"server/db"
)

type PostLike struct {
	CreatedAt int64
	MemberID  uint64 `gorm:"primaryKey"`
	Member    Member `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	PostID    uint64 `gorm:"primaryKey"`
	Post      Post   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func LikePost(postID, memberID uint64) error {
	if _, err := findActivePost(db.Instance, postID); err != nil {
		return err
	}
	like := PostLike{
		MemberID: memberID,
		PostID:   postID,
	}
	// Liking twice is a no-op
	return db.Instance.FirstOrCreate(&like).Error
}

func UnlikePost(postID, memberID uint64) error {
	return db.Instance.Delete(&PostLike{}, "post_id = ? and member_id = ?", postID, memberID).Error
}

func PostLikeCount(postID uint64) (count int64) {
	db.Instance.Model(&PostLike{}).Where("post_id = ?", postID).Count(&count)
	return count
}
