package models

import (
	"errors"
	"server/db"
	"time"

	"gorm.io/gorm"
)

type Post struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"index:post_created"`
	UpdatedAt int64
	MemberID  uint64 `gorm:"not null"`
	Member    Member `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Title     string `gorm:"type:varchar(200)"`
	Content   string `gorm:"type:text"`
	ViewCount int    `gorm:"not null;default 0"`
	// Number of non-deleted comments. Owned by refreshCommentCount - nothing
	// else writes this column.
	CommentCount int  `gorm:"not null;default 0"`
	Deleted      bool `gorm:"not null;default 0"`
	DeletedAt    int64
}

const PostListPageSize = 10

func PostCreate(authorID uint64, title, content string) (Post, error) {
	author, err := findActiveMember(db.Instance, authorID)
	if err != nil {
		return Post{}, err
	}
	post := Post{
		MemberID: author.ID,
		Title:    title,
		Content:  content,
	}
	if err := db.Instance.Create(&post).Error; err != nil {
		return Post{}, err
	}
	return post, nil
}

func PostUpdate(postID, callerID uint64, title, content string) (Post, error) {
	post, err := findActivePost(db.Instance, postID)
	if err != nil {
		return Post{}, err
	}
	if post.MemberID != callerID {
		return Post{}, Forbidden("not the author of this post")
	}
	post.Title = title
	post.Content = content
	if err := db.Instance.Save(&post).Error; err != nil {
		return Post{}, err
	}
	return post, nil
}

// PostDelete soft-deletes the post. Its comments are left untouched; the post
// simply disappears from listings and lookups.
func PostDelete(postID, callerID uint64) error {
	var post Post
	result := db.Instance.First(&post, "id = ?", postID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return NotFound("post not found")
		}
		return result.Error
	}
	if post.Deleted {
		return InvalidState("post is already deleted")
	}
	if post.MemberID != callerID {
		return Forbidden("not the author of this post")
	}
	post.Deleted = true
	post.DeletedAt = time.Now().Unix()
	return db.Instance.Save(&post).Error
}

// PostList returns up to size non-deleted posts strictly older than cursor
// (unix seconds), newest first. cursor == 0 starts from the top.
func PostList(cursor int64, size int) ([]Post, error) {
	if size <= 0 || size > 100 {
		size = PostListPageSize
	}
	query := db.Instance.Preload("Member").Where("deleted = 0")
	if cursor > 0 {
		query = query.Where("created_at < ?", cursor)
	}
	var posts []Post
	err := query.Order("created_at DESC, id DESC").Limit(size).Find(&posts).Error
	return posts, err
}

// AddView bumps the denormalized view counter. Callers are expected to
// de-duplicate repeated views themselves.
func (p *Post) AddView() {
	p.ViewCount++
	db.Instance.Model(p).UpdateColumn("view_count", gorm.Expr("view_count + 1"))
}

// findActivePost resolves a post ID, excluding soft-deleted rows.
func findActivePost(tx *gorm.DB, id uint64) (p Post, err error) {
	result := tx.First(&p, "id = ? and deleted = 0", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return p, NotFound("post not found")
		}
		return p, result.Error
	}
	return p, nil
}

// FindActivePost is the exported read-path lookup used by handlers.
func FindActivePost(id uint64) (Post, error) {
	return findActivePost(db.Instance.Preload("Member"), id)
}
