package models

import (
	"errors"
	"server/db"
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"index:post_comment_created,priority:2"`
	UpdatedAt int64
	PostID    uint64 `gorm:"not null;index:post_comment_created,priority:1"`
	Post      Post   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	MemberID  uint64 `gorm:"not null"`
	Member    Member `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	// nil for top-level comments. Never changes after creation.
	ParentID  *uint64
	Parent    *Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Content   string   `gorm:"type:text"`
	Deleted   bool     `gorm:"not null;default 0"`
	DeletedAt int64
}

// CreateComment adds a top-level comment to a post and brings the post's
// comment count up to date in the same transaction.
func CreateComment(postID, authorID uint64, content string) (Comment, error) {
	var comment Comment
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		author, err := findActiveMember(tx, authorID)
		if err != nil {
			return err
		}
		post, err := findActivePost(tx, postID)
		if err != nil {
			return err
		}
		comment = Comment{
			PostID:   post.ID,
			MemberID: author.ID,
			Member:   author,
			Content:  content,
		}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return refreshCommentCount(tx, post.ID)
	})
	if err != nil {
		return Comment{}, err
	}
	return comment, nil
}

// CreateReply adds a reply under an existing top-level comment. Replying to a
// reply, to a deleted comment, or across posts is rejected, which keeps
// threads at most two levels deep.
func CreateReply(postID, parentCommentID, authorID uint64, content string) (Comment, error) {
	var reply Comment
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		author, err := findActiveMember(tx, authorID)
		if err != nil {
			return err
		}
		post, err := findActivePost(tx, postID)
		if err != nil {
			return err
		}
		parent, err := findCommentByID(tx, parentCommentID, true)
		if err != nil {
			return err
		}
		if parent.PostID != post.ID {
			return InvalidState("parent comment belongs to a different post")
		}
		if parent.Deleted {
			return InvalidState("cannot reply to a deleted comment")
		}
		if parent.ParentID != nil {
			return InvalidState("cannot reply to a reply")
		}
		reply = Comment{
			PostID:   post.ID,
			MemberID: author.ID,
			Member:   author,
			ParentID: &parent.ID,
			Content:  content,
		}
		if err := tx.Create(&reply).Error; err != nil {
			return err
		}
		return refreshCommentCount(tx, post.ID)
	})
	if err != nil {
		return Comment{}, err
	}
	return reply, nil
}

// UpdateComment replaces the content of the caller's own comment. Content
// edits don't change the comment population, so the post count is untouched.
func UpdateComment(commentID, callerID uint64, content string) (Comment, error) {
	comment, err := findCommentByID(db.Instance.Preload("Member"), commentID, true)
	if err != nil {
		return Comment{}, err
	}
	if comment.Deleted {
		return Comment{}, InvalidState("comment is deleted")
	}
	if comment.MemberID != callerID {
		return Comment{}, Forbidden("not the author of this comment")
	}
	comment.Content = content
	if err := db.Instance.Save(&comment).Error; err != nil {
		return Comment{}, err
	}
	return comment, nil
}

// DeleteComment soft-deletes the caller's own comment and refreshes the post
// count in the same transaction. Replies are not cascaded - they stay visible
// under the deleted parent.
func DeleteComment(commentID, callerID uint64) error {
	return db.Instance.Transaction(func(tx *gorm.DB) error {
		comment, err := findCommentByID(tx, commentID, true)
		if err != nil {
			return err
		}
		if comment.Deleted {
			return InvalidState("comment is already deleted")
		}
		if comment.MemberID != callerID {
			return Forbidden("not the author of this comment")
		}
		comment.Deleted = true
		comment.DeletedAt = time.Now().Unix()
		if err := tx.Save(&comment).Error; err != nil {
			return err
		}
		return refreshCommentCount(tx, comment.PostID)
	})
}

// ListComments fetches the post's full comment set, deleted rows included
// (they may still anchor live replies), and hands it to BuildCommentTree.
func ListComments(postID uint64) ([]CommentNode, error) {
	if _, err := findActivePost(db.Instance, postID); err != nil {
		return nil, err
	}
	comments, err := commentsForPost(db.Instance, postID)
	if err != nil {
		return nil, err
	}
	return BuildCommentTree(comments), nil
}

// refreshCommentCount recomputes the post's non-deleted comment count from
// scratch and persists it. A full recount instead of +1/-1 means two racing
// writers still converge on the right value.
func refreshCommentCount(tx *gorm.DB, postID uint64) error {
	count, err := countActiveComments(tx, postID)
	if err != nil {
		return err
	}
	return tx.Model(&Post{}).Where("id = ?", postID).
		UpdateColumn("comment_count", count).Error
}

//
// Store lookups. All take the DB handle explicitly so they work both on
// db.Instance and inside a transaction.
//

func findCommentByID(tx *gorm.DB, id uint64, includeDeleted bool) (c Comment, err error) {
	query := tx.Where("id = ?", id)
	if !includeDeleted {
		query = query.Where("deleted = 0")
	}
	result := query.First(&c)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return c, NotFound("comment not found")
		}
		return c, result.Error
	}
	return c, nil
}

func commentsForPost(tx *gorm.DB, postID uint64) ([]Comment, error) {
	var comments []Comment
	err := tx.Preload("Member").Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").Find(&comments).Error
	return comments, err
}

func countActiveComments(tx *gorm.DB, postID uint64) (count int64, err error) {
	err = tx.Model(&Comment{}).Where("post_id = ? and deleted = 0", postID).
		Count(&count).Error
	return count, err
}
