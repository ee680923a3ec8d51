package handlers

import (
	"net/http"
	"server/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// DeletedContentMarker is served instead of the text of soft-deleted
// comments. The row stays so live replies keep their anchor.
const DeletedContentMarker = "(deleted)"

type CommentCreateRequest struct {
	PostID  uint64 `form:"post_id" binding:"required"`
	Content string `form:"content" binding:"required"`
}

type CommentReplyRequest struct {
	PostID   uint64 `form:"post_id" binding:"required"`
	ParentID uint64 `form:"parent_id" binding:"required"`
	Content  string `form:"content" binding:"required"`
}

type CommentSaveRequest struct {
	ID      uint64 `form:"id" binding:"required"`
	Content string `form:"content" binding:"required"`
}

type CommentIDRequest struct {
	ID uint64 `form:"id" binding:"required"`
}

type CommentListRequest struct {
	PostID uint64 `form:"post_id" binding:"required"`
}

type CommentInfo struct {
	ID        uint64        `json:"id"`
	Content   string        `json:"content"`
	Author    string        `json:"author"`
	CreatedAt int64         `json:"created"`
	UpdatedAt int64         `json:"updated"`
	Deleted   bool          `json:"deleted"`
	Replies   []CommentInfo `json:"replies"`
}

func commentInfoFrom(comment *models.Comment) CommentInfo {
	info := CommentInfo{
		ID:        comment.ID,
		Content:   comment.Content,
		Author:    comment.Member.DisplayName(),
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
		Deleted:   comment.Deleted,
		Replies:   []CommentInfo{},
	}
	if comment.Deleted {
		info.Content = DeletedContentMarker
	}
	return info
}

func commentInfosFrom(nodes []models.CommentNode) []CommentInfo {
	result := make([]CommentInfo, 0, len(nodes))
	for i := range nodes {
		info := commentInfoFrom(&nodes[i].Comment)
		for j := range nodes[i].Children {
			info.Replies = append(info.Replies, commentInfoFrom(&nodes[i].Children[j]))
		}
		result = append(result, info)
	}
	return result
}

func CommentCreate(c *gin.Context, member *models.Member) {
	r := CommentCreateRequest{}
	err := c.ShouldBindWith(&r, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	comment, err := models.CreateComment(r.PostID, member.ID, r.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, commentInfoFrom(&comment))
}

func CommentReply(c *gin.Context, member *models.Member) {
	r := CommentReplyRequest{}
	err := c.ShouldBindWith(&r, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	reply, err := models.CreateReply(r.PostID, r.ParentID, member.ID, r.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, commentInfoFrom(&reply))
}

func CommentSave(c *gin.Context, member *models.Member) {
	r := CommentSaveRequest{}
	err := c.ShouldBindWith(&r, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	comment, err := models.UpdateComment(r.ID, member.ID, r.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, commentInfoFrom(&comment))
}

func CommentDelete(c *gin.Context, member *models.Member) {
	r := CommentIDRequest{}
	err := c.ShouldBindWith(&r, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if err := models.DeleteComment(r.ID, member.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func CommentList(c *gin.Context, member *models.Member) {
	r := CommentListRequest{}
	err := c.ShouldBindQuery(&r)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	nodes, err := models.ListComments(r.PostID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, commentInfosFrom(nodes))
}
