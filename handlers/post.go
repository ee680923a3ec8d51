package handlers

import (
	"net/http"
	"server/config"
	"server/models"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	cmap "github.com/orcaman/concurrent-map/v2"
)

type PostCreateRequest struct {
	Title   string `form:"title" binding:"required"`
	Content string `form:"content" binding:"required"`
}

type PostSaveRequest struct {
	ID      uint64 `form:"id" binding:"required"`
	Title   string `form:"title" binding:"required"`
	Content string `form:"content" binding:"required"`
}

type PostIDRequest struct {
	ID uint64 `form:"id" binding:"required"`
}

type PostListRequest struct {
	Cursor int64 `form:"cursor"`
	Size   int   `form:"size"`
}

type PostListInfo struct {
	ID           uint64 `json:"id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	CreatedAt    int64  `json:"created"`
	ViewCount    int    `json:"views"`
	CommentCount int    `json:"comments"`
}

type PostImageInfo struct {
	ID         uint64 `json:"id"`
	OrderIndex int    `json:"order_index"`
	Width      uint16 `json:"width"`
	Height     uint16 `json:"height"`
}

type PostDetailInfo struct {
	ID           uint64          `json:"id"`
	Title        string          `json:"title"`
	Content      string          `json:"content"`
	Author       string          `json:"author"`
	AuthorImage  string          `json:"author_image"`
	CreatedAt    int64           `json:"created"`
	UpdatedAt    int64           `json:"updated"`
	ViewCount    int             `json:"views"`
	LikeCount    int64           `json:"likes"`
	CommentCount int             `json:"comments"`
	Images       []PostImageInfo `json:"images"`
	Comments     []CommentInfo   `json:"comment_tree"`
}

// Tracks when a member last viewed a post so repeated fetches within
// VIEW_DEDUPE_MINUTES don't inflate the counter
var lastViews = cmap.New[int64]()

func PostCreate(c *gin.Context, member *models.Member) {
	r := PostCreateRequest{}
	err := c.ShouldBindWith(&r, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	post, err := models.PostCreate(member.ID, r.Title, r.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "id": post.ID})
}

func PostGet(c *gin.Context, member *models.Member) {
	r := PostIDRequest{}
	err := c.ShouldBindQuery(&r)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	post, err := models.FindActivePost(r.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	countView(&post, member.ID)
	images, err := models.ImagesForPost(post.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	nodes, err := models.ListComments(post.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	detail := PostDetailInfo{
		ID:           post.ID,
		Title:        post.Title,
		Content:      post.Content,
		Author:       post.Member.DisplayName(),
		AuthorImage:  profileImageURI(&post.Member),
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
		ViewCount:    post.ViewCount,
		LikeCount:    models.PostLikeCount(post.ID),
		CommentCount: post.CommentCount,
		Images:       []PostImageInfo{},
		Comments:     commentInfosFrom(nodes),
	}
	for _, image := range images {
		detail.Images = append(detail.Images, PostImageInfo{
			ID:         image.ID,
			OrderIndex: image.OrderIndex,
			Width:      image.Width,
			Height:     image.Height,
		})
	}
	c.JSON(http.StatusOK, detail)
}

func PostSave(c *gin.Context, member *models.Member) {
	r := PostSaveRequest{}
	err := c.ShouldBindWith(&r, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if _, err := models.PostUpdate(r.ID, member.ID, r.Title, r.Content); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func PostDelete(c *gin.Context, member *models.Member) {
	r := PostIDRequest{}
	err := c.ShouldBindWith(&r, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if err := models.PostDelete(r.ID, member.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func PostList(c *gin.Context, member *models.Member) {
	r := PostListRequest{}
	err := c.ShouldBindQuery(&r)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	posts, err := models.PostList(r.Cursor, r.Size)
	if err != nil {
		respondError(c, err)
		return
	}
	result := []PostListInfo{}
	for i := range posts {
		result = append(result, PostListInfo{
			ID:           posts[i].ID,
			Title:        posts[i].Title,
			Author:       posts[i].Member.DisplayName(),
			CreatedAt:    posts[i].CreatedAt,
			ViewCount:    posts[i].ViewCount,
			CommentCount: posts[i].CommentCount,
		})
	}
	c.JSON(http.StatusOK, result)
}

func PostLike(c *gin.Context, member *models.Member) {
	r := PostIDRequest{}
	err := c.ShouldBindWith(&r, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if err := models.LikePost(r.ID, member.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "likes": models.PostLikeCount(r.ID)})
}

func PostUnlike(c *gin.Context, member *models.Member) {
	r := PostIDRequest{}
	err := c.ShouldBindWith(&r, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if err := models.UnlikePost(r.ID, member.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "likes": models.PostLikeCount(r.ID)})
}

func countView(post *models.Post, memberID uint64) {
	key := strconv.FormatUint(post.ID, 10) + ":" + strconv.FormatUint(memberID, 10)
	now := time.Now().Unix()
	if last, ok := lastViews.Get(key); ok {
		if now-last < int64(config.VIEW_DEDUPE_MINUTES)*60 {
			return
		}
	}
	lastViews.Set(key, now)
	post.AddView()
}
