package handlers

import (
	"bytes"
	"mime"
	"net/http"
	"path/filepath"
	"server/config"
	"server/db"
	"server/models"
	"server/storage"
	"server/utils"
	"strconv"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ImageUploadRequest struct {
	PostID     uint64 `form:"post_id" binding:"required"`
	OrderIndex int    `form:"order_index"`
}

type ImageFetchRequest struct {
	ID    uint64 `form:"id" binding:"required"`
	Thumb uint   `form:"thumb"`
}

type ImageUploadResponse struct {
	Error string `json:"error"`
	ID    uint64 `json:"id"`
}

// ImageUpload attaches one multipart image to the caller's own post.
// The original goes to storage under a random name; a JPEG thumbnail is
// generated inline.
func ImageUpload(c *gin.Context, member *models.Member) {
	r := ImageUploadRequest{}
	if err := c.ShouldBind(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	post, err := models.FindActivePost(r.PostID)
	if err != nil {
		respondError(c, err)
		return
	}
	if post.MemberID != member.ID {
		respondError(c, models.Forbidden("not the author of this post"))
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{"file is required"})
		return
	}
	mimeType := mime.TypeByExtension(filepath.Ext(fileHeader.Filename))
	if mimeType != "image/jpeg" && mimeType != "image/png" && mimeType != "image/gif" {
		c.JSON(http.StatusForbidden, Response{"this file type is not allowed"})
		return
	}
	bucketStorage := storage.GetDefaultStorage()
	if bucketStorage == nil {
		c.JSON(http.StatusInternalServerError, Response{"no storage configured"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{err.Error()})
		return
	}
	defer file.Close()
	var original bytes.Buffer
	size, err := original.ReadFrom(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{err.Error()})
		return
	}

	image := models.PostImage{
		PostID:     post.ID,
		OrderIndex: r.OrderIndex,
		BucketID:   bucketStorage.GetBucket().ID,
		Name:       uuid.NewString() + strings.ToLower(filepath.Ext(fileHeader.Filename)),
		MimeType:   mimeType,
		Size:       size,
	}

	var thumb bytes.Buffer
	converted, err := utils.CreateThumb(uint(config.THUMB_SIZE), bytes.NewReader(original.Bytes()), &thumb)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{"broken image file"})
		return
	}
	image.ThumbSize = converted.ThumbSize
	image.ThumbWidth = converted.NewX
	image.ThumbHeight = converted.NewY
	image.Width = converted.OldX
	image.Height = converted.OldY

	if _, err = bucketStorage.Save(image.GetPath(), &original); err != nil {
		c.JSON(http.StatusInternalServerError, Response{err.Error()})
		return
	}
	if _, err = bucketStorage.Save(image.GetThumbPath(), &thumb); err != nil {
		_ = bucketStorage.Delete(image.GetPath())
		c.JSON(http.StatusInternalServerError, Response{err.Error()})
		return
	}
	if err = db.Instance.Create(&image).Error; err != nil {
		_ = bucketStorage.Delete(image.GetPath())
		_ = bucketStorage.Delete(image.GetThumbPath())
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	c.JSON(http.StatusOK, ImageUploadResponse{ID: image.ID})
}

func ImageFetch(c *gin.Context, member *models.Member) {
	r := ImageFetchRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	image, err := models.FindPostImage(r.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	bucketStorage := storage.StorageFrom(&image.Bucket)
	if bucketStorage == nil {
		c.JSON(http.StatusInternalServerError, Response{"storage unavailable"})
		return
	}
	c.Header("cache-control", "private, max-age="+strconv.Itoa(utils.CacheImages))
	if r.Thumb == 1 {
		c.Header("content-type", "image/jpeg")
		bucketStorage.Serve(image.GetThumbPath(), c.Request, c.Writer)
		return
	}
	c.Header("content-type", image.MimeType)
	bucketStorage.Serve(image.GetPath(), c.Request, c.Writer)
}
