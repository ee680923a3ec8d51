package models

import (
	"errors"
	"server/db"
	"server/storage"
	"strconv"

	"gorm.io/gorm"
)

type PostImage struct {
	ID         uint64 `gorm:"primaryKey"`
	CreatedAt  int64
	PostID     uint64 `gorm:"not null;index:post_image_order,priority:1"`
	Post       Post   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	OrderIndex int    `gorm:"not null;default 0;index:post_image_order,priority:2"`
	BucketID   uint64
	Bucket     storage.Bucket `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	// Random name assigned at upload, extension included
	Name        string `gorm:"type:varchar(100)"`
	MimeType    string `gorm:"type:varchar(50)"`
	Size        int64
	ThumbSize   int64
	Width       uint16
	Height      uint16
	ThumbWidth  uint16
	ThumbHeight uint16
}

// GetPath returns the storage path of the original image, for example:
//   - post/56/d71ee3...f2.jpg
func (pi *PostImage) GetPath() string {
	return pi.GetPathOrThumb(false)
}

func (pi *PostImage) GetThumbPath() string {
	return pi.GetPathOrThumb(true)
}

func (pi *PostImage) GetPathOrThumb(thumb bool) string {
	path := "post/" + strconv.FormatUint(pi.PostID, 10) + "/" + pi.Name
	if thumb {
		// Thumbs are always JPEG
		path += "_thumb.jpg"
	}
	return path
}

// ImagesForPost returns the post's images ordered the way the author arranged
// them.
func ImagesForPost(postID uint64) ([]PostImage, error) {
	var images []PostImage
	err := db.Instance.Where("post_id = ?", postID).
		Order("order_index ASC, id ASC").Find(&images).Error
	return images, err
}

func FindPostImage(id uint64) (pi PostImage, err error) {
	result := db.Instance.Preload("Bucket").First(&pi, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return pi, NotFound("image not found")
		}
		return pi, result.Error
	}
	return pi, nil
}
