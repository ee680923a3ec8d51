package handlers

import (
	"bytes"
	"mime"
	"net/http"
	"path/filepath"
	"server/auth"
	"server/models"
	"server/storage"
	"server/utils"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

// Avatars are small; no point storing more pixels than this
const profileImageSize = 400

type MemberRegisterRequest struct {
	Nickname string `form:"nickname" binding:"required"`
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type MemberLoginRequest struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type MemberInfo struct {
	ID           uint64 `json:"id"`
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profile_image"`
}

type MemberImageRequest struct {
	ID uint64 `form:"id" binding:"required"`
}

func memberInfoFrom(member *models.Member) MemberInfo {
	return MemberInfo{
		ID:           member.ID,
		Nickname:     member.Nickname,
		ProfileImage: profileImageURI(member),
	}
}

// profileImageURI is what clients fetch to render the avatar. Deleted and
// avatar-less accounts get none.
func profileImageURI(member *models.Member) string {
	if member == nil || member.ID == 0 || member.Deleted || member.ProfileImagePath == "" {
		return ""
	}
	return "/member/image?id=" + strconv.FormatUint(member.ID, 10)
}

func MemberRegister(c *gin.Context) {
	r := MemberRegisterRequest{}
	err := c.ShouldBindWith(&r, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	member, err := models.MemberCreate(r.Nickname, r.Email, r.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	session := auth.LoadSession(c)
	session.LoginMember(&member)
	c.JSON(http.StatusOK, memberInfoFrom(&member))
}

func MemberLogin(c *gin.Context) {
	r := MemberLoginRequest{}
	err := c.ShouldBindWith(&r, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	member, success := models.MemberLogin(r.Email, r.Password)
	if !success {
		c.JSON(http.StatusUnauthorized, Response{"wrong email or password"})
		return
	}
	session := auth.LoadSession(c)
	session.LoginMember(&member)
	c.JSON(http.StatusOK, memberInfoFrom(&member))
}

func MemberLogout(c *gin.Context, member *models.Member) {
	auth.LoadSession(c).LogoutMember()
	c.JSON(http.StatusOK, OKResponse)
}

func MemberGetStatus(c *gin.Context, member *models.Member) {
	c.JSON(http.StatusOK, memberInfoFrom(member))
}

func MemberDelete(c *gin.Context, member *models.Member) {
	if err := member.Delete(); err != nil {
		respondError(c, err)
		return
	}
	auth.LoadSession(c).LogoutMember()
	c.JSON(http.StatusOK, OKResponse)
}

// MemberSetProfileImage replaces the caller's avatar. The upload is re-encoded
// as a bounded JPEG before it hits storage and the previous file is removed.
func MemberSetProfileImage(c *gin.Context, member *models.Member) {
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
	var thumb bytes.Buffer
	if _, err = utils.CreateThumb(profileImageSize, file, &thumb); err != nil {
		c.JSON(http.StatusBadRequest, Response{"broken image file"})
		return
	}
	path := "member/" + strconv.FormatUint(member.ID, 10) + "/" + uuid.NewString() + ".jpg"
	if _, err = bucketStorage.Save(path, &thumb); err != nil {
		c.JSON(http.StatusInternalServerError, Response{err.Error()})
		return
	}
	previous := member.ProfileImagePath
	if err = member.SetProfileImage(path); err != nil {
		_ = bucketStorage.Delete(path)
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	if previous != "" {
		_ = bucketStorage.Delete(previous)
	}
	c.JSON(http.StatusOK, memberInfoFrom(member))
}

func MemberImageFetch(c *gin.Context, member *models.Member) {
	r := MemberImageRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	target, err := models.FindActiveMember(r.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if target.ProfileImagePath == "" {
		c.JSON(http.StatusNotFound, Response{"no profile image"})
		return
	}
	bucketStorage := storage.GetDefaultStorage()
	if bucketStorage == nil {
		c.JSON(http.StatusInternalServerError, Response{"storage unavailable"})
		return
	}
	c.Header("cache-control", "private, max-age="+strconv.Itoa(utils.CacheImages))
	c.Header("content-type", "image/jpeg")
	bucketStorage.Serve(target.ProfileImagePath, c.Request, c.Writer)
}
