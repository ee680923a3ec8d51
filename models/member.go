package models

import (
	"errors"
	"server/db"
	"server/utils"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const saltSize = 60

type Member struct {
	ID               uint64 `gorm:"primaryKey"`
	CreatedAt        int64
	UpdatedAt        int64
	Nickname         string `gorm:"type:varchar(100);index:uniq_nickname,unique"`
	Email            string `gorm:"type:varchar(150);index:uniq_email,unique"`
	Password         string `gorm:"type:varchar(128)"`
	PassSalt         string `gorm:"type:varchar(200)"`
	ProfileImagePath string `gorm:"type:varchar(300)"`
	Deleted          bool   `gorm:"not null;default 0"`
	DeletedAt        int64
}

// DisplayName is what other members see next to posts and comments.
// Deleted accounts keep their rows (their content stays up) but lose the name.
func (m *Member) DisplayName() string {
	if m == nil || m.ID == 0 || m.Deleted {
		return "(unknown)"
	}
	return m.Nickname
}

func MemberCreate(nickname, email, plainTextPassword string) (m Member, err error) {
	m.Nickname = nickname
	m.Email = email
	m.PassSalt = utils.RandSalt(saltSize)
	m.Password = utils.Sha512String(plainTextPassword + m.PassSalt)
	err = db.Instance.Create(&m).Error
	if isDuplicateEntry(err) {
		return Member{}, Conflict("nickname or email is already taken")
	}
	return m, err
}

func MemberLogin(email, plainTextPassword string) (m Member, success bool) {
	result := db.Instance.First(&m, "email = ? and deleted = 0", email)
	if result.Error != nil {
		return Member{}, false
	}
	if m.Password != utils.Sha512String(plainTextPassword+m.PassSalt) {
		return Member{}, false
	}
	return m, true
}

func (m *Member) SetPassword(plainTextPassword string) {
	m.PassSalt = utils.RandSalt(saltSize)
	m.Password = utils.Sha512String(plainTextPassword + m.PassSalt)
}

// SetProfileImage points the account at its stored avatar. The caller owns
// cleaning up the previous file.
func (m *Member) SetProfileImage(path string) error {
	m.ProfileImagePath = path
	return db.Instance.Model(m).Update("profile_image_path", path).Error
}

// Delete soft-deletes the account. Posts and comments survive and render
// with an unknown author.
func (m *Member) Delete() error {
	if m.Deleted {
		return InvalidState("account is already deleted")
	}
	m.Deleted = true
	m.DeletedAt = time.Now().Unix()
	return db.Instance.Save(m).Error
}

// FindActiveMember is the exported lookup used by handlers.
func FindActiveMember(id uint64) (Member, error) {
	return findActiveMember(db.Instance, id)
}

// findActiveMember resolves an author/caller ID to a live account.
func findActiveMember(tx *gorm.DB, id uint64) (m Member, err error) {
	result := tx.First(&m, "id = ? and deleted = 0", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return m, NotFound("member not found")
		}
		return m, result.Error
	}
	return m, nil
}

func isDuplicateEntry(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLite driver reports unique violations without a typed error
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
