package auth

import (
	"server/db"
	"server/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const memberIdKey = "id"

type Session struct {
	sessions.Session
}

func LoadSession(c *gin.Context) *Session {
	return &Session{
		Session: sessions.Default(c),
	}
}

func (s *Session) LoginMember(m *models.Member) {
	s.Set(memberIdKey, m.ID)
	s.Save()
}

func (s *Session) LogoutMember() {
	s.Delete(memberIdKey)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	s.Save()
}

// Member re-reads the session member's row. Deleted accounts come back with
// ID 0, same as missing sessions.
func (s *Session) Member() (member models.Member) {
	id := s.Get(memberIdKey)
	if id == nil {
		return
	}
	member.ID = id.(uint64)
	if db.Instance.First(&member, "id = ? and deleted = 0", member.ID).Error != nil {
		member = models.Member{}
	}
	return
}
