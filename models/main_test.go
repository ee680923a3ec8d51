package models

import (
	"server/db"
	"testing"
)

// Each test gets its own in-memory SQLite database, named after the test so
// parallel packages can't collide.
func setupTestDB(t *testing.T) {
	t.Helper()
	db.InitSQLite("file:" + t.Name() + "?mode=memory&cache=shared")
	Init()
}

func createTestMember(t *testing.T, nickname string) Member {
	t.Helper()
	member, err := MemberCreate(nickname, nickname+"@example.com", "secret123")
	if err != nil {
		t.Fatalf("MemberCreate(%s): %v", nickname, err)
	}
	return member
}

func createTestPost(t *testing.T, authorID uint64) Post {
	t.Helper()
	post, err := PostCreate(authorID, "a title", "some content")
	if err != nil {
		t.Fatalf("PostCreate: %v", err)
	}
	return post
}

func wantKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error of kind %d, got nil", kind)
	}
	got, ok := KindOf(err)
	if !ok {
		t.Fatalf("expected error of kind %d, got untyped error: %v", kind, err)
	}
	if got != kind {
		t.Fatalf("error kind = %d, want %d (%v)", got, kind, err)
	}
}

func reloadPost(t *testing.T, id uint64) Post {
	t.Helper()
	var post Post
	if err := db.Instance.First(&post, "id = ?", id).Error; err != nil {
		t.Fatalf("reloading post %d: %v", id, err)
	}
	return post
}
