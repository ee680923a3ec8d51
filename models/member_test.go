package models

import (
	"testing"
)

func TestMemberCreateAndLogin(t *testing.T) {
	setupTestDB(t)
	member := createTestMember(t, "alice")
	if member.Password == "secret123" {
		t.Fatal("password stored in plain text")
	}

	got, ok := MemberLogin("alice@example.com", "secret123")
	if !ok || got.ID != member.ID {
		t.Fatalf("login failed for valid credentials")
	}
	if _, ok := MemberLogin("alice@example.com", "wrong"); ok {
		t.Error("login succeeded with a wrong password")
	}
	if _, ok := MemberLogin("nobody@example.com", "secret123"); ok {
		t.Error("login succeeded for unknown email")
	}
}

func TestMemberCreateDuplicate(t *testing.T) {
	setupTestDB(t)
	createTestMember(t, "alice")
	_, err := MemberCreate("alice", "alice2@example.com", "pw")
	wantKind(t, err, KindConflict)
	_, err = MemberCreate("alice2", "alice@example.com", "pw")
	wantKind(t, err, KindConflict)
}

func TestMemberDelete(t *testing.T) {
	setupTestDB(t)
	member := createTestMember(t, "bob")
	if err := member.Delete(); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	wantKind(t, member.Delete(), KindInvalidState)
	if _, ok := MemberLogin("bob@example.com", "secret123"); ok {
		t.Error("deleted member can still log in")
	}
}

func TestMemberProfileImage(t *testing.T) {
	setupTestDB(t)
	member := createTestMember(t, "carol")
	if member.ProfileImagePath != "" {
		t.Fatalf("new member has a profile image: %q", member.ProfileImagePath)
	}
	if err := member.SetProfileImage("member/1/avatar.jpg"); err != nil {
		t.Fatalf("SetProfileImage: %v", err)
	}
	got, err := FindActiveMember(member.ID)
	if err != nil {
		t.Fatalf("FindActiveMember: %v", err)
	}
	if got.ProfileImagePath != "member/1/avatar.jpg" {
		t.Errorf("ProfileImagePath = %q, want %q", got.ProfileImagePath, "member/1/avatar.jpg")
	}

	if err := member.SetProfileImage("member/1/other.jpg"); err != nil {
		t.Fatalf("SetProfileImage (replace): %v", err)
	}
	got, err = FindActiveMember(member.ID)
	if err != nil {
		t.Fatalf("FindActiveMember: %v", err)
	}
	if got.ProfileImagePath != "member/1/other.jpg" {
		t.Errorf("ProfileImagePath after replace = %q, want %q", got.ProfileImagePath, "member/1/other.jpg")
	}
}

func TestMemberDisplayName(t *testing.T) {
	tests := []struct {
		name   string
		member *Member
		want   string
	}{
		{"live member", &Member{ID: 1, Nickname: "carol"}, "carol"},
		{"deleted member", &Member{ID: 1, Nickname: "carol", Deleted: true}, "(unknown)"},
		{"missing member", &Member{}, "(unknown)"},
		{"nil", nil, "(unknown)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.member.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}
