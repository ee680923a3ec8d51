package models

import (
	"server/db"
	"testing"
)

func TestCommentLifecycle(t *testing.T) {
	setupTestDB(t)
	author := createTestMember(t, "author")
	other := createTestMember(t, "other")
	post := createTestPost(t, author.ID)

	comment, err := CreateComment(post.ID, author.ID, "first!")
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if comment.ParentID != nil {
		t.Errorf("top-level comment has a parent: %v", *comment.ParentID)
	}
	if comment.Member.Nickname != "author" {
		t.Errorf("comment author = %q, want author", comment.Member.Nickname)
	}

	reply, err := CreateReply(post.ID, comment.ID, other.ID, "me too")
	if err != nil {
		t.Fatalf("CreateReply: %v", err)
	}
	if reply.ParentID == nil || *reply.ParentID != comment.ID {
		t.Errorf("reply parent = %v, want %d", reply.ParentID, comment.ID)
	}

	updated, err := UpdateComment(comment.ID, author.ID, "first, edited")
	if err != nil {
		t.Fatalf("UpdateComment: %v", err)
	}
	if updated.Content != "first, edited" {
		t.Errorf("content = %q after update", updated.Content)
	}
	if got := reloadPost(t, post.ID).CommentCount; got != 2 {
		t.Errorf("comment count after content edit = %d, want 2 (edits must not recount)", got)
	}

	if err := DeleteComment(reply.ID, other.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	if got := reloadPost(t, post.ID).CommentCount; got != 1 {
		t.Errorf("comment count after delete = %d, want 1", got)
	}
}

func TestCommentAuthorization(t *testing.T) {
	setupTestDB(t)
	author := createTestMember(t, "author")
	stranger := createTestMember(t, "stranger")
	post := createTestPost(t, author.ID)
	comment, err := CreateComment(post.ID, author.ID, "mine")
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	_, err = UpdateComment(comment.ID, stranger.ID, "hijacked")
	wantKind(t, err, KindForbidden)
	wantKind(t, DeleteComment(comment.ID, stranger.ID), KindForbidden)

	// The comment must be left untouched
	fresh, err := findCommentByID(db.Instance, comment.ID, true)
	if err != nil {
		t.Fatalf("findCommentByID: %v", err)
	}
	if fresh.Content != "mine" || fresh.Deleted {
		t.Errorf("comment modified by a foreign caller: %+v", fresh)
	}
}

func TestCommentDeleteIsFinal(t *testing.T) {
	setupTestDB(t)
	author := createTestMember(t, "author")
	post := createTestPost(t, author.ID)
	comment, err := CreateComment(post.ID, author.ID, "short-lived")
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	if err := DeleteComment(comment.ID, author.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	wantKind(t, DeleteComment(comment.ID, author.ID), KindInvalidState)
	_, err = UpdateComment(comment.ID, author.ID, "necromancy")
	wantKind(t, err, KindInvalidState)
}

func TestCreateCommentPreconditions(t *testing.T) {
	setupTestDB(t)
	author := createTestMember(t, "author")
	post := createTestPost(t, author.ID)

	_, err := CreateComment(post.ID, 9999, "ghost author")
	wantKind(t, err, KindNotFound)

	_, err = CreateComment(9999, author.ID, "ghost post")
	wantKind(t, err, KindNotFound)

	deletedAuthor := createTestMember(t, "leaver")
	if err := deletedAuthor.Delete(); err != nil {
		t.Fatalf("member delete: %v", err)
	}
	_, err = CreateComment(post.ID, deletedAuthor.ID, "from beyond")
	wantKind(t, err, KindNotFound)

	if err := PostDelete(post.ID, author.ID); err != nil {
		t.Fatalf("PostDelete: %v", err)
	}
	_, err = CreateComment(post.ID, author.ID, "on a deleted post")
	wantKind(t, err, KindNotFound)
}

func TestCreateReplyPreconditions(t *testing.T) {
	setupTestDB(t)
	author := createTestMember(t, "author")
	post := createTestPost(t, author.ID)
	otherPost := createTestPost(t, author.ID)
	parent, err := CreateComment(post.ID, author.ID, "parent")
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	_, err = CreateReply(post.ID, 9999, author.ID, "no such parent")
	wantKind(t, err, KindNotFound)

	_, err = CreateReply(otherPost.ID, parent.ID, author.ID, "wrong post")
	wantKind(t, err, KindInvalidState)

	reply, err := CreateReply(post.ID, parent.ID, author.ID, "level two")
	if err != nil {
		t.Fatalf("CreateReply: %v", err)
	}
	_, err = CreateReply(post.ID, reply.ID, author.ID, "level three")
	wantKind(t, err, KindInvalidState)

	if err := DeleteComment(parent.ID, author.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	_, err = CreateReply(post.ID, parent.ID, author.ID, "to the deleted")
	wantKind(t, err, KindInvalidState)
}

func TestCommentCountConverges(t *testing.T) {
	setupTestDB(t)
	author := createTestMember(t, "author")
	post := createTestPost(t, author.ID)

	var created []Comment
	for i := 0; i < 5; i++ {
		comment, err := CreateComment(post.ID, author.ID, "n")
		if err != nil {
			t.Fatalf("CreateComment #%d: %v", i, err)
		}
		created = append(created, comment)
	}
	for i := 0; i < 2; i++ {
		reply, err := CreateReply(post.ID, created[i].ID, author.ID, "r")
		if err != nil {
			t.Fatalf("CreateReply #%d: %v", i, err)
		}
		created = append(created, reply)
	}
	if got := reloadPost(t, post.ID).CommentCount; got != 7 {
		t.Fatalf("count after 7 creates = %d", got)
	}
	for i := 0; i < 3; i++ {
		if err := DeleteComment(created[i].ID, author.ID); err != nil {
			t.Fatalf("DeleteComment #%d: %v", i, err)
		}
	}
	if got := reloadPost(t, post.ID).CommentCount; got != 4 {
		t.Errorf("count after 7 creates and 3 deletes = %d, want 4", got)
	}
}

// The worked thread example: C1 (top, t=1), C2 (reply to C1, t=2), C3 (top,
// t=3). Deleting C1 keeps it in the tree as an anchor for C2.
func TestListCommentsThread(t *testing.T) {
	setupTestDB(t)
	author := createTestMember(t, "author")
	post := createTestPost(t, author.ID)

	c1 := Comment{PostID: post.ID, MemberID: author.ID, Content: "C1", CreatedAt: 1}
	if err := db.Instance.Create(&c1).Error; err != nil {
		t.Fatal(err)
	}
	c2 := Comment{PostID: post.ID, MemberID: author.ID, Content: "C2", CreatedAt: 2, ParentID: &c1.ID}
	if err := db.Instance.Create(&c2).Error; err != nil {
		t.Fatal(err)
	}
	c3 := Comment{PostID: post.ID, MemberID: author.ID, Content: "C3", CreatedAt: 3}
	if err := db.Instance.Create(&c3).Error; err != nil {
		t.Fatal(err)
	}

	nodes, err := ListComments(post.ID)
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("roots = %d, want 2", len(nodes))
	}
	if nodes[0].Comment.ID != c1.ID || nodes[1].Comment.ID != c3.ID {
		t.Fatalf("root order = [%d %d], want [%d %d]", nodes[0].Comment.ID, nodes[1].Comment.ID, c1.ID, c3.ID)
	}
	if len(nodes[0].Children) != 1 || nodes[0].Children[0].ID != c2.ID {
		t.Fatalf("C1 children = %+v, want [C2]", nodes[0].Children)
	}
	if len(nodes[1].Children) != 0 {
		t.Fatalf("C3 children = %+v, want none", nodes[1].Children)
	}

	if err := DeleteComment(c1.ID, author.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	nodes, err = ListComments(post.ID)
	if err != nil {
		t.Fatalf("ListComments after delete: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("roots after delete = %d, want 2", len(nodes))
	}
	if !nodes[0].Comment.Deleted {
		t.Errorf("deleted C1 should still be the first root, flagged deleted")
	}
	if len(nodes[0].Children) != 1 || nodes[0].Children[0].ID != c2.ID {
		t.Errorf("C2 lost its anchor after C1 was deleted")
	}
	if got := reloadPost(t, post.ID).CommentCount; got != 2 {
		t.Errorf("count after deleting C1 = %d, want 2", got)
	}
}

func TestListCommentsMissingPost(t *testing.T) {
	setupTestDB(t)
	_, err := ListComments(12345)
	wantKind(t, err, KindNotFound)

	// A soft-deleted post is just as gone as an absent one
	author := createTestMember(t, "author")
	post := createTestPost(t, author.ID)
	if _, err := CreateComment(post.ID, author.ID, "soon orphaned"); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if err := PostDelete(post.ID, author.ID); err != nil {
		t.Fatalf("PostDelete: %v", err)
	}
	_, err = ListComments(post.ID)
	wantKind(t, err, KindNotFound)
}
