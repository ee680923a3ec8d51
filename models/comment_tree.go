package models

import "sort"

// CommentNode is one top-level comment together with its replies, ready for
// presentation. Deleted comments are kept as nodes so that live replies under
// them stay reachable; redacting their content is the view layer's job.
type CommentNode struct {
	Comment  Comment
	Children []Comment
}

// BuildCommentTree turns the flat comment set of one post into an ordered
// two-level thread. Top-level comments and the replies under each of them are
// ordered by creation time ascending, comment ID breaking ties (timestamps
// are unix seconds, so ties are common). Replies whose parent is not in the
// input are dropped.
//
// Pure function: no I/O, same input gives the same output.
func BuildCommentTree(comments []Comment) []CommentNode {
	roots := make([]Comment, 0, len(comments))
	replies := make([]Comment, 0)
	for _, c := range comments {
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			replies = append(replies, c)
		}
	}
	sortByCreation(roots)
	sortByCreation(replies)

	nodes := make([]CommentNode, 0, len(roots))
	index := make(map[uint64]int, len(roots))
	for i, root := range roots {
		nodes = append(nodes, CommentNode{Comment: root})
		index[root.ID] = i
	}
	for _, reply := range replies {
		i, ok := index[*reply.ParentID]
		if !ok {
			// Dangling parent reference - shouldn't happen with the
			// two-level invariant, but don't fail the whole thread
			continue
		}
		nodes[i].Children = append(nodes[i].Children, reply)
	}
	return nodes
}

// flattenCommentTree is the inverse of BuildCommentTree for a well-formed
// tree: roots and their children back in one flat list.
func flattenCommentTree(nodes []CommentNode) []Comment {
	flat := make([]Comment, 0, len(nodes))
	for _, node := range nodes {
		flat = append(flat, node.Comment)
		flat = append(flat, node.Children...)
	}
	return flat
}

func sortByCreation(comments []Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		if comments[i].CreatedAt != comments[j].CreatedAt {
			return comments[i].CreatedAt < comments[j].CreatedAt
		}
		return comments[i].ID < comments[j].ID
	})
}
