package models

import "time"

// MediaAttachment is an inline media blob attached to a post. Data holds the
// already-encoded payload (the media subsystem compresses and encodes before
// the store is ever entered); the store does no encoding of its own.
type MediaAttachment struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data string `json:"data"`
}

// Post is a single user post. IDs are unique across the whole store, not only
// within the owning user, because votes look posts up store-wide. AuthorID
// duplicates the owning record's username for exactly that reason.
// LikedBy and DislikedBy are mutually exclusive per user.
type Post struct {
	ID         string            `json:"id"`
	Content    string            `json:"content"`
	Media      []MediaAttachment `json:"media"`
	Timestamp  time.Time         `json:"timestamp"`
	AuthorID   string            `json:"authorId"`
	Likes      int               `json:"likes"`
	Dislikes   int               `json:"dislikes"`
	LikedBy    []string          `json:"likedBy"`
	DislikedBy []string          `json:"dislikedBy"`
}

// Clone returns a deep copy of the post.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	c := *p
	c.Media = append([]MediaAttachment(nil), p.Media...)
	c.LikedBy = append([]string(nil), p.LikedBy...)
	c.DislikedBy = append([]string(nil), p.DislikedBy...)
	return &c
}

// ToggleLike records a like from username. A second like from the same user
// toggles the like off. Liking a post the user has disliked removes the
// dislike first. Counts never go below zero.
func (p *Post) ToggleLike(username string) {
	if contains(p.LikedBy, username) {
		p.LikedBy = remove(p.LikedBy, username)
		p.Likes = max(p.Likes-1, 0)
		return
	}
	p.LikedBy = append(p.LikedBy, username)
	p.Likes++
	if contains(p.DislikedBy, username) {
		p.DislikedBy = remove(p.DislikedBy, username)
		p.Dislikes = max(p.Dislikes-1, 0)
	}
}

// ToggleDislike records a dislike from username, mirroring ToggleLike.
func (p *Post) ToggleDislike(username string) {
	if contains(p.DislikedBy, username) {
		p.DislikedBy = remove(p.DislikedBy, username)
		p.Dislikes = max(p.Dislikes-1, 0)
		return
	}
	p.DislikedBy = append(p.DislikedBy, username)
	p.Dislikes++
	if contains(p.LikedBy, username) {
		p.LikedBy = remove(p.LikedBy, username)
		p.Likes = max(p.Likes-1, 0)
	}
}

// LikedByUser reports whether username currently likes the post.
func (p *Post) LikedByUser(username string) bool { return contains(p.LikedBy, username) }

// DislikedByUser reports whether username currently dislikes the post.
func (p *Post) DislikedByUser(username string) bool { return contains(p.DislikedBy, username) }

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func remove(s []string, v string) []string {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
