// Package models defines the persistent record types of the social store:
// user records, posts, media attachments, and the session pointer.
package models

import "time"

// UserRecord is the canonical account record stored in the registry.
// Username is the identity key and is immutable once created. Password holds
// an Argon2id PHC-encoded hash, never plaintext. Posts are kept newest first.
// TotalLikes, TotalDislikes and LikeDislikeRatio are derived aggregates;
// RecomputeEngagement refreshes them and they are never trusted as
// independently authoritative.
type UserRecord struct {
	Username         string    `json:"username"`
	Fullname         string    `json:"fullname"`
	Password         string    `json:"password"`
	Bio              string    `json:"bio"`
	ProfileImage     string    `json:"profileImage"`
	Posts            []*Post   `json:"posts"`
	SavedHashtags    []string  `json:"savedHashtags"`
	CreatedAt        time.Time `json:"createdAt"`
	TotalLikes       int       `json:"totalLikes"`
	TotalDislikes    int       `json:"totalDislikes"`
	LikeDislikeRatio float64   `json:"likeDislikeRatio"`
}

// Clone returns a deep copy of the record. Callers receive clones from the
// service layer so presentation code can never mutate the registry in place.
func (u *UserRecord) Clone() *UserRecord {
	if u == nil {
		return nil
	}
	c := *u
	c.Posts = make([]*Post, len(u.Posts))
	for i, p := range u.Posts {
		c.Posts[i] = p.Clone()
	}
	c.SavedHashtags = append([]string(nil), u.SavedHashtags...)
	return &c
}

// RecomputeEngagement refreshes the derived like/dislike aggregates from the
// user's posts. The ratio is a percentage rounded to one decimal place, or 0
// when the user has no votes at all.
func (u *UserRecord) RecomputeEngagement() {
	likes, dislikes := 0, 0
	for _, p := range u.Posts {
		likes += p.Likes
		dislikes += p.Dislikes
	}
	u.TotalLikes = likes
	u.TotalDislikes = dislikes
	if likes+dislikes > 0 {
		ratio := float64(likes) / float64(likes+dislikes) * 100
		u.LikeDislikeRatio = float64(int(ratio*10+0.5)) / 10
	} else {
		u.LikeDislikeRatio = 0
	}
}

// SaveHashtag appends tag to the saved set, preserving insertion order.
// Saving an already-saved tag is a no-op. Reports whether the set changed.
func (u *UserRecord) SaveHashtag(tag string) bool {
	for _, t := range u.SavedHashtags {
		if t == tag {
			return false
		}
	}
	u.SavedHashtags = append(u.SavedHashtags, tag)
	return true
}

// RemoveHashtag removes tag from the saved set. Reports whether the set changed.
func (u *UserRecord) RemoveHashtag(tag string) bool {
	for i, t := range u.SavedHashtags {
		if t == tag {
			u.SavedHashtags = append(u.SavedHashtags[:i], u.SavedHashtags[i+1:]...)
			return true
		}
	}
	return false
}

// Registry is the durable mapping of every known username to its record.
type Registry map[string]*UserRecord

// FindPost looks a post up store-wide by id and returns it together with the
// owning record, or (nil, nil) when no user carries the post.
func (r Registry) FindPost(id string) (*Post, *UserRecord) {
	for _, u := range r {
		for _, p := range u.Posts {
			if p.ID == id {
				return p, u
			}
		}
	}
	return nil, nil
}
