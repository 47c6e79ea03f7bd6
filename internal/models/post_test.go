package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestToggleLike_FullMatrix(t *testing.T) {
	p := &Post{ID: "p1", AuthorID: "@a"}

	// like from a fresh state
	p.ToggleLike("@b")
	require.Equal(t, 1, p.Likes)
	require.Equal(t, []string{"@b"}, p.LikedBy)

	// second like from the same user toggles off
	p.ToggleLike("@b")
	require.Equal(t, 0, p.Likes)
	require.Empty(t, p.LikedBy)

	// dislike after a like replaces it
	p.ToggleLike("@b")
	p.ToggleDislike("@b")
	require.Equal(t, 0, p.Likes)
	require.Equal(t, 1, p.Dislikes)
	require.Empty(t, p.LikedBy)
	require.Equal(t, []string{"@b"}, p.DislikedBy)

	// and back again
	p.ToggleLike("@b")
	require.Equal(t, 1, p.Likes)
	require.Equal(t, 0, p.Dislikes)
	require.Equal(t, []string{"@b"}, p.LikedBy)
	require.Empty(t, p.DislikedBy)
}

func TestToggleLike_IndependentVoters(t *testing.T) {
	p := &Post{ID: "p1"}
	p.ToggleLike("@b")
	p.ToggleLike("@c")
	p.ToggleDislike("@d")

	require.Equal(t, 2, p.Likes)
	require.Equal(t, 1, p.Dislikes)
	require.True(t, p.LikedByUser("@b"))
	require.True(t, p.LikedByUser("@c"))
	require.True(t, p.DislikedByUser("@d"))

	p.ToggleLike("@c")
	require.Equal(t, 1, p.Likes)
	require.False(t, p.LikedByUser("@c"))
	require.True(t, p.LikedByUser("@b"), "other voters must be unaffected")
}

func TestToggleDislike_CountNeverNegative(t *testing.T) {
	p := &Post{ID: "p1", DislikedBy: []string{"@b"}} // count desynced at 0
	p.ToggleDislike("@b")
	require.Equal(t, 0, p.Dislikes)
}

func TestRecomputeEngagement(t *testing.T) {
	u := &UserRecord{
		Username: "@a",
		Posts: []*Post{
			{Likes: 3, Dislikes: 1},
			{Likes: 0, Dislikes: 0},
			{Likes: 1, Dislikes: 3},
		},
	}
	u.RecomputeEngagement()
	require.Equal(t, 4, u.TotalLikes)
	require.Equal(t, 4, u.TotalDislikes)
	require.Equal(t, 50.0, u.LikeDislikeRatio)
}

func TestRecomputeEngagement_NoVotes(t *testing.T) {
	u := &UserRecord{Username: "@a", Posts: []*Post{{}}, LikeDislikeRatio: 99}
	u.RecomputeEngagement()
	require.Equal(t, 0.0, u.LikeDislikeRatio)
}

func TestRecomputeEngagement_OneDecimal(t *testing.T) {
	u := &UserRecord{Posts: []*Post{{Likes: 1, Dislikes: 2}}}
	u.RecomputeEngagement()
	require.Equal(t, 33.3, u.LikeDislikeRatio)
}

func TestUserRecord_Clone_IsDeep(t *testing.T) {
	u := &UserRecord{
		Username:      "@a",
		Posts:         []*Post{{ID: "p1", LikedBy: []string{"@b"}}},
		SavedHashtags: []string{"#x"},
	}
	c := u.Clone()
	c.Posts[0].LikedBy[0] = "@z"
	c.Posts[0].Content = "changed"
	c.SavedHashtags[0] = "#y"

	require.Equal(t, "@b", u.Posts[0].LikedBy[0])
	require.Equal(t, "", u.Posts[0].Content)
	require.Equal(t, "#x", u.SavedHashtags[0])
}

func TestSaveRemoveHashtag(t *testing.T) {
	u := &UserRecord{}
	require.True(t, u.SaveHashtag("#go"))
	require.True(t, u.SaveHashtag("#vine"))
	require.False(t, u.SaveHashtag("#go"), "duplicate save is a no-op")
	require.Equal(t, []string{"#go", "#vine"}, u.SavedHashtags, "insertion order preserved")

	require.True(t, u.RemoveHashtag("#go"))
	require.False(t, u.RemoveHashtag("#go"))
	require.Equal(t, []string{"#vine"}, u.SavedHashtags)
}

func TestRegistry_FindPost(t *testing.T) {
	now := time.Now()
	reg := Registry{
		"@a": {Username: "@a", Posts: []*Post{{ID: "p1", Timestamp: now}}},
		"@b": {Username: "@b", Posts: []*Post{{ID: "p2", Timestamp: now}}},
	}

	p, owner := reg.FindPost("p2")
	require.NotNil(t, p)
	require.Equal(t, "@b", owner.Username)

	p, owner = reg.FindPost("nope")
	require.Nil(t, p)
	require.Nil(t, owner)
}
