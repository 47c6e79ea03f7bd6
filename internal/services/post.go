// This file implements PostService: post creation and deletion, store-wide
// vote toggling, hashtag saving, and feed assembly.
package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkorotovs/pocketvine/internal/common"
	"github.com/mkorotovs/pocketvine/internal/guardian"
	"github.com/mkorotovs/pocketvine/internal/logging"
	"github.com/mkorotovs/pocketvine/internal/models"
)

// PostService owns all post and vote mutations. Every operation requires an
// authenticated session and persists through the Guardian.
type PostService struct {
	guard *guardian.Guardian
	users *UserService
	log   logging.Logger
}

// NewPostService constructs a PostService.
func NewPostService(g *guardian.Guardian, users *UserService, log logging.Logger) *PostService {
	return &PostService{guard: g, users: users, log: log}
}

// CreatePost inserts a new post at the head of the author's sequence, so the
// stored order stays reverse-chronological by construction. Media arrives
// fully materialized from the media subsystem; no encoding happens here.
func (s *PostService) CreatePost(ctx context.Context, content string, media []models.MediaAttachment) (*models.Post, error) {
	cu, err := s.users.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, common.ErrEmptyPost
	}

	registry, err := s.guard.ReadRegistry(ctx)
	if err != nil {
		return nil, err
	}
	rec, ok := registry[cu.Username]
	if !ok {
		return nil, common.ErrNotLoggedIn
	}

	post := &models.Post{
		ID:         uuid.NewString(),
		Content:    content,
		Media:      append([]models.MediaAttachment(nil), media...),
		Timestamp:  time.Now().UTC(),
		AuthorID:   cu.Username,
		LikedBy:    []string{},
		DislikedBy: []string{},
	}
	rec.Posts = append([]*models.Post{post}, rec.Posts...)

	if err := s.guard.WriteRegistry(ctx, registry); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "post created", "username", cu.Username, "post_id", post.ID, "media", len(post.Media))
	return post.Clone(), nil
}

// DeletePost removes a post by id. Only the owner may delete a post.
func (s *PostService) DeletePost(ctx context.Context, postID string) error {
	cu, err := s.users.CurrentUser(ctx)
	if err != nil {
		return err
	}

	registry, err := s.guard.ReadRegistry(ctx)
	if err != nil {
		return err
	}

	post, owner := registry.FindPost(postID)
	if post == nil {
		return common.ErrPostNotFound
	}
	if owner.Username != cu.Username {
		return common.ErrNotPostOwner
	}

	for i, p := range owner.Posts {
		if p.ID == postID {
			owner.Posts = append(owner.Posts[:i], owner.Posts[i+1:]...)
			break
		}
	}
	owner.RecomputeEngagement()

	if err := s.guard.WriteRegistry(ctx, registry); err != nil {
		return err
	}

	s.log.Info(ctx, "post deleted", "username", cu.Username, "post_id", postID)
	return nil
}

// Like toggles the current user's like on a post, looked up store-wide.
func (s *PostService) Like(ctx context.Context, postID string) (*models.Post, error) {
	return s.vote(ctx, postID, (*models.Post).ToggleLike)
}

// Dislike toggles the current user's dislike on a post.
func (s *PostService) Dislike(ctx context.Context, postID string) (*models.Post, error) {
	return s.vote(ctx, postID, (*models.Post).ToggleDislike)
}

func (s *PostService) vote(ctx context.Context, postID string, toggle func(*models.Post, string)) (*models.Post, error) {
	cu, err := s.users.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	registry, err := s.guard.ReadRegistry(ctx)
	if err != nil {
		return nil, err
	}

	post, owner := registry.FindPost(postID)
	if post == nil {
		return nil, common.ErrPostNotFound
	}

	toggle(post, cu.Username)
	owner.RecomputeEngagement()

	if err := s.guard.WriteRegistry(ctx, registry); err != nil {
		return nil, err
	}
	return post.Clone(), nil
}

// SaveHashtag adds tag to the current user's saved set. A missing '#' prefix
// is added; saving an already-saved tag is a no-op.
func (s *PostService) SaveHashtag(ctx context.Context, tag string) error {
	return s.editHashtags(ctx, func(u *models.UserRecord) { u.SaveHashtag(normalizeTag(tag)) })
}

// RemoveHashtag drops tag from the current user's saved set.
func (s *PostService) RemoveHashtag(ctx context.Context, tag string) error {
	return s.editHashtags(ctx, func(u *models.UserRecord) { u.RemoveHashtag(normalizeTag(tag)) })
}

// editHashtags routes the change through UpdateUser so registry and session
// are persisted in the same logical operation.
func (s *PostService) editHashtags(ctx context.Context, edit func(*models.UserRecord)) error {
	cu, err := s.users.CurrentUser(ctx)
	if err != nil {
		return err
	}
	edit(cu)
	return s.users.UpdateUser(ctx, UserUpdate{SavedHashtags: &cu.SavedHashtags})
}

func normalizeTag(tag string) string {
	tag = strings.TrimSpace(tag)
	if !strings.HasPrefix(tag, "#") {
		tag = "#" + tag
	}
	return tag
}

// Feed returns every post of every user, newest first. Posts are clones;
// mutating them does not touch the registry.
func (s *PostService) Feed(ctx context.Context) ([]*models.Post, error) {
	registry, err := s.guard.ReadRegistry(ctx)
	if err != nil {
		return nil, err
	}

	var feed []*models.Post
	for _, user := range registry {
		for _, p := range user.Posts {
			feed = append(feed, p.Clone())
		}
	}
	sortPostsByTimeDesc(feed)
	return feed, nil
}

// UserPosts returns username's posts in stored order (newest first).
func (s *PostService) UserPosts(ctx context.Context, username string) ([]*models.Post, error) {
	registry, err := s.guard.ReadRegistry(ctx)
	if err != nil {
		return nil, err
	}
	rec, ok := registry[username]
	if !ok {
		return nil, common.ErrUserNotFound
	}

	posts := make([]*models.Post, len(rec.Posts))
	for i, p := range rec.Posts {
		posts[i] = p.Clone()
	}
	return posts, nil
}

// Profile returns a clone of username's record for profile viewing.
func (s *PostService) Profile(ctx context.Context, username string) (*models.UserRecord, error) {
	registry, err := s.guard.ReadRegistry(ctx)
	if err != nil {
		return nil, err
	}
	rec, ok := registry[username]
	if !ok {
		return nil, common.ErrUserNotFound
	}
	return rec.Clone(), nil
}

func sortPostsByTimeDesc(posts []*models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Timestamp.After(posts[j].Timestamp)
	})
}
