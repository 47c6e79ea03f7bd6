// Package demo seeds the store with a handful of accounts and posts so the
// app is explorable right after first start.
package demo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mkorotovs/pocketvine/internal/auth"
	"github.com/mkorotovs/pocketvine/internal/guardian"
	"github.com/mkorotovs/pocketvine/internal/logging"
	"github.com/mkorotovs/pocketvine/internal/models"
	"github.com/mkorotovs/pocketvine/internal/services"
)

// Accounts lists the seeded credentials for display after seeding.
var Accounts = []struct {
	Username string
	Password string
}{
	{"@demo", "demo123"},
	{"@john", "john123"},
	{"@sarah", "sarah123"},
}

// Seed populates an empty registry with the demo accounts. A non-empty
// registry is left untouched so seeding never clobbers real data.
// Reports whether seeding happened.
func Seed(ctx context.Context, g *guardian.Guardian, hasher *auth.PasswordHasher, log logging.Logger) (bool, error) {
	registry, err := g.ReadRegistry(ctx)
	if err != nil {
		return false, err
	}
	if len(registry) > 0 {
		log.Info(ctx, "demo data skipped, registry is not empty", "users", len(registry))
		return false, nil
	}

	now := time.Now().UTC()

	users := []*models.UserRecord{
		user(hasher, "@demo", "Demo User", "demo123",
			"This is a demo account for testing purposes!",
			now.Add(-24*time.Hour),
			[]string{"#welcome", "#testing", "#demo"},
			post("@demo", "Welcome to pocketvine! This is my first post. #welcome #firstpost",
				now.Add(-2*time.Hour), []string{"@john", "@sarah"}, nil),
			post("@demo", "Just testing the hashtag system! #testing #hashtags #demo",
				now.Add(-time.Hour), []string{"@john"}, []string{"@sarah"}),
			post("@demo", "This platform is looking great! Can't wait to see more features. #excited #social",
				now.Add(-30*time.Minute), []string{"@sarah"}, nil),
		),
		user(hasher, "@john", "John Smith", "john123",
			"Tech enthusiast and coffee lover",
			now.Add(-48*time.Hour),
			[]string{"#coffee", "#tech", "#coding"},
			post("@john", "Good morning everyone! Starting the day with some coffee. #morning #coffee",
				now.Add(-3*time.Hour), []string{"@demo", "@sarah"}, nil),
			post("@john", "Working on some exciting projects today! #coding #development #tech",
				now.Add(-45*time.Minute), []string{"@demo", "@sarah"}, nil),
		),
		user(hasher, "@sarah", "Sarah Johnson", "sarah123",
			"Designer | Artist | Nature lover",
			now.Add(-72*time.Hour),
			[]string{"#nature", "#art", "#design"},
			post("@sarah", "Beautiful sunset today! Nature never fails to amaze me. #sunset #nature #beautiful",
				now.Add(-4*time.Hour), []string{"@demo", "@john"}, nil),
		),
	}

	for _, u := range users {
		registry[u.Username] = u
	}

	if err := g.WriteRegistry(ctx, registry); err != nil {
		return false, err
	}
	log.Info(ctx, "demo data initialized", "users", len(users))
	return true, nil
}

func user(hasher *auth.PasswordHasher, username, fullname, password, bio string, createdAt time.Time, tags []string, posts ...*models.Post) *models.UserRecord {
	hash, err := hasher.Hash(password)
	if err != nil {
		// rand.Read failing is not a condition the demo seeder can recover from
		panic(fmt.Sprintf("demo: failed to hash password: %v", err))
	}
	// stored post order is newest first
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Timestamp.After(posts[j].Timestamp)
	})
	u := &models.UserRecord{
		Username:      username,
		Fullname:      fullname,
		Password:      hash,
		Bio:           bio,
		ProfileImage:  services.DefaultProfileImage,
		Posts:         posts,
		SavedHashtags: tags,
		CreatedAt:     createdAt,
	}
	u.RecomputeEngagement()
	return u
}

func post(author, content string, ts time.Time, likedBy, dislikedBy []string) *models.Post {
	if likedBy == nil {
		likedBy = []string{}
	}
	if dislikedBy == nil {
		dislikedBy = []string{}
	}
	return &models.Post{
		ID:         uuid.NewString(),
		Content:    content,
		Media:      []models.MediaAttachment{},
		Timestamp:  ts,
		AuthorID:   author,
		Likes:      len(likedBy),
		Dislikes:   len(dislikedBy),
		LikedBy:    likedBy,
		DislikedBy: dislikedBy,
	}
}
