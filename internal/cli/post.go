package cli

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/mkorotovs/pocketvine/internal/common"
	"github.com/mkorotovs/pocketvine/internal/models"
)

func (a *App) Post(ctx context.Context) {
	content, err := GetMultiline(a.reader, "What's on your mind?", a.out)
	if err != nil {
		return
	}

	var media []models.MediaAttachment
	for {
		path, err := GetSimpleText(a.reader, "Attach a media file (empty to continue)", a.out)
		if err != nil || path == "" {
			break
		}
		att, err := loadAttachment(path)
		if err != nil {
			fmt.Fprintf(a.out, "Cannot attach %s: %v\n", path, err)
			continue
		}
		media = append(media, att)
	}

	post, err := a.posts.CreatePost(ctx, content, media)
	switch {
	case errors.Is(err, common.ErrEmptyPost):
		fmt.Fprintln(a.out, "Post content is empty.")
		return
	case errors.Is(err, common.ErrNotLoggedIn):
		fmt.Fprintln(a.out, "Log in first.")
		return
	case errors.Is(err, common.ErrStorageExhausted):
		fmt.Fprintln(a.out, "Storage is full and could not be freed. The post was not saved.")
		return
	case err != nil:
		a.log.Error(ctx, "failed to create post", "error", err)
		return
	}
	fmt.Fprintf(a.out, "Posted (%s).\n", post.ID)
}

// loadAttachment reads a file from disk into an inline attachment. Encoding
// and compression belong to the media subsystem; here the raw bytes are
// carried as-is with a best-effort MIME type from the extension.
func loadAttachment(path string) (models.MediaAttachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.MediaAttachment{}, err
	}
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return models.MediaAttachment{
		Name: filepath.Base(path),
		Type: mimeType,
		Data: string(data),
	}, nil
}

func (a *App) Feed(ctx context.Context) {
	feed, err := a.posts.Feed(ctx)
	if err != nil {
		a.log.Error(ctx, "failed to load feed", "error", err)
		return
	}
	if len(feed) == 0 {
		fmt.Fprintln(a.out, "Nothing here yet.")
		return
	}
	for _, p := range feed {
		a.printPost(p)
	}
}

func (a *App) Posts(ctx context.Context, args []string) {
	username := ""
	if len(args) > 0 {
		username = args[0]
	} else if cu, err := a.users.CurrentUser(ctx); err == nil {
		username = cu.Username
	} else {
		fmt.Fprintln(a.out, "Usage: posts <@username>")
		return
	}

	posts, err := a.posts.UserPosts(ctx, username)
	if errors.Is(err, common.ErrUserNotFound) {
		fmt.Fprintf(a.out, "No such user: %s\n", username)
		return
	}
	if err != nil {
		a.log.Error(ctx, "failed to load posts", "error", err)
		return
	}
	for _, p := range posts {
		a.printPost(p)
	}
}

func (a *App) Delete(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: delete <post-id>")
		return
	}
	err := a.posts.DeletePost(ctx, args[0])
	switch {
	case errors.Is(err, common.ErrPostNotFound):
		fmt.Fprintln(a.out, "Post not found.")
	case errors.Is(err, common.ErrNotPostOwner):
		fmt.Fprintln(a.out, "You can only delete your own posts.")
	case errors.Is(err, common.ErrNotLoggedIn):
		fmt.Fprintln(a.out, "Log in first.")
	case err != nil:
		a.log.Error(ctx, "failed to delete post", "error", err)
	default:
		fmt.Fprintln(a.out, "Deleted.")
	}
}

func (a *App) printPost(p *models.Post) {
	fmt.Fprintf(a.out, "[%s] %s  %s\n", p.ID, p.AuthorID, timeAgo(p.Timestamp))
	fmt.Fprintf(a.out, "  %s\n", p.Content)
	if len(p.Media) > 0 {
		for _, m := range p.Media {
			fmt.Fprintf(a.out, "  [media: %s (%s)]\n", m.Name, m.Type)
		}
	}
	fmt.Fprintf(a.out, "  %d likes, %d dislikes\n", p.Likes, p.Dislikes)
}

func timeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
