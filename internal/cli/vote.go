package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkorotovs/pocketvine/internal/common"
	"github.com/mkorotovs/pocketvine/internal/models"
)

func (a *App) Like(ctx context.Context, args []string) {
	a.voteCmd(ctx, args, "like", a.posts.Like)
}

func (a *App) Dislike(ctx context.Context, args []string) {
	a.voteCmd(ctx, args, "dislike", a.posts.Dislike)
}

func (a *App) voteCmd(ctx context.Context, args []string, name string, vote func(context.Context, string) (*models.Post, error)) {
	if len(args) == 0 {
		fmt.Fprintf(a.out, "Usage: %s <post-id>\n", name)
		return
	}

	post, err := vote(ctx, args[0])
	switch {
	case errors.Is(err, common.ErrNotLoggedIn):
		fmt.Fprintln(a.out, "Log in first.")
	case errors.Is(err, common.ErrPostNotFound):
		fmt.Fprintln(a.out, "Post not found.")
	case err != nil:
		a.log.Error(ctx, "vote failed", "op", name, "error", err)
	default:
		fmt.Fprintf(a.out, "%d likes, %d dislikes\n", post.Likes, post.Dislikes)
	}
}
