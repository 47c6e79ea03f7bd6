package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mkorotovs/pocketvine/internal/common"
)

func (a *App) Tags(ctx context.Context) {
	cu, err := a.users.CurrentUser(ctx)
	if errors.Is(err, common.ErrNotLoggedIn) {
		fmt.Fprintln(a.out, "Log in first.")
		return
	}
	if err != nil {
		a.log.Error(ctx, "failed to load current user", "error", err)
		return
	}
	if len(cu.SavedHashtags) == 0 {
		fmt.Fprintln(a.out, "No saved hashtags.")
		return
	}
	fmt.Fprintln(a.out, strings.Join(cu.SavedHashtags, " "))
}

func (a *App) SaveTag(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: savetag <#tag>")
		return
	}
	a.tagCmd(ctx, a.posts.SaveHashtag(ctx, args[0]))
}

func (a *App) DropTag(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: droptag <#tag>")
		return
	}
	a.tagCmd(ctx, a.posts.RemoveHashtag(ctx, args[0]))
}

func (a *App) tagCmd(ctx context.Context, err error) {
	switch {
	case errors.Is(err, common.ErrNotLoggedIn):
		fmt.Fprintln(a.out, "Log in first.")
	case err != nil:
		a.log.Error(ctx, "hashtag update failed", "error", err)
	default:
		a.Tags(ctx)
	}
}
