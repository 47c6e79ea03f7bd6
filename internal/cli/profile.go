package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkorotovs/pocketvine/internal/common"
	"github.com/mkorotovs/pocketvine/internal/services"
)

func (a *App) Profile(ctx context.Context, args []string) {
	username := ""
	if len(args) > 0 {
		username = args[0]
	} else if cu, err := a.users.CurrentUser(ctx); err == nil {
		username = cu.Username
	} else {
		fmt.Fprintln(a.out, "Usage: profile <@username>")
		return
	}

	rec, err := a.posts.Profile(ctx, username)
	if errors.Is(err, common.ErrUserNotFound) {
		fmt.Fprintf(a.out, "No such user: %s\n", username)
		return
	}
	if err != nil {
		a.log.Error(ctx, "failed to load profile", "error", err)
		return
	}

	fmt.Fprintf(a.out, "%s (%s)\n", rec.Username, rec.Fullname)
	if rec.Bio != "" {
		fmt.Fprintf(a.out, "%s\n", rec.Bio)
	}
	fmt.Fprintf(a.out, "Joined %s, %d posts\n", rec.CreatedAt.Format("Jan 2, 2006"), len(rec.Posts))
	fmt.Fprintf(a.out, "Engagement: %d likes / %d dislikes (%.1f%%)\n",
		rec.TotalLikes, rec.TotalDislikes, rec.LikeDislikeRatio)
}

func (a *App) Update(ctx context.Context) {
	if !a.isLoggedIn(ctx) {
		fmt.Fprintln(a.out, "Log in first.")
		return
	}

	fullname, err := GetSimpleText(a.reader, "New full name (empty to keep)", a.out)
	if err != nil {
		return
	}
	bio, err := GetSimpleText(a.reader, "New bio (empty to keep)", a.out)
	if err != nil {
		return
	}

	upd := services.UserUpdate{}
	if fullname != "" {
		upd.Fullname = &fullname
	}
	if bio != "" {
		upd.Bio = &bio
	}
	if upd.Fullname == nil && upd.Bio == nil {
		fmt.Fprintln(a.out, "Nothing to update.")
		return
	}

	if err := a.users.UpdateUser(ctx, upd); err != nil {
		a.log.Error(ctx, "profile update failed", "error", err)
		return
	}
	fmt.Fprintln(a.out, "Profile updated.")
}
