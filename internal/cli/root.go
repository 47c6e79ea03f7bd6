package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus(ctx context.Context) string {
	cu, err := a.users.CurrentUser(ctx)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("(%s)", cu.Username)
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to pocketvine (type 'help' for commands)")
	scanner := bufio.NewScanner(a.reader)

	for {
		fmt.Fprintf(a.out, "vine %s> ", a.getStatus(ctx))
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				fmt.Fprintln(a.out, "Available commands: post, feed, posts, like, dislike, delete, tags, savetag, droptag, profile, update, whoami, usage, validate, theme, logout, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: register, login, feed, profile, seed, usage, validate, theme, exit")
			}

		case "register":
			a.Register(ctx)

		case "login":
			a.Login(ctx)

		case "logout":
			a.Logout(ctx)

		case "whoami":
			a.Whoami(ctx)

		case "post":
			a.Post(ctx)

		case "feed":
			a.Feed(ctx)

		case "posts":
			a.Posts(ctx, args)

		case "like":
			a.Like(ctx, args)

		case "dislike":
			a.Dislike(ctx, args)

		case "delete":
			a.Delete(ctx, args)

		case "tags":
			a.Tags(ctx)

		case "savetag":
			a.SaveTag(ctx, args)

		case "droptag":
			a.DropTag(ctx, args)

		case "profile":
			a.Profile(ctx, args)

		case "update":
			a.Update(ctx)

		case "usage":
			a.Usage(ctx)

		case "validate":
			a.Validate(ctx)

		case "theme":
			a.Theme(ctx, args)

		case "seed":
			a.Seed(ctx)

		case "exit", "quit":
			return

		default:
			fmt.Fprintf(a.out, "Unknown command: %s\n", cmd)
		}
	}
}
