package cli

import (
	"context"
	"fmt"

	"github.com/mkorotovs/pocketvine/internal/demo"
	"github.com/mkorotovs/pocketvine/internal/guardian"
	"github.com/mkorotovs/pocketvine/internal/kvstore"
)

func (a *App) Usage(ctx context.Context) {
	usage, err := a.guard.CheckUsage(ctx)
	if err != nil {
		a.log.Error(ctx, "usage check failed", "error", err)
		return
	}
	mb := float64(usage.UsedBytes) / (1024 * 1024)
	fmt.Fprintf(a.out, "Storage usage: %.2f MB (%s)\n", mb, usage.Level)
	switch usage.Level {
	case guardian.UsageWarning:
		fmt.Fprintln(a.out, "Storage is getting full. Consider cleaning up old posts.")
	case guardian.UsageCritical:
		fmt.Fprintln(a.out, "Storage is critically full. Please clean up old posts.")
	}
}

func (a *App) Validate(ctx context.Context) {
	if a.guard.Validate(ctx) {
		fmt.Fprintln(a.out, "Storage is healthy.")
		return
	}
	fmt.Fprintln(a.out, "Storage was corrupted and has been cleared.")
}

func (a *App) Theme(ctx context.Context, args []string) {
	if len(args) > 0 {
		if err := a.store.Set(ctx, kvstore.KeyTheme, []byte(args[0])); err != nil {
			a.log.Error(ctx, "failed to save theme", "error", err)
		}
		return
	}
	theme, err := a.store.Get(ctx, kvstore.KeyTheme)
	if err != nil {
		a.log.Error(ctx, "failed to read theme", "error", err)
		return
	}
	if theme == nil {
		fmt.Fprintln(a.out, "No theme set.")
		return
	}
	fmt.Fprintln(a.out, string(theme))
}

func (a *App) Seed(ctx context.Context) {
	seeded, err := demo.Seed(ctx, a.guard, a.hasher, a.log)
	if err != nil {
		a.log.Error(ctx, "seeding failed", "error", err)
		return
	}
	if !seeded {
		fmt.Fprintln(a.out, "Store already has users, seeding skipped.")
		return
	}
	fmt.Fprintln(a.out, "Demo data initialized. Available accounts:")
	for _, acc := range demo.Accounts {
		fmt.Fprintf(a.out, "  %s / %s\n", acc.Username, acc.Password)
	}
}
