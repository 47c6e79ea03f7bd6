// Package cli implements the interactive pocketvine front end: a small REPL
// over the user/session store, the post service, and the storage guardian.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/mkorotovs/pocketvine/internal/auth"
	"github.com/mkorotovs/pocketvine/internal/config"
	"github.com/mkorotovs/pocketvine/internal/guardian"
	"github.com/mkorotovs/pocketvine/internal/kvstore"
	"github.com/mkorotovs/pocketvine/internal/logging"
	"github.com/mkorotovs/pocketvine/internal/services"
)

type App struct {
	config *config.Config
	log    logging.Logger
	store  kvstore.Repository
	guard  *guardian.Guardian
	users  *services.UserService
	posts  *services.PostService
	hasher *auth.PasswordHasher
	db     *sql.DB
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	store, db, err := kvstore.Open(ctx, c.DatabasePath, c.StoreQuotaBytes)
	if err != nil {
		return nil, err
	}

	app := &App{
		config: c,
		log:    log,
		store:  store,
		hasher: auth.NewPasswordHasher(nil),
		db:     db,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	// the reset escalation step needs an explicit decision from the user
	app.guard = guardian.New(store, log, app.confirmReset)
	app.users = services.NewUserService(app.guard, store, app.hasher,
		auth.NewTokenManager([]byte(c.SessionSecret), c.SessionTTL), log)
	app.posts = services.NewPostService(app.guard, app.users, log)

	return app, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

// confirmReset asks the user whether all posts and saved hashtags may be
// cleared to make room. Accounts survive either answer.
func (a *App) confirmReset(reason string) bool {
	fmt.Fprintf(a.out, "Storage is full: %s.\n", reason)
	fmt.Fprint(a.out, "Delete ALL posts and saved hashtags to make room? Accounts are kept. [y/N]\n> ")
	line, err := a.reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.users.IsLoggedIn(ctx)
}
