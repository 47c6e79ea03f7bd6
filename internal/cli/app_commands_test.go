package cli

import (
	"bufio"
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/mkorotovs/pocketvine/internal/auth"
	"github.com/mkorotovs/pocketvine/internal/config"
	"github.com/mkorotovs/pocketvine/internal/guardian"
	"github.com/mkorotovs/pocketvine/internal/kvstore"
	"github.com/mkorotovs/pocketvine/internal/logging"
	"github.com/mkorotovs/pocketvine/internal/services"
)

var dbSeq int

var testHashParams = &auth.Argon2Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

// newTestApp builds an App over an in-memory store so command handlers can
// be exercised end to end without a terminal.
func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	dbSeq++
	db, err := sql.Open("sqlite", fmt.Sprintf("file:cli_test_%d?mode=memory&cache=shared", dbSeq))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	store := kvstore.NewSQLiteRepository(db, 0)
	hasher := auth.NewPasswordHasher(testHashParams)

	var out bytes.Buffer
	app := &App{
		config: &config.Config{},
		log:    log,
		store:  store,
		hasher: hasher,
		db:     db,
		out:    &out,
	}
	app.guard = guardian.New(store, log, app.confirmReset)
	app.users = services.NewUserService(app.guard, store, hasher,
		auth.NewTokenManager([]byte("test-secret"), time.Hour), log)
	app.posts = services.NewPostService(app.guard, app.users, log)
	return app, &out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) {
		return []byte(pw), nil
	}
}

func TestRegisterCommand_LogsIn(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()
	stubPassword(t, "secret1")

	app.reader = readerFromLines("@alice", "Alice", "likes go")
	app.Register(ctx)

	require.Contains(t, out.String(), "Welcome, @alice!")
	require.True(t, app.isLoggedIn(ctx))
}

func TestRegisterCommand_DuplicateUsername(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()
	stubPassword(t, "secret1")

	app.reader = readerFromLines("@alice", "Alice", "")
	app.Register(ctx)
	out.Reset()

	app.reader = readerFromLines("@alice", "Another Alice", "")
	app.Register(ctx)

	require.Contains(t, out.String(), "username already exists")
}

func TestLoginCommand_WrongPassword(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()
	stubPassword(t, "secret1")

	app.reader = readerFromLines("@alice", "Alice", "")
	app.Register(ctx)
	app.Logout(ctx)
	out.Reset()

	stubPassword(t, "wrong")
	app.reader = readerFromLines("@alice")
	app.Login(ctx)

	require.Contains(t, out.String(), "Invalid username or password.")
	require.False(t, app.isLoggedIn(ctx))
}

func TestPostAndFeedCommands(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()
	stubPassword(t, "secret1")

	app.reader = readerFromLines("@alice", "Alice", "")
	app.Register(ctx)
	out.Reset()

	// post body ends with a blank line, then one empty answer for attachments
	app.reader = readerFromLines("hello vine", "", "")
	app.Post(ctx)
	require.Contains(t, out.String(), "Posted (")

	out.Reset()
	app.Feed(ctx)
	require.Contains(t, out.String(), "hello vine")
	require.Contains(t, out.String(), "@alice")
}

func TestVoteCommands(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()
	stubPassword(t, "secret1")

	app.reader = readerFromLines("@alice", "Alice", "")
	app.Register(ctx)
	app.reader = readerFromLines("voteworthy", "", "")
	app.Post(ctx)

	feed, err := app.posts.Feed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)

	out.Reset()
	app.Like(ctx, []string{feed[0].ID})
	require.Contains(t, out.String(), "1 likes, 0 dislikes")

	out.Reset()
	app.Dislike(ctx, []string{feed[0].ID})
	require.Contains(t, out.String(), "0 likes, 1 dislikes")

	out.Reset()
	app.Like(ctx, []string{"no-such-post"})
	require.Contains(t, out.String(), "Post not found.")
}

func TestHashtagCommands(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()
	stubPassword(t, "secret1")

	app.reader = readerFromLines("@alice", "Alice", "")
	app.Register(ctx)
	out.Reset()

	app.SaveTag(ctx, []string{"golang"})
	require.Contains(t, out.String(), "#golang")

	out.Reset()
	app.DropTag(ctx, []string{"#golang"})
	require.Contains(t, out.String(), "No saved hashtags.")
}

func TestWhoamiCommand_Anonymous(t *testing.T) {
	app, out := newTestApp(t)
	app.Whoami(context.Background())
	require.Contains(t, out.String(), "Not logged in.")
}

func TestUsageCommand(t *testing.T) {
	app, out := newTestApp(t)
	app.Usage(context.Background())
	require.Contains(t, out.String(), "Storage usage:")
	require.Contains(t, out.String(), "ok")
}

func TestThemeCommand(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()

	app.Theme(ctx, nil)
	require.Contains(t, out.String(), "No theme set.")

	out.Reset()
	app.Theme(ctx, []string{"dark"})
	app.Theme(ctx, nil)
	require.Contains(t, out.String(), "dark")
}

func TestSeedCommand(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()

	app.Seed(ctx)
	require.Contains(t, out.String(), "Demo data initialized.")
	require.Contains(t, out.String(), "@demo / demo123")

	out.Reset()
	app.Seed(ctx)
	require.Contains(t, out.String(), "seeding skipped")
}

func TestRootREPL_UnknownAndExit(t *testing.T) {
	app, out := newTestApp(t)
	app.reader = readerFromLines("foobar", "help", "exit")
	app.Root(context.Background())
	require.Contains(t, out.String(), "Unknown command: foobar")
	require.Contains(t, out.String(), "register, login")
}
