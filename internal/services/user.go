// Package services contains the application services of pocketvine.
// This file implements UserService: account lifecycle and the session
// contract. The registry is the single source of truth; the durable session
// record only points at it, so the current-user view can never silently
// diverge from persisted state.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mkorotovs/pocketvine/internal/auth"
	"github.com/mkorotovs/pocketvine/internal/common"
	"github.com/mkorotovs/pocketvine/internal/guardian"
	"github.com/mkorotovs/pocketvine/internal/kvstore"
	"github.com/mkorotovs/pocketvine/internal/logging"
	"github.com/mkorotovs/pocketvine/internal/models"
)

const minPasswordLength = 6

// DefaultProfileImage is assigned when registration supplies no image.
const DefaultProfileImage = "img/default-avatar.png"

// RegisterParams carries the fields of a registration request.
type RegisterParams struct {
	Username     string
	Fullname     string
	Password     string
	Bio          string
	ProfileImage string
}

// UserUpdate carries a partial profile update; nil fields are left untouched.
// The username is immutable and deliberately absent.
type UserUpdate struct {
	Fullname      *string
	Bio           *string
	ProfileImage  *string
	SavedHashtags *[]string
}

// UserService is the single authority for account lifecycle. All durable
// registry writes are delegated to the Guardian; the session key is written
// directly since it never carries enough data to trip the quota escalation.
type UserService struct {
	guard  *guardian.Guardian
	store  kvstore.Repository
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
	log    logging.Logger
}

// NewUserService constructs a UserService from its collaborators.
func NewUserService(g *guardian.Guardian, store kvstore.Repository, hasher *auth.PasswordHasher, tokens *auth.TokenManager, log logging.Logger) *UserService {
	return &UserService{guard: g, store: store, hasher: hasher, tokens: tokens, log: log}
}

// Register creates a new account with empty posts and hashtags and persists
// the registry. It does not log the user in; callers follow up with Login.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (*models.UserRecord, error) {
	if !strings.HasPrefix(p.Username, "@") {
		return nil, common.ErrInvalidUsername
	}
	if len(p.Password) < minPasswordLength {
		return nil, common.ErrWeakPassword
	}

	registry, err := s.guard.ReadRegistry(ctx)
	if err != nil {
		return nil, err
	}
	if _, exists := registry[p.Username]; exists {
		return nil, common.ErrDuplicateUsername
	}

	hash, err := s.hasher.Hash(p.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	image := p.ProfileImage
	if image == "" {
		image = DefaultProfileImage
	}

	rec := &models.UserRecord{
		Username:      p.Username,
		Fullname:      p.Fullname,
		Password:      hash,
		Bio:           p.Bio,
		ProfileImage:  image,
		Posts:         []*models.Post{},
		SavedHashtags: []string{},
		CreatedAt:     time.Now().UTC(),
	}
	registry[p.Username] = rec

	if err := s.guard.WriteRegistry(ctx, registry); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user registered", "username", p.Username)
	return rec.Clone(), nil
}

// Login verifies credentials and persists a fresh session record. The
// registry itself is left untouched. Missing users and wrong passwords are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.UserRecord, error) {
	registry, err := s.guard.ReadRegistry(ctx)
	if err != nil {
		return nil, err
	}

	rec, ok := registry[username]
	if !ok {
		return nil, common.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(rec.Password, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	token, err := s.tokens.Issue(username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	sess := models.Session{Username: username, Token: token, LoggedInAt: time.Now().UTC()}
	if err := s.writeSession(ctx, &sess); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user logged in", "username", username)
	return rec.Clone(), nil
}

// Logout clears the session record. Logging out while anonymous is a no-op.
func (s *UserService) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, kvstore.KeySession); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// IsLoggedIn reports whether a valid session points at an existing account.
func (s *UserService) IsLoggedIn(ctx context.Context) bool {
	sess := s.session(ctx)
	if sess == nil {
		return false
	}
	registry, err := s.guard.ReadRegistry(ctx)
	if err != nil {
		return false
	}
	_, ok := registry[sess.Username]
	return ok
}

// CurrentUser resolves the session against the registry and returns a deep
// clone of the record, regenerated on every read. Mutations of the returned
// value do not persist; UpdateUser is the only sanctioned write path.
func (s *UserService) CurrentUser(ctx context.Context) (*models.UserRecord, error) {
	sess := s.session(ctx)
	if sess == nil {
		return nil, common.ErrNotLoggedIn
	}

	registry, err := s.guard.ReadRegistry(ctx)
	if err != nil {
		return nil, err
	}
	rec, ok := registry[sess.Username]
	if !ok {
		// the account vanished underneath the session (reset, corruption wipe)
		return nil, common.ErrNotLoggedIn
	}
	return rec.Clone(), nil
}

// UpdateUser merges the given fields into the current user's registry entry
// and persists the registry and the session in the same logical operation.
func (s *UserService) UpdateUser(ctx context.Context, upd UserUpdate) error {
	sess := s.session(ctx)
	if sess == nil {
		return common.ErrNotLoggedIn
	}

	registry, err := s.guard.ReadRegistry(ctx)
	if err != nil {
		return err
	}
	rec, ok := registry[sess.Username]
	if !ok {
		return common.ErrNotLoggedIn
	}

	if upd.Fullname != nil {
		rec.Fullname = *upd.Fullname
	}
	if upd.Bio != nil {
		rec.Bio = *upd.Bio
	}
	if upd.ProfileImage != nil {
		rec.ProfileImage = *upd.ProfileImage
	}
	if upd.SavedHashtags != nil {
		rec.SavedHashtags = append([]string(nil), (*upd.SavedHashtags)...)
	}

	if err := s.guard.WriteRegistry(ctx, registry); err != nil {
		return err
	}
	return s.writeSession(ctx, sess)
}

// session loads and validates the durable session record. A corrupted blob or
// a stale token is treated as anonymous; corrupted content is wiped.
func (s *UserService) session(ctx context.Context) *models.Session {
	data, err := s.store.Get(ctx, kvstore.KeySession)
	if err != nil || data == nil {
		return nil
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.log.Error(ctx, "session blob is corrupted, clearing", "error", err)
		_ = s.store.Delete(ctx, kvstore.KeySession)
		return nil
	}

	username, err := s.tokens.Verify(sess.Token)
	if err != nil || username != sess.Username {
		_ = s.store.Delete(ctx, kvstore.KeySession)
		return nil
	}
	return &sess
}

func (s *UserService) writeSession(ctx context.Context, sess *models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}
	if err := s.store.Set(ctx, kvstore.KeySession, data); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}
