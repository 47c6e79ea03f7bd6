// Package guardian makes the durable store resilient to quota exhaustion and
// externally corrupted content. All registry reads and writes go through it;
// a write that trips the quota escalates prune → reset → fail, never deleting
// an account and never discarding more posts than the retention thresholds
// require.
package guardian

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mkorotovs/pocketvine/internal/common"
	"github.com/mkorotovs/pocketvine/internal/kvstore"
	"github.com/mkorotovs/pocketvine/internal/logging"
	"github.com/mkorotovs/pocketvine/internal/models"
)

const (
	// Prune thresholds: posts older than the retention window are dropped,
	// and a user keeps at most maxPostsPerUser of the newest that remain.
	retentionWindow = 90 * 24 * time.Hour
	maxPostsPerUser = 50

	// Usage reporting thresholds.
	softLimitBytes = 5 * 1024 * 1024
	hardLimitBytes = 8 * 1024 * 1024

	probeKey = "storage_probe"
)

// ConfirmResetFunc asks for an explicit decision before the reset escalation
// step clears all posts and saved hashtags. Accounts always survive a reset.
type ConfirmResetFunc func(reason string) bool

// UsageLevel classifies the store's fill state.
type UsageLevel string

const (
	UsageOK       UsageLevel = "ok"
	UsageWarning  UsageLevel = "warning"
	UsageCritical UsageLevel = "critical"
)

// Usage is the result of CheckUsage.
type Usage struct {
	Level     UsageLevel
	UsedBytes int64
}

// Guardian wraps the kv repository with corruption detection and
// quota-exceeded recovery.
type Guardian struct {
	store        kvstore.Repository
	log          logging.Logger
	confirmReset ConfirmResetFunc
	now          func() time.Time
}

// New constructs a Guardian. confirmReset may be nil, in which case the reset
// escalation step is always declined and escalation stops after pruning.
func New(store kvstore.Repository, log logging.Logger, confirmReset ConfirmResetFunc) *Guardian {
	return &Guardian{
		store:        store,
		log:          log,
		confirmReset: confirmReset,
		now:          time.Now,
	}
}

// ReadRegistry loads and parses the registry blob. A missing blob yields an
// empty registry. A corrupted blob is logged, wiped, and also yields an empty
// registry: corruption is non-fatal but destructive for that key.
func (g *Guardian) ReadRegistry(ctx context.Context) (models.Registry, error) {
	data, err := g.store.Get(ctx, kvstore.KeyRegistry)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}
	if data == nil {
		return models.Registry{}, nil
	}

	var registry models.Registry
	if err := json.Unmarshal(data, &registry); err != nil {
		g.log.Error(ctx, "registry blob is corrupted, resetting", "error", err)
		if werr := g.store.Set(ctx, kvstore.KeyRegistry, []byte("{}")); werr != nil {
			return nil, fmt.Errorf("failed to reset corrupted registry: %w", werr)
		}
		return models.Registry{}, nil
	}
	if registry == nil {
		registry = models.Registry{}
	}
	return registry, nil
}

// WriteRegistry serializes and writes the registry through. On a quota
// failure it prunes old posts and retries once; if that is not enough it asks
// for consent to reset all posts and retries again; if the write still cannot
// fit (or consent is withheld) it surfaces common.ErrStorageExhausted.
func (g *Guardian) WriteRegistry(ctx context.Context, registry models.Registry) error {
	err := g.write(ctx, registry)
	if err == nil || !errors.Is(err, kvstore.ErrQuotaExceeded) {
		return err
	}

	dropped := g.pruneRegistry(registry)
	g.log.Warn(ctx, "storage quota exceeded, pruned old posts", "posts_dropped", dropped)

	err = g.write(ctx, registry)
	if err == nil || !errors.Is(err, kvstore.ErrQuotaExceeded) {
		return err
	}

	if g.confirmReset == nil || !g.confirmReset("storage is still full after pruning old posts") {
		g.log.Error(ctx, "storage exhausted, reset declined")
		return fmt.Errorf("write failed after pruning: %w", common.ErrStorageExhausted)
	}

	g.resetRegistry(registry)
	g.log.Warn(ctx, "storage reset: all posts and saved hashtags cleared, accounts kept")

	err = g.write(ctx, registry)
	if err == nil || !errors.Is(err, kvstore.ErrQuotaExceeded) {
		return err
	}

	g.log.Error(ctx, "storage exhausted after full reset")
	return fmt.Errorf("write failed after reset: %w", common.ErrStorageExhausted)
}

func (g *Guardian) write(ctx context.Context, registry models.Registry) error {
	data, err := json.Marshal(registry)
	if err != nil {
		return fmt.Errorf("failed to serialize registry: %w", err)
	}
	return g.store.Set(ctx, kvstore.KeyRegistry, data)
}

// pruneRegistry drops every post outside the retention window and caps each
// user at the newest maxPostsPerUser posts. Reverse-chronological order is
// preserved. Returns the number of posts dropped.
func (g *Guardian) pruneRegistry(registry models.Registry) int {
	cutoff := g.now().Add(-retentionWindow)
	dropped := 0

	for _, user := range registry {
		kept := user.Posts[:0]
		for _, p := range user.Posts {
			if p.Timestamp.After(cutoff) {
				kept = append(kept, p)
			}
		}
		if len(kept) > maxPostsPerUser {
			sort.SliceStable(kept, func(i, j int) bool {
				return kept[i].Timestamp.After(kept[j].Timestamp)
			})
			kept = kept[:maxPostsPerUser]
		}
		dropped += len(user.Posts) - len(kept)
		user.Posts = append([]*models.Post(nil), kept...)
		user.RecomputeEngagement()
	}
	return dropped
}

// resetRegistry clears every user's posts and saved hashtags. Accounts are
// never deleted.
func (g *Guardian) resetRegistry(registry models.Registry) {
	for _, user := range registry {
		user.Posts = nil
		user.SavedHashtags = nil
		user.RecomputeEngagement()
	}
}

// CheckUsage reports the serialized size of the store against the soft and
// hard thresholds. It mutates nothing.
func (g *Guardian) CheckUsage(ctx context.Context) (Usage, error) {
	used, err := g.store.UsedBytes(ctx)
	if err != nil {
		return Usage{}, fmt.Errorf("failed to check storage usage: %w", err)
	}

	level := UsageOK
	switch {
	case used > hardLimitBytes:
		level = UsageCritical
	case used > softLimitBytes:
		level = UsageWarning
	}
	return Usage{Level: level, UsedBytes: used}, nil
}

// Validate performs a write/read/delete probe plus a parse check of the
// current registry blob. On failure it clears the store's content (the
// corrupted data is already unusable) and returns false.
func (g *Guardian) Validate(ctx context.Context) bool {
	probe := []byte("probe")
	if err := g.store.Set(ctx, probeKey, probe); err != nil {
		g.log.Error(ctx, "storage probe write failed, clearing store", "error", err)
		_ = g.store.Clear(ctx)
		return false
	}
	got, err := g.store.Get(ctx, probeKey)
	if err != nil || string(got) != string(probe) {
		g.log.Error(ctx, "storage probe read failed, clearing store", "error", err)
		_ = g.store.Clear(ctx)
		return false
	}
	if err := g.store.Delete(ctx, probeKey); err != nil {
		g.log.Error(ctx, "storage probe delete failed, clearing store", "error", err)
		_ = g.store.Clear(ctx)
		return false
	}

	data, err := g.store.Get(ctx, kvstore.KeyRegistry)
	if err != nil {
		g.log.Error(ctx, "registry read failed during validation", "error", err)
		_ = g.store.Clear(ctx)
		return false
	}
	if data != nil {
		var registry models.Registry
		if err := json.Unmarshal(data, &registry); err != nil {
			g.log.Error(ctx, "registry failed validation, clearing store", "error", err)
			_ = g.store.Clear(ctx)
			return false
		}
	}
	return true
}
