// Package session holds the process-wide cache of the authenticated
// user: profile, theme configuration, and the two media assets. The
// Store is the single writer of all of it; every other component reads
// through accessors or mutates through the commit and replace paths.
package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vagueame/galaxyterm/internal/client/api"
	"github.com/vagueame/galaxyterm/internal/client/theme"
	"github.com/vagueame/galaxyterm/internal/logging"
)

// Profile is the cached identity record. Email is read-only once set;
// the server owns it and no commit path carries it.
type Profile struct {
	Name  string
	Role  string
	Motto string
	Email string
}

// Store caches the current user's profile and media for the lifetime of
// the session. Loads are lazy and idempotent until Clear.
type Store struct {
	mu     sync.RWMutex
	client api.Client
	assets Assets
	log    logging.Logger

	loaded  bool
	profile Profile
	theme   theme.Config
	err     error
}

// NewStore builds an empty store around the API client and asset owner.
func NewStore(client api.Client, assets Assets, log logging.Logger) *Store {
	if log == nil {
		log = logging.NewNop()
	}
	return &Store{client: client, assets: assets, log: log}
}

// Load populates the cache. A second call without force or an
// intervening Clear is a no-op and touches no network. The profile fetch
// runs first: if the session is unauthorized the store enters its
// terminal error state and neither image endpoint is called. Image
// fetches then run concurrently, and each failure is tolerated on its
// own, leaving that slot empty.
func (s *Store) Load(ctx context.Context, force bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded && !force {
		return nil
	}

	info, err := s.client.FetchUserInfo(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			s.err = api.ErrUnauthorized
			return s.err
		}
		// Anything else is "data unavailable", not a terminal state.
		s.log.Warn(ctx, "profile fetch failed", "error", err)
		return fmt.Errorf("load profile: %w", err)
	}

	cfg, err := theme.Parse(info.BackgroundColor)
	if err != nil {
		s.log.Warn(ctx, "unparseable theme color, using default", "value", info.BackgroundColor)
		cfg = theme.Default()
	}

	s.profile = Profile{
		Name:  info.Nickname,
		Role:  info.Role,
		Motto: info.Motto,
		Email: info.Email,
	}
	s.theme = cfg
	s.err = nil
	s.loaded = true

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.fetchAsset(gctx, SlotBackground)
		return nil
	})
	g.Go(func() error {
		s.fetchAsset(gctx, SlotAvatar)
		return nil
	})
	_ = g.Wait()

	return nil
}

// fetchAsset downloads one slot's image and installs it. Failures only
// log: a missing avatar is a placeholder, never an error.
func (s *Store) fetchAsset(ctx context.Context, slot Slot) {
	var (
		data []byte
		err  error
	)
	switch slot {
	case SlotBackground:
		data, err = s.client.FetchBackground(ctx)
	case SlotAvatar:
		data, err = s.client.FetchAvatar(ctx)
	}
	if err != nil {
		s.log.Warn(ctx, "asset fetch failed", "slot", string(slot), "error", err)
		return
	}
	if _, err := s.assets.Install(slot, data); err != nil {
		s.log.Warn(ctx, "asset install failed", "slot", string(slot), "error", err)
	}
}

// Loaded reports whether the cache holds a profile.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Err returns the terminal session error, if any. Consumers use it to
// trigger the countdown-redirect instead of re-checking status codes.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Profile returns the cached profile by value.
func (s *Store) Profile() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Theme returns the cached theme configuration by value.
func (s *Store) Theme() theme.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// BackgroundPath returns the background image file path, or "".
func (s *Store) BackgroundPath() string { return s.assets.Path(SlotBackground) }

// AvatarPath returns the avatar image file path, or "".
func (s *Store) AvatarPath() string { return s.assets.Path(SlotAvatar) }

// Commit sends a partial profile patch to the server and merges it into
// the cache only after the server confirms. A failed commit leaves the
// visible profile untouched.
func (s *Store) Commit(ctx context.Context, patch api.UserInfoPatch) error {
	if patch.Empty() {
		return fmt.Errorf("commit: empty patch")
	}

	if err := s.client.UpdateUserInfo(ctx, patch); err != nil {
		return fmt.Errorf("commit profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if patch.Nickname != nil {
		s.profile.Name = *patch.Nickname
	}
	if patch.Motto != nil {
		s.profile.Motto = *patch.Motto
	}
	if patch.Role != nil {
		s.profile.Role = *patch.Role
	}
	if patch.BackgroundColor != nil {
		if cfg, err := theme.Parse(*patch.BackgroundColor); err == nil {
			s.theme = cfg
		}
	}
	return nil
}

// ReplaceAsset uploads a new image for the slot and, only on confirmed
// success, installs it locally. The previous file is released as part of
// the install, so each successful replacement releases exactly one file.
func (s *Store) ReplaceAsset(ctx context.Context, slot Slot, filename string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("replace %s: read: %w", slot, err)
	}

	switch slot {
	case SlotBackground:
		err = s.client.UploadBackground(ctx, filename, bytes.NewReader(data))
	case SlotAvatar:
		err = s.client.UploadAvatar(ctx, filename, bytes.NewReader(data))
	default:
		return fmt.Errorf("replace: unknown slot %q", slot)
	}
	if err != nil {
		return fmt.Errorf("replace %s: upload: %w", slot, err)
	}

	if _, err := s.assets.Install(slot, data); err != nil {
		return fmt.Errorf("replace %s: install: %w", slot, err)
	}
	return nil
}

// Clear logs out (best effort) and returns the store to its pre-load
// state: profile dropped, both asset files released, error reset. The
// next Load refetches everything.
func (s *Store) Clear(ctx context.Context) {
	if err := s.client.Logout(ctx); err != nil {
		// Logout must never leave the client looking authenticated
		// because of a network blip.
		s.log.Warn(ctx, "logout request failed, clearing local state anyway", "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets.ReleaseAll()
	s.profile = Profile{}
	s.theme = theme.Config{}
	s.err = nil
	s.loaded = false
}
