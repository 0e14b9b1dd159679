// Package profile implements the save/cancel edit transaction over the
// user store. Edits stage into a local draft; the store and the server
// only ever see them through an explicit Save, and Cancel throws them
// away without a network call.
package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/vagueame/galaxyterm/internal/client/api"
	"github.com/vagueame/galaxyterm/internal/client/session"
	"github.com/vagueame/galaxyterm/internal/client/theme"
)

// Section selects which slice of the profile an edit session covers.
type Section string

const (
	SectionInfo  Section = "info"
	SectionTheme Section = "theme"
)

var (
	// ErrEditInProgress rejects BeginEdit while a session is active.
	ErrEditInProgress = errors.New("edit already in progress")
	// ErrNoEdit rejects Save/Cancel/setters with no active session.
	ErrNoEdit = errors.New("no edit in progress")
)

// Store is the slice of the user store the editor needs. *session.Store
// satisfies it.
type Store interface {
	Profile() session.Profile
	Theme() theme.Config
	Commit(ctx context.Context, patch api.UserInfoPatch) error
}

// InfoDraft stages the text fields. Email is absent: it is read-only
// once set and no commit path carries it.
type InfoDraft struct {
	Name  string
	Role  string
	Motto string
}

// Editor is the edit transaction. The draft is always a value copy of
// the store's data, so nothing an editing view shows leaks into
// read-only views before Save succeeds.
type Editor struct {
	store   Store
	section Section
	info    InfoDraft
	theme   theme.Config
}

// NewEditor builds an idle editor bound to the store.
func NewEditor(store Store) *Editor {
	return &Editor{store: store}
}

// Editing reports whether an edit session is active.
func (e *Editor) Editing() bool { return e.section != "" }

// Section returns the active section, or "" when idle.
func (e *Editor) Section() Section { return e.section }

// BeginEdit copies the section's current store state into the draft.
func (e *Editor) BeginEdit(section Section) error {
	if e.section != "" {
		return ErrEditInProgress
	}
	switch section {
	case SectionInfo:
		p := e.store.Profile()
		e.info = InfoDraft{Name: p.Name, Role: p.Role, Motto: p.Motto}
	case SectionTheme:
		e.theme = e.store.Theme()
	default:
		return fmt.Errorf("unknown section %q", section)
	}
	e.section = section
	return nil
}

// Info returns the staged info draft.
func (e *Editor) Info() InfoDraft { return e.info }

// Theme returns the staged theme draft.
func (e *Editor) Theme() theme.Config { return e.theme }

// SetInfo replaces the staged info fields.
func (e *Editor) SetInfo(d InfoDraft) error {
	if e.section != SectionInfo {
		return ErrNoEdit
	}
	e.info = d
	return nil
}

// SetTheme replaces the staged theme configuration.
func (e *Editor) SetTheme(cfg theme.Config) error {
	if e.section != SectionTheme {
		return ErrNoEdit
	}
	if !cfg.Valid() {
		return fmt.Errorf("theme out of bounds: %+v", cfg)
	}
	e.theme = cfg
	return nil
}

// Save commits only the active section's fields through the store. On
// success the edit session ends; on failure it stays open so the user
// can correct and retry with the server's message in hand.
func (e *Editor) Save(ctx context.Context) error {
	var patch api.UserInfoPatch
	switch e.section {
	case SectionInfo:
		patch.Nickname = &e.info.Name
		patch.Role = &e.info.Role
		patch.Motto = &e.info.Motto
	case SectionTheme:
		mask := e.theme.Mask()
		patch.BackgroundColor = &mask
	default:
		return ErrNoEdit
	}

	if err := e.store.Commit(ctx, patch); err != nil {
		return err
	}
	e.reset()
	return nil
}

// Cancel discards the draft without touching the network or the store.
func (e *Editor) Cancel() error {
	if e.section == "" {
		return ErrNoEdit
	}
	e.reset()
	return nil
}

func (e *Editor) reset() {
	e.section = ""
	e.info = InfoDraft{}
	e.theme = theme.Config{}
}
