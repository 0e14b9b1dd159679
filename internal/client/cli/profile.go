package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vagueame/galaxyterm/internal/client/profile"
	"github.com/vagueame/galaxyterm/internal/client/session"
)

// Whoami prints the cached profile, theme and image locations. The
// store is loaded lazily on first use; repeat calls hit the cache.
func (a *App) Whoami(ctx context.Context) error {
	if err := a.store.Load(ctx, false); err != nil {
		a.reportErr(ctx, err)
		return err
	}

	p := a.store.Profile()
	th := a.store.Theme()

	printlnFn("Name: ", p.Name)
	printlnFn("Role: ", p.Role)
	printlnFn("Motto:", p.Motto)
	printlnFn("Email:", p.Email)
	printlnFn(fmt.Sprintf("Theme: %s opacity=%d%% gradient=%d%%", th.Color, th.Opacity, th.GradientStop))
	if path := a.store.BackgroundPath(); path != "" {
		printlnFn("Background:", path)
	}
	if path := a.store.AvatarPath(); path != "" {
		printlnFn("Avatar:    ", path)
	}
	return nil
}

// EditInfo runs one edit transaction over the info section: current
// values are offered as defaults, an empty answer keeps them, and
// nothing reaches the store until the server confirms the save.
func (a *App) EditInfo(ctx context.Context) error {
	if err := a.editor.BeginEdit(profile.SectionInfo); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	draft := a.editor.Info()
	var err error
	if draft.Name, err = a.promptDefault("Nickname", draft.Name); err != nil {
		_ = a.editor.Cancel()
		return err
	}
	if draft.Role, err = a.promptDefault("Role", draft.Role); err != nil {
		_ = a.editor.Cancel()
		return err
	}
	if draft.Motto, err = a.promptDefault("Motto", draft.Motto); err != nil {
		_ = a.editor.Cancel()
		return err
	}

	if err := a.editor.SetInfo(draft); err != nil {
		_ = a.editor.Cancel()
		return err
	}
	return a.saveEdit(ctx)
}

// EditTheme runs one edit transaction over the theme section.
func (a *App) EditTheme(ctx context.Context) error {
	if err := a.editor.BeginEdit(profile.SectionTheme); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	draft := a.editor.Theme()
	var err error
	if draft.Color, err = a.promptDefault("Color (#RRGGBB)", draft.Color); err != nil {
		_ = a.editor.Cancel()
		return err
	}
	if draft.Opacity, err = a.promptDefaultInt("Opacity (0-100)", draft.Opacity); err != nil {
		_ = a.editor.Cancel()
		return err
	}
	if draft.GradientStop, err = a.promptDefaultInt("Gradient stop (0-100)", draft.GradientStop); err != nil {
		_ = a.editor.Cancel()
		return err
	}

	if err := a.editor.SetTheme(draft); err != nil {
		printlnFn("Error:", err.Error())
		_ = a.editor.Cancel()
		return err
	}
	return a.saveEdit(ctx)
}

// saveEdit commits the running transaction, keeping the draft alive on
// failure so the user can retry or cancel.
func (a *App) saveEdit(ctx context.Context) error {
	if err := a.editor.Save(ctx); err != nil {
		a.reportErr(ctx, err)
		_ = a.editor.Cancel()
		return err
	}
	printlnFn("Saved.")
	return nil
}

// SetBackground replaces the profile background with a local image file.
func (a *App) SetBackground(ctx context.Context) error {
	return a.replaceAsset(ctx, session.SlotBackground, "Enter background image path")
}

// SetAvatar replaces the avatar with a local image file.
func (a *App) SetAvatar(ctx context.Context) error {
	return a.replaceAsset(ctx, session.SlotAvatar, "Enter avatar image path")
}

func (a *App) replaceAsset(ctx context.Context, slot session.Slot, prompt string) error {
	path, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	defer f.Close()

	if err := a.store.ReplaceAsset(ctx, slot, filepath.Base(path), f); err != nil {
		a.reportErr(ctx, err)
		return err
	}
	printlnFn("Uploaded.")
	return nil
}

func (a *App) promptDefault(label, current string) (string, error) {
	prompt := fmt.Sprintf("%s [%s]", label, current)
	v, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return "", err
	}
	if v == "" {
		return current, nil
	}
	return v, nil
}

func (a *App) promptDefaultInt(label string, current int) (int, error) {
	v, err := a.promptDefault(label, strconv.Itoa(current))
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: not a number: %q", label, v)
	}
	return n, nil
}
