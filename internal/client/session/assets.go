package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/vagueame/galaxyterm/internal/filex"
)

// Slot names one media asset the store owns.
type Slot string

const (
	SlotBackground Slot = "background"
	SlotAvatar     Slot = "avatar"
)

// Assets owns the on-disk lifetime of fetched media. The invariant is
// at most one live file per slot: Install releases whatever the slot
// held before writing the replacement. Consumers only ever see a path.
type Assets interface {
	// Install stores data for the slot and returns the file path.
	Install(slot Slot, data []byte) (string, error)
	// Release removes the slot's file, if any.
	Release(slot Slot)
	// ReleaseAll removes every slot's file.
	ReleaseAll()
	// Path returns the slot's current file path, or "" when empty.
	Path(slot Slot) string
}

// diskAssets keeps slot files in a private cache directory. It is the
// terminal-client analog of the browser's object URLs.
type diskAssets struct {
	mu    sync.Mutex
	dir   string
	paths map[Slot]string
}

// NewDiskAssets prepares a cache directory under parent (the OS temp
// dir when parent is empty).
func NewDiskAssets(parent string) (Assets, error) {
	dir, err := filex.EnsureSubDir(parent, "galaxyterm-assets")
	if err != nil {
		return nil, fmt.Errorf("asset cache: %w", err)
	}
	return &diskAssets{dir: dir, paths: make(map[Slot]string)}, nil
}

func (a *diskAssets) Install(slot Slot, data []byte) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Release first so the slot never references two live files.
	a.releaseLocked(slot)

	path := filepath.Join(a.dir, fmt.Sprintf("%s-%s.img", slot, uuid.NewString()))
	if err := os.WriteFile(path, data, 0o660); err != nil {
		return "", fmt.Errorf("install %s asset: %w", slot, err)
	}
	a.paths[slot] = path
	return path, nil
}

func (a *diskAssets) Release(slot Slot) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.releaseLocked(slot)
}

func (a *diskAssets) ReleaseAll() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for slot := range a.paths {
		a.releaseLocked(slot)
	}
}

func (a *diskAssets) Path(slot Slot) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.paths[slot]
}

func (a *diskAssets) releaseLocked(slot Slot) {
	if path, ok := a.paths[slot]; ok {
		_ = os.Remove(path)
		delete(a.paths, slot)
	}
}
