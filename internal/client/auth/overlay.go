// Package auth implements the login/signup overlay as an explicit state
// machine: Closed -> FormOpen -> Submitting -> Success -> Closed, with a
// Submitting -> FormOpen back-edge on failure. Illegal transitions are
// rejected with errors instead of being silently absorbed, and closing
// while a submit is in flight is one of them.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vagueame/galaxyterm/internal/client/api"
	"github.com/vagueame/galaxyterm/internal/common"
	"github.com/vagueame/galaxyterm/internal/logging"
)

// Mode selects which form the overlay shows.
type Mode string

const (
	ModeLogin  Mode = "login"
	ModeSignup Mode = "signup"
)

// State is the overlay phase.
type State int

const (
	StateClosed State = iota
	StateFormOpen
	StateSubmitting
	StateSuccess
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateFormOpen:
		return "formOpen"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	default:
		return "unknown"
	}
}

var (
	// ErrSubmitInFlight rejects a second submit, or a close, while a
	// request is outstanding.
	ErrSubmitInFlight = errors.New("submit already in flight")
	// ErrNotOpen rejects form actions while the overlay is closed.
	ErrNotOpen = errors.New("overlay is not open")
	// ErrAlreadyOpen rejects opening a second overlay.
	ErrAlreadyOpen = errors.New("overlay is already open")
	// ErrMissingFields is the client-side gate: no network call happens
	// until the mode's required fields are filled in.
	ErrMissingFields = errors.New("required fields are empty")
)

// sleepFn is a test seam for the success display delay.
var sleepFn = func(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// Draft is the overlay's transient form buffer. It exists only while the
// overlay is open and is never persisted.
type Draft struct {
	Mode          Mode
	Name          string
	Email         string
	Password      []byte
	Message       string
	ConflictField string
}

// Bootstrapper is the slice of the user store the overlay needs: the
// post-login session bootstrap. *session.Store satisfies it.
type Bootstrapper interface {
	Load(ctx context.Context, force bool) error
}

// Overlay drives the authentication flow. It owns no persistent data,
// only the transient draft and phase.
type Overlay struct {
	mu    sync.Mutex
	state State
	draft Draft

	client       api.Client
	store        Bootstrapper
	log          logging.Logger
	successDelay time.Duration
	onComplete   func(username string)
}

// NewOverlay wires the overlay to the API client and the user store it
// bootstraps on success. onComplete receives the resolved username after
// the success phase ends; it may be nil. successDelay is how long the
// informational success confirmation stays up.
func NewOverlay(client api.Client, store Bootstrapper, successDelay time.Duration, onComplete func(string), log logging.Logger) *Overlay {
	if log == nil {
		log = logging.NewNop()
	}
	return &Overlay{
		client:       client,
		store:        store,
		log:          log,
		successDelay: successDelay,
		onComplete:   onComplete,
	}
}

// State returns the current phase.
func (o *Overlay) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Draft returns a copy of the form buffer. The password slice is copied
// so callers cannot reach into the overlay's own buffer.
func (o *Overlay) Draft() Draft {
	o.mu.Lock()
	defer o.mu.Unlock()
	d := o.draft
	d.Password = append([]byte(nil), o.draft.Password...)
	return d
}

// Open transitions Closed -> FormOpen with an empty draft in the
// requested mode.
func (o *Overlay) Open(mode Mode) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateClosed {
		return ErrAlreadyOpen
	}
	o.state = StateFormOpen
	o.draft = Draft{Mode: mode}
	return nil
}

// SwitchMode toggles login <-> signup without closing the overlay. The
// typed email survives; the password and field-level errors do not.
func (o *Overlay) SwitchMode(mode Mode) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateFormOpen {
		return ErrNotOpen
	}
	if o.draft.Mode == mode {
		return nil
	}
	common.WipeByteArray(o.draft.Password)
	o.draft = Draft{Mode: mode, Name: o.draft.Name, Email: o.draft.Email}
	return nil
}

// SetName updates the draft's name field (signup only uses it).
func (o *Overlay) SetName(name string) error {
	return o.setField(func(d *Draft) { d.Name = name })
}

// SetEmail updates the draft's email field.
func (o *Overlay) SetEmail(email string) error {
	return o.setField(func(d *Draft) { d.Email = email })
}

// SetPassword replaces the draft's password buffer, wiping the old one.
func (o *Overlay) SetPassword(password []byte) error {
	return o.setField(func(d *Draft) {
		common.WipeByteArray(d.Password)
		d.Password = password
	})
}

func (o *Overlay) setField(apply func(*Draft)) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateFormOpen {
		if o.state == StateSubmitting {
			return ErrSubmitInFlight
		}
		return ErrNotOpen
	}
	apply(&o.draft)
	return nil
}

// Close dismisses the overlay. Valid from every state except
// Submitting: an in-flight request must resolve first so a dismissed
// overlay can never race the store bootstrap.
func (o *Overlay) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == StateSubmitting {
		return ErrSubmitInFlight
	}
	common.WipeByteArray(o.draft.Password)
	o.state = StateClosed
	o.draft = Draft{}
	return nil
}

// Submit runs the gated FormOpen -> Submitting transition, issues exactly
// one login or signup call, and resolves to Success or back to FormOpen.
// On success it bootstraps the store, keeps the confirmation visible for
// the configured delay, auto-closes, and invokes the completion callback
// with the resolved username.
func (o *Overlay) Submit(ctx context.Context) error {
	o.mu.Lock()
	switch o.state {
	case StateSubmitting:
		o.mu.Unlock()
		return ErrSubmitInFlight
	case StateFormOpen:
	default:
		o.mu.Unlock()
		return ErrNotOpen
	}

	d := o.draft
	if d.Email == "" || len(d.Password) == 0 || (d.Mode == ModeSignup && d.Name == "") {
		o.draft.Message = "fill in all required fields"
		o.mu.Unlock()
		return ErrMissingFields
	}

	o.state = StateSubmitting
	o.draft.Message = ""
	o.draft.ConflictField = ""
	mode := d.Mode
	password := append([]byte(nil), d.Password...)
	o.mu.Unlock()
	defer common.WipeByteArray(password)

	var (
		res api.AuthResult
		err error
	)
	if mode == ModeSignup {
		res, err = o.client.Signup(ctx, d.Name, d.Email, password)
	} else {
		res, err = o.client.Login(ctx, d.Email, password)
	}

	if err != nil {
		o.failSubmit("connection failed, try again", "")
		return err
	}
	if !res.Success {
		o.failSubmit(res.Message, res.ConflictField)
		return nil
	}

	username := res.Username
	if username == "" {
		username = d.Name
	}

	o.mu.Lock()
	o.state = StateSuccess
	common.WipeByteArray(o.draft.Password)
	o.draft.Password = nil
	o.mu.Unlock()

	if err := o.store.Load(ctx, true); err != nil {
		o.log.Warn(ctx, "session bootstrap failed", "error", err)
	}

	sleepFn(ctx, o.successDelay)

	o.mu.Lock()
	o.state = StateClosed
	o.draft = Draft{}
	o.mu.Unlock()

	if o.onComplete != nil {
		o.onComplete(username)
	}
	return nil
}

// failSubmit is the Submitting -> FormOpen back-edge: same mode, message
// and conflict surfaced, password cleared, everything else retained.
func (o *Overlay) failSubmit(message, conflictField string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = StateFormOpen
	common.WipeByteArray(o.draft.Password)
	o.draft.Password = nil
	o.draft.Message = message
	o.draft.ConflictField = conflictField
}
