package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/vagueame/galaxyterm/internal/client/api"
	"github.com/vagueame/galaxyterm/internal/client/auth"
	"github.com/vagueame/galaxyterm/internal/client/config"
	"github.com/vagueame/galaxyterm/internal/client/profile"
	"github.com/vagueame/galaxyterm/internal/client/session"
	"github.com/vagueame/galaxyterm/internal/logging"
)

// tickFn is a test seam for the redirect countdown pauses.
var tickFn = func(d time.Duration) { time.Sleep(d) }

// App is the interactive client. All command handlers hang off it; the
// REPL dispatches to them through execIface.
type App struct {
	config  *config.Config
	client  api.Client
	assets  session.Assets
	store   *session.Store
	overlay *auth.Overlay
	editor  *profile.Editor
	log     logging.Logger
	reader  *bufio.Reader

	userName string
}

// NewApp wires the HTTP client, the asset cache, the session store and
// the auth overlay into a runnable application.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	apiClient, err := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, log)
	if err != nil {
		return nil, err
	}

	assets, err := session.NewDiskAssets(c.AssetDir)
	if err != nil {
		return nil, err
	}

	store := session.NewStore(apiClient, assets, log)

	app := &App{
		config: c,
		client: apiClient,
		assets: assets,
		store:  store,
		editor: profile.NewEditor(store),
		log:    log,
		reader: bufio.NewReader(os.Stdin),
	}
	app.overlay = auth.NewOverlay(apiClient, store, c.SuccessDelay, func(username string) {
		app.userName = username
	}, log)

	return app, nil
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	if a.userName != "" {
		return fmt.Sprintf("(%s)", a.userName)
	}
	return "(guest)"
}

// Run probes the saved session, restores the user when one exists and
// hands control to the REPL. Temp image files are removed on exit.
func (a *App) Run(ctx context.Context) {
	defer a.assets.ReleaseAll()
	a.Root(ctx)
}

func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to galaxyterm (type 'help' for commands)")

	if s, err := a.client.CheckSession(ctx); err == nil && s.LoggedIn {
		a.userName = s.Username
		if err := a.store.Load(ctx, false); err != nil {
			a.log.Warn(ctx, "session restore failed", "error", err)
		}
		printlnFn("Welcome back,", s.Username)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// sessionExpired handles an unauthorized answer from any authed call: a
// short countdown is shown, local state is dropped and the user is back
// at the guest prompt. Reports whether err was the expired-session case.
func (a *App) sessionExpired(ctx context.Context, err error) bool {
	if !errors.Is(err, api.ErrUnauthorized) {
		return false
	}

	printlnFn("Session expired, please log in again.")
	for i := a.config.RedirectCountdown; i > 0; i-- {
		printlnFn(fmt.Sprintf("Returning to login in %d...", i))
		tickFn(a.config.RedirectInterval)
	}

	a.store.Clear(ctx)
	a.userName = ""
	return true
}

// reportErr prints an error the way the REPL expects: expired sessions
// get the countdown treatment, everything else a one-line message.
func (a *App) reportErr(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if a.sessionExpired(ctx, err) {
		return
	}
	printlnFn("Error:", err.Error())
}
