package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vagueame/galaxyterm/internal/client/api"
	"github.com/vagueame/galaxyterm/internal/client/session"
)

func stubSleep(t *testing.T) {
	t.Helper()
	orig := sleepFn
	sleepFn = func(context.Context, time.Duration) {}
	t.Cleanup(func() { sleepFn = orig })
}

// fakeAPI implements api.Client; only the auth calls matter here.
type fakeAPI struct {
	loginRes   api.AuthResult
	loginErr   error
	loginCalls int
	lastEmail  string
	lastPass   string

	signupRes   api.AuthResult
	signupErr   error
	signupCalls int
	lastName    string

	userInfo    api.UserInfo
	userInfoErr error

	// onLogin runs inside Login, letting tests observe mid-flight state.
	onLogin func()
}

func (f *fakeAPI) CheckSession(context.Context) (api.Session, error) { return api.Session{}, nil }
func (f *fakeAPI) Login(_ context.Context, email string, password []byte) (api.AuthResult, error) {
	f.loginCalls++
	f.lastEmail = email
	f.lastPass = string(password)
	if f.onLogin != nil {
		f.onLogin()
	}
	return f.loginRes, f.loginErr
}
func (f *fakeAPI) Signup(_ context.Context, name, email string, password []byte) (api.AuthResult, error) {
	f.signupCalls++
	f.lastName = name
	f.lastEmail = email
	f.lastPass = string(password)
	return f.signupRes, f.signupErr
}
func (f *fakeAPI) Logout(context.Context) error { return nil }
func (f *fakeAPI) FetchUserInfo(context.Context) (api.UserInfo, error) {
	return f.userInfo, f.userInfoErr
}
func (f *fakeAPI) UpdateUserInfo(context.Context, api.UserInfoPatch) error { return nil }
func (f *fakeAPI) FetchBackground(context.Context) ([]byte, error) {
	return nil, api.ErrAssetUnavailable
}
func (f *fakeAPI) FetchAvatar(context.Context) ([]byte, error) {
	return nil, api.ErrAssetUnavailable
}
func (f *fakeAPI) UploadBackground(context.Context, string, io.Reader) error { return nil }
func (f *fakeAPI) UploadAvatar(context.Context, string, io.Reader) error     { return nil }
func (f *fakeAPI) SaveArticle(context.Context, api.ArticleDraft) (int, error) {
	return 0, nil
}
func (f *fakeAPI) GetArticle(context.Context, int) (api.Article, error) { return api.Article{}, nil }
func (f *fakeAPI) ListMyArticles(context.Context) ([]api.ArticleSummary, error) {
	return nil, nil
}
func (f *fakeAPI) ListPublicArticles(context.Context, int, int) (api.ArticlePage, error) {
	return api.ArticlePage{}, nil
}
func (f *fakeAPI) DeleteArticle(context.Context, int) error { return nil }
func (f *fakeAPI) SharePhoto(context.Context, string, string, io.Reader) (api.Photo, error) {
	return api.Photo{}, nil
}
func (f *fakeAPI) GalleryPhotos(context.Context, int) (api.PhotoPage, error) {
	return api.PhotoPage{}, nil
}
func (f *fakeAPI) MyPhotos(context.Context, int, int) (api.PhotoPage, error) {
	return api.PhotoPage{}, nil
}
func (f *fakeAPI) DeletePhoto(context.Context, int) error { return nil }
func (f *fakeAPI) Search(context.Context, api.SearchKind, string, int) (api.SearchResult, error) {
	return api.SearchResult{}, nil
}

type fakeStore struct {
	loadCalls int
	lastForce bool
	loadErr   error
}

func (f *fakeStore) Load(_ context.Context, force bool) error {
	f.loadCalls++
	f.lastForce = force
	return f.loadErr
}

func openOverlay(t *testing.T, f *fakeAPI, store Bootstrapper, onComplete func(string)) *Overlay {
	t.Helper()
	if store == nil {
		store = &fakeStore{}
	}
	o := NewOverlay(f, store, 10*time.Millisecond, onComplete, nil)
	require.NoError(t, o.Open(ModeLogin))
	return o
}

func TestOpen_Twice(t *testing.T) {
	o := openOverlay(t, &fakeAPI{}, nil, nil)
	require.ErrorIs(t, o.Open(ModeLogin), ErrAlreadyOpen)
}

func TestSubmit_EmptyPasswordNeverHitsNetwork(t *testing.T) {
	f := &fakeAPI{}
	o := openOverlay(t, f, nil, nil)
	require.NoError(t, o.SetEmail("a@x.com"))

	err := o.Submit(context.Background())
	require.ErrorIs(t, err, ErrMissingFields)
	require.Zero(t, f.loginCalls)
	require.Equal(t, StateFormOpen, o.State())
}

func TestSubmit_SignupRequiresName(t *testing.T) {
	f := &fakeAPI{}
	o := openOverlay(t, f, nil, nil)
	require.NoError(t, o.SwitchMode(ModeSignup))
	require.NoError(t, o.SetEmail("a@x.com"))
	require.NoError(t, o.SetPassword([]byte("pw")))

	require.ErrorIs(t, o.Submit(context.Background()), ErrMissingFields)
	require.Zero(t, f.signupCalls)
}

func TestSwitchMode_PreservesEmailClearsPassword(t *testing.T) {
	o := openOverlay(t, &fakeAPI{}, nil, nil)
	require.NoError(t, o.SetEmail("a@x.com"))
	require.NoError(t, o.SetPassword([]byte("secret")))

	require.NoError(t, o.SwitchMode(ModeSignup))
	d := o.Draft()
	require.Equal(t, ModeSignup, d.Mode)
	require.Equal(t, "a@x.com", d.Email)
	require.Empty(t, d.Password)

	require.NoError(t, o.SwitchMode(ModeLogin))
	d = o.Draft()
	require.Equal(t, "a@x.com", d.Email)
	require.Empty(t, d.Password)
}

func TestSwitchMode_ClearsFieldErrors(t *testing.T) {
	stubSleep(t)
	f := &fakeAPI{signupRes: api.AuthResult{Success: false, Message: "Conflict", ConflictField: "Email"}}
	o := openOverlay(t, f, nil, nil)
	require.NoError(t, o.SwitchMode(ModeSignup))
	require.NoError(t, o.SetName("ame"))
	require.NoError(t, o.SetEmail("a@x.com"))
	require.NoError(t, o.SetPassword([]byte("pw")))
	require.NoError(t, o.Submit(context.Background()))

	d := o.Draft()
	require.Equal(t, "Conflict", d.Message)
	require.Equal(t, "Email", d.ConflictField)

	require.NoError(t, o.SwitchMode(ModeLogin))
	d = o.Draft()
	require.Empty(t, d.Message)
	require.Empty(t, d.ConflictField)
	require.Equal(t, "a@x.com", d.Email)
}

func TestSubmit_LoginSuccess_FullTransition(t *testing.T) {
	stubSleep(t)

	f := &fakeAPI{
		loginRes: api.AuthResult{Success: true, Username: "a"},
		userInfo: api.UserInfo{Nickname: "a", Email: "a@x.com"},
	}
	assets, err := session.NewDiskAssets(t.TempDir())
	require.NoError(t, err)
	store := session.NewStore(f, assets, nil)

	var completedWith string
	o := NewOverlay(f, store, time.Millisecond, func(u string) { completedWith = u }, nil)
	require.NoError(t, o.Open(ModeLogin))

	var midFlight State
	f.onLogin = func() { midFlight = o.State() }

	require.NoError(t, o.SetEmail("a@x.com"))
	require.NoError(t, o.SetPassword([]byte("pw")))
	require.NoError(t, o.Submit(context.Background()))

	require.Equal(t, StateSubmitting, midFlight)
	require.Equal(t, StateClosed, o.State())
	require.Equal(t, "a", completedWith)

	// The store bootstrap ran and cached the profile from the server.
	require.True(t, store.Loaded())
	require.Equal(t, "a@x.com", store.Profile().Email)
}

func TestSubmit_LoginFailure_BackToFormWithMessage(t *testing.T) {
	f := &fakeAPI{loginRes: api.AuthResult{Success: false, Message: "Invalid credentials"}}
	st := &fakeStore{}
	o := openOverlay(t, f, st, nil)
	require.NoError(t, o.SetEmail("a@x.com"))
	require.NoError(t, o.SetPassword([]byte("wrong")))

	require.NoError(t, o.Submit(context.Background()))

	require.Equal(t, StateFormOpen, o.State())
	d := o.Draft()
	require.Equal(t, ModeLogin, d.Mode)
	require.Equal(t, "Invalid credentials", d.Message)
	require.Equal(t, "a@x.com", d.Email)
	require.Empty(t, d.Password)
	require.Zero(t, st.loadCalls, "no bootstrap on failure")
}

func TestSubmit_NetworkError_RevertsAndReturnsError(t *testing.T) {
	f := &fakeAPI{loginErr: fmt.Errorf("%w: refused", api.ErrNetwork)}
	o := openOverlay(t, f, nil, nil)
	require.NoError(t, o.SetEmail("a@x.com"))
	require.NoError(t, o.SetPassword([]byte("pw")))

	err := o.Submit(context.Background())
	require.ErrorIs(t, err, api.ErrNetwork)
	require.Equal(t, StateFormOpen, o.State())
	d := o.Draft()
	require.Equal(t, "a@x.com", d.Email)
	require.Empty(t, d.Password)
	require.NotEmpty(t, d.Message)
}

func TestClose_RejectedWhileSubmitting(t *testing.T) {
	stubSleep(t)
	f := &fakeAPI{loginRes: api.AuthResult{Success: true, Username: "a"}}
	st := &fakeStore{}
	o := openOverlay(t, f, st, nil)

	var closeErr error
	f.onLogin = func() { closeErr = o.Close() }

	require.NoError(t, o.SetEmail("a@x.com"))
	require.NoError(t, o.SetPassword([]byte("pw")))
	require.NoError(t, o.Submit(context.Background()))

	require.ErrorIs(t, closeErr, ErrSubmitInFlight)
}

func TestSubmit_SecondSubmitRejectedMidFlight(t *testing.T) {
	stubSleep(t)
	f := &fakeAPI{loginRes: api.AuthResult{Success: true, Username: "a"}}
	o := openOverlay(t, f, &fakeStore{}, nil)

	var second error
	f.onLogin = func() { second = o.Submit(context.Background()) }

	require.NoError(t, o.SetEmail("a@x.com"))
	require.NoError(t, o.SetPassword([]byte("pw")))
	require.NoError(t, o.Submit(context.Background()))

	require.ErrorIs(t, second, ErrSubmitInFlight)
	require.Equal(t, 1, f.loginCalls)
}

func TestSubmit_BootstrapForcesRefresh(t *testing.T) {
	stubSleep(t)
	f := &fakeAPI{loginRes: api.AuthResult{Success: true, Username: "a"}}
	st := &fakeStore{}
	o := openOverlay(t, f, st, nil)
	require.NoError(t, o.SetEmail("a@x.com"))
	require.NoError(t, o.SetPassword([]byte("pw")))

	require.NoError(t, o.Submit(context.Background()))
	require.Equal(t, 1, st.loadCalls)
	require.True(t, st.lastForce)
}

func TestSubmit_BootstrapFailureStillCloses(t *testing.T) {
	stubSleep(t)
	f := &fakeAPI{loginRes: api.AuthResult{Success: true, Username: "a"}}
	st := &fakeStore{loadErr: errors.New("profile fetch failed")}
	var completed bool
	o := openOverlay(t, f, st, func(string) { completed = true })
	require.NoError(t, o.SetEmail("a@x.com"))
	require.NoError(t, o.SetPassword([]byte("pw")))

	require.NoError(t, o.Submit(context.Background()))
	require.Equal(t, StateClosed, o.State())
	require.True(t, completed)
}

func TestSubmit_SignupUsesDraftNameWhenServerOmitsUsername(t *testing.T) {
	stubSleep(t)
	f := &fakeAPI{signupRes: api.AuthResult{Success: true}}
	var completedWith string
	o := openOverlay(t, f, &fakeStore{}, func(u string) { completedWith = u })
	require.NoError(t, o.SwitchMode(ModeSignup))
	require.NoError(t, o.SetName("ame"))
	require.NoError(t, o.SetEmail("a@x.com"))
	require.NoError(t, o.SetPassword([]byte("pw")))

	require.NoError(t, o.Submit(context.Background()))
	require.Equal(t, "ame", completedWith)
	require.Equal(t, 1, f.signupCalls)
	require.Equal(t, "ame", f.lastName)
}

func TestClose_FromFormOpen(t *testing.T) {
	o := openOverlay(t, &fakeAPI{}, nil, nil)
	require.NoError(t, o.Close())
	require.Equal(t, StateClosed, o.State())
}

func TestSetField_RejectedWhenClosed(t *testing.T) {
	o := NewOverlay(&fakeAPI{}, &fakeStore{}, 0, nil, nil)
	require.ErrorIs(t, o.SetEmail("a@x.com"), ErrNotOpen)
}
