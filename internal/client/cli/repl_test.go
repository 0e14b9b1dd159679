package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/vagueame/galaxyterm/internal/client/api"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Signup(ctx context.Context) error { return f.record("signup") }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Whoami(ctx context.Context) error        { return f.record("whoami") }
func (f *fakeExec) EditInfo(ctx context.Context) error      { return f.record("edit info") }
func (f *fakeExec) EditTheme(ctx context.Context) error     { return f.record("edit theme") }
func (f *fakeExec) SetBackground(ctx context.Context) error { return f.record("setbg") }
func (f *fakeExec) SetAvatar(ctx context.Context) error     { return f.record("setavatar") }
func (f *fakeExec) Articles(ctx context.Context, page int) error {
	return f.record(fmt.Sprintf("articles %d", page))
}
func (f *fakeExec) MyArticles(ctx context.Context) error { return f.record("mine") }
func (f *fakeExec) ReadArticle(ctx context.Context, id int) error {
	return f.record(fmt.Sprintf("read %d", id))
}
func (f *fakeExec) PostArticle(ctx context.Context) error { return f.record("post") }
func (f *fakeExec) DeleteArticle(ctx context.Context, id int) error {
	return f.record(fmt.Sprintf("drop %d", id))
}
func (f *fakeExec) Gallery(ctx context.Context, page int) error {
	return f.record(fmt.Sprintf("gallery %d", page))
}
func (f *fakeExec) MyPhotos(ctx context.Context) error   { return f.record("photos") }
func (f *fakeExec) SharePhoto(ctx context.Context) error { return f.record("share") }
func (f *fakeExec) DeletePhoto(ctx context.Context, id int) error {
	return f.record(fmt.Sprintf("delphoto %d", id))
}
func (f *fakeExec) Search(ctx context.Context, kind api.SearchKind, query string) error {
	return f.record(fmt.Sprintf("search %s %s", kind, query))
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"whoami",
		"articles 2",
		"read 7",
		"edit info",
		"edit theme",
		"post",
		"drop 9",
		"search title deep space",
		"foobar",
		"logout",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	want := []string{
		"login", "whoami", "articles 2", "read 7", "edit info", "edit theme",
		"post", "drop 9", "search title deep space", "logout",
	}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, want)
	}
	for i := range want {
		if exec.calls[i] != want[i] {
			t.Fatalf("call %d: got %q, want %q", i, exec.calls[i], want[i])
		}
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"read",
		"read seven",
		"drop",
		"edit",
		"edit everything",
		"search",
		"search tags x",
		"quit",
	}, "\n"))
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_DefaultPages(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("articles\ngallery\ngallery 3\nexit\n")
	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	want := []string{"articles 1", "gallery 1", "gallery 3"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, want)
	}
	for i := range want {
		if exec.calls[i] != want[i] {
			t.Fatalf("call %d: got %q, want %q", i, exec.calls[i], want[i])
		}
	}
}
