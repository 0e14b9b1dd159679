package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/vagueame/galaxyterm/internal/client/api"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	EditInfo(ctx context.Context) error
	EditTheme(ctx context.Context) error
	SetBackground(ctx context.Context) error
	SetAvatar(ctx context.Context) error
	Articles(ctx context.Context, page int) error
	MyArticles(ctx context.Context) error
	ReadArticle(ctx context.Context, id int) error
	PostArticle(ctx context.Context) error
	DeleteArticle(ctx context.Context, id int) error
	Gallery(ctx context.Context, page int) error
	MyPhotos(ctx context.Context) error
	SharePhoto(ctx context.Context) error
	DeletePhoto(ctx context.Context, id int) error
	Search(ctx context.Context, kind api.SearchKind, query string) error
}

// runREPL starts a simple read–eval–print loop for the galaxyterm CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help                        — show available commands
//	  - login | signup              — authenticate or create an account
//	  - articles [page]             — browse published articles
//	  - read <id>                   — read one article
//	  - gallery [page]              — browse the public photo gallery
//	  - search <title|author> <q>   — search articles
//	  - exit | quit                 — leave the program
//
//	Logged in, additionally:
//	  - whoami                      — show profile, theme and cached images
//	  - edit <info|theme>           — edit a profile section
//	  - setbg | setavatar           — replace background / avatar image
//	  - mine                        — list own articles (drafts included)
//	  - post                        — write a new article
//	  - drop <id>                   — delete an own article
//	  - photos                      — list own gallery uploads
//	  - share                       — upload a photo to the gallery
//	  - delphoto <id>               — delete an own photo
//	  - logout                      — log out
//
// Any errors returned by command handlers are ignored here; handlers
// report their own errors. This keeps the REPL loop resilient and
// focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("gt %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, edit <info|theme>, setbg, setavatar, articles, mine, read <id>, post, drop <id>, gallery, photos, share, delphoto <id>, search, logout, exit")
			} else {
				printlnFn("Available commands: login, signup, articles, read <id>, gallery, search, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "signup":
			_ = a.Signup(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "edit":
			switch {
			case len(args) == 0:
				printlnFn("Usage: edit <info|theme>")
			case args[0] == "info":
				_ = a.EditInfo(ctx)
			case args[0] == "theme":
				_ = a.EditTheme(ctx)
			default:
				printlnFn("Usage: edit <info|theme>")
			}

		case "setbg":
			_ = a.SetBackground(ctx)

		case "setavatar":
			_ = a.SetAvatar(ctx)

		case "articles":
			_ = a.Articles(ctx, optionalPage(args))

		case "mine":
			_ = a.MyArticles(ctx)

		case "read":
			id, ok := requireID(args, "Usage: read <id>")
			if ok {
				_ = a.ReadArticle(ctx, id)
			}

		case "post":
			_ = a.PostArticle(ctx)

		case "drop":
			id, ok := requireID(args, "Usage: drop <id>")
			if ok {
				_ = a.DeleteArticle(ctx, id)
			}

		case "gallery":
			_ = a.Gallery(ctx, optionalPage(args))

		case "photos":
			_ = a.MyPhotos(ctx)

		case "share":
			_ = a.SharePhoto(ctx)

		case "delphoto":
			id, ok := requireID(args, "Usage: delphoto <id>")
			if ok {
				_ = a.DeletePhoto(ctx, id)
			}

		case "search":
			if len(args) < 2 {
				printlnFn("Usage: search <title|author> <query>")
				continue
			}
			kind := api.SearchKind(args[0])
			if kind != api.SearchByTitle && kind != api.SearchByAuthor {
				printlnFn("Usage: search <title|author> <query>")
				continue
			}
			_ = a.Search(ctx, kind, strings.Join(args[1:], " "))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// optionalPage parses an optional page argument, defaulting to 1.
func optionalPage(args []string) int {
	if len(args) == 0 {
		return 1
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// requireID parses a mandatory numeric argument, printing usage when
// it is missing or not a number.
func requireID(args []string, usage string) (int, bool) {
	if len(args) == 0 {
		printlnFn(usage)
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		printlnFn(usage)
		return 0, false
	}
	return n, true
}
