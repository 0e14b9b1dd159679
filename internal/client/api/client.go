// Package api implements the HTTP client for the Vagueame blog backend.
// It wraps every endpoint the terminal client consumes, forwards the
// session cookie on each call, and normalizes transport and application
// failures into the error taxonomy in errors.go. Nothing here retries:
// a retry is always a user-initiated re-submit.
package api

import (
	"context"
	"io"
)

// Client is the full surface the rest of the application talks to.
// Session state lives server-side behind a cookie the transport carries
// automatically; callers never see or store the credential itself.
type Client interface {
	// Session and auth.
	CheckSession(ctx context.Context) (Session, error)
	Login(ctx context.Context, email string, password []byte) (AuthResult, error)
	Signup(ctx context.Context, name, email string, password []byte) (AuthResult, error)
	Logout(ctx context.Context) error

	// Profile and theme.
	FetchUserInfo(ctx context.Context) (UserInfo, error)
	UpdateUserInfo(ctx context.Context, patch UserInfoPatch) error

	// Media. Fetches return the raw image bytes; uploads send multipart
	// bodies. Missing assets come back as ErrAssetUnavailable.
	FetchBackground(ctx context.Context) ([]byte, error)
	FetchAvatar(ctx context.Context) ([]byte, error)
	UploadBackground(ctx context.Context, filename string, r io.Reader) error
	UploadAvatar(ctx context.Context, filename string, r io.Reader) error

	// Articles.
	SaveArticle(ctx context.Context, draft ArticleDraft) (int, error)
	GetArticle(ctx context.Context, id int) (Article, error)
	ListMyArticles(ctx context.Context) ([]ArticleSummary, error)
	ListPublicArticles(ctx context.Context, page, limit int) (ArticlePage, error)
	DeleteArticle(ctx context.Context, id int) error

	// Photos.
	SharePhoto(ctx context.Context, filename, description string, r io.Reader) (Photo, error)
	GalleryPhotos(ctx context.Context, page int) (PhotoPage, error)
	MyPhotos(ctx context.Context, limit, offset int) (PhotoPage, error)
	DeletePhoto(ctx context.Context, id int) error

	// Search.
	Search(ctx context.Context, kind SearchKind, query string, offset int) (SearchResult, error)
}
