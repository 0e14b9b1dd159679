package api

// Session is the server-confirmed login status from GET /user. The client
// never fabricates a logged-in state; only this probe and the auth calls
// establish it.
type Session struct {
	LoggedIn bool   `json:"loggedIn"`
	Username string `json:"username"`
}

// AuthResult is the normalized outcome of login and signup. On
// Success=false the session is unchanged and Message carries the
// user-displayable reason; ConflictField names the signup input that
// collided with an existing account, when the server identifies one.
type AuthResult struct {
	Success       bool   `json:"success"`
	Username      string `json:"username"`
	Message       string `json:"message"`
	ConflictField string `json:"conflict_field"`
}

// UserInfo is the profile+theme record from GET /user-info.
// BackgroundColor is the raw wire color string; the theme package owns
// its interpretation.
type UserInfo struct {
	Nickname        string `json:"nickname"`
	Motto           string `json:"motto"`
	Role            string `json:"role"`
	Email           string `json:"email"`
	BackgroundColor string `json:"backgroundColor"`
}

// UserInfoPatch is a partial update for POST /user-info. Nil fields are
// omitted from the request so the server only touches what is set.
type UserInfoPatch struct {
	Nickname        *string `json:"nickname,omitempty"`
	Motto           *string `json:"motto,omitempty"`
	Role            *string `json:"role,omitempty"`
	BackgroundColor *string `json:"backgroundColor,omitempty"`
}

// Empty reports whether the patch carries no fields at all.
func (p UserInfoPatch) Empty() bool {
	return p.Nickname == nil && p.Motto == nil && p.Role == nil && p.BackgroundColor == nil
}

// ArticleDraft is the payload for POST /save. ID zero means a new
// article; Status is "draft" or "published".
type ArticleDraft struct {
	ID       int      `json:"id,omitempty"`
	Title    string   `json:"title"`
	Markdown string   `json:"markdown"`
	Tags     []string `json:"tags"`
	Status   string   `json:"status"`
}

// Article is a full article record.
type Article struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Markdown  string   `json:"content_md"`
	Tags      []string `json:"tags"`
	Status    string   `json:"status"`
	Author    string   `json:"user_id"`
	UpdatedAt string   `json:"updated_at"`
}

// ArticleSummary is the lightweight listing form.
type ArticleSummary struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Tags      []string `json:"tags"`
	Status    string   `json:"status"`
	Author    string   `json:"user_id"`
	UpdatedAt string   `json:"updated_at"`
}

// ArticlePage is one page of the public article listing.
type ArticlePage struct {
	Articles    []ArticleSummary `json:"articles"`
	Total       int              `json:"total"`
	Pages       int              `json:"pages"`
	CurrentPage int              `json:"current_page"`
}

// Photo is a gallery photo record.
type Photo struct {
	ID          int    `json:"id"`
	URL         string `json:"url"`
	ThumbURL    string `json:"thumb_url"`
	Description string `json:"description"`
	Author      string `json:"user_id"`
	UploadedAt  string `json:"uploaded_at"`
}

// PhotoPage is one page of a photo listing.
type PhotoPage struct {
	Photos  []Photo `json:"photos"`
	Total   int     `json:"total"`
	HasMore bool    `json:"has_more"`
}

// SearchKind selects what GET /search matches against.
type SearchKind string

const (
	SearchByTitle  SearchKind = "title"
	SearchByAuthor SearchKind = "author"
)

// SearchResult holds one page of search hits. Articles is set for title
// searches, Authors for author searches.
type SearchResult struct {
	Kind     SearchKind       `json:"type"`
	Articles []ArticleSummary `json:"results"`
	Authors  []AuthorHit      `json:"authors"`
	HasMore  bool             `json:"has_more"`
}

// AuthorHit is a matched author in search results.
type AuthorHit struct {
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Motto    string `json:"motto"`
}
