package api

import (
	"context"
	"fmt"
	"net/http"
)

// statusBody is the {"status": "success"|"error", "message": ...}
// envelope the article and photo endpoints use.
type statusBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (b statusBody) ok() bool { return b.Status == "success" }

func (b statusBody) err() error {
	return &ServerError{StatusCode: http.StatusOK, Message: b.Message}
}

// SaveArticle creates or updates an article via POST /save and returns
// the article ID the server assigned (or confirmed).
func (c *HTTPClient) SaveArticle(ctx context.Context, draft ArticleDraft) (int, error) {
	if draft.Title == "" {
		return 0, fmt.Errorf("save article: empty title")
	}
	if draft.Status == "" {
		draft.Status = "draft"
	}
	var body struct {
		statusBody
		ID int `json:"id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/save", draft, &body); err != nil {
		return 0, err
	}
	if !body.ok() {
		return 0, body.err()
	}
	return body.ID, nil
}

// GetArticle fetches one article by ID.
func (c *HTTPClient) GetArticle(ctx context.Context, id int) (Article, error) {
	var body struct {
		statusBody
		Article Article `json:"article"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/get-article/%d", id), nil, "", &body); err != nil {
		return Article{}, err
	}
	if !body.ok() {
		return Article{}, body.err()
	}
	return body.Article, nil
}

// ListMyArticles returns every article of the logged-in user, drafts
// included, newest first.
func (c *HTTPClient) ListMyArticles(ctx context.Context) ([]ArticleSummary, error) {
	var body struct {
		statusBody
		Articles []ArticleSummary `json:"articles"`
	}
	if err := c.do(ctx, http.MethodGet, "/my-articles-list", nil, "", &body); err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, body.err()
	}
	return body.Articles, nil
}

// ListPublicArticles returns one page of published articles.
func (c *HTTPClient) ListPublicArticles(ctx context.Context, page, limit int) (ArticlePage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 6
	}
	var p ArticlePage
	path := fmt.Sprintf("/get-articles-list?page=%d&limit=%d", page, limit)
	if err := c.do(ctx, http.MethodGet, path, nil, "", &p); err != nil {
		return ArticlePage{}, err
	}
	return p, nil
}

// DeleteArticle removes one of the user's own articles.
func (c *HTTPClient) DeleteArticle(ctx context.Context, id int) error {
	var body statusBody
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/delete-article/%d", id), nil, "", &body); err != nil {
		return err
	}
	if !body.ok() {
		return body.err()
	}
	return nil
}
