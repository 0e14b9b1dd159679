package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// SharePhoto uploads a photo to the public gallery (POST /share-upload,
// part name "photo") and returns the stored record.
func (c *HTTPClient) SharePhoto(ctx context.Context, filename, description string, r io.Reader) (Photo, error) {
	var body struct {
		statusBody
		Data Photo `json:"data"`
	}
	extra := map[string]string{"description": description}
	if err := c.upload(ctx, "/share-upload", "photo", filename, r, extra, &body); err != nil {
		return Photo{}, err
	}
	if !body.ok() {
		return Photo{}, body.err()
	}
	return body.Data, nil
}

// GalleryPhotos returns one page of the public gallery, newest first.
func (c *HTTPClient) GalleryPhotos(ctx context.Context, page int) (PhotoPage, error) {
	if page < 1 {
		page = 1
	}
	var body struct {
		statusBody
		PhotoPage
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/gallery-photos?page=%d", page), nil, "", &body); err != nil {
		return PhotoPage{}, err
	}
	if !body.ok() {
		return PhotoPage{}, body.err()
	}
	return body.PhotoPage, nil
}

// MyPhotos returns a window of the user's own uploads.
func (c *HTTPClient) MyPhotos(ctx context.Context, limit, offset int) (PhotoPage, error) {
	if limit < 1 {
		limit = 16
	}
	if offset < 0 {
		offset = 0
	}
	var body struct {
		statusBody
		PhotoPage
	}
	path := fmt.Sprintf("/my-photos?limit=%d&offset=%d", limit, offset)
	if err := c.do(ctx, http.MethodGet, path, nil, "", &body); err != nil {
		return PhotoPage{}, err
	}
	if !body.ok() {
		return PhotoPage{}, body.err()
	}
	return body.PhotoPage, nil
}

// DeletePhoto removes one of the user's own photos.
func (c *HTTPClient) DeletePhoto(ctx context.Context, id int) error {
	var body statusBody
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/delete-photo/%d", id), nil, "", &body); err != nil {
		return err
	}
	if !body.ok() {
		return body.err()
	}
	return nil
}

// Search queries GET /search for article titles or authors.
func (c *HTTPClient) Search(ctx context.Context, kind SearchKind, query string, offset int) (SearchResult, error) {
	if query == "" {
		return SearchResult{}, fmt.Errorf("search: empty query")
	}
	if kind != SearchByTitle && kind != SearchByAuthor {
		return SearchResult{}, fmt.Errorf("search: unknown kind %q", kind)
	}
	q := url.Values{}
	q.Set("type", string(kind))
	q.Set("q", query)
	q.Set("offset", fmt.Sprint(offset))

	var body struct {
		statusBody
		SearchResult
	}
	if err := c.do(ctx, http.MethodGet, "/search?"+q.Encode(), nil, "", &body); err != nil {
		return SearchResult{}, err
	}
	if !body.ok() {
		return SearchResult{}, body.err()
	}
	return body.SearchResult, nil
}
