package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// fetchBinary downloads an image endpoint into memory. The t query
// parameter defeats intermediary caches on forced refreshes, mirroring
// what the web client does. Anything but a 200 with a body is
// ErrAssetUnavailable: a missing image is a placeholder, not a failure.
func (c *HTTPClient) fetchBinary(ctx context.Context, path string) ([]byte, error) {
	url := fmt.Sprintf("%s%s?t=%d", c.baseURL, path, nowMillis())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	req.Header.Set("X-Request-Id", newRequestID())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w: %s", path, ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d: %w", path, resp.StatusCode, ErrAssetUnavailable)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: read body: %w: %s", path, ErrNetwork, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("GET %s: empty body: %w", path, ErrAssetUnavailable)
	}
	return data, nil
}

// FetchBackground downloads the profile background image.
func (c *HTTPClient) FetchBackground(ctx context.Context) ([]byte, error) {
	return c.fetchBinary(ctx, "/get-background")
}

// FetchAvatar downloads the avatar image.
func (c *HTTPClient) FetchAvatar(ctx context.Context) ([]byte, error) {
	return c.fetchBinary(ctx, "/get-photo")
}

// upload sends one file as a multipart form. field is the part name the
// server expects; extra form fields ride along when present.
func (c *HTTPClient) upload(ctx context.Context, path, field, filename string, r io.Reader, extra map[string]string, out any) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile(field, filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, r); err != nil {
			pw.CloseWithError(err)
			return
		}
		for k, v := range extra {
			if err := mw.WriteField(k, v); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		pw.CloseWithError(mw.Close())
	}()

	return c.do(ctx, http.MethodPost, path, pr, mw.FormDataContentType(), out)
}

// UploadBackground replaces the profile background via POST
// /push-background (part name "background").
func (c *HTTPClient) UploadBackground(ctx context.Context, filename string, r io.Reader) error {
	return c.upload(ctx, "/push-background", "background", filename, r, nil, nil)
}

// UploadAvatar replaces the avatar via POST /push-photo (part name
// "avatar").
func (c *HTTPClient) UploadAvatar(ctx context.Context, filename string, r io.Reader) error {
	return c.upload(ctx, "/push-photo", "avatar", filename, r, nil, nil)
}
