package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPStore downloads from an object-storage HTTP API laid out as
// {baseURL}/{bucket}/{path}, authenticating with a bearer token.
type HTTPStore struct {
	baseURL string
	bucket  string
	token   string
	client  *http.Client
}

func NewHTTPStore(baseURL, bucket, token string, client *http.Client) *HTTPStore {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		bucket:  bucket,
		token:   token,
		client:  client,
	}
}

func (s *HTTPStore) Download(ctx context.Context, path string) ([]byte, error) {
	rel, err := cleanPath(path)
	if err != nil {
		return nil, err
	}

	segments := strings.Split(rel, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	objectURL := fmt.Sprintf("%s/%s/%s", s.baseURL, url.PathEscape(s.bucket), strings.Join(segments, "/"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, objectURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building download request: %w", err)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading document: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode >= http.StatusBadRequest:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("downloading document: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading document body: %w", err)
	}
	if len(data) > MaxDocumentSize {
		return nil, tooLarge()
	}
	return data, nil
}
