package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Response size limits.
const (
	MaxFeedSize  = 10 << 20
	MaxImageSize = 10 << 20
)

const (
	rssAccept  = "application/rss+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5"
	jsonAccept = "application/json"
)

// get performs a GET and returns the body of a 2xx response, read up to
// limit bytes, with its Content-Type.
func (s *Syncer) get(ctx context.Context, url, accept string, limit int64) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", s.opts.UserAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, "", &StatusError{URL: url, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", url, err)
	}
	if int64(len(body)) > limit {
		return nil, "", fmt.Errorf("%w: %s", ErrResponseTooLarge, url)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// StatusError reports a non-2xx response. It matches ErrUnexpectedStatus.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s: %d %s", ErrUnexpectedStatus, e.URL, e.Code, http.StatusText(e.Code))
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }
