package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// aggregatorResponse is the subset of the rss2json API response used.
type aggregatorResponse struct {
	Status  string           `json:"status"`
	Message string           `json:"message"`
	Items   []aggregatorItem `json:"items"`
}

type aggregatorItem struct {
	Title       string          `json:"title"`
	PubDate     string          `json:"pubDate"`
	Link        string          `json:"link"`
	Thumbnail   string          `json:"thumbnail"`
	Description string          `json:"description"`
	Content     string          `json:"content"`
	Enclosure   json.RawMessage `json:"enclosure"` // Object, or [] when absent
}

type aggregatorEnclosure struct {
	Link string `json:"link"`
	Type string `json:"type"`
}

// enclosureImage returns the enclosure link when it is an image, or has no
// declared type.
func (it aggregatorItem) enclosureImage() string {
	var enc aggregatorEnclosure
	if len(it.Enclosure) == 0 || json.Unmarshal(it.Enclosure, &enc) != nil {
		return ""
	}
	if enc.Type != "" && !strings.HasPrefix(enc.Type, "image/") {
		return ""
	}
	return enc.Link
}

// fallbackURL builds the aggregator request for the configured feed.
func (s *Syncer) fallbackURL() (string, error) {
	u, err := url.Parse(s.opts.FallbackURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("rss_url", s.opts.FeedURL)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// fetchFallback asks the aggregator for the feed's entries.
func (s *Syncer) fetchFallback(ctx context.Context) ([]entry, error) {
	endpoint, err := s.fallbackURL()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFallbackFailed, err)
	}

	body, _, err := s.get(ctx, endpoint, jsonAccept, MaxFeedSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFallbackFailed, err)
	}

	var resp aggregatorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrFallbackFailed, err)
	}
	if resp.Status != "" && resp.Status != "ok" {
		return nil, fmt.Errorf("%w: status %q: %s", ErrFallbackFailed, resp.Status, resp.Message)
	}

	entries := make([]entry, 0, len(resp.Items))
	for _, it := range resp.Items {
		text := it.Description
		if text == "" {
			text = it.Content
		}
		markup := it.Content
		if markup == "" {
			markup = it.Description
		}
		entries = append(entries, entry{
			title:  it.Title,
			link:   it.Link,
			date:   it.PubDate,
			text:   text,
			images: []string{it.Thumbnail, it.enclosureImage(), firstImage(markup)},
		})
	}
	return entries, nil
}
