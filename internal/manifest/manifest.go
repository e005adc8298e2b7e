// Package manifest defines the JSON records the site publishes for its
// content grids and directory indexes, and the operations that order,
// merge and persist them.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-sitegen/internal/dateutil"
	"github.com/alnah/go-sitegen/internal/fileutil"
)

// ErrMalformed indicates a manifest file exists but is not a JSON list.
var ErrMalformed = errors.New("malformed manifest")

// Item is one card of a content grid: a local page, a research item or a
// remote feed entry.
//
// Keys a manifest carries beyond the named fields are kept in Extra and
// written back after them, sorted by key.
type Item struct {
	Title       string   `json:"title"`
	Date        string   `json:"date,omitempty"`
	Slug        string   `json:"slug,omitempty"`
	Description string   `json:"description,omitempty"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	Link        string   `json:"link,omitempty"`
	Stack       []string `json:"stack,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var itemFields = []string{"title", "date", "slug", "description", "thumbnail", "link", "stack"}

// isItemField matches the way encoding/json assigns object keys to
// struct fields, case-insensitively.
func isItemField(key string) bool {
	return slices.ContainsFunc(itemFields, func(f string) bool {
		return strings.EqualFold(f, key)
	})
}

// UnmarshalJSON decodes the named fields and collects every other key
// into Extra.
func (it *Item) UnmarshalJSON(data []byte) error {
	type fields Item
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	maps.DeleteFunc(raw, func(k string, _ json.RawMessage) bool { return isItemField(k) })
	if len(raw) == 0 {
		raw = nil
	}

	f.Extra = raw
	*it = Item(f)
	return nil
}

// MarshalJSON encodes the named fields followed by Extra.
func (it Item) MarshalJSON() ([]byte, error) {
	type fields Item
	base, err := marshal(fields(it))
	if err != nil {
		return nil, err
	}
	if len(it.Extra) == 0 {
		return base, nil
	}

	var buf bytes.Buffer
	buf.Write(base[:len(base)-1])
	for _, k := range slices.Sorted(maps.Keys(it.Extra)) {
		if isItemField(k) {
			continue
		}
		name, err := marshal(k)
		if err != nil {
			return nil, err
		}
		value := it.Extra[k]
		if len(value) == 0 {
			value = json.RawMessage("null")
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Page is the directory index record of a rendered markdown file.
type Page struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	MD          string `json:"md"`
	HTML        string `json:"html"`

	SourcePath string `json:"-"`
	OutputPath string `json:"-"`
}

// SortByDateDesc stably orders items newest first. Dates are parsed with
// dateutil.Parse; items whose date is missing or unparsable sort after all
// dated items and keep their relative order.
func SortByDateDesc[T any](items []T, date func(T) string) {
	type keyed struct {
		item  T
		at    time.Time
		valid bool
	}

	ks := make([]keyed, len(items))
	for i, it := range items {
		at, err := dateutil.Parse(date(it))
		ks[i] = keyed{item: it, at: at, valid: err == nil}
	}

	slices.SortStableFunc(ks, func(a, b keyed) int {
		switch {
		case a.valid && !b.valid:
			return -1
		case !a.valid && b.valid:
			return 1
		case !a.valid && !b.valid:
			return 0
		}
		return b.at.Compare(a.at)
	})

	for i := range ks {
		items[i] = ks[i].item
	}
}

// ItemDate returns an item's date, for SortByDateDesc.
func ItemDate(it Item) string { return it.Date }

// PageDate returns a page's date, for SortByDateDesc.
func PageDate(p Page) string { return p.Date }

// Read loads a list of items. A missing file returns an error matching
// os.ErrNotExist; content that is not a JSON list returns ErrMalformed.
func Read(path string) ([]Item, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- site path from config
	if err != nil {
		return nil, err
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return items, nil
}

// Encode renders v as the on-disk manifest format: two-space indented
// JSON with a trailing newline and no HTML escaping.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write persists items at path as a JSON list, creating parent
// directories. The file is replaced atomically and only when its content
// changes; the result reports whether it did.
func Write[T any](path string, items []T) (bool, error) {
	if items == nil {
		items = []T{}
	}
	data, err := Encode(items)
	if err != nil {
		return false, fmt.Errorf("encoding %s: %w", path, err)
	}
	return fileutil.WriteIfChanged(path, data, 0o644)
}
