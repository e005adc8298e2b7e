package manifest

import (
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/alnah/go-sitegen/internal/logging"
)

// Validate checks the fields a research item must carry: a title, and
// a link that is not an absolute URL with a scheme other than http(s).
// Dates are free text ("Spring 2024") and are not checked; they only
// affect ordering.
func (it Item) Validate() error {
	return validation.ValidateStruct(&it,
		validation.Field(&it.Title, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("manifest.item.title_required", "title is required")
			}
			return nil
		})),
		validation.Field(&it.Link, validation.By(func(value any) error {
			return validateLink(value.(string))
		})),
	)
}

// validateLink accepts site paths, relative paths and http(s) URLs.
func validateLink(link string) error {
	if link == "" {
		return nil
	}
	u, err := url.Parse(link)
	if err != nil {
		return validation.NewError("manifest.item.link_invalid", "link is not a valid URL or path")
	}
	switch u.Scheme {
	case "":
		return nil
	case "http", "https":
		if u.Host == "" {
			return validation.NewError("manifest.item.link_invalid", "link has no host")
		}
		return nil
	}
	return validation.NewError("manifest.item.link_invalid", "link must be an http(s) URL or a path")
}

// CollectItems reads every *.json file in dir as one item, keeping only
// the published fields (title, date, thumbnail, description, link).
// Unreadable or invalid files are logged and skipped. The result is sorted
// newest first. A missing dir returns os.ErrNotExist.
func CollectItems(dir string, logger logging.Logger) ([]Item, error) {
	logger = logging.OrNop(logger)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	items := make([]Item, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		it, err := readItem(path)
		if err != nil {
			logger.Warn("skipping research item", "file", path, "error", err)
			continue
		}
		items = append(items, it)
	}

	SortByDateDesc(items, ItemDate)
	return items, nil
}

func readItem(path string) (Item, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- file listed from the items dir
	if err != nil {
		return Item{}, err
	}

	var it Item
	if err := json.Unmarshal(data, &it); err != nil {
		return Item{}, errors.Join(ErrMalformed, err)
	}
	if err := it.Validate(); err != nil {
		return Item{}, err
	}

	return Item{
		Title:       it.Title,
		Date:        it.Date,
		Thumbnail:   it.Thumbnail,
		Description: it.Description,
		Link:        it.Link,
	}, nil
}
