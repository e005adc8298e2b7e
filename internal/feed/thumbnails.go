package feed

import (
	"context"
	"mime"
	"net/url"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-sitegen/internal/fileutil"
	"github.com/alnah/go-sitegen/internal/manifest"
	"github.com/alnah/go-sitegen/internal/slug"
)

const (
	defaultImageExt  = ".jpg"
	defaultImageName = "medium"
)

var imageExts = map[string]string{
	".jpg":  ".jpg",
	".jpeg": ".jpeg",
	".png":  ".png",
	".webp": ".webp",
	".gif":  ".gif",
}

// extFromURL returns the image extension of a URL path, lowercased, or "".
func extFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return imageExts[strings.ToLower(path.Ext(u.Path))]
}

// extFromContentType maps an image media type to an extension, or "".
func extFromContentType(ct string) string {
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	switch mediaType {
	case "image/jpeg", "image/jpg", "image/pjpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	return ""
}

// imageNames assigns each remote thumbnail a file base name derived from
// the item slug, or its title, or a generic name. Colliding names get a
// numeric suffix so concurrent downloads never share a file.
func imageNames(items []manifest.Item) []string {
	names := make([]string, len(items))
	used := make(map[string]bool, len(items))
	for i, it := range items {
		if !fileutil.IsURL(it.Thumbnail) {
			continue
		}

		base := slug.Make(it.Slug)
		if base == "" {
			base = slug.Make(it.Title)
		}
		if base == "" {
			base = defaultImageName
		}

		name := base
		for n := 2; used[name]; n++ {
			name = base + "-" + strconv.Itoa(n)
		}
		used[name] = true
		names[i] = name
	}
	return names
}

// localizeThumbnails downloads remote thumbnails into the image directory
// and points the items at the local copies. Items keep their remote URL
// when a download fails. Returns how many items were localized.
func (s *Syncer) localizeThumbnails(ctx context.Context, items []manifest.Item) int {
	names := imageNames(items)
	local := make([]string, len(items))

	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)
	for i, name := range names {
		if name == "" {
			continue
		}
		remote := items[i].Thumbnail
		g.Go(func() error {
			ref, err := s.cacheImage(ctx, remote, name)
			if err != nil {
				s.log.Warn("keeping remote thumbnail", "url", remote, "error", err)
				return nil
			}
			local[i] = ref
			return nil
		})
	}
	_ = g.Wait()

	localized := 0
	for i, ref := range local {
		if ref != "" {
			items[i].Thumbnail = ref
			localized++
		}
	}
	return localized
}

// cacheImage stores the image at remote as <name><ext> in the image
// directory and returns its site path. A file already cached under a
// URL-derived name is reused without a request.
func (s *Syncer) cacheImage(ctx context.Context, remote, name string) (string, error) {
	ext := extFromURL(remote)
	if ext != "" && fileutil.FileExists(filepath.Join(s.opts.ImageDir, name+ext)) {
		return s.imageRef(name + ext), nil
	}

	data, contentType, err := s.get(ctx, remote, "image/*", MaxImageSize)
	if err != nil {
		return "", err
	}
	if ext == "" {
		ext = extFromContentType(contentType)
	}
	if ext == "" {
		ext = defaultImageExt
	}

	file := filepath.Join(s.opts.ImageDir, name+ext)
	if !fileutil.FileExists(file) {
		if err := fileutil.WriteFileAtomic(file, data, 0o644); err != nil {
			return "", err
		}
		s.log.Debug("cached thumbnail", "url", remote, "path", file)
	}
	return s.imageRef(name + ext), nil
}

func (s *Syncer) imageRef(file string) string {
	return strings.TrimSuffix(s.opts.ImageURLPrefix, "/") + "/" + file
}
