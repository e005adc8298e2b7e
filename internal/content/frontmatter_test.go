package content

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestParseFrontMatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   string
		want     FrontMatter
		wantBody string
		wantErr  error
	}{
		{
			name:     "yaml block",
			source:   "---\ntitle: Hello\ndate: 2024-03-01\norder: 2\nstack: [go, html]\n---\n# Body\n",
			want:     FrontMatter{Title: "Hello", Date: "2024-03-01", Order: 2, Stack: []string{"go", "html"}},
			wantBody: "# Body\n",
		},
		{
			name:     "unknown keys ignored",
			source:   "---\ntitle: Hello\ntags: [a]\n---\nx",
			want:     FrontMatter{Title: "Hello"},
			wantBody: "x",
		},
		{
			name:     "json block",
			source:   ";;;\n{\"title\": \"J\", \"repo\": \"https://git.test/j\"}\n;;;\nbody",
			want:     FrontMatter{Title: "J", Repo: "https://git.test/j"},
			wantBody: "body",
		},
		{
			name:     "no block",
			source:   "# Just markdown\n",
			want:     FrontMatter{},
			wantBody: "# Just markdown\n",
		},
		{
			name:     "empty block",
			source:   "---\n---\ntext",
			want:     FrontMatter{},
			wantBody: "text",
		},
		{
			name:     "byte order mark and CRLF",
			source:   "\uFEFF---\r\ntitle: Win\r\n---\r\nbody\r\n",
			want:     FrontMatter{Title: "Win"},
			wantBody: "body\n",
		},
		{
			name:    "malformed yaml",
			source:  "---\ntitle: [unclosed\n---\nbody",
			wantErr: ErrFrontMatter,
		},
		{
			name:    "wrong type",
			source:  "---\norder: first\n---\nbody",
			wantErr: ErrFrontMatter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fm, body, err := ParseFrontMatter([]byte(tt.source))

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseFrontMatter() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFrontMatter() unexpected error: %v", err)
			}
			if fm.Title != tt.want.Title || fm.Date != tt.want.Date || fm.Order != tt.want.Order || fm.Repo != tt.want.Repo {
				t.Errorf("FrontMatter = %+v, want %+v", fm, tt.want)
			}
			if !slices.Equal(fm.Stack, tt.want.Stack) {
				t.Errorf("Stack = %q, want %q", fm.Stack, tt.want.Stack)
			}
			if strings.TrimSpace(string(body)) != strings.TrimSpace(tt.wantBody) {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestFrontMatter_DisplayTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fm   FrontMatter
		want string
	}{
		{name: "title", fm: FrontMatter{Title: "T", Name: "N"}, want: "T"},
		{name: "name", fm: FrontMatter{Name: "N"}, want: "N"},
		{name: "fallback", fm: FrontMatter{}, want: "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.fm.DisplayTitle("file"); got != tt.want {
				t.Errorf("DisplayTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFrontMatter_Picture(t *testing.T) {
	t.Parallel()

	if got := (FrontMatter{Image: "i.png", Thumbnail: "t.png"}).Picture(); got != "t.png" {
		t.Errorf("Picture() = %q, want thumbnail", got)
	}
	if got := (FrontMatter{Image: "i.png"}).Picture(); got != "i.png" {
		t.Errorf("Picture() = %q, want image", got)
	}
}
