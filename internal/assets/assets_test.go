package assets

import (
	"errors"
	"testing"
)

// stubLoader returns a fixed template or error for any name.
type stubLoader struct {
	content string
	err     error
}

func (s stubLoader) LoadTemplate(string) (string, error) { return s.content, s.err }
func (s stubLoader) LoadScript(string) (string, error)   { return s.content, s.err }

func TestTemplateOrEmpty(t *testing.T) {
	t.Parallel()

	readErr := errors.New("disk on fire")

	tests := []struct {
		name    string
		loader  AssetLoader
		want    string
		wantErr error
	}{
		{
			name:   "present template",
			loader: stubLoader{content: "<p>%title%</p>"},
			want:   "<p>%title%</p>",
		},
		{
			name:   "missing template reads as empty",
			loader: stubLoader{err: ErrTemplateNotFound},
			want:   "",
		},
		{
			name:    "read error is returned",
			loader:  stubLoader{err: readErr},
			wantErr: readErr,
		},
		{
			name:    "invalid name is returned",
			loader:  stubLoader{err: ErrInvalidAssetName},
			wantErr: ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := TemplateOrEmpty(tt.loader, "any")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("TemplateOrEmpty() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("TemplateOrEmpty() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("TemplateOrEmpty() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTemplateOrEmpty_EmbeddedPostTemplate(t *testing.T) {
	t.Parallel()

	got, err := TemplateOrEmpty(NewEmbeddedLoader(), PostTemplate)
	if err != nil {
		t.Fatalf("TemplateOrEmpty() error = %v", err)
	}
	if got != "" {
		t.Errorf("TemplateOrEmpty() = %q, want empty", got)
	}
}
