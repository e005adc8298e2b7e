// Package assets provides the HTML templates and browser scripts used to
// build the site.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in defaults compiled in with go:embed
//	    ├── FilesystemLoader  - the site's own templates directory
//	    └── AssetResolver     - site first, embedded fallback
//
// A site overrides a built-in template by dropping a file with the same
// name into its templates directory (scripts/templates by default):
//
//	scripts/templates/
//	├── post_template.html        # page shell, %title% %date% %content% %baseurl%
//	├── list_item_template.html   # fallback index entry, %href% %title% %date%
//	├── index_page.html           # fallback index shell, %title% %list% %baseurl%
//	├── project_article.html      # projects page article
//	└── grid_card.html            # prerendered grid card
//
// post_template has no embedded default. Callers use TemplateOrEmpty so a
// missing template reads as empty text rather than an error.
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
