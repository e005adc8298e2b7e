package assets

// Asset names shared by the pipeline stages.
const (
	// PostTemplate wraps every rendered markdown page. It has no built-in
	// default: a site that does not provide one gets empty pages.
	PostTemplate = "post_template"

	// ListItemTemplate renders one entry of a fallback directory index.
	ListItemTemplate = "list_item_template"

	// IndexPageTemplate wraps the list of a fallback directory index.
	IndexPageTemplate = "index_page"

	// ProjectArticleTemplate renders one project article for the host page.
	ProjectArticleTemplate = "project_article"

	// GridCardTemplate renders one prerendered grid card.
	GridCardTemplate = "grid_card"

	// GridScript is the browser hydrator for manifest-driven grids.
	GridScript = "grid"
)

// TemplateOrEmpty loads a template, treating a missing one as empty text.
// Other failures (invalid name, unreadable file) are returned.
func TemplateOrEmpty(loader AssetLoader, name string) (string, error) {
	content, err := loader.LoadTemplate(name)
	if err != nil {
		if IsNotFound(err) {
			return "", nil
		}
		return "", err
	}
	return content, nil
}
