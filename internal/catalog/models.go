package catalog

// Category is a named product grouping, managed by the catalog backend.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Subcategory groups products under a category. It is the scope at which
// quantity pricing rules are defined; this service only ever reads it.
type Subcategory struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
	// Category carries the denormalized category name for display.
	Category string `json:"category"`
}
