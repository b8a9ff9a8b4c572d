package queries

// ListCategoriesQuery asks for the display catalog
type ListCategoriesQuery struct{}

// Validate validates the ListCategoriesQuery
func (q ListCategoriesQuery) Validate() error {
	return nil
}

// ListCategoriesResult represents the catalog with counts
type ListCategoriesResult struct {
	Categories []CategoryView `json:"categories"`
}
