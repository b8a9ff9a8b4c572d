package entities

// Fallback presentation for category ids missing from the catalog
const (
	FallbackCategoryName  = "Other"
	FallbackCategoryColor = "#6b7280"
)

// Category is a display entry for a category id
type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// DefaultCategories returns the built-in catalog
func DefaultCategories() []Category {
	return []Category{
		{ID: "work", Name: "Work", Color: "#3b82f6"},
		{ID: "personal", Name: "Personal", Color: "#10b981"},
		{ID: "study", Name: "Study", Color: "#f59e0b"},
		{ID: "other", Name: "Other", Color: "#6b7280"},
	}
}

// CategoryCatalog is an ordered, read-only set of categories
type CategoryCatalog struct {
	ordered []Category
	byID    map[string]Category
}

// NewCategoryCatalog builds a catalog. Later duplicates of an id are ignored.
func NewCategoryCatalog(categories []Category) CategoryCatalog {
	c := CategoryCatalog{
		ordered: make([]Category, 0, len(categories)),
		byID:    make(map[string]Category, len(categories)),
	}
	for _, cat := range categories {
		if cat.ID == "" {
			continue
		}
		if _, exists := c.byID[cat.ID]; exists {
			continue
		}
		c.byID[cat.ID] = cat
		c.ordered = append(c.ordered, cat)
	}
	return c
}

// Lookup returns the category for id, if known
func (c CategoryCatalog) Lookup(id string) (Category, bool) {
	cat, ok := c.byID[id]
	return cat, ok
}

// Resolve returns the category for id or the fallback presentation
func (c CategoryCatalog) Resolve(id string) Category {
	if cat, ok := c.byID[id]; ok {
		return cat
	}
	return Category{ID: id, Name: FallbackCategoryName, Color: FallbackCategoryColor}
}

// All returns the categories in catalog order
func (c CategoryCatalog) All() []Category {
	out := make([]Category, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len returns the number of categories
func (c CategoryCatalog) Len() int {
	return len(c.ordered)
}
