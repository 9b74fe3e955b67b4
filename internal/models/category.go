package models

// Category is a semantic bucket with a priority-ordered keyword list.
// Category order in configuration is load-bearing: classification returns
// the first category whose keywords match, so more specific categories must
// precede broader ones.
type Category struct {
	Key         string   `json:"key"         yaml:"key"`
	Name        string   `json:"name"        yaml:"name"`
	Icon        string   `json:"icon"        yaml:"icon"`
	Description string   `json:"description" yaml:"description"`
	Keywords    []string `json:"keywords,omitempty" yaml:"keywords"`
}

// CategoryCatalog is the per-category output file.
type CategoryCatalog struct {
	Category      string         `json:"category"`
	Name          string         `json:"name"`
	Icon          string         `json:"icon"`
	Description   string         `json:"description"`
	TotalProducts int            `json:"total_products"`
	TotalGroups   int            `json:"total_groups"`
	Groups        []VariantGroup `json:"groups"`
}

// CategoryStat is one entry in the global category index.
type CategoryStat struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Products    int    `json:"products"`
	Groups      int    `json:"groups"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
}

// CategoryIndex is the global category index, sorted by product count
// descending.
type CategoryIndex struct {
	TotalProducts int            `json:"total_products"`
	Categories    []CategoryStat `json:"categories"`
}
