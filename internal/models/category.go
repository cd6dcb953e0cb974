package models

// Category is the bucket a changed file is classified into
type Category string

const (
	CategoryCode         Category = "code"
	CategoryDocs         Category = "docs"
	CategoryConfig       Category = "config"
	CategoryTest         Category = "test"
	CategoryDatabase     Category = "database"
	CategoryArchitecture Category = "architecture"
	CategoryManagement   Category = "management"
	CategoryOther        Category = "other"
)

// Categories lists every category in output column order
var Categories = []Category{
	CategoryCode,
	CategoryDocs,
	CategoryConfig,
	CategoryTest,
	CategoryDatabase,
	CategoryArchitecture,
	CategoryManagement,
	CategoryOther,
}

// IsValid reports whether c is one of the known categories
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// DefaultCategoryWeights returns the productivity weight of each category.
// Code carries the most weight, administrative files the least.
func DefaultCategoryWeights() map[Category]float64 {
	return map[Category]float64{
		CategoryCode:         1.0,
		CategoryTest:         0.8,
		CategoryDatabase:     0.8,
		CategoryArchitecture: 0.7,
		CategoryDocs:         0.5,
		CategoryConfig:       0.3,
		CategoryManagement:   0.2,
		CategoryOther:        0.0,
	}
}
