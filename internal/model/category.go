package model

// Category tags transactions and owns sub-categories.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SubCategory belongs to exactly one Category.
type SubCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id"`
}

// CategoryDetail is the wrapper record the categories endpoint returns: the
// category itself plus its sub-categories.
type CategoryDetail struct {
	Category      Category      `json:"category"`
	SubCategories []SubCategory `json:"sub_category"`
}

// SubCategoryDetail is the wrapper record the sub-categories endpoint
// returns: the sub-category plus its parent category.
type SubCategoryDetail struct {
	SubCategory SubCategory `json:"sub_category"`
	Category    Category    `json:"category"`
}
