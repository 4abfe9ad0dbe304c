package dtos

// MenuImportRequest is a bulk item import for one restaurant.
type MenuImportRequest struct {
	Items []MenuImportItem `json:"items" binding:"required,min=1,max=1000,dive"`
}

// MenuImportItem is one imported row. Categories are matched by name and
// created on first use.
type MenuImportItem struct {
	Category      string `json:"category"`
	CategoryAr    string `json:"categoryAr"`
	CategoryEn    string `json:"categoryEn"`
	Name          string `json:"name"`
	NameAr        string `json:"nameAr"`
	NameEn        string `json:"nameEn"`
	DescriptionAr string `json:"descriptionAr"`
	DescriptionEn string `json:"descriptionEn"`
	IngredientsAr string `json:"ingredientsAr"`
	IngredientsEn string `json:"ingredientsEn"`
	AllergensAr   string `json:"allergensAr"`
	AllergensEn   string `json:"allergensEn"`
	Price         string `json:"price"`
	SalePrice     string `json:"salePrice"`
	IsAvailable   *bool  `json:"isAvailable"`
	IsVegetarian  bool   `json:"isVegetarian"`
	IsVegan       bool   `json:"isVegan"`
	IsGlutenFree  bool   `json:"isGlutenFree"`
	SortOrder     int    `json:"sortOrder"`
	ImageURL      string `json:"imageUrl" binding:"omitempty,url"`
	ImageAlt      string `json:"imageAlt"`
}

// ImportReport summarizes a finished import.
type ImportReport struct {
	Total             int           `json:"total"`
	Created           int           `json:"created"`
	CategoriesCreated int           `json:"categoriesCreated"`
	Failed            int           `json:"failed"`
	Errors            []ImportError `json:"errors"`
}

// ImportError represents a single rejected row
type ImportError struct {
	Row     int               `json:"row"`  // 1-based row in the request or sheet
	Item    string            `json:"item"` // Item name
	Fields  map[string]string `json:"fields"`
	Message string            `json:"message"`
}
