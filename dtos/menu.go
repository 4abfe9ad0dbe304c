package dtos

import (
	"time"

	"github.com/google/uuid"
)

// MenuItemView is a menu item as sent over the wire. Prices are strings
// with two decimals so no precision is lost in transport.
type MenuItemView struct {
	ID            uuid.UUID `json:"id"`
	CategoryID    uuid.UUID `json:"categoryId"`
	Name          string    `json:"name"`
	NameAr        string    `json:"nameAr"`
	NameEn        string    `json:"nameEn"`
	Description   string    `json:"description"`
	DescriptionAr string    `json:"descriptionAr"`
	DescriptionEn string    `json:"descriptionEn"`
	Ingredients   string    `json:"ingredients"`
	IngredientsAr string    `json:"ingredientsAr"`
	IngredientsEn string    `json:"ingredientsEn"`
	Allergens     string    `json:"allergens"`
	AllergensAr   string    `json:"allergensAr"`
	AllergensEn   string    `json:"allergensEn"`

	DisplayName        string `json:"displayName"`
	DisplayDescription string `json:"displayDescription"`
	DisplayIngredients string `json:"displayIngredients"`
	DisplayAllergens   string `json:"displayAllergens"`

	Price     string  `json:"price"`
	SalePrice *string `json:"salePrice"`

	IsAvailable  bool `json:"isAvailable"`
	IsVegetarian bool `json:"isVegetarian"`
	IsVegan      bool `json:"isVegan"`
	IsGlutenFree bool `json:"isGlutenFree"`

	Image     *string `json:"image"`
	ImageAlt  string  `json:"imageAlt"`
	SortOrder int     `json:"sortOrder"`
	IsActive  bool    `json:"isActive"`
}

type CategoryView struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	NameAr        string    `json:"nameAr"`
	NameEn        string    `json:"nameEn"`
	Description   string    `json:"description"`
	DescriptionAr string    `json:"descriptionAr"`
	DescriptionEn string    `json:"descriptionEn"`

	DisplayName        string `json:"displayName"`
	DisplayDescription string `json:"displayDescription"`

	Image     *string        `json:"image"`
	SortOrder int            `json:"sortOrder"`
	IsActive  bool           `json:"isActive"`
	Items     []MenuItemView `json:"items"`
}

// RestaurantView is the public face of a restaurant. Credentials never
// appear here.
type RestaurantView struct {
	ID            uuid.UUID `json:"id"`
	Slug          string    `json:"slug"`
	Name          string    `json:"name"`
	NameAr        string    `json:"nameAr"`
	NameEn        string    `json:"nameEn"`
	DescriptionAr string    `json:"descriptionAr"`
	DescriptionEn string    `json:"descriptionEn"`

	DisplayName        string `json:"displayName"`
	DisplayDescription string `json:"displayDescription"`
	DisplayAddress     string `json:"displayAddress"`

	Logo        *string `json:"logo"`
	BannerColor string  `json:"bannerColor"`
	BannerImage *string `json:"bannerImage"`

	Address       string `json:"address"`
	AddressAr     string `json:"addressAr"`
	AddressEn     string `json:"addressEn"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	GoogleMapsURL string `json:"googleMapsUrl"`
	FacebookURL   string `json:"facebookUrl"`
	InstagramURL  string `json:"instagramUrl"`

	IsActive bool `json:"isActive"`
}

// MenuView is the nested restaurant, categories and items shape returned by
// both the public menu and the management view.
type MenuView struct {
	Language   string         `json:"language"`
	Restaurant RestaurantView `json:"restaurant"`
	Categories []CategoryView `json:"categories"`
}

// AboutSectionView is one about-page section; Key is story, mission,
// vision, chef or history.
type AboutSectionView struct {
	Key    string  `json:"key"`
	Text   string  `json:"text"`
	TextAr string  `json:"textAr"`
	TextEn string  `json:"textEn"`
	Image  *string `json:"image"`
}

type AboutView struct {
	Language   string             `json:"language"`
	Restaurant RestaurantView     `json:"restaurant"`
	Sections   []AboutSectionView `json:"sections"`
}

// RestaurantSummary is one row of the admin console listing.
type RestaurantSummary struct {
	ID            uuid.UUID `json:"id"`
	Slug          string    `json:"slug"`
	Name          string    `json:"name"`
	NameAr        string    `json:"nameAr"`
	NameEn        string    `json:"nameEn"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	IsActive      bool      `json:"isActive"`
	CategoryCount int64     `json:"categoryCount"`
	ItemCount     int64     `json:"itemCount"`
	CreatedAt     time.Time `json:"createdAt"`
}
