package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuItem belongs to a category of the same restaurant.
type MenuItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index" json:"restaurantId"`
	CategoryID   uuid.UUID `gorm:"type:uuid;not null;index" json:"categoryId"`

	Name          string `gorm:"not null" json:"name"`
	NameAr        string `json:"nameAr"`
	NameEn        string `json:"nameEn"`
	Description   string `gorm:"type:text" json:"description"`
	DescriptionAr string `gorm:"type:text" json:"descriptionAr"`
	DescriptionEn string `gorm:"type:text" json:"descriptionEn"`
	Ingredients   string `gorm:"type:text" json:"ingredients"`
	IngredientsAr string `gorm:"type:text" json:"ingredientsAr"`
	IngredientsEn string `gorm:"type:text" json:"ingredientsEn"`
	Allergens     string `gorm:"type:text" json:"allergens"`
	AllergensAr   string `gorm:"type:text" json:"allergensAr"`
	AllergensEn   string `gorm:"type:text" json:"allergensEn"`

	Price     decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"price"`
	SalePrice decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"salePrice"`

	IsAvailable  bool `gorm:"index" json:"isAvailable"`
	IsVegetarian bool `json:"isVegetarian"`
	IsVegan      bool `json:"isVegan"`
	IsGlutenFree bool `json:"isGlutenFree"`

	Image     *string `gorm:"type:text" json:"image"`
	ImageAlt  string  `json:"imageAlt"`
	SortOrder int     `gorm:"default:0;index" json:"sortOrder"`
	IsActive  bool    `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// OnSale reports whether a sale price is set and below the regular price.
func (m *MenuItem) OnSale() bool {
	return m.SalePrice.Valid && m.SalePrice.Decimal.LessThan(m.Price)
}

// CurrentPrice returns the price a guest pays right now.
func (m *MenuItem) CurrentPrice() decimal.Decimal {
	if m.OnSale() {
		return m.SalePrice.Decimal
	}
	return m.Price
}
