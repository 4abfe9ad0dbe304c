package services

import (
	"context"
	"errors"

	"menuhub-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const unnamedItem = "Unnamed Item"

// bilingualFamilies are the item fields stored as base, Ar and En columns.
var bilingualFamilies = []struct{ key, column string }{
	{"description", "description"},
	{"ingredients", "ingredients"},
	{"allergens", "allergens"},
}

var menuItemTextFields = []textField{
	{key: "nameAr", column: "name_ar"},
	{key: "nameEn", column: "name_en"},
	{key: "descriptionAr", column: "description_ar"},
	{key: "descriptionEn", column: "description_en"},
	{key: "ingredientsAr", column: "ingredients_ar"},
	{key: "ingredientsEn", column: "ingredients_en"},
	{key: "allergensAr", column: "allergens_ar"},
	{key: "allergensEn", column: "allergens_en"},
	{key: "imageAlt", column: "image_alt"},
}

var menuItemFlags = []struct {
	key    string
	column string
	def    bool
}{
	{"isAvailable", "is_available", true},
	{"isVegetarian", "is_vegetarian", false},
	{"isVegan", "is_vegan", false},
	{"isGlutenFree", "is_gluten_free", false},
	{"isActive", "is_active", true},
}

// parsePrices reads price and salePrice. A sale price must be strictly
// lower than the regular price.
func parsePrices(form *Form, requirePrice bool, currentPrice decimal.Decimal, currentSale decimal.NullDecimal) (decimal.Decimal, decimal.NullDecimal, error) {
	price := currentPrice
	if requirePrice || form.Has("price") {
		p, ok, err := form.Decimal("price")
		if err != nil {
			return price, currentSale, err
		}
		if !ok {
			return price, currentSale, invalid("price", "is required")
		}
		price = p
	}

	sale := currentSale
	if form.Has("salePrice") {
		sp, ok, err := form.Decimal("salePrice")
		if err != nil {
			return price, sale, err
		}
		sale = decimal.NullDecimal{Decimal: sp, Valid: ok}
	}
	if sale.Valid && !sale.Decimal.LessThan(price) {
		return price, sale, invalid("salePrice", "must be lower than price")
	}
	return price.Round(2), roundNull(sale), nil
}

func roundNull(d decimal.NullDecimal) decimal.NullDecimal {
	if !d.Valid {
		return d
	}
	return decimal.NewNullDecimal(d.Decimal.Round(2))
}

// ownedCategory checks that categoryID names a category of restaurantID.
func ownedCategory(ctx context.Context, tx *gorm.DB, restaurantID uuid.UUID, raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, invalid("categoryId", "is required")
	}
	categoryID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, invalid("categoryId", "is not a valid id")
	}
	var category models.Category
	if err := tx.WithContext(ctx).First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, &IntegrityError{Op: "link category", Err: err}
		}
		return uuid.Nil, err
	}
	if category.RestaurantID != restaurantID {
		return uuid.Nil, &IntegrityError{Op: "link category", Err: ErrCategoryMismatch}
	}
	return categoryID, nil
}

func (s *Service) CreateMenuItem(ctx context.Context, scope Scope, restaurantID uuid.UUID, form *Form) (*models.MenuItem, error) {
	restaurant, err := s.loadWritableRestaurant(ctx, s.db, scope, restaurantID)
	if err != nil {
		return nil, err
	}
	if form.Get("categoryId") == "" {
		return nil, invalid("categoryId", "is required")
	}
	price, sale, err := parsePrices(form, true, decimal.Zero, decimal.NullDecimal{})
	if err != nil {
		return nil, err
	}
	categoryID, err := ownedCategory(ctx, s.db, restaurant.ID, form.Get("categoryId"))
	if err != nil {
		return nil, err
	}

	nameAr, nameEn := form.Get("nameAr"), form.Get("nameEn")
	item := &models.MenuItem{
		RestaurantID:  restaurant.ID,
		CategoryID:    categoryID,
		Name:          firstNonEmpty(nameAr, nameEn, form.Get("name"), unnamedItem),
		NameAr:        nameAr,
		NameEn:        nameEn,
		DescriptionAr: form.Get("descriptionAr"),
		DescriptionEn: form.Get("descriptionEn"),
		IngredientsAr: form.Get("ingredientsAr"),
		IngredientsEn: form.Get("ingredientsEn"),
		AllergensAr:   form.Get("allergensAr"),
		AllergensEn:   form.Get("allergensEn"),
		Price:         price,
		SalePrice:     sale,
		IsAvailable:   form.Bool("isAvailable", true),
		IsVegetarian:  form.Bool("isVegetarian", false),
		IsVegan:       form.Bool("isVegan", false),
		IsGlutenFree:  form.Bool("isGlutenFree", false),
		ImageAlt:      form.Get("imageAlt"),
		SortOrder:     form.Int("sortOrder", 0),
		IsActive:      form.Bool("isActive", true),
	}
	item.Description = firstNonEmpty(item.DescriptionAr, item.DescriptionEn, form.Get("description"))
	item.Ingredients = firstNonEmpty(item.IngredientsAr, item.IngredientsEn, form.Get("ingredients"))
	item.Allergens = firstNonEmpty(item.AllergensAr, item.AllergensEn, form.Get("allergens"))
	if item.ImageAlt == "" {
		item.ImageAlt = item.Name
	}
	if item.Image, err = s.ingest(ctx, form, "image"); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(item).Error
	})
	if err != nil {
		return nil, classify("create menu item", err)
	}

	s.views.Invalidate(menuViews(restaurant.Slug)...)
	return item, nil
}

func (s *Service) loadMenuItem(ctx context.Context, tx *gorm.DB, scope Scope, id uuid.UUID) (*models.MenuItem, *models.Restaurant, error) {
	var item models.MenuItem
	if err := tx.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, nil, classify("load menu item", err)
	}
	restaurant, err := s.loadWritableRestaurant(ctx, tx, scope, item.RestaurantID)
	if err != nil {
		return nil, nil, err
	}
	return &item, restaurant, nil
}

// UpdateMenuItem applies a partial update. A submitted categoryId is checked
// against the item's restaurant again.
func (s *Service) UpdateMenuItem(ctx context.Context, scope Scope, id uuid.UUID, form *Form) (*models.MenuItem, error) {
	item, restaurant, err := s.loadMenuItem(ctx, s.db, scope, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if err := collectText(form, updates, menuItemTextFields); err != nil {
		return nil, err
	}
	if form.Has("price") || form.Has("salePrice") {
		price, sale, err := parsePrices(form, false, item.Price, item.SalePrice)
		if err != nil {
			return nil, err
		}
		updates["price"] = price
		updates["sale_price"] = sale
	}
	if form.Has("categoryId") {
		categoryID, err := ownedCategory(ctx, s.db, item.RestaurantID, form.Get("categoryId"))
		if err != nil {
			return nil, err
		}
		updates["category_id"] = categoryID
	}
	if anySubmitted(form, "nameAr", "nameEn", "name") {
		updates["name"] = firstNonEmpty(
			merged(form, "nameAr", item.NameAr),
			merged(form, "nameEn", item.NameEn),
			form.Get("name"),
			unnamedItem,
		)
	}
	current := map[string][2]string{
		"description": {item.DescriptionAr, item.DescriptionEn},
		"ingredients": {item.IngredientsAr, item.IngredientsEn},
		"allergens":   {item.AllergensAr, item.AllergensEn},
	}
	for _, family := range bilingualFamilies {
		if anySubmitted(form, family.key+"Ar", family.key+"En", family.key) {
			updates[family.column] = firstNonEmpty(
				merged(form, family.key+"Ar", current[family.key][0]),
				merged(form, family.key+"En", current[family.key][1]),
				form.Get(family.key),
			)
		}
	}
	for _, flag := range menuItemFlags {
		if form.Has(flag.key) {
			updates[flag.column] = form.Bool(flag.key, flag.def)
		}
	}
	if form.Has("sortOrder") {
		updates["sort_order"] = form.Int("sortOrder", 0)
	}
	if err := s.collectImage(ctx, form, "image", "image", updates); err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(item).Updates(updates).Error; err != nil {
				return err
			}
			return tx.First(item, "id = ?", item.ID).Error
		})
		if err != nil {
			return nil, classify("update menu item", err)
		}
	}

	s.views.Invalidate(menuViews(restaurant.Slug)...)
	return item, nil
}

// SetMenuItemAvailability is the dashboard's quick sold-out toggle.
func (s *Service) SetMenuItemAvailability(ctx context.Context, scope Scope, id uuid.UUID, available bool) (*models.MenuItem, error) {
	item, restaurant, err := s.loadMenuItem(ctx, s.db, scope, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(item).Update("is_available", available).Error; err != nil {
		return nil, classify("set availability", err)
	}
	item.IsAvailable = available

	s.views.Invalidate(menuViews(restaurant.Slug)...)
	return item, nil
}

func (s *Service) DeleteMenuItem(ctx context.Context, scope Scope, id uuid.UUID) error {
	var slug string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, restaurant, err := s.loadMenuItem(ctx, tx, scope, id)
		if err != nil {
			return err
		}
		slug = restaurant.Slug
		return tx.Delete(item).Error
	})
	if err != nil {
		return classify("delete menu item", err)
	}

	s.views.Invalidate(menuViews(slug)...)
	return nil
}
