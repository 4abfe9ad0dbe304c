package services

import (
	"context"

	"menuhub-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const unnamedCategory = "Unnamed Category"

var categoryTextFields = []textField{
	{key: "nameAr", column: "name_ar"},
	{key: "nameEn", column: "name_en"},
	{key: "descriptionAr", column: "description_ar"},
	{key: "descriptionEn", column: "description_en"},
}

func (s *Service) CreateCategory(ctx context.Context, scope Scope, restaurantID uuid.UUID, form *Form) (*models.Category, error) {
	restaurant, err := s.loadWritableRestaurant(ctx, s.db, scope, restaurantID)
	if err != nil {
		return nil, err
	}

	nameAr, nameEn := form.Get("nameAr"), form.Get("nameEn")
	descAr, descEn := form.Get("descriptionAr"), form.Get("descriptionEn")
	category := &models.Category{
		RestaurantID:  restaurant.ID,
		Name:          firstNonEmpty(nameAr, nameEn, form.Get("name"), unnamedCategory),
		NameAr:        nameAr,
		NameEn:        nameEn,
		Description:   firstNonEmpty(descAr, descEn, form.Get("description")),
		DescriptionAr: descAr,
		DescriptionEn: descEn,
		SortOrder:     form.Int("sortOrder", 0),
		IsActive:      form.Bool("isActive", true),
	}
	if category.Image, err = s.ingest(ctx, form, "image"); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(category).Error
	})
	if err != nil {
		return nil, classify("create category", err)
	}

	s.views.Invalidate(menuViews(restaurant.Slug)...)
	return category, nil
}

// loadCategory fetches a category and the restaurant that owns it, checking
// the restaurant is inside scope.
func (s *Service) loadCategory(ctx context.Context, tx *gorm.DB, scope Scope, id uuid.UUID) (*models.Category, *models.Restaurant, error) {
	var category models.Category
	if err := tx.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, nil, classify("load category", err)
	}
	restaurant, err := s.loadWritableRestaurant(ctx, tx, scope, category.RestaurantID)
	if err != nil {
		return nil, nil, err
	}
	return &category, restaurant, nil
}

// UpdateCategory applies a partial update. Keys missing from the form keep
// their stored value.
func (s *Service) UpdateCategory(ctx context.Context, scope Scope, id uuid.UUID, form *Form) (*models.Category, error) {
	category, restaurant, err := s.loadCategory(ctx, s.db, scope, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if err := collectText(form, updates, categoryTextFields); err != nil {
		return nil, err
	}
	if anySubmitted(form, "nameAr", "nameEn", "name") {
		updates["name"] = firstNonEmpty(
			merged(form, "nameAr", category.NameAr),
			merged(form, "nameEn", category.NameEn),
			form.Get("name"),
			unnamedCategory,
		)
	}
	if anySubmitted(form, "descriptionAr", "descriptionEn", "description") {
		updates["description"] = firstNonEmpty(
			merged(form, "descriptionAr", category.DescriptionAr),
			merged(form, "descriptionEn", category.DescriptionEn),
			form.Get("description"),
		)
	}
	if form.Has("sortOrder") {
		updates["sort_order"] = form.Int("sortOrder", 0)
	}
	if form.Has("isActive") {
		updates["is_active"] = form.Bool("isActive", true)
	}
	if err := s.collectImage(ctx, form, "image", "image", updates); err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(category).Updates(updates).Error; err != nil {
				return err
			}
			return tx.First(category, "id = ?", category.ID).Error
		})
		if err != nil {
			return nil, classify("update category", err)
		}
	}

	s.views.Invalidate(menuViews(restaurant.Slug)...)
	return category, nil
}

// DeleteCategory removes the category and every item in it.
func (s *Service) DeleteCategory(ctx context.Context, scope Scope, id uuid.UUID) error {
	var slug string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, restaurant, err := s.loadCategory(ctx, tx, scope, id)
		if err != nil {
			return err
		}
		slug = restaurant.Slug
		if err := tx.Where("category_id = ?", category.ID).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(category).Error
	})
	if err != nil {
		return classify("delete category", err)
	}

	s.views.Invalidate(menuViews(slug)...)
	return nil
}
