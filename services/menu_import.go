package services

import (
	"context"
	"errors"
	"path"
	"strconv"
	"strings"

	"menuhub-backend/dtos"
	"menuhub-backend/models"

	"github.com/google/uuid"
)

// categoryKey matches category names case- and whitespace-insensitively.
func categoryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ImportMenu creates one item per row, creating categories by name on first
// use. Rows fail independently; the report lists every rejected row.
func (s *Service) ImportMenu(ctx context.Context, scope Scope, restaurantID uuid.UUID, items []dtos.MenuImportItem) (*dtos.ImportReport, error) {
	if _, err := s.loadWritableRestaurant(ctx, s.db, scope, restaurantID); err != nil {
		return nil, err
	}

	var existing []models.Category
	if err := s.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).Find(&existing).Error; err != nil {
		return nil, classify("load categories", err)
	}
	categories := map[string]uuid.UUID{}
	for _, c := range existing {
		for _, name := range []string{c.Name, c.NameAr, c.NameEn} {
			if key := categoryKey(name); key != "" {
				if _, ok := categories[key]; !ok {
					categories[key] = c.ID
				}
			}
		}
	}

	report := &dtos.ImportReport{Total: len(items), Errors: []dtos.ImportError{}}
	for i, row := range items {
		itemName := firstNonEmpty(row.NameAr, row.NameEn, row.Name)
		fail := func(err error) {
			report.Failed++
			importErr := dtos.ImportError{Row: i + 1, Item: itemName, Message: err.Error()}
			var ve *ValidationError
			if errors.As(err, &ve) {
				importErr.Fields = map[string]string{ve.Field: ve.Message}
			}
			report.Errors = append(report.Errors, importErr)
		}

		categoryName := firstNonEmpty(row.CategoryAr, row.CategoryEn, row.Category)
		if categoryKey(categoryName) == "" {
			fail(invalid("category", "is required"))
			continue
		}

		categoryID, ok := uuid.Nil, false
		for _, name := range []string{row.CategoryAr, row.CategoryEn, row.Category} {
			if key := categoryKey(name); key != "" {
				if id, found := categories[key]; found {
					categoryID, ok = id, true
					break
				}
			}
		}
		if !ok {
			categoryForm := NewForm().
				Set("name", row.Category).
				Set("nameAr", row.CategoryAr).
				Set("nameEn", row.CategoryEn)
			category, err := s.CreateCategory(ctx, scope, restaurantID, categoryForm)
			if err != nil {
				fail(err)
				continue
			}
			report.CategoriesCreated++
			categoryID = category.ID
			for _, name := range []string{row.CategoryAr, row.CategoryEn, row.Category} {
				if key := categoryKey(name); key != "" {
					categories[key] = categoryID
				}
			}
		}

		form := NewForm().
			Set("categoryId", categoryID.String()).
			Set("name", row.Name).
			Set("nameAr", row.NameAr).
			Set("nameEn", row.NameEn).
			Set("descriptionAr", row.DescriptionAr).
			Set("descriptionEn", row.DescriptionEn).
			Set("ingredientsAr", row.IngredientsAr).
			Set("ingredientsEn", row.IngredientsEn).
			Set("allergensAr", row.AllergensAr).
			Set("allergensEn", row.AllergensEn).
			Set("price", row.Price).
			Set("salePrice", row.SalePrice).
			Set("isVegetarian", strconv.FormatBool(row.IsVegetarian)).
			Set("isVegan", strconv.FormatBool(row.IsVegan)).
			Set("isGlutenFree", strconv.FormatBool(row.IsGlutenFree)).
			Set("sortOrder", strconv.Itoa(row.SortOrder)).
			Set("imageAlt", row.ImageAlt)
		if row.IsAvailable != nil {
			form.Set("isAvailable", strconv.FormatBool(*row.IsAvailable))
		}

		if row.ImageURL != "" {
			data, contentType, err := s.fetchImage(ctx, row.ImageURL, s.maxImageBytes)
			if err != nil {
				fail(invalid("imageUrl", "%v", err))
				continue
			}
			form.SetFile("image", path.Base(row.ImageURL), contentType, data)
		}

		if _, err := s.CreateMenuItem(ctx, scope, restaurantID, form); err != nil {
			fail(err)
			continue
		}
		report.Created++
	}
	return report, nil
}
