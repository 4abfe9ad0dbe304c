package services

import (
	"context"
	"strings"

	"menuhub-backend/dtos"
	"menuhub-backend/models"
	"menuhub-backend/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const displayOrder = "sort_order ASC, created_at ASC"

// loadMenu fetches a restaurant by slug with its active categories and
// items. Unavailable items are kept only when includeUnavailable is set.
func (s *Service) loadMenu(ctx context.Context, slug string, activeOnly, includeUnavailable bool) (*models.Restaurant, error) {
	query := s.db.WithContext(ctx).
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order(displayOrder)
		}).
		Preload("Categories.Items", func(db *gorm.DB) *gorm.DB {
			db = db.Where("is_active = ?", true)
			if !includeUnavailable {
				db = db.Where("is_available = ?", true)
			}
			return db.Order(displayOrder)
		}).
		Where("slug = ?", strings.ToLower(strings.TrimSpace(slug)))
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var restaurant models.Restaurant
	if err := query.First(&restaurant).Error; err != nil {
		return nil, classify("load menu", err)
	}
	return &restaurant, nil
}

// GetPublicMenu returns the guest-facing menu, or ErrNotFound when the slug
// is unknown or the restaurant is inactive.
func (s *Service) GetPublicMenu(ctx context.Context, slug, lang string) (*dtos.MenuView, error) {
	restaurant, err := s.loadMenu(ctx, slug, true, false)
	if err != nil {
		return nil, err
	}
	return ToMenuView(restaurant, lang), nil
}

// GetManagementView is the dashboard's menu: sold-out items are included,
// inactive rows are not. The restaurant itself may be inactive.
func (s *Service) GetManagementView(ctx context.Context, scope Scope, slug, lang string) (*dtos.MenuView, error) {
	restaurant, err := s.loadMenu(ctx, slug, false, true)
	if err != nil {
		return nil, err
	}
	if err := scope.Authorize(restaurant.ID); err != nil {
		return nil, err
	}
	return ToMenuView(restaurant, lang), nil
}

// GetAboutPage returns the about sections of an active restaurant.
func (s *Service) GetAboutPage(ctx context.Context, slug, lang string) (*dtos.AboutView, error) {
	var restaurant models.Restaurant
	err := s.db.WithContext(ctx).
		Where("slug = ? AND is_active = ?", strings.ToLower(strings.TrimSpace(slug)), true).
		First(&restaurant).Error
	if err != nil {
		return nil, classify("load about page", err)
	}
	return ToAboutView(&restaurant, lang), nil
}

func formatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatSalePrice(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := formatPrice(d.Decimal)
	return &s
}

func ToRestaurantView(r *models.Restaurant, lang string) dtos.RestaurantView {
	return dtos.RestaurantView{
		ID:                 r.ID,
		Slug:               r.Slug,
		Name:               r.Name,
		NameAr:             r.NameAr,
		NameEn:             r.NameEn,
		DescriptionAr:      r.DescriptionAr,
		DescriptionEn:      r.DescriptionEn,
		DisplayName:        firstNonEmpty(utils.Localize(r, "name", lang), r.Name),
		DisplayDescription: utils.Localize(r, "description", lang),
		DisplayAddress:     utils.Localize(r, "address", lang),
		Logo:               r.Logo,
		BannerColor:        r.BannerColor,
		BannerImage:        r.BannerImage,
		Address:            r.Address,
		AddressAr:          r.AddressAr,
		AddressEn:          r.AddressEn,
		Phone:              r.Phone,
		Email:              r.Email,
		GoogleMapsURL:      r.GoogleMapsURL,
		FacebookURL:        r.FacebookURL,
		InstagramURL:       r.InstagramURL,
		IsActive:           r.IsActive,
	}
}

func ToMenuItemView(m *models.MenuItem, lang string) dtos.MenuItemView {
	return dtos.MenuItemView{
		ID:                 m.ID,
		CategoryID:         m.CategoryID,
		Name:               m.Name,
		NameAr:             m.NameAr,
		NameEn:             m.NameEn,
		Description:        m.Description,
		DescriptionAr:      m.DescriptionAr,
		DescriptionEn:      m.DescriptionEn,
		Ingredients:        m.Ingredients,
		IngredientsAr:      m.IngredientsAr,
		IngredientsEn:      m.IngredientsEn,
		Allergens:          m.Allergens,
		AllergensAr:        m.AllergensAr,
		AllergensEn:        m.AllergensEn,
		DisplayName:        utils.Localize(m, "name", lang),
		DisplayDescription: utils.Localize(m, "description", lang),
		DisplayIngredients: utils.Localize(m, "ingredients", lang),
		DisplayAllergens:   utils.Localize(m, "allergens", lang),
		Price:              formatPrice(m.Price),
		SalePrice:          formatSalePrice(m.SalePrice),
		IsAvailable:        m.IsAvailable,
		IsVegetarian:       m.IsVegetarian,
		IsVegan:            m.IsVegan,
		IsGlutenFree:       m.IsGlutenFree,
		Image:              m.Image,
		ImageAlt:           m.ImageAlt,
		SortOrder:          m.SortOrder,
		IsActive:           m.IsActive,
	}
}

func ToCategoryView(c *models.Category, lang string) dtos.CategoryView {
	view := dtos.CategoryView{
		ID:                 c.ID,
		Name:               c.Name,
		NameAr:             c.NameAr,
		NameEn:             c.NameEn,
		Description:        c.Description,
		DescriptionAr:      c.DescriptionAr,
		DescriptionEn:      c.DescriptionEn,
		DisplayName:        utils.Localize(c, "name", lang),
		DisplayDescription: utils.Localize(c, "description", lang),
		Image:              c.Image,
		SortOrder:          c.SortOrder,
		IsActive:           c.IsActive,
		Items:              make([]dtos.MenuItemView, 0, len(c.Items)),
	}
	for i := range c.Items {
		view.Items = append(view.Items, ToMenuItemView(&c.Items[i], lang))
	}
	return view
}

func ToMenuView(r *models.Restaurant, lang string) *dtos.MenuView {
	view := &dtos.MenuView{
		Language:   lang,
		Restaurant: ToRestaurantView(r, lang),
		Categories: make([]dtos.CategoryView, 0, len(r.Categories)),
	}
	for i := range r.Categories {
		view.Categories = append(view.Categories, ToCategoryView(&r.Categories[i], lang))
	}
	return view
}

// ToAboutView keeps only sections that have text in some language or an image.
func ToAboutView(r *models.Restaurant, lang string) *dtos.AboutView {
	images := map[string]*string{
		"Story":   r.AboutStoryImage,
		"Mission": r.AboutMissionImage,
		"Vision":  r.AboutVisionImage,
		"Chef":    r.AboutChefImage,
		"History": r.AboutHistoryImage,
	}

	view := &dtos.AboutView{
		Language:   lang,
		Restaurant: ToRestaurantView(r, lang),
		Sections:   []dtos.AboutSectionView{},
	}
	for _, section := range aboutSections {
		field := "about" + section
		ar := utils.Localize(r, field, utils.LangArabic)
		en := utils.Localize(r, field, utils.LangEnglish)
		image := images[section]
		if ar == "" && en == "" && image == nil {
			continue
		}
		view.Sections = append(view.Sections, dtos.AboutSectionView{
			Key:    strings.ToLower(section),
			Text:   utils.Localize(r, field, lang),
			TextAr: ar,
			TextEn: en,
			Image:  image,
		})
	}
	return view
}
