package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"menuhub-backend/dtos"
	"menuhub-backend/models"
	"menuhub-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const unnamedRestaurant = "Unnamed Restaurant"

var restaurantInfoFields = []textField{
	{key: "nameAr", column: "name_ar"},
	{key: "nameEn", column: "name_en"},
	{key: "descriptionAr", column: "description_ar"},
	{key: "descriptionEn", column: "description_en"},
	{key: "phone", column: "phone"},
	{key: "email", column: "email", rule: "omitempty,email"},
}

var aboutSections = []string{"Story", "Mission", "Vision", "Chef", "History"}

var restaurantAboutFields = func() []textField {
	fields := []textField{
		{key: "address", column: "address"},
		{key: "addressAr", column: "address_ar"},
		{key: "addressEn", column: "address_en"},
		{key: "facebookUrl", column: "facebook_url", rule: "omitempty,url"},
		{key: "instagramUrl", column: "instagram_url", rule: "omitempty,url"},
	}
	for _, section := range aboutSections {
		snake := strings.ToLower(section)
		fields = append(fields,
			textField{key: "about" + section + "Ar", column: "about_" + snake + "_ar"},
			textField{key: "about" + section + "En", column: "about_" + snake + "_en"},
		)
	}
	return fields
}()

// newRestaurantFromForm builds an unsaved restaurant from a creation form.
// Slug and owner are assigned by the caller.
func newRestaurantFromForm(form *Form) (*models.Restaurant, error) {
	password := form.Get("password")
	if password == "" {
		return nil, invalid("password", "is required")
	}
	if err := utils.CheckPasswordStrength(password); err != nil {
		return nil, &ValidationError{Field: "password", Message: err.Error()}
	}
	if err := utils.ValidateValue("email", form.Get("email"), "omitempty,email"); err != nil {
		return nil, &ValidationError{Field: "email", Message: err.Error()}
	}
	if err := utils.ValidateValue("bannerColor", form.Get("bannerColor"), "omitempty,hexcolor"); err != nil {
		return nil, &ValidationError{Field: "bannerColor", Message: err.Error()}
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	nameAr, nameEn := form.Get("nameAr"), form.Get("nameEn")
	return &models.Restaurant{
		Name:          firstNonEmpty(nameAr, nameEn, form.Get("name"), unnamedRestaurant),
		NameAr:        nameAr,
		NameEn:        nameEn,
		DescriptionAr: form.Get("descriptionAr"),
		DescriptionEn: form.Get("descriptionEn"),
		Address:       form.Get("address"),
		AddressAr:     form.Get("addressAr"),
		AddressEn:     form.Get("addressEn"),
		Phone:         form.Get("phone"),
		Email:         strings.ToLower(form.Get("email")),
		BannerColor:   form.Get("bannerColor"),
		PasswordHash:  hash,
		IsActive:      form.Bool("isActive", true),
	}, nil
}

func slugCandidate(form *Form) string {
	return utils.NormalizeSlug(form.Get("slug"), form.Get("nameEn"), form.Get("name"), form.Get("nameAr"))
}

// insertRestaurant reserves a slug and creates the restaurant, plus its
// owner when given, in one transaction. A duplicate-key failure means a
// concurrent create won the slug, so the whole transaction is retried.
func (s *Service) insertRestaurant(ctx context.Context, restaurant *models.Restaurant, candidate string, owner *models.User) error {
	for attempt := 0; attempt < slugReserveAttempts; attempt++ {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if owner != nil {
				var existing int64
				if err := tx.Model(&models.User{}).Where("email = ?", owner.Email).Count(&existing).Error; err != nil {
					return err
				}
				if existing > 0 {
					return &IntegrityError{Op: "signup", Err: ErrEmailTaken}
				}
				if err := tx.Create(owner).Error; err != nil {
					return err
				}
				restaurant.AdminID = &owner.ID
			}

			slug, err := ReserveSlug(ctx, tx, candidate)
			if err != nil {
				return err
			}
			restaurant.Slug = slug
			return tx.Create(restaurant).Error
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return classify("create restaurant", err)
		}

		log.Printf("Slug %s was taken concurrently, retrying (attempt %d)", restaurant.Slug, attempt+1)
		restaurant.ID = uuid.Nil
		if owner != nil {
			owner.ID = uuid.Nil
		}
	}
	return &IntegrityError{Op: "create restaurant", Err: ErrSlugExhausted}
}

// CreateRestaurant is the admin console's create action.
func (s *Service) CreateRestaurant(ctx context.Context, scope Scope, form *Form) (*models.Restaurant, error) {
	if err := scope.RequireAdmin(); err != nil {
		return nil, err
	}

	restaurant, err := newRestaurantFromForm(form)
	if err != nil {
		return nil, err
	}
	if restaurant.Logo, err = s.ingest(ctx, form, "logo"); err != nil {
		return nil, err
	}
	restaurant.AdminID = scope.UserID

	if err := s.insertRestaurant(ctx, restaurant, slugCandidate(form), nil); err != nil {
		return nil, err
	}

	s.views.Invalidate(allViews(restaurant.Slug)...)
	return restaurant, nil
}

// Signup is self-service registration: an owner user and its restaurant are
// created together.
func (s *Service) Signup(ctx context.Context, form *Form) (*models.Restaurant, *models.User, error) {
	email := strings.ToLower(form.Get("email"))
	if email == "" {
		return nil, nil, invalid("email", "is required")
	}
	if err := utils.ValidateValue("email", email, "email"); err != nil {
		return nil, nil, &ValidationError{Field: "email", Message: err.Error()}
	}

	restaurant, err := newRestaurantFromForm(form)
	if err != nil {
		return nil, nil, err
	}
	restaurant.IsActive = true
	if restaurant.Email == "" {
		restaurant.Email = email
	}

	// The dashboard credential lives on the restaurant only.
	owner := &models.User{
		Email: email,
		Name:  form.Get("ownerName"),
		Role:  models.RoleRestaurant,
	}

	if err := s.insertRestaurant(ctx, restaurant, slugCandidate(form), owner); err != nil {
		return nil, nil, err
	}

	s.views.Invalidate(allViews(restaurant.Slug)...)
	return restaurant, owner, nil
}

// applyRestaurantUpdates writes staged columns and returns the fresh row.
func (s *Service) applyRestaurantUpdates(ctx context.Context, restaurant *models.Restaurant, updates map[string]interface{}, views []View) (*models.Restaurant, error) {
	if len(updates) == 0 {
		return restaurant, nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(restaurant).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(restaurant, "id = ?", restaurant.ID).Error
	})
	if err != nil {
		return nil, classify("update restaurant", err)
	}
	s.views.Invalidate(views...)
	return restaurant, nil
}

// UpdateRestaurantInfo edits names, descriptions and contact details.
func (s *Service) UpdateRestaurantInfo(ctx context.Context, scope Scope, id uuid.UUID, form *Form) (*models.Restaurant, error) {
	restaurant, err := s.loadWritableRestaurant(ctx, s.db, scope, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if err := collectText(form, updates, restaurantInfoFields); err != nil {
		return nil, err
	}
	if email, ok := updates["email"].(string); ok {
		updates["email"] = strings.ToLower(email)
	}
	if anySubmitted(form, "nameAr", "nameEn", "name") {
		updates["name"] = firstNonEmpty(
			merged(form, "nameAr", restaurant.NameAr),
			merged(form, "nameEn", restaurant.NameEn),
			form.Get("name"),
			unnamedRestaurant,
		)
	}

	return s.applyRestaurantUpdates(ctx, restaurant, updates, allViews(restaurant.Slug))
}

// UpdateAbout edits the about sections, their images, address, social
// links and the maps link.
func (s *Service) UpdateAbout(ctx context.Context, scope Scope, id uuid.UUID, form *Form) (*models.Restaurant, error) {
	restaurant, err := s.loadWritableRestaurant(ctx, s.db, scope, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if err := collectText(form, updates, restaurantAboutFields); err != nil {
		return nil, err
	}
	if form.Has("googleMapsUrl") {
		updates["google_maps_url"] = utils.NormalizeGoogleMapsURL(form.Get("googleMapsUrl"))
	}
	for _, section := range aboutSections {
		key := "about" + section + "Image"
		column := "about_" + strings.ToLower(section) + "_image"
		if err := s.collectImage(ctx, form, key, column, updates); err != nil {
			return nil, err
		}
	}

	return s.applyRestaurantUpdates(ctx, restaurant, updates, allViews(restaurant.Slug))
}

// UpdateAppearance edits logo, banner color and banner image.
func (s *Service) UpdateAppearance(ctx context.Context, scope Scope, id uuid.UUID, form *Form) (*models.Restaurant, error) {
	restaurant, err := s.loadWritableRestaurant(ctx, s.db, scope, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if err := collectText(form, updates, []textField{{key: "bannerColor", column: "banner_color", rule: "omitempty,hexcolor"}}); err != nil {
		return nil, err
	}
	if color, ok := updates["banner_color"].(string); ok && color == "" {
		delete(updates, "banner_color")
	}
	if err := s.collectImage(ctx, form, "logo", "logo", updates); err != nil {
		return nil, err
	}
	if err := s.collectImage(ctx, form, "bannerImage", "banner_image", updates); err != nil {
		return nil, err
	}

	return s.applyRestaurantUpdates(ctx, restaurant, updates, allViews(restaurant.Slug))
}

// ChangePassword rotates the dashboard password. Restaurant sessions must
// prove the current password; admins may reset it directly.
func (s *Service) ChangePassword(ctx context.Context, scope Scope, id uuid.UUID, current, next string) error {
	restaurant, err := s.loadWritableRestaurant(ctx, s.db, scope, id)
	if err != nil {
		return err
	}
	if !scope.IsAdmin() {
		if err := utils.ComparePassword(restaurant.PasswordHash, current); err != nil {
			return invalid("currentPassword", "is incorrect")
		}
	}
	if err := utils.CheckPasswordStrength(next); err != nil {
		return &ValidationError{Field: "newPassword", Message: err.Error()}
	}

	hash, err := utils.HashPassword(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	err = s.db.WithContext(ctx).Model(restaurant).Update("password_hash", hash).Error
	return classify("change password", err)
}

// SetRestaurantActive soft-deletes or restores a restaurant.
func (s *Service) SetRestaurantActive(ctx context.Context, scope Scope, id uuid.UUID, active bool) (*models.Restaurant, error) {
	if err := scope.RequireAdmin(); err != nil {
		return nil, err
	}
	restaurant, err := s.loadRestaurant(ctx, s.db, scope, id)
	if err != nil {
		return nil, err
	}
	return s.applyRestaurantUpdates(ctx, restaurant, map[string]interface{}{"is_active": active}, allViews(restaurant.Slug))
}

// DeleteRestaurant removes the restaurant with all categories and items.
func (s *Service) DeleteRestaurant(ctx context.Context, scope Scope, id uuid.UUID) error {
	if err := scope.RequireAdmin(); err != nil {
		return err
	}

	var slug string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		restaurant, err := s.loadRestaurant(ctx, tx, scope, id)
		if err != nil {
			return err
		}
		slug = restaurant.Slug
		if err := tx.Where("restaurant_id = ?", id).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("restaurant_id = ?", id).Delete(&models.Category{}).Error; err != nil {
			return err
		}
		return tx.Delete(restaurant).Error
	})
	if err != nil {
		return classify("delete restaurant", err)
	}

	s.views.Invalidate(allViews(slug)...)
	return nil
}

// GetRestaurant returns the full restaurant record, active or not.
func (s *Service) GetRestaurant(ctx context.Context, scope Scope, id uuid.UUID) (*models.Restaurant, error) {
	return s.loadRestaurant(ctx, s.db, scope, id)
}

type restaurantCount struct {
	RestaurantID uuid.UUID
	Total        int64
}

func (s *Service) countByRestaurant(ctx context.Context, model interface{}) (map[uuid.UUID]int64, error) {
	var rows []restaurantCount
	err := s.db.WithContext(ctx).Model(model).
		Select("restaurant_id, count(*) as total").
		Group("restaurant_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		counts[r.RestaurantID] = r.Total
	}
	return counts, nil
}

// ListRestaurants returns every restaurant, inactive included, newest first.
func (s *Service) ListRestaurants(ctx context.Context, scope Scope) ([]dtos.RestaurantSummary, error) {
	if err := scope.RequireAdmin(); err != nil {
		return nil, err
	}

	var restaurants []models.Restaurant
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&restaurants).Error; err != nil {
		return nil, classify("list restaurants", err)
	}
	categories, err := s.countByRestaurant(ctx, &models.Category{})
	if err != nil {
		return nil, classify("count categories", err)
	}
	items, err := s.countByRestaurant(ctx, &models.MenuItem{})
	if err != nil {
		return nil, classify("count menu items", err)
	}

	summaries := make([]dtos.RestaurantSummary, 0, len(restaurants))
	for _, r := range restaurants {
		summaries = append(summaries, dtos.RestaurantSummary{
			ID:            r.ID,
			Slug:          r.Slug,
			Name:          r.Name,
			NameAr:        r.NameAr,
			NameEn:        r.NameEn,
			Email:         r.Email,
			Phone:         r.Phone,
			IsActive:      r.IsActive,
			CategoryCount: categories[r.ID],
			ItemCount:     items[r.ID],
			CreatedAt:     r.CreatedAt,
		})
	}
	return summaries, nil
}
