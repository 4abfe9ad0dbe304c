package services

import (
	"context"
	"fmt"

	"menuhub-backend/models"
	"menuhub-backend/utils"

	"gorm.io/gorm"
)

// slugReserveAttempts bounds how often a create retries after losing a
// slug race to a concurrent creation.
const slugReserveAttempts = 3

// ReserveSlug returns candidate if unused, else the first free candidate-1,
// candidate-2, ... Inactive restaurants still hold their slug. The unique
// index on restaurants.slug remains the final authority.
func ReserveSlug(ctx context.Context, db *gorm.DB, candidate string) (string, error) {
	base := utils.NormalizeSlug(candidate)
	slug := base
	for k := 1; ; k++ {
		var count int64
		if err := db.WithContext(ctx).Model(&models.Restaurant{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", fmt.Errorf("check slug %s: %w", slug, err)
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, k)
	}
}
