package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RestaurantID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"restaurantId"`
	Name          string     `gorm:"not null" json:"name"`
	NameAr        string     `json:"nameAr"`
	NameEn        string     `json:"nameEn"`
	Description   string     `gorm:"type:text" json:"description"`
	DescriptionAr string     `gorm:"type:text" json:"descriptionAr"`
	DescriptionEn string     `gorm:"type:text" json:"descriptionEn"`
	Image         *string    `gorm:"type:text" json:"image"`
	SortOrder     int        `gorm:"default:0;index" json:"sortOrder"`
	IsActive      bool       `json:"isActive"`
	Items         []MenuItem `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
