package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Restaurant is the tenant root. Deleting it removes its categories and items.
type Restaurant struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Slug string    `gorm:"uniqueIndex;not null" json:"slug"`

	Name   string `gorm:"not null" json:"name"`
	NameAr string `json:"nameAr"`
	NameEn string `json:"nameEn"`

	DescriptionAr string `gorm:"type:text" json:"descriptionAr"`
	DescriptionEn string `gorm:"type:text" json:"descriptionEn"`

	AboutStoryAr      string  `gorm:"type:text" json:"aboutStoryAr"`
	AboutStoryEn      string  `gorm:"type:text" json:"aboutStoryEn"`
	AboutStoryImage   *string `gorm:"type:text" json:"aboutStoryImage"`
	AboutMissionAr    string  `gorm:"type:text" json:"aboutMissionAr"`
	AboutMissionEn    string  `gorm:"type:text" json:"aboutMissionEn"`
	AboutMissionImage *string `gorm:"type:text" json:"aboutMissionImage"`
	AboutVisionAr     string  `gorm:"type:text" json:"aboutVisionAr"`
	AboutVisionEn     string  `gorm:"type:text" json:"aboutVisionEn"`
	AboutVisionImage  *string `gorm:"type:text" json:"aboutVisionImage"`
	AboutChefAr       string  `gorm:"type:text" json:"aboutChefAr"`
	AboutChefEn       string  `gorm:"type:text" json:"aboutChefEn"`
	AboutChefImage    *string `gorm:"type:text" json:"aboutChefImage"`
	AboutHistoryAr    string  `gorm:"type:text" json:"aboutHistoryAr"`
	AboutHistoryEn    string  `gorm:"type:text" json:"aboutHistoryEn"`
	AboutHistoryImage *string `gorm:"type:text" json:"aboutHistoryImage"`

	Logo        *string `gorm:"type:text" json:"logo"`
	BannerColor string  `gorm:"default:'#1f2937'" json:"bannerColor"`
	BannerImage *string `gorm:"type:text" json:"bannerImage"`

	Address       string `json:"address"`
	AddressAr     string `json:"addressAr"`
	AddressEn     string `json:"addressEn"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	GoogleMapsURL string `gorm:"column:google_maps_url;type:text" json:"googleMapsUrl"`
	FacebookURL   string `gorm:"column:facebook_url" json:"facebookUrl"`
	InstagramURL  string `gorm:"column:instagram_url" json:"instagramUrl"`

	PasswordHash string `gorm:"not null" json:"-"`
	IsActive     bool   `gorm:"index" json:"isActive"`

	AdminID *uuid.UUID `gorm:"type:uuid;index" json:"adminId,omitempty"`
	Admin   *User      `gorm:"foreignKey:AdminID;constraint:OnDelete:SET NULL" json:"-"`

	Categories []Category `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"categories,omitempty"`
	MenuItems  []MenuItem `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
