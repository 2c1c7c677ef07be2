package models

import (
	"strings"

	"gorm.io/gorm"
)

// Category groups products on the menu. Display order is manual via Position.
type Category struct {
	BaseModel
	NameEn   string    `json:"name_en"`
	NameAr   string    `json:"name_ar"`
	Slug     string    `gorm:"uniqueIndex" json:"slug"`
	Position int       `json:"position"`
	IsActive bool      `gorm:"default:true" json:"is_active"`
	Products []Product `gorm:"many2many:category_products;" json:"products,omitempty"`
}

// BeforeCreate assigns the UUID, derives the slug from the English name when
// absent and appends the category to the end of the manual ordering.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if err := c.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}

	if c.Slug == "" {
		c.Slug = Slugify(c.NameEn)
	}

	if c.Position == 0 {
		var maxPosition int
		if err := tx.Model(&Category{}).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPosition).Error; err != nil {
			return err
		}
		c.Position = maxPosition + 1
	}

	return nil
}

// Slugify lowercases a name and collapses non-alphanumeric runs into hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
