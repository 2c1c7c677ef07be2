package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OptionGroupType is the selection-cardinality rule of an option group.
type OptionGroupType string

const (
	SingleSelect OptionGroupType = "single"
	MultiSelect  OptionGroupType = "multi"
)

// Product is a purchasable menu entry. Price is the base price before options.
type Product struct {
	BaseModel
	NameEn                   string               `json:"name_en"`
	NameAr                   string               `json:"name_ar"`
	DescriptionEn            string               `json:"description_en"`
	DescriptionAr            string               `json:"description_ar"`
	Price                    decimal.Decimal      `gorm:"type:numeric(10,2)" json:"price"`
	EstimatedPreparationTime int                  `json:"estimated_preparation_time"`
	ImageURL                 string               `json:"image_url"`
	IsActive                 bool                 `gorm:"default:true" json:"is_active"`
	OptionGroups             []ProductOptionGroup `gorm:"constraint:OnDelete:CASCADE" json:"option_groups,omitempty"`
	Categories               []Category           `gorm:"many2many:category_products;" json:"categories,omitempty"`
}

// ProductOptionGroup is a named set of choices attached to a product,
// e.g. "Size". Required groups must have a selection in every order item.
type ProductOptionGroup struct {
	BaseModel
	ProductID  uuid.UUID       `gorm:"type:uuid;index" json:"product_id"`
	NameEn     string          `json:"name_en"`
	NameAr     string          `json:"name_ar"`
	Type       OptionGroupType `json:"type"`
	IsRequired bool            `json:"is_required"`
	Options    []ProductOption `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

// ProductOption is one selectable choice within a group. ExtraPrice is added
// to the item subtotal when selected.
type ProductOption struct {
	BaseModel
	GroupID    uuid.UUID       `gorm:"type:uuid;index" json:"group_id"`
	NameEn     string          `json:"name_en"`
	NameAr     string          `json:"name_ar"`
	ExtraPrice decimal.Decimal `gorm:"type:numeric(10,2)" json:"extra_price"`
	IsActive   bool            `gorm:"default:true" json:"is_active"`
}
