package models

// Branch is a restaurant location that accepts orders.
type Branch struct {
	BaseModel
	NameEn       string `json:"name_en"`
	NameAr       string `json:"name_ar"`
	AddressEn    string `json:"address_en"`
	AddressAr    string `json:"address_ar"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	OpeningHours string `json:"opening_hours"`
	// StaffChatID is the Telegram chat that receives new-order notifications
	// for this branch. Falls back to the admin chat when empty.
	StaffChatID string  `json:"staff_chat_id,omitempty"`
	IsActive    bool    `gorm:"default:true" json:"is_active"`
	Employees   []User  `gorm:"foreignKey:BranchID" json:"employees,omitempty"`
	Orders      []Order `json:"orders,omitempty"`
}
