package models

import "github.com/google/uuid"

// User roles. Employees belong to a branch and receive order notifications.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
	RoleCustomer = "customer"
)

// User represents an account: customers placing orders or branch staff.
type User struct {
	BaseModel
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Phone        string     `gorm:"uniqueIndex" json:"phone"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `gorm:"default:customer" json:"role"`
	BranchID     *uuid.UUID `gorm:"type:uuid;index" json:"branch_id"`
	Branch       *Branch    `json:"branch,omitempty"`
	Orders       []Order    `json:"orders,omitempty"`
}

// IsStaff reports whether the user may manage catalog data and order statuses.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleEmployee
}
