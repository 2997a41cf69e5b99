package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"salonbook-backend/utils"
)

// User roles
const (
	RoleClient       = "client"
	RoleStylist      = "stylist"
	RoleReceptionist = "receptionist"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`

	Role     string `gorm:"type:varchar(20);not null;default:'client'" json:"role"`
	BranchID string `gorm:"index" json:"branchId"` // empty for clients with no fixed branch

	PhotoURL string `json:"photoUrl"`

	LastLogin *time.Time `json:"lastLogin"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`

	gorm.Model `json:"-"`
}

// Initialize UUID and hash password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}

// FullName is the display name used across appointment views.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return ""
	}
	return u.FirstName + " " + u.LastName
}
