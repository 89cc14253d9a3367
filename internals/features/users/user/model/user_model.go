package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nhatro_backend/internals/constants"
)

// UserModel represents the users table.
type UserModel struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserName string    `gorm:"size:50;unique;not null" json:"user_name" validate:"required,min=3,max=50"`
	Email    string    `gorm:"size:255;unique;not null" json:"email" validate:"required,email"`
	Password string    `gorm:"not null" json:"-" validate:"required,min=8"`

	FullName string `gorm:"size:100" json:"full_name"`
	Phone    string `gorm:"size:20" json:"phone"`

	Role     string `gorm:"type:varchar(20);not null;default:'RENTER'" json:"role" validate:"omitempty,oneof=ADMIN LANDLORD RENTER"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.SetDefaultValues()
	return nil
}

// SetDefaultValues fills defaults before validation.
func (u *UserModel) SetDefaultValues() {
	if u.Role == "" {
		u.Role = constants.RoleRenter.String()
	}
}

// RoleEnum returns the parsed closed-set role.
func (u *UserModel) RoleEnum() (constants.Role, error) {
	return constants.ParseRole(u.Role)
}
