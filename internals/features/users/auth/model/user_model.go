// file: internals/features/users/auth/model/user_model.go
package model

import (
	"strings"
	"time"

	"gorm.io/gorm"

	helper "kyaungku_backend/internals/helpers"
)

type UserModel struct {
	UserID   uint   `gorm:"column:user_id;primaryKey;autoIncrement" json:"-"`
	UserSlug string `gorm:"column:user_slug;type:varchar(36);not null;uniqueIndex" json:"user_slug"`

	UserName  string `gorm:"column:user_name;type:varchar(50);not null;uniqueIndex" json:"user_name"`
	UserEmail string `gorm:"column:user_email;type:varchar(255);not null;uniqueIndex" json:"user_email"`
	// bcrypt hash, never serialized
	UserPassword string `gorm:"column:user_password;type:varchar(100);not null" json:"-"`
	UserRole     string `gorm:"column:user_role;type:varchar(20);not null;default:'admin'" json:"user_role"`

	UserCreatedAt time.Time      `gorm:"column:user_created_at;not null;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"column:user_updated_at;not null;autoUpdateTime" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(m.UserSlug) == "" {
		m.UserSlug = helper.NewExternalID()
	}
	if m.UserRole == "" {
		m.UserRole = "admin"
	}
	return nil
}
