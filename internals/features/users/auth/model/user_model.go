package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel = akun staf back-office (owner/admin/staff).
type UserModel struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`
	UserName     string    `gorm:"type:text;not null;column:user_name" json:"user_name"`
	UserEmail    string    `gorm:"type:text;not null;uniqueIndex:uq_user_email;column:user_email" json:"user_email"`
	UserPassword string    `gorm:"type:text;not null;column:user_password" json:"-"`
	UserRole     string    `gorm:"type:varchar(10);not null;default:'staff';column:user_role" json:"user_role"`
	UserGoogleID *string   `gorm:"type:text;column:user_google_id" json:"-"`

	UserCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:user_created_at" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:user_updated_at" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"type:timestamptz;index;column:user_deleted_at" json:"-"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
