package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BranchModel merepresentasikan tabel branches (cabang perpustakaan).
type BranchModel struct {
	BranchID   uuid.UUID `gorm:"type:uuid;primaryKey;column:branch_id" json:"branch_id"`
	BranchName string    `gorm:"type:text;not null;uniqueIndex:uq_branch_name;column:branch_name" json:"branch_name"`
	BranchCode *string   `gorm:"type:varchar(20);column:branch_code" json:"branch_code,omitempty"`

	BranchCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:branch_created_at" json:"branch_created_at"`
	BranchUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:branch_updated_at" json:"branch_updated_at"`
	BranchDeletedAt gorm.DeletedAt `gorm:"type:timestamptz;index;column:branch_deleted_at" json:"-"`
}

func (BranchModel) TableName() string {
	return "branches"
}

func (b *BranchModel) BeforeCreate(tx *gorm.DB) error {
	if b.BranchID == uuid.Nil {
		b.BranchID = uuid.New()
	}
	return nil
}

func (b *BranchModel) BeforeSave(tx *gorm.DB) error {
	if b.BranchUpdatedAt.IsZero() {
		b.BranchUpdatedAt = time.Now()
	}
	return nil
}
