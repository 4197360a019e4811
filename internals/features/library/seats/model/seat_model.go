package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeatModel merepresentasikan tabel seats. Satu kursi milik satu cabang;
// nomor kursi unik per cabang.
type SeatModel struct {
	SeatID       uuid.UUID `gorm:"type:uuid;primaryKey;column:seat_id" json:"seat_id"`
	SeatNumber   string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_seat_branch_number;column:seat_number" json:"seat_number"`
	SeatBranchID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_seat_branch_number;column:seat_branch_id" json:"seat_branch_id"`

	SeatCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:seat_created_at" json:"seat_created_at"`
	SeatUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:seat_updated_at" json:"seat_updated_at"`
	SeatDeletedAt gorm.DeletedAt `gorm:"type:timestamptz;index;column:seat_deleted_at" json:"-"`
}

func (SeatModel) TableName() string {
	return "seats"
}

func (s *SeatModel) BeforeCreate(tx *gorm.DB) error {
	if s.SeatID == uuid.Nil {
		s.SeatID = uuid.New()
	}
	return nil
}

func (s *SeatModel) BeforeSave(tx *gorm.DB) error {
	if s.SeatUpdatedAt.IsZero() {
		s.SeatUpdatedAt = time.Now()
	}
	return nil
}
