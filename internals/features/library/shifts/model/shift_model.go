package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"pustakaku_backend/internals/helpers/dbtime"
)

// ShiftModel merepresentasikan tabel shifts (jadwal slot waktu).
// Shift bisa berulang (days_of_week, 0=Minggu..6=Sabtu) atau sekali jalan
// lewat event_date.
type ShiftModel struct {
	ShiftID         uuid.UUID     `gorm:"type:uuid;primaryKey;column:shift_id" json:"shift_id"`
	ShiftTitle      string        `gorm:"type:text;not null;column:shift_title" json:"shift_title"`
	ShiftTime       dbtime.Tod    `gorm:"type:time;not null;column:shift_time" json:"shift_time"`
	ShiftEventDate  *time.Time    `gorm:"type:date;column:shift_event_date" json:"shift_event_date,omitempty"`
	ShiftDaysOfWeek pq.Int64Array `gorm:"type:int[];column:shift_days_of_week" json:"shift_days_of_week,omitempty"`

	ShiftCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:shift_created_at" json:"shift_created_at"`
	ShiftUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:shift_updated_at" json:"shift_updated_at"`
	ShiftDeletedAt gorm.DeletedAt `gorm:"type:timestamptz;index;column:shift_deleted_at" json:"-"`
}

func (ShiftModel) TableName() string {
	return "shifts"
}

func (s *ShiftModel) BeforeCreate(tx *gorm.DB) error {
	if s.ShiftID == uuid.Nil {
		s.ShiftID = uuid.New()
	}
	return nil
}

func (s *ShiftModel) BeforeSave(tx *gorm.DB) error {
	if s.ShiftUpdatedAt.IsZero() {
		s.ShiftUpdatedAt = time.Now()
	}
	return nil
}
