package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeatAssignmentModel = ikatan satu kursi + satu shift untuk satu santri.
//
// uq_seat_shift menjamin maksimal satu santri per pasangan (seat, shift) di
// level storage; pengecekan konflik dalam transaksi tetap jalan supaya pesan
// errornya menyebut shift yang bentrok, tapi constraint inilah yang menutup
// race dua request paralel.
type SeatAssignmentModel struct {
	SeatAssignmentID        uuid.UUID `gorm:"type:uuid;primaryKey;column:seat_assignment_id" json:"seat_assignment_id"`
	SeatAssignmentSeatID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_seat_shift;column:seat_assignment_seat_id" json:"seat_assignment_seat_id"`
	SeatAssignmentShiftID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_seat_shift;column:seat_assignment_shift_id" json:"seat_assignment_shift_id"`
	SeatAssignmentStudentID uuid.UUID `gorm:"type:uuid;not null;index;column:seat_assignment_student_id" json:"seat_assignment_student_id"`

	SeatAssignmentCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:seat_assignment_created_at" json:"seat_assignment_created_at"`
}

func (SeatAssignmentModel) TableName() string {
	return "seat_assignments"
}

func (a *SeatAssignmentModel) BeforeCreate(tx *gorm.DB) error {
	if a.SeatAssignmentID == uuid.Nil {
		a.SeatAssignmentID = uuid.New()
	}
	return nil
}
