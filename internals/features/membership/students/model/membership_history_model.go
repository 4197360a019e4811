package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	HistoryEventCreated = "created"
	HistoryEventUpdated = "updated"
	HistoryEventRenewed = "renewed"
	HistoryEventPayment = "payment"
)

// MembershipHistoryModel = jejak audit membership, APPEND-ONLY.
// Setiap create/update/renew/payment menambah baris baru; tidak ada jalur
// yang menimpa baris lama.
type MembershipHistoryModel struct {
	HistoryID        uuid.UUID `gorm:"type:uuid;primaryKey;column:history_id" json:"history_id"`
	HistoryStudentID uuid.UUID `gorm:"type:uuid;not null;index;column:history_student_id" json:"history_student_id"`
	HistoryEvent     string    `gorm:"type:varchar(10);not null;column:history_event" json:"history_event"`

	HistoryMembershipStart time.Time `gorm:"type:date;not null;column:history_membership_start" json:"history_membership_start"`
	HistoryMembershipEnd   time.Time `gorm:"type:date;not null;column:history_membership_end" json:"history_membership_end"`

	HistoryTotalFee      float64 `gorm:"type:numeric(12,2);not null;default:0;column:history_total_fee" json:"history_total_fee"`
	HistoryAmountPaid    float64 `gorm:"type:numeric(12,2);not null;default:0;column:history_amount_paid" json:"history_amount_paid"`
	HistoryDueAmount     float64 `gorm:"type:numeric(12,2);not null;default:0;column:history_due_amount" json:"history_due_amount"`
	HistoryCash          float64 `gorm:"type:numeric(12,2);not null;default:0;column:history_cash" json:"history_cash"`
	HistoryOnline        float64 `gorm:"type:numeric(12,2);not null;default:0;column:history_online" json:"history_online"`
	HistorySecurityMoney float64 `gorm:"type:numeric(12,2);not null;default:0;column:history_security_money" json:"history_security_money"`

	// Hanya shift pertama yang dicatat di kolom (perilaku sistem lama);
	// daftar lengkapnya ada di snapshot JSONB.
	HistorySeatID  *uuid.UUID `gorm:"type:uuid;column:history_seat_id" json:"history_seat_id,omitempty"`
	HistoryShiftID *uuid.UUID `gorm:"type:uuid;column:history_shift_id" json:"history_shift_id,omitempty"`

	HistorySnapshot  datatypes.JSON `gorm:"type:jsonb;column:history_snapshot" json:"history_snapshot,omitempty"`
	HistoryChangedAt time.Time      `gorm:"type:timestamptz;not null;default:now();index;column:history_changed_at" json:"history_changed_at"`
}

func (MembershipHistoryModel) TableName() string {
	return "student_membership_history"
}

func (h *MembershipHistoryModel) BeforeCreate(tx *gorm.DB) error {
	if h.HistoryID == uuid.Nil {
		h.HistoryID = uuid.New()
	}
	if h.HistoryChangedAt.IsZero() {
		h.HistoryChangedAt = time.Now()
	}
	return nil
}
