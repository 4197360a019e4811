package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusExpired  = "expired"
	PaymentStatusCanceled = "canceled"
)

// PaymentModel = pembayaran iuran membership via Midtrans Snap.
// order_id dipakai sebagai kunci rekonsiliasi webhook.
type PaymentModel struct {
	PaymentID        uuid.UUID  `gorm:"type:uuid;primaryKey;column:payment_id" json:"payment_id"`
	PaymentOrderID   string     `gorm:"type:varchar(64);not null;uniqueIndex:uq_payment_order_id;column:payment_order_id" json:"payment_order_id"`
	PaymentStudentID uuid.UUID  `gorm:"type:uuid;not null;index;column:payment_student_id" json:"payment_student_id"`
	PaymentAmount    float64    `gorm:"type:numeric(12,2);not null;column:payment_amount" json:"payment_amount"`
	PaymentStatus    string     `gorm:"type:varchar(10);not null;default:'pending';column:payment_status" json:"payment_status"`
	PaymentSnapToken *string    `gorm:"type:text;column:payment_snap_token" json:"payment_snap_token,omitempty"`
	PaymentPaidAt    *time.Time `gorm:"type:timestamptz;column:payment_paid_at" json:"payment_paid_at,omitempty"`

	PaymentCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:payment_created_at" json:"payment_created_at"`
	PaymentUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:payment_updated_at" json:"payment_updated_at"`
}

func (PaymentModel) TableName() string {
	return "payments"
}

func (p *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	return nil
}

func (p *PaymentModel) BeforeSave(tx *gorm.DB) error {
	if p.PaymentUpdatedAt.IsZero() {
		p.PaymentUpdatedAt = time.Now()
	}
	return nil
}
