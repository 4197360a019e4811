package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive  = "active"
	StatusExpired = "expired"
)

// StudentModel merepresentasikan tabel students.
//
// student_status diisi saat tulis (create/update/renew) sebagai snapshot;
// endpoint baca SELALU menurunkan ulang status dari tanggal, jadi kolom ini
// tidak pernah dipakai sebagai filter.
type StudentModel struct {
	StudentID      uuid.UUID `gorm:"type:uuid;primaryKey;column:student_id" json:"student_id"`
	StudentName    string    `gorm:"type:text;not null;column:student_name" json:"student_name"`
	StudentEmail   *string   `gorm:"type:text;column:student_email" json:"student_email,omitempty"`
	StudentPhone   string    `gorm:"type:varchar(20);not null;column:student_phone" json:"student_phone"`
	StudentAddress *string   `gorm:"type:text;column:student_address" json:"student_address,omitempty"`
	StudentBranchID uuid.UUID `gorm:"type:uuid;not null;column:student_branch_id" json:"student_branch_id"`

	StudentMembershipStart time.Time `gorm:"type:date;not null;column:student_membership_start" json:"student_membership_start"`
	StudentMembershipEnd   time.Time `gorm:"type:date;not null;column:student_membership_end" json:"student_membership_end"`

	// Uang disimpan numeric(12,2). due = total_fee - amount_paid,
	// boleh negatif (kelebihan bayar).
	StudentTotalFee      float64 `gorm:"type:numeric(12,2);not null;default:0;column:student_total_fee" json:"student_total_fee"`
	StudentAmountPaid    float64 `gorm:"type:numeric(12,2);not null;default:0;column:student_amount_paid" json:"student_amount_paid"`
	StudentDueAmount     float64 `gorm:"type:numeric(12,2);not null;default:0;column:student_due_amount" json:"student_due_amount"`
	StudentCash          float64 `gorm:"type:numeric(12,2);not null;default:0;column:student_cash" json:"student_cash"`
	StudentOnline        float64 `gorm:"type:numeric(12,2);not null;default:0;column:student_online" json:"student_online"`
	StudentSecurityMoney float64 `gorm:"type:numeric(12,2);not null;default:0;column:student_security_money" json:"student_security_money"`

	StudentRemark          *string `gorm:"type:text;column:student_remark" json:"student_remark,omitempty"`
	StudentProfileImageURL *string `gorm:"type:text;column:student_profile_image_url" json:"student_profile_image_url,omitempty"`
	StudentStatus          string  `gorm:"type:varchar(10);not null;default:'active';column:student_status" json:"student_status"`

	StudentCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:student_created_at" json:"student_created_at"`
	StudentUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:student_updated_at" json:"student_updated_at"`
}

func (StudentModel) TableName() string {
	return "students"
}

func (s *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if s.StudentID == uuid.Nil {
		s.StudentID = uuid.New()
	}
	return nil
}

func (s *StudentModel) BeforeSave(tx *gorm.DB) error {
	if s.StudentUpdatedAt.IsZero() {
		s.StudentUpdatedAt = time.Now()
	}
	return nil
}
