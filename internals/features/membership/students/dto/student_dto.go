package dto

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	model "pustakaku_backend/internals/features/membership/students/model"
)

const DateLayout = "2006-01-02"

/* =========================
   Money (string | number)
   ========================= */

// Money menerima angka JSON maupun string desimal ("1500.50") karena form
// lama mengirim dua-duanya. "" dan null dianggap tidak diisi (Valid=false);
// di jalur update itu berarti "pakai nilai tersimpan".
type Money struct {
	Value float64
	Valid bool
}

func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		m.Valid = false
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		unq, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("nilai uang tidak valid: %s", s)
		}
		s = strings.TrimSpace(unq)
		if s == "" {
			m.Valid = false
			return nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("nilai uang tidak valid: %s", s)
	}
	m.Value = f
	m.Valid = true
	return nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// Or: nilai kalau diisi, fallback kalau tidak.
func (m Money) Or(fallback float64) float64 {
	if m.Valid {
		return m.Value
	}
	return fallback
}

/* =========================
   Requests
   ========================= */

type CreateStudentRequest struct {
	Name            string      `json:"name" validate:"required"`
	Email           *string     `json:"email" validate:"omitempty,email"`
	Phone           string      `json:"phone" validate:"required"`
	Address         *string     `json:"address"`
	BranchID        uuid.UUID   `json:"branch_id" validate:"required"`
	MembershipStart string      `json:"membership_start" validate:"required,datetime=2006-01-02"`
	MembershipEnd   string      `json:"membership_end" validate:"required,datetime=2006-01-02"`
	TotalFee        Money       `json:"total_fee"`
	AmountPaid      Money       `json:"amount_paid"`
	Cash            Money       `json:"cash"`
	Online          Money       `json:"online"`
	SecurityMoney   Money       `json:"security_money"`
	Remark          *string     `json:"remark"`
	ProfileImageURL *string     `json:"profile_image_url"`
	SeatID          *uuid.UUID  `json:"seat_id"`
	ShiftIDs        []uuid.UUID `json:"shift_ids"`
}

// UpdateStudentRequest: bentuk body sama dengan create (PUT full-form);
// field uang yang kosong berarti "jangan diubah".
type UpdateStudentRequest = CreateStudentRequest

type RenewStudentRequest struct {
	MembershipStart string      `json:"membership_start" validate:"required,datetime=2006-01-02"`
	MembershipEnd   string      `json:"membership_end" validate:"required,datetime=2006-01-02"`
	Email           *string     `json:"email" validate:"omitempty,email"`
	Phone           *string     `json:"phone"`
	BranchID        *uuid.UUID  `json:"branch_id"`
	SeatID          *uuid.UUID  `json:"seat_id"`
	ShiftIDs        []uuid.UUID `json:"shift_ids"`
	TotalFee        Money       `json:"total_fee"`
	Cash            Money       `json:"cash"`
	Online          Money       `json:"online"`
	SecurityMoney   Money       `json:"security_money"`
	Remark          *string     `json:"remark"`
}

/* =========================
   Responses
   ========================= */

type SeatAssignmentResponse struct {
	SeatID     uuid.UUID `json:"seat_id"`
	SeatNumber string    `json:"seat_number,omitempty"`
	ShiftID    uuid.UUID `json:"shift_id"`
	ShiftTitle string    `json:"shift_title,omitempty"`
	ShiftTime  string    `json:"shift_time,omitempty"`
}

type StudentResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           *string   `json:"email,omitempty"`
	Phone           string    `json:"phone"`
	Address         *string   `json:"address,omitempty"`
	BranchID        uuid.UUID `json:"branch_id"`
	BranchName      string    `json:"branch_name,omitempty"`
	MembershipStart string    `json:"membership_start"`
	MembershipEnd   string    `json:"membership_end"`
	TotalFee        float64   `json:"total_fee"`
	AmountPaid      float64   `json:"amount_paid"`
	DueAmount       float64   `json:"due_amount"`
	Cash            float64   `json:"cash"`
	Online          float64   `json:"online"`
	SecurityMoney   float64   `json:"security_money"`
	Remark          *string   `json:"remark,omitempty"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty"`

	// status SELALU diturunkan dari tanggal saat baca, bukan dari kolom.
	Status string `json:"status"`

	SeatAssignments []SeatAssignmentResponse `json:"seat_assignments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeriveStatus membandingkan tanggal akhir membership dengan "hari ini"
// (jam dibuang dua-duanya): expired kalau end < today.
func DeriveStatus(membershipEnd, now time.Time) string {
	end := time.Date(membershipEnd.Year(), membershipEnd.Month(), membershipEnd.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if end.Before(today) {
		return model.StatusExpired
	}
	return model.StatusActive
}

func FromModel(m *model.StudentModel, now time.Time) StudentResponse {
	return StudentResponse{
		ID:              m.StudentID,
		Name:            m.StudentName,
		Email:           m.StudentEmail,
		Phone:           m.StudentPhone,
		Address:         m.StudentAddress,
		BranchID:        m.StudentBranchID,
		MembershipStart: m.StudentMembershipStart.Format(DateLayout),
		MembershipEnd:   m.StudentMembershipEnd.Format(DateLayout),
		TotalFee:        m.StudentTotalFee,
		AmountPaid:      m.StudentAmountPaid,
		DueAmount:       m.StudentDueAmount,
		Cash:            m.StudentCash,
		Online:          m.StudentOnline,
		SecurityMoney:   m.StudentSecurityMoney,
		Remark:          m.StudentRemark,
		ProfileImageURL: m.StudentProfileImageURL,
		Status:          DeriveStatus(m.StudentMembershipEnd, now),
		CreatedAt:       m.StudentCreatedAt,
		UpdatedAt:       m.StudentUpdatedAt,
	}
}

func FromModels(ms []model.StudentModel, now time.Time) []StudentResponse {
	out := make([]StudentResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i], now))
	}
	return out
}
