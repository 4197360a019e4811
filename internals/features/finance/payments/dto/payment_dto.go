package dto

import (
	"time"

	"github.com/google/uuid"

	model "pustakaku_backend/internals/features/finance/payments/model"
)

type CreatePaymentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// MidtransNotification = payload webhook Snap (field yang kita pakai saja).
type MidtransNotification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	GrossAmount       string `json:"gross_amount"`
}

type PaymentResponse struct {
	ID          uuid.UUID  `json:"id"`
	OrderID     string     `json:"order_id"`
	StudentID   uuid.UUID  `json:"student_id"`
	Amount      float64    `json:"amount"`
	Status      string     `json:"status"`
	SnapToken   *string    `json:"snap_token,omitempty"`
	RedirectURL string     `json:"redirect_url,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func FromModel(p *model.PaymentModel) PaymentResponse {
	return PaymentResponse{
		ID:        p.PaymentID,
		OrderID:   p.PaymentOrderID,
		StudentID: p.PaymentStudentID,
		Amount:    p.PaymentAmount,
		Status:    p.PaymentStatus,
		SnapToken: p.PaymentSnapToken,
		PaidAt:    p.PaymentPaidAt,
		CreatedAt: p.PaymentCreatedAt,
	}
}

func FromModels(ps []model.PaymentModel) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(ps))
	for i := range ps {
		out = append(out, FromModel(&ps[i]))
	}
	return out
}
