package dto

import (
	"time"

	"github.com/google/uuid"

	model "pustakaku_backend/internals/features/library/seats/model"
)

type CreateSeatRequest struct {
	SeatNumber string    `json:"seat_number" validate:"required"`
	BranchID   uuid.UUID `json:"branch_id" validate:"required"`
}

type UpdateSeatRequest struct {
	SeatNumber *string    `json:"seat_number"`
	BranchID   *uuid.UUID `json:"branch_id"`
}

type SeatResponse struct {
	ID         uuid.UUID `json:"id"`
	SeatNumber string    `json:"seat_number"`
	BranchID   uuid.UUID `json:"branch_id"`
	// Diisi hanya oleh listing ketersediaan per shift.
	Occupied  *bool     `json:"occupied,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *CreateSeatRequest) ToModel() *model.SeatModel {
	return &model.SeatModel{
		SeatNumber:   r.SeatNumber,
		SeatBranchID: r.BranchID,
	}
}

func FromModel(m *model.SeatModel) SeatResponse {
	return SeatResponse{
		ID:         m.SeatID,
		SeatNumber: m.SeatNumber,
		BranchID:   m.SeatBranchID,
		CreatedAt:  m.SeatCreatedAt,
		UpdatedAt:  m.SeatUpdatedAt,
	}
}

func FromModels(ms []model.SeatModel) []SeatResponse {
	out := make([]SeatResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
