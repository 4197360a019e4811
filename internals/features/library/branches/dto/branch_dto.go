package dto

import (
	"time"

	"github.com/google/uuid"

	model "pustakaku_backend/internals/features/library/branches/model"
)

type CreateBranchRequest struct {
	Name string  `json:"name" validate:"required"`
	Code *string `json:"code"`
}

type UpdateBranchRequest struct {
	Name *string `json:"name"`
	Code *string `json:"code"`
}

type BranchResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      *string   `json:"code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *CreateBranchRequest) ToModel() *model.BranchModel {
	return &model.BranchModel{
		BranchName: r.Name,
		BranchCode: r.Code,
	}
}

func FromModel(m *model.BranchModel) BranchResponse {
	return BranchResponse{
		ID:        m.BranchID,
		Name:      m.BranchName,
		Code:      m.BranchCode,
		CreatedAt: m.BranchCreatedAt,
		UpdatedAt: m.BranchUpdatedAt,
	}
}

func FromModels(ms []model.BranchModel) []BranchResponse {
	out := make([]BranchResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
