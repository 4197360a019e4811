package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	model "pustakaku_backend/internals/features/library/shifts/model"
	"pustakaku_backend/internals/helpers/dbtime"
)

type CreateShiftRequest struct {
	Title      string  `json:"title" validate:"required"`
	Time       string  `json:"time" validate:"required"` // "HH:MM" / "HH:MM:SS"
	EventDate  *string `json:"event_date" validate:"omitempty,datetime=2006-01-02"`
	DaysOfWeek []int64 `json:"days_of_week" validate:"omitempty,dive,min=0,max=6"`
}

type UpdateShiftRequest struct {
	Title      *string `json:"title"`
	Time       *string `json:"time"`
	EventDate  *string `json:"event_date" validate:"omitempty,datetime=2006-01-02"`
	DaysOfWeek []int64 `json:"days_of_week" validate:"omitempty,dive,min=0,max=6"`
}

type ShiftResponse struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Time       string    `json:"time"`
	EventDate  *string   `json:"event_date,omitempty"`
	DaysOfWeek []int64   `json:"days_of_week,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (r *CreateShiftRequest) ToModel() (*model.ShiftModel, error) {
	tod, err := dbtime.Parse(r.Time)
	if err != nil {
		return nil, err
	}

	m := &model.ShiftModel{
		ShiftTitle:      r.Title,
		ShiftTime:       tod,
		ShiftDaysOfWeek: pq.Int64Array(r.DaysOfWeek),
	}
	if r.EventDate != nil {
		d, err := time.Parse("2006-01-02", *r.EventDate)
		if err != nil {
			return nil, err
		}
		m.ShiftEventDate = &d
	}
	return m, nil
}

func FromModel(m *model.ShiftModel) ShiftResponse {
	resp := ShiftResponse{
		ID:         m.ShiftID,
		Title:      m.ShiftTitle,
		Time:       m.ShiftTime.Format("15:04:05"),
		DaysOfWeek: []int64(m.ShiftDaysOfWeek),
		CreatedAt:  m.ShiftCreatedAt,
		UpdatedAt:  m.ShiftUpdatedAt,
	}
	if m.ShiftEventDate != nil {
		d := m.ShiftEventDate.Format("2006-01-02")
		resp.EventDate = &d
	}
	return resp
}

func FromModels(ms []model.ShiftModel) []ShiftResponse {
	out := make([]ShiftResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
