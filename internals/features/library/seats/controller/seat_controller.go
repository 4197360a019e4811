package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "pustakaku_backend/internals/features/library/seats/dto"
	model "pustakaku_backend/internals/features/library/seats/model"
	helper "pustakaku_backend/internals/helpers"
)

type SeatController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *SeatController {
	return &SeatController{DB: db, Validate: v}
}

// ========== Create ==========
func (ctl *SeatController) Create(c *fiber.Ctx) error {
	var req dto.CreateSeatRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	s := req.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Create(s).Error; err != nil {
		code, msg := helper.MapPGError(err)
		return helper.JsonError(c, code, msg)
	}
	return helper.JsonCreated(c, "Kursi berhasil dibuat", dto.FromModel(s))
}

// ========== List (opsional filter branch_id) ==========
func (ctl *SeatController) GetAll(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&model.SeatModel{})
	if branchID := strings.TrimSpace(c.Query("branch_id")); branchID != "" {
		id, err := uuid.Parse(branchID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "branch_id invalid")
		}
		q = q.Where("seat_branch_id = ?", id)
	}

	var rows []model.SeatModel
	if err := q.Order("seat_number ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "Daftar kursi", dto.FromModels(rows))
}

// ========== Availability per shift ==========
// GET /seats/available/:shiftId → semua kursi + flag occupied untuk shift itu.
func (ctl *SeatController) GetAvailabilityByShift(c *fiber.Ctx) error {
	shiftID, err := uuid.Parse(strings.TrimSpace(c.Params("shiftId")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "shift id invalid")
	}

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.SeatModel{})
	if branchID := strings.TrimSpace(c.Query("branch_id")); branchID != "" {
		id, er := uuid.Parse(branchID)
		if er != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "branch_id invalid")
		}
		q = q.Where("seat_branch_id = ?", id)
	}

	var seats []model.SeatModel
	if err := q.Order("seat_number ASC").Find(&seats).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var occupiedIDs []uuid.UUID
	if err := ctl.DB.WithContext(c.UserContext()).
		Table("seat_assignments").
		Where("seat_assignment_shift_id = ?", shiftID).
		Pluck("seat_assignment_seat_id", &occupiedIDs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	occupied := make(map[uuid.UUID]bool, len(occupiedIDs))
	for _, id := range occupiedIDs {
		occupied[id] = true
	}

	out := dto.FromModels(seats)
	for i := range out {
		v := occupied[out[i].ID]
		out[i].Occupied = &v
	}
	return helper.JsonOK(c, "Ketersediaan kursi per shift", out)
}

// ========== Detail ==========
func (ctl *SeatController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "seat id invalid")
	}

	var s model.SeatModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&s, "seat_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Kursi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "Detail kursi", dto.FromModel(&s))
}

// ========== Update ==========
func (ctl *SeatController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "seat id invalid")
	}

	var req dto.UpdateSeatRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var s model.SeatModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&s, "seat_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Kursi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if req.SeatNumber != nil && strings.TrimSpace(*req.SeatNumber) != "" {
		s.SeatNumber = strings.TrimSpace(*req.SeatNumber)
	}
	if req.BranchID != nil {
		s.SeatBranchID = *req.BranchID
	}

	if err := ctl.DB.WithContext(c.UserContext()).Save(&s).Error; err != nil {
		code, msg := helper.MapPGError(err)
		return helper.JsonError(c, code, msg)
	}
	return helper.JsonUpdated(c, "Kursi berhasil diperbarui", dto.FromModel(&s))
}

// ========== Delete ==========
func (ctl *SeatController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "seat id invalid")
	}

	var s model.SeatModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&s, "seat_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Kursi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// Tolak hapus kalau kursi masih dipakai assignment aktif.
	var inUse int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Table("seat_assignments").
		Where("seat_assignment_seat_id = ?", id).
		Count(&inUse).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if inUse > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Kursi masih dipakai santri, lepaskan dulu assignment-nya")
	}

	if err := ctl.DB.WithContext(c.UserContext()).Delete(&s).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "Kursi berhasil dihapus", dto.FromModel(&s))
}
