package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	dto "pustakaku_backend/internals/features/library/shifts/dto"
	model "pustakaku_backend/internals/features/library/shifts/model"
	helper "pustakaku_backend/internals/helpers"
	"pustakaku_backend/internals/helpers/dbtime"
)

type ShiftController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *ShiftController {
	return &ShiftController{DB: db, Validate: v}
}

// ========== Create ==========
func (ctl *ShiftController) Create(c *fiber.Ctx) error {
	var req dto.CreateShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m, err := req.ToModel()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		code, msg := helper.MapPGError(err)
		return helper.JsonError(c, code, msg)
	}
	return helper.JsonCreated(c, "Shift berhasil dibuat", dto.FromModel(m))
}

// ========== List ==========
func (ctl *ShiftController) GetAll(c *fiber.Ctx) error {
	var rows []model.ShiftModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Order("shift_time ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "Daftar shift", dto.FromModels(rows))
}

// ========== Detail ==========
func (ctl *ShiftController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "shift id invalid")
	}

	var m model.ShiftModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&m, "shift_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Shift tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "Detail shift", dto.FromModel(&m))
}

// ========== Update ==========
func (ctl *ShiftController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "shift id invalid")
	}

	var req dto.UpdateShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m model.ShiftModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&m, "shift_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Shift tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		m.ShiftTitle = strings.TrimSpace(*req.Title)
	}
	if req.Time != nil {
		tod, er := dbtime.Parse(*req.Time)
		if er != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "time harus HH:MM[:SS]")
		}
		m.ShiftTime = tod
	}
	if req.EventDate != nil {
		d, er := time.Parse("2006-01-02", *req.EventDate)
		if er != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "event_date harus YYYY-MM-DD")
		}
		m.ShiftEventDate = &d
	}
	if req.DaysOfWeek != nil {
		m.ShiftDaysOfWeek = pq.Int64Array(req.DaysOfWeek)
	}

	if err := ctl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		code, msg := helper.MapPGError(err)
		return helper.JsonError(c, code, msg)
	}
	return helper.JsonUpdated(c, "Shift berhasil diperbarui", dto.FromModel(&m))
}

// ========== Delete ==========
func (ctl *ShiftController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "shift id invalid")
	}

	var m model.ShiftModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&m, "shift_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Shift tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var inUse int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Table("seat_assignments").
		Where("seat_assignment_shift_id = ?", id).
		Count(&inUse).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if inUse > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Shift masih dipakai assignment, lepaskan dulu")
	}

	if err := ctl.DB.WithContext(c.UserContext()).Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "Shift berhasil dihapus", dto.FromModel(&m))
}
