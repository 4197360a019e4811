package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "pustakaku_backend/internals/features/library/branches/dto"
	model "pustakaku_backend/internals/features/library/branches/model"
	helper "pustakaku_backend/internals/helpers"
)

type BranchController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *BranchController {
	return &BranchController{DB: db, Validate: v}
}

// ========== Create ==========
func (ctl *BranchController) Create(c *fiber.Ctx) error {
	var req dto.CreateBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	b := req.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Create(b).Error; err != nil {
		code, msg := helper.MapPGError(err)
		return helper.JsonError(c, code, msg)
	}
	return helper.JsonCreated(c, "Cabang berhasil dibuat", dto.FromModel(b))
}

// ========== List ==========
func (ctl *BranchController) GetAll(c *fiber.Ctx) error {
	var rows []model.BranchModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Order("branch_name ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "Daftar cabang", dto.FromModels(rows))
}

// ========== Detail ==========
func (ctl *BranchController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "branch id invalid")
	}

	var b model.BranchModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&b, "branch_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Cabang tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "Detail cabang", dto.FromModel(&b))
}

// ========== Update ==========
func (ctl *BranchController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "branch id invalid")
	}

	var req dto.UpdateBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var b model.BranchModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&b, "branch_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Cabang tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		b.BranchName = strings.TrimSpace(*req.Name)
	}
	if req.Code != nil {
		b.BranchCode = req.Code
	}

	if err := ctl.DB.WithContext(c.UserContext()).Save(&b).Error; err != nil {
		code, msg := helper.MapPGError(err)
		return helper.JsonError(c, code, msg)
	}
	return helper.JsonUpdated(c, "Cabang berhasil diperbarui", dto.FromModel(&b))
}

// ========== Delete ==========
func (ctl *BranchController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "branch id invalid")
	}

	var b model.BranchModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&b, "branch_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Cabang tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := ctl.DB.WithContext(c.UserContext()).Delete(&b).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "Cabang berhasil dihapus", dto.FromModel(&b))
}
