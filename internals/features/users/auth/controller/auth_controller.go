package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "pustakaku_backend/internals/features/users/auth/dto"
	model "pustakaku_backend/internals/features/users/auth/model"
	service "pustakaku_backend/internals/features/users/auth/service"
	helper "pustakaku_backend/internals/helpers"
	authmw "pustakaku_backend/internals/middlewares/auth"
)

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *AuthController {
	return &AuthController{DB: db, Validate: v}
}

// ========== Register ==========
func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	u, err := service.Register(ctl.DB.WithContext(c.UserContext()), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Registrasi berhasil", dto.FromModel(u))
}

// ========== Login ==========
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	u, tok, err := service.Login(ctl.DB.WithContext(c.UserContext()), req.Email, req.Password)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Login berhasil", dto.LoginResponse{
		AccessToken: tok,
		User:        dto.FromModel(u),
	})
}

// ========== Login Google ==========
func (ctl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req dto.LoginGoogleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	u, tok, err := service.LoginGoogle(ctl.DB.WithContext(c.UserContext()), req.IDToken)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Login berhasil", dto.LoginResponse{
		AccessToken: tok,
		User:        dto.FromModel(u),
	})
}

// ========== Me ==========
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	raw, _ := c.Locals(authmw.LocUserID).(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var u model.UserModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&u, "user_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "Profil user", dto.FromModel(&u))
}
