package controller

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "pustakaku_backend/internals/features/finance/payments/dto"
	model "pustakaku_backend/internals/features/finance/payments/model"
	service "pustakaku_backend/internals/features/finance/payments/service"
	studentModel "pustakaku_backend/internals/features/membership/students/model"
	membershipService "pustakaku_backend/internals/features/membership/students/service"
	helper "pustakaku_backend/internals/helpers"
)

type PaymentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *PaymentController {
	return &PaymentController{DB: db, Validate: v}
}

// ========== Create (Snap token) ==========
// POST /payments/students/:id → buat order pending + snap token.
func (ctl *PaymentController) CreateForStudent(c *fiber.Ctx) error {
	if !service.MidtransReady() {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Pembayaran online belum dikonfigurasi")
	}

	studentID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student id invalid")
	}

	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var stu studentModel.StudentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&stu, "student_id = ?", studentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Data santri tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	pay := &model.PaymentModel{
		PaymentOrderID:   "PAY-" + uuid.NewString(),
		PaymentStudentID: stu.StudentID,
		PaymentAmount:    req.Amount,
		PaymentStatus:    model.PaymentStatusPending,
	}

	email := ""
	if stu.StudentEmail != nil {
		email = *stu.StudentEmail
	}
	token, redirectURL, err := service.GenerateSnapToken(pay, service.CustomerInput{
		Name:  stu.StudentName,
		Email: email,
		Phone: stu.StudentPhone,
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal membuat transaksi Midtrans")
	}
	pay.PaymentSnapToken = &token

	if err := ctl.DB.WithContext(c.UserContext()).Create(pay).Error; err != nil {
		code, msg := helper.MapPGError(err)
		return helper.JsonError(c, code, msg)
	}

	resp := dto.FromModel(pay)
	resp.RedirectURL = redirectURL
	return helper.JsonCreated(c, "Transaksi pembayaran dibuat", resp)
}

// ========== List per student ==========
func (ctl *PaymentController) GetByStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student id invalid")
	}

	var rows []model.PaymentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("payment_student_id = ?", studentID).
		Order("payment_created_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "Riwayat pembayaran", dto.FromModels(rows))
}

// ========== Webhook ==========
// POST /payments/webhook → notifikasi Midtrans. Selalu balas 200 supaya
// Midtrans berhenti retry, kecuali payload-nya rusak.
func (ctl *PaymentController) Webhook(c *fiber.Ctx) error {
	var notif dto.MidtransNotification
	if err := c.BodyParser(&notif); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid notification body")
	}
	if strings.TrimSpace(notif.OrderID) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "order_id kosong")
	}

	err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var pay model.PaymentModel
		if err := tx.First(&pay, "payment_order_id = ?", notif.OrderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Order tidak ditemukan")
			}
			return err
		}

		switch notif.TransactionStatus {
		case "capture", "settlement":
			if notif.FraudStatus == "deny" || notif.FraudStatus == "challenge" {
				return nil
			}
			// idempotent: notifikasi settlement bisa datang lebih dari sekali
			if pay.PaymentStatus == model.PaymentStatusPaid {
				return nil
			}
			amount := pay.PaymentAmount
			if g := strings.TrimSpace(notif.GrossAmount); g != "" {
				if v, er := strconv.ParseFloat(g, 64); er == nil && v > 0 {
					amount = v
				}
			}
			now := time.Now()
			pay.PaymentStatus = model.PaymentStatusPaid
			pay.PaymentPaidAt = &now
			pay.PaymentAmount = amount
			if err := tx.Save(&pay).Error; err != nil {
				return err
			}
			return membershipService.ApplyOnlinePayment(tx, pay.PaymentStudentID, amount)

		case "expire":
			pay.PaymentStatus = model.PaymentStatusExpired
			return tx.Save(&pay).Error

		case "cancel", "deny":
			pay.PaymentStatus = model.PaymentStatusCanceled
			return tx.Save(&pay).Error

		default:
			// pending dan status lain: tidak ada perubahan
			return nil
		}
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "OK", fiber.Map{"order_id": notif.OrderID})
}
