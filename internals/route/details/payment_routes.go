package details

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentController "pustakaku_backend/internals/features/finance/payments/controller"
)

// PaymentRoutes: snap token + riwayat pembayaran per santri (JWT).
func PaymentRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := paymentController.New(db, v)

	api.Post("/payments/students/:id", ctl.CreateForStudent)
	api.Get("/payments/students/:id", ctl.GetByStudent)
}

// PaymentWebhookRoute: notifikasi server-to-server Midtrans, tanpa JWT.
// WAJIB didaftarkan SEBELUM group /api supaya tidak kena middleware auth.
func PaymentWebhookRoute(app *fiber.App, db *gorm.DB, v *validator.Validate) {
	ctl := paymentController.New(db, v)
	app.Post("/api/payments/webhook", ctl.Webhook)
}
