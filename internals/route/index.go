package routes

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pustakaku_backend/internals/configs"
	paymentService "pustakaku_backend/internals/features/finance/payments/service"
	authmw "pustakaku_backend/internals/middlewares/auth"
	routeDetails "pustakaku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()
	validate := validator.New()
	jwtSecret := configs.JWTSecret
	if jwtSecret == "" {
		jwtSecret = os.Getenv("JWT_SECRET")
	}

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db, validate, jwtSecret)

	// Webhook Midtrans harus bebas JWT, daftarkan sebelum group /api.
	log.Println("[INFO] Setting up Payment webhook...")
	routeDetails.PaymentWebhookRoute(app, db, validate)

	// ===================== PRIVATE API =====================
	log.Println("[INFO] Setting up API group (JWT)...")
	api := app.Group("/api",
		authmw.AuthJWT(authmw.AuthJWTOpts{
			Secret:              jwtSecret,
			AllowCookieFallback: true,
		}),
	)

	// ===== Midtrans config =====
	useMidtransProd := func() bool {
		if v := os.Getenv("MIDTRANS_USE_PROD"); v != "" {
			b, err := strconv.ParseBool(v)
			if err == nil {
				return b
			}
		}
		return false
	}()
	paymentService.InitMidtrans(configs.MidtransServerKey, useMidtransProd)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting Library routes...")
	routeDetails.LibraryRoutes(api, db, validate)

	log.Println("[INFO] Mounting Student routes...")
	routeDetails.StudentRoutes(api, db, validate)

	log.Println("[INFO] Mounting Payment routes...")
	routeDetails.PaymentRoutes(api, db, validate)
}
