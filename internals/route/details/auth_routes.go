package details

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "pustakaku_backend/internals/features/users/auth/controller"
	"pustakaku_backend/internals/middlewares"
	authmw "pustakaku_backend/internals/middlewares/auth"
)

// AuthRoutes: register/login publik (dengan rate limiter) + /me terproteksi.
func AuthRoutes(app *fiber.App, db *gorm.DB, v *validator.Validate, jwtSecret string) {
	ctl := authController.New(db, v)

	grp := app.Group("/api/auth")
	grp.Post("/register", middlewares.RegisterRateLimiter(), ctl.Register)
	grp.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	grp.Post("/login-google", middlewares.LoginRateLimiter(), ctl.LoginGoogle)

	grp.Get("/me",
		authmw.AuthJWT(authmw.AuthJWTOpts{Secret: jwtSecret, AllowCookieFallback: true}),
		ctl.Me,
	)
}
