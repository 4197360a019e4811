package details

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pustakaku_backend/internals/constants"
	studentController "pustakaku_backend/internals/features/membership/students/controller"
	authmw "pustakaku_backend/internals/middlewares/auth"
)

// StudentRoutes: CRUD santri + renew membership + listing turunan status.
// Route statis (active/expired/expiring-soon/shift) didaftarkan SEBELUM
// route :id supaya tidak ketangkap param.
func StudentRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := studentController.New(db, v)

	grp := api.Group("/students")
	grp.Post("/", ctl.Create)
	grp.Get("/", ctl.GetAll)
	grp.Get("/active", ctl.GetActive)
	grp.Get("/expired", ctl.GetExpired)
	grp.Get("/expiring-soon", ctl.GetExpiringSoon)
	grp.Get("/shift/:shiftId", ctl.GetByShift)

	grp.Get("/:id", ctl.GetByID)
	grp.Put("/:id", ctl.Update)
	grp.Delete("/:id", authmw.RequireRoles(constants.AdminRoles...), ctl.Delete)
	grp.Post("/:id/renew", ctl.Renew)
	grp.Post("/:id/profile-image", ctl.UploadProfileImage)
}
