package details

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pustakaku_backend/internals/constants"
	branchController "pustakaku_backend/internals/features/library/branches/controller"
	seatController "pustakaku_backend/internals/features/library/seats/controller"
	shiftController "pustakaku_backend/internals/features/library/shifts/controller"
	authmw "pustakaku_backend/internals/middlewares/auth"
)

// LibraryRoutes: master data cabang, kursi, dan shift.
// Hapus master data terbatas untuk admin/owner.
func LibraryRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	adminOnly := authmw.RequireRoles(constants.AdminRoles...)

	branches := branchController.New(db, v)
	grp := api.Group("/branches")
	grp.Post("/", branches.Create)
	grp.Get("/", branches.GetAll)
	grp.Get("/:id", branches.GetByID)
	grp.Put("/:id", branches.Update)
	grp.Delete("/:id", adminOnly, branches.Delete)

	seats := seatController.New(db, v)
	sg := api.Group("/seats")
	sg.Post("/", seats.Create)
	sg.Get("/", seats.GetAll)
	sg.Get("/available/:shiftId", seats.GetAvailabilityByShift)
	sg.Get("/:id", seats.GetByID)
	sg.Put("/:id", seats.Update)
	sg.Delete("/:id", adminOnly, seats.Delete)

	shifts := shiftController.New(db, v)
	hg := api.Group("/shifts")
	hg.Post("/", shifts.Create)
	hg.Get("/", shifts.GetAll)
	hg.Get("/:id", shifts.GetByID)
	hg.Put("/:id", shifts.Update)
	hg.Delete("/:id", adminOnly, shifts.Delete)
}
