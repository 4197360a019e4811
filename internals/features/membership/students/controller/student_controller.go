package controller

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	branchModel "pustakaku_backend/internals/features/library/branches/model"
	dto "pustakaku_backend/internals/features/membership/students/dto"
	model "pustakaku_backend/internals/features/membership/students/model"
	service "pustakaku_backend/internals/features/membership/students/service"
	helper "pustakaku_backend/internals/helpers"
	"pustakaku_backend/internals/helpers/dbtime"
)

// Jendela "akan kedaluwarsa": hari ini s/d 7 hari ke depan.
const expiringSoonDays = 7

type StudentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Service  *service.MembershipService
}

func New(db *gorm.DB, v *validator.Validate) *StudentController {
	return &StudentController{
		DB:       db,
		Validate: v,
		Service:  service.New(db),
	}
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", name)
	}
	return uuid.Parse(idStr)
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

/* =========================
   Create / Update / Renew / Delete
   ========================= */

func (ctl *StudentController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[Student.Create] BodyParser error: %v", err)
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	stu, err := ctl.Service.Create(c.UserContext(), &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Santri berhasil didaftarkan", dto.FromModel(stu, time.Now()))
}

func (ctl *StudentController) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student id invalid")
	}

	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[Student.Update] BodyParser error: %v", err)
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	stu, err := ctl.Service.Update(c.UserContext(), id, &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Data santri berhasil diperbarui", dto.FromModel(stu, time.Now()))
}

func (ctl *StudentController) Renew(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student id invalid")
	}

	var req dto.RenewStudentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[Student.Renew] BodyParser error: %v", err)
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	stu, err := ctl.Service.Renew(c.UserContext(), id, &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Membership berhasil diperpanjang", dto.FromModel(stu, time.Now()))
}

func (ctl *StudentController) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student id invalid")
	}

	stu, err := ctl.Service.Delete(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Data santri berhasil dihapus", dto.FromModel(stu, time.Now()))
}

/* =========================
   Reads
   ========================= */

// listWithFilter: pagination + filter opsional branch_id & q (nama/telepon).
// Status pada response SELALU date-derived, kolom student_status diabaikan.
func (ctl *StudentController) listWithFilter(c *fiber.Ctx, scope func(*gorm.DB) *gorm.DB, msg string) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.StudentModel{})
	if scope != nil {
		q = scope(q)
	}
	if branchID := strings.TrimSpace(c.Query("branch_id")); branchID != "" {
		id, err := uuid.Parse(branchID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "branch_id invalid")
		}
		q = q.Where("student_branch_id = ?", id)
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + search + "%"
		q = q.Where("student_name ILIKE ? OR student_phone ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.StudentModel
	if err := q.Order("student_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, msg, dto.FromModels(rows, time.Now()),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

func (ctl *StudentController) GetAll(c *fiber.Ctx) error {
	return ctl.listWithFilter(c, nil, "Daftar santri")
}

func (ctl *StudentController) GetActive(c *fiber.Ctx) error {
	t := today()
	return ctl.listWithFilter(c, func(q *gorm.DB) *gorm.DB {
		return q.Where("student_membership_end >= ?", t)
	}, "Daftar santri aktif")
}

func (ctl *StudentController) GetExpired(c *fiber.Ctx) error {
	t := today()
	return ctl.listWithFilter(c, func(q *gorm.DB) *gorm.DB {
		return q.Where("student_membership_end < ?", t)
	}, "Daftar santri kedaluwarsa")
}

func (ctl *StudentController) GetExpiringSoon(c *fiber.Ctx) error {
	t := today()
	limit := t.AddDate(0, 0, expiringSoonDays)
	return ctl.listWithFilter(c, func(q *gorm.DB) *gorm.DB {
		return q.Where("student_membership_end >= ? AND student_membership_end <= ?", t, limit)
	}, "Daftar santri akan kedaluwarsa")
}

// assignmentRow: hasil join seat_assignments × seats × shifts.
type assignmentRow struct {
	SeatID     uuid.UUID  `gorm:"column:seat_id"`
	SeatNumber string     `gorm:"column:seat_number"`
	ShiftID    uuid.UUID  `gorm:"column:shift_id"`
	ShiftTitle string     `gorm:"column:shift_title"`
	ShiftTime  dbtime.Tod `gorm:"column:shift_time"`
}

func (ctl *StudentController) loadAssignments(c *fiber.Ctx, studentID uuid.UUID) ([]dto.SeatAssignmentResponse, error) {
	var rows []assignmentRow
	err := ctl.DB.WithContext(c.UserContext()).
		Table("seat_assignments").
		Select(`seat_assignments.seat_assignment_seat_id AS seat_id,
			seats.seat_number,
			seat_assignments.seat_assignment_shift_id AS shift_id,
			shifts.shift_title,
			shifts.shift_time`).
		Joins("JOIN seats ON seats.seat_id = seat_assignments.seat_assignment_seat_id").
		Joins("JOIN shifts ON shifts.shift_id = seat_assignments.seat_assignment_shift_id").
		Where("seat_assignments.seat_assignment_student_id = ?", studentID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]dto.SeatAssignmentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SeatAssignmentResponse{
			SeatID:     r.SeatID,
			SeatNumber: r.SeatNumber,
			ShiftID:    r.ShiftID,
			ShiftTitle: r.ShiftTitle,
			ShiftTime:  r.ShiftTime.Format("15:04:05"),
		})
	}
	return out, nil
}

func (ctl *StudentController) GetByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student id invalid")
	}

	var stu model.StudentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&stu, "student_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Data santri tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	resp := dto.FromModel(&stu, time.Now())

	var branch branchModel.BranchModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&branch, "branch_id = ?", stu.StudentBranchID).Error; err == nil {
		resp.BranchName = branch.BranchName
	}

	assignments, err := ctl.loadAssignments(c, stu.StudentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	resp.SeatAssignments = assignments

	return helper.JsonOK(c, "Detail santri", resp)
}

func (ctl *StudentController) GetByShift(c *fiber.Ctx) error {
	shiftID, err := parseUUIDParam(c, "shiftId")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "shift id invalid")
	}

	var rows []model.StudentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&model.StudentModel{}).
		Joins("JOIN seat_assignments ON seat_assignments.seat_assignment_student_id = students.student_id").
		Where("seat_assignments.seat_assignment_shift_id = ?", shiftID).
		Distinct("students.*").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "Daftar santri per shift", dto.FromModels(rows, time.Now()))
}

/* =========================
   Profile image upload
   ========================= */

// UploadProfileImage: multipart "image" → resize+WebP → OSS, lalu simpan
// URL-nya di kolom student_profile_image_url.
func (ctl *StudentController) UploadProfileImage(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student id invalid")
	}

	var stu model.StudentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&stu, "student_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Data santri tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File gambar wajib diisi (field: image)")
	}

	url, err := helper.UploadImageToOSS("students", fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	stu.StudentProfileImageURL = &url
	stu.StudentUpdatedAt = time.Now()
	if err := ctl.DB.WithContext(c.UserContext()).Save(&stu).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Foto profil berhasil diunggah", dto.FromModel(&stu, time.Now()))
}
