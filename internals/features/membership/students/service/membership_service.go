package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	seatModel "pustakaku_backend/internals/features/library/seats/model"
	shiftModel "pustakaku_backend/internals/features/library/shifts/model"
	dto "pustakaku_backend/internals/features/membership/students/dto"
	model "pustakaku_backend/internals/features/membership/students/model"
	helper "pustakaku_backend/internals/helpers"
)

// MembershipService = koordinator transaksi santri + seat_assignments +
// student_membership_history. Semua jalur tulis berjalan di dalam SATU
// transaksi GORM; error apapun membatalkan seluruhnya.
type MembershipService struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *MembershipService {
	return &MembershipService{DB: db}
}

/* =========================
   Pure helpers
   ========================= */

// ComputeDue: total - dibayar, TANPA floor nol. Negatif = kelebihan bayar.
func ComputeDue(totalFee, amountPaid float64) float64 {
	return totalFee - amountPaid
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dto.DateLayout, s)
}

// checkNonNegative menolak nilai uang negatif yang dikirim client.
func checkNonNegative(fields map[string]dto.Money) error {
	for name, m := range fields {
		if m.Valid && m.Value < 0 {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Nilai %s tidak boleh negatif", name))
		}
	}
	return nil
}

// ResolveAmountPaid: amount_paid eksplisit menang; kalau tidak ada tapi
// cash/online diisi, pakai cash+online; sisanya fallback nilai tersimpan.
func ResolveAmountPaid(amountPaid, cash, online dto.Money, storedPaid, storedCash, storedOnline float64) float64 {
	if amountPaid.Valid {
		return amountPaid.Value
	}
	if cash.Valid || online.Valid {
		return cash.Or(storedCash) + online.Or(storedOnline)
	}
	return storedPaid
}

/* =========================
   Seat/shift conflict check
   ========================= */

// validateSeatShifts memastikan kursi & semua shift ada, lalu memastikan
// tidak ada assignment (seat, shift) milik santri lain. excludeStudent
// dipakai jalur update/renew supaya baris milik santri itu sendiri tidak
// dihitung bentrok.
func validateSeatShifts(tx *gorm.DB, seatID uuid.UUID, shiftIDs []uuid.UUID, excludeStudent *uuid.UUID) error {
	var seat seatModel.SeatModel
	if err := tx.First(&seat, "seat_id = ?", seatID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusBadRequest, "Kursi tidak ditemukan")
		}
		return err
	}

	var shifts []shiftModel.ShiftModel
	if err := tx.Where("shift_id IN ?", shiftIDs).Find(&shifts).Error; err != nil {
		return err
	}
	byID := make(map[uuid.UUID]shiftModel.ShiftModel, len(shifts))
	for _, sh := range shifts {
		byID[sh.ShiftID] = sh
	}

	for _, shiftID := range shiftIDs {
		sh, ok := byID[shiftID]
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Shift %s tidak ditemukan", shiftID))
		}

		q := tx.Model(&model.SeatAssignmentModel{}).
			Where("seat_assignment_seat_id = ? AND seat_assignment_shift_id = ?", seatID, shiftID)
		if excludeStudent != nil {
			q = q.Where("seat_assignment_student_id <> ?", *excludeStudent)
		}
		var count int64
		if err := q.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Kursi %s sudah terisi untuk shift %s", seat.SeatNumber, sh.ShiftTitle))
		}
	}
	return nil
}

// replaceAssignments: hapus semua assignment santri lalu insert ulang
// (full replace, bukan diff). shift_ids kosong = bersihkan semua.
// Unique violation dari index (seat_id, shift_id) dipetakan jadi 400,
// menutup race dua request yang lolos pengecekan bersamaan.
func replaceAssignments(tx *gorm.DB, studentID uuid.UUID, seatID *uuid.UUID, shiftIDs []uuid.UUID) error {
	if err := tx.Where("seat_assignment_student_id = ?", studentID).
		Delete(&model.SeatAssignmentModel{}).Error; err != nil {
		return err
	}
	if seatID == nil || len(shiftIDs) == 0 {
		return nil
	}
	rows := make([]model.SeatAssignmentModel, 0, len(shiftIDs))
	for _, shiftID := range shiftIDs {
		rows = append(rows, model.SeatAssignmentModel{
			SeatAssignmentSeatID:    *seatID,
			SeatAssignmentShiftID:   shiftID,
			SeatAssignmentStudentID: studentID,
		})
	}
	if err := tx.Create(&rows).Error; err != nil {
		if helper.IsPGUniqueViolation(err) {
			return fiber.NewError(fiber.StatusBadRequest,
				"Kursi baru saja terisi untuk salah satu shift, silakan ulangi")
		}
		return err
	}
	return nil
}

func appendHistory(tx *gorm.DB, stu *model.StudentModel, event string, seatID *uuid.UUID, shiftIDs []uuid.UUID) error {
	var firstShift *uuid.UUID
	if len(shiftIDs) > 0 {
		first := shiftIDs[0]
		firstShift = &first
	}

	snapshot, err := buildSnapshot(stu, seatID, shiftIDs)
	if err != nil {
		return err
	}

	h := model.MembershipHistoryModel{
		HistoryStudentID:       stu.StudentID,
		HistoryEvent:           event,
		HistoryMembershipStart: stu.StudentMembershipStart,
		HistoryMembershipEnd:   stu.StudentMembershipEnd,
		HistoryTotalFee:        stu.StudentTotalFee,
		HistoryAmountPaid:      stu.StudentAmountPaid,
		HistoryDueAmount:       stu.StudentDueAmount,
		HistoryCash:            stu.StudentCash,
		HistoryOnline:          stu.StudentOnline,
		HistorySecurityMoney:   stu.StudentSecurityMoney,
		HistorySeatID:          seatID,
		HistoryShiftID:         firstShift,
		HistorySnapshot:        snapshot,
	}
	return tx.Create(&h).Error
}

/* =========================
   Create
   ========================= */

func (s *MembershipService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*model.StudentModel, error) {
	start, err := parseDate(req.MembershipStart)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "membership_start harus YYYY-MM-DD")
	}
	end, err := parseDate(req.MembershipEnd)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "membership_end harus YYYY-MM-DD")
	}
	if err := checkNonNegative(map[string]dto.Money{
		"total_fee":      req.TotalFee,
		"amount_paid":    req.AmountPaid,
		"cash":           req.Cash,
		"online":         req.Online,
		"security_money": req.SecurityMoney,
	}); err != nil {
		return nil, err
	}

	now := time.Now()
	totalFee := req.TotalFee.Or(0)
	amountPaid := ResolveAmountPaid(req.AmountPaid, req.Cash, req.Online, 0, 0, 0)

	stu := model.StudentModel{
		StudentName:            req.Name,
		StudentEmail:           req.Email,
		StudentPhone:           req.Phone,
		StudentAddress:         req.Address,
		StudentBranchID:        req.BranchID,
		StudentMembershipStart: start,
		StudentMembershipEnd:   end,
		StudentTotalFee:        totalFee,
		StudentAmountPaid:      amountPaid,
		StudentDueAmount:       ComputeDue(totalFee, amountPaid),
		StudentCash:            req.Cash.Or(0),
		StudentOnline:          req.Online.Or(0),
		StudentSecurityMoney:   req.SecurityMoney.Or(0),
		StudentRemark:          req.Remark,
		StudentProfileImageURL: req.ProfileImageURL,
		StudentStatus:          dto.DeriveStatus(end, now),
	}

	withSeat := req.SeatID != nil && len(req.ShiftIDs) > 0

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if withSeat {
			if er := validateSeatShifts(tx, *req.SeatID, req.ShiftIDs, nil); er != nil {
				return er
			}
		}
		if er := tx.Create(&stu).Error; er != nil {
			return er
		}
		if withSeat {
			if er := replaceAssignments(tx, stu.StudentID, req.SeatID, req.ShiftIDs); er != nil {
				return er
			}
			return appendHistory(tx, &stu, model.HistoryEventCreated, req.SeatID, req.ShiftIDs)
		}
		return appendHistory(tx, &stu, model.HistoryEventCreated, nil, nil)
	})
	if err != nil {
		return nil, err
	}
	return &stu, nil
}

/* =========================
   Update
   ========================= */

func (s *MembershipService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateStudentRequest) (*model.StudentModel, error) {
	start, err := parseDate(req.MembershipStart)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "membership_start harus YYYY-MM-DD")
	}
	end, err := parseDate(req.MembershipEnd)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "membership_end harus YYYY-MM-DD")
	}
	if err := checkNonNegative(map[string]dto.Money{
		"total_fee":      req.TotalFee,
		"amount_paid":    req.AmountPaid,
		"cash":           req.Cash,
		"online":         req.Online,
		"security_money": req.SecurityMoney,
	}); err != nil {
		return nil, err
	}

	var stu model.StudentModel

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if er := tx.First(&stu, "student_id = ?", id).Error; er != nil {
			if er == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Data santri tidak ditemukan")
			}
			return er
		}

		// Field uang yang tidak diisi mempertahankan nilai tersimpan.
		totalFee := req.TotalFee.Or(stu.StudentTotalFee)
		cash := req.Cash.Or(stu.StudentCash)
		online := req.Online.Or(stu.StudentOnline)
		amountPaid := ResolveAmountPaid(req.AmountPaid, req.Cash, req.Online,
			stu.StudentAmountPaid, stu.StudentCash, stu.StudentOnline)

		withSeat := req.SeatID != nil && len(req.ShiftIDs) > 0
		if withSeat {
			if er := validateSeatShifts(tx, *req.SeatID, req.ShiftIDs, &stu.StudentID); er != nil {
				return er
			}
		}

		now := time.Now()
		stu.StudentName = req.Name
		stu.StudentEmail = req.Email
		stu.StudentPhone = req.Phone
		stu.StudentAddress = req.Address
		stu.StudentBranchID = req.BranchID
		stu.StudentMembershipStart = start
		stu.StudentMembershipEnd = end
		stu.StudentTotalFee = totalFee
		stu.StudentAmountPaid = amountPaid
		stu.StudentDueAmount = ComputeDue(totalFee, amountPaid)
		stu.StudentCash = cash
		stu.StudentOnline = online
		stu.StudentSecurityMoney = req.SecurityMoney.Or(stu.StudentSecurityMoney)
		if req.Remark != nil {
			stu.StudentRemark = req.Remark
		}
		if req.ProfileImageURL != nil {
			stu.StudentProfileImageURL = req.ProfileImageURL
		}
		stu.StudentStatus = dto.DeriveStatus(end, now)
		stu.StudentUpdatedAt = now

		if er := tx.Save(&stu).Error; er != nil {
			return er
		}

		// Full replace: semua assignment lama dibuang, lalu diisi ulang
		// bila seat+shift dikirim. shift_ids kosong = bersih total.
		if er := replaceAssignments(tx, stu.StudentID, req.SeatID, req.ShiftIDs); er != nil {
			return er
		}

		// Histori append-only: update menambah baris "updated" baru,
		// tidak menimpa baris terakhir.
		if withSeat {
			return appendHistory(tx, &stu, model.HistoryEventUpdated, req.SeatID, req.ShiftIDs)
		}
		return appendHistory(tx, &stu, model.HistoryEventUpdated, nil, nil)
	})
	if err != nil {
		return nil, err
	}
	return &stu, nil
}

/* =========================
   Renew
   ========================= */

func (s *MembershipService) Renew(ctx context.Context, id uuid.UUID, req *dto.RenewStudentRequest) (*model.StudentModel, error) {
	start, err := parseDate(req.MembershipStart)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "membership_start harus YYYY-MM-DD")
	}
	end, err := parseDate(req.MembershipEnd)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "membership_end harus YYYY-MM-DD")
	}
	if err := checkNonNegative(map[string]dto.Money{
		"total_fee":      req.TotalFee,
		"cash":           req.Cash,
		"online":         req.Online,
		"security_money": req.SecurityMoney,
	}); err != nil {
		return nil, err
	}

	var stu model.StudentModel

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if er := tx.First(&stu, "student_id = ?", id).Error; er != nil {
			if er == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Data santri tidak ditemukan")
			}
			return er
		}

		totalFee := req.TotalFee.Or(stu.StudentTotalFee)
		cash := req.Cash.Or(stu.StudentCash)
		online := req.Online.Or(stu.StudentOnline)
		// Perpanjangan SELALU menghitung ulang amount_paid dari cash+online.
		amountPaid := cash + online

		withSeat := req.SeatID != nil && len(req.ShiftIDs) > 0
		if withSeat {
			if er := validateSeatShifts(tx, *req.SeatID, req.ShiftIDs, &stu.StudentID); er != nil {
				return er
			}
		}

		if req.Email != nil {
			stu.StudentEmail = req.Email
		}
		if req.Phone != nil {
			stu.StudentPhone = *req.Phone
		}
		if req.BranchID != nil {
			stu.StudentBranchID = *req.BranchID
		}
		if req.Remark != nil {
			stu.StudentRemark = req.Remark
		}

		stu.StudentMembershipStart = start
		stu.StudentMembershipEnd = end
		stu.StudentTotalFee = totalFee
		stu.StudentAmountPaid = amountPaid
		stu.StudentDueAmount = ComputeDue(totalFee, amountPaid)
		stu.StudentCash = cash
		stu.StudentOnline = online
		stu.StudentSecurityMoney = req.SecurityMoney.Or(stu.StudentSecurityMoney)
		// Kebijakan lama: renew selalu menandai aktif, TIDAK peduli tanggalnya.
		// Endpoint baca tetap menurunkan status dari tanggal.
		stu.StudentStatus = model.StatusActive
		stu.StudentUpdatedAt = time.Now()

		if er := tx.Save(&stu).Error; er != nil {
			return er
		}
		if er := replaceAssignments(tx, stu.StudentID, req.SeatID, req.ShiftIDs); er != nil {
			return er
		}
		if withSeat {
			return appendHistory(tx, &stu, model.HistoryEventRenewed, req.SeatID, req.ShiftIDs)
		}
		return appendHistory(tx, &stu, model.HistoryEventRenewed, nil, nil)
	})
	if err != nil {
		return nil, err
	}
	return &stu, nil
}

/* =========================
   Delete
   ========================= */

// Delete menghapus santri berikut assignment dan historinya, atomik.
// Record yang terhapus dikembalikan ke caller.
func (s *MembershipService) Delete(ctx context.Context, id uuid.UUID) (*model.StudentModel, error) {
	var stu model.StudentModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if er := tx.First(&stu, "student_id = ?", id).Error; er != nil {
			if er == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Data santri tidak ditemukan")
			}
			return er
		}
		if er := tx.Where("seat_assignment_student_id = ?", id).
			Delete(&model.SeatAssignmentModel{}).Error; er != nil {
			return er
		}
		if er := tx.Where("history_student_id = ?", id).
			Delete(&model.MembershipHistoryModel{}).Error; er != nil {
			return er
		}
		return tx.Delete(&model.StudentModel{}, "student_id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &stu, nil
}

/* =========================
   Payment settlement
   ========================= */

// ApplyOnlinePayment menambah komponen online santri sebesar amount dan
// menulis baris histori "payment". Dipanggil dari webhook Midtrans, ikut
// transaksi yang sama dengan update status payment.
func ApplyOnlinePayment(tx *gorm.DB, studentID uuid.UUID, amount float64) error {
	var stu model.StudentModel
	if err := tx.First(&stu, "student_id = ?", studentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Data santri tidak ditemukan")
		}
		return err
	}

	stu.StudentOnline += amount
	stu.StudentAmountPaid = stu.StudentCash + stu.StudentOnline
	stu.StudentDueAmount = ComputeDue(stu.StudentTotalFee, stu.StudentAmountPaid)
	stu.StudentUpdatedAt = time.Now()

	if err := tx.Save(&stu).Error; err != nil {
		return err
	}
	return appendHistory(tx, &stu, model.HistoryEventPayment, nil, nil)
}
