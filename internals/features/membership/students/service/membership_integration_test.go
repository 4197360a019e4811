//go:build integration

package service

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	branchModel "pustakaku_backend/internals/features/library/branches/model"
	seatModel "pustakaku_backend/internals/features/library/seats/model"
	shiftModel "pustakaku_backend/internals/features/library/shifts/model"
	dto "pustakaku_backend/internals/features/membership/students/dto"
	model "pustakaku_backend/internals/features/membership/students/model"
	"pustakaku_backend/internals/helpers/dbtime"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		fmt.Println("TEST_DATABASE_DSN kosong, skip integration test")
		os.Exit(0)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Printf("konek test DB: %v\n", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(
		&branchModel.BranchModel{},
		&seatModel.SeatModel{},
		&shiftModel.ShiftModel{},
		&model.StudentModel{},
		&model.SeatAssignmentModel{},
		&model.MembershipHistoryModel{},
	); err != nil {
		fmt.Printf("automigrate: %v\n", err)
		os.Exit(1)
	}
	testDB = db
	os.Exit(m.Run())
}

func cleanup(t *testing.T) {
	t.Helper()
	for _, table := range []string{
		"student_membership_history", "seat_assignments", "students", "seats", "shifts", "branches",
	} {
		if err := testDB.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("cleanup %s: %v", table, err)
		}
	}
}

func seedFixture(t *testing.T) (branchID, seatID, shiftID uuid.UUID) {
	t.Helper()
	branch := branchModel.BranchModel{BranchName: "Cabang Pusat"}
	if err := testDB.Create(&branch).Error; err != nil {
		t.Fatalf("seed branch: %v", err)
	}
	seat := seatModel.SeatModel{SeatBranchID: branch.BranchID, SeatNumber: "A-01"}
	if err := testDB.Create(&seat).Error; err != nil {
		t.Fatalf("seed seat: %v", err)
	}
	tod, _ := dbtime.Parse("09:00")
	shift := shiftModel.ShiftModel{ShiftTitle: "Pagi", ShiftTime: tod}
	if err := testDB.Create(&shift).Error; err != nil {
		t.Fatalf("seed shift: %v", err)
	}
	return branch.BranchID, seat.SeatID, shift.ShiftID
}

func baseCreateReq(branchID uuid.UUID) *dto.CreateStudentRequest {
	return &dto.CreateStudentRequest{
		Name:            "Budi",
		Phone:           "0812000111",
		BranchID:        branchID,
		MembershipStart: "2025-06-01",
		MembershipEnd:   "2025-07-01",
		TotalFee:        dto.Money{Value: 1500, Valid: true},
		Cash:            dto.Money{Value: 500, Valid: true},
	}
}

func TestCreateWithSeatWritesHistory(t *testing.T) {
	cleanup(t)
	branchID, seatID, shiftID := seedFixture(t)
	svc := New(testDB)

	req := baseCreateReq(branchID)
	req.SeatID = &seatID
	req.ShiftIDs = []uuid.UUID{shiftID}

	stu, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if stu.StudentAmountPaid != 500 || stu.StudentDueAmount != 1000 {
		t.Fatalf("paid=%v due=%v", stu.StudentAmountPaid, stu.StudentDueAmount)
	}

	var nAssign, nHist int64
	testDB.Model(&model.SeatAssignmentModel{}).
		Where("seat_assignment_student_id = ?", stu.StudentID).Count(&nAssign)
	testDB.Model(&model.MembershipHistoryModel{}).
		Where("history_student_id = ?", stu.StudentID).Count(&nHist)
	if nAssign != 1 || nHist != 1 {
		t.Fatalf("assignments=%d history=%d, want 1/1", nAssign, nHist)
	}

	var h model.MembershipHistoryModel
	testDB.First(&h, "history_student_id = ?", stu.StudentID)
	if h.HistoryEvent != model.HistoryEventCreated {
		t.Fatalf("event = %s", h.HistoryEvent)
	}
}

func TestSeatConflictRollsBackWholeCreate(t *testing.T) {
	cleanup(t)
	branchID, seatID, shiftID := seedFixture(t)
	svc := New(testDB)

	first := baseCreateReq(branchID)
	first.SeatID = &seatID
	first.ShiftIDs = []uuid.UUID{shiftID}
	if _, err := svc.Create(context.Background(), first); err != nil {
		t.Fatalf("create pertama: %v", err)
	}

	second := baseCreateReq(branchID)
	second.Name = "Siti"
	second.Phone = "0812000222"
	second.SeatID = &seatID
	second.ShiftIDs = []uuid.UUID{shiftID}

	_, err := svc.Create(context.Background(), second)
	if err == nil {
		t.Fatal("kursi bentrok harus ditolak")
	}
	fe, ok := err.(*fiber.Error)
	if !ok || fe.Code != fiber.StatusBadRequest {
		t.Fatalf("err = %v", err)
	}

	// konflik harus membatalkan SELURUH transaksi: tidak ada baris Siti
	var n int64
	testDB.Model(&model.StudentModel{}).Where("student_name = ?", "Siti").Count(&n)
	if n != 0 {
		t.Fatalf("student Siti tersisa %d baris setelah rollback", n)
	}
}

func TestUpdatePreservesUnsetMoneyAndAppendsHistory(t *testing.T) {
	cleanup(t)
	branchID, _, _ := seedFixture(t)
	svc := New(testDB)

	stu, err := svc.Create(context.Background(), baseCreateReq(branchID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	upd := baseCreateReq(branchID)
	upd.Name = "Budi Baru"
	upd.TotalFee = dto.Money{} // tidak diisi → pertahankan 1500
	upd.Cash = dto.Money{}

	got, err := svc.Update(context.Background(), stu.StudentID, upd)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.StudentName != "Budi Baru" {
		t.Fatalf("name = %s", got.StudentName)
	}
	if got.StudentTotalFee != 1500 || got.StudentAmountPaid != 500 {
		t.Fatalf("fee=%v paid=%v, nilai tersimpan harus bertahan", got.StudentTotalFee, got.StudentAmountPaid)
	}

	var nHist int64
	testDB.Model(&model.MembershipHistoryModel{}).
		Where("history_student_id = ?", stu.StudentID).Count(&nHist)
	if nHist != 2 {
		t.Fatalf("history = %d, want 2 (created + updated)", nHist)
	}
}

func TestUpdateEmptyShiftIDsClearsAssignments(t *testing.T) {
	cleanup(t)
	branchID, seatID, shiftID := seedFixture(t)
	svc := New(testDB)

	req := baseCreateReq(branchID)
	req.SeatID = &seatID
	req.ShiftIDs = []uuid.UUID{shiftID}
	stu, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	upd := baseCreateReq(branchID)
	upd.SeatID = nil
	upd.ShiftIDs = nil
	if _, err := svc.Update(context.Background(), stu.StudentID, upd); err != nil {
		t.Fatalf("update: %v", err)
	}

	var n int64
	testDB.Model(&model.SeatAssignmentModel{}).
		Where("seat_assignment_student_id = ?", stu.StudentID).Count(&n)
	if n != 0 {
		t.Fatalf("assignments = %d, want 0", n)
	}
}

func TestRenewRecomputesPaidAndForcesActive(t *testing.T) {
	cleanup(t)
	branchID, _, _ := seedFixture(t)
	svc := New(testDB)

	stu, err := svc.Create(context.Background(), baseCreateReq(branchID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Renew(context.Background(), stu.StudentID, &dto.RenewStudentRequest{
		MembershipStart: "2025-07-01",
		MembershipEnd:   "2025-08-01",
		TotalFee:        dto.Money{Value: 1600, Valid: true},
		Cash:            dto.Money{Value: 1000, Valid: true},
		Online:          dto.Money{Value: 600, Valid: true},
	})
	if err != nil {
		t.Fatalf("renew: %v", err)
	}
	if got.StudentAmountPaid != 1600 {
		t.Fatalf("amount_paid = %v, renew harus cash+online", got.StudentAmountPaid)
	}
	if got.StudentDueAmount != 0 {
		t.Fatalf("due = %v", got.StudentDueAmount)
	}
	if got.StudentStatus != model.StatusActive {
		t.Fatalf("status = %s, renew selalu menandai aktif", got.StudentStatus)
	}

	var last model.MembershipHistoryModel
	testDB.Where("history_student_id = ?", stu.StudentID).
		Order("history_changed_at DESC").First(&last)
	if last.HistoryEvent != model.HistoryEventRenewed {
		t.Fatalf("event terakhir = %s", last.HistoryEvent)
	}
}

func TestDeleteCascades(t *testing.T) {
	cleanup(t)
	branchID, seatID, shiftID := seedFixture(t)
	svc := New(testDB)

	req := baseCreateReq(branchID)
	req.SeatID = &seatID
	req.ShiftIDs = []uuid.UUID{shiftID}
	stu, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := svc.Delete(context.Background(), stu.StudentID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.StudentID != stu.StudentID {
		t.Fatalf("record terhapus salah: %s", deleted.StudentID)
	}

	for table, where := range map[string]string{
		"students":                   "student_id",
		"seat_assignments":           "seat_assignment_student_id",
		"student_membership_history": "history_student_id",
	} {
		var n int64
		testDB.Table(table).Where(where+" = ?", stu.StudentID).Count(&n)
		if n != 0 {
			t.Fatalf("%s tersisa %d baris", table, n)
		}
	}

	if _, err := svc.Delete(context.Background(), stu.StudentID); err == nil {
		t.Fatal("delete kedua harus 404")
	}
}

func TestApplyOnlinePayment(t *testing.T) {
	cleanup(t)
	branchID, _, _ := seedFixture(t)
	svc := New(testDB)

	stu, err := svc.Create(context.Background(), baseCreateReq(branchID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = testDB.Transaction(func(tx *gorm.DB) error {
		return ApplyOnlinePayment(tx, stu.StudentID, 400)
	})
	if err != nil {
		t.Fatalf("ApplyOnlinePayment: %v", err)
	}

	var got model.StudentModel
	testDB.First(&got, "student_id = ?", stu.StudentID)
	if got.StudentOnline != 400 || got.StudentAmountPaid != 900 || got.StudentDueAmount != 600 {
		t.Fatalf("online=%v paid=%v due=%v", got.StudentOnline, got.StudentAmountPaid, got.StudentDueAmount)
	}

	var last model.MembershipHistoryModel
	testDB.Where("history_student_id = ?", stu.StudentID).
		Order("history_changed_at DESC").First(&last)
	if last.HistoryEvent != model.HistoryEventPayment {
		t.Fatalf("event terakhir = %s", last.HistoryEvent)
	}
}
