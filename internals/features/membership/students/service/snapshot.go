package service

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	dto "pustakaku_backend/internals/features/membership/students/dto"
	model "pustakaku_backend/internals/features/membership/students/model"
)

// buildSnapshot membekukan seluruh state santri (termasuk SEMUA shift,
// bukan cuma yang pertama) ke JSONB histori.
func buildSnapshot(stu *model.StudentModel, seatID *uuid.UUID, shiftIDs []uuid.UUID) (datatypes.JSON, error) {
	payload := map[string]any{
		"student_id":       stu.StudentID,
		"name":             stu.StudentName,
		"email":            stu.StudentEmail,
		"phone":            stu.StudentPhone,
		"branch_id":        stu.StudentBranchID,
		"membership_start": stu.StudentMembershipStart.Format(dto.DateLayout),
		"membership_end":   stu.StudentMembershipEnd.Format(dto.DateLayout),
		"total_fee":        stu.StudentTotalFee,
		"amount_paid":      stu.StudentAmountPaid,
		"due_amount":       stu.StudentDueAmount,
		"cash":             stu.StudentCash,
		"online":           stu.StudentOnline,
		"security_money":   stu.StudentSecurityMoney,
		"status":           stu.StudentStatus,
	}
	if seatID != nil {
		payload["seat_id"] = *seatID
	}
	if len(shiftIDs) > 0 {
		payload["shift_ids"] = shiftIDs
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
