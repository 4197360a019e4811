package dto

import (
	"encoding/json"
	"testing"
	"time"

	model "pustakaku_backend/internals/features/membership/students/model"
)

func TestMoneyUnmarshal(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		wantVal float64
		wantOK  bool
		wantErr bool
	}{
		{"number", `1500.5`, 1500.5, true, false},
		{"integer", `2000`, 2000, true, false},
		{"quoted number", `"1500.50"`, 1500.5, true, false},
		{"quoted with spaces", `" 300 "`, 300, true, false},
		{"zero", `0`, 0, true, false},
		{"negative", `-10`, -10, true, false},
		{"null", `null`, 0, false, false},
		{"empty string", `""`, 0, false, false},
		{"garbage", `"abc"`, 0, false, true},
		{"bare word", `abc`, 0, false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var m Money
			err := json.Unmarshal([]byte(tc.in), &m)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal %q: %v", tc.in, err)
			}
			if m.Valid != tc.wantOK {
				t.Fatalf("valid = %v, want %v", m.Valid, tc.wantOK)
			}
			if m.Valid && m.Value != tc.wantVal {
				t.Fatalf("value = %v, want %v", m.Value, tc.wantVal)
			}
		})
	}
}

func TestMoneyInRequestBody(t *testing.T) {
	body := `{"name":"Budi","phone":"0812","total_fee":"1200.00","cash":300,"online":""}`
	var req CreateStudentRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if !req.TotalFee.Valid || req.TotalFee.Value != 1200 {
		t.Fatalf("total_fee = %+v", req.TotalFee)
	}
	if !req.Cash.Valid || req.Cash.Value != 300 {
		t.Fatalf("cash = %+v", req.Cash)
	}
	if req.Online.Valid {
		t.Fatalf("online harus dianggap tidak diisi, got %+v", req.Online)
	}
	if req.AmountPaid.Valid {
		t.Fatalf("amount_paid yang tidak dikirim harus invalid")
	}
}

func TestMoneyOr(t *testing.T) {
	if got := (Money{Value: 10, Valid: true}).Or(99); got != 10 {
		t.Fatalf("Or dengan Valid = %v", got)
	}
	if got := (Money{}).Or(99); got != 99 {
		t.Fatalf("Or tanpa Valid = %v", got)
	}
}

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)

	cases := []struct {
		name string
		end  time.Time
		want string
	}{
		{"end kemarin", time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), model.StatusExpired},
		{"end hari ini", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), model.StatusActive},
		{"end hari ini dengan jam", time.Date(2025, 6, 15, 1, 0, 0, 0, time.UTC), model.StatusActive},
		{"end besok", time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), model.StatusActive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveStatus(tc.end, now); got != tc.want {
				t.Fatalf("DeriveStatus = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestFromModelDerivesStatusFromDates(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	m := model.StudentModel{
		StudentName:            "Siti",
		StudentPhone:           "0813",
		StudentMembershipStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		StudentMembershipEnd:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		// kolom snapshot bilang aktif, tapi tanggal sudah lewat
		StudentStatus: model.StatusActive,
	}
	resp := FromModel(&m, now)
	if resp.Status != model.StatusExpired {
		t.Fatalf("status harus diturunkan dari tanggal, got %s", resp.Status)
	}
	if resp.MembershipEnd != "2025-03-01" {
		t.Fatalf("membership_end = %s", resp.MembershipEnd)
	}
}
