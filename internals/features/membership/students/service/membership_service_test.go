package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"

	dto "pustakaku_backend/internals/features/membership/students/dto"
)

func money(v float64) dto.Money { return dto.Money{Value: v, Valid: true} }
func noMoney() dto.Money        { return dto.Money{} }

func TestComputeDue(t *testing.T) {
	cases := []struct {
		name       string
		totalFee   float64
		amountPaid float64
		want       float64
	}{
		{"belum bayar", 1500, 0, 1500},
		{"sebagian", 1500, 500, 1000},
		{"lunas", 1500, 1500, 0},
		{"kelebihan bayar tetap negatif", 1500, 2000, -500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ComputeDue(tc.totalFee, tc.amountPaid); got != tc.want {
				t.Fatalf("ComputeDue(%v, %v) = %v, want %v", tc.totalFee, tc.amountPaid, got, tc.want)
			}
		})
	}
}

func TestResolveAmountPaid(t *testing.T) {
	cases := []struct {
		name                             string
		amountPaid, cash, online         dto.Money
		storedPaid, storedCash, storedOn float64
		want                             float64
	}{
		{"amount_paid eksplisit menang", money(900), money(100), money(100), 0, 0, 0, 900},
		{"cash+online dipakai kalau salah satu diisi", noMoney(), money(300), money(200), 50, 0, 0, 500},
		{"cash saja, online fallback tersimpan", noMoney(), money(300), noMoney(), 50, 0, 150, 450},
		{"online saja, cash fallback tersimpan", noMoney(), noMoney(), money(200), 50, 100, 0, 300},
		{"semua kosong pakai nilai tersimpan", noMoney(), noMoney(), noMoney(), 750, 100, 200, 750},
		{"amount_paid nol eksplisit tetap menang", money(0), money(300), money(200), 750, 0, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveAmountPaid(tc.amountPaid, tc.cash, tc.online, tc.storedPaid, tc.storedCash, tc.storedOn)
			if got != tc.want {
				t.Fatalf("ResolveAmountPaid = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCheckNonNegative(t *testing.T) {
	if err := checkNonNegative(map[string]dto.Money{
		"total_fee": money(100),
		"cash":      noMoney(),
	}); err != nil {
		t.Fatalf("nilai sah ditolak: %v", err)
	}

	err := checkNonNegative(map[string]dto.Money{"cash": money(-1)})
	if err == nil {
		t.Fatal("nilai negatif harus ditolak")
	}
	fe, ok := err.(*fiber.Error)
	if !ok {
		t.Fatalf("err bukan *fiber.Error: %T", err)
	}
	if fe.Code != fiber.StatusBadRequest {
		t.Fatalf("code = %d, want 400", fe.Code)
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2025-06-15")
	if err != nil {
		t.Fatalf("parseDate: %v", err)
	}
	if d.Year() != 2025 || d.Month() != 6 || d.Day() != 15 {
		t.Fatalf("parseDate = %v", d)
	}
	if _, err := parseDate("15-06-2025"); err == nil {
		t.Fatal("format salah harus error")
	}
	if _, err := parseDate(""); err == nil {
		t.Fatal("string kosong harus error")
	}
}
