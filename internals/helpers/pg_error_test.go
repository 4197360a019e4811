package helper

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

type fakePGErr struct {
	state string
}

func (e *fakePGErr) SQLState() string { return e.state }
func (e *fakePGErr) Error() string    { return "pg error " + e.state }

func TestMapPGError(t *testing.T) {
	cases := []struct {
		state    string
		wantCode int
	}{
		{"23505", http.StatusBadRequest},
		{"23503", http.StatusBadRequest},
		{"23P01", http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.state, func(t *testing.T) {
			code, msg := MapPGError(&fakePGErr{state: tc.state})
			if code != tc.wantCode {
				t.Fatalf("code = %d, want %d", code, tc.wantCode)
			}
			if msg == "" {
				t.Fatal("pesan kosong")
			}
		})
	}
}

func TestMapPGErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("gorm: %w", &fakePGErr{state: "23505"})
	code, _ := MapPGError(wrapped)
	if code != http.StatusBadRequest {
		t.Fatalf("wrapped error harus tetap terpetakan, code = %d", code)
	}
}

func TestMapPGErrorUnknown(t *testing.T) {
	code, msg := MapPGError(errors.New("koneksi putus"))
	if code != http.StatusInternalServerError {
		t.Fatalf("code = %d", code)
	}
	if msg != "koneksi putus" {
		t.Fatalf("msg = %s", msg)
	}
}

func TestIsPGUniqueViolation(t *testing.T) {
	if !IsPGUniqueViolation(&fakePGErr{state: "23505"}) {
		t.Fatal("23505 harus terdeteksi")
	}
	if IsPGUniqueViolation(&fakePGErr{state: "23503"}) {
		t.Fatal("23503 bukan unique violation")
	}
	if IsPGUniqueViolation(errors.New("lain")) {
		t.Fatal("error biasa bukan unique violation")
	}
}
