package dbtime

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	got, err := Parse("09:30")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Hour() != 9 || got.Minute() != 30 || got.Second() != 0 {
		t.Fatalf("Parse(09:30) = %v", got)
	}

	got, err = Parse("21:05:45")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Hour() != 21 || got.Second() != 45 {
		t.Fatalf("Parse(21:05:45) = %v", got)
	}

	if _, err := Parse("9.30"); err == nil {
		t.Fatal("format salah harus error")
	}
	if _, err := Parse("25:00"); err == nil {
		t.Fatal("jam di luar rentang harus error")
	}
}

func TestValue(t *testing.T) {
	tod, _ := Parse("07:15")
	v, err := tod.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != "07:15:00" {
		t.Fatalf("Value = %v", v)
	}

	var zero Tod
	v, _ = zero.Value()
	if v != "00:00:00" {
		t.Fatalf("Value zero = %v", v)
	}
}

func TestScan(t *testing.T) {
	var tod Tod
	if err := tod.Scan("16:45:30"); err != nil {
		t.Fatalf("Scan string: %v", err)
	}
	if tod.Hour() != 16 || tod.Minute() != 45 {
		t.Fatalf("Scan = %v", tod)
	}

	if err := tod.Scan([]byte("08:00")); err != nil {
		t.Fatalf("Scan bytes: %v", err)
	}
	if tod.Hour() != 8 {
		t.Fatalf("Scan bytes = %v", tod)
	}

	now := time.Date(2025, 1, 2, 10, 20, 30, 0, time.UTC)
	if err := tod.Scan(now); err != nil {
		t.Fatalf("Scan time: %v", err)
	}
	if tod.Hour() != 10 {
		t.Fatalf("Scan time = %v", tod)
	}

	if err := tod.Scan(42); err == nil {
		t.Fatal("tipe tidak didukung harus error")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	tod, _ := Parse("13:00")
	b, err := json.Marshal(tod)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"13:00:00"` {
		t.Fatalf("marshal = %s", b)
	}

	var back Tod
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Hour() != 13 {
		t.Fatalf("round trip = %v", back)
	}
}
