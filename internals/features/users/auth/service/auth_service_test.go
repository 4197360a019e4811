package service

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"pustakaku_backend/internals/configs"
	model "pustakaku_backend/internals/features/users/auth/model"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("rahasia-banget")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "rahasia-banget" {
		t.Fatal("hash tidak boleh plaintext")
	}
	if !CheckPassword(hash, "rahasia-banget") {
		t.Fatal("password benar harus lolos")
	}
	if CheckPassword(hash, "salah") {
		t.Fatal("password salah harus ditolak")
	}
}

func TestSignAccessToken(t *testing.T) {
	old := configs.JWTSecret
	configs.JWTSecret = "test-secret"
	t.Cleanup(func() { configs.JWTSecret = old })

	u := &model.UserModel{
		UserID:   uuid.New(),
		UserName: "Admin",
		UserRole: "admin",
	}
	signed, err := SignAccessToken(u)
	if err != nil {
		t.Fatalf("SignAccessToken: %v", err)
	}

	tok, err := jwt.Parse(signed, func(tk *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse token: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if claims["id"] != u.UserID.String() {
		t.Fatalf("claim id = %v", claims["id"])
	}
	if claims["role"] != "admin" {
		t.Fatalf("claim role = %v", claims["role"])
	}
	if _, ok := claims["exp"].(float64); !ok {
		t.Fatal("claim exp harus ada")
	}
}

func TestSignAccessTokenWithoutSecret(t *testing.T) {
	old := configs.JWTSecret
	configs.JWTSecret = ""
	t.Setenv("JWT_SECRET", "")
	t.Cleanup(func() { configs.JWTSecret = old })

	if _, err := SignAccessToken(&model.UserModel{UserID: uuid.New()}); err == nil {
		t.Fatal("tanpa secret harus error")
	}
}
