package service

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pustakaku_backend/internals/configs"
	"pustakaku_backend/internals/constants"
	model "pustakaku_backend/internals/features/users/auth/model"
	helper "pustakaku_backend/internals/helpers"
)

const accessTTLDefault = 24 * time.Hour

/* ==========================
   Password & token helpers
========================== */

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		secret = strings.TrimSpace(configs.GetEnv("JWT_SECRET"))
	}
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET belum diset")
	}
	return secret, nil
}

// SignAccessToken menerbitkan JWT HMAC berisi id + role user.
func SignAccessToken(u *model.UserModel) (string, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"id":   u.UserID.String(),
		"sub":  u.UserID.String(),
		"role": u.UserRole,
		"iat":  now.Unix(),
		"exp":  now.Add(accessTTLDefault).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Gagal menandatangani token")
	}
	return signed, nil
}

func generateDummyPassword() string {
	buf := make([]byte, 24)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

/* ==========================
   REGISTER
========================== */

func Register(db *gorm.DB, name, email, password, role string) (*model.UserModel, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	role = strings.TrimSpace(role)
	if role == "" {
		role = constants.RoleStaff
	}
	if !constants.IsValidRole(role) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Role tidak dikenal")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal hash password")
	}

	u := &model.UserModel{
		UserName:     strings.TrimSpace(name),
		UserEmail:    email,
		UserPassword: hash,
		UserRole:     role,
	}
	if err := db.Create(u).Error; err != nil {
		if helper.IsPGUniqueViolation(err) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Email sudah terdaftar")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat user")
	}
	return u, nil
}

/* ==========================
   LOGIN
========================== */

func Login(db *gorm.DB, email, password string) (*model.UserModel, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var u model.UserModel
	if err := db.First(&u, "user_email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", fiber.NewError(fiber.StatusUnauthorized, "Email atau password salah")
		}
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Gagal memuat user")
	}
	if !CheckPassword(u.UserPassword, password) {
		return nil, "", fiber.NewError(fiber.StatusUnauthorized, "Email atau password salah")
	}

	tok, err := SignAccessToken(&u)
	if err != nil {
		return nil, "", err
	}
	return &u, tok, nil
}

/* ==========================
   LOGIN GOOGLE
========================== */

func LoginGoogle(db *gorm.DB, idToken string) (*model.UserModel, string, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{configs.GoogleClientID}); err != nil {
		return nil, "", fiber.NewError(fiber.StatusUnauthorized, "Google ID Token tidak valid")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Gagal decode ID Token")
	}
	email, name, googleID := claimSet.Email, claimSet.Name, claimSet.Sub

	var u model.UserModel
	err = db.First(&u, "user_google_id = ?", googleID).Error
	switch {
	case err == nil:
		// lanjut login
	case err == gorm.ErrRecordNotFound:
		hash, er := HashPassword(generateDummyPassword())
		if er != nil {
			return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Gagal hash password")
		}
		u = model.UserModel{
			UserName:     name,
			UserEmail:    strings.ToLower(email),
			UserPassword: hash,
			UserRole:     constants.RoleStaff,
			UserGoogleID: &googleID,
		}
		if er := db.Create(&u).Error; er != nil {
			if helper.IsPGUniqueViolation(er) {
				return nil, "", fiber.NewError(fiber.StatusBadRequest, "Email sudah terdaftar")
			}
			return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat user")
		}
	default:
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Gagal memuat user")
	}

	tok, err := SignAccessToken(&u)
	if err != nil {
		return nil, "", err
	}
	return &u, tok, nil
}
