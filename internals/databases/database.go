package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pustakaku_backend/internals/configs"
	authModel "pustakaku_backend/internals/features/users/auth/model"
	branchModel "pustakaku_backend/internals/features/library/branches/model"
	seatModel "pustakaku_backend/internals/features/library/seats/model"
	shiftModel "pustakaku_backend/internals/features/library/shifts/model"
	studentModel "pustakaku_backend/internals/features/membership/students/model"
	paymentModel "pustakaku_backend/internals/features/finance/payments/model"
)

// ConnectDB membuka koneksi PostgreSQL dan MENGEMBALIKAN handle-nya.
// Tidak ada variabel DB global: handle di-inject ke controller/service.
func ConnectDB() *gorm.DB {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=pustakaku&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	log.Println("✅ DB connected.")
	return db
}

func TunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate menjalankan AutoMigrate untuk semua tabel aplikasi.
// Uniqueness (seat_id, shift_id) di seat_assignments ikut dibuat di sini;
// constraint inilah yang menutup race check-then-insert di level storage.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&authModel.UserModel{},
		&branchModel.BranchModel{},
		&seatModel.SeatModel{},
		&shiftModel.ShiftModel{},
		&studentModel.StudentModel{},
		&studentModel.SeatAssignmentModel{},
		&studentModel.MembershipHistoryModel{},
		&paymentModel.PaymentModel{},
	)
}

func WarmUp(db *gorm.DB) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		sqlDB, err := db.DB()
		if err != nil {
			log.Printf("warm-up err: %v", err)
			return
		}
		if err := sqlDB.Ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
