package helper

import (
	"errors"
	"net/http"
)

// --- PG error mapping ---

type pgSQLErr interface {
	SQLState() string
	Error() string
}

// MapPGError memetakan SQLSTATE Postgres ke status HTTP.
// 23505 = unique_violation (kursi dobel per shift), 23503 = foreign_key_violation.
func MapPGError(err error) (int, string) {
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		switch pgErr.SQLState() {
		case "23505":
			return http.StatusBadRequest, "Kursi sudah terisi untuk shift tersebut (unique violation)."
		case "23503":
			return http.StatusBadRequest, "Referensi tidak ditemukan (FK violation)."
		case "23P01":
			return http.StatusConflict, "Bentrok data (exclusion violation)."
		}
	}
	return http.StatusInternalServerError, err.Error()
}

// IsPGUniqueViolation: true kalau err adalah 23505.
func IsPGUniqueViolation(err error) bool {
	var pgErr pgSQLErr
	return errors.As(err, &pgErr) && pgErr.SQLState() == "23505"
}
