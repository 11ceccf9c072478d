package utils

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var ErrInvalidToken = errors.New("invalid token")
var ErrExpiredToken = errors.New("token has expired")
var ErrUnauthorized = errors.New("unauthorized")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrDuplicateEmail = errors.New("email already registered")
var ErrNotFound = errors.New("not found")
var ErrForbidden = errors.New("access denied")
var ErrValueConversion = errors.New("could not convert value")

// IsUniqueViolation reports whether err is a postgres unique-constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
