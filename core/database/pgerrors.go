package database

import (
	"errors"

	"github.com/lib/pq"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgExclusionViolation  = "23P01"
	pgCheckViolation      = "23514"
)

func pqCode(err error) (pq.ErrorCode, string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code, pqErr.Constraint, true
	}
	return "", "", false
}

// IsUniqueViolation reports whether err is a unique constraint violation,
// optionally restricted to the named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	return matches(err, pgUniqueViolation, constraint)
}

func IsExclusionViolation(err error, constraint string) bool {
	return matches(err, pgExclusionViolation, constraint)
}

func IsForeignKeyViolation(err error, constraint string) bool {
	return matches(err, pgForeignKeyViolation, constraint)
}

func IsCheckViolation(err error, constraint string) bool {
	return matches(err, pgCheckViolation, constraint)
}

func matches(err error, code, constraint string) bool {
	got, name, ok := pqCode(err)
	if !ok || string(got) != code {
		return false
	}
	return constraint == "" || name == constraint
}
