package employee

import (
	"errors"
	"strings"

	employeeerrors "go-attendly/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch {
		case strings.Contains(pgErr.ConstraintName, "email"):
			return employeeerrors.ErrDuplicateEmail
		case strings.Contains(pgErr.ConstraintName, "employee_number"):
			return employeeerrors.ErrDuplicateEmployeeNumber
		}
	}

	// gorm with non-pgx drivers surfaces the violation as plain text
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key value") {
		if strings.Contains(msg, "email") {
			return employeeerrors.ErrDuplicateEmail
		}
		if strings.Contains(msg, "employee_number") {
			return employeeerrors.ErrDuplicateEmployeeNumber
		}
	}

	return err
}
