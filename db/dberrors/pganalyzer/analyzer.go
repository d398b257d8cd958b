package pganalyzer

import (
	"database/sql"
	"database/sql/driver"
	"errors"

	"github.com/lib/pq"

	"github.com/ovh/mysqlerr/category"
	"github.com/ovh/mysqlerr/db/dberrors"
)

// classes maps SQLSTATE classes to categories.
// Classes absent from this map are reported as DatabaseError.
var classes = map[pq.ErrorClass]category.Category{
	"01": category.Warning,
	"0A": category.NotSupportedError,
	"22": category.DataError,
	"23": category.IntegrityError,
	"42": category.ProgrammingError,

	"XX": category.InternalError,
	"24": category.InternalError,
	"25": category.InternalError,
	"2B": category.InternalError,
	"2D": category.InternalError,

	"08": category.OperationalError,
	"40": category.OperationalError,
	"53": category.OperationalError,
	"54": category.OperationalError,
	"55": category.OperationalError,
	"57": category.OperationalError,
	"58": category.OperationalError,
	"F0": category.OperationalError,
	"HV": category.OperationalError,
	"P0": category.OperationalError,
}

// Category returns the category of a postgresql error code
func Category(code pq.ErrorCode) category.Category {
	if c, ok := classes[code.Class()]; ok {
		return c
	}
	return category.DatabaseError
}

// Analyzer converts a postgresql-specific error into a ClassifiedError.
// Postgres reports SQLSTATE codes only, so Code stays 0 and SQLState carries the server code.
func Analyzer(err error) *dberrors.ClassifiedError {
	if err == nil {
		return nil
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return dberrors.Classify(true, 0, "", false)
	}

	var pgErr *pq.Error
	if !errors.As(err, &pgErr) {
		return dberrors.Classify(true, 0, err.Error(), true)
	}

	ce := dberrors.New(Category(pgErr.Code), 0, pgErr.Message)
	ce.SQLState = string(pgErr.Code)
	return dberrors.Observe(ce)
}
