package dbjuju

import (
	"database/sql"
	"errors"

	jujuerrors "github.com/juju/errors"

	"github.com/ovh/mysqlerr/category"
	"github.com/ovh/mysqlerr/db/dberrors"
	"github.com/ovh/mysqlerr/db/dberrors/mysqlanalyzer"
	"github.com/ovh/mysqlerr/db/dberrors/pganalyzer"
)

const pgUniqueViolation = "23505"

// postgres reports unknown tables and schemas with these codes
var pgUndefined = map[string]bool{
	"42P01": true, // undefined_table
	"3F000": true, // invalid_schema_name
	"3D000": true, // invalid_catalog_name
}

var (
	mysqlInterpreter = dberrors.Interpreter{
		Analyzer:   mysqlanalyzer.Analyzer,
		ErrFactory: errFactory,
	}
	pgInterpreter = dberrors.Interpreter{
		Analyzer:   pganalyzer.Analyzer,
		ErrFactory: errFactory,
	}
)

// classifiedError carries both a juju error kind, reachable through juju's Cause,
// and the classification, reachable through errors.Is and errors.As.
type classifiedError struct {
	kind error
	ce   *dberrors.ClassifiedError
}

func (e *classifiedError) Error() string { return e.kind.Error() }
func (e *classifiedError) Cause() error { return e.kind }
func (e *classifiedError) Unwrap() error { return e.ce }

func withKind(ce *dberrors.ClassifiedError, newKind func(error, string) error) error {
	return &classifiedError{kind: newKind(ce, ""), ce: ce}
}

func errFactory(err error, ce *dberrors.ClassifiedError) error {
	if errors.Is(err, sql.ErrNoRows) {
		return jujuerrors.NewNotFound(err, "")
	}

	switch {
	case ce.Category.IsA(category.IntegrityError):
		if ce.Code == dberrors.ERDupEntry || ce.SQLState == pgUniqueViolation {
			return withKind(ce, jujuerrors.NewAlreadyExists)
		}
		return withKind(ce, jujuerrors.NewNotValid)
	case ce.Category.IsA(category.DataError):
		return withKind(ce, jujuerrors.NewNotValid)
	case ce.Category.IsA(category.ProgrammingError):
		if ce.Code == dberrors.ERNoSuchTable || ce.Code == dberrors.ERBadDBError || pgUndefined[ce.SQLState] {
			return withKind(ce, jujuerrors.NewNotFound)
		}
		return withKind(ce, jujuerrors.NewBadRequest)
	case ce.Category.IsA(category.NotSupportedError):
		return withKind(ce, jujuerrors.NewNotSupported)
	}
	return ce
}

// InterpretMySQL converts a go-sql-driver/mysql error into a juju error,
// convertible by the API server into a status code.
// The classification stays matchable with errors.Is and dberrors.CategoryOf.
func InterpretMySQL(err error) error {
	return mysqlInterpreter.Interpret(err)
}

// InterpretPostgres converts a postgresql error into a juju error,
// convertible by the API server into a status code
func InterpretPostgres(err error) error {
	return pgInterpreter.Interpret(err)
}
