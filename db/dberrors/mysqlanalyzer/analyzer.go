package mysqlanalyzer

import (
	"bytes"
	"database/sql"
	"database/sql/driver"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/ovh/mysqlerr/db/dberrors"
)

// DriverName is the name under which go-sql-driver/mysql registers itself in database/sql
const DriverName = "mysql"

type runtime struct{}

func (runtime) Initialized() bool {
	for _, d := range sql.Drivers() {
		if d == DriverName {
			return true
		}
	}
	return false
}

// Runtime reports whether the mysql driver is registered in database/sql.
// Importing this package links and registers the driver, so this Runtime is
// always initialized; use DBRuntime to tie the check to an actual handle.
func Runtime() dberrors.Runtime {
	return runtime{}
}

type dbRuntime struct {
	db *sql.DB
}

func (r dbRuntime) Initialized() bool {
	if r.db == nil {
		return false
	}
	_, ok := r.db.Driver().(*mysql.MySQLDriver)
	return ok
}

// DBRuntime reports a handle as initialized when it is non-nil and opened
// with the mysql driver
func DBRuntime(db *sql.DB) dberrors.Runtime {
	return dbRuntime{db: db}
}

type conn struct {
	live     bool
	code     int
	message  string
	sqlState string
}

func (c conn) Live() bool { return c.live }
func (c conn) LastErrorCode() int { return c.code }
func (c conn) LastErrorMessage() string { return c.message }
func (c conn) SQLState() string { return c.sqlState }

// Conn exposes a driver error as the last error of a connection.
// Errors signaling a broken or closed connection yield a connection that is not live.
func Conn(err error) dberrors.Conn {
	var myErr *mysql.MySQLError
	switch {
	case errors.As(err, &myErr):
		return conn{
			live:     true,
			code:     int(myErr.Number),
			message:  myErr.Message,
			sqlState: string(bytes.TrimRight(myErr.SQLState[:], "\x00")),
		}
	case errors.Is(err, mysql.ErrInvalidConn),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone):
		return conn{}
	}
	return conn{live: true, message: err.Error()}
}

// Analyzer classifies an error returned by go-sql-driver/mysql
func Analyzer(err error) *dberrors.ClassifiedError {
	if err == nil {
		return nil
	}
	return dberrors.ClassifyConn(Runtime(), Conn(err))
}

// AnalyzerFor classifies errors returned through db.
// Errors coming with a nil handle, or a handle opened with another driver,
// are classified as coming from a server that is not initialized.
func AnalyzerFor(db *sql.DB) func(error) *dberrors.ClassifiedError {
	rt := DBRuntime(db)
	return func(err error) *dberrors.ClassifiedError {
		if err == nil {
			return nil
		}
		return dberrors.ClassifyConn(rt, Conn(err))
	}
}
