package dberrors

import (
	"github.com/sirupsen/logrus"

	"github.com/ovh/mysqlerr/category"
)

const (
	// MessageNotInitialized is reported when no client runtime or connection is available
	MessageNotInitialized = "server not initialized"
	// MessageWhack is reported for error numbers above CRMaxError
	MessageWhack = "error totally whack"
)

// Runtime reports the state of the underlying client library
type Runtime interface {
	Initialized() bool
}

// Conn exposes the last error recorded on a server connection
type Conn interface {
	Live() bool
	LastErrorCode() int
	LastErrorMessage() string
}

// SQLStater is implemented by connections able to report an SQLSTATE along with the error number
type SQLStater interface {
	SQLState() string
}

// Classify resolves a raw server error into a ClassifiedError.
// It never fails: degenerate inputs yield InternalError or InterfaceError.
func Classify(initialized bool, code int, message string, connectionPresent bool) *ClassifiedError {
	if !initialized || !connectionPresent {
		return notInitialized()
	}
	return Observe(classifyCode(code, message))
}

// ClassifyConn runs Classify against a live connection.
// The connection is only queried once the runtime and the connection are known to be usable.
func ClassifyConn(rt Runtime, conn Conn) *ClassifiedError {
	if rt == nil || !rt.Initialized() || conn == nil || !conn.Live() {
		return notInitialized()
	}

	ce := classifyCode(conn.LastErrorCode(), conn.LastErrorMessage())
	if s, ok := conn.(SQLStater); ok && ce.Code > 0 {
		ce.SQLState = s.SQLState()
	}
	return Observe(ce)
}

func notInitialized() *ClassifiedError {
	return Observe(New(category.InternalError, -1, MessageNotInitialized))
}

func classifyCode(code int, message string) *ClassifiedError {
	switch {
	case code == 0:
		return New(category.InterfaceError, 0, message)
	case code > CRMaxError:
		return New(category.InterfaceError, -1, MessageWhack)
	}

	c, found := CurrentTable().Lookup(code)
	if !found {
		c = fallback(code)
	}
	return New(c, code, message)
}

// fallback classifies codes missing from the table by range
func fallback(code int) category.Category {
	if code < ERErrorFirst {
		return category.InternalError
	}
	return category.OperationalError
}

// Observe accounts for a classification in metrics and debug logs, and returns ce
func Observe(ce *ClassifiedError) *ClassifiedError {
	classifiedCounter.WithLabelValues(ce.Category.String()).Inc()
	logrus.WithFields(logrus.Fields{
		"code":     ce.Code,
		"category": ce.Category.String(),
	}).Debug("classified database error")
	return ce
}
